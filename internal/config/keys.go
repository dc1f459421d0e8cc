package config

import "os"

// CredentialSource represents where a credential comes from.
type CredentialSource string

const (
	SourceEnv    CredentialSource = "env"
	SourceConfig CredentialSource = "config"
	SourceNone   CredentialSource = "none"
)

// CredentialStatus represents the status of one credential.
type CredentialStatus struct {
	Name   string           `json:"name"`
	Source CredentialSource `json:"source"`
	IsSet  bool             `json:"is_set"`
	Masked string           `json:"masked,omitempty"` // e.g., "123...abc"
}

// CheckCredentials returns the status of the outbound alert credentials.
func CheckCredentials(cfg *Config) []CredentialStatus {
	chatID := ""
	if cfg.Telegram.ChatID != 0 {
		chatID = "set"
	}
	return []CredentialStatus{
		checkCredential("Telegram Bot Token", cfg.Telegram.Token, "NEWSADVISOR_TELEGRAM_TOKEN"),
		checkCredential("Telegram Chat ID", chatID, "NEWSADVISOR_TELEGRAM_CHAT_ID"),
	}
}

// checkCredential checks if a credential is set and where it came from.
func checkCredential(name, value, envVar string) CredentialStatus {
	status := CredentialStatus{
		Name:  name,
		IsSet: value != "",
	}

	if value != "" {
		if os.Getenv(envVar) != "" {
			status.Source = SourceEnv
		} else {
			status.Source = SourceConfig
		}
		status.Masked = maskCredential(value)
	} else {
		status.Source = SourceNone
	}

	return status
}

// maskCredential masks a secret for display, showing only first 3 and
// last 3 chars.
func maskCredential(value string) string {
	if len(value) <= 8 {
		return "***"
	}
	return value[:3] + "..." + value[len(value)-3:]
}
