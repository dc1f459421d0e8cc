package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Feeds.HeadlineLimit != 15 {
		t.Errorf("headline limit = %d, want 15", cfg.Feeds.HeadlineLimit)
	}
	if cfg.Market.WindowDays != 182 {
		t.Errorf("window days = %d, want 182", cfg.Market.WindowDays)
	}
	if cfg.Recommend.BuyThreshold != 0.001 {
		t.Errorf("buy threshold = %v, want 0.001", cfg.Recommend.BuyThreshold)
	}
	if cfg.Recommend.AvoidThreshold != -0.001 {
		t.Errorf("avoid threshold = %v, want -0.001", cfg.Recommend.AvoidThreshold)
	}
	if cfg.Recommend.TopN != 3 {
		t.Errorf("top n = %d, want 3", cfg.Recommend.TopN)
	}
	if cfg.API.Port != 8080 {
		t.Errorf("api port = %d, want 8080", cfg.API.Port)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("log level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	yaml := `
feeds:
  headline_limit: 25
  sources:
    - name: Test Feed
      url: https://example.com/rss
market:
  window_days: 90
recommend:
  buy_threshold: 0.002
  top_n: 5
api:
  port: 9090
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	if cfg.Feeds.HeadlineLimit != 25 {
		t.Errorf("headline limit = %d, want 25", cfg.Feeds.HeadlineLimit)
	}
	if len(cfg.Feeds.Sources) != 1 || cfg.Feeds.Sources[0].Name != "Test Feed" {
		t.Errorf("sources = %+v, want one named Test Feed", cfg.Feeds.Sources)
	}
	if cfg.Market.WindowDays != 90 {
		t.Errorf("window days = %d, want 90", cfg.Market.WindowDays)
	}
	if cfg.Recommend.BuyThreshold != 0.002 {
		t.Errorf("buy threshold = %v, want 0.002", cfg.Recommend.BuyThreshold)
	}
	// Unset keys keep their defaults.
	if cfg.Recommend.AvoidThreshold != -0.001 {
		t.Errorf("avoid threshold = %v, want default -0.001", cfg.Recommend.AvoidThreshold)
	}
	if cfg.API.Port != 9090 {
		t.Errorf("api port = %d, want 9090", cfg.API.Port)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("NEWSADVISOR_TELEGRAM_TOKEN", "123456:ABCDEFtoken")
	t.Setenv("NEWSADVISOR_TELEGRAM_CHAT_ID", "-1009876543210")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Telegram.Token != "123456:ABCDEFtoken" {
		t.Errorf("token = %q, want env value", cfg.Telegram.Token)
	}
	if cfg.Telegram.ChatID != -1009876543210 {
		t.Errorf("chat id = %d, want -1009876543210", cfg.Telegram.ChatID)
	}
}

func TestEnvOverrideBadChatID(t *testing.T) {
	t.Setenv("NEWSADVISOR_TELEGRAM_CHAT_ID", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Telegram.ChatID != 0 {
		t.Errorf("chat id = %d, want 0 for unparsable env value", cfg.Telegram.ChatID)
	}
}

func TestCheckCredentials(t *testing.T) {
	cfg := &Config{}
	cfg.Telegram.Token = "123456:ABCDEFtoken"
	cfg.Telegram.ChatID = 42

	statuses := CheckCredentials(cfg)
	if len(statuses) != 2 {
		t.Fatalf("got %d statuses, want 2", len(statuses))
	}

	token := statuses[0]
	if !token.IsSet {
		t.Error("token should be reported set")
	}
	if token.Source != SourceConfig {
		t.Errorf("token source = %s, want config", token.Source)
	}
	if token.Masked != "123...ken" {
		t.Errorf("masked token = %q, want 123...ken", token.Masked)
	}

	if !statuses[1].IsSet {
		t.Error("chat id should be reported set")
	}
}

func TestCheckCredentialsUnset(t *testing.T) {
	statuses := CheckCredentials(&Config{})
	for _, s := range statuses {
		if s.IsSet {
			t.Errorf("%s: reported set on empty config", s.Name)
		}
		if s.Source != SourceNone {
			t.Errorf("%s: source = %s, want none", s.Name, s.Source)
		}
	}
}

func TestCheckCredentialsEnvSource(t *testing.T) {
	t.Setenv("NEWSADVISOR_TELEGRAM_TOKEN", "123456:ABCDEFtoken")

	cfg := &Config{}
	cfg.Telegram.Token = "123456:ABCDEFtoken"

	statuses := CheckCredentials(cfg)
	if statuses[0].Source != SourceEnv {
		t.Errorf("token source = %s, want env", statuses[0].Source)
	}
}

func TestMaskCredential(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"short", "***"},
		{"12345678", "***"},
		{"123456789", "123...789"},
		{"123456:ABCDEFtoken", "123...ken"},
	}
	for _, tt := range tests {
		if got := maskCredential(tt.in); got != tt.want {
			t.Errorf("maskCredential(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
