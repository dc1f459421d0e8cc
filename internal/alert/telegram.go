// Package alert sends outbound recommendation alerts over Telegram.
// Alerting is strictly fire-and-report: a transport failure is returned
// to the caller but never alters the already-computed scan results.
package alert

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/seenimoa/newsadvisor/pkg/models"
)

// Notifier delivers a headline analysis to an external channel.
type Notifier interface {
	Send(analysis models.HeadlineAnalysis) error
	Enabled() bool
}

// Telegram sends alerts to a fixed chat via the Bot API.
type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegram creates a Telegram notifier. An empty token yields a
// disabled notifier rather than an error, so missing credentials just
// switch alerting off.
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	if token == "" || chatID == 0 {
		return &Telegram{}, nil
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &Telegram{api: api, chatID: chatID}, nil
}

// Enabled reports whether the notifier has working credentials.
func (t *Telegram) Enabled() bool { return t.api != nil }

// Send delivers one analysis as a plain-text message.
func (t *Telegram) Send(analysis models.HeadlineAnalysis) error {
	if !t.Enabled() {
		return fmt.Errorf("telegram alerts not configured")
	}
	msg := tgbotapi.NewMessage(t.chatID, FormatMessage(analysis))
	msg.DisableWebPagePreview = true
	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}

// SendText delivers an arbitrary plain-text message, used by the
// alert-test endpoint.
func (t *Telegram) SendText(text string) error {
	if !t.Enabled() {
		return fmt.Errorf("telegram alerts not configured")
	}
	msg := tgbotapi.NewMessage(t.chatID, text)
	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}

// FormatMessage renders the alert template: headline, sentiment label
// and score, sector, and the ranked recommendations with their average
// daily return as a percentage.
func FormatMessage(analysis models.HeadlineAnalysis) string {
	var b strings.Builder

	emoji := "🟢"
	verb := "Consider"
	if analysis.Sentiment.Label == models.SentimentNegative {
		emoji = "🔴"
		verb = "Watch out for"
	}

	fmt.Fprintf(&b, "%s [%s] %s\n", emoji, analysis.Sentiment.Label, analysis.Headline.Title)
	fmt.Fprintf(&b, "Sector: %s | Score: %.2f\n", analysis.Sector, analysis.Sentiment.Score)

	if len(analysis.Recommendations) == 0 {
		b.WriteString("No stocks met the filter criteria.")
		return b.String()
	}

	fmt.Fprintf(&b, "%s:\n", verb)
	for i, rec := range analysis.Recommendations {
		fmt.Fprintf(&b, "%d. %s (%s, avg daily %.3f%%)\n",
			i+1, rec.Symbol, rec.Action, rec.AvgReturn*100)
	}
	if analysis.Headline.Link != "" {
		b.WriteString(analysis.Headline.Link)
	}
	return strings.TrimRight(b.String(), "\n")
}
