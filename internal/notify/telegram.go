package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/serenity-health/serenity/internal/models"
	"go.uber.org/zap"
)

// Notifier pushes advisory updates to the therapist's Telegram chat.
// Optional: a nil *Notifier is safe to call and does nothing. Delivery
// failures are logged and swallowed; notifications are never load-bearing.
type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
	logger *zap.Logger
}

func New(token string, chatID int64, logger *zap.Logger) (*Notifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &Notifier{
		api:    api,
		chatID: chatID,
		logger: logger,
	}, nil
}

// SessionSummaryReady announces that a new session note has been written.
func (n *Notifier) SessionSummaryReady(note *models.ClinicalNote) {
	if n == nil {
		return
	}
	text := fmt.Sprintf("📋 Session note ready (%s)\n%s", note.Type, note.Summary)
	n.send(text)
}

// Briefing forwards the morning briefing line.
func (n *Notifier) Briefing(text string) {
	if n == nil {
		return
	}
	n.send("☀️ " + text)
}

func (n *Notifier) send(text string) {
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.api.Send(msg); err != nil {
		n.logger.Error("Failed to send telegram notification", zap.Error(err))
	}
}
