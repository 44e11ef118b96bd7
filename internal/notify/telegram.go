package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/feedlink/feedlink/internal/domain"
	"github.com/feedlink/feedlink/internal/metrics"
)

// TelegramNotifier sends plain text messages to Telegram chats. It is the
// completion-notification path of the link flow; callers treat delivery as
// best-effort.
type TelegramNotifier struct {
	bot *tgbotapi.BotAPI
}

// NewTelegramNotifier wraps an authorized bot client.
func NewTelegramNotifier(bot *tgbotapi.BotAPI) *TelegramNotifier {
	return &TelegramNotifier{bot: bot}
}

// Notify sends text to the chat. Errors wrap domain.ErrDeliveryFailed so the
// coordinator can log and swallow them without inspecting transport details.
func (n *TelegramNotifier) Notify(ctx context.Context, chatID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}

	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		metrics.NotificationFailures.Inc()
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}
	return nil
}
