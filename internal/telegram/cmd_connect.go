package telegram

import (
	"context"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/feedlink/feedlink/internal/domain"
)

// ConnectCommand handles /connect [provider]. It hands the user a login
// button pointing at the link server, which starts the flow for this chat.
func ConnectCommand(ctx context.Context, b *Bot, msg *tgbotapi.Message) {
	provider := strings.ToLower(strings.TrimSpace(msg.CommandArguments()))
	if provider == "" {
		provider = domain.ProviderTwitter
	}

	if !domain.IsValidProvider(provider) {
		b.reply(msg.Chat.ID, MsgUnknownProvider)
		return
	}

	loginURL := b.LoginURL.Build(msg.Chat.ID, provider)

	reply := tgbotapi.NewMessage(msg.Chat.ID, MsgConnectPrompt)
	reply.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL(connectButtonLabel(provider), loginURL),
		),
	)

	if _, err := b.API.Send(reply); err != nil {
		slog.Error("Failed to send connect button", "chat_id", msg.Chat.ID, "error", err)
	}
}

func connectButtonLabel(provider string) string {
	switch provider {
	case domain.ProviderTwitter:
		return "Sign in with Twitter"
	case domain.ProviderGoogle:
		return "Sign in with Google"
	default:
		return "Sign in"
	}
}
