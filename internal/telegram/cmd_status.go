package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/feedlink/feedlink/internal/domain"
)

// StatusCommand handles /status by asking the link server for the chat's
// current bindings.
func StatusCommand(ctx context.Context, b *Bot, msg *tgbotapi.Message) {
	bindings, err := b.Client.GetStatus(ctx, msg.Chat.ID)
	if err != nil {
		slog.Error("Failed to fetch link status", "chat_id", msg.Chat.ID, "error", err)
		b.reply(msg.Chat.ID, MsgGenericError)
		return
	}

	b.reply(msg.Chat.ID, formatStatus(bindings))
}

func formatStatus(bindings []domain.Binding) string {
	if len(bindings) == 0 {
		return MsgNoLinks
	}

	var sb strings.Builder
	sb.WriteString(MsgStatusHeader)
	for _, bd := range bindings {
		account := bd.ExternalAccountID
		if bd.Provider == domain.ProviderTwitter {
			account = "@" + account
		}
		sb.WriteString(fmt.Sprintf("\n• %s: %s (linked %s)", bd.Provider, account, bd.LinkedAt.Format("2006-01-02")))
	}
	return sb.String()
}
