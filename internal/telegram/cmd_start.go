package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// StartCommand handles /start
func StartCommand(ctx context.Context, b *Bot, msg *tgbotapi.Message) {
	b.reply(msg.Chat.ID, MsgWelcome)
}

// HelpCommand handles /help
func HelpCommand(ctx context.Context, b *Bot, msg *tgbotapi.Message) {
	b.reply(msg.Chat.ID, MsgHelp)
}
