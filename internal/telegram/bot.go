package telegram

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot represents the Telegram bot
type Bot struct {
	API      *tgbotapi.BotAPI
	Client   *APIClient
	Registry *CommandRegistry
	LoginURL *LoginURLBuilder
}

// Config holds the bot configuration
type Config struct {
	Token         string
	APIURL        string
	APIKey        string
	PublicBaseURL string
}

// New creates a new Telegram bot
func New(cfg Config) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating Telegram session: %w", err)
	}

	return &Bot{
		API:      api,
		Client:   NewAPIClient(cfg.APIURL, cfg.APIKey),
		Registry: NewCommandRegistry(),
		LoginURL: NewLoginURLBuilder(cfg.PublicBaseURL),
	}, nil
}

// Run processes updates until the context is cancelled
func (b *Bot) Run(ctx context.Context) error {
	if err := b.RegisterCommands(); err != nil {
		return err
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30
	updates := b.API.GetUpdatesChan(updateConfig)

	slog.Info("Telegram bot is now running", "user", b.API.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.API.StopReceivingUpdates()
			return nil
		case update := <-updates:
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil || !update.Message.IsCommand() {
		return
	}
	b.Registry.Handle(ctx, b, update.Message)
}

// RegisterCommands publishes the command list so clients show autocomplete
func (b *Bot) RegisterCommands() error {
	commands := make([]tgbotapi.BotCommand, 0, len(b.Registry.Commands))
	for _, cmd := range b.Registry.Commands {
		commands = append(commands, tgbotapi.BotCommand{
			Command:     cmd.Name,
			Description: cmd.Description,
		})
	}

	if _, err := b.API.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	slog.Info("Commands registered", "count", len(commands))
	return nil
}

// reply sends a plain text message back to the chat
func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.API.Send(msg); err != nil {
		slog.Error("Failed to send reply", "chat_id", chatID, "error", err)
	}
}
