package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// CommandHandler handles a bot command
type CommandHandler func(ctx context.Context, b *Bot, msg *tgbotapi.Message)

// Command describes a bot command for registration
type Command struct {
	Name        string
	Description string
}

// CommandRegistry holds the registered commands
type CommandRegistry struct {
	Commands []Command
	Handlers map[string]CommandHandler
}

// NewCommandRegistry creates a new registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		Handlers: make(map[string]CommandHandler),
	}
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(cmd Command, handler CommandHandler) {
	r.Commands = append(r.Commands, cmd)
	r.Handlers[cmd.Name] = handler
}

// Handle dispatches a command message to its handler
func (r *CommandRegistry) Handle(ctx context.Context, b *Bot, msg *tgbotapi.Message) {
	if h, ok := r.Handlers[msg.Command()]; ok {
		h(ctx, b, msg)
	}
}

// RegisterDefaultCommands wires up the standard command set
func RegisterDefaultCommands(r *CommandRegistry) {
	r.Register(Command{Name: "start", Description: "Welcome and usage"}, StartCommand)
	r.Register(Command{Name: "help", Description: "Show available commands"}, HelpCommand)
	r.Register(Command{Name: "connect", Description: "Link an external account"}, ConnectCommand)
	r.Register(Command{Name: "status", Description: "Show linked accounts"}, StatusCommand)
}
