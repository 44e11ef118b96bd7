package telegram

import (
	"context"
	"net/url"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedlink/feedlink/internal/domain"
)

func TestLoginURLBuilder(t *testing.T) {
	b := NewLoginURLBuilder("https://link.example.com/")

	got := b.Build(12345, domain.ProviderTwitter)

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "/login", u.Path)
	assert.Equal(t, "12345", u.Query().Get("chat_id"))
	assert.Equal(t, "twitter", u.Query().Get("provider"))
}

func TestLoginURLBuilder_NegativeChatID(t *testing.T) {
	// Telegram group chats have negative IDs
	b := NewLoginURLBuilder("https://link.example.com")

	got := b.Build(-1001234, domain.ProviderGoogle)

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "-1001234", u.Query().Get("chat_id"))
}

func TestCommandRegistry_Dispatch(t *testing.T) {
	registry := NewCommandRegistry()

	var handled string
	registry.Register(Command{Name: "connect", Description: "link"}, func(ctx context.Context, b *Bot, msg *tgbotapi.Message) {
		handled = msg.Command()
	})

	msg := &tgbotapi.Message{
		Text:     "/connect twitter",
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 8}},
	}
	registry.Handle(context.Background(), nil, msg)

	assert.Equal(t, "connect", handled)
}

func TestCommandRegistry_UnknownCommandIgnored(t *testing.T) {
	registry := NewCommandRegistry()
	RegisterDefaultCommands(registry)

	msg := &tgbotapi.Message{
		Text:     "/dance",
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 6}},
	}

	assert.NotPanics(t, func() {
		registry.Handle(context.Background(), nil, msg)
	})
}

func TestRegisterDefaultCommands(t *testing.T) {
	registry := NewCommandRegistry()
	RegisterDefaultCommands(registry)

	assert.Len(t, registry.Commands, 4)
	for _, name := range []string{"start", "help", "connect", "status"} {
		assert.Contains(t, registry.Handlers, name)
	}
}

func TestConnectButtonLabel(t *testing.T) {
	assert.Equal(t, "Sign in with Twitter", connectButtonLabel(domain.ProviderTwitter))
	assert.Equal(t, "Sign in with Google", connectButtonLabel(domain.ProviderGoogle))
	assert.Equal(t, "Sign in", connectButtonLabel("other"))
}

func TestFormatStatus(t *testing.T) {
	linked := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	t.Run("no bindings", func(t *testing.T) {
		assert.Equal(t, MsgNoLinks, formatStatus(nil))
	})

	t.Run("twitter handle gets @ prefix", func(t *testing.T) {
		got := formatStatus([]domain.Binding{
			{ChatID: 1, Provider: domain.ProviderTwitter, ExternalAccountID: "alice", LinkedAt: linked},
		})
		assert.Contains(t, got, "@alice")
		assert.Contains(t, got, "2026-08-01")
	})

	t.Run("google email unchanged", func(t *testing.T) {
		got := formatStatus([]domain.Binding{
			{ChatID: 1, Provider: domain.ProviderGoogle, ExternalAccountID: "alice@example.com", LinkedAt: linked},
		})
		assert.Contains(t, got, "google: alice@example.com")
	})
}
