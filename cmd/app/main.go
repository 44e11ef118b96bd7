package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/redis/go-redis/v9"

	"github.com/feedlink/feedlink/internal/config"
	"github.com/feedlink/feedlink/internal/database"
	"github.com/feedlink/feedlink/internal/database/postgres"
	"github.com/feedlink/feedlink/internal/database/schema"
	"github.com/feedlink/feedlink/internal/linkflow"
	"github.com/feedlink/feedlink/internal/notify"
	"github.com/feedlink/feedlink/internal/oauth"
	"github.com/feedlink/feedlink/internal/server"
	"github.com/feedlink/feedlink/internal/statetoken"
)

// Database pool sizing for the link server workload
const (
	dbMaxConns       = 10
	dbMaxIdleTime    = 30 * time.Minute
	dbMaxLifetime    = time.Hour
	shutdownDeadline = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	ctx := context.Background()

	dbPool, err := database.NewPool(cfg.GetDBConnString(), dbMaxConns, dbMaxIdleTime, dbMaxLifetime)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if _, err := dbPool.Exec(ctx, schema.SchemaSQL); err != nil {
		slog.Error("Failed to apply schema", "error", err)
		os.Exit(1)
	}

	states, cleanup, err := newStateStore(ctx, cfg)
	if err != nil {
		slog.Error("Failed to create state token store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	clients, err := buildProviderClients(cfg)
	if err != nil {
		slog.Error("Failed to build provider clients", "error", err)
		os.Exit(1)
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		slog.Error("Failed to create Telegram session", "error", err)
		os.Exit(1)
	}
	notifier := notify.NewTelegramNotifier(botAPI)

	bindings := postgres.NewBindingRepository(dbPool)
	linkService := linkflow.NewService(states, clients, bindings, notifier, cfg.StateTokenTTL)

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, linkService)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-stop:
		slog.Info("Shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownDeadline)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}

// newStateStore picks redis when configured, each callback replica then sees
// the same tokens. The cleanup closes the redis client.
func newStateStore(ctx context.Context, cfg *config.Config) (statetoken.Store, func(), error) {
	if cfg.RedisAddr == "" {
		slog.Info("Using in-memory state token store")
		return statetoken.NewMemoryStore(cfg.StateTokenTTL), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, err
	}

	slog.Info("Using redis state token store", "addr", cfg.RedisAddr)
	return statetoken.NewRedisStore(client, cfg.StateTokenTTL), func() { client.Close() }, nil
}

func buildProviderClients(cfg *config.Config) ([]linkflow.ProviderClient, error) {
	var clients []linkflow.ProviderClient

	if cfg.Twitter.Configured() {
		clients = append(clients, oauth.NewClient(oauth.Twitter(), cfg.Twitter.ClientID, cfg.Twitter.ClientSecret, cfg.RedirectURI()))
	}
	if cfg.Google.Configured() {
		clients = append(clients, oauth.NewClient(oauth.Google(), cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.RedirectURI()))
	}

	if len(clients) == 0 {
		return nil, errors.New("no OAuth provider configured")
	}

	for _, c := range clients {
		slog.Info("Provider configured", "provider", c.ProviderName())
	}
	return clients, nil
}
