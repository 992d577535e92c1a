package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"rukmini-chat/backend/internal/api"
	"rukmini-chat/backend/internal/config"
	"rukmini-chat/backend/internal/conversation"
	"rukmini-chat/backend/internal/database"
	"rukmini-chat/backend/internal/llm"
	"rukmini-chat/backend/internal/model"
	"rukmini-chat/backend/internal/reply"
	"rukmini-chat/backend/internal/repository"
	"rukmini-chat/backend/internal/service"
)

// App is the assembled server.
type App struct {
	DB       *sql.DB
	Server   *http.Server
	Registry *conversation.Registry
	LLM      llm.Provider
}

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)

	logConfigSource()

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return 1
	}
	defer app.Close()

	go checkOllama(app.LLM, cfg.OllamaURL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go app.Registry.RunCleanup(ctx, cfg.SessionCleanup)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "port", cfg.AppPort, "reply_mode", cfg.ReplyMode)
		errCh <- app.Server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			return 1
		}
	case <-ctx.Done():
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.Server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
			return 1
		}
	}

	return 0
}

// NewApp opens the database and wires stores, services and handlers.
func NewApp(cfg *config.Config) (*App, error) {
	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	slog.Info("Successfully connected to SQLite database.", "path", cfg.DatabasePath)

	var provider llm.Provider
	if cfg.OllamaURL != "" {
		provider = llm.NewOllamaProvider(cfg.OllamaURL)
	}
	replyService := service.NewReplyService(provider, cfg.OllamaModel, cfg.SystemPrompt)

	store := repository.NewSQLiteStore(db)
	sessionCfg := conversation.Config{
		DefaultGender: model.Gender(cfg.DefaultGender),
		UserName:      cfg.DefaultUserName,
		Observer:      conversation.NewSlogObserver(slog.Default()),
	}
	// Zero limits from config disable idle eviction or the session cap.
	registry := conversation.NewRegistry(store, newReplyClient(cfg), sessionCfg,
		conversation.WithIdleTTL(cfg.SessionIdleTTL),
		conversation.WithMaxSessions(cfg.MaxSessions),
	)

	router := api.NewRouter(api.NewReplyHandler(replyService), api.NewWidgetHandler(), registry)

	port := cfg.AppPort
	if port == 0 {
		port = 8000
	}
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Replies from the language model can take long.
		IdleTimeout:       120 * time.Second,
	}

	return &App{
		DB:       db,
		Server:   server,
		Registry: registry,
		LLM:      provider,
	}, nil
}

// Close cancels live conversations and closes the database.
func (a *App) Close() {
	a.Registry.Close()
	if err := a.DB.Close(); err != nil {
		slog.Error("Failed to close database connection", "error", err)
	}
}

// newReplyClient picks what the widget conversations talk to.
func newReplyClient(cfg *config.Config) reply.Client {
	if cfg.ReplyMode == config.ReplyModeCanned {
		slog.Info("Widget replies are canned.")
		return reply.NewCannedClient(cfg.DefaultUserName)
	}
	slog.Info("Widget replies come from the reply endpoint.", "endpoint", cfg.ReplyEndpoint, "timeout", cfg.ReplyTimeout)
	return reply.NewHTTPClient(cfg.ReplyEndpoint, cfg.ReplyTimeout)
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

// checkOllama logs whether the language model answers. The server starts
// regardless; /chat falls back to canned replies while it is down.
func checkOllama(provider llm.Provider, ollamaURL string) {
	if provider == nil {
		slog.Info("No language model configured; /chat answers with canned replies.")
		return
	}
	for attempt := 1; attempt <= 5; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := provider.Ping(ctx)
		cancel()
		if err == nil {
			slog.Info("Ollama is ready.", "url", ollamaURL)
			return
		}
		slog.Debug("Ollama not ready yet, retrying in 3 seconds...", "url", ollamaURL, "error", err)
		time.Sleep(3 * time.Second)
	}
	slog.Warn("Ollama is not reachable; /chat will use canned replies until it is.", "url", ollamaURL)
}
