package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"

	"github.com/Kerhoff/CartoboT/internal/api"
	"github.com/Kerhoff/CartoboT/internal/config"
	"github.com/Kerhoff/CartoboT/internal/handlers"
	"github.com/Kerhoff/CartoboT/internal/metrics"
	"github.com/Kerhoff/CartoboT/internal/repository/mongodb"
	"github.com/Kerhoff/CartoboT/internal/service"
	"github.com/Kerhoff/CartoboT/internal/telegram"
	"github.com/Kerhoff/CartoboT/pkg/logger"
)

func main() {
	// Best effort; in production configuration comes from the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	l := logger.New(cfg.LogLevel)
	l.Info("Starting CartoboT...")

	// Document store
	db := config.NewDatabase(cfg, l)
	connectCtx, connectCancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	if err := db.Connect(connectCtx); err != nil {
		connectCancel()
		l.Fatalf("Failed to connect to document store: %v", err)
	}
	connectCancel()

	if err := db.EnsureIndexes(context.Background()); err != nil {
		l.Fatalf("Failed to ensure indexes: %v", err)
	}

	// Repositories
	userRepo := mongodb.NewUserRepository(db)
	listRepo := mongodb.NewShoppingListRepository(db)

	// Service layer
	svc := service.New(l, userRepo, listRepo)

	// Metrics
	m := metrics.New()

	// Telegram bot
	bot, err := telegram.NewBot(cfg.TelegramToken, l, m)
	if err != nil {
		l.Fatalf("Failed to create Telegram bot: %v", err)
	}

	// Register command handlers
	bot.RegisterCommand("start", handlers.NewStartHandler(l))
	bot.RegisterCommand("help", handlers.NewHelpHandler(l))

	// Shopping list handlers
	bot.RegisterCommand("add", handlers.NewAddHandler(svc, l))
	bot.RegisterCommand("remove", handlers.NewRemoveHandler(svc, l))
	bot.RegisterCommand("update", handlers.NewUpdateHandler(svc, l))
	bot.RegisterCommand("check", handlers.NewCheckHandler(svc, l))
	bot.RegisterCommand("uncheck", handlers.NewUncheckHandler(svc, l))
	bot.RegisterCommand("list", handlers.NewListHandler(svc, l))
	bot.RegisterCommand("clearbought", handlers.NewClearBoughtHandler(svc, l))
	bot.RegisterCommand("clearall", handlers.NewClearAllHandler(svc, l))
	bot.RegisterCommand("reset", handlers.NewResetHandler(svc, l))
	bot.RegisterCommand("profile", handlers.NewProfileHandler(svc, l))

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		l.Info("Received shutdown signal...")
		cancel()
	}()

	// HTTP server: health, metrics, and the JSON API
	apiServer := api.NewServer(svc, db, l)
	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: apiServer.Handler(),
	}

	go func() {
		l.Infof("HTTP server listening on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Errorf("HTTP server error: %v", err)
		}
	}()

	// Telegram bot polling
	go func() {
		if err := bot.Start(ctx); err != nil {
			l.Errorf("Bot error: %v", err)
		}
	}()

	l.Info("CartoboT started successfully")

	<-ctx.Done()

	l.Info("Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	var shutdownErr *multierror.Error
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		shutdownErr = multierror.Append(shutdownErr, err)
	}
	if err := db.Close(shutdownCtx); err != nil {
		shutdownErr = multierror.Append(shutdownErr, err)
	}
	if err := shutdownErr.ErrorOrNil(); err != nil {
		l.Errorf("Shutdown finished with errors: %v", err)
	}

	l.Info("CartoboT stopped")
}
