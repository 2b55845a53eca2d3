package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/skilllink_bot/internal/api"
	"github.com/Freeeeeet/skilllink_bot/internal/app"
	"github.com/Freeeeeet/skilllink_bot/internal/config"
	"github.com/Freeeeeet/skilllink_bot/internal/controller"
	"github.com/Freeeeeet/skilllink_bot/internal/repository"
	"github.com/Freeeeeet/skilllink_bot/internal/service"
	"github.com/Freeeeeet/skilllink_bot/migrations"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting SkillLink bot",
		zap.String("environment", cfg.Environment),
		zap.String("api_base_url", cfg.APIBaseURL),
		zap.String("timezone", cfg.Timezone))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Хранилище сессий
	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, migrations.FS, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Клиент бэкенда и сервисы
	client := api.New(cfg.APIBaseURL, cfg.APITimeout, logger)

	sessions := service.NewSessionStore(repository.NewSessionRepository(pool), client, logger)
	if err := sessions.Restore(ctx); err != nil {
		// Без сохранённых сессий бот работает, пользователи войдут заново
		logger.Error("Failed to restore sessions", zap.Error(err))
	}

	services := controller.Services{
		Sessions:   sessions,
		Auth:       service.NewAuthService(client, sessions, logger),
		Search:     service.NewSearchService(client, cfg.SuggestDebounce, logger),
		Booking:    service.NewBookingFlow(client, logger),
		Dashboards: service.NewDashboardService(client, sessions, cfg.Location(), logger),
	}

	b, err := bot.New(cfg.TelegramToken, bot.WithErrorsHandler(func(err error) {
		logger.Warn("Telegram error", zap.Error(err))
	}))
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(b, services, cfg.Location(), logger)
	defer botController.Stop()

	if err := botController.RegisterHandlers(ctx); err != nil {
		// Меню команд не критично для работы
		logger.Warn("Failed to register bot commands", zap.Error(err))
	}

	logger.Info("✅ Bot is running")
	if err := botController.Start(ctx); err != nil {
		logger.Error("Bot stopped with error", zap.Error(err))
	}
}
