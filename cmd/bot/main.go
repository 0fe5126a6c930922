package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"birthday_bot/internal/app"
	"birthday_bot/internal/infra/config"
	idb "birthday_bot/internal/infra/database"
	"birthday_bot/internal/infra/images"
	"birthday_bot/internal/infra/logger"
	"birthday_bot/internal/infra/scheduler"
	"birthday_bot/internal/infra/telegram"

	"gopkg.in/telebot.v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Get().Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	logger.Init(cfg)
	log := logger.Get().WithField("component", "main")
	log.Infof("Configuration loaded. LogLevel: %s, Environment: %s, Timezone: %s", cfg.LogLevel, cfg.Environment, cfg.Timezone)

	// Initialize Database Connection
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to database: %v", err)
	}
	defer db.Close()
	log.Info("Database connection established successfully")

	// Initialize Repositories
	birthdayRepo := idb.NewPostgresBirthdayRepository(db)
	destinationRepo := idb.NewPostgresDestinationRepository(db)

	ctx := context.Background()

	// Initialize Telegram Bot
	pref := telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) { // Global error handler
			entry := logger.Get().WithField("component", "telebot").WithError(err)
			if c != nil && c.Sender() != nil && c.Chat() != nil {
				entry = entry.WithFields(map[string]interface{}{
					"text":      c.Text(),
					"sender_id": c.Sender().ID,
					"chat_id":   c.Chat().ID,
				})
			}
			entry.Error("Telegram handler error")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		log.Fatalf("FATAL: Could not create Telegram bot: %v", err)
	}

	// Initialize Services
	captureService := app.NewCaptureService(birthdayRepo, nil, logger.Get().WithField("component", "capture_service"))
	imagePool := images.NewDirPool(cfg.ImagesDir, logger.Get().WithField("component", "image_pool"))
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	greetingService := app.NewGreetingService(
		birthdayRepo,
		destinationRepo,
		telegram.NewTelebotAdapter(bot),
		imagePool,
		rng,
		logger.Get().WithField("component", "greeting_service"),
	)

	// Initialize Scheduler
	greetingScheduler := scheduler.NewGreetingScheduler(
		greetingService,
		cfg.Location(),
		cfg.CronSpecDailyGreeting,
		logger.Get().WithField("component", "scheduler"),
	)
	if err := greetingScheduler.Start(); err != nil {
		log.Fatalf("FATAL: Could not start greeting scheduler: %v", err)
	}

	// Register Handlers
	handlersLogger := logger.Get().WithField("component", "handlers")
	telegram.RegisterBotCommands(ctx, bot, captureService, destinationRepo, handlersLogger)
	telegram.RegisterCaptureHandlers(ctx, bot, captureService, handlersLogger)
	log.Info("Telegram handlers registered")

	log.Info("Application setup complete. Bot and Scheduler are starting...")

	// Start bot in a goroutine so it doesn't block graceful shutdown handling
	go bot.Start()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	log.Info("Shutting down application...")
	greetingScheduler.Stop()
	bot.Stop()
	log.Info("Application shut down gracefully")
}
