package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/schoolhub/schoolbot/internal/app"
	"github.com/schoolhub/schoolbot/internal/cache"
	"github.com/schoolhub/schoolbot/internal/config"
	"github.com/schoolhub/schoolbot/internal/controller"
	"github.com/schoolhub/schoolbot/internal/controller/state"
	"github.com/schoolhub/schoolbot/internal/repository"
	"github.com/schoolhub/schoolbot/internal/service"
	"github.com/schoolhub/schoolbot/internal/storage"
	"github.com/schoolhub/schoolbot/internal/telegram"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting school bot",
		zap.String("environment", cfg.Environment))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// База данных
	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	// Redis: состояния диалогов и кэш списков книг
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("Failed to ping redis", zap.Error(err))
	}

	// Объектное хранилище для видео, голосовых и книг
	objectStore, err := storage.NewMinioStore(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioBucket,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Fatal("Failed to create object store", zap.Error(err))
	}

	// Репозитории
	accountRepo := repository.NewAccountRepository(pool)
	bookRepo := repository.NewBookRepository(pool)
	customBookRepo := repository.NewCustomBookRepository(pool)
	taskSubmissionRepo := repository.NewTaskSubmissionRepository(pool)
	readingSubmissionRepo := repository.NewReadingSubmissionRepository(pool)

	// Сервисы
	userService := service.NewUserService(accountRepo, logger)
	taskService := service.NewTaskService(taskSubmissionRepo, objectStore, logger)
	bookService := service.NewBookService(bookRepo, cache.NewBookCache(redisClient), objectStore, logger)
	readingService := service.NewReadingService(readingSubmissionRepo, customBookRepo, objectStore, logger)

	// Telegram
	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	stateManager := state.NewManager(redisClient)
	downloader := telegram.NewDownloader(b)
	sender := telegram.NewSender(b)

	reminderService := service.NewReminderService(accountRepo, taskSubmissionRepo, sender, logger)

	botController := controller.NewBotController(
		b,
		userService,
		taskService,
		bookService,
		readingService,
		stateManager,
		downloader,
		logger,
	)

	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	scheduler := app.NewScheduler(reminderService, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	if err := botController.Start(ctx); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}

	logger.Info("Bot stopped")
}
