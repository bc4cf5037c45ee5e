package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cardbot/internal/config"
	"cardbot/internal/handler"
	"cardbot/internal/repository/postgres"
	"cardbot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Card Bot")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully",
		zap.String("storage_key", cfg.StorageKey),
		zap.String("quiz_shuffle", cfg.QuizShuffle),
	)

	db, err := postgres.Connect(cfg.DSN(), postgres.DefaultConnectOptions, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connection established")

	if err := postgres.Migrate(db, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Storage
	slots := postgres.NewSlotRepo(db)
	persistence := service.NewPersistence(slots, cfg.StorageKey, logger)
	syncer := service.NewSyncer(persistence, logger)
	defer syncer.Close()

	store := service.LoadStore(persistence, syncer, logger)

	shuffle := service.ShuffleUniform
	if cfg.QuizShuffle == config.ShuffleLegacy {
		shuffle = service.ShuffleLegacy
	}

	// Every session gets its own source; handlers never share one
	newQuiz := func() *service.Quiz {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		return service.NewQuiz(rng.Intn, shuffle)
	}

	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized")

	h := handler.NewHandler(bot, store, newQuiz, cfg.ImportMaxBytes, logger)
	h.RegisterHandlers()

	go func() {
		logger.Info("Bot started successfully", zap.Int("cards", store.Len()))
		bot.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	bot.Stop()
	h.WaitImports()
	syncer.Flush()
	if err := syncer.LastError(); err != nil {
		logger.Warn("Last write failed", zap.Error(err))
	}

	logger.Info("Bot stopped gracefully")
}
