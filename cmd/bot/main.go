package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"StockTracker/internal/config"
	"StockTracker/internal/dashboard"
	"StockTracker/internal/logging"
	"StockTracker/internal/notifier"
	"StockTracker/internal/recorder"
	"StockTracker/internal/scheduler"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logger.Info("StockTracker bot starting", zap.String("config", cfgPath))

	if err := cfg.ValidateBot(); err != nil {
		logger.Fatal("config validation", zap.Error(err))
	}

	asm, err := dashboard.NewFromConfig(cfg, logger)
	if err != nil {
		logger.Fatal("init assembler", zap.Error(err))
	}
	logger.Info("data source ready", zap.String("provider", asm.Collector.Fetcher.Name()))

	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, logger)

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, logger)
		if err != nil {
			logger.Fatal("init sqlite recorder", zap.Error(err))
		}
		rec = sr
		defer sr.Close()
	} else {
		rec = recorder.NewNoopRecorder()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, asm, tn, rec, logger)
	if err := sched.RegisterAll(cfg.Schedule.DailyCron); err != nil {
		logger.Fatal("register cron tasks", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	go tn.StartPolling(ctx, sched.HandleCommand)
	logger.Info("telegram polling started")

	if os.Getenv("RUN_ON_START") == "true" {
		logger.Info("RUN_ON_START enabled, sending the daily report now")
		go sched.RunDailyNow()
	}

	logger.Info("StockTracker is running, press Ctrl+C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutdown signal received, stopping")
	cancel()
}
