package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"StockTracker/internal/config"
	"StockTracker/internal/dashboard"
	"StockTracker/internal/logging"
	"StockTracker/internal/recorder"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"go.uber.org/zap"
)

var configPath = flag.String("config", "configs/config.yaml", "Path to the YAML config file")

var formats = predict.Set{"text", "markdown", "json"}

func main() {
	completion().Complete(path.Base(os.Args[0]))

	_ = godotenv.Load()
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		*configPath = v
	}

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&tableCmd{}, "")
	commander.Register(&detailCmd{}, "")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion describes the command line for shell completion.
func completion() *complete.Command {
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.yaml"),
		},
		Sub: map[string]*complete.Command{
			"table": {
				Flags: map[string]complete.Predictor{
					"command": predict.Something,
					"symbols": predict.Something,
					"format":  formats,
					"csv":     predict.Files("*.csv"),
					"offline": predict.Nothing,
				},
			},
			"detail": {
				Flags: map[string]complete.Predictor{
					"s":       predict.Something,
					"format":  formats,
					"offline": predict.Nothing,
				},
			},
		},
	}
}

// app holds what every subcommand needs.
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	assembler *dashboard.Assembler
	recorder  recorder.Recorder
}

func setup(offline bool) (*app, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}
	if offline {
		cfg.DataSource.Provider = "mock"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	asm, err := dashboard.NewFromConfig(cfg, logger)
	if err != nil {
		return nil, err
	}

	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		rec = sr
	}
	return &app{cfg: cfg, logger: logger, assembler: asm, recorder: rec}, nil
}

func (a *app) close() {
	a.recorder.Close()
	a.logger.Sync()
}
