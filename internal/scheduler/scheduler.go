package scheduler

import (
	"context"
	"fmt"
	"strings"

	"StockTracker/internal/dashboard"
	"StockTracker/internal/model"
	"StockTracker/internal/notifier"
	"StockTracker/internal/recorder"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// cachePurgeCron drops expired series from the cache every hour.
const cachePurgeCron = "0 5 * * * *"

// Sender delivers formatted messages.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler runs the cron jobs and answers chat commands.
type Scheduler struct {
	Cron      *cron.Cron
	Assembler *dashboard.Assembler
	Notifier  Sender
	Recorder  recorder.Recorder
	Logger    *zap.Logger
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, asm *dashboard.Assembler, sender Sender, rec recorder.Recorder, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Assembler: asm,
		Notifier:  sender,
		Recorder:  rec,
		Logger:    logger,
		Ctx:       ctx,
	}
}

// RegisterAll registers the daily report and the cache purge.
func (s *Scheduler) RegisterAll(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyReport); err != nil {
		return fmt.Errorf("register daily report: %w", err)
	}
	if _, err := s.Cron.AddFunc(cachePurgeCron, s.purgeCache); err != nil {
		return fmt.Errorf("register cache purge: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Logger.Info("scheduler started", zap.Int("jobs", len(s.Cron.Entries())))
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Logger.Info("scheduler stopped")
}

// RunDailyNow executes the daily report immediately.
func (s *Scheduler) RunDailyNow() {
	s.dailyReport()
}

func (s *Scheduler) dailyReport() {
	s.Logger.Info("running daily report")
	report := s.Assembler.Build(s.Ctx, nil)
	s.record(report, recorder.TriggerSchedule)
	s.trySend(notifier.FormatReport(report))
}

func (s *Scheduler) purgeCache() {
	c := s.Assembler.Collector.Cache
	if c == nil {
		return
	}
	if n := c.Purge(); n > 0 {
		s.Logger.Debug("purged cache", zap.Int("entries", n))
	}
}

// HandleCommand processes one chat message and returns the reply. The
// first line must be the trigger command; the rest is the symbol list.
func (s *Scheduler) HandleCommand(text string) string {
	text = strings.TrimSpace(text)
	settings := s.Assembler.Settings

	fields := strings.Fields(text)
	if len(fields) > 0 {
		switch strings.ToLower(fields[0]) {
		case "/help", "/start":
			return notifier.FormatHelp(settings.Command)
		case "/detail":
			if len(fields) < 2 {
				return "Usage: /detail SYMBOL"
			}
			return s.detail(fields[1])
		}
	}

	first, rest, _ := strings.Cut(text, "\n")
	if !dashboard.MatchCommand(first, settings.Command) {
		return dashboard.PromptMessage
	}
	symbols := dashboard.ParseSymbols(rest, settings.DefaultSymbols)
	report := s.Assembler.Build(s.Ctx, symbols)
	s.record(report, recorder.TriggerCommand)
	return notifier.FormatReport(report)
}

func (s *Scheduler) detail(symbol string) string {
	d, err := s.Assembler.Detail(s.Ctx, symbol)
	if err != nil {
		s.Logger.Warn("detail failed", zap.String("symbol", symbol), zap.Error(err))
		return notifier.FormatError(strings.ToUpper(symbol), err)
	}
	return notifier.FormatDetail(d)
}

func (s *Scheduler) record(report *model.Report, trigger string) {
	runID, err := s.Recorder.RecordReport(report, trigger)
	if err != nil {
		s.Logger.Error("record report", zap.String("trigger", trigger), zap.Error(err))
		return
	}
	if runID != "" {
		s.Logger.Debug("report recorded", zap.String("run_id", runID))
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		s.Logger.Error("send notification", zap.Error(err))
	}
}
