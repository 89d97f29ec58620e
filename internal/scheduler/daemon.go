// Package scheduler runs the scheduled-submission daemon: a cron-driven
// poll loop that finds due submissions and completes them as auto-submits
// or reminders.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/applytrack/timing-be/internal/notify"
	"github.com/applytrack/timing-be/internal/timing/domain"
)

// Store is the persistence surface the daemon needs.
type Store interface {
	DueRecords(ctx context.Context, now time.Time) ([]domain.TimingRecord, error)
	GetJob(ctx context.Context, userID, jobID string) (*domain.Job, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	MarkJobApplied(ctx context.Context, userID, jobID string, appliedAt time.Time) error
	ClaimProcessed(ctx context.Context, rec *domain.TimingRecord) error
}

// Config holds daemon configuration
type Config struct {
	Logger       *slog.Logger
	Store        Store
	Sender       notify.Sender
	PollInterval time.Duration
	RunOnStartup bool
	Concurrency  int
}

// Daemon polls for due scheduled submissions on a fixed interval.
type Daemon struct {
	logger       *slog.Logger
	store        Store
	sender       notify.Sender
	pollInterval time.Duration
	runOnStartup bool
	concurrency  int
	cron         *cron.Cron
	now          func() time.Time
}

// NewDaemon creates a daemon instance
func NewDaemon(cfg *Config) *Daemon {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	return &Daemon{
		logger:       cfg.Logger,
		store:        cfg.Store,
		sender:       cfg.Sender,
		pollInterval: cfg.PollInterval,
		runOnStartup: cfg.RunOnStartup,
		concurrency:  concurrency,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Start begins the poll loop. A cycle that is still running when the next
// tick fires is not re-entered; the tick is skipped instead.
func (d *Daemon) Start(ctx context.Context) error {
	d.logger.Info("Starting scheduler daemon",
		slog.Duration("poll_interval", d.pollInterval),
		slog.Int("concurrency", d.concurrency),
		slog.Bool("run_on_startup", d.runOnStartup),
	)

	if d.runOnStartup {
		if err := d.RunOnce(ctx); err != nil {
			d.logger.Error("Startup poll cycle failed",
				slog.Any("error", err),
			)
		}
	}

	cronLog := newCronLogger(d.logger)
	d.cron = cron.New(
		cron.WithLogger(cronLog),
		cron.WithChain(
			cron.Recover(cronLog),
			cron.SkipIfStillRunning(cronLog),
		),
	)

	spec := fmt.Sprintf("@every %s", d.pollInterval)
	if _, err := d.cron.AddFunc(spec, func() {
		if err := d.RunOnce(ctx); err != nil {
			d.logger.Error("Poll cycle failed",
				slog.Any("error", err),
			)
		}
	}); err != nil {
		return fmt.Errorf("failed to register poll job: %w", err)
	}

	d.cron.Start()
	return nil
}

// Stop stops the poll loop and waits for an in-flight cycle to finish
func (d *Daemon) Stop() {
	d.logger.Info("Stopping scheduler daemon...")
	if d.cron != nil {
		stopCtx := d.cron.Stop()
		<-stopCtx.Done()
	}
	d.logger.Info("Scheduler daemon stopped")
}
