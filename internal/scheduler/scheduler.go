package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/mfgconsole/internal/config"
	"github.com/mamadbah2/mfgconsole/internal/domain/models"
	"github.com/mamadbah2/mfgconsole/internal/service/reporting"
)

// SessionSweeper closes idle form sessions.
type SessionSweeper interface {
	Sweep(idle time.Duration) int
}

// QualityReporter produces the daily quality summary.
type QualityReporter interface {
	DailyQualitySummary(ctx context.Context, now time.Time) (models.QualitySummary, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	sessions SessionSweeper
	reporter QualityReporter
	cfg      config.Config
	location *time.Location
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance. A nil reporter disables the daily
// quality summary.
func NewScheduler(cfg config.Config, sessions SessionSweeper, reporter QualityReporter, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	location, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Reporting.Timezone, err)
	}

	// Standard 5-field cron expressions evaluated in the reporting timezone.
	c := cron.New(cron.WithLocation(location))

	return &Scheduler{
		cron:     c,
		sessions: sessions,
		reporter: reporter,
		cfg:      cfg,
		location: location,
		logger:   logger,
	}, nil
}

// Start registers the jobs and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler")

	if _, err := s.cron.AddFunc(s.cfg.Forms.SweepSchedule, s.sweepSessions); err != nil {
		return fmt.Errorf("schedule session sweep %q: %w", s.cfg.Forms.SweepSchedule, err)
	}

	if s.reporter != nil {
		if _, err := s.cron.AddFunc(s.cfg.Reporting.CronSchedule, s.generateQualitySummary); err != nil {
			return fmt.Errorf("schedule quality summary %q: %w", s.cfg.Reporting.CronSchedule, err)
		}
	} else {
		s.logger.Info("quality register disabled, daily summary not scheduled")
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) sweepSessions() {
	closed := s.sessions.Sweep(s.cfg.Forms.SessionTTL)
	s.logger.Debug("session sweep finished", zap.Int("closed", closed))
}

func (s *Scheduler) generateQualitySummary() {
	s.logger.Info("generating daily quality summary")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	summary, err := s.reporter.DailyQualitySummary(ctx, time.Now().In(s.location))
	if err != nil {
		s.logger.Error("failed to generate quality summary", zap.Error(err))
		return
	}

	s.logger.Info("quality summary stored", zap.String("summary", reporting.FormatSummary(summary)))
}
