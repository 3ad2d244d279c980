package scheduler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"guest-recovery-portal/internal/cleanup"
	"guest-recovery-portal/internal/config"
)

// Scheduler runs the render-artifact cleanup on a daily cron.
type Scheduler struct {
	cron      *cron.Cron
	cleanup   *cleanup.Service
	cfg       *config.Config
	isRunning bool
}

// NewScheduler creates a new scheduler.
func NewScheduler(svc *cleanup.Service, cfg *config.Config) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		cleanup: svc,
		cfg:     cfg,
	}
}

// Start registers the daily cleanup job and starts the cron loop.
func (s *Scheduler) Start() error {
	if !s.cfg.Cleanup.DailyRunEnabled {
		log.Info().Msg("scheduler: daily cleanup is disabled in configuration")
		return nil
	}

	cronSpec := parseDailyRunTime(s.cfg.Cleanup.DailyRunTime)

	_, err := s.cron.AddFunc(cronSpec, func() {
		if err := s.RunNow(); err != nil {
			log.Error().Err(err).Msg("scheduler: daily cleanup failed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to register cleanup job: %w", err)
	}

	s.cron.Start()
	s.isRunning = true
	log.Info().
		Str("daily_run_time", s.cfg.Cleanup.DailyRunTime).
		Str("cron", cronSpec).
		Msg("scheduler started")
	return nil
}

// Stop halts the cron loop.
func (s *Scheduler) Stop() {
	if s.isRunning {
		s.cron.Stop()
		s.isRunning = false
		log.Info().Msg("scheduler stopped")
	}
}

// RunNow triggers one cleanup pass immediately.
func (s *Scheduler) RunNow() error {
	_, err := s.cleanup.Run(cleanup.Config{Retention: s.cfg.Cleanup.Retention()})
	return err
}

// IsRunning reports whether the cron loop is active.
func (s *Scheduler) IsRunning() bool {
	return s.isRunning
}

// parseDailyRunTime converts an "HH:MM" config value into a cron spec,
// defaulting to 03:00 for anything malformed.
func parseDailyRunTime(value string) string {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 {
		return "0 3 * * *"
	}
	hour, err1 := strconv.Atoi(parts[0])
	minute, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "0 3 * * *"
	}
	return fmt.Sprintf("%d %d * * *", minute, hour)
}
