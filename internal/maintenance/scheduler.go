// Package maintenance runs the periodic housekeeping jobs: purging expired
// sessions, expired idempotency records and stale view markers. Jobs are
// scheduled with robfig/cron using the standard five-field syntax.
package maintenance

import (
	"context"
	"time"

	cron "github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/go-video-backend/internal/repo"
)

// jobTimeout caps a single purge run so a wedged DB cannot pile up workers.
const jobTimeout = 2 * time.Minute

// Scheduler owns the cron instance and the handles it needs to purge.
type Scheduler struct {
	DB         *gorm.DB
	ViewWindow time.Duration // markers older than this are stale

	cron   *cron.Cron
	cancel context.CancelFunc
	ctx    context.Context
}

// New builds a Scheduler. Start must be called to begin running jobs.
func New(db *gorm.DB, viewWindow time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		DB:         db,
		ViewWindow: viewWindow,
		cron:       cron.New(),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start registers the purge job on schedule (cron syntax, e.g. "17 3 * * *")
// and starts the cron loop. An initial purge runs immediately in the
// background so a long schedule does not delay the first cleanup.
func (s *Scheduler) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, s.purgeJob); err != nil {
		return err
	}
	s.cron.Start()
	log.Info().Str("schedule", schedule).Msg("maintenance scheduler started")

	go s.purgeJob()
	return nil
}

// Stop halts the cron loop and cancels any in-flight purge.
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
	log.Info().Msg("maintenance scheduler stopped")
}

// purgeJob sweeps all three expirable tables in one pass. Individual failures
// are logged and do not stop the remaining sweeps.
func (s *Scheduler) purgeJob() {
	ctx, cancel := context.WithTimeout(s.ctx, jobTimeout)
	defer cancel()

	now := time.Now().UTC()
	start := now

	sessions, err := repo.PurgeExpiredSessions(ctx, s.DB, now)
	if err != nil {
		log.Error().Err(err).Msg("purge expired sessions")
	}
	idem, err := repo.PurgeExpiredIdempotency(ctx, s.DB, now)
	if err != nil {
		log.Error().Err(err).Msg("purge expired idempotency records")
	}
	views, err := repo.PurgeStaleViews(ctx, s.DB, now.Add(-s.ViewWindow))
	if err != nil {
		log.Error().Err(err).Msg("purge stale view markers")
	}

	log.Info().
		Int64("sessions", sessions).
		Int64("idempotency", idem).
		Int64("views", views).
		Dur("took", time.Since(start)).
		Msg("maintenance purge completed")
}
