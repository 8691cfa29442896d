package governance

import (
	"context"
	"errors"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SweepOverdue persists verdicts for active proposals whose voting window
// has closed. Lazy finalization on touch remains authoritative; the sweep
// only makes verdicts visible without waiting for the next caller.
func (s *Service) SweepOverdue(ctx context.Context) {
	ids, err := s.store.ListExpiredActive(s.clock.Now())
	if err != nil {
		s.log.Warn("sweep: list overdue proposals", zap.Error(err))
		return
	}
	for _, id := range ids {
		if _, err := s.Finalize(ctx, id); err != nil && !errors.Is(err, ErrTooEarly) {
			s.log.Warn("sweep: finalize", zap.Uint64("id", id), zap.Error(err))
		}
	}
}

// StartSweeper schedules the finalization sweep once a minute. The caller
// owns the returned cron and stops it on shutdown.
func (s *Service) StartSweeper(ctx context.Context) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc("@every 1m", func() { s.SweepOverdue(ctx) }); err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
