package web

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// CleanupVisitors drops visits older than the retention window.
func (s *Server) CleanupVisitors(ctx context.Context) (int64, error) {
	retention := s.opts.VisitorRetention
	if retention <= 0 {
		retention = 365 * 24 * time.Hour
	}
	removed, err := s.store.CleanupVisitors(ctx, s.clk.Now().Add(-retention))
	if err != nil {
		log.Error().Err(err).Msg("visitor cleanup")
		return 0, err
	}
	if removed > 0 {
		log.Info().Int64("removed", removed).Dur("retention", retention).Msg("visitor cleanup")
	}
	return removed, nil
}

// RunRetention cleans up once immediately and then every interval until
// ctx is done.
func (s *Server) RunRetention(ctx context.Context, interval time.Duration) {
	_, _ = s.CleanupVisitors(ctx)
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			_, _ = s.CleanupVisitors(ctx)
		}
	}
}
