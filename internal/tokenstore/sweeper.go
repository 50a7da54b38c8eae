package tokenstore

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RunSweeper periodically removes expired tokens until ctx is cancelled.
func (s *Store) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.Sweep(); removed > 0 {
				zap.L().Debug("swept expired voice call tokens",
					zap.Int("removed", removed),
					zap.Int("remaining", s.Len()))
			}
		}
	}
}
