package auth

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// StartSweeper periodically deletes revoked-token records older than
// the token validity window. Such records can never match a verifiable
// token again, so dropping them keeps the deny-list bounded. Blocks
// until ctx is cancelled; run it in its own goroutine.
func StartSweeper(ctx context.Context, store RevocationStore, interval, validity time.Duration, logger zerolog.Logger) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.Sweep(time.Now().Add(-validity))
			if err != nil {
				logger.Warn().Err(err).Msg("revocation sweep failed")
				continue
			}
			if n > 0 {
				logger.Info().Int64("removed", n).Msg("swept expired revocations")
			}
		}
	}
}
