package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// StartExpiredCleaner sweeps expired snippets from the database with the
// given interval. Expiry is still enforced lazily on every read; the
// sweeper only reclaims rows that would otherwise accumulate unread.
func StartExpiredCleaner(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				res, err := db.ExecContext(ctx, `
                    DELETE FROM snippets
                     WHERE expires_at IS NOT NULL
                       AND expires_at < $1
                `, time.Now())
				if err != nil {
					log.Error("failed to clean expired snippets", zap.Error(err))
					continue
				}
				if rows, _ := res.RowsAffected(); rows > 0 {
					log.Info("cleaned expired snippets", zap.Int64("removed", rows))
				}
			}
		}
	}()
}
