package handlers

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// MaintenanceHandler owns the background jobs: expired sessions are
// purged nightly and the timeline cache is dropped so the first page is
// rebuilt with fresh date dividers after midnight.
type MaintenanceHandler struct {
	postgres *pgxpool.Pool
	redis    *redis.Client
	logger   *zap.SugaredLogger
	location *time.Location
	cron     *cron.Cron
}

// NewMaintenanceHandler creates a new maintenance handler
func NewMaintenanceHandler(postgres *pgxpool.Pool, redisClient *redis.Client, logger *zap.SugaredLogger, loc *time.Location) *MaintenanceHandler {
	return &MaintenanceHandler{
		postgres: postgres,
		redis:    redisClient,
		logger:   logger,
		location: loc,
		cron:     cron.New(cron.WithLocation(loc)),
	}
}

// Start registers and starts the scheduled jobs.
func (h *MaintenanceHandler) Start() error {
	if _, err := h.cron.AddFunc("5 0 * * *", h.runNightly); err != nil {
		return err
	}
	h.cron.Start()
	h.logger.Infow("Maintenance jobs scheduled", "timezone", h.location.String())
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (h *MaintenanceHandler) Stop() {
	ctx := h.cron.Stop()
	<-ctx.Done()
}

func (h *MaintenanceHandler) runNightly() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	purged, err := h.PurgeExpiredSessions(ctx)
	if err != nil {
		h.logger.Errorw("Failed to purge expired sessions", "error", err)
	} else {
		h.logger.Infow("Purged expired sessions", "count", purged)
	}

	// Date dividers shift at midnight, so the cached first page is stale
	if err := h.redis.Del(ctx, "timeline:first").Err(); err != nil {
		h.logger.Warnw("Failed to drop timeline cache", "error", err)
	}
}

// PurgeExpiredSessions deletes session rows past their expiry and
// returns the number removed.
func (h *MaintenanceHandler) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	tag, err := h.postgres.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
