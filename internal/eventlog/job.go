package eventlog

import (
	"context"
	"time"

	"github.com/linkup-app/linkup-engine/internal/logger"
)

// CleanupJob periodically prunes old events from the log
type CleanupJob struct {
	svc           Service
	interval      time.Duration
	retentionDays int
}

// NewCleanupJob creates a cleanup job with the given schedule
func NewCleanupJob(svc Service, interval time.Duration, retentionDays int) *CleanupJob {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}
	return &CleanupJob{svc: svc, interval: interval, retentionDays: retentionDays}
}

// Run blocks until ctx is cancelled, cleaning up on each tick.
func (j *CleanupJob) Run(ctx context.Context) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgCleanupJobStarted, "interval", j.interval, "retention_days", j.retentionDays)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info(LogMsgCleanupJobStopped)
			return
		case <-ticker.C:
			removed, err := j.svc.CleanupOldEvents(ctx, j.retentionDays)
			if err != nil {
				log.Error(LogMsgCleanupFailed, "error", err)
				continue
			}
			log.Info(LogMsgCleanupCompleted, "removed", removed)
		}
	}
}
