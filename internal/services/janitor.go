package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/gymdesk/gymdesk/internal/domain/feed"
	"github.com/gymdesk/gymdesk/internal/pkg/logger"
	"github.com/gymdesk/gymdesk/internal/pkg/metrics"
)

// Janitor prunes read-markers that have not been touched within the TTL.
// Markers are never referenced again once the underlying condition resolves,
// so without pruning the table only ever grows.
type Janitor struct {
	markers feed.MarkerRepository
	ttl     time.Duration
	logger  *logger.Logger
	cron    *cron.Cron
}

// NewJanitor creates a read-marker janitor
func NewJanitor(markers feed.MarkerRepository, ttl time.Duration, log *logger.Logger) *Janitor {
	return &Janitor{
		markers: markers,
		ttl:     ttl,
		logger:  log,
		cron:    cron.New(),
	}
}

// Start schedules the daily prune and begins the cron loop
func (j *Janitor) Start() error {
	_, err := j.cron.AddFunc("@daily", j.prune)
	if err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("read-marker janitor started")
	return nil
}

// Stop halts the cron loop, waiting for a running prune to finish
func (j *Janitor) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
}

func (j *Janitor) prune() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-j.ttl)
	n, err := j.markers.DeleteStale(ctx, cutoff)
	if err != nil {
		j.logger.WithError(err).Error("read-marker prune failed")
		return
	}

	metrics.RecordMarkersPruned(n)
	if n > 0 {
		j.logger.Infof("pruned %d stale read markers", n)
	}
}
