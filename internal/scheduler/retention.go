package scheduler

import (
	"context"
	"time"

	"quotewidget_backend/platform/logger"
)

const defaultRetentionInterval = 24 * time.Hour

// LeadRetentionScheduler periodically enqueues a retention purge so the
// deletion itself runs on the durable worker queue.
type LeadRetentionScheduler struct {
	client        *Client
	log           *logger.Logger
	interval      time.Duration
	retentionDays int
}

func NewLeadRetentionScheduler(client *Client, log *logger.Logger, interval time.Duration, retentionDays int) *LeadRetentionScheduler {
	if interval <= 0 {
		interval = defaultRetentionInterval
	}

	return &LeadRetentionScheduler{
		client:        client,
		log:           log,
		interval:      interval,
		retentionDays: retentionDays,
	}
}

func (s *LeadRetentionScheduler) Run(ctx context.Context) {
	if s == nil || s.client == nil || s.retentionDays <= 0 {
		return
	}

	s.enqueue(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.enqueue(ctx)
		}
	}
}

func (s *LeadRetentionScheduler) enqueue(ctx context.Context) {
	if err := s.client.EnqueueLeadRetention(ctx, s.retentionDays); err != nil {
		s.log.Warn("failed to enqueue lead retention purge", "error", err)
	}
}
