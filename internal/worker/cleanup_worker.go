package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/service/queue"
	"github.com/kingrain94/realty-api/pkg/logger"
)

type SubscriberPurger interface {
	DeleteUnconfirmedBefore(ctx context.Context, scope domain.TenantScope, before time.Time) (int64, error)
}

type TenantLister interface {
	List(ctx context.Context, filter domain.TenantFilter) ([]domain.Tenant, error)
}

type PurgeQueue interface {
	SendPurgeSubscribers(ctx context.Context, tenantID string, before time.Time) error
}

// CleanupHandler drops subscribers that never confirmed their address.
type CleanupHandler struct {
	subscribers SubscriberPurger
	logger      *logger.Logger
}

func NewCleanupHandler(subscribers SubscriberPurger, logger *logger.Logger) *CleanupHandler {
	return &CleanupHandler{subscribers: subscribers, logger: logger}
}

func (h *CleanupHandler) Name() string { return "cleanup" }

func (h *CleanupHandler) Handle(ctx context.Context, msg queue.Message) error {
	if msg.Type != queue.MessageTypePurge {
		return unprocessable("unknown message type: %s", msg.Type)
	}
	if msg.TenantID == "" || msg.BeforeDate.IsZero() {
		return unprocessable("purge message without tenant or cutoff")
	}

	deleted, err := h.subscribers.DeleteUnconfirmedBefore(ctx, domain.ScopeTo(msg.TenantID), msg.BeforeDate)
	if err != nil {
		return fmt.Errorf("failed to purge subscribers of tenant %s: %w", msg.TenantID, err)
	}

	h.logger.Info("Purged unconfirmed subscribers",
		zap.String("tenant_id", msg.TenantID),
		zap.Time("before", msg.BeforeDate),
		zap.Int64("deleted", deleted),
	)
	return nil
}

// PurgeScheduler periodically queues a subscriber purge for every active
// tenant with the newsletter enabled.
type PurgeScheduler struct {
	tenants      TenantLister
	queue        PurgeQueue
	logger       *logger.Logger
	interval     time.Duration
	retention    time.Duration
	now          func() time.Time
	shutdownChan chan struct{}
	waitGroup    sync.WaitGroup
}

func NewPurgeScheduler(
	tenants TenantLister,
	queue PurgeQueue,
	logger *logger.Logger,
	interval time.Duration,
	retention time.Duration,
) *PurgeScheduler {
	return &PurgeScheduler{
		tenants:      tenants,
		queue:        queue,
		logger:       logger,
		interval:     interval,
		retention:    retention,
		now:          time.Now,
		shutdownChan: make(chan struct{}),
	}
}

func (w *PurgeScheduler) Start() {
	w.logger.Info("Starting purge scheduler", zap.Duration("interval", w.interval))

	w.waitGroup.Add(1)
	go w.run()
}

func (w *PurgeScheduler) Stop() {
	close(w.shutdownChan)
	w.waitGroup.Wait()
	w.logger.Info("Purge scheduler stopped")
}

func (w *PurgeScheduler) run() {
	defer w.waitGroup.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.shutdownChan:
			return
		case <-ticker.C:
			if _, err := w.schedule(context.Background()); err != nil {
				w.logger.Error("Failed to schedule subscriber purges", err)
			}
		}
	}
}

// schedule returns how many tenants got a purge queued. A failed enqueue is
// logged and picked up again on the next tick.
func (w *PurgeScheduler) schedule(ctx context.Context) (int, error) {
	active := true
	tenants, err := w.tenants.List(ctx, domain.TenantFilter{Active: &active})
	if err != nil {
		return 0, fmt.Errorf("failed to list tenants: %w", err)
	}

	before := w.now().UTC().Add(-w.retention)
	queued := 0
	for i := range tenants {
		tenant := &tenants[i]
		if !tenant.FeatureEnabled(domain.FeatureNewsletter) {
			continue
		}
		if err := w.queue.SendPurgeSubscribers(ctx, tenant.ID, before); err != nil {
			w.logger.Error("Failed to enqueue subscriber purge", err, zap.String("tenant_id", tenant.ID))
			continue
		}
		queued++
	}
	return queued, nil
}
