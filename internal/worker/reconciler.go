package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/cyberscripts/storefront/internal/adapter/gateway"
	"github.com/cyberscripts/storefront/internal/domain/model"
)

// StoreFacade exposes the subset of application functionality required by the
// reconciler.
type StoreFacade interface {
	StalePendingOrders(ctx context.Context, age time.Duration, limit int) ([]model.Order, error)
	ReconcileOrder(ctx context.Context, order model.Order) (model.OrderStatus, error)
}

// Reconciler sweeps gateway orders whose webhook never arrived and settles
// them from provider state, using a pool of workers.
type Reconciler struct {
	facade       StoreFacade
	pollInterval time.Duration
	staleAge     time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewReconciler constructs the reconciliation worker pool.
func NewReconciler(facade StoreFacade, pollInterval, staleAge time.Duration, batchSize, workers int, logger *slog.Logger) *Reconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Reconciler{
		facade:       facade,
		pollInterval: pollInterval,
		staleAge:     staleAge,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Order, batchSize*workers),
	}
}

// Start launches background reconciliation.
func (r *Reconciler) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *Reconciler) dispatch(ctx context.Context) {
	defer r.wg.Done()
	defer close(r.jobs)
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.fetchAndDispatch(ctx)
		}
	}
}

func (r *Reconciler) fetchAndDispatch(ctx context.Context) {
	orders, err := r.facade.StalePendingOrders(ctx, r.staleAge, r.batchSize)
	if err != nil {
		r.logger.Error("fetch stale orders failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case r.jobs <- order:
		}
	}
}

func (r *Reconciler) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-r.jobs:
			if !ok {
				return
			}
			r.reconcile(ctx, order)
		}
	}
}

func (r *Reconciler) reconcile(ctx context.Context, order model.Order) {
	status, err := r.facade.ReconcileOrder(ctx, order)
	if err != nil {
		var tooMany gateway.TooManyRequestsError
		if errors.As(err, &tooMany) {
			r.logger.Warn("gateway rate limited", slog.Duration("retry_after", tooMany.RetryAfter))
			time.Sleep(tooMany.RetryAfter)
			return
		}
		r.logger.Error("order reconciliation failed",
			slog.Int64("order", order.ID),
			slog.String("intent", order.IntentID),
			slog.String("error", err.Error()))
		return
	}
	if status != order.Status {
		r.logger.Info("order reconciled",
			slog.Int64("order", order.ID),
			slog.String("intent", order.IntentID),
			slog.String("status", string(status)))
	}
}
