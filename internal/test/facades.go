package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cyberscripts/storefront/internal/domain/model"
)

// ReconcileCall stores information about ReconcileOrder invocations.
type ReconcileCall struct {
	OrderID  int64
	IntentID string
}

// ReconcilerFacadeStub mimics worker interactions with the store facade.
type ReconcilerFacadeStub struct {
	Orders         [][]model.Order
	StaleFn        func(context.Context, time.Duration, int) ([]model.Order, error)
	ReconcileFn    func(context.Context, model.Order) (model.OrderStatus, error)
	Reconciled     []ReconcileCall
	mu             sync.Mutex
	staleCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *ReconcilerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *ReconcilerFacadeStub) Unlock() { s.mu.Unlock() }

// StalePendingOrders returns batches from configured queue.
func (s *ReconcilerFacadeStub) StalePendingOrders(ctx context.Context, age time.Duration, limit int) ([]model.Order, error) {
	if s.StaleFn != nil {
		return s.StaleFn(ctx, age, limit)
	}
	call := atomic.AddInt32(&s.staleCallCount, 1)
	if int(call) <= len(s.Orders) {
		return s.Orders[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// ReconcileOrder records reconciliation requests.
func (s *ReconcilerFacadeStub) ReconcileOrder(ctx context.Context, order model.Order) (model.OrderStatus, error) {
	if s.ReconcileFn != nil {
		return s.ReconcileFn(ctx, order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Reconciled = append(s.Reconciled, ReconcileCall{OrderID: order.ID, IntentID: order.IntentID})
	return model.OrderStatusCompleted, nil
}

// HealthCheckerStub reports configurable storage health.
type HealthCheckerStub struct {
	Err error
}

// HealthCheck returns the configured error.
func (s HealthCheckerStub) HealthCheck(ctx context.Context) error {
	return s.Err
}
