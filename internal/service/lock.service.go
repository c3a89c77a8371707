package service

import (
	"context"
	"sync"
	"time"

	"portfolioservice/internal/domain"
)

// PortfolioLockService serializes rebalance application per portfolio.
// Different portfolios proceed independently. Acquisition waits at most the
// configured timeout, then surfaces domain.LockTimeoutError (retryable).
type PortfolioLockService interface {
	WithExclusive(ctx context.Context, portfolioID int64, fn func() error) error
}

type portfolioLock struct {
	// capacity-1 channel; holding the token is holding the lock
	ch   chan struct{}
	refs int
}

type portfolioLockServiceHandler struct {
	mu      sync.Mutex
	locks   map[int64]*portfolioLock
	timeout time.Duration
}

func NewPortfolioLockService(timeout time.Duration) PortfolioLockService {
	return &portfolioLockServiceHandler{
		locks:   map[int64]*portfolioLock{},
		timeout: timeout,
	}
}

func (h *portfolioLockServiceHandler) WithExclusive(ctx context.Context, portfolioID int64, fn func() error) error {
	release, err := h.acquire(ctx, portfolioID)
	if err != nil {
		return err
	}
	defer release()

	return fn()
}

func (h *portfolioLockServiceHandler) acquire(ctx context.Context, portfolioID int64) (func(), error) {
	h.mu.Lock()
	lock, ok := h.locks[portfolioID]
	if !ok {
		lock = &portfolioLock{ch: make(chan struct{}, 1)}
		h.locks[portfolioID] = lock
	}
	lock.refs++
	h.mu.Unlock()

	timer := time.NewTimer(h.timeout)
	defer timer.Stop()

	select {
	case lock.ch <- struct{}{}:
		return func() {
			<-lock.ch
			h.unref(portfolioID, lock)
		}, nil
	case <-timer.C:
		h.unref(portfolioID, lock)
		return nil, domain.LockTimeoutError{PortfolioID: portfolioID, Waited: h.timeout}
	case <-ctx.Done():
		h.unref(portfolioID, lock)
		return nil, ctx.Err()
	}
}

// unref drops a waiter/holder reference, deleting the registry entry once
// nobody references it. Keeps the map from growing one entry per portfolio id
// ever seen.
func (h *portfolioLockServiceHandler) unref(portfolioID int64, lock *portfolioLock) {
	h.mu.Lock()
	defer h.mu.Unlock()

	lock.refs--
	if lock.refs == 0 {
		delete(h.locks, portfolioID)
	}
}
