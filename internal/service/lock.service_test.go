package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"portfolioservice/internal/domain"

	"github.com/stretchr/testify/require"
)

func Test_PortfolioLockService(t *testing.T) {
	t.Run("serializes appliers on the same portfolio", func(t *testing.T) {
		lockService := NewPortfolioLockService(5 * time.Second)

		var inCriticalSection int
		var maxObserved int
		var mu sync.Mutex

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := lockService.WithExclusive(context.Background(), 1, func() error {
					mu.Lock()
					inCriticalSection++
					if inCriticalSection > maxObserved {
						maxObserved = inCriticalSection
					}
					mu.Unlock()

					time.Sleep(time.Millisecond)

					mu.Lock()
					inCriticalSection--
					mu.Unlock()
					return nil
				})
				require.NoError(t, err)
			}()
		}
		wg.Wait()

		require.Equal(t, 1, maxObserved)
	})

	t.Run("different portfolios do not block each other", func(t *testing.T) {
		lockService := NewPortfolioLockService(100 * time.Millisecond)

		release := make(chan struct{})
		held := make(chan struct{})
		go func() {
			_ = lockService.WithExclusive(context.Background(), 1, func() error {
				close(held)
				<-release
				return nil
			})
		}()
		<-held
		defer close(release)

		err := lockService.WithExclusive(context.Background(), 2, func() error { return nil })
		require.NoError(t, err)
	})

	t.Run("bounded wait surfaces LockTimeoutError", func(t *testing.T) {
		lockService := NewPortfolioLockService(20 * time.Millisecond)

		release := make(chan struct{})
		held := make(chan struct{})
		go func() {
			_ = lockService.WithExclusive(context.Background(), 7, func() error {
				close(held)
				<-release
				return nil
			})
		}()
		<-held
		defer close(release)

		err := lockService.WithExclusive(context.Background(), 7, func() error { return nil })
		var lockTimeout domain.LockTimeoutError
		require.ErrorAs(t, err, &lockTimeout)
		require.Equal(t, int64(7), lockTimeout.PortfolioID)
	})

	t.Run("releases the lock when fn errors", func(t *testing.T) {
		lockService := NewPortfolioLockService(time.Second)

		boom := errors.New("boom")
		err := lockService.WithExclusive(context.Background(), 3, func() error { return boom })
		require.ErrorIs(t, err, boom)

		err = lockService.WithExclusive(context.Background(), 3, func() error { return nil })
		require.NoError(t, err)
	})

	t.Run("registry entry is dropped once unused", func(t *testing.T) {
		handler := NewPortfolioLockService(time.Second).(*portfolioLockServiceHandler)

		err := handler.WithExclusive(context.Background(), 9, func() error { return nil })
		require.NoError(t, err)

		handler.mu.Lock()
		defer handler.mu.Unlock()
		require.Empty(t, handler.locks)
	})
}
