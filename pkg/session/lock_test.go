package session

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/stepwise/pkg/catalogue"
)

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager(catalogue.Default(), nil)
	ctx := context.Background()
	count := 10000

	for i := 0; i < count; i++ {
		sid := fmt.Sprintf("session-%d", i)
		_ = mgr.WithLock(ctx, sid, func(context.Context) error { return nil })
		_ = mgr.Delete(ctx, sid)
	}

	lockCount := len(mgr.locks)
	if lockCount != 0 {
		t.Errorf("Memory Leak Detected: %d locks remaining in memory after Delete", lockCount)
	}
}

func TestManager_WithLockSerializes(t *testing.T) {
	mgr := NewManager(catalogue.Default(), nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	inside, peak := 0, 0
	var mu sync.Mutex
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = mgr.WithLock(ctx, "same", func(context.Context) error {
				mu.Lock()
				inside++
				peak = max(peak, inside)
				mu.Unlock()

				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, peak)
}
