package rate

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_BurstThenThrottle(t *testing.T) {
	m := NewManager(Config{RequestsPerSecond: 1, Burst: 3})
	lim := m.Limiter("/quotes")

	allowed := 0
	for i := 0; i < 10; i++ {
		if lim.Allow() {
			allowed++
		}
	}
	assert.Equal(t, 3, allowed, "only the burst should pass immediately")
}

func TestManager_SameKeySameLimiter(t *testing.T) {
	m := NewManager(Config{RequestsPerSecond: 5, Burst: 1})
	assert.Same(t, m.Limiter("/quotes"), m.Limiter("/quotes"))
	assert.NotSame(t, m.Limiter("/quotes"), m.Limiter("/sign-in"))
}

func TestManager_DisabledNeverBlocks(t *testing.T) {
	m := NewManager(Config{})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	for i := 0; i < 100; i++ {
		require.NoError(t, m.Wait(ctx, "/quotes/accept"))
	}
}

func TestManager_WaitHonoursContext(t *testing.T) {
	m := NewManager(Config{RequestsPerSecond: 0.1, Burst: 1})
	require.NoError(t, m.Wait(context.Background(), "k"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, m.Wait(ctx, "k"), "second token is ten seconds away")
}

func TestManager_ConcurrentLimiterCreation(t *testing.T) {
	m := NewManager(Config{RequestsPerSecond: 10, Burst: 2})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Limiter("shared")
		}()
	}
	wg.Wait()

	m.mu.RLock()
	defer m.mu.RUnlock()
	assert.Len(t, m.limiters, 1)
}
