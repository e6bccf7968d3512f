package secrets

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type login struct {
	Email    string
	Password string
}

func sampleLogin() login {
	return login{Email: "desk@example.com", Password: "hunter2"}
}

// fakeClock lets tests move time without sleeping.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.mu.Unlock()
}

func newTestCache(ttl time.Duration) (*Cache[login], *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewCache[login](ttl)
	c.now = clock.Now
	return c, clock
}

func TestCache_PutAndGet(t *testing.T) {
	cache, _ := newTestCache(time.Minute)
	key := "acct-1|escher"

	_, ok := cache.Get(key)
	assert.False(t, ok, "expected miss on empty cache")

	cache.Put(key, sampleLogin())

	got, ok := cache.Get(key)
	require.True(t, ok)
	assert.Equal(t, "desk@example.com", got.Email)
}

func TestCache_Expiration(t *testing.T) {
	cache, clock := newTestCache(time.Minute)
	key := "acct-1|escher"
	cache.Put(key, sampleLogin())

	clock.Advance(61 * time.Second)

	_, ok := cache.Get(key)
	assert.False(t, ok, "expected expired cache entry")
	assert.Equal(t, 0, cache.Len(), "expired entry is evicted on read")
}

func TestCache_Bust(t *testing.T) {
	cache, _ := newTestCache(time.Minute)
	key := "acct-1|escher"
	cache.Put(key, sampleLogin())

	cache.Bust(key)
	_, ok := cache.Get(key)
	assert.False(t, ok, "expected cache miss after bust")
}

func TestCache_CleanupExpired(t *testing.T) {
	cache, clock := newTestCache(time.Minute)
	cache.Put("a", sampleLogin())
	clock.Advance(30 * time.Second)
	cache.Put("b", sampleLogin())
	clock.Advance(45 * time.Second)

	cache.cleanupExpired()

	assert.Equal(t, 1, cache.Len())
	_, ok := cache.Get("b")
	assert.True(t, ok)
}

func TestCache_StartCleanerStopsOnCancel(t *testing.T) {
	cache := NewCache[login](time.Millisecond)
	cache.Put("a", sampleLogin())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		cache.StartCleaner(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return cache.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleaner did not stop after cancel")
	}
}

func TestCache_ConcurrentAccess(t *testing.T) {
	cache := NewCache[login](time.Minute)
	key := "acct-1|escher"

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			cache.Put(key, sampleLogin())
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			cache.Get(key)
		}
	}()
	wg.Wait()
}
