package rate

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Config defines rate limiting parameters for outbound Escher calls.
// A zero RequestsPerSecond disables limiting.
type Config struct {
	RequestsPerSecond float64
	Burst             int
}

// Enabled reports whether the config imposes any limit.
func (c Config) Enabled() bool {
	return c.RequestsPerSecond > 0
}

// Manager holds one token bucket per key (typically an endpoint path).
type Manager struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	defaults Config
}

func NewManager(defaults Config) *Manager {
	if defaults.Burst < 1 {
		defaults.Burst = 1
	}
	return &Manager{
		limiters: make(map[string]*rate.Limiter),
		defaults: defaults,
	}
}

// Limiter returns the bucket for key, creating it on first use.
func (m *Manager) Limiter(key string) *rate.Limiter {
	m.mu.RLock()
	if lim, ok := m.limiters[key]; ok {
		m.mu.RUnlock()
		return lim
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if lim, ok := m.limiters[key]; ok {
		return lim
	}
	limit := rate.Inf
	if m.defaults.Enabled() {
		limit = rate.Limit(m.defaults.RequestsPerSecond)
	}
	lim := rate.NewLimiter(limit, m.defaults.Burst)
	m.limiters[key] = lim
	return lim
}

// Wait blocks until key has a token or ctx is done.
func (m *Manager) Wait(ctx context.Context, key string) error {
	return m.Limiter(key).Wait(ctx)
}
