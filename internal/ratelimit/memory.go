package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Memory is a rolling-window limiter local to one process.
type Memory struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu        sync.Mutex
	attempts  map[string][]time.Time
	lastSweep time.Time
}

func NewMemory(limit int, window time.Duration) *Memory {
	return &Memory{
		limit:    limit,
		window:   window,
		now:      time.Now,
		attempts: make(map[string][]time.Time),
	}
}

func (m *Memory) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	if now.Sub(m.lastSweep) >= m.window {
		m.sweep(now)
	}

	recent := m.prune(key, now)
	if len(recent) >= m.limit {
		return false, recent[0].Add(m.window).Sub(now), nil
	}
	m.attempts[key] = append(recent, now)
	return true, 0, nil
}

func (m *Memory) prune(key string, now time.Time) []time.Time {
	attempts := m.attempts[key]
	cutoff := now.Add(-m.window)
	i := 0
	for i < len(attempts) && !attempts[i].After(cutoff) {
		i++
	}
	attempts = attempts[i:]
	if len(attempts) == 0 {
		delete(m.attempts, key)
	}
	return attempts
}

// sweep drops every key whose attempts all left the window. It runs at most
// once per window from Allow.
func (m *Memory) sweep(now time.Time) {
	for key := range m.attempts {
		m.prune(key, now)
	}
	m.lastSweep = now
}
