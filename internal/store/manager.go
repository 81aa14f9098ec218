package store

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Manager is the process-wide registry of sessions, keyed by user id. A
// session is created on first use and evicted after TTL of inactivity.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Get returns the session for a user, creating it on first use.
func (m *Manager) Get(userID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[userID]; ok {
		return session
	}

	session := NewSession(userID)
	m.sessions[userID] = session

	return session
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.sessions)
}

// Sweep drops sessions idle past the TTL and reports how many were evicted.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-m.ttl)
	evicted := 0

	for userID, session := range m.sessions {
		session.mu.RLock()
		idle := session.lastSeen.Before(cutoff)
		session.mu.RUnlock()

		if idle {
			delete(m.sessions, userID)

			evicted++
		}
	}

	return evicted
}

// Run sweeps on the given interval until the context is cancelled.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if evicted := m.Sweep(); evicted > 0 {
				slog.Info("Evicted idle sessions", slog.Int("count", evicted))
			}
		}
	}
}
