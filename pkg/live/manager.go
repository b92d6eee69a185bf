package live

import (
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrTooManySessions is returned when the session limit is reached.
var ErrTooManySessions = errors.New("live: too many sessions")

// Manager tracks live sessions.
type Manager struct {
	sessions map[string]*Session
	mu       sync.RWMutex

	config *Config

	done        chan struct{}
	cleanupDone chan struct{}
	closeOnce   sync.Once

	logger  *slog.Logger
	metrics *metrics
}

func newManager(config *Config, logger *slog.Logger, m *metrics) *Manager {
	return &Manager{
		sessions:    make(map[string]*Session),
		config:      config,
		done:        make(chan struct{}),
		cleanupDone: make(chan struct{}),
		logger:      logger.With("component", "session_manager"),
		metrics:     m,
	}
}

// Add registers a session. The session removes itself when it closes.
func (m *Manager) Add(s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config.MaxSessions > 0 && len(m.sessions) >= m.config.MaxSessions {
		return ErrTooManySessions
	}
	s.onClose = func(s *Session) { m.Remove(s.ID) }
	m.sessions[s.ID] = s
	m.metrics.sessionsTotal.Inc()
	m.metrics.activeSessions.Inc()
	m.logger.Debug("session added", "session_id", s.ID, "total", len(m.sessions))
	return nil
}

// Get returns the session with the given id.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Remove forgets a session without closing it.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return
	}
	delete(m.sessions, id)
	m.metrics.activeSessions.Dec()
}

// Count returns the number of tracked sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// closeUnattached closes sessions whose websocket never connected within
// the connect timeout. It returns how many were closed.
func (m *Manager) closeUnattached(now time.Time) int {
	m.mu.RLock()
	var stale []*Session
	for _, s := range m.sessions {
		if !s.Attached() && now.Sub(s.CreatedAt) > m.config.ConnectTimeout {
			stale = append(stale, s)
		}
	}
	m.mu.RUnlock()

	for _, s := range stale {
		s.Close()
	}
	if len(stale) > 0 {
		m.logger.Info("closed unattached sessions", "count", len(stale))
	}
	return len(stale)
}

// startCleanup runs closeUnattached every interval until Close.
func (m *Manager) startCleanup(interval time.Duration) {
	go func() {
		defer close(m.cleanupDone)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case now := <-ticker.C:
				m.closeUnattached(now)
			case <-m.done:
				return
			}
		}
	}()
}

// Close stops cleanup and closes every session.
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		close(m.done)

		m.mu.RLock()
		all := make([]*Session, 0, len(m.sessions))
		for _, s := range m.sessions {
			all = append(all, s)
		}
		m.mu.RUnlock()

		for _, s := range all {
			s.Close()
		}
	})
}
