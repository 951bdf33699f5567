package services

import (
	"log"
	"sync"
	"time"
)

// Session is the in-memory state owned by one browser session.
type Session struct {
	ID         string
	Cart       *CartStore
	Customizer *Customizer

	lastSeen time.Time
	hits     int
}

type SessionManager struct {
	ttl         time.Duration
	freshTTL    time.Duration
	maxSessions int
	now         func() time.Time
	newSess     func(id string) *Session

	mu       sync.Mutex
	sessions map[string]*Session
}

type SessionManagerOption func(*SessionManager)

func WithClock(now func() time.Time) SessionManagerOption {
	return func(m *SessionManager) { m.now = now }
}

// WithFreshTTL ends sessions that were only ever requested once after d instead of the full TTL.
func WithFreshTTL(d time.Duration) SessionManagerOption {
	return func(m *SessionManager) { m.freshTTL = d }
}

// WithMaxSessions caps the number of live sessions. At the cap, creating a session ends the
// least recently seen one.
func WithMaxSessions(n int) SessionManagerOption {
	return func(m *SessionManager) { m.maxSessions = n }
}

// WithCustomizerOptions applies opts to the Customizer of every new session.
func WithCustomizerOptions(opts ...CustomizerOption) SessionManagerOption {
	return func(m *SessionManager) {
		m.newSess = func(id string) *Session {
			cart := NewCartStore()
			return &Session{ID: id, Cart: cart, Customizer: NewCustomizer(cart, opts...)}
		}
	}
}

func NewSessionManager(ttl time.Duration, opts ...SessionManagerOption) *SessionManager {
	m := &SessionManager{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
	WithCustomizerOptions()(m)
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns the session for id, creating an empty cart and draft on first use.
func (m *SessionManager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		if m.maxSessions > 0 && len(m.sessions) >= m.maxSessions {
			m.evictOldestLocked()
		}
		s = m.newSess(id)
		m.sessions[id] = s
	}
	s.lastSeen = m.now()
	s.hits++
	return s
}

func (m *SessionManager) evictOldestLocked() {
	var oldest *Session
	for _, s := range m.sessions {
		if oldest == nil || s.lastSeen.Before(oldest.lastSeen) {
			oldest = s
		}
	}
	if oldest != nil {
		delete(m.sessions, oldest.ID)
		log.Printf("SessionManager.Get: session cap %d reached, ended least recent session", m.maxSessions)
	}
}

// Lookup returns an existing session without creating or touching it.
func (m *SessionManager) Lookup(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	return s, ok
}

// End discards a session with its cart and draft. Ending an unknown id is a no-op.
func (m *SessionManager) End(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
}

func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.sessions)
}

// Sweep ends every session idle for longer than the TTL, or the fresh TTL for sessions seen
// only once, and returns how many were ended.
func (m *SessionManager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	cutoff := now.Add(-m.ttl)
	freshCutoff := cutoff
	if m.freshTTL > 0 && m.freshTTL < m.ttl {
		freshCutoff = now.Add(-m.freshTTL)
	}

	n := 0
	for id, s := range m.sessions {
		limit := cutoff
		if s.hits <= 1 {
			limit = freshCutoff
		}
		if s.lastSeen.Before(limit) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// RunSweeper calls Sweep every interval until stop is closed.
func (m *SessionManager) RunSweeper(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				log.Printf("SessionManager.RunSweeper: ended %d idle sessions", n)
			}
		case <-stop:
			return
		}
	}
}
