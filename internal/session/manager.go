// Package session manages interview sessions: creation, lookup, reset and
// expiry. Sessions live in memory only; nothing survives the process.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/jonathan/resume-builder/internal/chat"
)

// DefaultTTL is how long an idle session is kept before it is swept.
const DefaultTTL = 2 * time.Hour

// sweepInterval is how often expired sessions are purged.
const sweepInterval = 10 * time.Minute

// Session owns one interview. The mutex serializes access so the
// transcript keeps its single-writer guarantee even under concurrent
// HTTP requests.
type Session struct {
	ID         uuid.UUID
	Controller *chat.Controller
	CreatedAt  time.Time

	mu sync.Mutex
}

// Lock serializes turn processing for this session.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session.
func (s *Session) Unlock() { s.mu.Unlock() }

// Config holds the collaborators every new session is wired with. The
// gateway and prompts are process-wide and read-only after startup.
type Config struct {
	Gateway      chat.Gateway
	SystemPrompt string
	FinalPrompt  string
	ReadyMarkers []string
	TTL          time.Duration
}

// Manager is a TTL'd in-memory session store keyed by session ID.
type Manager struct {
	store *cache.Cache
	cfg   Config
}

// NewManager creates a session store that purges idle sessions after the
// configured TTL.
func NewManager(cfg Config) *Manager {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	return &Manager{
		store: cache.New(cfg.TTL, sweepInterval),
		cfg:   cfg,
	}
}

// Create starts a new session with a fresh transcript seeded with the
// system prompt.
func (m *Manager) Create() *Session {
	s := &Session{
		ID:         uuid.New(),
		Controller: m.newController(),
		CreatedAt:  time.Now(),
	}
	m.store.Set(s.ID.String(), s, cache.DefaultExpiration)
	return s
}

// Get looks up a live session by ID.
func (m *Manager) Get(id string) (*Session, bool) {
	if x, found := m.store.Get(id); found {
		return x.(*Session), true
	}
	return nil, false
}

// Reset discards the session's conversation and reseeds a fresh
// transcript under the same ID. Callable from any state, including ready.
func (m *Manager) Reset(id string) (*Session, bool) {
	s, found := m.Get(id)
	if !found {
		return nil, false
	}

	s.Lock()
	s.Controller = m.newController()
	s.Unlock()

	m.store.Set(id, s, cache.DefaultExpiration)
	return s, true
}

// Delete removes a session.
func (m *Manager) Delete(id string) {
	m.store.Delete(id)
}

// Touch extends a session's TTL after activity.
func (m *Manager) Touch(s *Session) {
	m.store.Set(s.ID.String(), s, cache.DefaultExpiration)
}

func (m *Manager) newController() *chat.Controller {
	return chat.NewController(m.cfg.Gateway, m.cfg.SystemPrompt, m.cfg.FinalPrompt, m.cfg.ReadyMarkers)
}
