package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inquestlab/inquest/internal/core"
	"github.com/inquestlab/inquest/internal/domain"
	"github.com/inquestlab/inquest/internal/profile"
)

// ErrSessionNotFound is returned for unknown or already-ended sessions.
var ErrSessionNotFound = errors.New("session not found")

// Manager owns the live sessions. Its mutex guards only the session map;
// serialization within a session is the session's own concern.
type Manager struct {
	registry   *profile.Registry
	defaultKey string
	logger     *zap.Logger

	sessionStore domain.SessionStore
	turnStore    domain.TurnStore
	verdictStore domain.VerdictStore

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewManager builds a manager over the registry. defaultKey names the profile
// used when Create is called without one; empty falls back to the built-in
// default.
func NewManager(registry *profile.Registry, defaultKey string, logger *zap.Logger) *Manager {
	if defaultKey == "" {
		defaultKey = profile.DefaultKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		registry:   registry,
		defaultKey: defaultKey,
		logger:     logger,
		sessions:   make(map[uuid.UUID]*Session),
	}
}

// SetStores wires the persistence backends. All are optional; without them
// sessions run fully in-memory.
func (m *Manager) SetStores(sessions domain.SessionStore, turns domain.TurnStore, verdicts domain.VerdictStore) {
	m.sessionStore = sessions
	m.turnStore = turns
	m.verdictStore = verdicts
}

// Create starts a new session with a freshly constructed state from the
// named profile. The only failure is an unknown profile key.
func (m *Manager) Create(ctx context.Context, profileKey string) (*Session, error) {
	if profileKey == "" {
		profileKey = m.defaultKey
	}
	p, err := m.registry.Get(profileKey)
	if err != nil {
		return nil, err
	}

	state := domain.NewAgentState(p)
	s := &Session{
		ID:        uuid.New(),
		Profile:   p,
		StartedAt: time.Now().UTC(),
		ai:        core.New(state, m.logger),
		turns:     m.turnStore,
		verdicts:  m.verdictStore,
		logger:    m.logger,
	}

	if m.sessionStore != nil {
		rec := &domain.SessionRecord{ID: s.ID, ProfileKey: p.Key, StartedAt: s.StartedAt}
		if err := m.sessionStore.Create(ctx, rec); err != nil {
			m.logger.Warn("failed to persist session", zap.String("session_id", s.ID.String()), zap.Error(err))
		}
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.logger.Info("session started",
		zap.String("session_id", s.ID.String()),
		zap.String("profile", p.Key))
	return s, nil
}

// Get returns the live session for id.
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// End removes the session and marks its record ended. The state is
// discarded wholesale; a later session starts from a fresh profile build.
func (m *Manager) End(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	_, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	if m.sessionStore != nil {
		if err := m.sessionStore.End(ctx, id); err != nil {
			m.logger.Warn("failed to mark session ended", zap.String("session_id", id.String()), zap.Error(err))
		}
	}
	m.logger.Info("session ended", zap.String("session_id", id.String()))
	return nil
}

// Count reports the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
