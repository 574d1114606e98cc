package kiosksession

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abaleemmo/food-festival-express-checkout/pkg/config"
	"github.com/abaleemmo/food-festival-express-checkout/pkg/enums"
	pkgerrors "github.com/abaleemmo/food-festival-express-checkout/pkg/errors"
	"github.com/abaleemmo/food-festival-express-checkout/pkg/logger"
)

// Manager is the registry of live kiosk sessions. Sessions live in memory
// only; an idle session past its TTL is reaped by the janitor and the kiosk
// starts over. Kiosks are stateless terminals, nothing in a session is
// worth persisting across a restart.
type Manager struct {
	ttl      time.Duration
	sweep    time.Duration
	pageSize int
	logg     *logger.Logger
	now      func() time.Time

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session

	started  bool
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewManager builds a session registry from the service configuration.
func NewManager(cfg config.SessionConfig, pageSize int, logg *logger.Logger) *Manager {
	return &Manager{
		ttl:      cfg.TTL,
		sweep:    cfg.SweepInterval,
		pageSize: pageSize,
		logg:     logg,
		now:      time.Now,
		sessions: map[uuid.UUID]*Session{},
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Create registers a new session for a kiosk on the given serving line.
func (m *Manager) Create(side enums.LineSide) (*Session, error) {
	if !side.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "line side must be Left or Right")
	}

	session := newSession(side, m.pageSize, m.now())

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	return session, nil
}

// Get returns the live session with the given id and refreshes its TTL.
// Unknown and expired sessions are both reported as unauthorized so the
// kiosk restarts its flow.
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	session, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session not found")
	}

	now := m.now()
	if session.expired(now, m.ttl) {
		m.remove(id)
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired")
	}

	session.touch(now)
	return session, nil
}

// Delete drops a session immediately.
func (m *Manager) Delete(id uuid.UUID) {
	m.remove(id)
}

// Count returns the number of registered sessions, expired or not.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Start launches the janitor goroutine. It runs until Stop is called or the
// context is cancelled.
func (m *Manager) Start(ctx context.Context) {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return
	}
	m.started = true
	m.mu.Unlock()

	go func() {
		defer close(m.done)

		ticker := time.NewTicker(m.sweep)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-m.stop:
				return
			case <-ticker.C:
				reaped := m.reapExpired()
				if reaped > 0 && m.logg != nil {
					m.logg.Info(m.logg.WithField(ctx, "reaped", reaped), "swept expired kiosk sessions")
				}
			}
		}
	}()
}

// Stop halts the janitor and waits for it to exit.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		close(m.stop)
	})

	m.mu.RLock()
	started := m.started
	m.mu.RUnlock()
	if started {
		<-m.done
	}
}

func (m *Manager) reapExpired() int {
	now := m.now()

	m.mu.RLock()
	var stale []uuid.UUID
	for id, session := range m.sessions {
		if session.expired(now, m.ttl) {
			stale = append(stale, id)
		}
	}
	m.mu.RUnlock()

	for _, id := range stale {
		m.remove(id)
	}
	return len(stale)
}

func (m *Manager) remove(id uuid.UUID) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}
