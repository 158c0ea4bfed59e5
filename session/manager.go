package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nethal17/Ramanayake-Travels-sub001/internal/logger"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/models"
)

type EventType string

const (
	EventLogin  EventType = "login"
	EventLogout EventType = "logout"
)

// Event tells subscribers that the auth state of a browser changed. On login
// PreviousID names the session that was replaced, if any.
type Event struct {
	Type       EventType
	SessionID  string
	PreviousID string
}

// Manager is the single owner of session state. Handlers read through it and
// everything that must react to sign-in or sign-out subscribes to it.
type Manager struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
	log   logger.ILogger

	mu     sync.RWMutex
	nextID int
	subs   map[int]func(Event)
}

type ManagerOption func(*Manager)

func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) { m.now = now }
}

func WithLogger(l logger.ILogger) ManagerOption {
	return func(m *Manager) { m.log = l }
}

func NewManager(store Store, ttl time.Duration, opts ...ManagerOption) *Manager {
	m := &Manager{
		store: store,
		ttl:   ttl,
		now:   time.Now,
		log:   logger.Nop(),
		subs:  make(map[int]func(Event)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Login stores a new session for token and returns it. The previous session
// of the browser, if any, is dropped so a login always rotates the id. When
// user is nil the user is derived from the token claims.
func (m *Manager) Login(ctx context.Context, prevID, token string, user *models.User) (*Session, error) {
	if token == "" {
		return nil, errors.New("session: empty token")
	}
	now := m.now().UTC()
	expires := now.Add(m.ttl)

	claims, err := ParseClaims(token)
	switch {
	case err == nil:
		if !claims.ExpiresAt.IsZero() {
			if !claims.ExpiresAt.After(now) {
				return nil, ErrTokenExpired
			}
			if claims.ExpiresAt.Before(expires) {
				expires = claims.ExpiresAt.UTC()
			}
		}
	case user == nil:
		return nil, fmt.Errorf("session: no user for token: %w", err)
	}

	s := &Session{
		ID:        uuid.NewString(),
		Token:     token,
		CreatedAt: now,
		ExpiresAt: expires,
	}
	if user != nil {
		s.User = *user
		if s.User.Role == "" {
			s.User.Role = claims.Role
		}
		if s.User.ID == "" {
			s.User.ID = claims.UserID
		}
	} else {
		s.User = claims.User()
	}

	if prevID != "" {
		if err := m.store.Delete(ctx, prevID); err != nil {
			m.log.Warning("drop previous session", logger.Error(err))
		}
	}
	if err := m.store.Save(ctx, s); err != nil {
		return nil, err
	}
	m.log.Info("session started",
		logger.String("user", s.User.ID),
		logger.String("role", string(s.User.Role)))
	m.publish(Event{Type: EventLogin, SessionID: s.ID, PreviousID: prevID})
	return s, nil
}

// Logout removes the session. Logging out an unknown id is not an error.
func (m *Manager) Logout(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := m.store.Delete(ctx, id); err != nil {
		return err
	}
	m.publish(Event{Type: EventLogout, SessionID: id})
	return nil
}

// Current returns the live session for id. Expired sessions are removed and
// reported as ErrNotFound.
func (m *Manager) Current(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	s, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Expired(m.now()) {
		if err := m.store.Delete(ctx, id); err != nil {
			m.log.Warning("drop expired session", logger.Error(err))
		}
		return nil, ErrNotFound
	}
	return s, nil
}

// Sweep deletes every expired session.
func (m *Manager) Sweep(ctx context.Context) (int64, error) {
	n, err := m.store.DeleteExpired(ctx, m.now().UTC())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		m.log.Info("expired sessions removed", logger.Int64("count", n))
	}
	return n, nil
}

// Subscribe registers fn for every future event. The returned func removes it.
func (m *Manager) Subscribe(fn func(Event)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			m.mu.Unlock()
		})
	}
}

func (m *Manager) publish(ev Event) {
	m.mu.RLock()
	fns := make([]func(Event), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.RUnlock()
	for _, fn := range fns {
		fn(ev)
	}
}
