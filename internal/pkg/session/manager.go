// internal/pkg/session/manager.go
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/luxfakia/storefront/internal/config"
	"github.com/luxfakia/storefront/internal/pkg/auth"
)

// Manager ties sessions to a signed cookie carrying the session id
type Manager struct {
	store      Store
	tokens     *auth.JWTManager
	cookieName string
	ttl        time.Duration
	secure     bool
}

// NewManager creates a session manager over store
func NewManager(store Store, cfg *config.Config) *Manager {
	name := cfg.Session.CookieName
	if name == "" {
		name = "luxfakia_session"
	}
	ttl := cfg.Session.TTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Manager{
		store:      store,
		tokens:     auth.NewJWTManager(cfg),
		cookieName: name,
		ttl:        ttl,
		secure:     cfg.Session.Secure,
	}
}

// Store returns the backing store
func (m *Manager) Store() Store { return m.store }

// Load returns the session named by the request cookie. A missing or
// tampered cookie starts a fresh session.
func (m *Manager) Load(ctx context.Context, r *http.Request) (*Session, error) {
	if cookie, err := r.Cookie(m.cookieName); err == nil && cookie.Value != "" {
		if id, err := m.tokens.ValidateSessionToken(cookie.Value); err == nil {
			data, err := m.store.Load(ctx, id)
			switch {
			case err == nil:
				return m.wrap(id, data, false), nil
			case errors.Is(err, ErrNotFound):
				return m.wrap(id, &Data{}, false), nil
			default:
				return nil, err
			}
		}
	}
	return m.wrap(uuid.New().String(), &Data{}, true), nil
}

// WriteCookie sets the session cookie when the session id is new to the client.
// Call it before the response body is written.
func (m *Manager) WriteCookie(w http.ResponseWriter, s *Session) error {
	if !s.issueCookie {
		return nil
	}
	token, err := m.tokens.GenerateSessionToken(s.id)
	if err != nil {
		return fmt.Errorf("failed to sign session cookie: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	s.issueCookie = false
	return nil
}

// Renew moves the session to a new id, keeping its data. Used on login.
func (m *Manager) Renew(ctx context.Context, w http.ResponseWriter, s *Session) error {
	old := s.id
	s.id = uuid.New().String()
	s.issueCookie = true
	if err := s.save(ctx); err != nil {
		return err
	}
	if err := m.store.Delete(ctx, old); err != nil {
		return err
	}
	return m.WriteCookie(w, s)
}

// Destroy drops the session data and starts a new session that keeps only
// the UI language. Used on logout.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, s *Session) error {
	if err := m.store.Delete(ctx, s.id); err != nil {
		return err
	}
	s.id = uuid.New().String()
	s.data = &Data{Lang: s.data.Lang}
	s.issueCookie = true
	if err := s.save(ctx); err != nil {
		return err
	}
	return m.WriteCookie(w, s)
}

func (m *Manager) wrap(id string, data *Data, fresh bool) *Session {
	return &Session{id: id, data: data, store: m.store, ttl: m.ttl, issueCookie: fresh}
}
