// internal/pkg/session/session.go
package session

import (
	"context"
	"time"
)

// Session is the state of one browser session for the length of a request.
// Every mutation is written through to the store. Not safe for concurrent use.
type Session struct {
	id    string
	data  *Data
	store Store
	ttl   time.Duration

	issueCookie bool
}

// ID returns the session id
func (s *Session) ID() string { return s.id }

// UserID returns the logged-in user id, if any
func (s *Session) UserID() (uint, bool) {
	if s.data.UserID == nil {
		return 0, false
	}
	return *s.data.UserID, true
}

// SetUser records a login
func (s *Session) SetUser(ctx context.Context, userID uint) error {
	s.data.UserID = &userID
	return s.save(ctx)
}

// ClearUser records a logout without dropping the cart or the language
func (s *Session) ClearUser(ctx context.Context) error {
	s.data.UserID = nil
	return s.save(ctx)
}

// Lang returns the stored UI language or ""
func (s *Session) Lang() string { return s.data.Lang }

// SetLang stores the UI language
func (s *Session) SetLang(ctx context.Context, lang string) error {
	s.data.Lang = lang
	return s.save(ctx)
}

// AddFlash queues a message for the next page
func (s *Session) AddFlash(ctx context.Context, category, message string) error {
	s.data.Flashes = append(s.data.Flashes, Flash{Category: category, Message: message})
	return s.save(ctx)
}

// PopFlashes returns queued messages and clears them
func (s *Session) PopFlashes(ctx context.Context) ([]Flash, error) {
	if len(s.data.Flashes) == 0 {
		return nil, nil
	}
	flashes := s.data.Flashes
	s.data.Flashes = nil
	return flashes, s.save(ctx)
}

// AddOrder remembers an order placed from this session
func (s *Session) AddOrder(ctx context.Context, orderID uint) error {
	if s.HasOrder(orderID) {
		return nil
	}
	s.data.Orders = append(s.data.Orders, orderID)
	return s.save(ctx)
}

// HasOrder reports whether orderID was placed from this session
func (s *Session) HasOrder(orderID uint) bool {
	for _, id := range s.data.Orders {
		if id == orderID {
			return true
		}
	}
	return false
}

// LoadCart returns a copy of the cart lines
func (s *Session) LoadCart(context.Context) (map[uint]float64, error) {
	items := make(map[uint]float64, len(s.data.Cart))
	for id, qty := range s.data.Cart {
		items[id] = qty
	}
	return items, nil
}

// SaveCart replaces the cart lines
func (s *Session) SaveCart(ctx context.Context, items map[uint]float64) error {
	cart := make(map[uint]float64, len(items))
	for id, qty := range items {
		cart[id] = qty
	}
	s.data.Cart = cart
	return s.save(ctx)
}

// ClearCart empties the cart
func (s *Session) ClearCart(ctx context.Context) error {
	s.data.Cart = nil
	return s.save(ctx)
}

func (s *Session) save(ctx context.Context) error {
	return s.store.Save(ctx, s.id, s.data, s.ttl)
}
