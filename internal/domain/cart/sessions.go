package cart

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when a cart id does not correspond to a
// live session (never created, or expired).
var ErrSessionNotFound = errors.New("cart session not found")

// session pairs a cart with its last-touched timestamp for TTL eviction.
type session struct {
	cart    Cart
	touched time.Time
}

// Sessions holds the transient, presentation-session-scoped carts keyed by an
// opaque id. Carts are never persisted; an idle session is evicted after the
// configured TTL by a background janitor.
type Sessions struct {
	ttl time.Duration
	now func() time.Time

	mu    sync.Mutex
	carts map[string]*session
}

// NewSessions creates a session registry with the given idle TTL.
func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		ttl:   ttl,
		now:   time.Now,
		carts: make(map[string]*session),
	}
}

// Open creates a new empty cart session and returns its id.
func (s *Sessions) Open() string {
	id := uuid.New().String()
	s.mu.Lock()
	s.carts[id] = &session{touched: s.now()}
	s.mu.Unlock()
	return id
}

// Get returns the cart for id, refreshing its TTL.
func (s *Sessions) Get(id string) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.carts[id]
	if !ok {
		return Cart{}, ErrSessionNotFound
	}
	sess.touched = s.now()
	return sess.cart, nil
}

// Mutate applies fn to the cart for id under the registry lock and stores the
// result. fn receives the current cart value and returns the replacement; an
// error from fn leaves the stored cart unchanged.
func (s *Sessions) Mutate(id string, fn func(Cart) (Cart, error)) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.carts[id]
	if !ok {
		return Cart{}, ErrSessionNotFound
	}

	next, err := fn(sess.cart)
	if err != nil {
		return sess.cart, err
	}
	sess.cart = next
	sess.touched = s.now()
	return next, nil
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts)
}

// StartJanitor launches a goroutine that evicts idle sessions every interval
// until ctx is cancelled.
func (s *Sessions) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.evictIdle()
			}
		}
	}()
}

func (s *Sessions) evictIdle() {
	cutoff := s.now().Add(-s.ttl)
	s.mu.Lock()
	for id, sess := range s.carts {
		if sess.touched.Before(cutoff) {
			delete(s.carts, id)
		}
	}
	s.mu.Unlock()
}
