package catalog

import (
	"context"
	"slices"
	"sync"

	"github.com/go-faster/errors"
)

// Store holds the in-memory product snapshot and keeps it synchronized with
// the remote repository. Reads always see the snapshot from the most recent
// successful fetch; a failed Load leaves the previous snapshot intact.
//
// Mutations follow a confirm-then-apply discipline: the repository write must
// succeed before the snapshot changes, so a failed remote call never leaves a
// speculative local change behind. Concurrent updates to the same id are not
// serialized against each other; the last write to reach the repository wins.
type Store struct {
	repo Repository

	mu       sync.RWMutex
	products []Product
	version  uint64
	subs     []chan []Product
}

// NewStore creates a Store with an empty snapshot. Call Load to populate it.
func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

// Load replaces the snapshot with a fresh fetch from the repository, ordered
// by creation recency. On failure the previous snapshot is kept and the error
// returned; there is no retry policy here.
func (s *Store) Load(ctx context.Context) error {
	products, err := s.repo.List(ctx)
	if err != nil {
		return errors.Wrap(err, "fetch products")
	}

	s.mu.Lock()
	s.products = products
	s.bump()
	s.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the current product list, most recent first.
func (s *Store) Snapshot() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.products)
}

// Len returns the number of products in the snapshot.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// Get returns the snapshot entry with the given id, or ErrNotFound.
func (s *Store) Get(id int64) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

// Version returns a counter that increments on every snapshot change.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Subscribe registers a channel that receives a fresh snapshot copy after
// every successful change. Slow subscribers drop updates instead of blocking
// mutations; a subsequent update carries the newer state anyway.
func (s *Store) Subscribe() <-chan []Product {
	ch := make(chan []Product, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

// bump increments the version and notifies subscribers.
// Callers must hold s.mu.
func (s *Store) bump() {
	s.version++
	for _, ch := range s.subs {
		select {
		case ch <- slices.Clone(s.products):
		default:
		}
	}
}

// Create validates the form, inserts the product remotely, and on success
// prepends the new record to the snapshot so most-recent-first ordering holds.
func (s *Store) Create(ctx context.Context, f Form) (Product, error) {
	draft, err := ParseForm(f)
	if err != nil {
		return Product{}, err
	}

	created, err := s.repo.Insert(ctx, draft)
	if err != nil {
		return Product{}, errors.Wrap(err, "insert product")
	}

	s.mu.Lock()
	s.products = append([]Product{*created}, s.products...)
	s.bump()
	s.mu.Unlock()
	return *created, nil
}

// Update validates the form, updates the product remotely, and on success
// replaces the snapshot entry in place, preserving its position.
func (s *Store) Update(ctx context.Context, id int64, f Form) (Product, error) {
	draft, err := ParseForm(f)
	if err != nil {
		return Product{}, err
	}

	updated, err := s.repo.Update(ctx, id, draft)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Product{}, ErrNotFound
		}
		return Product{}, errors.Wrapf(err, "update product %d", id)
	}

	s.mu.Lock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products[i] = *updated
			break
		}
	}
	s.bump()
	s.mu.Unlock()
	return *updated, nil
}

// Delete removes the product remotely and, on success, from the snapshot.
// The id becomes invalid for all subsequent operations.
func (s *Store) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return errors.Wrapf(err, "delete product %d", id)
	}

	s.mu.Lock()
	s.products = slices.DeleteFunc(s.products, func(p Product) bool {
		return p.ID == id
	})
	s.bump()
	s.mu.Unlock()
	return nil
}
