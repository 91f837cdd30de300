package cart

import "sync"

// Store keeps one cart per user for the lifetime of the process. The cart
// itself is safe for concurrent use; the store additionally serialises
// compound read-modify-write sequences per user via Update.
type Store struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

// NewStore creates an empty cart store.
func NewStore() *Store {
	return &Store{
		carts: make(map[string]*Cart),
	}
}

// Get returns the user's cart, creating it on first use.
func (s *Store) Get(userID string) *Cart {
	s.mu.RLock()
	c, ok := s.carts[userID]
	s.mu.RUnlock()
	if ok {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.carts[userID]; ok {
		return c
	}
	c = New()
	s.carts[userID] = c
	return c
}

// Update runs fn against the user's cart while holding the store lock,
// serialising mutations per user.
func (s *Store) Update(userID string, fn func(c *Cart)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[userID]
	if !ok {
		c = New()
		s.carts[userID] = c
	}
	fn(c)
}
