package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/trongtriet5/metadent-e-commerce-website/internal/domain"
)

// Store holds the authoritative cart snapshot for one storefront session.
// Every mutation recomputes line totals, keeps at most one line per product
// id, and persists the updated snapshot before returning. The in-memory
// snapshot stays the source of truth even when persistence fails.
type Store struct {
	mu      sync.RWMutex
	lines   []domain.CartLine
	storage Storage
	log     *zap.Logger
}

// NewStore rehydrates the snapshot from storage. A missing or unreadable
// snapshot degrades to an empty cart.
func NewStore(ctx context.Context, storage Storage, log *zap.Logger) *Store {
	s := &Store{
		storage: storage,
		log:     log,
	}

	lines, err := storage.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrSnapshotNotFound) {
			log.Warn("cart snapshot load failed, starting empty", zap.Error(err))
		}
		return s
	}
	s.lines = lines
	return s
}

// AddItem merges into an existing line for the same product id, or appends
// a new line. Quantities below 1 count as 1. Returns the resulting line.
func (s *Store) AddItem(ctx context.Context, product domain.Product, quantity int) domain.CartLine {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].Product.ID == product.ID {
			s.lines[i].Quantity += quantity
			s.lines[i].LineTotal = s.lines[i].Product.Price * float64(s.lines[i].Quantity)
			s.persist(ctx)
			return s.lines[i]
		}
	}

	line := domain.CartLine{
		ID:        uuid.NewString(),
		Product:   product,
		Quantity:  quantity,
		LineTotal: product.Price * float64(quantity),
	}
	s.lines = append(s.lines, line)
	s.persist(ctx)
	return line
}

// RemoveLine deletes the line with the given id. Absent lines are a no-op.
func (s *Store) RemoveLine(ctx context.Context, lineID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, line := range s.lines {
		if line.ID == lineID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.persist(ctx)
			return
		}
	}
}

// UpdateQuantity sets the quantity of the matching line and recomputes its
// total. A quantity of zero or below removes the line. Absent lines are a
// no-op.
func (s *Store) UpdateQuantity(ctx context.Context, lineID string, quantity int) {
	if quantity <= 0 {
		s.RemoveLine(ctx, lineID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ID == lineID {
			s.lines[i].Quantity = quantity
			s.lines[i].LineTotal = s.lines[i].Product.Price * float64(quantity)
			s.persist(ctx)
			return
		}
	}
}

// Clear empties the cart. Used after a successful order.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.persist(ctx)
}

// Lines returns a copy of the snapshot in insertion order.
func (s *Store) Lines() []domain.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.CartLine(nil), s.lines...)
}

// TotalItems is the sum of all line quantities.
func (s *Store) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice is the sum of all line totals.
func (s *Store) TotalPrice() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0.0
	for _, line := range s.lines {
		total += line.LineTotal
	}
	return total
}

// persist writes the snapshot unconditionally after a mutation. Failures
// are logged and swallowed; the session keeps running on the in-memory
// state. Callers must hold the write lock.
func (s *Store) persist(ctx context.Context) {
	if err := s.storage.Save(ctx, s.lines); err != nil {
		s.log.Error("cart snapshot save failed", zap.Error(err))
	}
}
