package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/trongtriet5/metadent-e-commerce-website/internal/domain"
)

// DefaultNamespace is the key the cart snapshot is persisted under when the
// caller does not pick one.
const DefaultNamespace = "cart-storage"

var ErrSnapshotNotFound = errors.New("cart snapshot not found")

// Storage persists the cart line list across restarts. Only the line list
// is stored, nothing else. Consumers define this interface, not the redis
// or mongo implementation.
type Storage interface {
	Save(ctx context.Context, lines []domain.CartLine) error
	Load(ctx context.Context) ([]domain.CartLine, error)
}

// MemoryStorage keeps the snapshot in process memory. Used by tests and as
// the fallback backend when no durable store is configured.
type MemoryStorage struct {
	mu    sync.RWMutex
	lines []domain.CartLine
	set   bool
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Save(_ context.Context, lines []domain.CartLine) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = append([]domain.CartLine(nil), lines...)
	m.set = true
	return nil
}

func (m *MemoryStorage) Load(_ context.Context) ([]domain.CartLine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.set {
		return nil, ErrSnapshotNotFound
	}
	return append([]domain.CartLine(nil), m.lines...), nil
}
