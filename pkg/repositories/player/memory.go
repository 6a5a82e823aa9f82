package player

import (
	"context"
	"sync"

	"github.com/fadedpez/tong777/pkg/entities"
)

// MemoryRepository implements Repository using in-memory storage
type MemoryRepository struct {
	players map[string]*entities.PlayerRecord
	mu      sync.RWMutex
}

// NewMemoryRepository creates a new in-memory player repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		players: make(map[string]*entities.PlayerRecord),
	}
}

// Load implements Repository
func (r *MemoryRepository) Load(ctx context.Context, username string) (*entities.PlayerRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.players[username]
	if !exists {
		return nil, ErrPlayerNotFound
	}
	return record.Clone(), nil
}

// Save implements Repository
func (r *MemoryRepository) Save(ctx context.Context, record *entities.PlayerRecord) error {
	if err := ValidateUsername(record.Username); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.players[record.Username] = record.Clone()
	return nil
}

// Close implements Repository
func (r *MemoryRepository) Close() error {
	return nil
}
