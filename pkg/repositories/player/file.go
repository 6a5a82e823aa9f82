package player

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fadedpez/tong777/pkg/entities"
)

// FileRepository stores one JSON document per player under a base directory
type FileRepository struct {
	dir string
	mu  sync.RWMutex
}

// NewFileRepository creates the base directory if needed
func NewFileRepository(dir string) (*FileRepository, error) {
	if dir == "" {
		return nil, errors.New("player directory is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return &FileRepository{dir: dir}, nil
}

func (r *FileRepository) path(username string) string {
	return filepath.Join(r.dir, username+".json")
}

// Load implements Repository
func (r *FileRepository) Load(ctx context.Context, username string) (*entities.PlayerRecord, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := os.ReadFile(r.path(username))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read player %s: %w", username, err)
	}

	var record entities.PlayerRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to decode player %s: %w", username, err)
	}
	return &record, nil
}

// Save implements Repository. The document is written to a temp file and
// renamed so a crash never leaves a half-written record.
func (r *FileRepository) Save(ctx context.Context, record *entities.PlayerRecord) error {
	if err := ValidateUsername(record.Username); err != nil {
		return err
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal player: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tmp, err := os.CreateTemp(r.dir, record.Username+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path(record.Username)); err != nil {
		return fmt.Errorf("failed to replace player file: %w", err)
	}
	return nil
}

// Close implements Repository
func (r *FileRepository) Close() error {
	return nil
}
