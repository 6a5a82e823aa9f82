package player

//go:generate mockgen -source=interface.go -destination=mock/repository.go -package=mock

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fadedpez/tong777/pkg/entities"
)

var (
	ErrPlayerNotFound  = errors.New("player not found")
	ErrInvalidUsername = errors.New("invalid username")
)

// Repository persists player records. Save replaces whatever was stored
// under the username; the last write wins.
type Repository interface {
	// Load returns the stored record or ErrPlayerNotFound
	Load(ctx context.Context, username string) (*entities.PlayerRecord, error)

	// Save creates or replaces the record
	Save(ctx context.Context, record *entities.PlayerRecord) error

	// Close releases the backend's resources
	Close() error
}

// ValidateUsername rejects names that can't be used as a storage key or file name
func ValidateUsername(username string) error {
	switch {
	case strings.TrimSpace(username) == "":
		return fmt.Errorf("%w: empty", ErrInvalidUsername)
	case username == "." || username == "..":
		return fmt.Errorf("%w: %q", ErrInvalidUsername, username)
	case strings.ContainsAny(username, `/\:`+"\x00"):
		return fmt.Errorf("%w: %q contains a reserved character", ErrInvalidUsername, username)
	}
	return nil
}
