package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fadedpez/tong777/pkg/entities"
)

// Archiver is a mock implementation of history.Archiver
type Archiver struct {
	mock.Mock
}

// Archive implements history.Archiver
func (a *Archiver) Archive(ctx context.Context, username string, record entities.GameRecord) error {
	args := a.Called(ctx, username, record)
	return args.Error(0)
}
