package mock

import (
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/fadedpez/tong777/pkg/entities"
)

// Presenter is a mock implementation of games.Presenter
type Presenter struct {
	mock.Mock
}

// RawBet implements games.Presenter
func (p *Presenter) RawBet(available decimal.Decimal) (string, error) {
	args := p.Called(available)
	return args.String(0), args.Error(1)
}

// Choose implements games.Presenter
func (p *Presenter) Choose(prompt entities.Prompt) (entities.Choice, error) {
	args := p.Called(prompt)
	return args.Get(0).(entities.Choice), args.Error(1)
}

// Rejected implements games.Presenter
func (p *Presenter) Rejected(err error) {
	p.Called(err)
}

// Resolved implements games.Presenter
func (p *Presenter) Resolved(outcome *entities.Outcome) {
	p.Called(outcome)
}
