package types

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrorCode represents a specific error type
type ErrorCode string

const (
	// Wallet and betting errors
	ErrCodeInvalidFormat     ErrorCode = "INVALID_FORMAT"
	ErrCodeInsufficientFunds ErrorCode = "INSUFFICIENT_FUNDS"
	ErrCodeInvalidAmount     ErrorCode = "INVALID_AMOUNT"

	// Game errors
	ErrCodeIllegalState ErrorCode = "ILLEGAL_STATE"
	ErrCodeGameNotFound ErrorCode = "GAME_NOT_FOUND"

	// Account errors
	ErrCodePlayerNotFound     ErrorCode = "PLAYER_NOT_FOUND"
	ErrCodeUsernameTaken      ErrorCode = "USERNAME_TAKEN"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeInvalidArgument    ErrorCode = "INVALID_ARGUMENT"

	// System errors
	ErrCodeStorageFailure ErrorCode = "STORAGE_FAILURE"
	ErrCodeInternalError  ErrorCode = "INTERNAL_ERROR"
)

// ErrInsufficientFunds is matched by every InsufficientFundsError via errors.Is
var ErrInsufficientFunds = errors.New("insufficient funds")

// GameError represents a game-related error
type GameError struct {
	Code    ErrorCode
	Message string
	Err     error // Underlying error, if any
}

// Error implements the error interface
func (e *GameError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *GameError) Unwrap() error {
	return e.Err
}

// NewGameError creates a new GameError
func NewGameError(code ErrorCode, message string) *GameError {
	return &GameError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error in a GameError
func WrapError(code ErrorCode, message string, err error) *GameError {
	return &GameError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// InsufficientFundsError is returned when a bet or withdrawal exceeds the balance.
// It carries both sides of the comparison so callers can re-prompt.
type InsufficientFundsError struct {
	Required  decimal.Decimal
	Available decimal.Decimal
}

// NewInsufficientFunds creates an InsufficientFundsError
func NewInsufficientFunds(required, available decimal.Decimal) *InsufficientFundsError {
	return &InsufficientFundsError{
		Required:  required,
		Available: available,
	}
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("%s: required %s, available %s",
		ErrCodeInsufficientFunds, e.Required.StringFixed(2), e.Available.StringFixed(2))
}

// Is lets errors.Is(err, ErrInsufficientFunds) match
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// IsGameError checks if an error is a GameError (or an InsufficientFundsError)
// with a specific code anywhere in its chain
func IsGameError(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}
	if code == ErrCodeInsufficientFunds && errors.Is(err, ErrInsufficientFunds) {
		return true
	}
	var gameErr *GameError
	if !As(err, &gameErr) {
		return false
	}
	return gameErr.Code == code
}

// As finds the first GameError in err's chain
func As(err error, target **GameError) bool {
	if target == nil {
		return false
	}
	return errors.As(err, target)
}

// CodeOf returns the code of the first GameError in err's chain, or
// ErrCodeInternalError when there is none
func CodeOf(err error) ErrorCode {
	if errors.Is(err, ErrInsufficientFunds) {
		return ErrCodeInsufficientFunds
	}
	var gameErr *GameError
	if As(err, &gameErr) {
		return gameErr.Code
	}
	return ErrCodeInternalError
}
