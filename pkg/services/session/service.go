// Package session ties a logged-in player's ledger, history and game table
// to the player store.
package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fadedpez/tong777/internal/logging"
	"github.com/fadedpez/tong777/internal/types"
	"github.com/fadedpez/tong777/pkg/auth"
	"github.com/fadedpez/tong777/pkg/entities"
	"github.com/fadedpez/tong777/pkg/games"
	"github.com/fadedpez/tong777/pkg/repositories/history"
	"github.com/fadedpez/tong777/pkg/repositories/player"
	"github.com/fadedpez/tong777/pkg/rng"
	"github.com/fadedpez/tong777/pkg/services/statistics"
	"github.com/fadedpez/tong777/pkg/services/wallet"
)

// Config holds the account rules
type Config struct {
	StartingBalance decimal.Decimal
	HistoryLimit    int
}

// DefaultConfig gives new accounts 100.00 and keeps 100 rounds of history
func DefaultConfig() Config {
	return Config{
		StartingBalance: decimal.NewFromInt(100),
		HistoryLimit:    100,
	}
}

// Service registers and logs in players and persists their sessions
type Service struct {
	repo     player.Repository
	hasher   auth.Hasher
	archiver history.Archiver
	engines  *games.Engines
	rng      rng.Provider
	cfg      Config
	logger   *logging.Logger
	now      func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithArchiver indexes every recorded round into a
func WithArchiver(a history.Archiver) Option {
	return func(s *Service) {
		s.archiver = a
	}
}

// WithEngines sets the game engines sessions play against
func WithEngines(engines *games.Engines) Option {
	return func(s *Service) {
		s.engines = engines
	}
}

// WithRNG sets the randomness shared by every session
func WithRNG(p rng.Provider) Option {
	return func(s *Service) {
		s.rng = p
	}
}

// WithLogger sets the service's logger
func WithLogger(logger *logging.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithClock overrides the timestamp source
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a session service
func NewService(repo player.Repository, hasher auth.Hasher, cfg Config, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		hasher: hasher,
		cfg:    cfg,
		logger: logging.Default.Named("session"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.engines == nil {
		s.engines = games.NewEngines(games.DefaultConfig())
	}
	if s.rng == nil {
		src, err := rng.NewSeeded()
		if err != nil {
			s.logger.Warn("Falling back to a clock seed: %v", err)
			src = rng.New(uint64(s.now().UnixNano()))
		}
		s.rng = src
	}
	return s
}

func validateCredentials(username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return types.NewGameError(types.ErrCodeInvalidArgument, "username and password are required")
	}
	if err := player.ValidateUsername(username); err != nil {
		return types.WrapError(types.ErrCodeInvalidArgument, "invalid username", err)
	}
	return nil
}

// Register creates an account funded with the starting balance and logs it in
func (s *Service) Register(ctx context.Context, username, password string) (*Session, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	_, err := s.repo.Load(ctx, username)
	switch {
	case err == nil:
		return nil, types.NewGameError(types.ErrCodeUsernameTaken, "Username "+username+" is already taken")
	case !errors.Is(err, player.ErrPlayerNotFound):
		return nil, types.WrapError(types.ErrCodeStorageFailure, "failed to look up player", err)
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, types.WrapError(types.ErrCodeInternalError, "failed to hash password", err)
	}

	sess, err := s.open(&entities.PlayerRecord{
		Username:       username,
		PasswordDigest: digest,
		Balance:        s.cfg.StartingBalance,
	})
	if err != nil {
		return nil, err
	}

	if err := s.Save(ctx, sess); err != nil {
		return nil, err
	}

	s.logger.Info("Registered %s with %s", username, s.cfg.StartingBalance.StringFixed(2))
	return sess, nil
}

// Login restores a player's balance and history
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	record, err := s.repo.Load(ctx, username)
	if err != nil {
		if errors.Is(err, player.ErrPlayerNotFound) {
			return nil, types.NewGameError(types.ErrCodeInvalidCredentials, "Invalid username or password")
		}
		return nil, types.WrapError(types.ErrCodeStorageFailure, "failed to load player", err)
	}

	if !s.hasher.Verify(password, record.PasswordDigest) {
		return nil, types.NewGameError(types.ErrCodeInvalidCredentials, "Invalid username or password")
	}

	sess, err := s.open(record)
	if err != nil {
		return nil, err
	}

	s.logger.Info("%s logged in with %s", username, record.Balance.StringFixed(2))
	return sess, nil
}

// Stats loads a player's stored history without logging them in
func (s *Service) Stats(ctx context.Context, username string) (*statistics.Recorder, decimal.Decimal, error) {
	record, err := s.repo.Load(ctx, username)
	if err != nil {
		if errors.Is(err, player.ErrPlayerNotFound) {
			return nil, decimal.Zero, types.NewGameError(types.ErrCodePlayerNotFound, "Player "+username+" not found")
		}
		return nil, decimal.Zero, types.WrapError(types.ErrCodeStorageFailure, "failed to load player", err)
	}
	return statistics.NewRecorder(record.History), record.Balance, nil
}

func (s *Service) open(record *entities.PlayerRecord) (*Session, error) {
	ledger, err := wallet.NewLedger(record.Balance,
		wallet.WithLogger(s.logger.Named("wallet")),
		wallet.WithClock(s.now),
	)
	if err != nil {
		return nil, types.WrapError(types.ErrCodeStorageFailure, "stored balance is invalid", err)
	}

	sess := &Session{
		username: record.Username,
		digest:   record.PasswordDigest,
		loginAt:  s.now(),
		ledger:   ledger,
		recorder: statistics.NewRecorder(record.History, statistics.WithClock(s.now)),
		service:  s,
	}
	sess.table = games.NewTable(ledger, s.engines, s.rng, games.WithTableLogger(s.logger.Named("table")))
	sess.table.OnRoundResolved(func(ctx context.Context, outcome *entities.Outcome) error {
		return s.afterRound(ctx, sess, outcome)
	})
	return sess, nil
}

// afterRound records the round, archives it when an archiver is configured and persists the player
func (s *Service) afterRound(ctx context.Context, sess *Session, outcome *entities.Outcome) error {
	record, err := sess.recorder.Record(outcome)
	if err != nil {
		return err
	}

	if s.archiver != nil {
		if err := s.archiver.Archive(ctx, sess.username, record); err != nil {
			s.logger.Warn("Failed to archive round %s for %s: %v", record.ID, sess.username, err)
		}
	}

	return s.Save(ctx, sess)
}

// Save persists the session's balance and newest history. On failure the
// in-memory session stays authoritative and the next save retries.
func (s *Service) Save(ctx context.Context, sess *Session) error {
	record := sess.Record()
	record.TrimHistory(s.cfg.HistoryLimit)

	if err := s.repo.Save(ctx, record); err != nil {
		return types.WrapError(types.ErrCodeStorageFailure, "failed to save player", err)
	}
	return nil
}

// Logout saves the session one last time
func (s *Service) Logout(ctx context.Context, sess *Session) error {
	if err := s.Save(ctx, sess); err != nil {
		return err
	}

	summary := sess.recorder.SessionSummary(sess.loginAt)
	s.logger.Info("%s logged out after %d games, net %s", sess.username, summary.GamesPlayed, summary.NetProfit().StringFixed(2))
	return nil
}
