package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/fadedpez/tong777/internal/logging"
	"github.com/fadedpez/tong777/internal/types"
	"github.com/fadedpez/tong777/pkg/auth"
	"github.com/fadedpez/tong777/pkg/entities"
	gamesmock "github.com/fadedpez/tong777/pkg/games/mock"
	historymock "github.com/fadedpez/tong777/pkg/repositories/history/mock"
	"github.com/fadedpez/tong777/pkg/repositories/player"
	playermock "github.com/fadedpez/tong777/pkg/repositories/player/mock"
	rngmock "github.com/fadedpez/tong777/pkg/rng/mock"
)

type ServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	repo     *playermock.MockRepository
	archiver *historymock.Archiver
	hasher   *auth.BcryptHasher
	rng      *rngmock.Provider
	clock    time.Time
	service  *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.ctx = context.Background()
	s.repo = playermock.NewMockRepository(ctrl)
	s.archiver = &historymock.Archiver{}
	s.archiver.Test(s.T())
	s.hasher = auth.NewBcryptHasher(bcrypt.MinCost)
	s.rng = rngmock.NewProvider()
	s.clock = time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC)
	s.service = s.newService(DefaultConfig())
}

func (s *ServiceTestSuite) TearDownTest() {
	s.archiver.AssertExpectations(s.T())
}

func (s *ServiceTestSuite) newService(cfg Config) *Service {
	return NewService(s.repo, s.hasher, cfg,
		WithArchiver(s.archiver),
		WithRNG(s.rng),
		WithLogger(logging.Nop()),
		WithClock(func() time.Time { return s.clock }),
	)
}

func (s *ServiceTestSuite) storedRecord(password string, history ...entities.GameRecord) *entities.PlayerRecord {
	digest, err := s.hasher.Hash(password)
	s.Require().NoError(err)
	return &entities.PlayerRecord{
		Username:       "alice",
		PasswordDigest: digest,
		Balance:        decimal.RequireFromString("100"),
		History:        history,
	}
}

func (s *ServiceTestSuite) login(history ...entities.GameRecord) *Session {
	s.repo.EXPECT().Load(gomock.Any(), "alice").Return(s.storedRecord("secret", history...), nil)
	sess, err := s.service.Login(s.ctx, "alice", "secret")
	s.Require().NoError(err)
	return sess
}

func pastRound(bet string) entities.GameRecord {
	return entities.GameRecord{
		ID:           "old-" + bet,
		Game:         entities.GameHighLow,
		Bet:          decimal.RequireFromString(bet),
		Result:       decimal.RequireFromString(bet),
		Outcome:      entities.ResultWin,
		BalanceAfter: decimal.RequireFromString("100"),
		Timestamp:    time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *ServiceTestSuite) TestRegister() {
	// Setup
	var saved *entities.PlayerRecord
	s.repo.EXPECT().Load(gomock.Any(), "alice").Return(nil, player.ErrPlayerNotFound)
	s.repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r *entities.PlayerRecord) error {
		saved = r
		return nil
	})

	// Execute
	sess, err := s.service.Register(s.ctx, "alice", "secret")

	// Assert
	s.Require().NoError(err)
	s.Equal("alice", sess.Username())
	s.Equal("100.00", sess.Balance().StringFixed(2))
	s.Require().NotNil(saved)
	s.Equal("alice", saved.Username)
	s.NotEqual("secret", saved.PasswordDigest)
	s.True(s.hasher.Verify("secret", saved.PasswordDigest))
	s.Empty(saved.History)
}

func (s *ServiceTestSuite) TestRegisterStartingBalance() {
	// Setup
	cfg := DefaultConfig()
	cfg.StartingBalance = decimal.RequireFromString("250.50")
	service := s.newService(cfg)
	s.repo.EXPECT().Load(gomock.Any(), "bob").Return(nil, player.ErrPlayerNotFound)
	s.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	// Execute
	sess, err := service.Register(s.ctx, "bob", "pw")

	// Assert
	s.Require().NoError(err)
	s.Equal("250.50", sess.Balance().StringFixed(2))
}

func (s *ServiceTestSuite) TestRegisterErrors() {
	tests := []struct {
		name     string
		username string
		password string
		prepare  func()
		code     types.ErrorCode
	}{
		{
			name:     "empty username",
			username: "  ",
			password: "pw",
			code:     types.ErrCodeInvalidArgument,
		},
		{
			name:     "empty password",
			username: "alice",
			password: "",
			code:     types.ErrCodeInvalidArgument,
		},
		{
			name:     "path in username",
			username: "../etc",
			password: "pw",
			code:     types.ErrCodeInvalidArgument,
		},
		{
			name:     "taken",
			username: "alice",
			password: "pw",
			prepare: func() {
				s.repo.EXPECT().Load(gomock.Any(), "alice").Return(&entities.PlayerRecord{Username: "alice"}, nil)
			},
			code: types.ErrCodeUsernameTaken,
		},
		{
			name:     "storage down",
			username: "alice",
			password: "pw",
			prepare: func() {
				s.repo.EXPECT().Load(gomock.Any(), "alice").Return(nil, errors.New("disk on fire"))
			},
			code: types.ErrCodeStorageFailure,
		},
		{
			name:     "save fails",
			username: "alice",
			password: "pw",
			prepare: func() {
				s.repo.EXPECT().Load(gomock.Any(), "alice").Return(nil, player.ErrPlayerNotFound)
				s.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("read-only"))
			},
			code: types.ErrCodeStorageFailure,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			if tt.prepare != nil {
				tt.prepare()
			}

			sess, err := s.service.Register(s.ctx, tt.username, tt.password)

			s.Nil(sess)
			s.True(types.IsGameError(err, tt.code), "got %v", err)
		})
	}
}

func (s *ServiceTestSuite) TestLogin() {
	// Execute
	sess := s.login(pastRound("5"), pastRound("7"))

	// Assert
	s.Equal("alice", sess.Username())
	s.Equal("100.00", sess.Balance().StringFixed(2))
	s.Len(sess.Recorder().History(), 2)
	s.Equal(s.clock, sess.LoginAt())
}

func (s *ServiceTestSuite) TestLoginErrors() {
	s.Run("unknown user", func() {
		s.repo.EXPECT().Load(gomock.Any(), "ghost").Return(nil, player.ErrPlayerNotFound)

		_, err := s.service.Login(s.ctx, "ghost", "pw")

		s.True(types.IsGameError(err, types.ErrCodeInvalidCredentials))
	})

	s.Run("wrong password", func() {
		s.repo.EXPECT().Load(gomock.Any(), "alice").Return(s.storedRecord("secret"), nil)

		_, err := s.service.Login(s.ctx, "alice", "guess")

		s.True(types.IsGameError(err, types.ErrCodeInvalidCredentials))
	})

	s.Run("storage down", func() {
		s.repo.EXPECT().Load(gomock.Any(), "alice").Return(nil, errors.New("timeout"))

		_, err := s.service.Login(s.ctx, "alice", "secret")

		s.True(types.IsGameError(err, types.ErrCodeStorageFailure))
	})
}

func (s *ServiceTestSuite) TestPlayRecordsArchivesAndSaves() {
	// Setup
	sess := s.login()
	s.rng.QueueInts(0)

	presenter := &gamesmock.Presenter{}
	presenter.Test(s.T())
	presenter.On("RawBet", mock.Anything).Return("20", nil).Once()
	presenter.On("Choose", mock.Anything).Return(entities.ChoiceHeads, nil).Once()
	presenter.On("Resolved", mock.Anything).Once()

	s.archiver.On("Archive", mock.Anything, "alice", mock.MatchedBy(func(r entities.GameRecord) bool {
		return r.Game == entities.GameCoinFlip && r.Result.Equal(decimal.NewFromInt(20))
	})).Return(nil).Once()

	var saved *entities.PlayerRecord
	s.repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r *entities.PlayerRecord) error {
		saved = r
		return nil
	})

	// Execute
	summary, err := sess.Play(s.ctx, entities.GameCoinFlip, presenter)

	// Assert
	s.Require().NoError(err)
	s.Equal(1, summary.Rounds)
	s.Equal("120.00", sess.Balance().StringFixed(2))
	s.Require().NotNil(saved)
	s.Equal("120.00", saved.Balance.StringFixed(2))
	s.Require().Len(saved.History, 1)
	s.Equal("120.00", saved.History[0].BalanceAfter.StringFixed(2))
	s.Equal(s.clock, saved.History[0].Timestamp)
	presenter.AssertExpectations(s.T())
}

func (s *ServiceTestSuite) TestPlaySaveFailureIsReported() {
	// Setup
	sess := s.login()
	s.rng.QueueInts(1)

	presenter := &gamesmock.Presenter{}
	presenter.Test(s.T())
	presenter.On("RawBet", mock.Anything).Return("20", nil).Once()
	presenter.On("Choose", mock.Anything).Return(entities.ChoiceHeads, nil).Once()
	presenter.On("Resolved", mock.Anything).Once()
	presenter.On("Rejected", mock.MatchedBy(func(err error) bool {
		return types.IsGameError(err, types.ErrCodeStorageFailure)
	})).Once()

	s.archiver.On("Archive", mock.Anything, "alice", mock.Anything).Return(nil).Once()
	s.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	// Execute
	summary, err := sess.Play(s.ctx, entities.GameCoinFlip, presenter)

	// Assert
	s.Require().NoError(err)
	s.Equal(1, summary.Rounds)
	s.Equal("80.00", sess.Balance().StringFixed(2), "The ledger stays authoritative")
	s.Len(sess.Recorder().History(), 1)
	presenter.AssertExpectations(s.T())
}

func (s *ServiceTestSuite) TestPlayArchiveFailureIsNotFatal() {
	// Setup
	sess := s.login()
	s.rng.QueueInts(0)

	presenter := &gamesmock.Presenter{}
	presenter.Test(s.T())
	presenter.On("RawBet", mock.Anything).Return("10", nil).Once()
	presenter.On("Choose", mock.Anything).Return(entities.ChoiceHeads, nil).Once()
	presenter.On("Resolved", mock.Anything).Once()

	s.archiver.On("Archive", mock.Anything, "alice", mock.Anything).Return(errors.New("cluster red")).Once()
	s.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	// Execute
	_, err := sess.Play(s.ctx, entities.GameCoinFlip, presenter)

	// Assert
	s.Require().NoError(err)
	presenter.AssertExpectations(s.T())
}

func (s *ServiceTestSuite) TestPlayUnknownGame() {
	sess := s.login()

	_, err := sess.Play(s.ctx, entities.GameKind("roulette"), &gamesmock.Presenter{})

	s.True(types.IsGameError(err, types.ErrCodeGameNotFound))
}

func (s *ServiceTestSuite) TestSaveTrimsHistory() {
	// Setup
	cfg := DefaultConfig()
	cfg.HistoryLimit = 2
	s.service = s.newService(cfg)
	sess := s.login(pastRound("1"), pastRound("2"), pastRound("3"))

	var saved *entities.PlayerRecord
	s.repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r *entities.PlayerRecord) error {
		saved = r
		return nil
	})

	// Execute
	err := s.service.Save(s.ctx, sess)

	// Assert
	s.Require().NoError(err)
	s.Require().Len(saved.History, 2)
	s.Equal("old-2", saved.History[0].ID)
	s.Equal("old-3", saved.History[1].ID)
	s.Len(sess.Recorder().History(), 3)
}

func (s *ServiceTestSuite) TestDepositAndWithdraw() {
	sess := s.login()

	s.Run("deposit saves", func() {
		s.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		tx, err := sess.Deposit(s.ctx, decimal.RequireFromString("50"))

		s.Require().NoError(err)
		s.Equal(entities.TransactionTypeDeposit, tx.Type)
		s.Equal("150.00", sess.Balance().StringFixed(2))
	})

	s.Run("invalid deposit does not save", func() {
		_, err := sess.Deposit(s.ctx, decimal.Zero)

		s.True(types.IsGameError(err, types.ErrCodeInvalidAmount))
		s.Equal("150.00", sess.Balance().StringFixed(2))
	})

	s.Run("withdraw saves", func() {
		s.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		_, err := sess.Withdraw(s.ctx, decimal.RequireFromString("30"))

		s.Require().NoError(err)
		s.Equal("120.00", sess.Balance().StringFixed(2))
	})

	s.Run("overdraw", func() {
		_, err := sess.Withdraw(s.ctx, decimal.RequireFromString("120.01"))

		s.ErrorIs(err, types.ErrInsufficientFunds)
		s.Equal("120.00", sess.Balance().StringFixed(2))
	})

	s.Run("save failure surfaces", func() {
		s.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("nope"))

		tx, err := sess.Deposit(s.ctx, decimal.RequireFromString("1"))

		s.NotNil(tx)
		s.True(types.IsGameError(err, types.ErrCodeStorageFailure))
		s.Equal("121.00", sess.Balance().StringFixed(2))
	})
}

func (s *ServiceTestSuite) TestStats() {
	s.Run("found", func() {
		s.repo.EXPECT().Load(gomock.Any(), "alice").Return(s.storedRecord("pw", pastRound("5")), nil)

		recorder, balance, err := s.service.Stats(s.ctx, "alice")

		s.Require().NoError(err)
		s.Equal(1, recorder.Summary().GamesPlayed)
		s.Equal("100.00", balance.StringFixed(2))
	})

	s.Run("missing", func() {
		s.repo.EXPECT().Load(gomock.Any(), "ghost").Return(nil, player.ErrPlayerNotFound)

		_, _, err := s.service.Stats(s.ctx, "ghost")

		s.True(types.IsGameError(err, types.ErrCodePlayerNotFound))
	})
}

func (s *ServiceTestSuite) TestLogout() {
	sess := s.login()
	s.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	s.NoError(s.service.Logout(s.ctx, sess))
}
