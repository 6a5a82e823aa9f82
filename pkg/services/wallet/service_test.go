package wallet

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/fadedpez/tong777/internal/logging"
	"github.com/fadedpez/tong777/internal/types"
	"github.com/fadedpez/tong777/pkg/entities"
)

type LedgerTestSuite struct {
	suite.Suite
	ledger *Ledger
	now    time.Time
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (s *LedgerTestSuite) SetupTest() {
	s.now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	ledger, err := NewLedger(d("100"), WithLogger(logging.Nop()), WithClock(func() time.Time { return s.now }))
	s.Require().NoError(err)
	s.ledger = ledger
}

func (s *LedgerTestSuite) TestNewLedgerRejectsNegative() {
	_, err := NewLedger(d("-1"))
	s.True(types.IsGameError(err, types.ErrCodeInvalidAmount))
}

func (s *LedgerTestSuite) TestDeposit() {
	// Execute
	tx, err := s.ledger.Deposit(d("25.555"), "top up")

	// Assert
	s.Require().NoError(err)
	s.Equal("125.56", s.ledger.Balance().StringFixed(2), "Amount is rounded to cents")
	s.Equal(entities.TransactionTypeDeposit, tx.Type)
	s.Equal("25.56", tx.Amount.StringFixed(2))
	s.Equal("125.56", tx.BalanceAfter.StringFixed(2))
	s.Equal("top up", tx.Description)
	s.Equal(s.now, tx.Timestamp)
	s.NotEmpty(tx.ID)
}

func (s *LedgerTestSuite) TestRejectedOperationsLeaveStateUnchanged() {
	testCases := []struct {
		name string
		op   func() error
		code types.ErrorCode
	}{
		{
			name: "Zero deposit",
			op:   func() error { _, err := s.ledger.Deposit(d("0"), ""); return err },
			code: types.ErrCodeInvalidAmount,
		},
		{
			name: "Negative deposit",
			op:   func() error { _, err := s.ledger.Deposit(d("-5"), ""); return err },
			code: types.ErrCodeInvalidAmount,
		},
		{
			name: "Zero withdrawal",
			op:   func() error { _, err := s.ledger.Withdraw(d("0"), ""); return err },
			code: types.ErrCodeInvalidAmount,
		},
		{
			name: "Overdraw",
			op:   func() error { _, err := s.ledger.Withdraw(d("100.01"), ""); return err },
			code: types.ErrCodeInsufficientFunds,
		},
		{
			name: "Bet over balance",
			op:   func() error { _, err := s.ledger.PlaceBet(d("150"), ""); return err },
			code: types.ErrCodeInsufficientFunds,
		},
		{
			name: "Negative payout",
			op:   func() error { _, err := s.ledger.WinPayout(d("-1"), ""); return err },
			code: types.ErrCodeInvalidAmount,
		},
		{
			name: "Zero refund",
			op:   func() error { _, err := s.ledger.Refund(d("0"), ""); return err },
			code: types.ErrCodeInvalidAmount,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.op()

			s.True(types.IsGameError(err, tc.code), "got %v", err)
			s.Equal("100.00", s.ledger.Balance().StringFixed(2))
			s.Empty(s.ledger.Transactions())
		})
	}
}

func (s *LedgerTestSuite) TestInsufficientFundsCarriesAmounts() {
	// Setup
	ledger, err := NewLedger(d("5"), WithLogger(logging.Nop()))
	s.Require().NoError(err)

	// Execute
	_, err = ledger.PlaceBet(d("10.00"), "slots")

	// Assert
	var fundsErr *types.InsufficientFundsError
	s.Require().ErrorAs(err, &fundsErr)
	s.Equal("10.00", fundsErr.Required.StringFixed(2))
	s.Equal("5.00", fundsErr.Available.StringFixed(2))
	s.Equal("5.00", ledger.Balance().StringFixed(2))
}

func (s *LedgerTestSuite) TestBetWholeBalanceThenZeroPayout() {
	// Execute
	_, err := s.ledger.PlaceBet(d("100"), "all in")
	s.Require().NoError(err)
	win, err := s.ledger.WinPayout(decimal.Zero, "lost")

	// Assert
	s.Require().NoError(err)
	s.True(s.ledger.Balance().IsZero())
	s.Equal(entities.TransactionTypeWin, win.Type)
	s.Len(s.ledger.Transactions(), 2, "A lost round still logs BET and WIN")
}

func (s *LedgerTestSuite) TestRoundNetMatchesBalanceDelta() {
	// Setup
	before := s.ledger.Balance()

	// Execute
	bet, err := s.ledger.PlaceBet(d("20"), "coin flip")
	s.Require().NoError(err)
	win, err := s.ledger.WinPayout(d("40"), "coin flip")
	s.Require().NoError(err)

	// Assert
	net := bet.Amount.Add(win.Amount)
	s.Equal("20.00", net.StringFixed(2))
	s.True(s.ledger.Balance().Sub(before).Equal(net))
	s.Equal("120.00", s.ledger.Balance().StringFixed(2))
}

func (s *LedgerTestSuite) TestTransactionsAreOrderedCopies() {
	// Setup
	_, _ = s.ledger.Deposit(d("10"), "first")
	_, _ = s.ledger.Withdraw(d("5"), "second")

	// Execute
	txs := s.ledger.Transactions()
	txs[0].Description = "mutated"

	// Assert
	fresh := s.ledger.Transactions()
	s.Require().Len(fresh, 2)
	s.Equal("first", fresh[0].Description)
	s.Equal(entities.TransactionTypeWithdraw, fresh[1].Type)
	s.Equal("-5.00", fresh[1].Amount.StringFixed(2))
}

func (s *LedgerTestSuite) TestStatisticsWithoutBets() {
	// Setup
	_, _ = s.ledger.Deposit(d("10"), "")

	// Execute
	stats := s.ledger.Statistics()

	// Assert
	s.Equal(1, stats.TotalTransactions)
	s.Equal("10.00", stats.TotalDeposited.StringFixed(2))
	s.Nil(stats.AverageBet)
	s.Nil(stats.MaxBet)
	s.Nil(stats.MinBet)
	s.Nil(stats.BetStdDev)
}

func (s *LedgerTestSuite) TestStatistics() {
	// Setup
	_, _ = s.ledger.Deposit(d("50"), "")
	_, _ = s.ledger.Withdraw(d("20"), "")
	_, _ = s.ledger.PlaceBet(d("10"), "")
	_, _ = s.ledger.WinPayout(d("20"), "")
	_, _ = s.ledger.PlaceBet(d("30"), "")
	_, _ = s.ledger.WinPayout(d("0"), "")
	_, _ = s.ledger.PlaceBet(d("20"), "")
	_, _ = s.ledger.Refund(d("20"), "")

	// Execute
	stats := s.ledger.Statistics()

	// Assert
	s.Equal(8, stats.TotalTransactions)
	s.Equal("50.00", stats.TotalDeposited.StringFixed(2))
	s.Equal("20.00", stats.TotalWithdrawn.StringFixed(2))
	s.Equal("20.00", stats.TotalWon.StringFixed(2))
	s.Equal("60.00", stats.TotalBet.StringFixed(2))
	s.Equal("20.00", stats.TotalRefunded.StringFixed(2))
	s.Equal("-20.00", stats.NetProfit.StringFixed(2))
	s.Require().NotNil(stats.AverageBet)
	s.Equal("20.00", stats.AverageBet.StringFixed(2))
	s.Equal("30.00", stats.MaxBet.StringFixed(2))
	s.Equal("10.00", stats.MinBet.StringFixed(2))
	// population std of 10, 30, 20
	s.Equal("8.16", stats.BetStdDev.StringFixed(2))
	s.Equal("110.00", s.ledger.Balance().StringFixed(2))
}
