package entities

import (
	"github.com/shopspring/decimal"
)

// WalletStatistics summarizes a ledger's transaction log
type WalletStatistics struct {
	TotalTransactions int
	TotalDeposited    decimal.Decimal
	TotalWithdrawn    decimal.Decimal
	TotalWon          decimal.Decimal
	TotalBet          decimal.Decimal
	TotalRefunded     decimal.Decimal
	NetProfit         decimal.Decimal

	// Bet-size figures are nil when no bet has been placed
	AverageBet *decimal.Decimal
	MaxBet     *decimal.Decimal
	MinBet     *decimal.Decimal
	BetStdDev  *decimal.Decimal
}

// PlayerStatistics represents aggregated statistics over a player's game history
type PlayerStatistics struct {
	GamesPlayed int
	Wins        int
	Losses      int
	Pushes      int
	Blackjacks  int
	Jackpots    int
	TotalBet    decimal.Decimal
	TotalWon    decimal.Decimal // sum of positive net results
	TotalLost   decimal.Decimal // sum of negative net results, as a positive amount
}

// NetProfit calculates the player's net profit
func (s *PlayerStatistics) NetProfit() decimal.Decimal {
	return s.TotalWon.Sub(s.TotalLost)
}

// WinRate calculates the player's win rate as a percentage
func (s *PlayerStatistics) WinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0.0
	}
	return float64(s.Wins) / float64(s.GamesPlayed) * 100.0
}
