package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fadedpez/tong777/pkg/entities"
	"github.com/fadedpez/tong777/pkg/services/statistics"
)

// WriteStats prints the history summary and analytics for a player.
// wallet is optional; it is only known for a logged-in session.
func WriteStats(w io.Writer, username string, balance decimal.Decimal, recorder *statistics.Recorder, wallet *entities.WalletStatistics) {
	summary := recorder.Summary()

	fmt.Fprintf(w, "📊 Stats for %s\n", username)
	fmt.Fprintf(w, "Balance: %s\n", balance.StringFixed(2))
	fmt.Fprintf(w, "Games played: %d (W %d / L %d / P %d), win rate %.1f%%\n",
		summary.GamesPlayed, summary.Wins, summary.Losses, summary.Pushes, summary.WinRate())
	fmt.Fprintf(w, "Total bet: %s, won: %s, lost: %s, net: %s\n",
		summary.TotalBet.StringFixed(2), summary.TotalWon.StringFixed(2),
		summary.TotalLost.StringFixed(2), summary.NetProfit().StringFixed(2))

	if summary.Blackjacks > 0 || summary.Jackpots > 0 {
		fmt.Fprintf(w, "Blackjacks: %d, jackpots: %d\n", summary.Blackjacks, summary.Jackpots)
	}

	rates := recorder.WinRateByGame()
	if len(rates) > 0 {
		fmt.Fprintln(w, "Win rate by game:")
		for _, kind := range entities.GameKinds {
			if rate, ok := rates[kind]; ok {
				fmt.Fprintf(w, "  %s: %.1f%%\n", kind, rate)
			}
		}
	}

	fmt.Fprintf(w, "Bet volatility: %s\n", recorder.Volatility().StringFixed(2))
	fmt.Fprintf(w, "Predicted next balance: %s\n", recorder.PredictNextBalance(balance).StringFixed(2))

	ladder := statistics.FibonacciBets(balance)
	if len(ladder) > 0 {
		steps := make([]string, len(ladder))
		for i, step := range ladder {
			steps[i] = step.String()
		}
		fmt.Fprintf(w, "Fibonacci bet ladder: %s\n", strings.Join(steps, ", "))
	}

	if wallet != nil {
		fmt.Fprintf(w, "Deposited: %s, withdrawn: %s, refunded: %s\n",
			wallet.TotalDeposited.StringFixed(2), wallet.TotalWithdrawn.StringFixed(2), wallet.TotalRefunded.StringFixed(2))
		if wallet.AverageBet != nil {
			fmt.Fprintf(w, "Bets this session: avg %s, min %s, max %s\n",
				wallet.AverageBet.StringFixed(2), wallet.MinBet.StringFixed(2), wallet.MaxBet.StringFixed(2))
		}
	}

	recent := recorder.Recent(5)
	if len(recent) > 0 {
		fmt.Fprintln(w, "Recent games:")
		for i := len(recent) - 1; i >= 0; i-- {
			rec := recent[i]
			fmt.Fprintf(w, "  %s %-10s bet %s result %s balance %s\n",
				rec.Timestamp.Format("2006-01-02 15:04"), rec.Game, rec.Bet.StringFixed(2),
				rec.Result.StringFixed(2), rec.BalanceAfter.StringFixed(2))
		}
	}
}
