package statistics

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fadedpez/tong777/internal/types"
	"github.com/fadedpez/tong777/pkg/entities"
)

const (
	// minPredictionHistory is how many rounds PredictNextBalance needs before it fits a line
	minPredictionHistory = 5
	// predictionWindow is how many of the newest balances the fit uses
	predictionWindow = 10
)

// Recorder keeps a player's game history and derives statistics from it
type Recorder struct {
	history []entities.GameRecord
	now     func() time.Time
}

// Option configures a Recorder
type Option func(*Recorder)

// WithClock overrides the timestamp source
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) {
		r.now = now
	}
}

// NewRecorder creates a recorder seeded with previously persisted history
func NewRecorder(history []entities.GameRecord, opts ...Option) *Recorder {
	r := &Recorder{
		history: make([]entities.GameRecord, len(history)),
		now:     time.Now,
	}
	copy(r.history, history)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record appends a resolved outcome to the history
func (r *Recorder) Record(outcome *entities.Outcome) (entities.GameRecord, error) {
	if outcome == nil || outcome.Cancelled() {
		return entities.GameRecord{}, types.NewGameError(types.ErrCodeInvalidArgument, "only resolved rounds can be recorded")
	}

	record := entities.GameRecord{
		ID:           uuid.New().String(),
		Game:         outcome.Game,
		Bet:          outcome.Bet,
		Result:       outcome.Net,
		Outcome:      outcome.Result,
		BalanceAfter: outcome.BalanceAfter,
		Timestamp:    r.now(),
	}
	r.history = append(r.history, record)
	return record, nil
}

// History returns a copy of every record, oldest first
func (r *Recorder) History() []entities.GameRecord {
	out := make([]entities.GameRecord, len(r.history))
	copy(out, r.history)
	return out
}

// Recent returns up to n of the newest records, oldest first
func (r *Recorder) Recent(n int) []entities.GameRecord {
	if n <= 0 {
		return []entities.GameRecord{}
	}
	if n > len(r.history) {
		n = len(r.history)
	}
	out := make([]entities.GameRecord, n)
	copy(out, r.history[len(r.history)-n:])
	return out
}

// Summary aggregates the whole history
func (r *Recorder) Summary() *entities.PlayerStatistics {
	return summarize(r.history)
}

// SessionSummary aggregates only the records made after since, typically the login time
func (r *Recorder) SessionSummary(since time.Time) *entities.PlayerStatistics {
	var records []entities.GameRecord
	for _, rec := range r.history {
		if rec.Timestamp.After(since) {
			records = append(records, rec)
		}
	}
	return summarize(records)
}

func summarize(records []entities.GameRecord) *entities.PlayerStatistics {
	stats := &entities.PlayerStatistics{
		TotalBet:  decimal.Zero,
		TotalWon:  decimal.Zero,
		TotalLost: decimal.Zero,
	}

	for _, rec := range records {
		stats.GamesPlayed++
		stats.TotalBet = stats.TotalBet.Add(rec.Bet)

		switch {
		case rec.Result.IsPositive():
			stats.Wins++
			stats.TotalWon = stats.TotalWon.Add(rec.Result)
		case rec.Result.IsNegative():
			stats.Losses++
			stats.TotalLost = stats.TotalLost.Add(rec.Result.Abs())
		default:
			stats.Pushes++
		}

		switch rec.Outcome {
		case entities.ResultBlackjack:
			stats.Blackjacks++
		case entities.ResultJackpot:
			stats.Jackpots++
		}
	}
	return stats
}

// WinRateByGame returns the percentage of winning rounds for each game played
func (r *Recorder) WinRateByGame() map[entities.GameKind]float64 {
	played := make(map[entities.GameKind]int)
	won := make(map[entities.GameKind]int)
	for _, rec := range r.history {
		played[rec.Game]++
		if rec.Result.IsPositive() {
			won[rec.Game]++
		}
	}

	rates := make(map[entities.GameKind]float64, len(played))
	for game, n := range played {
		rates[game] = float64(won[game]) / float64(n) * 100.0
	}
	return rates
}

// Volatility is the population standard deviation of bet sizes
func (r *Recorder) Volatility() decimal.Decimal {
	bets := make([]decimal.Decimal, len(r.history))
	for i, rec := range r.history {
		bets[i] = rec.Bet
	}
	return PopulationStdDev(bets)
}

// PredictNextBalance extrapolates a least-squares line through the newest
// balances one round ahead. It never predicts below zero.
func (r *Recorder) PredictNextBalance(current decimal.Decimal) decimal.Decimal {
	if len(r.history) < minPredictionHistory {
		return current
	}

	window := r.Recent(predictionWindow)
	n := decimal.NewFromInt(int64(len(window)))

	var sumX, sumY decimal.Decimal
	for i, rec := range window {
		sumX = sumX.Add(decimal.NewFromInt(int64(i)))
		sumY = sumY.Add(rec.BalanceAfter)
	}
	meanX := sumX.Div(n)
	meanY := sumY.Div(n)

	var num, den decimal.Decimal
	for i, rec := range window {
		dx := decimal.NewFromInt(int64(i)).Sub(meanX)
		num = num.Add(dx.Mul(rec.BalanceAfter.Sub(meanY)))
		den = den.Add(dx.Mul(dx))
	}

	slope := num.Div(den)
	intercept := meanY.Sub(slope.Mul(meanX))
	predicted := slope.Mul(n).Add(intercept).Round(2)

	if predicted.IsNegative() {
		return decimal.Zero
	}
	return predicted
}

// FibonacciBets returns the progressive betting sequence 1, 1, 2, 3, 5, ...
// up to and including max
func FibonacciBets(max decimal.Decimal) []decimal.Decimal {
	seq := []decimal.Decimal{}
	a, b := decimal.NewFromInt(1), decimal.NewFromInt(1)
	for a.LessThanOrEqual(max) {
		seq = append(seq, a)
		a, b = b, a.Add(b)
	}
	return seq
}

// PopulationStdDev returns the population standard deviation rounded to cents,
// zero for an empty set
func PopulationStdDev(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}

	n := decimal.NewFromInt(int64(len(values)))
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(v)
	}
	mean := sum.Div(n)

	variance := decimal.Zero
	for _, v := range values {
		d := v.Sub(mean)
		variance = variance.Add(d.Mul(d))
	}
	variance = variance.Div(n)

	f, _ := variance.Float64()
	return decimal.NewFromFloat(math.Sqrt(f)).Round(2)
}
