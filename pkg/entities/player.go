package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// GameRecord is one resolved round in a player's history
type GameRecord struct {
	ID           string          `json:"id"`
	Game         GameKind        `json:"game"`
	Bet          decimal.Decimal `json:"bet"`
	Result       decimal.Decimal `json:"result"` // signed net change
	Outcome      Result          `json:"outcome"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	Timestamp    time.Time       `json:"timestamp"`
}

// PlayerRecord is what storage persists for a player
type PlayerRecord struct {
	Username       string          `json:"username"`
	PasswordDigest string          `json:"password_digest"`
	Balance        decimal.Decimal `json:"balance"`
	History        []GameRecord    `json:"history"`
}

// Clone returns a deep copy so callers can't mutate stored state
func (p *PlayerRecord) Clone() *PlayerRecord {
	if p == nil {
		return nil
	}
	clone := *p
	clone.History = make([]GameRecord, len(p.History))
	copy(clone.History, p.History)
	return &clone
}

// TrimHistory keeps only the newest limit records
func (p *PlayerRecord) TrimHistory(limit int) {
	if limit <= 0 || len(p.History) <= limit {
		return
	}
	trimmed := make([]GameRecord, limit)
	copy(trimmed, p.History[len(p.History)-limit:])
	p.History = trimmed
}
