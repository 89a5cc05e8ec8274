package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cash transaction types. Amounts are always stored as positive magnitudes;
// the type decides whether the row counts toward money in (buy_in, rebuy,
// add_on) or records the final payout (buy_out).
const (
	CashInTypeBuyIn  = "buy_in"
	CashInTypeRebuy  = "rebuy"
	CashInTypeAddOn  = "add_on"
	CashInTypeBuyOut = "buy_out"
)

type CashIn struct {
	ID           int64           `json:"id"`             // Primary key
	GameID       int64           `json:"game_id"`        // FK to games(id)
	UserID       *int64          `json:"user_id,omitempty"`
	GamePlayerID int64           `json:"game_player_id"` // FK to game_players(id)
	Amount       decimal.Decimal `json:"amount"`         // Always positive
	Type         string          `json:"type"`           // 'buy_in', 'rebuy', 'add_on', 'buy_out'
	ChipCount    *int            `json:"chip_count,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// CountsAsBuyIn reports whether a transaction type adds to a player's money in.
func CountsAsBuyIn(t string) bool {
	return t == CashInTypeBuyIn || t == CashInTypeRebuy || t == CashInTypeAddOn
}
