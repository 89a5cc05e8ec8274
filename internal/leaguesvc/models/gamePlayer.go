package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type GamePlayer struct {
	ID          int64               `json:"id"`      // Primary key
	GameID      int64               `json:"game_id"` // FK to games(id)
	UserID      *int64              `json:"user_id,omitempty"` // nil for anonymous players
	DisplayName string              `json:"display_name,omitempty"`
	FinalAmount decimal.NullDecimal `json:"final_amount"` // Chip value at cash-out, null while active
	Profit      decimal.NullDecimal `json:"profit"`       // final_amount - total buy-ins, null until cash-out
	IsActive    bool                `json:"is_active"`
	JoinedAt    time.Time           `json:"joined_at"`
	LeftAt      *time.Time          `json:"left_at,omitempty"`
}
