package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Game statuses.
const (
	GameStatusActive    = "active"
	GameStatusCompleted = "completed"
)

type Game struct {
	ID        int64           `json:"id"`         // Primary key
	LeagueID  int64           `json:"league_id"`  // FK to leagues(id)
	CreatedBy int64           `json:"created_by"` // FK to users(id)
	BuyIn     decimal.Decimal `json:"buy_in"`     // Unit buy-in amount for the session
	Status    string          `json:"status"`     // 'active', 'completed'
	StartedAt time.Time       `json:"started_at"`
	EndedAt   *time.Time      `json:"ended_at,omitempty"` // Set when the game completes
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// GameSummary is a game row enriched with per-player totals for list views.
type GameSummary struct {
	Game
	Players []*GamePlayerSummary `json:"players"`
}

// GamePlayerSummary carries a player's financial totals within one game.
type GamePlayerSummary struct {
	GamePlayerID int64               `json:"game_player_id"`
	UserID       *int64              `json:"user_id,omitempty"`
	Name         string              `json:"name"`
	TotalBuyIns  decimal.Decimal     `json:"total_buy_ins"`
	Profit       decimal.NullDecimal `json:"profit"`
	IsActive     bool                `json:"is_active"`
}

// GameReconciliation is the explicit accounting check over one game: money
// paid in, money paid out, and the sum of recorded player profits. Balanced
// holds when buy-outs minus buy-ins equals the profit sum exactly.
type GameReconciliation struct {
	GameID       int64           `json:"game_id"`
	TotalBuyIns  decimal.Decimal `json:"total_buy_ins"`
	TotalBuyOuts decimal.Decimal `json:"total_buy_outs"`
	ProfitSum    decimal.Decimal `json:"profit_sum"`
	Balanced     bool            `json:"balanced"`
}
