package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlayerProfit names a user together with an aggregated profit figure.
// Used for the top-profit, monthly-leader and highest-single-game reads.
type PlayerProfit struct {
	UserID   int64           `json:"user_id"`
	Name     string          `json:"name"`
	ImageURL string          `json:"image_url,omitempty"`
	Profit   decimal.Decimal `json:"profit"`
}

// PlayerActivity names a user together with the number of games played.
type PlayerActivity struct {
	UserID      int64  `json:"user_id"`
	Name        string `json:"name"`
	ImageURL    string `json:"image_url,omitempty"`
	GamesPlayed int    `json:"games_played"`
}

// LeagueStats is the combined league dashboard payload. MostProfitablePlayer
// and MostActivePlayer fall back to the "N/A" zero entries when the league
// has no cashed-out results yet.
type LeagueStats struct {
	TotalGames          int             `json:"total_games"`
	ActiveGames         int             `json:"active_games"`
	CompletedGames      int             `json:"completed_games"`
	TotalPlayers        int             `json:"total_players"`
	TotalBuyIns         decimal.Decimal `json:"total_buy_ins"`
	TotalBuyOuts        decimal.Decimal `json:"total_buy_outs"`
	TotalProfit         decimal.Decimal `json:"total_profit"`
	AverageGameDuration int             `json:"average_game_duration"` // minutes
	MostProfitablePlayer PlayerProfit   `json:"most_profitable_player"`
	MostActivePlayer     PlayerActivity `json:"most_active_player"`
}

// ProfitSequence is one player's cashed-out results in a league, ordered by
// game start time. The in-memory streak and consistency metrics walk these.
type ProfitSequence struct {
	UserID   int64             `json:"user_id"`
	Name     string            `json:"name"`
	ImageURL string            `json:"image_url,omitempty"`
	Profits  []decimal.Decimal `json:"profits"`
}

// StreakEntry is a leaderboard row for the best-winning-streak metric.
type StreakEntry struct {
	UserID   int64  `json:"user_id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
	Streak   int    `json:"streak"`
}

// ConsistencyEntry is a leaderboard row for the most-consistent metric:
// the standard deviation of a player's per-game profit, lower is better.
type ConsistencyEntry struct {
	UserID      int64   `json:"user_id"`
	Name        string  `json:"name"`
	ImageURL    string  `json:"image_url,omitempty"`
	GamesPlayed int     `json:"games_played"`
	StdDev      float64 `json:"std_dev"`
}

// Leaderboards bundles the per-metric boards for one league. Each board is
// ordered best-first; index 0 is the hero entry.
type Leaderboards struct {
	TopProfit         []PlayerProfit     `json:"top_profit"`
	MostActive        []PlayerActivity   `json:"most_active"`
	HighestGameProfit []PlayerProfit     `json:"highest_game_profit"`
	MonthlyLeaders    []PlayerProfit     `json:"monthly_leaders"`
	BestStreaks       []StreakEntry      `json:"best_streaks"`
	MostConsistent    []ConsistencyEntry `json:"most_consistent"`
	GeneratedAt       time.Time          `json:"generated_at"`
}
