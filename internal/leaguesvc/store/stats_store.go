package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/pokernight/league-services/internal/leaguesvc/db"
	"github.com/pokernight/league-services/internal/leaguesvc/models"
)

// StatsStore runs the read-only aggregations. Every query is scoped to a
// league and a [from, to) window over game start times; callers pass the
// full range for unbounded reads.
type StatsStore struct {
	db *db.DB
}

func NewStatsStore(db *db.DB) *StatsStore {
	return &StatsStore{db: db}
}

// LeagueTotals is the raw aggregate row behind the league dashboard.
type LeagueTotals struct {
	TotalGames          int
	ActiveGames         int
	CompletedGames      int
	TotalPlayers        int
	TotalBuyIns         decimal.Decimal
	TotalBuyOuts        decimal.Decimal
	AverageGameDuration int
}

// GetLeagueTotals aggregates the game counts, member count, cash totals
// and average completed-game duration for one league. Each figure is its
// own scalar subquery so the sums are not distorted by join fan-out.
func (s *StatsStore) GetLeagueTotals(ctx context.Context, leagueID int64, from, to time.Time) (*LeagueTotals, error) {
	t := &LeagueTotals{}
	err := s.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM games g
			 WHERE g.league_id = $1 AND g.started_at >= $2 AND g.started_at < $3),
			(SELECT COUNT(*) FROM games g
			 WHERE g.league_id = $1 AND g.status = 'active'
			   AND g.started_at >= $2 AND g.started_at < $3),
			(SELECT COUNT(*) FROM games g
			 WHERE g.league_id = $1 AND g.status = 'completed'
			   AND g.started_at >= $2 AND g.started_at < $3),
			(SELECT COUNT(*) FROM league_members lm
			 WHERE lm.league_id = $1 AND lm.is_active),
			(SELECT COALESCE(SUM(ci.amount), 0)
			 FROM cash_ins ci
			 JOIN games g ON g.id = ci.game_id
			 WHERE g.league_id = $1 AND ci.type IN ('buy_in', 'rebuy', 'add_on')
			   AND g.started_at >= $2 AND g.started_at < $3),
			(SELECT COALESCE(SUM(ci.amount), 0)
			 FROM cash_ins ci
			 JOIN games g ON g.id = ci.game_id
			 WHERE g.league_id = $1 AND ci.type = 'buy_out'
			   AND g.started_at >= $2 AND g.started_at < $3),
			(SELECT COALESCE(ROUND(AVG(
			        GREATEST(EXTRACT(EPOCH FROM (g.ended_at - g.started_at)), 0) / 60
			    )), 0)::int
			 FROM games g
			 WHERE g.league_id = $1 AND g.status = 'completed' AND g.ended_at IS NOT NULL
			   AND g.started_at >= $2 AND g.started_at < $3)
	`, leagueID, from, to).Scan(
		&t.TotalGames,
		&t.ActiveGames,
		&t.CompletedGames,
		&t.TotalPlayers,
		&t.TotalBuyIns,
		&t.TotalBuyOuts,
		&t.AverageGameDuration,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get league totals: %w", err)
	}

	return t, nil
}

// TopProfit ranks registered users by summed profit across the league's
// games, best first.
func (s *StatsStore) TopProfit(ctx context.Context, leagueID int64, from, to time.Time, limit int) ([]models.PlayerProfit, error) {
	rows, err := s.db.Query(ctx, `
		SELECT u.id, u.name, u.image_url, COALESCE(SUM(gp.profit), 0) AS total_profit
		FROM game_players gp
		JOIN games g ON g.id = gp.game_id
		JOIN users u ON u.id = gp.user_id
		WHERE g.league_id = $1 AND gp.profit IS NOT NULL
		  AND g.started_at >= $2 AND g.started_at < $3
		GROUP BY u.id
		ORDER BY total_profit DESC, u.id
		LIMIT $4
	`, leagueID, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank profit: %w", err)
	}
	defer rows.Close()

	return scanPlayerProfits(rows)
}

// MostActive ranks registered users by the number of games they sat in.
func (s *StatsStore) MostActive(ctx context.Context, leagueID int64, from, to time.Time, limit int) ([]models.PlayerActivity, error) {
	rows, err := s.db.Query(ctx, `
		SELECT u.id, u.name, u.image_url, COUNT(DISTINCT gp.id) AS games_played
		FROM game_players gp
		JOIN games g ON g.id = gp.game_id
		JOIN users u ON u.id = gp.user_id
		WHERE g.league_id = $1
		  AND g.started_at >= $2 AND g.started_at < $3
		GROUP BY u.id
		ORDER BY games_played DESC, u.id
		LIMIT $4
	`, leagueID, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank activity: %w", err)
	}
	defer rows.Close()

	var out []models.PlayerActivity
	for rows.Next() {
		var pa models.PlayerActivity
		if err := rows.Scan(&pa.UserID, &pa.Name, &pa.ImageURL, &pa.GamesPlayed); err != nil {
			return nil, err
		}
		out = append(out, pa)
	}

	return out, rows.Err()
}

// HighestGameProfit ranks users by their single best cashed-out result,
// not the sum.
func (s *StatsStore) HighestGameProfit(ctx context.Context, leagueID int64, from, to time.Time, limit int) ([]models.PlayerProfit, error) {
	rows, err := s.db.Query(ctx, `
		SELECT u.id, u.name, u.image_url, MAX(gp.profit) AS best_profit
		FROM game_players gp
		JOIN games g ON g.id = gp.game_id
		JOIN users u ON u.id = gp.user_id
		WHERE g.league_id = $1 AND gp.profit IS NOT NULL
		  AND g.started_at >= $2 AND g.started_at < $3
		GROUP BY u.id
		ORDER BY best_profit DESC, u.id
		LIMIT $4
	`, leagueID, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank single-game profit: %w", err)
	}
	defer rows.Close()

	return scanPlayerProfits(rows)
}

// PlayerProfitSequences returns every registered user's cashed-out
// profits in the league, ordered by game start. The streak and
// consistency metrics walk these sequences in memory since neither is
// expressible as a single aggregate.
func (s *StatsStore) PlayerProfitSequences(ctx context.Context, leagueID int64, from, to time.Time) ([]*models.ProfitSequence, error) {
	rows, err := s.db.Query(ctx, `
		SELECT u.id, u.name, u.image_url, gp.profit
		FROM game_players gp
		JOIN games g ON g.id = gp.game_id
		JOIN users u ON u.id = gp.user_id
		WHERE g.league_id = $1 AND gp.profit IS NOT NULL
		  AND g.started_at >= $2 AND g.started_at < $3
		ORDER BY u.id, g.started_at, g.id
	`, leagueID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load profit sequences: %w", err)
	}
	defer rows.Close()

	var seqs []*models.ProfitSequence
	var cur *models.ProfitSequence
	for rows.Next() {
		var (
			userID   int64
			name     string
			imageURL string
			profit   decimal.Decimal
		)
		if err := rows.Scan(&userID, &name, &imageURL, &profit); err != nil {
			return nil, err
		}
		if cur == nil || cur.UserID != userID {
			cur = &models.ProfitSequence{UserID: userID, Name: name, ImageURL: imageURL}
			seqs = append(seqs, cur)
		}
		cur.Profits = append(cur.Profits, profit)
	}

	return seqs, rows.Err()
}

func scanPlayerProfits(rows pgx.Rows) ([]models.PlayerProfit, error) {
	var out []models.PlayerProfit
	for rows.Next() {
		var pp models.PlayerProfit
		if err := rows.Scan(&pp.UserID, &pp.Name, &pp.ImageURL, &pp.Profit); err != nil {
			return nil, err
		}
		out = append(out, pp)
	}
	return out, rows.Err()
}
