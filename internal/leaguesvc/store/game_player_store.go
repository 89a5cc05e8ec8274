package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/pokernight/league-services/internal/leaguesvc/db"
	"github.com/pokernight/league-services/internal/leaguesvc/models"
)

type GamePlayerStore struct {
	db *db.DB
}

func NewGamePlayerStore(db *db.DB) *GamePlayerStore {
	return &GamePlayerStore{db: db}
}

// ErrPlayerNotActive is returned when a mutation targets a game player who
// has already cashed out or been removed.
var ErrPlayerNotActive = errors.New("game player is not active")

func (s *GamePlayerStore) GetByID(ctx context.Context, gamePlayerID int64) (*models.GamePlayer, error) {
	gp := &models.GamePlayer{}
	err := s.db.QueryRow(ctx, `
		SELECT id, game_id, user_id, display_name, final_amount, profit, is_active, joined_at, left_at
		FROM game_players
		WHERE id = $1
	`, gamePlayerID).Scan(
		&gp.ID,
		&gp.GameID,
		&gp.UserID,
		&gp.DisplayName,
		&gp.FinalAmount,
		&gp.Profit,
		&gp.IsActive,
		&gp.JoinedAt,
		&gp.LeftAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get game player: %w", err)
	}

	return gp, nil
}

func (s *GamePlayerStore) GetPlayersByGameID(ctx context.Context, gameID int64) ([]*models.GamePlayer, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, game_id, user_id, display_name, final_amount, profit, is_active, joined_at, left_at
		FROM game_players
		WHERE game_id = $1
		ORDER BY joined_at
	`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []*models.GamePlayer
	for rows.Next() {
		var gp models.GamePlayer
		err := rows.Scan(
			&gp.ID,
			&gp.GameID,
			&gp.UserID,
			&gp.DisplayName,
			&gp.FinalAmount,
			&gp.Profit,
			&gp.IsActive,
			&gp.JoinedAt,
			&gp.LeftAt,
		)
		if err != nil {
			return nil, err
		}
		players = append(players, &gp)
	}

	return players, rows.Err()
}

// CashOut finalizes one player's result. The CTE sums the player's money
// in and the UPDATE writes final_amount, profit and the inactive flag in
// the same statement, guarded by is_active. Two concurrent cash-outs
// cannot both succeed: the loser matches zero rows. The audit buy_out
// cash_in is inserted in the same transaction.
func (s *GamePlayerStore) CashOut(ctx context.Context, gamePlayerID int64, finalAmount decimal.Decimal) (*models.GamePlayer, error) {
	gp := &models.GamePlayer{}

	err := s.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			WITH money_in AS (
				SELECT COALESCE(SUM(amount), 0) AS total
				FROM cash_ins
				WHERE game_player_id = $1
				  AND type IN ('buy_in', 'rebuy', 'add_on')
			)
			UPDATE game_players gp
			SET final_amount = $2,
			    profit = $2 - money_in.total,
			    is_active = FALSE,
			    left_at = now()
			FROM money_in
			WHERE gp.id = $1 AND gp.is_active
			RETURNING gp.id, gp.game_id, gp.user_id, gp.display_name, gp.final_amount,
			          gp.profit, gp.is_active, gp.joined_at, gp.left_at
		`, gamePlayerID, finalAmount).Scan(
			&gp.ID,
			&gp.GameID,
			&gp.UserID,
			&gp.DisplayName,
			&gp.FinalAmount,
			&gp.Profit,
			&gp.IsActive,
			&gp.JoinedAt,
			&gp.LeftAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrPlayerNotActive
			}
			return fmt.Errorf("failed to cash out game player: %w", err)
		}

		// payouts of zero are legal but the cash_ins amount check is
		// strictly positive, so only record a buy_out row for amounts > 0
		if finalAmount.IsPositive() {
			_, err = tx.Exec(ctx, `
				INSERT INTO cash_ins (game_id, user_id, game_player_id, amount, type)
				VALUES ($1, $2, $3, $4, 'buy_out')
			`, gp.GameID, gp.UserID, gp.ID, finalAmount)
			if err != nil {
				return fmt.Errorf("failed to record buy-out: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return gp, nil
}

// Deactivate marks a player row inactive without finalizing a result,
// used to undo an erroneous add. Profit stays null.
func (s *GamePlayerStore) Deactivate(ctx context.Context, gamePlayerID int64) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE game_players
		SET is_active = FALSE, left_at = now()
		WHERE id = $1 AND is_active
	`, gamePlayerID)
	if err != nil {
		return fmt.Errorf("failed to deactivate game player: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlayerNotActive
	}
	return nil
}
