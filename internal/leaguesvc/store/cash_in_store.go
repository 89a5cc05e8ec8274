package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pokernight/league-services/internal/leaguesvc/db"
	"github.com/pokernight/league-services/internal/leaguesvc/models"
)

type CashInStore struct {
	db *db.DB
}

func NewCashInStore(db *db.DB) *CashInStore {
	return &CashInStore{db: db}
}

// RecordForActivePlayer inserts one cash transaction for a game player,
// but only while that player is still active. The INSERT..SELECT carries
// the active check so there is no read-then-write gap.
func (s *CashInStore) RecordForActivePlayer(ctx context.Context, gamePlayerID int64, amount decimal.Decimal, cashType string, chipCount *int, notes string) (*models.CashIn, error) {
	ci := &models.CashIn{}
	err := s.db.QueryRow(ctx, `
		INSERT INTO cash_ins (game_id, user_id, game_player_id, amount, type, chip_count, notes)
		SELECT gp.game_id, gp.user_id, gp.id, $2, $3, $4, $5
		FROM game_players gp
		WHERE gp.id = $1 AND gp.is_active
		RETURNING id, game_id, user_id, game_player_id, amount, type, chip_count, notes, created_at
	`, gamePlayerID, amount, cashType, chipCount, notes).Scan(
		&ci.ID,
		&ci.GameID,
		&ci.UserID,
		&ci.GamePlayerID,
		&ci.Amount,
		&ci.Type,
		&ci.ChipCount,
		&ci.Notes,
		&ci.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrPlayerNotActive
		}
		return nil, fmt.Errorf("failed to record cash-in: %w", err)
	}

	return ci, nil
}

// ListByGame returns every cash transaction of a game in insertion order.
func (s *CashInStore) ListByGame(ctx context.Context, gameID int64) ([]*models.CashIn, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, game_id, user_id, game_player_id, amount, type, chip_count, notes, created_at
		FROM cash_ins
		WHERE game_id = $1
		ORDER BY created_at, id
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cash-ins: %w", err)
	}
	defer rows.Close()

	var cashIns []*models.CashIn
	for rows.Next() {
		var ci models.CashIn
		err := rows.Scan(
			&ci.ID,
			&ci.GameID,
			&ci.UserID,
			&ci.GamePlayerID,
			&ci.Amount,
			&ci.Type,
			&ci.ChipCount,
			&ci.Notes,
			&ci.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		cashIns = append(cashIns, &ci)
	}

	return cashIns, rows.Err()
}
