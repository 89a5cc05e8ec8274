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

type GameStore struct {
	db *db.DB
}

func NewGameStore(db *db.DB) *GameStore {
	return &GameStore{db: db}
}

// ErrPlayersStillActive is returned when completing a game that still has
// players who have not cashed out.
var ErrPlayersStillActive = errors.New("game still has active players")

// CreateGame inserts the game row, one game_player per selected player and
// one buy_in cash_in per player, all inside a single transaction. A failure
// on any insert rolls the whole game back.
func (s *GameStore) CreateGame(ctx context.Context, game models.Game, players []models.GamePlayer) (*models.Game, []*models.GamePlayer, error) {
	created := &models.Game{}
	var createdPlayers []*models.GamePlayer

	err := s.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO games (league_id, created_by, buy_in, status, started_at)
			VALUES ($1, $2, $3, 'active', now())
			RETURNING id, league_id, created_by, buy_in, status, started_at, ended_at, created_at, updated_at
		`, game.LeagueID, game.CreatedBy, game.BuyIn).Scan(
			&created.ID,
			&created.LeagueID,
			&created.CreatedBy,
			&created.BuyIn,
			&created.Status,
			&created.StartedAt,
			&created.EndedAt,
			&created.CreatedAt,
			&created.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert game: %w", err)
		}

		for _, p := range players {
			gp, err := insertGamePlayerTx(ctx, tx, created.ID, p.UserID, p.DisplayName, game.BuyIn)
			if err != nil {
				return err
			}
			createdPlayers = append(createdPlayers, gp)
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return created, createdPlayers, nil
}

// insertGamePlayerTx inserts one game_player plus its opening buy_in
// cash_in. Shared between game creation and mid-game joins.
func insertGamePlayerTx(ctx context.Context, tx pgx.Tx, gameID int64, userID *int64, displayName string, buyIn decimal.Decimal) (*models.GamePlayer, error) {
	gp := &models.GamePlayer{}
	err := tx.QueryRow(ctx, `
		INSERT INTO game_players (game_id, user_id, display_name)
		VALUES ($1, $2, $3)
		RETURNING id, game_id, user_id, display_name, final_amount, profit, is_active, joined_at, left_at
	`, gameID, userID, displayName).Scan(
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
		return nil, fmt.Errorf("failed to insert game player: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO cash_ins (game_id, user_id, game_player_id, amount, type)
		VALUES ($1, $2, $3, $4, 'buy_in')
	`, gameID, userID, gp.ID, buyIn)
	if err != nil {
		return nil, fmt.Errorf("failed to insert opening buy-in: %w", err)
	}

	return gp, nil
}

// AddPlayer joins one player into an already active game, mirroring game
// creation: game_player plus opening buy_in in one transaction. The game
// row is locked and checked for 'active' status inside the transaction.
func (s *GameStore) AddPlayer(ctx context.Context, gameID int64, userID *int64, displayName string, buyIn decimal.Decimal) (*models.GamePlayer, error) {
	var gp *models.GamePlayer

	err := s.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		var lockedID int64
		err := tx.QueryRow(ctx, `
			SELECT id FROM games
			WHERE id = $1 AND status = 'active'
			FOR UPDATE
		`, gameID).Scan(&lockedID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("cannot join game %d: not active or not found", gameID)
			}
			return fmt.Errorf("failed to lock game: %w", err)
		}

		gp, err = insertGamePlayerTx(ctx, tx, gameID, userID, displayName, buyIn)
		return err
	})
	if err != nil {
		return nil, err
	}

	return gp, nil
}

func (s *GameStore) GetGameByID(ctx context.Context, gameID int64) (*models.Game, error) {
	query := `
		SELECT id, league_id, created_by, buy_in, status, started_at, ended_at, created_at, updated_at
		FROM games
		WHERE id = $1
	`

	game := &models.Game{}
	err := s.db.QueryRow(ctx, query, gameID).Scan(
		&game.ID,
		&game.LeagueID,
		&game.CreatedBy,
		&game.BuyIn,
		&game.Status,
		&game.StartedAt,
		&game.EndedAt,
		&game.CreatedAt,
		&game.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Game not found
		}
		return nil, fmt.Errorf("failed to get game by ID: %w", err)
	}

	return game, nil
}

// Complete transitions a game to 'completed' and stamps ended_at. The
// guard subquery refuses the transition while any player row is still
// active, so a game can only close once every player has cashed out or
// been removed.
func (s *GameStore) Complete(ctx context.Context, gameID int64) (*models.Game, error) {
	game := &models.Game{}
	err := s.db.QueryRow(ctx, `
		UPDATE games
		SET status = 'completed', ended_at = now(), updated_at = now()
		WHERE id = $1
		  AND status = 'active'
		  AND NOT EXISTS (
		      SELECT 1 FROM game_players gp
		      WHERE gp.game_id = games.id AND gp.is_active
		  )
		RETURNING id, league_id, created_by, buy_in, status, started_at, ended_at, created_at, updated_at
	`, gameID).Scan(
		&game.ID,
		&game.LeagueID,
		&game.CreatedBy,
		&game.BuyIn,
		&game.Status,
		&game.StartedAt,
		&game.EndedAt,
		&game.CreatedAt,
		&game.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// zero rows: either missing, already completed, or players remain
			existing, getErr := s.GetGameByID(ctx, gameID)
			if getErr != nil {
				return nil, getErr
			}
			if existing == nil {
				return nil, fmt.Errorf("game %d not found", gameID)
			}
			if existing.Status == models.GameStatusCompleted {
				return nil, fmt.Errorf("game %d is already completed", gameID)
			}
			return nil, ErrPlayersStillActive
		}
		return nil, fmt.Errorf("failed to complete game: %w", err)
	}

	return game, nil
}

// Reconcile computes the accounting totals for one game: money in across
// buy_in/rebuy/add_on rows, money out across buy_out rows, and the sum of
// finalized player profits. Balanced holds when outs - ins == profit sum.
func (s *GameStore) Reconcile(ctx context.Context, gameID int64) (*models.GameReconciliation, error) {
	rec := &models.GameReconciliation{GameID: gameID}
	err := s.db.QueryRow(ctx, `
		SELECT
			COALESCE((SELECT SUM(amount) FROM cash_ins
			          WHERE game_id = $1 AND type IN ('buy_in', 'rebuy', 'add_on')), 0),
			COALESCE((SELECT SUM(amount) FROM cash_ins
			          WHERE game_id = $1 AND type = 'buy_out'), 0),
			COALESCE((SELECT SUM(profit) FROM game_players
			          WHERE game_id = $1 AND profit IS NOT NULL), 0)
	`, gameID).Scan(&rec.TotalBuyIns, &rec.TotalBuyOuts, &rec.ProfitSum)
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile game: %w", err)
	}

	rec.Balanced = rec.TotalBuyOuts.Sub(rec.TotalBuyIns).Equal(rec.ProfitSum)
	return rec, nil
}

// ListByLeague returns one page of a league's games, newest first, each
// embedding per-player buy-in totals and profit. Also reports the total
// game count so callers can page.
func (s *GameStore) ListByLeague(ctx context.Context, leagueID int64, limit, offset int) ([]*models.GameSummary, int, error) {
	var total int
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM games WHERE league_id = $1
	`, leagueID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count league games: %w", err)
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, league_id, created_by, buy_in, status, started_at, ended_at, created_at, updated_at
		FROM games
		WHERE league_id = $1
		ORDER BY started_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, leagueID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list league games: %w", err)
	}
	defer rows.Close()

	var games []*models.GameSummary
	ids := make([]int64, 0, limit)
	byID := make(map[int64]*models.GameSummary, limit)
	for rows.Next() {
		gs := &models.GameSummary{}
		err := rows.Scan(
			&gs.ID,
			&gs.LeagueID,
			&gs.CreatedBy,
			&gs.BuyIn,
			&gs.Status,
			&gs.StartedAt,
			&gs.EndedAt,
			&gs.CreatedAt,
			&gs.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		gs.Players = []*models.GamePlayerSummary{}
		games = append(games, gs)
		ids = append(ids, gs.ID)
		byID[gs.ID] = gs
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if len(ids) == 0 {
		return games, total, nil
	}

	// one grouped query for every player on the page, instead of a
	// per-game fetch loop
	prows, err := s.db.Query(ctx, `
		SELECT gp.game_id, gp.id, gp.user_id,
		       COALESCE(NULLIF(gp.display_name, ''), u.name, 'Anonymous') AS name,
		       COALESCE(SUM(ci.amount) FILTER (WHERE ci.type IN ('buy_in', 'rebuy', 'add_on')), 0) AS total_buy_ins,
		       gp.profit, gp.is_active
		FROM game_players gp
		LEFT JOIN users u ON u.id = gp.user_id
		LEFT JOIN cash_ins ci ON ci.game_player_id = gp.id
		WHERE gp.game_id = ANY($1)
		GROUP BY gp.game_id, gp.id, u.name
		ORDER BY gp.game_id, gp.joined_at
	`, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load game players: %w", err)
	}
	defer prows.Close()

	for prows.Next() {
		var gameID int64
		ps := &models.GamePlayerSummary{}
		err := prows.Scan(
			&gameID,
			&ps.GamePlayerID,
			&ps.UserID,
			&ps.Name,
			&ps.TotalBuyIns,
			&ps.Profit,
			&ps.IsActive,
		)
		if err != nil {
			return nil, 0, err
		}
		if gs, ok := byID[gameID]; ok {
			gs.Players = append(gs.Players, ps)
		}
	}

	return games, total, prows.Err()
}
