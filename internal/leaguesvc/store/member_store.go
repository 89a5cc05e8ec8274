package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pokernight/league-services/internal/leaguesvc/db"
	"github.com/pokernight/league-services/internal/leaguesvc/models"
)

type MemberStore struct {
	db *db.DB
}

func NewMemberStore(db *db.DB) *MemberStore {
	return &MemberStore{db: db}
}

// ErrAlreadyMember is returned when a user joins a league they already
// actively belong to.
var ErrAlreadyMember = errors.New("user is already an active member of this league")

// AddMember inserts an active membership. The unique_active_member index
// rejects a second active row for the same (league, user) pair.
func (s *MemberStore) AddMember(ctx context.Context, leagueID, userID int64, role string) (*models.LeagueMember, error) {
	m := &models.LeagueMember{}
	err := s.db.QueryRow(ctx, `
		INSERT INTO league_members (league_id, user_id, role)
		VALUES ($1, $2, $3)
		RETURNING id, league_id, user_id, role, is_active, joined_at
	`, leagueID, userID, role).Scan(
		&m.ID,
		&m.LeagueID,
		&m.UserID,
		&m.Role,
		&m.IsActive,
		&m.JoinedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "unique_active_member" {
			return nil, ErrAlreadyMember
		}
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, fmt.Errorf("invalid reference: %s", pgErr.Message)
		}
		return nil, fmt.Errorf("failed to add league member: %w", err)
	}

	return m, nil
}

// GetActiveMembership returns the user's active membership in the league,
// or nil when there is none.
func (s *MemberStore) GetActiveMembership(ctx context.Context, leagueID, userID int64) (*models.LeagueMember, error) {
	m := &models.LeagueMember{}
	err := s.db.QueryRow(ctx, `
		SELECT id, league_id, user_id, role, is_active, joined_at
		FROM league_members
		WHERE league_id = $1 AND user_id = $2 AND is_active
	`, leagueID, userID).Scan(
		&m.ID,
		&m.LeagueID,
		&m.UserID,
		&m.Role,
		&m.IsActive,
		&m.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	return m, nil
}
