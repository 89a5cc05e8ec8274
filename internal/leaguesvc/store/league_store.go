package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/pokernight/league-services/internal/leaguesvc/db"
	"github.com/pokernight/league-services/internal/leaguesvc/models"
)

type LeagueStore struct {
	db *db.DB
}

func NewLeagueStore(db *db.DB) *LeagueStore {
	return &LeagueStore{db: db}
}

// CreateLeague inserts the league and its admin membership in one
// transaction, so a league can never exist without its first member.
func (s *LeagueStore) CreateLeague(ctx context.Context, name, imageURL, inviteCode string, adminUserID int64) (*models.League, error) {
	league := &models.League{}

	err := s.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO leagues (name, image_url, invite_code, admin_user_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id, name, image_url, invite_code, admin_user_id, is_active, created_at, updated_at
		`, name, imageURL, inviteCode, adminUserID).Scan(
			&league.ID,
			&league.Name,
			&league.ImageURL,
			&league.InviteCode,
			&league.AdminUserID,
			&league.IsActive,
			&league.CreatedAt,
			&league.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert league: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO league_members (league_id, user_id, role)
			VALUES ($1, $2, $3)
		`, league.ID, adminUserID, models.RoleAdmin)
		if err != nil {
			return fmt.Errorf("failed to insert admin membership: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return league, nil
}

func (s *LeagueStore) GetByID(ctx context.Context, leagueID int64) (*models.League, error) {
	league := &models.League{}
	err := s.db.QueryRow(ctx, `
		SELECT id, name, image_url, invite_code, admin_user_id, is_active, created_at, updated_at
		FROM leagues
		WHERE id = $1
	`, leagueID).Scan(
		&league.ID,
		&league.Name,
		&league.ImageURL,
		&league.InviteCode,
		&league.AdminUserID,
		&league.IsActive,
		&league.CreatedAt,
		&league.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // league not found
		}
		return nil, fmt.Errorf("failed to get league by ID: %w", err)
	}

	return league, nil
}

// GetByInviteCode looks a league up by its join code, case-insensitively.
func (s *LeagueStore) GetByInviteCode(ctx context.Context, code string) (*models.League, error) {
	league := &models.League{}
	err := s.db.QueryRow(ctx, `
		SELECT id, name, image_url, invite_code, admin_user_id, is_active, created_at, updated_at
		FROM leagues
		WHERE invite_code = $1
	`, strings.ToUpper(code)).Scan(
		&league.ID,
		&league.Name,
		&league.ImageURL,
		&league.InviteCode,
		&league.AdminUserID,
		&league.IsActive,
		&league.CreatedAt,
		&league.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get league by invite code: %w", err)
	}

	return league, nil
}

// InviteCodeExists reports whether any league already holds the code.
func (s *LeagueStore) InviteCodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM leagues WHERE invite_code = $1)
	`, strings.ToUpper(code)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check invite code: %w", err)
	}
	return exists, nil
}

// ListByUser returns the active leagues where the user holds an active
// membership, each with its active member count. A single grouped join,
// one round trip for the whole listing.
func (s *LeagueStore) ListByUser(ctx context.Context, userID int64) ([]*models.LeagueWithMembers, error) {
	rows, err := s.db.Query(ctx, `
		SELECT l.id, l.name, l.image_url, l.invite_code, l.admin_user_id, l.is_active,
		       l.created_at, l.updated_at,
		       COUNT(all_members.id) AS member_count
		FROM leagues l
		JOIN league_members my ON my.league_id = l.id
		     AND my.user_id = $1 AND my.is_active
		LEFT JOIN league_members all_members ON all_members.league_id = l.id
		     AND all_members.is_active
		WHERE l.is_active
		GROUP BY l.id
		ORDER BY l.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leagues for user: %w", err)
	}
	defer rows.Close()

	var leagues []*models.LeagueWithMembers
	for rows.Next() {
		var lw models.LeagueWithMembers
		err := rows.Scan(
			&lw.ID,
			&lw.Name,
			&lw.ImageURL,
			&lw.InviteCode,
			&lw.AdminUserID,
			&lw.IsActive,
			&lw.CreatedAt,
			&lw.UpdatedAt,
			&lw.MemberCount,
		)
		if err != nil {
			return nil, err
		}
		leagues = append(leagues, &lw)
	}

	return leagues, rows.Err()
}

// Deactivate soft-deletes a league. Zero rows affected means the league
// was missing or already inactive.
func (s *LeagueStore) Deactivate(ctx context.Context, leagueID int64) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE leagues
		SET is_active = FALSE, updated_at = now()
		WHERE id = $1 AND is_active
	`, leagueID)
	if err != nil {
		return fmt.Errorf("failed to deactivate league: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("league %d not found or already inactive", leagueID)
	}
	return nil
}
