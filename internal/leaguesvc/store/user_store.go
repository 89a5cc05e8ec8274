package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pokernight/league-services/internal/leaguesvc/db"
	"github.com/pokernight/league-services/internal/leaguesvc/models"
)

type UserStore struct {
	db *db.DB
}

func NewUserStore(db *db.DB) *UserStore {
	return &UserStore{db: db}
}

func (r *UserStore) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	query := `
        INSERT INTO users (email, name, provider, provider_id, image_url, last_login_at)
        VALUES ($1, $2, $3, $4, $5, now())
        RETURNING id, email, name, provider, provider_id, image_url, created_at, updated_at, last_login_at;
    `

	u := &models.User{}
	err := r.db.QueryRow(ctx, query,
		user.Email, user.Name, user.Provider, user.ProviderID, user.ImageURL,
	).Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.Provider,
		&u.ProviderID,
		&u.ImageURL,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.LastLoginAt,
	)
	if err != nil {
		return nil, fmt.Errorf("could not create user: %w", err)
	}

	return u, nil
}

func (r *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRow(ctx, `
        SELECT id, email, name, provider, provider_id, image_url, created_at, updated_at, last_login_at
        FROM users
        WHERE email = $1
    `, email)

	u := &models.User{}
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.Provider,
		&u.ProviderID,
		&u.ImageURL,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.LastLoginAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // user not found
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return u, nil
}

func (r *UserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.db.QueryRow(ctx, `
        SELECT id, email, name, provider, provider_id, image_url, created_at, updated_at, last_login_at
        FROM users
        WHERE id = $1
    `, id)

	u := &models.User{}
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.Provider,
		&u.ProviderID,
		&u.ImageURL,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.LastLoginAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return u, nil
}

// UpdateOnSignIn refreshes the mutable profile fields on a returning
// sign-in. The display name only changes while it is still the default
// placeholder; a user-chosen name is never clobbered by provider data.
func (r *UserStore) UpdateOnSignIn(ctx context.Context, user models.User) (*models.User, error) {
	query := `
        UPDATE users
        SET name = CASE WHEN name = $2 AND $3 <> '' THEN $3 ELSE name END,
            provider = COALESCE(NULLIF($4, ''), provider),
            provider_id = COALESCE(NULLIF($5, ''), provider_id),
            image_url = COALESCE(NULLIF($6, ''), image_url),
            last_login_at = now(),
            updated_at = now()
        WHERE email = $1
        RETURNING id, email, name, provider, provider_id, image_url, created_at, updated_at, last_login_at;
    `

	u := &models.User{}
	err := r.db.QueryRow(ctx, query,
		user.Email, models.DefaultUserName, user.Name,
		user.Provider, user.ProviderID, user.ImageURL,
	).Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.Provider,
		&u.ProviderID,
		&u.ImageURL,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.LastLoginAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update user on sign-in: %w", err)
	}

	return u, nil
}
