package service

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/pokernight/league-services/internal/leaguesvc/models"
)

// UserService struct represents the user service layer
type UserService struct {
	userStore UserStore
}

// NewUserService creates a new UserService instance
func NewUserService(userStore UserStore) *UserService {
	return &UserService{
		userStore: userStore,
	}
}

// GetOrCreateUser upserts a user on sign-in. First sign-in creates the
// row; later sign-ins refresh provider details and last_login_at, and
// only replace the name while it is still the default placeholder.
func (s *UserService) GetOrCreateUser(ctx context.Context, userInfo models.User) (*models.User, error) {
	userInfo.Email = strings.ToLower(strings.TrimSpace(userInfo.Email))
	if userInfo.Email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	existing, err := s.userStore.GetByEmail(ctx, userInfo.Email)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		if strings.TrimSpace(userInfo.Name) == "" {
			userInfo.Name = models.DefaultUserName
		}
		created, err := s.userStore.CreateUser(ctx, userInfo)
		if err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		log.Infof("user %d created on first sign-in", created.ID)
		return created, nil
	}

	return s.userStore.UpdateOnSignIn(ctx, userInfo)
}

// GetUser fetches one user by id.
func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	return u, nil
}
