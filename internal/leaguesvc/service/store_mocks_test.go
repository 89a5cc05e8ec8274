package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/pokernight/league-services/internal/leaguesvc/models"
	"github.com/pokernight/league-services/internal/leaguesvc/store"
)

// MockLeagueStore is a mock implementation of LeagueStore
type MockLeagueStore struct {
	mock.Mock
}

func (m *MockLeagueStore) CreateLeague(ctx context.Context, name, imageURL, inviteCode string, adminUserID int64) (*models.League, error) {
	args := m.Called(ctx, name, imageURL, inviteCode, adminUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.League), args.Error(1)
}

func (m *MockLeagueStore) GetByID(ctx context.Context, leagueID int64) (*models.League, error) {
	args := m.Called(ctx, leagueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.League), args.Error(1)
}

func (m *MockLeagueStore) GetByInviteCode(ctx context.Context, code string) (*models.League, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.League), args.Error(1)
}

func (m *MockLeagueStore) InviteCodeExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockLeagueStore) ListByUser(ctx context.Context, userID int64) ([]*models.LeagueWithMembers, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LeagueWithMembers), args.Error(1)
}

func (m *MockLeagueStore) Deactivate(ctx context.Context, leagueID int64) error {
	args := m.Called(ctx, leagueID)
	return args.Error(0)
}

// MockMemberStore is a mock implementation of MemberStore
type MockMemberStore struct {
	mock.Mock
}

func (m *MockMemberStore) AddMember(ctx context.Context, leagueID, userID int64, role string) (*models.LeagueMember, error) {
	args := m.Called(ctx, leagueID, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LeagueMember), args.Error(1)
}

func (m *MockMemberStore) GetActiveMembership(ctx context.Context, leagueID, userID int64) (*models.LeagueMember, error) {
	args := m.Called(ctx, leagueID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LeagueMember), args.Error(1)
}

// MockUserStore is a mock implementation of UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) UpdateOnSignIn(ctx context.Context, user models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockStatsStore is a mock implementation of StatsStore
type MockStatsStore struct {
	mock.Mock
}

func (m *MockStatsStore) GetLeagueTotals(ctx context.Context, leagueID int64, from, to time.Time) (*store.LeagueTotals, error) {
	args := m.Called(ctx, leagueID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.LeagueTotals), args.Error(1)
}

func (m *MockStatsStore) TopProfit(ctx context.Context, leagueID int64, from, to time.Time, limit int) ([]models.PlayerProfit, error) {
	args := m.Called(ctx, leagueID, from, to, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PlayerProfit), args.Error(1)
}

func (m *MockStatsStore) MostActive(ctx context.Context, leagueID int64, from, to time.Time, limit int) ([]models.PlayerActivity, error) {
	args := m.Called(ctx, leagueID, from, to, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PlayerActivity), args.Error(1)
}

func (m *MockStatsStore) HighestGameProfit(ctx context.Context, leagueID int64, from, to time.Time, limit int) ([]models.PlayerProfit, error) {
	args := m.Called(ctx, leagueID, from, to, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PlayerProfit), args.Error(1)
}

func (m *MockStatsStore) PlayerProfitSequences(ctx context.Context, leagueID int64, from, to time.Time) ([]*models.ProfitSequence, error) {
	args := m.Called(ctx, leagueID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ProfitSequence), args.Error(1)
}
