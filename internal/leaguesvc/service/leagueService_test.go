package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pokernight/league-services/internal/leaguesvc/models"
	"github.com/pokernight/league-services/internal/leaguesvc/store"
)

func TestJoinLeague_RejectsMalformedCode(t *testing.T) {
	svc := NewLeagueService(new(MockLeagueStore), new(MockMemberStore))

	_, _, err := svc.JoinLeagueByInviteCode(context.Background(), "ab", 7)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestJoinLeague_RejectsUnknownCode(t *testing.T) {
	leagues := new(MockLeagueStore)
	leagues.On("GetByInviteCode", mock.Anything, "ABCDE").Return(nil, nil)
	svc := NewLeagueService(leagues, new(MockMemberStore))

	_, _, err := svc.JoinLeagueByInviteCode(context.Background(), "ABCDE", 7)
	assert.ErrorIs(t, err, ErrNotFound)
	leagues.AssertExpectations(t)
}

func TestJoinLeague_RejectsInactiveLeague(t *testing.T) {
	leagues := new(MockLeagueStore)
	leagues.On("GetByInviteCode", mock.Anything, "ABCDE").Return(
		&models.League{ID: 3, Name: "Retired League", IsActive: false}, nil)
	svc := NewLeagueService(leagues, new(MockMemberStore))

	_, _, err := svc.JoinLeagueByInviteCode(context.Background(), "ABCDE", 7)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestJoinLeague_RejectsDuplicateActiveMembership(t *testing.T) {
	leagues := new(MockLeagueStore)
	members := new(MockMemberStore)
	leagues.On("GetByInviteCode", mock.Anything, "ABCDE").Return(
		&models.League{ID: 3, Name: "Friday Night", IsActive: true}, nil)
	members.On("AddMember", mock.Anything, int64(3), int64(7), models.RoleMember).
		Return(nil, store.ErrAlreadyMember)
	svc := NewLeagueService(leagues, members)

	_, _, err := svc.JoinLeagueByInviteCode(context.Background(), "ABCDE", 7)
	assert.ErrorIs(t, err, store.ErrAlreadyMember)
	members.AssertExpectations(t)
}

func TestJoinLeague_LowercaseCodeAccepted(t *testing.T) {
	leagues := new(MockLeagueStore)
	members := new(MockMemberStore)
	leagues.On("GetByInviteCode", mock.Anything, "abcde").Return(
		&models.League{ID: 3, Name: "Friday Night", IsActive: true}, nil)
	members.On("AddMember", mock.Anything, int64(3), int64(7), models.RoleMember).
		Return(&models.LeagueMember{ID: 44, LeagueID: 3, UserID: 7, Role: models.RoleMember, IsActive: true}, nil)
	svc := NewLeagueService(leagues, members)

	member, league, err := svc.JoinLeagueByInviteCode(context.Background(), "abcde", 7)
	require.NoError(t, err)
	assert.Equal(t, int64(44), member.ID)
	assert.Equal(t, "Friday Night", league.Name)
}

func TestGetUserLeagues_ReturnsActiveLeaguesWithCounts(t *testing.T) {
	leagues := new(MockLeagueStore)
	// the store query already filters inactive leagues and memberships:
	// a user in 2 active and 1 inactive league sees exactly these 2 rows
	leagues.On("ListByUser", mock.Anything, int64(7)).Return([]*models.LeagueWithMembers{
		{League: models.League{ID: 1, Name: "Friday Night", IsActive: true}, MemberCount: 8},
		{League: models.League{ID: 2, Name: "Office Game", IsActive: true}, MemberCount: 5},
	}, nil)
	svc := NewLeagueService(leagues, new(MockMemberStore))

	out, err := svc.GetUserLeagues(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 8, out[0].MemberCount)
	assert.Equal(t, 5, out[1].MemberCount)
}

func TestCreateLeague_RequiresName(t *testing.T) {
	svc := NewLeagueService(new(MockLeagueStore), new(MockMemberStore))

	_, err := svc.CreateLeague(context.Background(), "   ", "", 7)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateLeague_StoresGeneratedCode(t *testing.T) {
	leagues := new(MockLeagueStore)
	leagues.On("InviteCodeExists", mock.Anything, mock.Anything).Return(false, nil)
	leagues.On("CreateLeague", mock.Anything, "Friday Night", "", mock.MatchedBy(ValidateInviteCode), int64(7)).
		Return(&models.League{ID: 9, Name: "Friday Night", AdminUserID: 7, IsActive: true}, nil)
	svc := NewLeagueService(leagues, new(MockMemberStore))

	league, err := svc.CreateLeague(context.Background(), "Friday Night", "", 7)
	require.NoError(t, err)
	assert.Equal(t, int64(9), league.ID)
	leagues.AssertExpectations(t)
}

func TestDeactivateLeague_AdminOnly(t *testing.T) {
	leagues := new(MockLeagueStore)
	leagues.On("GetByID", mock.Anything, int64(9)).Return(
		&models.League{ID: 9, AdminUserID: 7, IsActive: true}, nil)
	svc := NewLeagueService(leagues, new(MockMemberStore))

	err := svc.DeactivateLeague(context.Background(), 9, 8)
	assert.ErrorIs(t, err, ErrForbidden)

	leagues.On("Deactivate", mock.Anything, int64(9)).Return(nil)
	require.NoError(t, svc.DeactivateLeague(context.Background(), 9, 7))
}

func TestRequireActiveMember(t *testing.T) {
	members := new(MockMemberStore)
	members.On("GetActiveMembership", mock.Anything, int64(9), int64(7)).Return(
		&models.LeagueMember{ID: 3, LeagueID: 9, UserID: 7, Role: models.RoleMember, IsActive: true}, nil)
	members.On("GetActiveMembership", mock.Anything, int64(9), int64(99)).Return(nil, nil)
	svc := NewLeagueService(new(MockLeagueStore), members)

	member, err := svc.RequireActiveMember(context.Background(), 9, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(3), member.ID)

	_, err = svc.RequireActiveMember(context.Background(), 9, 99)
	assert.ErrorIs(t, err, ErrForbidden)
}
