package service

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/pokernight/league-services/internal/leaguesvc/models"
)

type LeagueService struct {
	leagueStore LeagueStore
	memberStore MemberStore
}

func NewLeagueService(leagueStore LeagueStore, memberStore MemberStore) *LeagueService {
	return &LeagueService{
		leagueStore: leagueStore,
		memberStore: memberStore,
	}
}

// CreateLeague creates a league with a fresh unique invite code. The
// creator becomes admin and first member in the same store transaction.
func (s *LeagueService) CreateLeague(ctx context.Context, name, imageURL string, adminUserID int64) (*models.League, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: league name is required", ErrInvalidInput)
	}

	code, err := generateUniqueInviteCode(ctx, s.leagueStore)
	if err != nil {
		return nil, err
	}

	league, err := s.leagueStore.CreateLeague(ctx, name, imageURL, code, adminUserID)
	if err != nil {
		return nil, err
	}

	log.Infof("league %d (%s) created by user %d with code %s", league.ID, league.Name, adminUserID, league.InviteCode)
	return league, nil
}

// JoinLeagueByInviteCode joins the user into the league the code names.
// Joining twice while an active member fails; it does not succeed
// idempotently.
func (s *LeagueService) JoinLeagueByInviteCode(ctx context.Context, code string, userID int64) (*models.LeagueMember, *models.League, error) {
	if !ValidateInviteCode(code) {
		return nil, nil, fmt.Errorf("%w: invite code must be 5 characters from the code alphabet", ErrInvalidInput)
	}

	league, err := s.leagueStore.GetByInviteCode(ctx, code)
	if err != nil {
		return nil, nil, err
	}
	if league == nil {
		return nil, nil, fmt.Errorf("%w: no league with invite code %s", ErrNotFound, strings.ToUpper(code))
	}
	if !league.IsActive {
		return nil, nil, fmt.Errorf("%w: league %s is no longer active", ErrInvalidInput, league.Name)
	}

	member, err := s.memberStore.AddMember(ctx, league.ID, userID, models.RoleMember)
	if err != nil {
		return nil, nil, err
	}

	log.Infof("user %d joined league %d via invite code", userID, league.ID)
	return member, league, nil
}

// GetUserLeagues lists the caller's active leagues with member counts.
func (s *LeagueService) GetUserLeagues(ctx context.Context, userID int64) ([]*models.LeagueWithMembers, error) {
	return s.leagueStore.ListByUser(ctx, userID)
}

// DeactivateLeague soft-deletes a league. Only the league admin may do
// this, and the league stays queryable for historical stats.
func (s *LeagueService) DeactivateLeague(ctx context.Context, leagueID, byUserID int64) error {
	league, err := s.leagueStore.GetByID(ctx, leagueID)
	if err != nil {
		return err
	}
	if league == nil {
		return fmt.Errorf("%w: league %d", ErrNotFound, leagueID)
	}
	if league.AdminUserID != byUserID {
		return fmt.Errorf("%w: only the league admin can deactivate it", ErrForbidden)
	}

	return s.leagueStore.Deactivate(ctx, leagueID)
}

// RequireActiveMember loads the caller's membership for authorization
// checks, rejecting non-members.
func (s *LeagueService) RequireActiveMember(ctx context.Context, leagueID, userID int64) (*models.LeagueMember, error) {
	member, err := s.memberStore.GetActiveMembership(ctx, leagueID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, fmt.Errorf("%w: not a member of league %d", ErrForbidden, leagueID)
	}
	return member, nil
}
