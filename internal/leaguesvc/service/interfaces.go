package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pokernight/league-services/internal/leaguesvc/models"
	"github.com/pokernight/league-services/internal/leaguesvc/store"
)

// Store interfaces consumed by the services. The concrete pgx stores
// satisfy these; tests substitute mocks.

type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UpdateOnSignIn(ctx context.Context, user models.User) (*models.User, error)
}

type LeagueStore interface {
	CreateLeague(ctx context.Context, name, imageURL, inviteCode string, adminUserID int64) (*models.League, error)
	GetByID(ctx context.Context, leagueID int64) (*models.League, error)
	GetByInviteCode(ctx context.Context, code string) (*models.League, error)
	InviteCodeExists(ctx context.Context, code string) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.LeagueWithMembers, error)
	Deactivate(ctx context.Context, leagueID int64) error
}

type MemberStore interface {
	AddMember(ctx context.Context, leagueID, userID int64, role string) (*models.LeagueMember, error)
	GetActiveMembership(ctx context.Context, leagueID, userID int64) (*models.LeagueMember, error)
}

type GameStore interface {
	CreateGame(ctx context.Context, game models.Game, players []models.GamePlayer) (*models.Game, []*models.GamePlayer, error)
	AddPlayer(ctx context.Context, gameID int64, userID *int64, displayName string, buyIn decimal.Decimal) (*models.GamePlayer, error)
	GetGameByID(ctx context.Context, gameID int64) (*models.Game, error)
	Complete(ctx context.Context, gameID int64) (*models.Game, error)
	Reconcile(ctx context.Context, gameID int64) (*models.GameReconciliation, error)
	ListByLeague(ctx context.Context, leagueID int64, limit, offset int) ([]*models.GameSummary, int, error)
}

type GamePlayerStore interface {
	GetByID(ctx context.Context, gamePlayerID int64) (*models.GamePlayer, error)
	GetPlayersByGameID(ctx context.Context, gameID int64) ([]*models.GamePlayer, error)
	CashOut(ctx context.Context, gamePlayerID int64, finalAmount decimal.Decimal) (*models.GamePlayer, error)
	Deactivate(ctx context.Context, gamePlayerID int64) error
}

type CashInStore interface {
	RecordForActivePlayer(ctx context.Context, gamePlayerID int64, amount decimal.Decimal, cashType string, chipCount *int, notes string) (*models.CashIn, error)
	ListByGame(ctx context.Context, gameID int64) ([]*models.CashIn, error)
}

type StatsStore interface {
	GetLeagueTotals(ctx context.Context, leagueID int64, from, to time.Time) (*store.LeagueTotals, error)
	TopProfit(ctx context.Context, leagueID int64, from, to time.Time, limit int) ([]models.PlayerProfit, error)
	MostActive(ctx context.Context, leagueID int64, from, to time.Time, limit int) ([]models.PlayerActivity, error)
	HighestGameProfit(ctx context.Context, leagueID int64, from, to time.Time, limit int) ([]models.PlayerProfit, error)
	PlayerProfitSequences(ctx context.Context, leagueID int64, from, to time.Time) ([]*models.ProfitSequence, error)
}

// EventPublisher receives game lifecycle notifications. Publishing is
// fire-and-forget; implementations must never fail the calling request.
type EventPublisher interface {
	GameCreated(ctx context.Context, game *models.Game)
	GameEnded(ctx context.Context, game *models.Game, rec *models.GameReconciliation)
}

// NoopPublisher is the publisher used when eventing is not configured.
type NoopPublisher struct{}

func (NoopPublisher) GameCreated(context.Context, *models.Game)                             {}
func (NoopPublisher) GameEnded(context.Context, *models.Game, *models.GameReconciliation) {}
