package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/pokernight/league-services/internal/leaguesvc/models"
)

// GameService owns the ledger operations: game lifecycle, buy-ins and
// cash-outs. Profit is only ever derived at cash-out time as
// final_amount minus the player's summed buy-ins. Every operation is
// scoped to the calling user, who must be an active member of the
// game's league.
type GameService struct {
	gameStore       GameStore
	gamePlayerStore GamePlayerStore
	cashInStore     CashInStore
	leagueStore     LeagueStore
	memberStore     MemberStore
	events          EventPublisher
}

func NewGameService(
	gameStore GameStore,
	gamePlayerStore GamePlayerStore,
	cashInStore CashInStore,
	leagueStore LeagueStore,
	memberStore MemberStore,
	events EventPublisher,
) *GameService {
	if events == nil {
		events = NoopPublisher{}
	}
	return &GameService{
		gameStore:       gameStore,
		gamePlayerStore: gamePlayerStore,
		cashInStore:     cashInStore,
		leagueStore:     leagueStore,
		memberStore:     memberStore,
		events:          events,
	}
}

// NewPlayer describes one seat request at game creation or mid-game join:
// either a registered user id, or a display name for an anonymous player.
type NewPlayer struct {
	UserID      *int64 `json:"userId,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

func (s *GameService) requireMember(ctx context.Context, leagueID, userID int64) error {
	member, err := s.memberStore.GetActiveMembership(ctx, leagueID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return fmt.Errorf("%w: not a member of league %d", ErrForbidden, leagueID)
	}
	return nil
}

// requireGameMember loads a game and verifies the caller belongs to its
// league.
func (s *GameService) requireGameMember(ctx context.Context, gameID, userID int64) (*models.Game, error) {
	game, err := s.gameStore.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, fmt.Errorf("%w: game %d", ErrNotFound, gameID)
	}
	if err := s.requireMember(ctx, game.LeagueID, userID); err != nil {
		return nil, err
	}
	return game, nil
}

// requireSeatMember resolves a game player up to its league and verifies
// the caller's membership there.
func (s *GameService) requireSeatMember(ctx context.Context, gamePlayerID, userID int64) (*models.GamePlayer, error) {
	gp, err := s.gamePlayerStore.GetByID(ctx, gamePlayerID)
	if err != nil {
		return nil, err
	}
	if gp == nil {
		return nil, fmt.Errorf("%w: game player %d", ErrNotFound, gamePlayerID)
	}
	if _, err := s.requireGameMember(ctx, gp.GameID, userID); err != nil {
		return nil, err
	}
	return gp, nil
}

// CreateGame starts a session: one game row, one game_player per seat and
// one opening buy_in per player, inserted atomically by the store. The
// creator must be an active member of an active league, and a table of
// fewer than two players is rejected.
func (s *GameService) CreateGame(ctx context.Context, leagueID, creatorID int64, buyIn decimal.Decimal, players []NewPlayer) (*models.Game, []*models.GamePlayer, error) {
	if len(players) < 2 {
		return nil, nil, fmt.Errorf("%w: a game needs at least 2 players", ErrInvalidInput)
	}
	if !buyIn.IsPositive() {
		return nil, nil, fmt.Errorf("%w: buy-in amount must be positive", ErrInvalidInput)
	}

	seats := make([]models.GamePlayer, 0, len(players))
	for _, p := range players {
		if p.UserID == nil && strings.TrimSpace(p.DisplayName) == "" {
			return nil, nil, fmt.Errorf("%w: each player needs a user id or a display name", ErrInvalidInput)
		}
		seats = append(seats, models.GamePlayer{UserID: p.UserID, DisplayName: strings.TrimSpace(p.DisplayName)})
	}

	league, err := s.leagueStore.GetByID(ctx, leagueID)
	if err != nil {
		return nil, nil, err
	}
	if league == nil {
		return nil, nil, fmt.Errorf("%w: league %d", ErrNotFound, leagueID)
	}
	if !league.IsActive {
		return nil, nil, fmt.Errorf("%w: league %s is no longer active", ErrInvalidInput, league.Name)
	}

	if err := s.requireMember(ctx, leagueID, creatorID); err != nil {
		return nil, nil, err
	}

	game, gamePlayers, err := s.gameStore.CreateGame(ctx, models.Game{
		LeagueID:  leagueID,
		CreatedBy: creatorID,
		BuyIn:     buyIn,
	}, seats)
	if err != nil {
		return nil, nil, err
	}

	log.Infof("game %d started in league %d with %d players, buy-in %s",
		game.ID, leagueID, len(gamePlayers), buyIn.String())
	s.events.GameCreated(ctx, game)

	return game, gamePlayers, nil
}

// AddPlayer seats one more player into a running game with an opening
// buy-in at the given amount, mirroring game creation.
func (s *GameService) AddPlayer(ctx context.Context, actorID, gameID int64, player NewPlayer, buyIn decimal.Decimal) (*models.GamePlayer, error) {
	if !buyIn.IsPositive() {
		return nil, fmt.Errorf("%w: buy-in amount must be positive", ErrInvalidInput)
	}
	if player.UserID == nil && strings.TrimSpace(player.DisplayName) == "" {
		return nil, fmt.Errorf("%w: player needs a user id or a display name", ErrInvalidInput)
	}

	if _, err := s.requireGameMember(ctx, gameID, actorID); err != nil {
		return nil, err
	}

	return s.gameStore.AddPlayer(ctx, gameID, player.UserID, strings.TrimSpace(player.DisplayName), buyIn)
}

// RecordBuyIn records additional money in for an active player. The
// player's profit is untouched; it is only derived at cash-out.
func (s *GameService) RecordBuyIn(ctx context.Context, actorID, gamePlayerID int64, amount decimal.Decimal, cashType string, chipCount *int, notes string) (*models.CashIn, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if cashType == "" {
		cashType = models.CashInTypeBuyIn
	}
	if !models.CountsAsBuyIn(cashType) {
		return nil, fmt.Errorf("%w: transaction type must be buy_in, rebuy or add_on", ErrInvalidInput)
	}

	if _, err := s.requireSeatMember(ctx, gamePlayerID, actorID); err != nil {
		return nil, err
	}

	return s.cashInStore.RecordForActivePlayer(ctx, gamePlayerID, amount, cashType, chipCount, notes)
}

// RecordCashOut finalizes a player: profit = finalAmount - sum of their
// buy-ins, player marked inactive, and an audit buy_out row recorded.
func (s *GameService) RecordCashOut(ctx context.Context, actorID, gamePlayerID int64, finalAmount decimal.Decimal) (*models.GamePlayer, error) {
	if finalAmount.IsNegative() {
		return nil, fmt.Errorf("%w: final amount cannot be negative", ErrInvalidInput)
	}

	if _, err := s.requireSeatMember(ctx, gamePlayerID, actorID); err != nil {
		return nil, err
	}

	gp, err := s.gamePlayerStore.CashOut(ctx, gamePlayerID, finalAmount)
	if err != nil {
		return nil, err
	}

	log.Infof("game player %d cashed out at %s, profit %s",
		gp.ID, finalAmount.String(), gp.Profit.Decimal.String())
	return gp, nil
}

// RemovePlayer deactivates a seat that was added by mistake. No cash-out
// amount is required and no profit is computed.
func (s *GameService) RemovePlayer(ctx context.Context, actorID, gamePlayerID int64) error {
	if _, err := s.requireSeatMember(ctx, gamePlayerID, actorID); err != nil {
		return err
	}
	return s.gamePlayerStore.Deactivate(ctx, gamePlayerID)
}

// EndGame completes a game once every seat is inactive and returns the
// final reconciliation. A discrepancy between money in and money out is
// legal (rake, uncollected cash) but gets logged.
func (s *GameService) EndGame(ctx context.Context, actorID, gameID int64) (*models.Game, *models.GameReconciliation, error) {
	if _, err := s.requireGameMember(ctx, gameID, actorID); err != nil {
		return nil, nil, err
	}

	game, err := s.gameStore.Complete(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}

	rec, err := s.gameStore.Reconcile(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}

	if !rec.Balanced {
		log.Warnf("game %d ended unbalanced: buy-ins %s, buy-outs %s, profit sum %s",
			gameID, rec.TotalBuyIns.String(), rec.TotalBuyOuts.String(), rec.ProfitSum.String())
	}
	log.Infof("game %d completed", gameID)
	s.events.GameEnded(ctx, game, rec)

	return game, rec, nil
}

// ReconcileGame exposes the accounting check on its own.
func (s *GameService) ReconcileGame(ctx context.Context, actorID, gameID int64) (*models.GameReconciliation, error) {
	if _, err := s.requireGameMember(ctx, gameID, actorID); err != nil {
		return nil, err
	}

	return s.gameStore.Reconcile(ctx, gameID)
}

// GetGameDetail returns one game with its seats and full cash-in audit
// trail, newest entries last.
func (s *GameService) GetGameDetail(ctx context.Context, actorID, gameID int64) (*models.Game, []*models.GamePlayer, []*models.CashIn, error) {
	game, err := s.requireGameMember(ctx, gameID, actorID)
	if err != nil {
		return nil, nil, nil, err
	}

	players, err := s.gamePlayerStore.GetPlayersByGameID(ctx, gameID)
	if err != nil {
		return nil, nil, nil, err
	}

	cashIns, err := s.cashInStore.ListByGame(ctx, gameID)
	if err != nil {
		return nil, nil, nil, err
	}

	return game, players, cashIns, nil
}

// ListLeagueGames returns one page of a league's games, newest first.
func (s *GameService) ListLeagueGames(ctx context.Context, actorID, leagueID int64, page, limit int) ([]*models.GameSummary, bool, int, error) {
	if err := s.requireMember(ctx, leagueID, actorID); err != nil {
		return nil, false, 0, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	games, total, err := s.gameStore.ListByLeague(ctx, leagueID, limit, (page-1)*limit)
	if err != nil {
		return nil, false, 0, err
	}

	hasMore := page*limit < total
	return games, hasMore, total, nil
}
