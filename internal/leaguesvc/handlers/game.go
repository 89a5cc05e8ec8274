package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/pokernight/league-services/internal/leaguesvc/service"
)

type createGameRequest struct {
	LeagueID int64               `json:"leagueId"`
	BuyIn    decimal.Decimal     `json:"buyIn"`
	Players  []service.NewPlayer `json:"selectedPlayers"`
}

func (h *Handler) CreateGameHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.currentUserID(r)
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "missing or invalid token")
		return
	}

	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	game, players, err := h.gameService.CreateGame(r.Context(), req.LeagueID, userID, req.BuyIn, req.Players)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"gameId":  game.ID,
		"game":    game,
		"players": players,
	})
}

type addPlayerRequest struct {
	service.NewPlayer
	BuyIn decimal.Decimal `json:"buyIn"`
}

func (h *Handler) AddPlayerHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.currentUserID(r)
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "missing or invalid token")
		return
	}

	gameID, err := urlID(r, "gameID")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	var req addPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	player, err := h.gameService.AddPlayer(r.Context(), userID, gameID, req.NewPlayer, req.BuyIn)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"player":  player,
	})
}

func (h *Handler) GameDetailHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.currentUserID(r)
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "missing or invalid token")
		return
	}

	gameID, err := urlID(r, "gameID")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	game, players, cashIns, err := h.gameService.GetGameDetail(r.Context(), userID, gameID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"game":    game,
		"players": players,
		"cashIns": cashIns,
	})
}

func (h *Handler) EndGameHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.currentUserID(r)
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "missing or invalid token")
		return
	}

	gameID, err := urlID(r, "gameID")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	game, rec, err := h.gameService.EndGame(r.Context(), userID, gameID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"game":           game,
		"reconciliation": rec,
	})
}

func (h *Handler) ReconciliationHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.currentUserID(r)
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "missing or invalid token")
		return
	}

	gameID, err := urlID(r, "gameID")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	rec, err := h.gameService.ReconcileGame(r.Context(), userID, gameID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"reconciliation": rec,
	})
}

type buyInRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Type      string          `json:"type"`
	ChipCount *int            `json:"chipCount,omitempty"`
	Notes     string          `json:"notes"`
}

func (h *Handler) BuyInHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.currentUserID(r)
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "missing or invalid token")
		return
	}

	gamePlayerID, err := urlID(r, "gamePlayerID")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid game player id")
		return
	}

	var req buyInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cashIn, err := h.gameService.RecordBuyIn(r.Context(), userID, gamePlayerID, req.Amount, req.Type, req.ChipCount, req.Notes)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"cashIn":  cashIn,
	})
}

type cashOutRequest struct {
	FinalAmount decimal.Decimal `json:"finalAmount"`
}

func (h *Handler) CashOutHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.currentUserID(r)
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "missing or invalid token")
		return
	}

	gamePlayerID, err := urlID(r, "gamePlayerID")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid game player id")
		return
	}

	var req cashOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	player, err := h.gameService.RecordCashOut(r.Context(), userID, gamePlayerID, req.FinalAmount)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"player":  player,
	})
}

func (h *Handler) RemovePlayerHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.currentUserID(r)
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "missing or invalid token")
		return
	}

	gamePlayerID, err := urlID(r, "gamePlayerID")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid game player id")
		return
	}

	if err := h.gameService.RemovePlayer(r.Context(), userID, gamePlayerID); err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "player removed",
	})
}

func (h *Handler) LeagueGamesHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.currentUserID(r)
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "missing or invalid token")
		return
	}

	leagueID, err := urlID(r, "leagueID")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid league id")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	games, hasMore, total, err := h.gameService.ListLeagueGames(r.Context(), userID, leagueID, page, limit)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"games":   games,
		"hasMore": hasMore,
		"total":   total,
	})
}
