package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type createLeagueRequest struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

func (h *Handler) CreateLeagueHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.currentUserID(r)
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "missing or invalid token")
		return
	}

	var req createLeagueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	league, err := h.leagueService.CreateLeague(r.Context(), req.Name, req.ImageURL, userID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"league":  league,
	})
}

type joinLeagueRequest struct {
	InviteCode string `json:"inviteCode"`
}

func (h *Handler) JoinLeagueHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.currentUserID(r)
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "missing or invalid token")
		return
	}

	var req joinLeagueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	member, league, err := h.leagueService.JoinLeagueByInviteCode(r.Context(), req.InviteCode, userID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"member":  member,
		"message": fmt.Sprintf("joined league %s", league.Name),
	})
}

func (h *Handler) UserLeaguesHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.currentUserID(r)
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "missing or invalid token")
		return
	}

	leagues, err := h.leagueService.GetUserLeagues(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"leagues": leagues,
		"count":   len(leagues),
	})
}

func (h *Handler) DeactivateLeagueHandler(w http.ResponseWriter, r *http.Request) {
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

	if err := h.leagueService.DeactivateLeague(r.Context(), leagueID, userID); err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "league deactivated",
	})
}
