package handlers

import (
	"net/http"
	"strconv"
)

// Stats are league-scoped reads, so both handlers verify the caller's
// membership before touching the aggregates.

func (h *Handler) LeagueStatsHandler(w http.ResponseWriter, r *http.Request) {
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

	if _, err := h.leagueService.RequireActiveMember(r.Context(), leagueID, userID); err != nil {
		h.respondServiceError(w, err)
		return
	}

	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	stats, err := h.statsService.GetLeagueStats(r.Context(), leagueID, year)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"stats":   stats,
	})
}

func (h *Handler) LeaderboardsHandler(w http.ResponseWriter, r *http.Request) {
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

	if _, err := h.leagueService.RequireActiveMember(r.Context(), leagueID, userID); err != nil {
		h.respondServiceError(w, err)
		return
	}

	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	boards, err := h.statsService.GetLeaderboards(r.Context(), leagueID, year)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"leaderboards": boards,
	})
}
