package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pokernight/league-services/internal/leaguesvc/models"
)

type signInRequest struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	Provider   string `json:"provider"`
	ProviderID string `json:"providerId"`
	ImageURL   string `json:"imageUrl"`
}

// SignInHandler upserts a user from a verified OAuth profile. The
// gateway in front of this service performs token verification and
// issuance; by the time a request lands here the profile is trusted.
func (h *Handler) SignInHandler(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.userService.GetOrCreateUser(r.Context(), models.User{
		Email:      req.Email,
		Name:       req.Name,
		Provider:   req.Provider,
		ProviderID: req.ProviderID,
		ImageURL:   req.ImageURL,
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}
