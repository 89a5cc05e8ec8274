package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"

	"github.com/pokernight/league-services/internal/leaguesvc/service"
	"github.com/pokernight/league-services/internal/leaguesvc/store"
)

type Handler struct {
	tokenAuth *jwtauth.JWTAuth

	userService   *service.UserService
	leagueService *service.LeagueService
	gameService   *service.GameService
	statsService  *service.StatsService
}

func NewHandler(
	userService *service.UserService,
	leagueService *service.LeagueService,
	gameService *service.GameService,
	statsService *service.StatsService,
) *Handler {
	return &Handler{
		userService:   userService,
		leagueService: leagueService,
		gameService:   gameService,
		statsService:  statsService,
	}
}

func (h *Handler) respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func (h *Handler) respondError(w http.ResponseWriter, code int, message string) {
	h.respondJSON(w, code, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// respondServiceError translates the service error taxonomy into HTTP
// statuses. Persistence failures surface as a generic 500; the cause is
// logged server-side only.
func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		h.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		h.respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, store.ErrAlreadyMember):
		h.respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrPlayersStillActive),
		errors.Is(err, store.ErrPlayerNotActive):
		h.respondError(w, http.StatusBadRequest, err.Error())
	default:
		log.Errorf("request failed: %v", err)
		h.respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// currentUserID reads the authenticated user from the verified JWT claims.
func (h *Handler) currentUserID(r *http.Request) (int64, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return 0, err
	}

	switch v := claims["user_id"].(type) {
	case float64:
		return int64(v), nil
	case int64:
		return v, nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, errors.New("token carries no user_id claim")
	}
}

// urlID parses a numeric chi URL parameter.
func urlID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "league service is running",
	})
}
