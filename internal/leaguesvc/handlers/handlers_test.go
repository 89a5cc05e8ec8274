package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokernight/league-services/internal/leaguesvc/models"
	"github.com/pokernight/league-services/internal/leaguesvc/service"
)

func newTestRouter(t *testing.T) (*chi.Mux, string) {
	t.Helper()
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	h := NewHandler(nil, nil, nil, nil)
	h.InitAuth()

	r := chi.NewRouter()
	h.SetRoutes(r)

	_, token, err := h.tokenAuth.Encode(map[string]interface{}{
		"user_id": float64(7),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	return r, token
}

func doRequest(r *chi.Mux, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHealthIsPublic(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(r, http.MethodGet, "/v1/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
}

func TestSecuredRoutesRejectMissingToken(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/v1/games"},
		{http.MethodPost, "/v1/leagues/join"},
		{http.MethodGet, "/v1/leagues/user"},
		{http.MethodGet, "/v1/leagues/1/stats"},
	} {
		rec := doRequest(r, tc.method, tc.path, "", "{}")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestCreateGame_MalformedBodyIs400(t *testing.T) {
	r, token := newTestRouter(t)

	rec := doRequest(r, http.MethodPost, "/v1/games", token, "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
}

func TestJoinLeague_MalformedBodyIs400(t *testing.T) {
	r, token := newTestRouter(t)

	rec := doRequest(r, http.MethodPost, "/v1/leagues/join", token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNonNumericIDsAre400(t *testing.T) {
	r, token := newTestRouter(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/v1/games/abc/reconciliation"},
		{http.MethodPost, "/v1/games/abc/end"},
		{http.MethodDelete, "/v1/game-players/xyz"},
		{http.MethodGet, "/v1/leagues/nope/games"},
	} {
		rec := doRequest(r, tc.method, tc.path, token, "{}")
		assert.Equal(t, http.StatusBadRequest, rec.Code, "%s %s", tc.method, tc.path)
	}
}

// staticMemberStore answers every membership lookup with the same row.
type staticMemberStore struct {
	member *models.LeagueMember
}

func (s staticMemberStore) AddMember(ctx context.Context, leagueID, userID int64, role string) (*models.LeagueMember, error) {
	return nil, nil
}

func (s staticMemberStore) GetActiveMembership(ctx context.Context, leagueID, userID int64) (*models.LeagueMember, error) {
	return s.member, nil
}

func TestLeagueStatsRoutes_ForbiddenForNonMembers(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	leagueService := service.NewLeagueService(nil, staticMemberStore{})
	h := NewHandler(nil, leagueService, nil, nil)
	h.InitAuth()

	r := chi.NewRouter()
	h.SetRoutes(r)

	_, token, err := h.tokenAuth.Encode(map[string]interface{}{
		"user_id": float64(7),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	for _, path := range []string{
		"/v1/leagues/5/stats",
		"/v1/leagues/5/leaderboards",
	} {
		rec := doRequest(r, http.MethodGet, path, token, "")
		assert.Equal(t, http.StatusForbidden, rec.Code, path)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, false, body["success"])
	}
}
