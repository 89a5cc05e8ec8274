package handlers

import (
	"os"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
)

func (h *Handler) SetRoutes(r *chi.Mux) {
	r.Route("/v1", func(r chi.Router) {

		// public routes
		r.Get("/health", h.HealthHandler)
		r.Post("/auth/signin", h.SignInHandler)

		// Secure routes
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(h.tokenAuth))
			r.Use(jwtauth.Authenticator)

			r.Post("/leagues", h.CreateLeagueHandler)
			r.Post("/leagues/join", h.JoinLeagueHandler)
			r.Get("/leagues/user", h.UserLeaguesHandler)
			r.Delete("/leagues/{leagueID}", h.DeactivateLeagueHandler)
			r.Get("/leagues/{leagueID}/games", h.LeagueGamesHandler)
			r.Get("/leagues/{leagueID}/stats", h.LeagueStatsHandler)
			r.Get("/leagues/{leagueID}/leaderboards", h.LeaderboardsHandler)

			r.Post("/games", h.CreateGameHandler)
			r.Get("/games/{gameID}", h.GameDetailHandler)
			r.Post("/games/{gameID}/players", h.AddPlayerHandler)
			r.Post("/games/{gameID}/end", h.EndGameHandler)
			r.Get("/games/{gameID}/reconciliation", h.ReconciliationHandler)

			r.Post("/game-players/{gamePlayerID}/buy-in", h.BuyInHandler)
			r.Post("/game-players/{gamePlayerID}/cash-out", h.CashOutHandler)
			r.Delete("/game-players/{gamePlayerID}", h.RemovePlayerHandler)
		})
	})
}

// InitAuth wires the JWT verifier. Token issuance happens elsewhere
// (the OAuth sign-in edge); this service only verifies.
func (h *Handler) InitAuth() {
	var jwtKey = os.Getenv("JWT_SECRET_KEY")
	h.tokenAuth = jwtauth.New("HS256", []byte(jwtKey), nil)
}
