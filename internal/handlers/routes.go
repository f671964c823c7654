package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/amontoya/webawards/internal/auth"
	"github.com/amontoya/webawards/internal/models"
)

// conditionalHTTPLogger only logs HTTP requests when HTTP logging is enabled
func (h *Handlers) conditionalHTTPLogger(next http.Handler) http.Handler {
	logger := middleware.Logger(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Log != nil && h.Log.IsHTTPLoggingEnabled() {
			logger.ServeHTTP(w, r)
		} else {
			next.ServeHTTP(w, r)
		}
	})
}

// Router returns a configured chi router with all routes
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.conditionalHTTPLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Timeout(60 * time.Second))

	// WebSocket
	if h.Hub != nil {
		r.Get("/ws", h.Hub.ServeWs)
	}

	// Public API
	r.Post("/api/auth/login", h.handleLogin)
	r.Get("/api/voting-status", h.handleVotingStatus)
	r.Get("/api/teams", h.handleListTeams)
	r.Get("/api/teams/{id}", h.handleGetTeam)
	r.Get("/api/podium", h.handlePodium)

	// Authenticated API (any voter kind)
	r.Group(func(r chi.Router) {
		r.Use(h.Tokens.Authenticate)

		r.Get("/api/auth/me", h.handleMe)
		r.Put("/api/auth/me", h.handleUpdateMe)
		r.Post("/api/auth/intro-seen", h.handleIntroSeen)

		r.Post("/api/votes", h.handleCastVote)
		r.Get("/api/votes/mine", h.handleMyVotes)
		r.Get("/api/votes/budget", h.handleVoteBudget)
		r.Get("/api/votes/counts", h.handleVoteCounts)

		r.Post("/api/teams/{id}/favorite", h.handleFavoriteToggle)
		r.Get("/api/favorites", h.handleFavorites)
	})

	// Helper API
	r.Group(func(r chi.Router) {
		r.Use(h.Tokens.Authenticate)
		r.Use(auth.RequireKind(models.KindHelper))

		r.Get("/api/helper/teams", h.handleHelperTeams)
		r.Put("/api/helper/teams/{id}", h.handleUpdateTeamPresentation)
	})

	// Admin API
	r.Group(func(r chi.Router) {
		r.Use(h.Tokens.Authenticate)
		r.Use(auth.RequireKind(models.KindAdmin))

		// Teams
		r.Get("/api/admin/teams", h.handleAdminListTeams)
		r.Post("/api/admin/teams", h.handleCreateTeam)
		r.Put("/api/admin/teams/{id}", h.handleUpdateTeam)
		r.Delete("/api/admin/teams/{id}", h.handleDeleteTeam)
		r.Get("/api/admin/teams/{id}/qr", h.handleTeamQR)

		// Accounts
		r.Get("/api/admin/students", h.handleListStudents)
		r.Post("/api/admin/students", h.handleCreateStudent)
		r.Put("/api/admin/students/{id}", h.handleUpdateStudent)
		r.Delete("/api/admin/students/{id}", h.handleDeleteStudent)

		r.Get("/api/admin/helpers", h.handleListHelpers)
		r.Post("/api/admin/helpers", h.handleCreateHelper)
		r.Put("/api/admin/helpers/{id}", h.handleUpdateHelper)
		r.Delete("/api/admin/helpers/{id}", h.handleDeleteHelper)

		r.Get("/api/admin/admins", h.handleListAdmins)
		r.Post("/api/admin/admins", h.handleCreateAdmin)
		r.Put("/api/admin/admins/{id}", h.handleUpdateAdmin)
		r.Delete("/api/admin/admins/{id}", h.handleDeleteAdmin)
		r.Post("/api/admin/verify-password", h.handleVerifyPassword)

		// Results and ledger
		r.Get("/api/admin/results", h.handleAdminResults)
		r.Get("/api/admin/podium", h.handleAdminPodium)
		r.Get("/api/admin/votes/by-kind/{kind}", h.handleVotesByKind)
		r.Delete("/api/admin/votes/{id}", h.handleDeleteVote)
		r.Post("/api/admin/votes/reset", h.handleResetVotes)

		// Voting window configuration
		r.Get("/api/admin/config", h.handleGetConfig)
		r.Put("/api/admin/config", h.handleUpdateConfig)
		r.Post("/api/admin/config/toggle-pause", h.handleTogglePause)
	})

	return r
}
