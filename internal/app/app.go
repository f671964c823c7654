package app

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amontoya/webawards/internal/auth"
	"github.com/amontoya/webawards/internal/config"
	"github.com/amontoya/webawards/internal/handlers"
	"github.com/amontoya/webawards/internal/logger"
	"github.com/amontoya/webawards/internal/repository"
	"github.com/amontoya/webawards/internal/services"
	"github.com/amontoya/webawards/internal/websocket"
)

// App holds all application dependencies
type App struct {
	log             logger.Logger
	handlers        *handlers.Handlers
	repo            *repository.Repository
	cancelCountdown context.CancelFunc
}

// New creates and initializes a new application instance
func New(log logger.Logger, cfg *config.Config) (*App, error) {
	repo, err := repository.New(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	tokens := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL, repo)

	// Initialize services
	configService := services.NewConfigService(log, repo)
	votingService := services.NewVotingService(log, repo, configService)
	resultsService := services.NewResultsService(log, repo)
	teamService := services.NewTeamService(log, repo)
	studentService := services.NewStudentService(log, repo)
	helperService := services.NewHelperService(log, repo)
	adminService := services.NewAdminService(log, repo)
	favoriteService := services.NewFavoriteService(log, repo)
	identityService := services.NewIdentityService(log, repo, tokens)

	// Initialize WebSocket hub with DI
	hub := websocket.New(log, configService)
	hub.Start()
	configService.SetBroadcaster(hub)

	// Start countdown with context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	go hub.StartCountdown(ctx)

	h := handlers.New(
		identityService,
		votingService,
		resultsService,
		teamService,
		studentService,
		helperService,
		adminService,
		configService,
		favoriteService,
		tokens,
		hub,
		log,
	)

	return &App{
		log:             log,
		handlers:        h,
		repo:            repo,
		cancelCountdown: cancel,
	}, nil
}

// Router returns the configured HTTP router
func (a *App) Router() chi.Router {
	return a.handlers.Router()
}

// Close performs graceful shutdown of app resources
func (a *App) Close() {
	if a.cancelCountdown != nil {
		a.cancelCountdown()
	}
	if a.repo != nil {
		a.repo.Close()
	}
}

// Run starts the HTTP server
func (a *App) Run(addr string) error {
	a.log.Info("Server starting", "addr", addr)
	return http.ListenAndServe(addr, a.Router())
}
