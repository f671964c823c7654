package handlers

import (
	"time"

	"github.com/amontoya/webawards/internal/auth"
	"github.com/amontoya/webawards/internal/services"
	"github.com/amontoya/webawards/internal/websocket"
)

// Handlers holds all HTTP handler dependencies
type Handlers struct {
	Identity services.IdentityServicer
	Voting   services.VotingServicer
	Results  services.ResultsServicer
	Team     services.TeamServicer
	Student  services.StudentServicer
	Helper   services.HelperServicer
	Admin    services.AdminServicer
	Config   services.ConfigServicer
	Favorite services.FavoriteServicer
	Tokens   *auth.Manager
	Hub      *websocket.Hub
	Log      HTTPLogger
}

// HTTPLogger is an interface for loggers that support HTTP logging control
type HTTPLogger interface {
	IsHTTPLoggingEnabled() bool
}

// New creates a new Handlers instance with all dependencies
func New(
	identity services.IdentityServicer,
	voting services.VotingServicer,
	results services.ResultsServicer,
	team services.TeamServicer,
	student services.StudentServicer,
	helper services.HelperServicer,
	admin services.AdminServicer,
	config services.ConfigServicer,
	favorite services.FavoriteServicer,
	tokens *auth.Manager,
	hub *websocket.Hub,
	log HTTPLogger,
) *Handlers {
	return &Handlers{
		Identity: identity,
		Voting:   voting,
		Results:  results,
		Team:     team,
		Student:  student,
		Helper:   helper,
		Admin:    admin,
		Config:   config,
		Favorite: favorite,
		Tokens:   tokens,
		Hub:      hub,
		Log:      log,
	}
}

// NoopHTTPLogger is a test logger that always returns false for HTTP logging
type NoopHTTPLogger struct{}

func (NoopHTTPLogger) IsHTTPLoggingEnabled() bool { return false }

// NewForTesting creates a Handlers instance with a throwaway token
// secret and no websocket hub
func NewForTesting(
	identity services.IdentityServicer,
	voting services.VotingServicer,
	results services.ResultsServicer,
	team services.TeamServicer,
	student services.StudentServicer,
	helper services.HelperServicer,
	admin services.AdminServicer,
	config services.ConfigServicer,
	favorite services.FavoriteServicer,
) *Handlers {
	return &Handlers{
		Identity: identity,
		Voting:   voting,
		Results:  results,
		Team:     team,
		Student:  student,
		Helper:   helper,
		Admin:    admin,
		Config:   config,
		Favorite: favorite,
		Tokens:   auth.NewManager("test-secret", time.Hour, nil),
		Log:      NoopHTTPLogger{},
	}
}
