package services

import (
	"context"
	"time"

	"github.com/amontoya/webawards/internal/errors"
	"github.com/amontoya/webawards/internal/logger"
	"github.com/amontoya/webawards/internal/models"
	"github.com/amontoya/webawards/internal/repository"
)

// Broadcaster defines the interface for broadcasting messages to clients
type Broadcaster interface {
	BroadcastWindowStatus(state WindowState, deadline time.Time)
}

// ConfigService handles the voting configuration and window evaluation
type ConfigService struct {
	log         logger.Logger
	repo        repository.ConfigRepository
	broadcaster Broadcaster
}

// NewConfigService creates a new ConfigService
func NewConfigService(log logger.Logger, repo repository.ConfigRepository) *ConfigService {
	return &ConfigService{log: log, repo: repo}
}

// SetBroadcaster sets the broadcaster for sending window updates to clients
func (s *ConfigService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Get returns the current voting configuration
func (s *ConfigService) Get(ctx context.Context) (*models.VotingConfig, error) {
	return s.repo.GetConfig(ctx)
}

// Window evaluates the voting window against the stored configuration.
// The configuration is fetched fresh on every call so that admin updates
// take effect immediately.
func (s *ConfigService) Window(ctx context.Context) (WindowState, error) {
	cfg, err := s.repo.GetConfig(ctx)
	if err != nil {
		return WindowState{}, err
	}
	return EvaluateWindow(*cfg, time.Now()), nil
}

// ConfigUpdate contains the fields an admin may change. Nil fields are
// left untouched; the date pointers distinguish "not provided" from
// "clear this date" via the Clear flags.
type ConfigUpdate struct {
	VotingDeadline       *time.Time
	VotingStartDate      *time.Time
	ClearVotingStartDate bool
	DataLoadingStartDate *time.Time
	DataLoadingEndDate   *time.Time
	ClearDataLoading     bool
	VotingPaused         *bool
}

// Update applies a partial configuration change and broadcasts the
// resulting window state to connected clients.
func (s *ConfigService) Update(ctx context.Context, upd ConfigUpdate) (*models.VotingConfig, error) {
	cfg, err := s.repo.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	if upd.VotingDeadline != nil {
		if upd.VotingDeadline.IsZero() {
			return nil, errors.Validation("voting deadline must be a valid date")
		}
		cfg.VotingDeadline = *upd.VotingDeadline
	}
	if upd.ClearVotingStartDate {
		cfg.VotingStartDate = nil
	} else if upd.VotingStartDate != nil {
		cfg.VotingStartDate = upd.VotingStartDate
	}
	if upd.ClearDataLoading {
		cfg.DataLoadingStartDate = nil
		cfg.DataLoadingEndDate = nil
	} else {
		if upd.DataLoadingStartDate != nil {
			cfg.DataLoadingStartDate = upd.DataLoadingStartDate
		}
		if upd.DataLoadingEndDate != nil {
			cfg.DataLoadingEndDate = upd.DataLoadingEndDate
		}
	}
	if cfg.DataLoadingStartDate != nil && cfg.DataLoadingEndDate != nil &&
		cfg.DataLoadingEndDate.Before(*cfg.DataLoadingStartDate) {
		return nil, errors.Validation("data loading end date must not be before its start date")
	}
	if upd.VotingPaused != nil {
		cfg.VotingPaused = *upd.VotingPaused
	}

	if err := s.repo.UpdateConfig(ctx, *cfg); err != nil {
		return nil, err
	}

	s.log.Info("Voting configuration updated", "deadline", cfg.VotingDeadline, "paused", cfg.VotingPaused)
	s.broadcast(*cfg)
	return cfg, nil
}

// TogglePause flips the pause flag and returns the updated configuration
func (s *ConfigService) TogglePause(ctx context.Context) (*models.VotingConfig, error) {
	cfg, err := s.repo.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	cfg.VotingPaused = !cfg.VotingPaused
	if err := s.repo.UpdateConfig(ctx, *cfg); err != nil {
		return nil, err
	}

	s.log.Info("Voting pause toggled", "paused", cfg.VotingPaused)
	s.broadcast(*cfg)
	return cfg, nil
}

func (s *ConfigService) broadcast(cfg models.VotingConfig) {
	if s.broadcaster == nil {
		return
	}
	s.broadcaster.BroadcastWindowStatus(EvaluateWindow(cfg, time.Now()), cfg.VotingDeadline)
}
