package services

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/amontoya/webawards/internal/auth"
	"github.com/amontoya/webawards/internal/errors"
	"github.com/amontoya/webawards/internal/logger"
	"github.com/amontoya/webawards/internal/models"
	"github.com/amontoya/webawards/internal/repository"
)

// HelperService handles helper account management
type HelperService struct {
	log  logger.Logger
	repo repository.HelperRepository
}

// NewHelperService creates a new HelperService
func NewHelperService(log logger.Logger, repo repository.HelperRepository) *HelperService {
	return &HelperService{log: log, repo: repo}
}

// List returns all helpers
func (s *HelperService) List(ctx context.Context) ([]models.Helper, error) {
	return s.repo.ListHelpers(ctx)
}

// Get returns one helper
func (s *HelperService) Get(ctx context.Context, id int) (*models.Helper, error) {
	helper, err := s.repo.GetHelper(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFound("helper not found")
		}
		return nil, err
	}
	return helper, nil
}

// Create registers a new helper account
func (s *HelperService) Create(ctx context.Context, name, email, password string) (*models.Helper, error) {
	name, email = strings.TrimSpace(name), strings.ToLower(strings.TrimSpace(email))
	if err := validateAccount(name, email, password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	id, err := s.repo.CreateHelper(ctx, name, email, hash)
	if err != nil {
		if stderrors.Is(err, repository.ErrDuplicate) {
			return nil, errors.Conflictf("an account with email %s already exists", email)
		}
		return nil, err
	}

	s.log.Info("Helper created", "helper_id", id, "email", email)
	return s.Get(ctx, int(id))
}

// Update changes a helper's name, email or avatar
func (s *HelperService) Update(ctx context.Context, id int, name, email string, avatarURL *string) (*models.Helper, error) {
	name, email = strings.TrimSpace(name), strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, errors.Validation("name and email are required")
	}
	if err := s.repo.UpdateHelper(ctx, id, name, email, avatarURL); err != nil {
		switch {
		case stderrors.Is(err, repository.ErrNotFound):
			return nil, errors.NotFound("helper not found")
		case stderrors.Is(err, repository.ErrDuplicate):
			return nil, errors.Conflictf("an account with email %s already exists", email)
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes a helper. Teams they mentored keep existing with no
// helper assigned.
func (s *HelperService) Delete(ctx context.Context, id int) error {
	if err := s.repo.DeleteHelper(ctx, id); err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return errors.NotFound("helper not found")
		}
		return err
	}
	s.log.Info("Helper deleted", "helper_id", id)
	return nil
}
