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

// AdminServiceRepository defines the repository methods needed by AdminService
type AdminServiceRepository interface {
	repository.AdminRepository
	repository.VoteRepository
}

// AdminService handles admin accounts and the destructive operations
// that require a password confirmation.
type AdminService struct {
	log  logger.Logger
	repo AdminServiceRepository
}

// NewAdminService creates a new AdminService
func NewAdminService(log logger.Logger, repo AdminServiceRepository) *AdminService {
	return &AdminService{log: log, repo: repo}
}

// List returns all admins
func (s *AdminService) List(ctx context.Context) ([]models.Admin, error) {
	return s.repo.ListAdmins(ctx)
}

// Get returns one admin
func (s *AdminService) Get(ctx context.Context, id int) (*models.Admin, error) {
	admin, err := s.repo.GetAdmin(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFound("admin not found")
		}
		return nil, err
	}
	return admin, nil
}

// Create registers a new admin account
func (s *AdminService) Create(ctx context.Context, name, email, password string) (*models.Admin, error) {
	name, email = strings.TrimSpace(name), strings.ToLower(strings.TrimSpace(email))
	if err := validateAccount(name, email, password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	id, err := s.repo.CreateAdmin(ctx, name, email, hash)
	if err != nil {
		if stderrors.Is(err, repository.ErrDuplicate) {
			return nil, errors.Conflictf("an account with email %s already exists", email)
		}
		return nil, err
	}

	s.log.Info("Admin created", "admin_id", id, "email", email)
	return s.Get(ctx, int(id))
}

// Update changes an admin's name, email or avatar
func (s *AdminService) Update(ctx context.Context, id int, name, email string, avatarURL *string) (*models.Admin, error) {
	name, email = strings.TrimSpace(name), strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, errors.Validation("name and email are required")
	}
	if err := s.repo.UpdateAdmin(ctx, id, name, email, avatarURL); err != nil {
		switch {
		case stderrors.Is(err, repository.ErrNotFound):
			return nil, errors.NotFound("admin not found")
		case stderrors.Is(err, repository.ErrDuplicate):
			return nil, errors.Conflictf("an account with email %s already exists", email)
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

// VerifyPassword re-checks an admin's own password and reports how many
// votes they have left. Used by the dashboard before showing the
// destructive-action controls.
func (s *AdminService) VerifyPassword(ctx context.Context, adminID int, password string) (int, error) {
	if err := s.reauthenticate(ctx, adminID, password); err != nil {
		return 0, err
	}
	used, err := s.repo.CountVotes(ctx, models.VoterRef{Kind: models.KindAdmin, ID: adminID})
	if err != nil {
		return 0, err
	}
	remaining := VoteQuota - used
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// Delete removes another admin account. The acting admin must confirm
// their own password, and cannot delete themselves.
func (s *AdminService) Delete(ctx context.Context, actingID, targetID int, password string) error {
	if actingID == targetID {
		return ErrSelfDelete
	}
	if err := s.reauthenticate(ctx, actingID, password); err != nil {
		return err
	}
	if err := s.repo.DeleteAdmin(ctx, targetID); err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return errors.NotFound("admin not found")
		}
		return err
	}
	s.log.Info("Admin deleted", "admin_id", targetID, "by", actingID)
	return nil
}

// DeleteVote removes a single ballot by id
func (s *AdminService) DeleteVote(ctx context.Context, id int) error {
	if err := s.repo.DeleteVote(ctx, id); err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return errors.NotFound("vote not found")
		}
		return err
	}
	s.log.Info("Vote deleted", "vote_id", id)
	return nil
}

// ResetAllVotes wipes the entire ledger after a password confirmation.
// Returns the number of votes removed.
func (s *AdminService) ResetAllVotes(ctx context.Context, actingID int, password string) (int64, error) {
	if err := s.reauthenticate(ctx, actingID, password); err != nil {
		return 0, err
	}
	removed, err := s.repo.DeleteAllVotes(ctx)
	if err != nil {
		return 0, err
	}
	s.log.Warn("All votes reset", "removed", removed, "by", actingID)
	return removed, nil
}

func (s *AdminService) reauthenticate(ctx context.Context, adminID int, password string) error {
	if password == "" {
		return errors.Validation("password confirmation is required")
	}
	admin, err := s.repo.GetAdmin(ctx, adminID)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return errors.Unauthorized("account no longer exists")
		}
		return err
	}
	if !auth.CheckPassword(admin.PasswordHash, password) {
		return ErrPasswordMismatch
	}
	return nil
}
