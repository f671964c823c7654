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

// IdentityServiceRepository defines the repository methods needed by IdentityService
type IdentityServiceRepository interface {
	repository.StudentRepository
	repository.HelperRepository
	repository.AdminRepository
}

// IdentityService handles login and profile resolution across the three
// voter kinds
type IdentityService struct {
	log    logger.Logger
	repo   IdentityServiceRepository
	tokens *auth.Manager
}

// NewIdentityService creates a new IdentityService
func NewIdentityService(log logger.Logger, repo IdentityServiceRepository, tokens *auth.Manager) *IdentityService {
	return &IdentityService{log: log, repo: repo, tokens: tokens}
}

// Profile is the public projection of any authenticated account
type Profile struct {
	ID           int              `json:"id"`
	Kind         models.VoterKind `json:"kind"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	AvatarURL    string           `json:"avatar_url,omitempty"`
	TeamID       *int             `json:"team_id,omitempty"`
	HasSeenIntro bool             `json:"has_seen_intro,omitempty"`
}

// LoginResult is a successful login: the signed token plus the profile
type LoginResult struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

// Login checks the email against the three account tables in a fixed
// order (admin, helper, student) and returns a signed token for the
// first match with the right password.
func (s *IdentityService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, errors.Validation("email and password are required")
	}

	if admin, err := s.repo.GetAdminByEmail(ctx, email); err == nil {
		if !auth.CheckPassword(admin.PasswordHash, password) {
			return nil, errors.Unauthorized("invalid credentials")
		}
		return s.login(models.VoterRef{Kind: models.KindAdmin, ID: admin.ID}, Profile{
			ID: admin.ID, Kind: models.KindAdmin, Name: admin.Name,
			Email: admin.Email, AvatarURL: admin.AvatarURL,
		})
	} else if !stderrors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if helper, err := s.repo.GetHelperByEmail(ctx, email); err == nil {
		if !auth.CheckPassword(helper.PasswordHash, password) {
			return nil, errors.Unauthorized("invalid credentials")
		}
		return s.login(models.VoterRef{Kind: models.KindHelper, ID: helper.ID}, Profile{
			ID: helper.ID, Kind: models.KindHelper, Name: helper.Name,
			Email: helper.Email, AvatarURL: helper.AvatarURL,
		})
	} else if !stderrors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if student, err := s.repo.GetStudentByEmail(ctx, email); err == nil {
		if !auth.CheckPassword(student.PasswordHash, password) {
			return nil, errors.Unauthorized("invalid credentials")
		}
		return s.login(models.VoterRef{Kind: models.KindStudent, ID: student.ID}, Profile{
			ID: student.ID, Kind: models.KindStudent, Name: student.Name,
			Email: student.Email, AvatarURL: student.AvatarURL,
			TeamID: student.TeamID, HasSeenIntro: student.HasSeenIntro,
		})
	} else if !stderrors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	return nil, errors.Unauthorized("invalid credentials")
}

func (s *IdentityService) login(voter models.VoterRef, profile Profile) (*LoginResult, error) {
	token, err := s.tokens.Issue(voter)
	if err != nil {
		return nil, err
	}
	s.log.Info("Login", "kind", voter.Kind, "id", voter.ID)
	return &LoginResult{Token: token, User: profile}, nil
}

// Me resolves the profile behind an authenticated voter reference
func (s *IdentityService) Me(ctx context.Context, voter models.VoterRef) (*Profile, error) {
	switch voter.Kind {
	case models.KindAdmin:
		admin, err := s.repo.GetAdmin(ctx, voter.ID)
		if err != nil {
			return nil, err
		}
		return &Profile{ID: admin.ID, Kind: models.KindAdmin, Name: admin.Name,
			Email: admin.Email, AvatarURL: admin.AvatarURL}, nil
	case models.KindHelper:
		helper, err := s.repo.GetHelper(ctx, voter.ID)
		if err != nil {
			return nil, err
		}
		return &Profile{ID: helper.ID, Kind: models.KindHelper, Name: helper.Name,
			Email: helper.Email, AvatarURL: helper.AvatarURL}, nil
	case models.KindStudent:
		student, err := s.repo.GetStudent(ctx, voter.ID)
		if err != nil {
			return nil, err
		}
		return &Profile{ID: student.ID, Kind: models.KindStudent, Name: student.Name,
			Email: student.Email, AvatarURL: student.AvatarURL,
			TeamID: student.TeamID, HasSeenIntro: student.HasSeenIntro}, nil
	}
	return nil, errors.Unauthorized("unknown account type")
}

// UpdateMe lets an authenticated voter change their own name and
// avatar. Email, team assignment and password stay admin-managed.
func (s *IdentityService) UpdateMe(ctx context.Context, voter models.VoterRef, name string, avatarURL *string) (*Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.Validation("name is required")
	}

	var err error
	switch voter.Kind {
	case models.KindAdmin:
		var admin *models.Admin
		if admin, err = s.repo.GetAdmin(ctx, voter.ID); err == nil {
			err = s.repo.UpdateAdmin(ctx, voter.ID, name, admin.Email, avatarURL)
		}
	case models.KindHelper:
		var helper *models.Helper
		if helper, err = s.repo.GetHelper(ctx, voter.ID); err == nil {
			err = s.repo.UpdateHelper(ctx, voter.ID, name, helper.Email, avatarURL)
		}
	case models.KindStudent:
		var student *models.Student
		if student, err = s.repo.GetStudent(ctx, voter.ID); err == nil {
			err = s.repo.UpdateStudent(ctx, voter.ID, name, student.Email, student.TeamID, avatarURL)
		}
	default:
		return nil, errors.Unauthorized("unknown account type")
	}
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.Unauthorized("account no longer exists")
		}
		return nil, err
	}

	s.log.Info("Profile updated", "kind", voter.Kind, "id", voter.ID)
	return s.Me(ctx, voter)
}
