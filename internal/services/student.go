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

const minPasswordLength = 6

// StudentService handles student account management
type StudentService struct {
	log  logger.Logger
	repo repository.StudentRepository
}

// NewStudentService creates a new StudentService
func NewStudentService(log logger.Logger, repo repository.StudentRepository) *StudentService {
	return &StudentService{log: log, repo: repo}
}

// List returns all students
func (s *StudentService) List(ctx context.Context) ([]models.Student, error) {
	return s.repo.ListStudents(ctx)
}

// Get returns one student
func (s *StudentService) Get(ctx context.Context, id int) (*models.Student, error) {
	student, err := s.repo.GetStudent(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFound("student not found")
		}
		return nil, err
	}
	return student, nil
}

// Create registers a new student account
func (s *StudentService) Create(ctx context.Context, name, email, password string, teamID *int) (*models.Student, error) {
	name, email = strings.TrimSpace(name), strings.ToLower(strings.TrimSpace(email))
	if err := validateAccount(name, email, password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	id, err := s.repo.CreateStudent(ctx, name, email, hash, teamID)
	if err != nil {
		if stderrors.Is(err, repository.ErrDuplicate) {
			return nil, errors.Conflictf("an account with email %s already exists", email)
		}
		return nil, err
	}

	s.log.Info("Student created", "student_id", id, "email", email)
	return s.Get(ctx, int(id))
}

// Update changes a student's name, email, team assignment or avatar
func (s *StudentService) Update(ctx context.Context, id int, name, email string, teamID *int, avatarURL *string) (*models.Student, error) {
	name, email = strings.TrimSpace(name), strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, errors.Validation("name and email are required")
	}
	if err := s.repo.UpdateStudent(ctx, id, name, email, teamID, avatarURL); err != nil {
		switch {
		case stderrors.Is(err, repository.ErrNotFound):
			return nil, errors.NotFound("student not found")
		case stderrors.Is(err, repository.ErrDuplicate):
			return nil, errors.Conflictf("an account with email %s already exists", email)
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

// MarkIntroSeen records that the student dismissed the intro screen
func (s *StudentService) MarkIntroSeen(ctx context.Context, id int) error {
	if err := s.repo.SetStudentIntroSeen(ctx, id); err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return errors.NotFound("student not found")
		}
		return err
	}
	return nil
}

// Delete removes a student along with their votes and favorites
func (s *StudentService) Delete(ctx context.Context, id int) error {
	if err := s.repo.DeleteStudent(ctx, id); err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return errors.NotFound("student not found")
		}
		return err
	}
	s.log.Info("Student deleted", "student_id", id)
	return nil
}

func validateAccount(name, email, password string) error {
	if name == "" || email == "" {
		return errors.Validation("name and email are required")
	}
	if !strings.Contains(email, "@") {
		return errors.Validation("email is not valid")
	}
	if len(password) < minPasswordLength {
		return errors.Validationf("password must be at least %d characters", minPasswordLength)
	}
	return nil
}
