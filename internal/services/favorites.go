package services

import (
	"context"
	stderrors "errors"

	"github.com/amontoya/webawards/internal/logger"
	"github.com/amontoya/webawards/internal/models"
	"github.com/amontoya/webawards/internal/repository"
)

// FavoriteServiceRepository defines the repository methods needed by FavoriteService
type FavoriteServiceRepository interface {
	repository.FavoriteRepository
	GetTeam(ctx context.Context, id int) (*models.Team, error)
}

// FavoriteService handles team bookmarks. Favorites are independent of
// the ballot: a voter may favorite any number of teams at any time.
type FavoriteService struct {
	log  logger.Logger
	repo FavoriteServiceRepository
}

// NewFavoriteService creates a new FavoriteService
func NewFavoriteService(log logger.Logger, repo FavoriteServiceRepository) *FavoriteService {
	return &FavoriteService{log: log, repo: repo}
}

// Toggle flips the favorite state for (voter, team) and reports the
// resulting state.
func (s *FavoriteService) Toggle(ctx context.Context, voter models.VoterRef, teamID int) (bool, error) {
	if _, err := s.repo.GetTeam(ctx, teamID); err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return false, ErrTeamNotFound
		}
		return false, err
	}

	exists, err := s.repo.FindFavorite(ctx, voter, teamID)
	if err != nil {
		return false, err
	}
	if exists {
		if err := s.repo.DeleteFavorite(ctx, voter, teamID); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := s.repo.InsertFavorite(ctx, voter, teamID); err != nil {
		// A concurrent toggle may have inserted it first.
		if stderrors.Is(err, repository.ErrDuplicate) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

// ListMine returns the team ids the voter has favorited
func (s *FavoriteService) ListMine(ctx context.Context, voter models.VoterRef) ([]int, error) {
	ids, err := s.repo.ListFavoriteTeamIDs(ctx, voter)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int{}
	}
	return ids, nil
}
