package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/amontoya/webawards/internal/errors"
	"github.com/amontoya/webawards/internal/logger"
	"github.com/amontoya/webawards/internal/models"
	"github.com/amontoya/webawards/internal/repository"
)

// TeamService handles team-related business logic
type TeamService struct {
	log  logger.Logger
	repo repository.TeamRepository
}

// NewTeamService creates a new TeamService
func NewTeamService(log logger.Logger, repo repository.TeamRepository) *TeamService {
	return &TeamService{log: log, repo: repo}
}

// ListPublic returns participating teams with their rosters. The order
// is shuffled per request so early list positions confer no advantage.
func (s *TeamService) ListPublic(ctx context.Context) ([]models.TeamWithRoster, error) {
	teams, err := s.repo.ListParticipatingTeams(ctx)
	if err != nil {
		return nil, err
	}
	return s.withRosters(ctx, teams)
}

// ListAll returns every team, participating or not, with rosters
func (s *TeamService) ListAll(ctx context.Context) ([]models.TeamWithRoster, error) {
	teams, err := s.repo.ListTeams(ctx)
	if err != nil {
		return nil, err
	}
	return s.withRosters(ctx, teams)
}

// ListMentored returns the teams assigned to one helper, with rosters
func (s *TeamService) ListMentored(ctx context.Context, helperID int) ([]models.TeamWithRoster, error) {
	teams, err := s.repo.ListTeams(ctx)
	if err != nil {
		return nil, err
	}
	mine := make([]models.Team, 0, len(teams))
	for _, t := range teams {
		if t.HelperID != nil && *t.HelperID == helperID {
			mine = append(mine, t)
		}
	}
	return s.withRosters(ctx, mine)
}

// Get returns one team with its roster
func (s *TeamService) Get(ctx context.Context, id int) (*models.TeamWithRoster, error) {
	team, err := s.repo.GetTeam(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	full, err := s.withRosters(ctx, []models.Team{*team})
	if err != nil {
		return nil, err
	}
	return &full[0], nil
}

// Create validates and stores a new team
func (s *TeamService) Create(ctx context.Context, team models.Team) (*models.Team, error) {
	team.GroupName = strings.TrimSpace(team.GroupName)
	if team.GroupName == "" {
		return nil, errors.Validation("group name is required")
	}
	if team.Category != "" && !models.ValidCategory(team.Category) {
		return nil, errors.Validationf("unknown category: %s", team.Category)
	}

	id, err := s.repo.CreateTeam(ctx, team)
	if err != nil {
		if stderrors.Is(err, repository.ErrDuplicate) {
			return nil, errors.Conflictf("a team named %q already exists", team.GroupName)
		}
		return nil, err
	}
	team.ID = int(id)

	s.log.Info("Team created", "team_id", team.ID, "group_name", team.GroupName)
	return &team, nil
}

// Update replaces a team's attributes (admin only)
func (s *TeamService) Update(ctx context.Context, id int, team models.Team) (*models.Team, error) {
	team.GroupName = strings.TrimSpace(team.GroupName)
	if team.GroupName == "" {
		return nil, errors.Validation("group name is required")
	}
	if team.Category != "" && !models.ValidCategory(team.Category) {
		return nil, errors.Validationf("unknown category: %s", team.Category)
	}

	if err := s.repo.UpdateTeam(ctx, id, team); err != nil {
		switch {
		case stderrors.Is(err, repository.ErrNotFound):
			return nil, ErrTeamNotFound
		case stderrors.Is(err, repository.ErrDuplicate):
			return nil, errors.Conflictf("a team named %q already exists", team.GroupName)
		}
		return nil, err
	}
	team.ID = id
	return &team, nil
}

// PresentationUpdate holds the fields a helper may edit on their own
// team. Nil fields are left unchanged.
type PresentationUpdate struct {
	DisplayName   *string
	AppName       *string
	DeployURL     *string
	VideoURL      *string
	ScreenshotURL *string
	Category      *string
	Description   *string
}

// UpdatePresentation lets a helper edit the showcase fields of the team
// they are assigned to. Group name, participation and helper assignment
// stay admin-only.
func (s *TeamService) UpdatePresentation(ctx context.Context, helperID, teamID int, upd PresentationUpdate) (*models.Team, error) {
	team, err := s.repo.GetTeam(ctx, teamID)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	if team.HelperID == nil || *team.HelperID != helperID {
		return nil, errors.Forbidden("you can only edit your own team")
	}

	if upd.DisplayName != nil {
		team.DisplayName = *upd.DisplayName
	}
	if upd.AppName != nil {
		team.AppName = *upd.AppName
	}
	if upd.DeployURL != nil {
		team.DeployURL = *upd.DeployURL
	}
	if upd.VideoURL != nil {
		team.VideoURL = *upd.VideoURL
	}
	if upd.ScreenshotURL != nil {
		team.ScreenshotURL = *upd.ScreenshotURL
	}
	if upd.Category != nil {
		if *upd.Category != "" && !models.ValidCategory(*upd.Category) {
			return nil, errors.Validationf("unknown category: %s", *upd.Category)
		}
		team.Category = *upd.Category
	}
	if upd.Description != nil {
		team.Description = *upd.Description
	}

	if err := s.repo.UpdateTeam(ctx, teamID, *team); err != nil {
		return nil, err
	}
	return team, nil
}

// Delete removes a team. Its votes and favorites go with it.
func (s *TeamService) Delete(ctx context.Context, id int) error {
	if err := s.repo.DeleteTeam(ctx, id); err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return ErrTeamNotFound
		}
		return err
	}
	s.log.Info("Team deleted", "team_id", id)
	return nil
}

// GenerateQRImage generates a QR code PNG pointing at the team's
// deployed app, for printing next to the project stand.
func (s *TeamService) GenerateQRImage(ctx context.Context, id int) ([]byte, error) {
	team, err := s.repo.GetTeam(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	if team.DeployURL == "" {
		return nil, errors.Validation("team has no deploy URL configured")
	}
	return qrcode.Encode(team.DeployURL, qrcode.Medium, 256)
}

func (s *TeamService) withRosters(ctx context.Context, teams []models.Team) ([]models.TeamWithRoster, error) {
	ids := make([]int, len(teams))
	for i, t := range teams {
		ids[i] = t.ID
	}
	students, helpers, err := s.repo.GetTeamRosters(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("loading rosters: %w", err)
	}

	out := make([]models.TeamWithRoster, len(teams))
	for i, t := range teams {
		roster := students[t.ID]
		if roster == nil {
			roster = []models.TeamMember{}
		}
		out[i] = models.TeamWithRoster{Team: t, Students: roster, Helper: helpers[t.ID]}
	}
	return out, nil
}
