package services

import (
	"context"

	"github.com/amontoya/webawards/internal/logger"
	"github.com/amontoya/webawards/internal/models"
	"github.com/amontoya/webawards/internal/repository"
)

// maxPodiumTeams caps the podium, except that a tie at the cut keeps
// every team sharing the boundary vote count on the board.
const maxPodiumTeams = 5

// ResultsServiceRepository defines the repository methods needed by ResultsService
type ResultsServiceRepository interface {
	repository.VoteRepository
	GetTeamRosters(ctx context.Context, teamIDs []int) (map[int][]models.TeamMember, map[int]*models.TeamMember, error)
}

// ResultsService handles vote aggregation and podium computation
type ResultsService struct {
	log  logger.Logger
	repo ResultsServiceRepository
}

// NewResultsService creates a new ResultsService
func NewResultsService(log logger.Logger, repo ResultsServiceRepository) *ResultsService {
	return &ResultsService{log: log, repo: repo}
}

// PodiumEntry is one ranked team on the podium
type PodiumEntry struct {
	Position      int                 `json:"position"`
	TeamID        int                 `json:"team_id"`
	GroupName     string              `json:"group_name"`
	DisplayName   string              `json:"display_name,omitempty"`
	AppName       string              `json:"app_name,omitempty"`
	ScreenshotURL string              `json:"screenshot_url,omitempty"`
	VideoURL      string              `json:"video_url,omitempty"`
	DeployURL     string              `json:"deploy_url,omitempty"`
	Description   string              `json:"description,omitempty"`
	Category      string              `json:"category,omitempty"`
	VoteCount     int                 `json:"vote_count"`
	Students      []models.TeamMember `json:"students"`
	Helper        *models.TeamMember  `json:"helper"`
}

// VoterVotes groups one voter's ballots for the admin dashboard
type VoterVotes struct {
	VoterID    int         `json:"voter_id"`
	VoterName  string      `json:"voter_name"`
	VoterEmail string      `json:"voter_email"`
	Votes      []VoteEntry `json:"votes"`
}

// VoteEntry is one ballot inside a VoterVotes group
type VoteEntry struct {
	VoteID      int    `json:"vote_id"`
	TeamID      int    `json:"team_id"`
	GroupName   string `json:"group_name"`
	DisplayName string `json:"display_name,omitempty"`
	AppName     string `json:"app_name,omitempty"`
}

// VoteCounts returns the full per-team tally of participating teams,
// ordered by vote count descending with team id as the stable
// tiebreaker. Teams without votes appear with a count of zero.
func (s *ResultsService) VoteCounts(ctx context.Context) ([]models.TeamCount, error) {
	return s.repo.CountVotesByTeam(ctx)
}

// Podium computes the ranked podium using competition ranking: tied
// teams share a position and the next distinct count lands at
// 1 + number of teams ahead of it. Only teams with at least one vote
// qualify.
func (s *ResultsService) Podium(ctx context.Context) ([]PodiumEntry, error) {
	rows, err := s.repo.PodiumRows(ctx)
	if err != nil {
		return nil, err
	}

	podium := make([]PodiumEntry, 0, maxPodiumTeams)
	position := 1
	previousCount := -1
	for i, row := range rows {
		if previousCount != -1 && row.VoteCount < previousCount {
			position = i + 1
		}
		if len(podium) >= maxPodiumTeams && row.VoteCount < previousCount {
			break
		}
		podium = append(podium, PodiumEntry{
			Position:      position,
			TeamID:        row.TeamID,
			GroupName:     row.GroupName,
			DisplayName:   row.DisplayName,
			AppName:       row.AppName,
			ScreenshotURL: row.ScreenshotURL,
			VideoURL:      row.VideoURL,
			DeployURL:     row.DeployURL,
			Description:   row.Description,
			Category:      row.Category,
			VoteCount:     row.VoteCount,
		})
		previousCount = row.VoteCount
	}

	if len(podium) > 0 {
		ids := make([]int, len(podium))
		for i, entry := range podium {
			ids[i] = entry.TeamID
		}
		students, helpers, err := s.repo.GetTeamRosters(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range podium {
			roster := students[podium[i].TeamID]
			if roster == nil {
				roster = []models.TeamMember{}
			}
			podium[i].Students = roster
			podium[i].Helper = helpers[podium[i].TeamID]
		}
	}

	return podium, nil
}

// VotesByKind returns every ballot cast by voters of one kind, grouped
// per voter in a stable order.
func (s *ResultsService) VotesByKind(ctx context.Context, kind models.VoterKind) ([]VoterVotes, error) {
	if !kind.Valid() {
		return nil, ErrRoleNotPermitted
	}
	rows, err := s.repo.ListVotesByKind(ctx, kind)
	if err != nil {
		return nil, err
	}

	groups := make([]VoterVotes, 0)
	index := make(map[int]int)
	for _, row := range rows {
		i, ok := index[row.VoterID]
		if !ok {
			i = len(groups)
			index[row.VoterID] = i
			groups = append(groups, VoterVotes{
				VoterID:    row.VoterID,
				VoterName:  row.VoterName,
				VoterEmail: row.VoterEmail,
				Votes:      []VoteEntry{},
			})
		}
		groups[i].Votes = append(groups[i].Votes, VoteEntry{
			VoteID:      row.VoteID,
			TeamID:      row.TeamID,
			GroupName:   row.GroupName,
			DisplayName: row.DisplayName,
			AppName:     row.AppName,
		})
	}
	return groups, nil
}
