package services

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/amontoya/webawards/internal/logger"
	"github.com/amontoya/webawards/internal/models"
	"github.com/amontoya/webawards/internal/repository"
)

// VoteQuota is the number of votes each voter may cast.
const VoteQuota = 3

// VotingServiceRepository defines the repository methods needed by VotingService
type VotingServiceRepository interface {
	repository.VoteRepository
	GetTeam(ctx context.Context, id int) (*models.Team, error)
}

// VotingService handles vote-related business logic
type VotingService struct {
	log    logger.Logger
	repo   VotingServiceRepository
	config ConfigServicer
}

// NewVotingService creates a new VotingService
func NewVotingService(log logger.Logger, repo VotingServiceRepository, config ConfigServicer) *VotingService {
	return &VotingService{log: log, repo: repo, config: config}
}

// VoteStatus describes a voter's remaining budget
type VoteStatus struct {
	VotesUsed      int  `json:"votes_used"`
	VotesRemaining int  `json:"votes_remaining"`
	CanVote        bool `json:"can_vote"`
}

// VisibleCounts is the tally a voter is allowed to see
type VisibleCounts struct {
	ShowCounts bool               `json:"show_counts"`
	Counts     []models.TeamCount `json:"counts"`
}

// CastVote validates and records a single vote. The checks run in a
// fixed order so that a ballot failing several rules is always rejected
// for the same reason: role, quota, duplicate, team existence, team
// participation, then the voting window.
func (s *VotingService) CastVote(ctx context.Context, voter models.VoterRef, teamID int) (*models.Vote, error) {
	if !voter.Kind.Valid() {
		return nil, ErrRoleNotPermitted
	}

	used, err := s.repo.CountVotes(ctx, voter)
	if err != nil {
		return nil, err
	}
	if used >= VoteQuota {
		return nil, ErrQuotaExceeded
	}

	_, err = s.repo.FindVote(ctx, voter, teamID)
	if err == nil {
		return nil, ErrDuplicateVote
	}
	if !stderrors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	team, err := s.repo.GetTeam(ctx, teamID)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	if !team.Participates {
		return nil, ErrTeamNotParticipating
	}

	window, err := s.config.Window(ctx)
	if err != nil {
		return nil, err
	}
	if !window.Open {
		return nil, window.RejectionError()
	}

	vote, err := s.repo.InsertVote(ctx, voter, teamID, VoteQuota)
	if err != nil {
		// Concurrent ballots can slip past the checks above; the
		// insert re-validates inside a transaction.
		switch {
		case stderrors.Is(err, repository.ErrDuplicate):
			return nil, ErrDuplicateVote
		case stderrors.Is(err, repository.ErrQuotaExceeded):
			return nil, ErrQuotaExceeded
		}
		return nil, err
	}

	s.log.Info("Vote recorded", "voter_kind", voter.Kind, "voter_id", voter.ID, "team_id", teamID)
	return vote, nil
}

// MyVotes returns the votes the voter has cast, most recent first
func (s *VotingService) MyVotes(ctx context.Context, voter models.VoterRef) ([]repository.VoteWithTeam, error) {
	return s.repo.ListVotesByVoter(ctx, voter)
}

// Status reports how many votes the voter has left
func (s *VotingService) Status(ctx context.Context, voter models.VoterRef) (*VoteStatus, error) {
	used, err := s.repo.CountVotes(ctx, voter)
	if err != nil {
		return nil, err
	}
	remaining := VoteQuota - used
	if remaining < 0 {
		remaining = 0
	}
	window, err := s.config.Window(ctx)
	if err != nil {
		return nil, err
	}
	return &VoteStatus{
		VotesUsed:      used,
		VotesRemaining: remaining,
		CanVote:        window.Open && remaining > 0,
	}, nil
}

// VisibleCounts returns the public tally, filtered by the disclosure
// rules: nothing during the data-loading window, everything once the
// deadline has passed, and otherwise only to voters who have cast at
// least one vote of their own.
func (s *VotingService) VisibleCounts(ctx context.Context, voter models.VoterRef) (*VisibleCounts, error) {
	cfg, err := s.config.Get(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()

	state := EvaluateWindow(*cfg, now)
	if state.InDataLoading {
		return &VisibleCounts{ShowCounts: false, Counts: []models.TeamCount{}}, nil
	}

	show := now.After(cfg.VotingDeadline)
	if !show {
		used, err := s.repo.CountVotes(ctx, voter)
		if err != nil {
			return nil, err
		}
		show = used > 0
	}
	if !show {
		return &VisibleCounts{ShowCounts: false, Counts: []models.TeamCount{}}, nil
	}

	counts, err := s.repo.CountVotesByTeam(ctx)
	if err != nil {
		return nil, err
	}
	return &VisibleCounts{ShowCounts: true, Counts: counts}, nil
}
