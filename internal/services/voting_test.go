package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/amontoya/webawards/internal/logger"
	"github.com/amontoya/webawards/internal/models"
	"github.com/amontoya/webawards/internal/repository"
	"github.com/amontoya/webawards/internal/testutil"
)

func testLogger() logger.Logger {
	return logger.NewWithWriter(io.Discard, slog.LevelError)
}

func newVotingEnv(t *testing.T) (*VotingService, *repository.Repository) {
	t.Helper()
	repo := testutil.NewTestRepository(t)
	log := testLogger()
	svc := NewVotingService(log, repo, NewConfigService(log, repo))
	return svc, repo
}

func addTeam(t *testing.T, repo *repository.Repository, name string, participates bool) int {
	t.Helper()
	id, err := repo.CreateTeam(context.Background(), models.Team{GroupName: name, Participates: participates})
	if err != nil {
		t.Fatalf("CreateTeam failed: %v", err)
	}
	return int(id)
}

func addStudent(t *testing.T, repo *repository.Repository, email string) models.VoterRef {
	t.Helper()
	id, err := repo.CreateStudent(context.Background(), "Student", email, "hash", nil)
	if err != nil {
		t.Fatalf("CreateStudent failed: %v", err)
	}
	return models.VoterRef{Kind: models.KindStudent, ID: int(id)}
}

func setWindow(t *testing.T, repo *repository.Repository, cfg models.VotingConfig) {
	t.Helper()
	if err := repo.UpdateConfig(context.Background(), cfg); err != nil {
		t.Fatalf("UpdateConfig failed: %v", err)
	}
}

func openWindow(t *testing.T, repo *repository.Repository) {
	t.Helper()
	setWindow(t, repo, models.VotingConfig{VotingDeadline: time.Now().Add(time.Hour)})
}

func TestCastVote_Success(t *testing.T) {
	svc, repo := newVotingEnv(t)
	ctx := context.Background()
	openWindow(t, repo)
	teamID := addTeam(t, repo, "ws-1", true)
	voter := addStudent(t, repo, "ana@example.com")

	vote, err := svc.CastVote(ctx, voter, teamID)
	if err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}
	if vote.TeamID != teamID || vote.Voter != voter {
		t.Errorf("unexpected vote: %+v", vote)
	}

	status, err := svc.Status(ctx, voter)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if status.VotesUsed != 1 || status.VotesRemaining != 2 {
		t.Errorf("expected 1 used / 2 remaining, got %+v", status)
	}
}

func TestCastVote_UnknownRole(t *testing.T) {
	svc, repo := newVotingEnv(t)
	openWindow(t, repo)

	_, err := svc.CastVote(context.Background(), models.VoterRef{Kind: "ghost", ID: 1}, 1)
	if err != ErrRoleNotPermitted {
		t.Errorf("expected ErrRoleNotPermitted, got %v", err)
	}
}

func TestCastVote_QuotaExhausted(t *testing.T) {
	svc, repo := newVotingEnv(t)
	ctx := context.Background()
	openWindow(t, repo)
	voter := addStudent(t, repo, "ana@example.com")

	for i := 0; i < VoteQuota; i++ {
		teamID := addTeam(t, repo, "ws-"+string(rune('a'+i)), true)
		if _, err := svc.CastVote(ctx, voter, teamID); err != nil {
			t.Fatalf("CastVote %d failed: %v", i, err)
		}
	}

	extra := addTeam(t, repo, "ws-extra", true)
	if _, err := svc.CastVote(ctx, voter, extra); err != ErrQuotaExceeded {
		t.Errorf("expected ErrQuotaExceeded, got %v", err)
	}
}

// A voter at the quota re-voting an already-voted team must be told
// about the quota, not the duplicate: the checks run in a fixed order.
func TestCastVote_QuotaCheckedBeforeDuplicate(t *testing.T) {
	svc, repo := newVotingEnv(t)
	ctx := context.Background()
	openWindow(t, repo)
	voter := addStudent(t, repo, "ana@example.com")

	var first int
	for i := 0; i < VoteQuota; i++ {
		teamID := addTeam(t, repo, "ws-"+string(rune('a'+i)), true)
		if i == 0 {
			first = teamID
		}
		if _, err := svc.CastVote(ctx, voter, teamID); err != nil {
			t.Fatalf("CastVote %d failed: %v", i, err)
		}
	}

	if _, err := svc.CastVote(ctx, voter, first); err != ErrQuotaExceeded {
		t.Errorf("expected ErrQuotaExceeded, got %v", err)
	}
}

func TestCastVote_Duplicate(t *testing.T) {
	svc, repo := newVotingEnv(t)
	ctx := context.Background()
	openWindow(t, repo)
	teamID := addTeam(t, repo, "ws-1", true)
	voter := addStudent(t, repo, "ana@example.com")

	if _, err := svc.CastVote(ctx, voter, teamID); err != nil {
		t.Fatalf("first CastVote failed: %v", err)
	}
	if _, err := svc.CastVote(ctx, voter, teamID); err != ErrDuplicateVote {
		t.Errorf("expected ErrDuplicateVote, got %v", err)
	}
}

// A duplicate on a team that has since been withdrawn still reports
// the duplicate, because that check comes first.
func TestCastVote_DuplicateBeforeParticipation(t *testing.T) {
	svc, repo := newVotingEnv(t)
	ctx := context.Background()
	openWindow(t, repo)
	teamID := addTeam(t, repo, "ws-1", true)
	voter := addStudent(t, repo, "ana@example.com")

	if _, err := svc.CastVote(ctx, voter, teamID); err != nil {
		t.Fatalf("first CastVote failed: %v", err)
	}

	team, err := repo.GetTeam(ctx, teamID)
	if err != nil {
		t.Fatalf("GetTeam failed: %v", err)
	}
	team.Participates = false
	if err := repo.UpdateTeam(ctx, teamID, *team); err != nil {
		t.Fatalf("UpdateTeam failed: %v", err)
	}

	if _, err := svc.CastVote(ctx, voter, teamID); err != ErrDuplicateVote {
		t.Errorf("expected ErrDuplicateVote, got %v", err)
	}
}

func TestCastVote_TeamNotFound(t *testing.T) {
	svc, repo := newVotingEnv(t)
	openWindow(t, repo)
	voter := addStudent(t, repo, "ana@example.com")

	if _, err := svc.CastVote(context.Background(), voter, 404); err != ErrTeamNotFound {
		t.Errorf("expected ErrTeamNotFound, got %v", err)
	}
}

func TestCastVote_TeamNotParticipating(t *testing.T) {
	svc, repo := newVotingEnv(t)
	openWindow(t, repo)
	teamID := addTeam(t, repo, "ws-1", false)
	voter := addStudent(t, repo, "ana@example.com")

	if _, err := svc.CastVote(context.Background(), voter, teamID); err != ErrTeamNotParticipating {
		t.Errorf("expected ErrTeamNotParticipating, got %v", err)
	}
}

// The team checks come before the window check: an unknown team is
// reported even when voting is closed.
func TestCastVote_TeamCheckedBeforeWindow(t *testing.T) {
	svc, repo := newVotingEnv(t)
	setWindow(t, repo, models.VotingConfig{VotingDeadline: time.Now().Add(-time.Hour)})
	voter := addStudent(t, repo, "ana@example.com")

	if _, err := svc.CastVote(context.Background(), voter, 404); err != ErrTeamNotFound {
		t.Errorf("expected ErrTeamNotFound, got %v", err)
	}
}

func TestCastVote_WindowRejections(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		cfg  models.VotingConfig
		want error
	}{
		{
			"deadline passed",
			models.VotingConfig{VotingDeadline: now.Add(-time.Hour)},
			ErrVotingClosed,
		},
		{
			"paused",
			models.VotingConfig{VotingDeadline: now.Add(time.Hour), VotingPaused: true},
			ErrVotingPaused,
		},
		{
			"not started",
			models.VotingConfig{VotingDeadline: now.Add(48 * time.Hour), VotingStartDate: tp(now.Add(time.Hour))},
			ErrVotingNotStarted,
		},
		{
			"data loading",
			models.VotingConfig{
				VotingDeadline:       now.Add(time.Hour),
				DataLoadingStartDate: tp(now.Add(-time.Hour)),
				DataLoadingEndDate:   tp(now.Add(time.Hour)),
			},
			ErrDataLoadingPeriod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newVotingEnv(t)
			setWindow(t, repo, tt.cfg)
			teamID := addTeam(t, repo, "ws-1", true)
			voter := addStudent(t, repo, "ana@example.com")

			if _, err := svc.CastVote(context.Background(), voter, teamID); err != tt.want {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestMyVotes(t *testing.T) {
	svc, repo := newVotingEnv(t)
	ctx := context.Background()
	openWindow(t, repo)
	teamID := addTeam(t, repo, "ws-1", true)
	voter := addStudent(t, repo, "ana@example.com")

	if _, err := svc.CastVote(ctx, voter, teamID); err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}

	votes, err := svc.MyVotes(ctx, voter)
	if err != nil {
		t.Fatalf("MyVotes failed: %v", err)
	}
	if len(votes) != 1 || votes[0].TeamID != teamID || votes[0].GroupName != "ws-1" {
		t.Errorf("unexpected votes: %+v", votes)
	}
}

// ==================== Visibility Tests ====================

func TestVisibleCounts_HiddenWithoutOwnVote(t *testing.T) {
	svc, repo := newVotingEnv(t)
	openWindow(t, repo)
	addTeam(t, repo, "ws-1", true)
	voter := addStudent(t, repo, "ana@example.com")

	result, err := svc.VisibleCounts(context.Background(), voter)
	if err != nil {
		t.Fatalf("VisibleCounts failed: %v", err)
	}
	if result.ShowCounts {
		t.Error("expected counts hidden before the voter's first vote")
	}
	if result.Counts == nil || len(result.Counts) != 0 {
		t.Errorf("expected empty counts slice, got %v", result.Counts)
	}
}

func TestVisibleCounts_ShownAfterOwnVote(t *testing.T) {
	svc, repo := newVotingEnv(t)
	ctx := context.Background()
	openWindow(t, repo)
	teamID := addTeam(t, repo, "ws-1", true)
	voter := addStudent(t, repo, "ana@example.com")

	if _, err := svc.CastVote(ctx, voter, teamID); err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}

	result, err := svc.VisibleCounts(ctx, voter)
	if err != nil {
		t.Fatalf("VisibleCounts failed: %v", err)
	}
	if !result.ShowCounts {
		t.Error("expected counts shown after casting a vote")
	}
	if len(result.Counts) != 1 || result.Counts[0].VoteCount != 1 {
		t.Errorf("unexpected counts: %+v", result.Counts)
	}
}

func TestVisibleCounts_ShownToEveryoneAfterDeadline(t *testing.T) {
	svc, repo := newVotingEnv(t)
	setWindow(t, repo, models.VotingConfig{VotingDeadline: time.Now().Add(-time.Hour)})
	addTeam(t, repo, "ws-1", true)
	voter := addStudent(t, repo, "ana@example.com")

	result, err := svc.VisibleCounts(context.Background(), voter)
	if err != nil {
		t.Fatalf("VisibleCounts failed: %v", err)
	}
	if !result.ShowCounts {
		t.Error("expected counts disclosed to everyone after the deadline")
	}
}

func TestVisibleCounts_HiddenDuringDataLoading(t *testing.T) {
	svc, repo := newVotingEnv(t)
	now := time.Now()
	// Data loading hides the tally even when the deadline has passed
	setWindow(t, repo, models.VotingConfig{
		VotingDeadline:       now.Add(-time.Hour),
		DataLoadingStartDate: tp(now.Add(-time.Hour)),
		DataLoadingEndDate:   tp(now.Add(time.Hour)),
	})
	addTeam(t, repo, "ws-1", true)
	voter := addStudent(t, repo, "ana@example.com")

	result, err := svc.VisibleCounts(context.Background(), voter)
	if err != nil {
		t.Fatalf("VisibleCounts failed: %v", err)
	}
	if result.ShowCounts {
		t.Error("expected counts hidden during the data loading window")
	}
}
