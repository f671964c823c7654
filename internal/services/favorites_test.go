package services

import (
	"context"
	"testing"

	"github.com/amontoya/webawards/internal/repository"
	"github.com/amontoya/webawards/internal/testutil"
)

func newFavoriteEnv(t *testing.T) (*FavoriteService, *repository.Repository) {
	t.Helper()
	repo := testutil.NewTestRepository(t)
	return NewFavoriteService(testLogger(), repo), repo
}

func TestFavoriteToggle(t *testing.T) {
	svc, repo := newFavoriteEnv(t)
	ctx := context.Background()
	teamID := addTeam(t, repo, "ws-1", true)
	voter := addStudent(t, repo, "ana@example.com")

	on, err := svc.Toggle(ctx, voter, teamID)
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if !on {
		t.Error("expected favorite set after first toggle")
	}

	ids, err := svc.ListMine(ctx, voter)
	if err != nil {
		t.Fatalf("ListMine failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != teamID {
		t.Errorf("unexpected favorites: %v", ids)
	}

	on, err = svc.Toggle(ctx, voter, teamID)
	if err != nil {
		t.Fatalf("second Toggle failed: %v", err)
	}
	if on {
		t.Error("expected favorite cleared after second toggle")
	}

	ids, err = svc.ListMine(ctx, voter)
	if err != nil {
		t.Fatalf("ListMine failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected no favorites, got %v", ids)
	}
	if ids == nil {
		t.Error("expected empty slice, not nil")
	}
}

func TestFavoriteToggle_UnknownTeam(t *testing.T) {
	svc, repo := newFavoriteEnv(t)
	voter := addStudent(t, repo, "ana@example.com")

	if _, err := svc.Toggle(context.Background(), voter, 404); err != ErrTeamNotFound {
		t.Errorf("expected ErrTeamNotFound, got %v", err)
	}
}

func TestFavorites_IndependentOfBallot(t *testing.T) {
	svc, repo := newFavoriteEnv(t)
	ctx := context.Background()
	voter := addStudent(t, repo, "ana@example.com")

	// Favoriting is unlimited, unlike the vote quota
	for i := 0; i < VoteQuota+2; i++ {
		teamID := addTeam(t, repo, "ws-"+string(rune('a'+i)), true)
		if on, err := svc.Toggle(ctx, voter, teamID); err != nil || !on {
			t.Fatalf("Toggle %d failed: on=%v err=%v", i, on, err)
		}
	}

	ids, err := svc.ListMine(ctx, voter)
	if err != nil {
		t.Fatalf("ListMine failed: %v", err)
	}
	if len(ids) != VoteQuota+2 {
		t.Errorf("expected %d favorites, got %d", VoteQuota+2, len(ids))
	}
}
