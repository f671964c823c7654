package services

import (
	"bytes"
	"context"
	stderrors "errors"
	"testing"

	apperrors "github.com/amontoya/webawards/internal/errors"
	"github.com/amontoya/webawards/internal/models"
	"github.com/amontoya/webawards/internal/repository"
	"github.com/amontoya/webawards/internal/testutil"
)

func newTeamEnv(t *testing.T) (*TeamService, *repository.Repository) {
	t.Helper()
	repo := testutil.NewTestRepository(t)
	return NewTeamService(testLogger(), repo), repo
}

func strp(s string) *string { return &s }

func TestTeamCreate(t *testing.T) {
	svc, _ := newTeamEnv(t)

	team, err := svc.Create(context.Background(), models.Team{
		GroupName:    "  ws-7  ",
		Participates: true,
		Category:     models.CategoryJuego,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if team.ID == 0 {
		t.Error("expected non-zero team id")
	}
	if team.GroupName != "ws-7" {
		t.Errorf("expected trimmed group name, got %q", team.GroupName)
	}
}

func TestTeamCreate_Validation(t *testing.T) {
	svc, _ := newTeamEnv(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, models.Team{GroupName: "   "}); !isValidationError(err) {
		t.Errorf("expected validation error for blank name, got %v", err)
	}
	if _, err := svc.Create(ctx, models.Team{GroupName: "ws-1", Category: "Cocina"}); !isValidationError(err) {
		t.Errorf("expected validation error for unknown category, got %v", err)
	}
}

func TestTeamCreate_DuplicateName(t *testing.T) {
	svc, _ := newTeamEnv(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, models.Team{GroupName: "ws-1"}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	_, err := svc.Create(ctx, models.Team{GroupName: "ws-1"})
	var appErr *apperrors.Error
	if !stderrors.As(err, &appErr) || appErr.Kind != apperrors.ErrConflict {
		t.Errorf("expected conflict error, got %v", err)
	}
}

func TestTeamGet_NotFound(t *testing.T) {
	svc, _ := newTeamEnv(t)

	if _, err := svc.Get(context.Background(), 404); err != ErrTeamNotFound {
		t.Errorf("expected ErrTeamNotFound, got %v", err)
	}
}

func TestTeamListPublic_OnlyParticipating(t *testing.T) {
	svc, repo := newTeamEnv(t)
	ctx := context.Background()
	addTeam(t, repo, "ws-in", true)
	addTeam(t, repo, "ws-out", false)

	teams, err := svc.ListPublic(ctx)
	if err != nil {
		t.Fatalf("ListPublic failed: %v", err)
	}
	if len(teams) != 1 || teams[0].GroupName != "ws-in" {
		t.Errorf("unexpected public teams: %+v", teams)
	}
	if teams[0].Students == nil {
		t.Error("expected non-nil roster slice")
	}

	all, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 teams in the full listing, got %d", len(all))
	}
}

func TestUpdatePresentation_OwnTeam(t *testing.T) {
	svc, repo := newTeamEnv(t)
	ctx := context.Background()

	helperID, err := repo.CreateHelper(ctx, "Luis", "luis@example.com", "hash")
	if err != nil {
		t.Fatalf("CreateHelper failed: %v", err)
	}
	hid := int(helperID)
	teamID, err := repo.CreateTeam(ctx, models.Team{GroupName: "ws-1", Participates: true, HelperID: &hid})
	if err != nil {
		t.Fatalf("CreateTeam failed: %v", err)
	}

	team, err := svc.UpdatePresentation(ctx, hid, int(teamID), PresentationUpdate{
		AppName:   strp("Recetario"),
		DeployURL: strp("https://ws1.example.com"),
		Category:  strp(models.CategoryPlanificador),
	})
	if err != nil {
		t.Fatalf("UpdatePresentation failed: %v", err)
	}
	if team.AppName != "Recetario" || team.DeployURL != "https://ws1.example.com" {
		t.Errorf("unexpected team after update: %+v", team)
	}
	if team.GroupName != "ws-1" {
		t.Errorf("group name should be untouched, got %q", team.GroupName)
	}
}

func TestUpdatePresentation_ForeignTeamForbidden(t *testing.T) {
	svc, repo := newTeamEnv(t)
	ctx := context.Background()

	ownerID, err := repo.CreateHelper(ctx, "Luis", "luis@example.com", "hash")
	if err != nil {
		t.Fatalf("CreateHelper failed: %v", err)
	}
	owner := int(ownerID)
	teamID, err := repo.CreateTeam(ctx, models.Team{GroupName: "ws-1", HelperID: &owner})
	if err != nil {
		t.Fatalf("CreateTeam failed: %v", err)
	}

	_, err = svc.UpdatePresentation(ctx, owner+1, int(teamID), PresentationUpdate{AppName: strp("x")})
	var appErr *apperrors.Error
	if !stderrors.As(err, &appErr) || appErr.Kind != apperrors.ErrForbidden {
		t.Errorf("expected forbidden error, got %v", err)
	}

	// An unassigned team is nobody's to edit either
	orphanID, err := repo.CreateTeam(ctx, models.Team{GroupName: "ws-2"})
	if err != nil {
		t.Fatalf("CreateTeam failed: %v", err)
	}
	_, err = svc.UpdatePresentation(ctx, owner, int(orphanID), PresentationUpdate{AppName: strp("x")})
	if !stderrors.As(err, &appErr) || appErr.Kind != apperrors.ErrForbidden {
		t.Errorf("expected forbidden error for unassigned team, got %v", err)
	}
}

func TestTeamDelete(t *testing.T) {
	svc, repo := newTeamEnv(t)
	ctx := context.Background()
	teamID := addTeam(t, repo, "ws-1", true)

	if err := svc.Delete(ctx, teamID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := svc.Delete(ctx, teamID); err != ErrTeamNotFound {
		t.Errorf("expected ErrTeamNotFound on second delete, got %v", err)
	}
}

func TestGenerateQRImage(t *testing.T) {
	svc, repo := newTeamEnv(t)
	ctx := context.Background()

	teamID, err := repo.CreateTeam(ctx, models.Team{GroupName: "ws-1", DeployURL: "https://ws1.example.com"})
	if err != nil {
		t.Fatalf("CreateTeam failed: %v", err)
	}

	png, err := svc.GenerateQRImage(ctx, int(teamID))
	if err != nil {
		t.Fatalf("GenerateQRImage failed: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("expected PNG image data")
	}
}

func TestGenerateQRImage_NoDeployURL(t *testing.T) {
	svc, repo := newTeamEnv(t)
	teamID := addTeam(t, repo, "ws-1", true)

	if _, err := svc.GenerateQRImage(context.Background(), teamID); !isValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestListMentored(t *testing.T) {
	svc, repo := newTeamEnv(t)
	ctx := context.Background()

	luisID, err := repo.CreateHelper(ctx, "Luis", "luis@example.com", "hash")
	if err != nil {
		t.Fatalf("CreateHelper failed: %v", err)
	}
	martaID, err := repo.CreateHelper(ctx, "Marta", "marta@example.com", "hash")
	if err != nil {
		t.Fatalf("CreateHelper failed: %v", err)
	}
	luis, marta := int(luisID), int(martaID)

	for _, seed := range []models.Team{
		{GroupName: "ws-1", Participates: true, HelperID: &luis},
		{GroupName: "ws-2", Participates: false, HelperID: &luis},
		{GroupName: "ws-3", Participates: true, HelperID: &marta},
		{GroupName: "ws-4", Participates: true},
	} {
		if _, err := repo.CreateTeam(ctx, seed); err != nil {
			t.Fatalf("CreateTeam(%s) failed: %v", seed.GroupName, err)
		}
	}

	teams, err := svc.ListMentored(ctx, luis)
	if err != nil {
		t.Fatalf("ListMentored failed: %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("expected 2 mentored teams, got %d", len(teams))
	}
	for _, team := range teams {
		if team.HelperID == nil || *team.HelperID != luis {
			t.Errorf("team %s belongs to someone else", team.GroupName)
		}
		if team.Students == nil {
			t.Errorf("team %s roster must not be nil", team.GroupName)
		}
	}
}

func TestListMentored_NoneAssigned(t *testing.T) {
	svc, repo := newTeamEnv(t)
	ctx := context.Background()

	helperID, err := repo.CreateHelper(ctx, "Luis", "luis@example.com", "hash")
	if err != nil {
		t.Fatalf("CreateHelper failed: %v", err)
	}

	teams, err := svc.ListMentored(ctx, int(helperID))
	if err != nil {
		t.Fatalf("ListMentored failed: %v", err)
	}
	if teams == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(teams) != 0 {
		t.Errorf("expected no teams, got %d", len(teams))
	}
}
