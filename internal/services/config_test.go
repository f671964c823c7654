package services

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	apperrors "github.com/amontoya/webawards/internal/errors"
	"github.com/amontoya/webawards/internal/repository"
	"github.com/amontoya/webawards/internal/testutil"
)

type recordingBroadcaster struct {
	calls     int
	lastState WindowState
}

func (b *recordingBroadcaster) BroadcastWindowStatus(state WindowState, deadline time.Time) {
	b.calls++
	b.lastState = state
}

func isValidationError(err error) bool {
	var appErr *apperrors.Error
	return stderrors.As(err, &appErr) && appErr.Kind == apperrors.ErrValidation
}

func newConfigEnv(t *testing.T) (*ConfigService, *repository.Repository) {
	t.Helper()
	repo := testutil.NewTestRepository(t)
	return NewConfigService(testLogger(), repo), repo
}

func TestConfigGet_SynthesizesDefault(t *testing.T) {
	svc, _ := newConfigEnv(t)

	cfg, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if cfg.VotingPaused {
		t.Error("expected default config to be unpaused")
	}
	if !cfg.VotingDeadline.After(time.Now()) {
		t.Errorf("expected default deadline in the future, got %v", cfg.VotingDeadline)
	}
}

func TestConfigUpdate_PartialMerge(t *testing.T) {
	svc, repo := newConfigEnv(t)
	ctx := context.Background()

	start := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	if _, err := svc.Update(ctx, ConfigUpdate{VotingStartDate: &start}); err != nil {
		t.Fatalf("first Update failed: %v", err)
	}

	deadline := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)
	cfg, err := svc.Update(ctx, ConfigUpdate{VotingDeadline: &deadline})
	if err != nil {
		t.Fatalf("second Update failed: %v", err)
	}
	if !cfg.VotingDeadline.Equal(deadline) {
		t.Errorf("expected deadline %v, got %v", deadline, cfg.VotingDeadline)
	}
	if cfg.VotingStartDate == nil || !cfg.VotingStartDate.Equal(start) {
		t.Errorf("expected start date %v preserved, got %v", start, cfg.VotingStartDate)
	}

	stored, err := repo.GetConfig(ctx)
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}
	if !stored.VotingDeadline.Equal(deadline) {
		t.Errorf("update was not persisted: %v", stored.VotingDeadline)
	}
}

func TestConfigUpdate_ClearFlags(t *testing.T) {
	svc, _ := newConfigEnv(t)
	ctx := context.Background()

	start := time.Now().Add(time.Hour)
	end := time.Now().Add(2 * time.Hour)
	if _, err := svc.Update(ctx, ConfigUpdate{
		VotingStartDate:      &start,
		DataLoadingStartDate: &start,
		DataLoadingEndDate:   &end,
	}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	cfg, err := svc.Update(ctx, ConfigUpdate{ClearVotingStartDate: true, ClearDataLoading: true})
	if err != nil {
		t.Fatalf("clearing Update failed: %v", err)
	}
	if cfg.VotingStartDate != nil {
		t.Errorf("expected start date cleared, got %v", cfg.VotingStartDate)
	}
	if cfg.DataLoadingStartDate != nil || cfg.DataLoadingEndDate != nil {
		t.Errorf("expected data loading window cleared, got %v / %v",
			cfg.DataLoadingStartDate, cfg.DataLoadingEndDate)
	}
}

func TestConfigUpdate_RejectsZeroDeadline(t *testing.T) {
	svc, _ := newConfigEnv(t)

	var zero time.Time
	_, err := svc.Update(context.Background(), ConfigUpdate{VotingDeadline: &zero})
	if !isValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestConfigUpdate_RejectsInvertedDataLoading(t *testing.T) {
	svc, _ := newConfigEnv(t)

	start := time.Now().Add(2 * time.Hour)
	end := time.Now().Add(time.Hour)
	_, err := svc.Update(context.Background(), ConfigUpdate{
		DataLoadingStartDate: &start,
		DataLoadingEndDate:   &end,
	})
	if !isValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestConfigTogglePause(t *testing.T) {
	svc, _ := newConfigEnv(t)
	ctx := context.Background()

	cfg, err := svc.TogglePause(ctx)
	if err != nil {
		t.Fatalf("TogglePause failed: %v", err)
	}
	if !cfg.VotingPaused {
		t.Error("expected voting paused after first toggle")
	}

	cfg, err = svc.TogglePause(ctx)
	if err != nil {
		t.Fatalf("second TogglePause failed: %v", err)
	}
	if cfg.VotingPaused {
		t.Error("expected voting resumed after second toggle")
	}
}

func TestConfigUpdate_Broadcasts(t *testing.T) {
	svc, _ := newConfigEnv(t)
	b := &recordingBroadcaster{}
	svc.SetBroadcaster(b)

	paused := true
	if _, err := svc.Update(context.Background(), ConfigUpdate{VotingPaused: &paused}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if b.calls != 1 {
		t.Fatalf("expected 1 broadcast, got %d", b.calls)
	}
	if b.lastState.Open || b.lastState.Reason != ReasonPaused {
		t.Errorf("expected paused window state broadcast, got %+v", b.lastState)
	}

	if _, err := svc.TogglePause(context.Background()); err != nil {
		t.Fatalf("TogglePause failed: %v", err)
	}
	if b.calls != 2 {
		t.Errorf("expected 2 broadcasts, got %d", b.calls)
	}
}
