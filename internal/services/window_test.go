package services

import (
	"testing"
	"time"

	"github.com/amontoya/webawards/internal/models"
)

var windowNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func tp(t time.Time) *time.Time { return &t }

func TestEvaluateWindow_Open(t *testing.T) {
	cfg := models.VotingConfig{VotingDeadline: windowNow.Add(time.Hour)}

	state := EvaluateWindow(cfg, windowNow)
	if !state.Open || state.Reason != ReasonOpen {
		t.Errorf("expected open window, got %+v", state)
	}
	if state.RejectionError() != nil {
		t.Error("expected no rejection error for open window")
	}
}

func TestEvaluateWindow_DeadlinePassed(t *testing.T) {
	cfg := models.VotingConfig{VotingDeadline: windowNow.Add(-time.Minute)}

	state := EvaluateWindow(cfg, windowNow)
	if state.Open || state.Reason != ReasonDeadlinePassed {
		t.Errorf("expected deadline_passed, got %+v", state)
	}
	if state.RejectionError() != ErrVotingClosed {
		t.Errorf("expected ErrVotingClosed, got %v", state.RejectionError())
	}
}

func TestEvaluateWindow_ExactDeadlineStillOpen(t *testing.T) {
	cfg := models.VotingConfig{VotingDeadline: windowNow}

	state := EvaluateWindow(cfg, windowNow)
	if !state.Open {
		t.Error("window must stay open at the exact deadline instant")
	}
}

func TestEvaluateWindow_NotStarted(t *testing.T) {
	cfg := models.VotingConfig{
		VotingDeadline:  windowNow.Add(48 * time.Hour),
		VotingStartDate: tp(windowNow.Add(time.Hour)),
	}

	state := EvaluateWindow(cfg, windowNow)
	if state.Open || state.Reason != ReasonNotStarted {
		t.Errorf("expected not_started, got %+v", state)
	}
	if state.RejectionError() != ErrVotingNotStarted {
		t.Errorf("expected ErrVotingNotStarted, got %v", state.RejectionError())
	}
}

func TestEvaluateWindow_ExactStartIsOpen(t *testing.T) {
	cfg := models.VotingConfig{
		VotingDeadline:  windowNow.Add(48 * time.Hour),
		VotingStartDate: tp(windowNow),
	}

	if state := EvaluateWindow(cfg, windowNow); !state.Open {
		t.Error("window must open at the exact start instant")
	}
}

func TestEvaluateWindow_Paused(t *testing.T) {
	cfg := models.VotingConfig{
		VotingDeadline: windowNow.Add(time.Hour),
		VotingPaused:   true,
	}

	state := EvaluateWindow(cfg, windowNow)
	if state.Open || state.Reason != ReasonPaused {
		t.Errorf("expected paused, got %+v", state)
	}
	if state.RejectionError() != ErrVotingPaused {
		t.Errorf("expected ErrVotingPaused, got %v", state.RejectionError())
	}
}

func TestEvaluateWindow_PausedWinsOverNotStarted(t *testing.T) {
	cfg := models.VotingConfig{
		VotingDeadline:  windowNow.Add(48 * time.Hour),
		VotingStartDate: tp(windowNow.Add(time.Hour)),
		VotingPaused:    true,
	}

	if state := EvaluateWindow(cfg, windowNow); state.Reason != ReasonPaused {
		t.Errorf("pause must take precedence over the start date, got %+v", state)
	}
}

func TestEvaluateWindow_PausedWinsOverDeadline(t *testing.T) {
	cfg := models.VotingConfig{
		VotingDeadline: windowNow.Add(-time.Hour),
		VotingPaused:   true,
	}

	if state := EvaluateWindow(cfg, windowNow); state.Reason != ReasonPaused {
		t.Errorf("pause must take precedence over the deadline, got %+v", state)
	}
}

func TestEvaluateWindow_DataLoadingWinsOverEverything(t *testing.T) {
	cfg := models.VotingConfig{
		VotingDeadline:       windowNow.Add(-time.Hour),
		VotingPaused:         true,
		DataLoadingStartDate: tp(windowNow.Add(-time.Hour)),
		DataLoadingEndDate:   tp(windowNow.Add(time.Hour)),
	}

	state := EvaluateWindow(cfg, windowNow)
	if state.Reason != ReasonDataLoading || !state.InDataLoading {
		t.Errorf("data loading must take precedence over pause and deadline, got %+v", state)
	}
	if state.RejectionError() != ErrDataLoadingPeriod {
		t.Errorf("expected ErrDataLoadingPeriod, got %v", state.RejectionError())
	}
}

func TestEvaluateWindow_DataLoadingBoundsInclusive(t *testing.T) {
	cfg := models.VotingConfig{
		VotingDeadline:       windowNow.Add(48 * time.Hour),
		DataLoadingStartDate: tp(windowNow),
		DataLoadingEndDate:   tp(windowNow.Add(time.Hour)),
	}

	if state := EvaluateWindow(cfg, windowNow); state.Reason != ReasonDataLoading {
		t.Errorf("data loading start must be inclusive, got %+v", state)
	}

	cfg.DataLoadingStartDate = tp(windowNow.Add(-time.Hour))
	cfg.DataLoadingEndDate = tp(windowNow)
	if state := EvaluateWindow(cfg, windowNow); state.Reason != ReasonDataLoading {
		t.Errorf("data loading end must be inclusive, got %+v", state)
	}
}

func TestEvaluateWindow_DataLoadingNeedsBothDates(t *testing.T) {
	cfg := models.VotingConfig{
		VotingDeadline:       windowNow.Add(time.Hour),
		DataLoadingStartDate: tp(windowNow.Add(-time.Hour)),
	}

	if state := EvaluateWindow(cfg, windowNow); !state.Open {
		t.Errorf("a half-configured data loading window must be ignored, got %+v", state)
	}
}

func TestEvaluateWindow_OutsideDataLoading(t *testing.T) {
	cfg := models.VotingConfig{
		VotingDeadline:       windowNow.Add(time.Hour),
		DataLoadingStartDate: tp(windowNow.Add(-3 * time.Hour)),
		DataLoadingEndDate:   tp(windowNow.Add(-2 * time.Hour)),
	}

	if state := EvaluateWindow(cfg, windowNow); !state.Open {
		t.Errorf("expected open after the data loading window, got %+v", state)
	}
}
