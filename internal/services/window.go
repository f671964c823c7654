package services

import (
	"time"

	"github.com/amontoya/webawards/internal/models"
)

// WindowReason explains why the voting window is in its current state.
type WindowReason string

const (
	ReasonOpen           WindowReason = "open"
	ReasonDataLoading    WindowReason = "data_loading"
	ReasonPaused         WindowReason = "paused"
	ReasonNotStarted     WindowReason = "not_started"
	ReasonDeadlinePassed WindowReason = "deadline_passed"
)

// WindowState is the result of evaluating the voting window at a point in time.
type WindowState struct {
	Open          bool         `json:"open"`
	Reason        WindowReason `json:"reason"`
	InDataLoading bool         `json:"in_data_loading"`
}

// EvaluateWindow determines whether voting is open at the given instant.
// The checks are ordered: the data-loading window wins over everything,
// then the pause flag, then the start date, then the deadline.
func EvaluateWindow(cfg models.VotingConfig, now time.Time) WindowState {
	if cfg.DataLoadingStartDate != nil && cfg.DataLoadingEndDate != nil &&
		!now.Before(*cfg.DataLoadingStartDate) && !now.After(*cfg.DataLoadingEndDate) {
		return WindowState{Open: false, Reason: ReasonDataLoading, InDataLoading: true}
	}
	if cfg.VotingPaused {
		return WindowState{Open: false, Reason: ReasonPaused}
	}
	if cfg.VotingStartDate != nil && now.Before(*cfg.VotingStartDate) {
		return WindowState{Open: false, Reason: ReasonNotStarted}
	}
	if now.After(cfg.VotingDeadline) {
		return WindowState{Open: false, Reason: ReasonDeadlinePassed}
	}
	return WindowState{Open: true, Reason: ReasonOpen}
}

// RejectionError maps a closed window state onto the matching service error.
// It returns nil when the window is open.
func (w WindowState) RejectionError() error {
	switch w.Reason {
	case ReasonOpen:
		return nil
	case ReasonDataLoading:
		return ErrDataLoadingPeriod
	case ReasonPaused:
		return ErrVotingPaused
	case ReasonNotStarted:
		return ErrVotingNotStarted
	default:
		return ErrVotingClosed
	}
}
