package handlers

import (
	"time"

	"github.com/amontoya/webawards/internal/models"
	"github.com/amontoya/webawards/internal/services"
)

// VotingStatusResponse describes the voting window as seen by clients
type VotingStatusResponse struct {
	Open           bool                  `json:"open"`
	Reason         services.WindowReason `json:"reason"`
	VotingDeadline time.Time             `json:"voting_deadline"`
	StartDate      *time.Time            `json:"voting_start_date,omitempty"`
	Paused         bool                  `json:"voting_paused"`
}

// VoteResponse confirms a recorded ballot
type VoteResponse struct {
	Vote           *models.Vote `json:"vote"`
	VotesRemaining int          `json:"votes_remaining"`
}

// FavoriteToggleResponse reports the state after a favorite toggle
type FavoriteToggleResponse struct {
	TeamID     int  `json:"team_id"`
	IsFavorite bool `json:"is_favorite"`
}

// FavoritesResponse lists a voter's favorited team ids
type FavoritesResponse struct {
	TeamIDs []int `json:"team_ids"`
}

// VerifyPasswordResponse confirms a password re-check and reports the
// admin's remaining vote budget
type VerifyPasswordResponse struct {
	Verified       bool `json:"verified"`
	VotesRemaining int  `json:"votes_remaining"`
}

// ResetVotesResponse reports how many ballots a reset removed
type ResetVotesResponse struct {
	Removed int64 `json:"removed"`
}

// PodiumResponse wraps the podium, hidden until the deadline passes
type PodiumResponse struct {
	Show    bool                   `json:"show"`
	Entries []services.PodiumEntry `json:"entries"`
}
