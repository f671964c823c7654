package handlers

import (
	"net/http"

	"github.com/amontoya/webawards/internal/auth"
)

// handleVotingStatus reports the current voting window (public)
func (h *Handlers) handleVotingStatus(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.Config.Get(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	window, err := h.Config.Window(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, VotingStatusResponse{
		Open:           window.Open,
		Reason:         window.Reason,
		VotingDeadline: cfg.VotingDeadline,
		StartDate:      cfg.VotingStartDate,
		Paused:         cfg.VotingPaused,
	})
}

// handleCastVote records a ballot for the authenticated voter
func (h *Handlers) handleCastVote(w http.ResponseWriter, r *http.Request) {
	voter, ok := auth.VoterFrom(r.Context())
	if !ok {
		respondError(w, ErrUnauthorized)
		return
	}

	var req VoteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.TeamID <= 0 {
		respondError(w, BadRequest("team_id is required"))
		return
	}

	vote, err := h.Voting.CastVote(r.Context(), voter, req.TeamID)
	if err != nil {
		respondError(w, err)
		return
	}

	status, err := h.Voting.Status(r.Context(), voter)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, VoteResponse{Vote: vote, VotesRemaining: status.VotesRemaining})
}

// handleMyVotes lists the authenticated voter's ballots
func (h *Handlers) handleMyVotes(w http.ResponseWriter, r *http.Request) {
	voter, ok := auth.VoterFrom(r.Context())
	if !ok {
		respondError(w, ErrUnauthorized)
		return
	}

	votes, err := h.Voting.MyVotes(r.Context(), voter)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, votes)
}

// handleVoteBudget reports the voter's remaining ballots
func (h *Handlers) handleVoteBudget(w http.ResponseWriter, r *http.Request) {
	voter, ok := auth.VoterFrom(r.Context())
	if !ok {
		respondError(w, ErrUnauthorized)
		return
	}

	status, err := h.Voting.Status(r.Context(), voter)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, status)
}

// handleVoteCounts returns the tally, subject to the disclosure rules
func (h *Handlers) handleVoteCounts(w http.ResponseWriter, r *http.Request) {
	voter, ok := auth.VoterFrom(r.Context())
	if !ok {
		respondError(w, ErrUnauthorized)
		return
	}

	counts, err := h.Voting.VisibleCounts(r.Context(), voter)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, counts)
}

// handleFavoriteToggle flips the favorite state of one team
func (h *Handlers) handleFavoriteToggle(w http.ResponseWriter, r *http.Request) {
	voter, ok := auth.VoterFrom(r.Context())
	if !ok {
		respondError(w, ErrUnauthorized)
		return
	}
	teamID, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	isFavorite, err := h.Favorite.Toggle(r.Context(), voter, teamID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, FavoriteToggleResponse{TeamID: teamID, IsFavorite: isFavorite})
}

// handleFavorites lists the voter's favorited team ids
func (h *Handlers) handleFavorites(w http.ResponseWriter, r *http.Request) {
	voter, ok := auth.VoterFrom(r.Context())
	if !ok {
		respondError(w, ErrUnauthorized)
		return
	}

	ids, err := h.Favorite.ListMine(r.Context(), voter)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, FavoritesResponse{TeamIDs: ids})
}
