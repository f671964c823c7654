package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/amontoya/webawards/internal/models"
	"github.com/amontoya/webawards/internal/services"
)

// handlePodium returns the ranked podium. It stays hidden until the
// voting deadline has passed.
func (h *Handlers) handlePodium(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.Config.Get(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if !time.Now().After(cfg.VotingDeadline) {
		respondOK(w, PodiumResponse{Show: false, Entries: []services.PodiumEntry{}})
		return
	}

	entries, err := h.Results.Podium(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, PodiumResponse{Show: true, Entries: entries})
}

// handleAdminResults returns the full unfiltered per-team tally
func (h *Handlers) handleAdminResults(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Results.VoteCounts(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, counts)
}

// handleAdminPodium returns the podium regardless of the deadline
func (h *Handlers) handleAdminPodium(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Results.Podium(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, PodiumResponse{Show: true, Entries: entries})
}

// handleVotesByKind lists every ballot cast by one voter kind, grouped
// per voter
func (h *Handlers) handleVotesByKind(w http.ResponseWriter, r *http.Request) {
	kind := models.VoterKind(chi.URLParam(r, "kind"))
	if !kind.Valid() {
		respondError(w, BadRequest("unknown voter kind"))
		return
	}

	groups, err := h.Results.VotesByKind(r.Context(), kind)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, groups)
}
