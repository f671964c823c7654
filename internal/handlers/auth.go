package handlers

import (
	"net/http"

	"github.com/amontoya/webawards/internal/auth"
	"github.com/amontoya/webawards/internal/models"
)

// handleLogin processes a login attempt against the three account kinds
func (h *Handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	result, err := h.Identity.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, result)
}

// handleMe returns the authenticated voter's profile
func (h *Handlers) handleMe(w http.ResponseWriter, r *http.Request) {
	voter, ok := auth.VoterFrom(r.Context())
	if !ok {
		respondError(w, ErrUnauthorized)
		return
	}

	profile, err := h.Identity.Me(r.Context(), voter)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, profile)
}

// handleUpdateMe lets the authenticated voter change their own name
// and avatar
func (h *Handlers) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	voter, ok := auth.VoterFrom(r.Context())
	if !ok {
		respondError(w, ErrUnauthorized)
		return
	}

	var req ProfileUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	profile, err := h.Identity.UpdateMe(r.Context(), voter, req.Name, req.AvatarURL)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, profile)
}

// handleIntroSeen marks the intro screen as dismissed for a student
func (h *Handlers) handleIntroSeen(w http.ResponseWriter, r *http.Request) {
	voter, ok := auth.VoterFrom(r.Context())
	if !ok {
		respondError(w, ErrUnauthorized)
		return
	}
	if voter.Kind != models.KindStudent {
		respondError(w, Forbidden("only students have an intro screen"))
		return
	}

	if err := h.Student.MarkIntroSeen(r.Context(), voter.ID); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "intro marked as seen")
}
