package handlers

import (
	"net/http"
	"time"

	"github.com/amontoya/webawards/internal/auth"
	"github.com/amontoya/webawards/internal/services"
)

// ==================== Students ====================

func (h *Handlers) handleListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.Student.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, students)
}

func (h *Handlers) handleCreateStudent(w http.ResponseWriter, r *http.Request) {
	var req StudentCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	student, err := h.Student.Create(r.Context(), req.Name, req.Email, req.Password, req.TeamID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, student)
}

func (h *Handlers) handleUpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var req StudentUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	student, err := h.Student.Update(r.Context(), id, req.Name, req.Email, req.TeamID, req.AvatarURL)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, student)
}

func (h *Handlers) handleDeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.Student.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondDeleted(w)
}

// ==================== Helpers ====================

func (h *Handlers) handleListHelpers(w http.ResponseWriter, r *http.Request) {
	helpers, err := h.Helper.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, helpers)
}

func (h *Handlers) handleCreateHelper(w http.ResponseWriter, r *http.Request) {
	var req HelperCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	helper, err := h.Helper.Create(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, helper)
}

func (h *Handlers) handleUpdateHelper(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var req HelperUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	helper, err := h.Helper.Update(r.Context(), id, req.Name, req.Email, req.AvatarURL)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, helper)
}

func (h *Handlers) handleDeleteHelper(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.Helper.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondDeleted(w)
}

// ==================== Admins ====================

func (h *Handlers) handleListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.Admin.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, admins)
}

func (h *Handlers) handleCreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req AdminCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	admin, err := h.Admin.Create(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, admin)
}

func (h *Handlers) handleUpdateAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var req AdminUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	admin, err := h.Admin.Update(r.Context(), id, req.Name, req.Email, req.AvatarURL)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, admin)
}

// handleDeleteAdmin removes another admin. The acting admin confirms
// their own password in the request body.
func (h *Handlers) handleDeleteAdmin(w http.ResponseWriter, r *http.Request) {
	voter, ok := auth.VoterFrom(r.Context())
	if !ok {
		respondError(w, ErrUnauthorized)
		return
	}
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var req PasswordConfirmRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Admin.Delete(r.Context(), voter.ID, id, req.Password); err != nil {
		respondError(w, err)
		return
	}
	respondDeleted(w)
}

// handleVerifyPassword re-checks the acting admin's password and
// reports their remaining vote budget
func (h *Handlers) handleVerifyPassword(w http.ResponseWriter, r *http.Request) {
	voter, ok := auth.VoterFrom(r.Context())
	if !ok {
		respondError(w, ErrUnauthorized)
		return
	}
	var req PasswordConfirmRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	remaining, err := h.Admin.VerifyPassword(r.Context(), voter.ID, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, VerifyPasswordResponse{Verified: true, VotesRemaining: remaining})
}

// ==================== Votes ====================

func (h *Handlers) handleDeleteVote(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.Admin.DeleteVote(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondDeleted(w)
}

// handleResetVotes wipes the whole ledger after a password confirmation
func (h *Handlers) handleResetVotes(w http.ResponseWriter, r *http.Request) {
	voter, ok := auth.VoterFrom(r.Context())
	if !ok {
		respondError(w, ErrUnauthorized)
		return
	}
	var req PasswordConfirmRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	removed, err := h.Admin.ResetAllVotes(r.Context(), voter.ID, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, ResetVotesResponse{Removed: removed})
}

// ==================== Voting configuration ====================

func (h *Handlers) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.Config.Get(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, cfg)
}

func (h *Handlers) handleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	var req ConfigUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	upd := services.ConfigUpdate{
		ClearVotingStartDate: req.ClearVotingStartDate,
		ClearDataLoading:     req.ClearDataLoading,
		VotingPaused:         req.VotingPaused,
	}
	var err error
	if upd.VotingDeadline, err = parseDate(req.VotingDeadline); err != nil {
		respondError(w, err)
		return
	}
	if upd.VotingStartDate, err = parseDate(req.VotingStartDate); err != nil {
		respondError(w, err)
		return
	}
	if upd.DataLoadingStartDate, err = parseDate(req.DataLoadingStartDate); err != nil {
		respondError(w, err)
		return
	}
	if upd.DataLoadingEndDate, err = parseDate(req.DataLoadingEndDate); err != nil {
		respondError(w, err)
		return
	}

	cfg, err := h.Config.Update(r.Context(), upd)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, cfg)
}

func (h *Handlers) handleTogglePause(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.Config.TogglePause(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, cfg)
}

// parseDate parses an optional RFC 3339 date string
func parseDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, BadRequest("invalid date, expected RFC 3339: " + *s)
	}
	return &t, nil
}
