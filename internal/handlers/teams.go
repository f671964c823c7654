package handlers

import (
	"net/http"

	"github.com/amontoya/webawards/internal/auth"
	"github.com/amontoya/webawards/internal/models"
	"github.com/amontoya/webawards/internal/services"
)

// handleListTeams returns participating teams with rosters (public).
// The order is shuffled server-side on every request.
func (h *Handlers) handleListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.Team.ListPublic(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, teams)
}

// handleGetTeam returns one team with its roster (public)
func (h *Handlers) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	team, err := h.Team.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, team)
}

// handleHelperTeams returns the teams assigned to the calling helper
func (h *Handlers) handleHelperTeams(w http.ResponseWriter, r *http.Request) {
	voter, ok := auth.VoterFrom(r.Context())
	if !ok {
		respondError(w, ErrUnauthorized)
		return
	}

	teams, err := h.Team.ListMentored(r.Context(), voter.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, teams)
}

// handleUpdateTeamPresentation lets a helper edit their own team's
// showcase fields
func (h *Handlers) handleUpdateTeamPresentation(w http.ResponseWriter, r *http.Request) {
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

	var req TeamPresentationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	team, err := h.Team.UpdatePresentation(r.Context(), voter.ID, id, services.PresentationUpdate{
		DisplayName:   req.DisplayName,
		AppName:       req.AppName,
		DeployURL:     req.DeployURL,
		VideoURL:      req.VideoURL,
		ScreenshotURL: req.ScreenshotURL,
		Category:      req.Category,
		Description:   req.Description,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, team)
}

// ==================== Admin team management ====================

// handleAdminListTeams returns every team, participating or not
func (h *Handlers) handleAdminListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.Team.ListAll(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, teams)
}

// handleCreateTeam creates a team
func (h *Handlers) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	var req TeamCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	team, err := h.Team.Create(r.Context(), models.Team{
		GroupName:     req.GroupName,
		DisplayName:   req.DisplayName,
		AppName:       req.AppName,
		Participates:  req.Participates,
		HelperID:      req.HelperID,
		DeployURL:     req.DeployURL,
		VideoURL:      req.VideoURL,
		ScreenshotURL: req.ScreenshotURL,
		Category:      req.Category,
		Description:   req.Description,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, team)
}

// handleUpdateTeam replaces a team's attributes
func (h *Handlers) handleUpdateTeam(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req TeamUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	team, err := h.Team.Update(r.Context(), id, models.Team{
		GroupName:     req.GroupName,
		DisplayName:   req.DisplayName,
		AppName:       req.AppName,
		Participates:  req.Participates,
		HelperID:      req.HelperID,
		DeployURL:     req.DeployURL,
		VideoURL:      req.VideoURL,
		ScreenshotURL: req.ScreenshotURL,
		Category:      req.Category,
		Description:   req.Description,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, team)
}

// handleDeleteTeam removes a team
func (h *Handlers) handleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.Team.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondDeleted(w)
}

// handleTeamQR serves a QR code PNG for the team's deployed app
func (h *Handlers) handleTeamQR(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	png, err := h.Team.GenerateQRImage(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
