package handler

import (
	"net/http"
	"strconv"

	"github.com/Shivanand-hulikatti/hackhub/internal/model"
	"github.com/Shivanand-hulikatti/hackhub/internal/service"
	"github.com/go-chi/chi/v5"
)

// HackathonHandler holds the HTTP handlers for hackathons and registration.
type HackathonHandler struct {
	svc *service.HackathonService
}

// NewHackathonHandler constructs a HackathonHandler.
func NewHackathonHandler(svc *service.HackathonService) *HackathonHandler {
	return &HackathonHandler{svc: svc}
}

// CreateHackathon handles POST /hackathons
func (h *HackathonHandler) CreateHackathon(w http.ResponseWriter, r *http.Request) {
	var req model.CreateHackathonRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	hackathon, err := h.svc.CreateHackathon(r.Context(), caller(r), req)
	if err != nil {
		writeServiceError(w, r, err, "hackathon")
		return
	}
	writeJSON(w, http.StatusCreated, hackathon)
}

// ListHackathons handles GET /hackathons?status=&all=
// Anonymous callers see approved hackathons; admins may pass all=true.
func (h *HackathonHandler) ListHackathons(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	all := false
	if v := q.Get("all"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "all must be true or false")
			return
		}
		all = parsed
	}

	views, err := h.svc.ListHackathons(r.Context(), optionalCaller(r), model.Status(q.Get("status")), all)
	if err != nil {
		writeServiceError(w, r, err, "hackathon")
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// ListMine handles GET /hackathons/mine
func (h *HackathonHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.ListMine(r.Context(), caller(r))
	if err != nil {
		writeServiceError(w, r, err, "hackathon")
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// GetHackathon handles GET /hackathons/{id}
func (h *HackathonHandler) GetHackathon(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.GetHackathon(r.Context(), optionalCaller(r), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "hackathon")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// UpdateHackathon handles PUT /hackathons/{id}
func (h *HackathonHandler) UpdateHackathon(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateHackathonRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	hackathon, err := h.svc.UpdateHackathon(r.Context(), caller(r), chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, r, err, "hackathon")
		return
	}
	writeJSON(w, http.StatusOK, hackathon)
}

// DeleteHackathon handles DELETE /hackathons/{id}
func (h *HackathonHandler) DeleteHackathon(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteHackathon(r.Context(), caller(r), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err, "hackathon")
		return
	}
	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "hackathon deleted"})
}

// ApproveHackathon handles POST /hackathons/{id}/approve
func (h *HackathonHandler) ApproveHackathon(w http.ResponseWriter, r *http.Request) {
	hackathon, err := h.svc.ApproveHackathon(r.Context(), caller(r), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "hackathon")
		return
	}
	writeJSON(w, http.StatusOK, hackathon)
}

// CancelHackathon handles POST /hackathons/{id}/cancel
func (h *HackathonHandler) CancelHackathon(w http.ResponseWriter, r *http.Request) {
	hackathon, err := h.svc.CancelHackathon(r.Context(), caller(r), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "hackathon")
		return
	}
	writeJSON(w, http.StatusOK, hackathon)
}

// Register handles POST /hackathons/{id}/register
// Registers the caller as an individual participant.
func (h *HackathonHandler) Register(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.RegisterParticipant(r.Context(), caller(r), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "hackathon")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Unregister handles POST /hackathons/{id}/unregister
func (h *HackathonHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.UnregisterParticipant(r.Context(), caller(r), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err, "hackathon")
		return
	}
	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "unregistered"})
}

// RegisterTeam handles POST /hackathons/{id}/register-team
// Validates the team and appends it to the roster in one atomic step.
func (h *HackathonHandler) RegisterTeam(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterTeamRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	team, err := h.svc.RegisterTeam(r.Context(), caller(r), chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, r, err, "hackathon")
		return
	}
	writeJSON(w, http.StatusCreated, team)
}

// ListTeams handles GET /hackathons/{id}/teams
func (h *HackathonHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.svc.ListTeams(r.Context(), caller(r), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "hackathon")
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

// DeleteTeam handles DELETE /hackathons/{id}/teams/{teamId}
func (h *HackathonHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	err := h.svc.DeleteTeam(r.Context(), caller(r), chi.URLParam(r, "id"), chi.URLParam(r, "teamId"))
	if err != nil {
		writeServiceError(w, r, err, "hackathon or team")
		return
	}
	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "team removed"})
}
