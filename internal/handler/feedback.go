package handler

import (
	"net/http"

	"github.com/Shivanand-hulikatti/hackhub/internal/model"
	"github.com/Shivanand-hulikatti/hackhub/internal/service"
	"github.com/go-chi/chi/v5"
)

// FeedbackHandler serves the contact-form inbox.
type FeedbackHandler struct {
	svc *service.FeedbackService
}

func NewFeedbackHandler(svc *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{svc: svc}
}

// Submit handles POST /feedback
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitFeedbackRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	f, err := h.svc.Submit(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, "feedback")
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

// List handles GET /feedback?status=&priority=
func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.svc.List(r.Context(), model.FeedbackFilter{
		Status:   model.FeedbackStatus(q.Get("status")),
		Priority: model.FeedbackPriority(q.Get("priority")),
	})
	if err != nil {
		writeServiceError(w, r, err, "feedback")
		return
	}
	if items == nil {
		items = []model.Feedback{}
	}
	writeJSON(w, http.StatusOK, items)
}

// Update handles PATCH /feedback/{id}
func (h *FeedbackHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateFeedbackRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	f, err := h.svc.Update(r.Context(), caller(r), chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, r, err, "feedback")
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// Delete handles DELETE /feedback/{id}
func (h *FeedbackHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err, "feedback")
		return
	}
	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "feedback deleted"})
}
