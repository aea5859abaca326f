package http

import (
	"encoding/json"
	"net/http"

	"github.com/arketra-labs/workforce-backend-go/internal/domain/lead"
	"github.com/arketra-labs/workforce-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeadHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	ChangeStatus(w http.ResponseWriter, r *http.Request)
	Assign(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type leadHandlerImpl struct {
	leadService lead.LeadService
}

func NewLeadHandler(leadService lead.LeadService) LeadHandler {
	return &leadHandlerImpl{
		leadService: leadService,
	}
}

// Create implements LeadHandler.
func (h *leadHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req lead.CreateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.leadService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Lead created", result)
}

// Get implements LeadHandler.
func (h *leadHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.leadService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements LeadHandler.
func (h *leadHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := lead.ListFilter{
		Status:     queryString(r, "status"),
		AssignedTo: queryString(r, "assigned_to"),
		Search:     queryString(r, "search"),
		Page:       queryInt(r, "page"),
		Limit:      queryInt(r, "limit"),
	}

	result, err := h.leadService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Leads, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalItems,
	})
}

// Update implements LeadHandler.
func (h *leadHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req lead.UpdateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.leadService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Lead updated", result)
}

// ChangeStatus implements LeadHandler.
func (h *leadHandlerImpl) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	var req lead.ChangeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.leadService.ChangeStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Lead status changed", result)
}

// Assign implements LeadHandler.
func (h *leadHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	var req lead.AssignLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.leadService.Assign(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Lead assigned", result)
}

// Delete implements LeadHandler.
func (h *leadHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.leadService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Lead deleted", nil)
}
