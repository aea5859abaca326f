package http

import (
	"encoding/json"
	"net/http"

	"github.com/arketra-labs/workforce-backend-go/internal/domain/worksite"
	"github.com/arketra-labs/workforce-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type WorkSiteHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Replace(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type workSiteHandlerImpl struct {
	workSiteService worksite.WorkSiteService
}

func NewWorkSiteHandler(workSiteService worksite.WorkSiteService) WorkSiteHandler {
	return &workSiteHandlerImpl{
		workSiteService: workSiteService,
	}
}

// Create implements WorkSiteHandler.
func (h *workSiteHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req worksite.UpsertWorkSiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.workSiteService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Work site created", result)
}

// Get implements WorkSiteHandler.
func (h *workSiteHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.workSiteService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements WorkSiteHandler.
func (h *workSiteHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.workSiteService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Replace implements WorkSiteHandler.
func (h *workSiteHandlerImpl) Replace(w http.ResponseWriter, r *http.Request) {
	var req worksite.UpsertWorkSiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.workSiteService.Replace(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work site updated", result)
}

// Delete implements WorkSiteHandler.
func (h *workSiteHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.workSiteService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work site deleted", nil)
}
