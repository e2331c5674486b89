package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"deskhive/internal/allocations/service"
	apperrors "deskhive/pkg/errors"
	httputil "deskhive/pkg/http"
	"deskhive/pkg/logger"
	"deskhive/pkg/model"
)

type AllocationHandler struct {
	service service.AllocationService
	log     *logger.Logger
}

func NewAllocationHandler(service service.AllocationService, log *logger.Logger) *AllocationHandler {
	return &AllocationHandler{
		service: service,
		log:     log,
	}
}

func (h *AllocationHandler) Suggest(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.SuggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Suggest", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	suggestions, err := h.service.Suggest(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Suggest", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, suggestions); err != nil {
		h.log.Error("failed to write success response", "handler", "Suggest", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AllocationHandler) Confirm(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var confirm model.AllocationConfirm
	if err := json.NewDecoder(r.Body).Decode(&confirm); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Confirm", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	allocation, err := h.service.Confirm(r.Context(), &confirm)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Confirm", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, allocation); err != nil {
		h.log.Error("failed to write created response", "handler", "Confirm", "operation", "WriteCreated", "error", err)
	}
}

func (h *AllocationHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	allocation, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, allocation); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AllocationHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	filter, err := parseListFilter(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	allocations, total, err := h.service.GetAll(r.Context(), filter, limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, allocations, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func parseListFilter(r *http.Request) (model.AllocationFilter, error) {
	query := r.URL.Query()

	filter := model.AllocationFilter{
		RequesterID: query.Get("requester_id"),
		WorkspaceID: query.Get("workspace_id"),
	}

	if statusStr := query.Get("status"); statusStr != "" {
		status := model.AllocationStatus(statusStr)
		if !status.Valid() {
			return filter, apperrors.InvalidInput("invalid status parameter: " + statusStr)
		}
		filter.Status = status
	}

	if startStr := query.Get("start_date"); startStr != "" {
		parsed, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			return filter, apperrors.InvalidInput("invalid start_date format, must be RFC3339")
		}
		filter.StartDate = &parsed
	}

	if endStr := query.Get("end_date"); endStr != "" {
		parsed, err := time.Parse(time.RFC3339, endStr)
		if err != nil {
			return filter, apperrors.InvalidInput("invalid end_date format, must be RFC3339")
		}
		filter.EndDate = &parsed
	}

	return filter, nil
}

func (h *AllocationHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var updates model.AllocationUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	allocation, err := h.service.Update(r.Context(), id, &updates)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, allocation); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

type cancelRequest struct {
	RequesterID string `json:"requester_id"`
}

func (h *AllocationHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var req cancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Cancel", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	allocation, err := h.service.Cancel(r.Context(), id, req.RequesterID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Cancel", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, allocation); err != nil {
		h.log.Error("failed to write success response", "handler", "Cancel", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AllocationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/allocations/suggest", h.Suggest)
	router.POST("/api/v1/allocations", h.Confirm)
	router.GET("/api/v1/allocations", h.GetAll)
	router.GET("/api/v1/allocations/id/:id", h.GetByID)
	router.PATCH("/api/v1/allocations/id/:id", h.Update)
	router.POST("/api/v1/allocations/id/:id/cancel", h.Cancel)
}
