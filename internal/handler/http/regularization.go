package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/attendlyhq/attendly-backend-go/internal/domain/attendance"
	"github.com/attendlyhq/attendly-backend-go/internal/domain/employee"
	"github.com/attendlyhq/attendly-backend-go/internal/handler/http/response"
)

type RegularizationService interface {
	Apply(ctx context.Context, actor employee.Actor, req attendance.RegularizeApplyRequest) (attendance.AttendanceResponse, error)
	Decide(ctx context.Context, actor employee.Actor, attendanceID string, req attendance.RegularizeDecisionRequest) (attendance.AttendanceResponse, error)
	ListPending(ctx context.Context, actor employee.Actor, limit, offset int) ([]attendance.AttendanceResponse, error)
}

type RegularizationHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
}

type regularizationHandlerImpl struct {
	regularizationService RegularizationService
}

func NewRegularizationHandler(regularizationService RegularizationService) RegularizationHandler {
	return &regularizationHandlerImpl{regularizationService: regularizationService}
}

// Apply implements RegularizationHandler.
func (h *regularizationHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.RegularizeApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode regularization request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.regularizationService.Apply(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Regularization request submitted", result)
}

// Decide implements RegularizationHandler.
func (h *regularizationHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.RegularizeDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode regularization decision", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.regularizationService.Decide(r.Context(), actor, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Regularization "+req.Decision, result)
}

// ListPending implements RegularizationHandler.
func (h *regularizationHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	limit, offset := pageParams(r)
	result, err := h.regularizationService.ListPending(r.Context(), actor, limit, offset)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
