package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/attendlyhq/attendly-backend-go/internal/domain/employee"
	"github.com/attendlyhq/attendly-backend-go/internal/domain/leave"
	"github.com/attendlyhq/attendly-backend-go/internal/handler/http/response"
)

type LeaveService interface {
	Apply(ctx context.Context, actor employee.Actor, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error)
	Decide(ctx context.Context, actor employee.Actor, leaveID string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error)
	List(ctx context.Context, actor employee.Actor, status leave.Status, limit, offset int) ([]leave.LeaveResponse, error)
	RequestSummary(ctx context.Context, actor employee.Actor) (leave.RequestSummary, error)
}

type LeaveHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService LeaveService
}

func NewLeaveHandler(leaveService LeaveService) LeaveHandler {
	return &leaveHandlerImpl{leaveService: leaveService}
}

// Apply implements LeaveHandler.
func (h *leaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.ApplyLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode leave request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.leaveService.Apply(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", result)
}

// Decide implements LeaveHandler.
func (h *leaveHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.DecideLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode leave decision", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.leaveService.Decide(r.Context(), actor, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request "+req.Decision, result)
}

// List implements LeaveHandler.
func (h *leaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	limit, offset := pageParams(r)
	result, err := h.leaveService.List(r.Context(), actor, leave.Status(r.URL.Query().Get("status")), limit, offset)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Summary implements LeaveHandler.
func (h *leaveHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.leaveService.RequestSummary(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
