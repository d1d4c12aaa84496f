package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/attendlyhq/attendly-backend-go/internal/domain/attendance"
	"github.com/attendlyhq/attendly-backend-go/internal/domain/employee"
	"github.com/attendlyhq/attendly-backend-go/internal/handler/http/response"
)

type AttendanceService interface {
	CheckIn(ctx context.Context, actor employee.Actor, req attendance.CheckInRequest) (attendance.AttendanceResponse, error)
	CheckOut(ctx context.Context, actor employee.Actor, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error)
	MonthlyAttendance(ctx context.Context, actor employee.Actor, employeeID string, year int, month time.Month) (attendance.MonthlyAttendanceResponse, error)
}

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Monthly(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService AttendanceService
}

func NewAttendanceHandler(attendanceService AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode check-in request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.CheckIn(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check-in successful", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode check-out request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.CheckOut(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check-out successful", result)
}

// Monthly implements AttendanceHandler. Route params carry the
// employee, query params the target year and month; both default to
// the current month when absent.
func (h *attendanceHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	employeeID := chi.URLParam(r, "id")
	year, month, ok := yearMonthParams(r)
	if !ok {
		response.BadRequest(w, "year and month must be numeric", nil)
		return
	}

	result, err := h.attendanceService.MonthlyAttendance(r.Context(), actor, employeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func yearMonthParams(r *http.Request) (int, time.Month, bool) {
	now := time.Now()
	year, month := now.Year(), now.Month()

	if v := r.URL.Query().Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, false
		}
		year = n
	}
	if v := r.URL.Query().Get("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 12 {
			return 0, 0, false
		}
		month = time.Month(n)
	}
	return year, month, true
}
