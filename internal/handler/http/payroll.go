package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/attendlyhq/attendly-backend-go/internal/domain/employee"
	"github.com/attendlyhq/attendly-backend-go/internal/handler/http/response"
	"github.com/attendlyhq/attendly-backend-go/internal/service/payroll"
)

type PayrollService interface {
	CalculateMonthly(ctx context.Context, actor employee.Actor, employeeID string, year int, month time.Month) (payroll.SalaryResponse, error)
}

type PayrollHandler interface {
	Salary(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService PayrollService
}

func NewPayrollHandler(payrollService PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// Salary implements PayrollHandler.
func (h *payrollHandlerImpl) Salary(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.payrollService.CalculateMonthly(r.Context(), actor, employeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
