package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/attendlyhq/attendly-backend-go/internal/domain/employee"
	"github.com/attendlyhq/attendly-backend-go/internal/domain/organization"
	"github.com/attendlyhq/attendly-backend-go/internal/handler/http/response"
)

type OrganizationService interface {
	Onboard(ctx context.Context, req organization.CreateOrganizationRequest) (organization.OrganizationResponse, error)
	Get(ctx context.Context, actor employee.Actor) (organization.OrganizationResponse, error)
	UpdateSettings(ctx context.Context, actor employee.Actor, req organization.UpdateSettingsRequest) (organization.OrganizationResponse, error)
	AddHoliday(ctx context.Context, actor employee.Actor, req organization.AddHolidayRequest) (organization.HolidayResponse, error)
}

type OrganizationHandler interface {
	Onboard(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)
	AddHoliday(w http.ResponseWriter, r *http.Request)
}

type organizationHandlerImpl struct {
	organizationService OrganizationService
}

func NewOrganizationHandler(organizationService OrganizationService) OrganizationHandler {
	return &organizationHandlerImpl{organizationService: organizationService}
}

// Onboard implements OrganizationHandler.
func (h *organizationHandlerImpl) Onboard(w http.ResponseWriter, r *http.Request) {
	var req organization.CreateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode organization request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.organizationService.Onboard(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Organization created", result)
}

// Get implements OrganizationHandler.
func (h *organizationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.organizationService.Get(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateSettings implements OrganizationHandler.
func (h *organizationHandlerImpl) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req organization.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode settings request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.organizationService.UpdateSettings(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Settings updated", result)
}

// AddHoliday implements OrganizationHandler.
func (h *organizationHandlerImpl) AddHoliday(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req organization.AddHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode holiday request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.organizationService.AddHoliday(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday added", result)
}
