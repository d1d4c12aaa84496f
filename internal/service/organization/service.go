package organization

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/attendlyhq/attendly-backend-go/internal/domain/employee"
	"github.com/attendlyhq/attendly-backend-go/internal/domain/organization"
	"github.com/attendlyhq/attendly-backend-go/internal/pkg/database"
	"github.com/attendlyhq/attendly-backend-go/internal/pkg/validator"
)

const (
	defaultTimezone     = "UTC"
	defaultCheckInTime  = "09:00"
	defaultCheckOutTime = "18:00"
)

type OrganizationServiceImpl struct {
	organization.OrganizationRepository
	employee.EmployeeRepository
	tx database.TxManager
}

func NewOrganizationService(
	organizationRepo organization.OrganizationRepository,
	employeeRepo employee.EmployeeRepository,
	tx database.TxManager,
) *OrganizationServiceImpl {
	return &OrganizationServiceImpl{
		OrganizationRepository: organizationRepo,
		EmployeeRepository:     employeeRepo,
		tx:                     tx,
	}
}

// Onboard creates an organization together with its bootstrap super
// admin in one transaction; a failed admin insert rolls the
// organization back too.
func (s *OrganizationServiceImpl) Onboard(ctx context.Context, req organization.CreateOrganizationRequest) (organization.OrganizationResponse, error) {
	if err := req.Validate(); err != nil {
		return organization.OrganizationResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return organization.OrganizationResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	org := &organization.Organization{
		Name:         req.Name,
		Address:      req.Address,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Timezone:     defaultTimezone,
		CheckInTime:  defaultCheckInTime,
		CheckOutTime: defaultCheckOutTime,
		IsActive:     true,
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.OrganizationRepository.Create(ctx, org); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				if pgErr.ConstraintName == "organizations_contact_phone_key" {
					return organization.ErrContactPhoneExists
				}
				return organization.ErrContactEmailExists
			}
			return err
		}

		admin := &employee.Employee{
			OrganizationID:    org.ID,
			Name:              req.Name + " Admin",
			Email:             req.ContactEmail,
			Username:          req.AdminUsername,
			PasswordHash:      string(hash),
			Role:              employee.RoleSuperAdmin,
			IsActive:          true,
			JoinDate:          time.Now(),
			CheckInTime:       org.CheckInTime,
			CheckOutTime:      org.CheckOutTime,
			WorkDurationHours: 9,
		}
		if err := s.EmployeeRepository.Create(ctx, admin); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return employee.ErrUsernameExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return organization.OrganizationResponse{}, err
	}

	return toOrganizationResponse(org), nil
}

// Get returns the actor's organization with its holidays.
func (s *OrganizationServiceImpl) Get(ctx context.Context, actor employee.Actor) (organization.OrganizationResponse, error) {
	org, err := s.OrganizationRepository.GetByID(ctx, actor.OrganizationID)
	if err != nil {
		return organization.OrganizationResponse{}, err
	}
	return toOrganizationResponse(org), nil
}

// UpdateSettings applies the non-nil geofence, timezone, clock and
// week-off settings. Super admin only.
func (s *OrganizationServiceImpl) UpdateSettings(ctx context.Context, actor employee.Actor, req organization.UpdateSettingsRequest) (organization.OrganizationResponse, error) {
	if actor.Role != employee.RoleSuperAdmin {
		return organization.OrganizationResponse{}, employee.ErrNotAuthorized
	}
	if err := req.Validate(); err != nil {
		return organization.OrganizationResponse{}, err
	}

	org, err := s.OrganizationRepository.GetByID(ctx, actor.OrganizationID)
	if err != nil {
		return organization.OrganizationResponse{}, err
	}

	if req.Latitude != nil {
		org.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		org.Longitude = req.Longitude
	}
	if req.Timezone != nil {
		if _, err := time.LoadLocation(*req.Timezone); err != nil {
			return organization.OrganizationResponse{}, validator.ValidationErrors{
				{Field: "timezone", Message: "timezone must be a valid IANA name"},
			}
		}
		org.Timezone = *req.Timezone
	}
	if req.CheckInTime != nil {
		org.CheckInTime = *req.CheckInTime
	}
	if req.CheckOutTime != nil {
		org.CheckOutTime = *req.CheckOutTime
	}
	if req.WeeklyOff != nil {
		if *req.WeeklyOff == "" {
			org.WeeklyOff = nil
		} else {
			org.WeeklyOff = req.WeeklyOff
		}
	}

	if err := s.OrganizationRepository.Update(ctx, org); err != nil {
		return organization.OrganizationResponse{}, fmt.Errorf("failed to update organization: %w", err)
	}

	return toOrganizationResponse(org), nil
}

// AddHoliday appends a holiday interval to the organization calendar.
// Super admin only.
func (s *OrganizationServiceImpl) AddHoliday(ctx context.Context, actor employee.Actor, req organization.AddHolidayRequest) (organization.HolidayResponse, error) {
	if actor.Role != employee.RoleSuperAdmin {
		return organization.HolidayResponse{}, employee.ErrNotAuthorized
	}
	if err := req.Validate(); err != nil {
		return organization.HolidayResponse{}, err
	}

	org, err := s.OrganizationRepository.GetByID(ctx, actor.OrganizationID)
	if err != nil {
		return organization.HolidayResponse{}, err
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)

	holiday := &organization.Holiday{
		OrganizationID: org.ID,
		Name:           req.Name,
		StartDate:      start,
		EndDate:        end,
	}
	if err := s.OrganizationRepository.AddHoliday(ctx, holiday); err != nil {
		return organization.HolidayResponse{}, fmt.Errorf("failed to add holiday: %w", err)
	}

	return toHolidayResponse(holiday), nil
}

func toHolidayResponse(h *organization.Holiday) organization.HolidayResponse {
	return organization.HolidayResponse{
		ID:        h.ID,
		Name:      h.Name,
		StartDate: h.StartDate.Format("2006-01-02"),
		EndDate:   h.EndDate.Format("2006-01-02"),
	}
}

func toOrganizationResponse(org *organization.Organization) organization.OrganizationResponse {
	holidays := make([]organization.HolidayResponse, 0, len(org.Holidays))
	for i := range org.Holidays {
		holidays = append(holidays, toHolidayResponse(&org.Holidays[i]))
	}
	return organization.OrganizationResponse{
		ID:           org.ID,
		Name:         org.Name,
		Address:      org.Address,
		ContactEmail: org.ContactEmail,
		ContactPhone: org.ContactPhone,
		Latitude:     org.Latitude,
		Longitude:    org.Longitude,
		Timezone:     org.Timezone,
		CheckInTime:  org.CheckInTime,
		CheckOutTime: org.CheckOutTime,
		WeeklyOff:    org.WeeklyOff,
		IsActive:     org.IsActive,
		Holidays:     holidays,
		CreatedAt:    org.CreatedAt.Format(time.RFC3339),
	}
}
