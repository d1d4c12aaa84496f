package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/jwtauth/v5"

	"github.com/attendlyhq/attendly-backend-go/internal/domain/auth"
	"github.com/attendlyhq/attendly-backend-go/internal/domain/employee"
)

// actorFrom builds the authenticated principal from the JWT claims the
// Verifier middleware put on the context.
func actorFrom(r *http.Request) (employee.Actor, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return employee.Actor{}, auth.ErrInvalidToken
	}

	id, ok := claims["employee_id"].(string)
	if !ok || id == "" {
		return employee.Actor{}, auth.ErrInvalidToken
	}
	orgID, ok := claims["organization_id"].(string)
	if !ok || orgID == "" {
		return employee.Actor{}, auth.ErrInvalidToken
	}
	role, ok := claims["role"].(string)
	if !ok {
		return employee.Actor{}, auth.ErrInvalidToken
	}

	return employee.Actor{
		ID:             id,
		OrganizationID: orgID,
		Role:           employee.Role(role),
	}, nil
}

// pageParams reads ?limit and ?offset. Zero values let the service
// apply its defaults.
func pageParams(r *http.Request) (limit, offset int) {
	q := r.URL.Query()
	limit, _ = strconv.Atoi(q.Get("limit"))
	offset, _ = strconv.Atoi(q.Get("offset"))
	return limit, offset
}
