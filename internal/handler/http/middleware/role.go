package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/attendlyhq/attendly-backend-go/internal/domain/employee"
	"github.com/attendlyhq/attendly-backend-go/internal/handler/http/response"
)

// RequireSuperAdmin requires the super_admin role
func RequireSuperAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Forbidden(w, "Super admin access required")
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != string(employee.RoleSuperAdmin) {
			response.Forbidden(w, "Super admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireManager requires reporting_manager or super_admin role
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Forbidden(w, "Manager access required")
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.Forbidden(w, "Manager access required")
			return
		}

		role := employee.Role(roleStr)
		if role != employee.RoleReportingManager && role != employee.RoleSuperAdmin {
			response.Forbidden(w, "Manager access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
