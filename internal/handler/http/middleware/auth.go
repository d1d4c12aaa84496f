package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/attendlyhq/attendly-backend-go/internal/domain/auth"
	"github.com/attendlyhq/attendly-backend-go/internal/handler/http/response"
)

// AuthRequired gates a route group on a verified access token. The
// Verifier middleware has already parsed the Authorization header;
// this checks the token carries the claims issued at login.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if token == nil || !validAccessClaims(claims) {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// validAccessClaims rejects tokens that are not access tokens or that
// are missing the identity claims the handlers resolve the actor from.
func validAccessClaims(claims map[string]any) bool {
	if typ, _ := claims["type"].(string); typ != "access" {
		return false
	}
	if id, _ := claims["employee_id"].(string); id == "" {
		return false
	}
	if orgID, _ := claims["organization_id"].(string); orgID == "" {
		return false
	}
	return true
}
