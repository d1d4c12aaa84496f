package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/attendlyhq/attendly-backend-go/internal/handler/http/middleware"
	"github.com/attendlyhq/attendly-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth           AuthHandler
	Organization   OrganizationHandler
	Employee       EmployeeHandler
	Attendance     AttendanceHandler
	Leave          LeaveHandler
	Regularization RegularizationHandler
	Payroll        PayrollHandler
}

func NewRouter(jwtService jwt.Service, frontendURL string, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendly-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
		})

		// Organization onboarding is the one unauthenticated write:
		// it creates the tenant and its first super admin.
		r.Post("/organizations", h.Organization.Onboard)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Get("/auth/me", h.Auth.Me)

			r.Route("/organizations/my", func(r chi.Router) {
				r.Get("/", h.Organization.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireSuperAdmin)
					r.Patch("/settings", h.Organization.UpdateSettings)
					r.Post("/holidays", h.Organization.AddHoliday)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", h.Employee.List)
				})
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireSuperAdmin)
					r.Post("/", h.Employee.Register)
					r.Put("/{id}", h.Employee.Update)
				})
				r.Get("/{id}", h.Employee.Get)
				r.Get("/{id}/attendance", h.Attendance.Monthly)
				r.Get("/{id}/salary", h.Payroll.Salary)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", h.Attendance.CheckIn)
				r.Post("/check-out", h.Attendance.CheckOut)
			})

			r.Route("/regularizations", func(r chi.Router) {
				r.Post("/", h.Regularization.Apply)
				r.Get("/pending", h.Regularization.ListPending)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/{id}/decision", h.Regularization.Decide)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", h.Leave.Apply)
				r.Get("/", h.Leave.List)
				r.Get("/summary", h.Leave.Summary)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/{id}/decision", h.Leave.Decide)
				})
			})
		})
	})
	return r
}
