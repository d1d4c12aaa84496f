package main

import (
	"fmt"
	"net/http"

	"github.com/attendlyhq/attendly-backend-go/internal/config"
	appHTTP "github.com/attendlyhq/attendly-backend-go/internal/handler/http"
	"github.com/attendlyhq/attendly-backend-go/internal/pkg/database"
	"github.com/attendlyhq/attendly-backend-go/internal/pkg/jwt"
	"github.com/attendlyhq/attendly-backend-go/internal/repository/postgresql"
	attendanceService "github.com/attendlyhq/attendly-backend-go/internal/service/attendance"
	authService "github.com/attendlyhq/attendly-backend-go/internal/service/auth"
	employeeService "github.com/attendlyhq/attendly-backend-go/internal/service/employee"
	leaveService "github.com/attendlyhq/attendly-backend-go/internal/service/leave"
	organizationService "github.com/attendlyhq/attendly-backend-go/internal/service/organization"
	payrollService "github.com/attendlyhq/attendly-backend-go/internal/service/payroll"
	regularizationService "github.com/attendlyhq/attendly-backend-go/internal/service/regularization"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	organizationRepo := postgresql.NewOrganizationRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	txRunner := postgresql.NewTxRunner(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	authSvc := authService.NewAuthService(employeeRepo, jwtService)
	organizationSvc := organizationService.NewOrganizationService(organizationRepo, employeeRepo, txRunner)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, organizationRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, organizationRepo)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, attendanceRepo, employeeRepo, organizationRepo, txRunner)
	regularizationSvc := regularizationService.NewRegularizationService(attendanceRepo, employeeRepo, organizationRepo, leaveRepo, txRunner)
	payrollSvc := payrollService.NewPayrollService(attendanceRepo, employeeRepo, organizationRepo)

	router := appHTTP.NewRouter(jwtService, cfg.App.FrontendURL, appHTTP.Handlers{
		Auth:           appHTTP.NewAuthHandler(authSvc),
		Organization:   appHTTP.NewOrganizationHandler(organizationSvc),
		Employee:       appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance:     appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:          appHTTP.NewLeaveHandler(leaveSvc),
		Regularization: appHTTP.NewRegularizationHandler(regularizationSvc),
		Payroll:        appHTTP.NewPayrollHandler(payrollSvc),
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
