package main

import (
	"fmt"
	"net/http"

	"github.com/campushq/school-backend-go/internal/config"
	appHTTP "github.com/campushq/school-backend-go/internal/handler/http"
	"github.com/campushq/school-backend-go/internal/pkg/database"
	"github.com/campushq/school-backend-go/internal/pkg/jwt"
	"github.com/campushq/school-backend-go/internal/repository/postgresql"
	attendanceService "github.com/campushq/school-backend-go/internal/service/attendance"
	employeeService "github.com/campushq/school-backend-go/internal/service/employee"
	leaveService "github.com/campushq/school-backend-go/internal/service/leave"
	payrollService "github.com/campushq/school-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, employeeRepo, cfg.School)
	payrollSvc := payrollService.NewPayrollService(db, payrollRepo, employeeRepo, attendanceRepo)
	leaveSvc := leaveService.NewLeaveService(db, leaveRepo, employeeRepo)

	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)

	router := appHTTP.NewRouter(
		JWTService,
		payrollHandler,
		employeeHandler,
		attendanceHandler,
		leaveHandler,
		cfg.App.FrontendURL,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
