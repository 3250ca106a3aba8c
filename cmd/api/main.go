package main

import (
	"fmt"
	"net/http"

	"github.com/sitecrew/workforce-backend-go/internal/config"
	appHTTP "github.com/sitecrew/workforce-backend-go/internal/handler/http"
	"github.com/sitecrew/workforce-backend-go/internal/pkg/database"
	"github.com/sitecrew/workforce-backend-go/internal/pkg/jwt"
	"github.com/sitecrew/workforce-backend-go/internal/repository/postgresql"
	summaryService "github.com/sitecrew/workforce-backend-go/internal/service/summary"
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

	summaryRepo := postgresql.NewSummaryRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceEventRepository(db)
	leaveRepo := postgresql.NewLeaveGrantRepository(db)
	rateResolver := postgresql.NewRateResolver(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)

	engine := summaryService.NewAggregationEngine(
		attendanceRepo,
		leaveRepo,
		cfg.Engine.DefaultOTThresholdHours,
		cfg.Engine.DefaultExpectedWorkingDays,
	)
	calculator := summaryService.NewFinancialCalculator(cfg.Engine.DefaultTaxPercentage)
	service := summaryService.NewSummaryService(
		summaryRepo,
		employeeRepo,
		rateResolver,
		engine,
		calculator,
		cfg.Engine.BulkWorkerCount,
	)

	summaryHandler := appHTTP.NewSummaryHandler(service)

	router := appHTTP.NewRouter(JWTService, summaryHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Server starting on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
