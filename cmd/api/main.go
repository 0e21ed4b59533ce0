package main

import (
	"fmt"
	"net/http"

	"github.com/salonops/timecore-backend-go/internal/config"
	appHTTP "github.com/salonops/timecore-backend-go/internal/handler/http"
	"github.com/salonops/timecore-backend-go/internal/pkg/database"
	"github.com/salonops/timecore-backend-go/internal/repository/postgresql"
	advanceService "github.com/salonops/timecore-backend-go/internal/service/advance"
	payrollService "github.com/salonops/timecore-backend-go/internal/service/payroll"
	ledgerService "github.com/salonops/timecore-backend-go/internal/service/timeledger"
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

	txManager := postgresql.NewTxManager(db)
	ledgerRepo := postgresql.NewTimeLedgerRepository(db)
	staffRepo := postgresql.NewStaffRepository(db)
	advanceRepo := postgresql.NewAdvanceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	ledgerSvc := ledgerService.NewTimeLedgerService(ledgerRepo, cfg.Attendance.StandardDailyMinutes)
	payrollSvc := payrollService.NewPayrollService(txManager, payrollRepo, staffRepo, advanceRepo)
	advanceSvc := advanceService.NewAdvanceService(advanceRepo, staffRepo)

	ledgerHandler := appHTTP.NewTimeLedgerHandler(ledgerSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc, advanceSvc)

	router := appHTTP.NewRouter(ledgerHandler, payrollHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
