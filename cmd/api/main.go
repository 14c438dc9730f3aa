package main

import (
	"fmt"
	"net/http"

	"github.com/chronopay/payroll-backend-go/internal/config"
	appHTTP "github.com/chronopay/payroll-backend-go/internal/handler/http"
	"github.com/chronopay/payroll-backend-go/internal/pkg/cron"
	"github.com/chronopay/payroll-backend-go/internal/pkg/database"
	"github.com/chronopay/payroll-backend-go/internal/repository/postgresql"
	employeeService "github.com/chronopay/payroll-backend-go/internal/service/employee"
	payrollService "github.com/chronopay/payroll-backend-go/internal/service/payroll"
	reportService "github.com/chronopay/payroll-backend-go/internal/service/report"
	seedService "github.com/chronopay/payroll-backend-go/internal/service/seed"
	timeentryService "github.com/chronopay/payroll-backend-go/internal/service/timeentry"
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
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	timeEntryRepo := postgresql.NewTimeEntryRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	txManager := postgresql.NewTxManager(db)

	ledgerSvc := timeentryService.NewLedgerService(timeEntryRepo, employeeRepo, txManager, nil)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, employeeRepo, txManager)
	reportSvc := reportService.NewReportService(employeeRepo, timeEntryRepo, payrollRepo)
	seedSvc := seedService.NewSeedService(employeeRepo, timeEntryRepo, payrollRepo, txManager)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)

	timeEntryHandler := appHTTP.NewTimeEntryHandler(ledgerSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	seedHandler := appHTTP.NewSeedHandler(seedSvc)

	scheduler := cron.NewScheduler()
	cron.NewTimeEntryJobs(ledgerSvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		cfg.App.Name,
		cfg.App.CORSOrigins,
		timeEntryHandler,
		payrollHandler,
		reportHandler,
		employeeHandler,
		seedHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
