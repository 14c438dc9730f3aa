package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(
	appName string,
	corsOrigins []string,
	timeEntryHandler TimeEntryHandler,
	payrollHandler PayrollHandler,
	reportHandler ReportHandler,
	employeeHandler EmployeeHandler,
	seedHandler SeedHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", appName),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/time-entries", func(r chi.Router) {
			r.Post("/clock-in", timeEntryHandler.ClockIn)
			r.Post("/clock-out", timeEntryHandler.ClockOut)
			r.Post("/close-open", timeEntryHandler.BulkCloseToday)

			r.Get("/", timeEntryHandler.List)
			r.Post("/", timeEntryHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", timeEntryHandler.Get)
				r.Put("/", timeEntryHandler.Update)
				r.Delete("/", timeEntryHandler.Delete)
			})
		})

		r.Route("/payrolls", func(r chi.Router) {
			r.Post("/run", payrollHandler.StartPayRun)

			r.Get("/", payrollHandler.List)
			r.Post("/", payrollHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", payrollHandler.Get)
				r.Put("/", payrollHandler.Update)
				r.Patch("/status", payrollHandler.UpdateStatus)
				r.Delete("/", payrollHandler.Delete)
			})
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/compensation", reportHandler.Compensation)
			r.Get("/payroll-summary", reportHandler.PayrollSummary)
			r.Get("/time-attendance", reportHandler.TimeAttendance)
		})

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", employeeHandler.List)
			r.Post("/", employeeHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", employeeHandler.Get)
				r.Put("/", employeeHandler.Update)
				r.Post("/deactivate", employeeHandler.Deactivate)
				r.Post("/reactivate", employeeHandler.Reactivate)
			})
		})

		r.Post("/seed", seedHandler.SeedDemoData)
	})
	return r
}
