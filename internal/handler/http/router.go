package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(ledgerHandler TimeLedgerHandler, payrollHandler PayrollHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timecore"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/attendance", func(r chi.Router) {
			r.Post("/check-in", ledgerHandler.CheckIn)
			r.Get("/", ledgerHandler.List)
			r.Get("/overtime-total", ledgerHandler.OvertimeTotal)
			r.Put("/exits/{exitID}/end", ledgerHandler.EndExit)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", ledgerHandler.Get)
				r.Post("/check-out", ledgerHandler.CheckOut)
				r.Post("/exits", ledgerHandler.StartExit)
			})
		})

		r.Route("/payroll", func(r chi.Router) {
			r.Post("/process", payrollHandler.Process)
			r.Get("/", payrollHandler.List)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", payrollHandler.Get)
				r.Patch("/pay", payrollHandler.MarkPaid)
				r.Delete("/", payrollHandler.Delete)
			})
		})

		r.Route("/staff", func(r chi.Router) {
			r.Get("/{id}/advances", payrollHandler.ListAdvances)
		})
	})

	return r
}
