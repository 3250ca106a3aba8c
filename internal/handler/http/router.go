package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/sitecrew/workforce-backend-go/internal/handler/http/middleware"
	"github.com/sitecrew/workforce-backend-go/internal/pkg/jwt"
)

func NewRouter(JWTService jwt.Service, summaryHandler SummaryHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "workforce-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
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

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/summaries", func(r chi.Router) {
				r.Get("/", summaryHandler.List)

				// Supervisor or admin
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireSupervisor)
					r.Post("/generate", summaryHandler.Generate)
					r.Post("/bulk-generate", summaryHandler.BulkGenerate)
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/bulk-approve", summaryHandler.BulkApprove)
				})

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", summaryHandler.Get)
					r.Get("/export", summaryHandler.Export)
					r.Post("/sign", summaryHandler.StaffSign)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireSupervisor)
						r.Post("/regenerate", summaryHandler.Regenerate)
					})

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireAdmin)
						r.Post("/decision", summaryHandler.Decide)
					})
				})
			})
		})
	})

	return r
}
