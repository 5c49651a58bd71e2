package http

import (
	"log/slog"
	"os"

	"github.com/cistech/hrms-backend-go/internal/handler/http/middleware"
	"github.com/cistech/hrms-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(jwtService jwt.Service, authHandler AuthHandler, requestHandler RequestHandler, quotaHandler QuotaHandler, userHandler UserHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms-cistech"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/requests", func(r chi.Router) {
				r.Get("/my", requestHandler.MyRequests)
				r.Post("/leave", requestHandler.SubmitLeave)
				r.Post("/changeoff", requestHandler.SubmitChangeOff)
				r.Get("/{id}/attachment", requestHandler.DownloadAttachment)

				// Manager stage
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/pending/manager", requestHandler.PendingForManager)
					r.Get("/team", requestHandler.TeamRequests)
					r.Post("/{id}/manager-decision", requestHandler.ManagerDecision)
				})

				// HR stage
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHRAdmin)
					r.Get("/pending/hr", requestHandler.PendingHR)
					r.Post("/{id}/hr-decision", requestHandler.HRDecision)
				})
			})

			r.Route("/quotas", func(r chi.Router) {
				r.Get("/my", quotaHandler.MyQuota)

				// HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHRAdmin)
					r.Get("/{userID}", quotaHandler.GetQuota)
					r.Put("/{userID}", quotaHandler.UpsertQuota)
					r.Delete("/{userID}", quotaHandler.DeleteQuota)
				})
			})

			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequireHRAdmin)
				r.Get("/", userHandler.List)
				r.Post("/", userHandler.Create)
				r.Get("/managers", userHandler.ListManagers)
				r.Put("/{id}", userHandler.Update)
				r.Delete("/{id}", userHandler.Delete)
			})
		})
	})
	return r
}
