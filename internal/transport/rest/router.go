package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/jmoiron/sqlx"

	"github.com/fondationhn/dossier-management/internal/assistant"
	"github.com/fondationhn/dossier-management/internal/auth"
	"github.com/fondationhn/dossier-management/internal/dossier"
	"github.com/fondationhn/dossier-management/internal/formulaire"
	"github.com/fondationhn/dossier-management/internal/metrics"
	"github.com/fondationhn/dossier-management/internal/transport"
	"github.com/fondationhn/dossier-management/internal/transport/middleware"
	"github.com/fondationhn/dossier-management/internal/transport/swagger"
	"github.com/fondationhn/dossier-management/internal/user"
)

// RouterConfig carries the transport-level knobs the router needs.
type RouterConfig struct {
	AllowedOrigins string
	LoginRPS       int
	LoginBurst     int
}

func RegisterAllRoutes(
	router *chi.Mux,
	cfg RouterConfig,
	db *sql.DB,
	sqlxDB *sqlx.DB,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	dossierHandler *dossier.Handler,
	formulaireHandler *formulaire.Handler,
	assistantHandler *assistant.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)
	rbac := auth.NewRBACAuthorization(transport.NewBaseHandler(logger), logger)
	ownership := dossier.NewOwnershipGuard(sqlxDB, logger)
	loginLimiter := middleware.NewIPRateLimiter(cfg.LoginRPS, cfg.LoginBurst)

	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.SecurityHeaders)
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(metrics.Middleware(routePattern))

	router.Get("/health", healthHandler.healthCheckHandler)
	router.Get("/ping", healthHandler.pingHandler)
	router.Handle("/metrics", metrics.Handler())

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	// Public routes
	router.Group(func(r chi.Router) {
		r.Post("/users/register", authHandler.Register)
		r.With(loginLimiter.Middleware).Post("/users/login", authHandler.Login)
		r.Post("/assistant/message", assistantHandler.Message)
	})

	// Authenticated routes
	router.Group(func(r chi.Router) {
		r.Use(authHandler.AuthMiddleware)

		r.Get("/users/profile", userHandler.GetProfile)

		r.Group(func(ar chi.Router) {
			ar.Use(rbac.RequireAdmin())
			ar.Get("/users", userHandler.ListUsers)
			ar.Delete("/users/{id}", userHandler.DeleteUser)
		})

		r.Route("/dossiers", func(dr chi.Router) {
			dr.With(rbac.RequireCapability(auth.CapDossierCreateOwn, auth.CapDossierCreateAny)).
				Post("/", dossierHandler.CreateDossier)
			dr.With(rbac.RequireCapability(auth.CapDossierViewOwn, auth.CapDossierViewAny)).
				Get("/", dossierHandler.ListDossiers)

			dr.Route("/{id}", func(ir chi.Router) {
				ir.Use(rbac.RequireCapability(auth.CapDossierViewOwn, auth.CapDossierViewAny))
				ir.Use(ownership.RequireOwnershipOrViewAny())

				ir.Get("/", dossierHandler.GetDossier)
				ir.Put("/", dossierHandler.UpdateDossier)
				ir.With(rbac.RequireCapability(auth.CapDossierStatusUpdate)).
					Patch("/status", dossierHandler.UpdateStatus)
				ir.With(rbac.RequireCapability(auth.CapDossierDeleteAny)).
					Delete("/", dossierHandler.DeleteDossier)
			})
		})

		r.Route("/formulaires", func(fr chi.Router) {
			fr.Get("/", formulaireHandler.ListTemplates)
			fr.Get("/submissions", formulaireHandler.ListSubmissions)
			fr.Get("/{type}", formulaireHandler.GetTemplate)
			fr.Post("/{type}/submissions", formulaireHandler.Submit)
		})
	})
}

func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return r.URL.Path
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return r.URL.Path
}
