package dossier

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"

	apperrors "github.com/fondationhn/dossier-management/internal"
	"github.com/fondationhn/dossier-management/internal/auth"
	"github.com/fondationhn/dossier-management/internal/transport"
)

// OwnershipGuard short-circuits access to a single dossier before the
// handler runs. Actors holding view-any pass through; everyone else
// must own the dossier. Foreign and missing ids both answer not-found.
type OwnershipGuard struct {
	db     *sqlx.DB
	base   *transport.BaseHandler
	logger *slog.Logger
}

func NewOwnershipGuard(db *sqlx.DB, logger *slog.Logger) *OwnershipGuard {
	return &OwnershipGuard{
		db:     db,
		base:   transport.NewBaseHandler(nil),
		logger: logger.With("component", "ownership_guard"),
	}
}

func (g *OwnershipGuard) RequireOwnershipOrViewAny() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := auth.UserFromContext(r.Context())
			if !ok {
				g.base.HandleServiceError(w, apperrors.NewUnauthorizedError("authentication required", apperrors.ErrCodeInvalidToken))
				return
			}
			if actor.Can(auth.CapDossierViewAny) {
				next.ServeHTTP(w, r)
				return
			}

			dossierID := chi.URLParam(r, "id")
			ownerID, err := g.ownerOf(r, dossierID)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					g.base.HandleServiceError(w, apperrors.ErrDossierNotFound)
					return
				}
				g.logger.Error("owner lookup failed", "dossier_id", dossierID, "error", err)
				g.base.HandleServiceError(w, apperrors.NewInternalError("failed to check dossier access", err))
				return
			}
			if ownerID != actor.ID {
				g.base.HandleServiceError(w, apperrors.ErrDossierNotFound)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (g *OwnershipGuard) ownerOf(r *http.Request, dossierID string) (string, error) {
	var ownerID string
	err := g.db.GetContext(r.Context(), &ownerID,
		"SELECT user_id FROM dossiers WHERE id = $1", dossierID)
	return ownerID, err
}
