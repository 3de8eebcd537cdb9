package auth

import (
	"log/slog"
	"net/http"

	"github.com/fondationhn/dossier-management/internal/transport"
)

// RBACAuthorization is the second guard stage: identity → capability check.
// It assumes AuthMiddleware already ran; a missing context user is treated as
// unauthenticated, never forbidden.
type RBACAuthorization struct {
	base   *transport.BaseHandler
	logger *slog.Logger
}

func NewRBACAuthorization(base *transport.BaseHandler, logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{base: base, logger: logger}
}

// RequireCapability guards a route with one or more capabilities; holding any
// of them grants access. Routes without this middleware are open to every
// authenticated identity.
func (ra *RBACAuthorization) RequireCapability(capabilities ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || user == nil {
				ra.base.WriteError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			if !user.Role.Valid() {
				ra.logger.Error("identity carries unknown role", "user_id", user.ID, "role", user.Role)
				ra.base.WriteError(w, http.StatusForbidden, "insufficient capability")
				return
			}

			if !HasAnyCapability(user.Role, capabilities...) {
				ra.logger.Warn("access denied",
					"user_id", user.ID,
					"role", user.Role,
					"required", capabilities)
				ra.base.WriteError(w, http.StatusForbidden, "insufficient capability")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (ra *RBACAuthorization) RequireAdmin() func(http.Handler) http.Handler {
	return ra.RequireCapability(CapUserManage)
}
