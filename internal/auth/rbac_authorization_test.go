package auth

import (
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/fondationhn/dossier-management/internal/transport"
)

var _ = ginkgo.Describe("RBACAuthorization middleware", func() {
	var (
		rbac    *RBACAuthorization
		nextHit bool
		next    http.Handler
	)

	ginkgo.BeforeEach(func() {
		rbac = NewRBACAuthorization(transport.NewBaseHandler(slog.Default()), slog.Default())
		nextHit = false
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nextHit = true
			w.WriteHeader(http.StatusOK)
		})
	})

	request := func(user *User) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/dossiers", nil)
		if user != nil {
			req = req.WithContext(ContextWithUser(req.Context(), user))
		}
		rec := httptest.NewRecorder()
		rbac.RequireCapability(CapDossierDeleteAny)(next).ServeHTTP(rec, req)
		return rec
	}

	ginkgo.It("answers 401 when no identity is on the context", func() {
		rec := request(nil)
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		gomega.Expect(nextHit).To(gomega.BeFalse())
	})

	ginkgo.It("answers 403 when the identity lacks the capability", func() {
		rec := request(&User{ID: "u1", Role: RoleParent})
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
		gomega.Expect(nextHit).To(gomega.BeFalse())
	})

	ginkgo.It("answers 403 when the identity carries an unknown role", func() {
		rec := request(&User{ID: "u1", Role: Role("superuser")})
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
		gomega.Expect(nextHit).To(gomega.BeFalse())
	})

	ginkgo.It("passes through when the capability is held", func() {
		rec := request(&User{ID: "u1", Role: RoleAdmin})
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		gomega.Expect(nextHit).To(gomega.BeTrue())
	})

	ginkgo.It("accepts any one of several required capabilities", func() {
		req := httptest.NewRequest(http.MethodGet, "/dossiers", nil)
		req = req.WithContext(ContextWithUser(req.Context(), &User{ID: "u2", Role: RoleParent}))
		rec := httptest.NewRecorder()
		rbac.RequireCapability(CapDossierViewOwn, CapDossierViewAny)(next).ServeHTTP(rec, req)
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
	})
})
