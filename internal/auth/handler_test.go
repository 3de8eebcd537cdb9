package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	apperrors "github.com/fondationhn/dossier-management/internal"
)

type mockAuthService struct {
	authenticateResult *AuthResult
	authenticateErr    error
	registerResult     *AuthResult
	registerErr        error
	claims             *Claims
	claimsErr          error
	user               *User
	userErr            error
}

func (m *mockAuthService) Authenticate(LoginDTO) (*AuthResult, error) {
	return m.authenticateResult, m.authenticateErr
}

func (m *mockAuthService) Register(RegisterDTO) (*AuthResult, error) {
	return m.registerResult, m.registerErr
}

func (m *mockAuthService) ValidateAccessToken(string) (*Claims, error) {
	return m.claims, m.claimsErr
}

func (m *mockAuthService) GetUserByID(string) (*User, error) {
	return m.user, m.userErr
}

var _ = ginkgo.Describe("AuthHandler", func() {
	var (
		mockService *mockAuthService
		handler     *Handler
	)

	ginkgo.BeforeEach(func() {
		mockService = &mockAuthService{}
		handler = NewHandler(mockService)
	})

	ginkgo.Describe("Login", func() {
		ginkgo.It("returns 200 with the envelope on success", func() {
			mockService.authenticateResult = &AuthResult{ID: "u1", Role: RoleParent, Token: "tok"}

			req := httptest.NewRequest(http.MethodPost, "/users/login",
				bytes.NewBufferString(`{"email":"a@b.com","password":"secret"}`))
			rec := httptest.NewRecorder()
			handler.Login(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))

			var envelope struct {
				Success bool       `json:"success"`
				Data    AuthResult `json:"data"`
			}
			gomega.Expect(json.NewDecoder(rec.Body).Decode(&envelope)).To(gomega.Succeed())
			gomega.Expect(envelope.Success).To(gomega.BeTrue())
			gomega.Expect(envelope.Data.Token).To(gomega.Equal("tok"))
		})

		ginkgo.It("returns 401 for bad credentials", func() {
			mockService.authenticateErr = apperrors.ErrInvalidCredentials

			req := httptest.NewRequest(http.MethodPost, "/users/login",
				bytes.NewBufferString(`{"email":"a@b.com","password":"wrong"}`))
			rec := httptest.NewRecorder()
			handler.Login(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring(`"success":false`))
		})

		ginkgo.It("returns 400 for an unreadable body", func() {
			req := httptest.NewRequest(http.MethodPost, "/users/login", bytes.NewBufferString(`{`))
			rec := httptest.NewRecorder()
			handler.Login(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))
		})
	})

	ginkgo.Describe("Register", func() {
		ginkgo.It("returns 201 on success", func() {
			mockService.registerResult = &AuthResult{ID: "u2", Role: RoleParent, Token: "tok"}

			req := httptest.NewRequest(http.MethodPost, "/users/register",
				bytes.NewBufferString(`{"name":"A","email":"a@b.com","password":"longpassword"}`))
			rec := httptest.NewRecorder()
			handler.Register(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusCreated))
		})

		ginkgo.It("returns 400 for a duplicate email", func() {
			mockService.registerErr = apperrors.ErrDuplicateEmail

			req := httptest.NewRequest(http.MethodPost, "/users/register",
				bytes.NewBufferString(`{"name":"A","email":"a@b.com","password":"longpassword"}`))
			rec := httptest.NewRecorder()
			handler.Register(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))
		})
	})

	ginkgo.Describe("AuthMiddleware", func() {
		var next http.Handler
		var sawUser *User

		ginkgo.BeforeEach(func() {
			sawUser = nil
			next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				sawUser, _ = UserFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})
		})

		ginkgo.It("rejects a request without a token", func() {
			req := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
			rec := httptest.NewRecorder()
			handler.AuthMiddleware(next).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		})

		ginkgo.It("rejects an invalid token", func() {
			mockService.claimsErr = apperrors.ErrInvalidToken

			req := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
			req.Header.Set("Authorization", "Bearer bad-token")
			rec := httptest.NewRecorder()
			handler.AuthMiddleware(next).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		})

		ginkgo.It("rejects a token whose subject no longer exists", func() {
			mockService.claims = &Claims{UserID: "gone"}
			mockService.userErr = apperrors.ErrUserNotFound

			req := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
			req.Header.Set("Authorization", "Bearer some-token")
			rec := httptest.NewRecorder()
			handler.AuthMiddleware(next).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		})

		ginkgo.It("attaches the freshly loaded identity to the context", func() {
			mockService.claims = &Claims{UserID: "u1"}
			mockService.user = &User{ID: "u1", Role: RoleAnalyst}

			req := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
			req.Header.Set("Authorization", "Bearer good-token")
			rec := httptest.NewRecorder()
			handler.AuthMiddleware(next).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(sawUser).ToNot(gomega.BeNil())
			gomega.Expect(sawUser.Role).To(gomega.Equal(RoleAnalyst))
		})
	})
})
