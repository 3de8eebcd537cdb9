package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User is the identity attached to a request context after the access guard
// has resolved the session token. Role is always re-read from the store, never
// trusted from the token, so role changes apply on the very next request.
type User struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Role   Role    `json:"role"`
	Avatar *string `json:"avatar,omitempty"`
}

// Capabilities returns the capability set the user's role grants.
func (u *User) Capabilities() []string {
	return PermissionsFor(u.Role)
}

func (u *User) Can(capability string) bool {
	return HasCapability(u.Role, capability)
}

// AuthResult is what login and register hand back: the identity plus a signed
// session token, mirrored by the client-side session cache.
type AuthResult struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Role   Role    `json:"role"`
	Avatar *string `json:"avatar,omitempty"`
	Token  string  `json:"token"`
}

// Claims carries only the identity id. Deliberately no role claim: a token
// outlives role changes by up to 30 days.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenGenerator creates and validates session tokens.
type TokenGenerator interface {
	GenerateToken(userID string) (token string, expiresAt time.Time, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

// ServiceAPI is the auth surface the HTTP layer depends on.
type ServiceAPI interface {
	Authenticate(dto LoginDTO) (*AuthResult, error)
	Register(dto RegisterDTO) (*AuthResult, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	GetUserByID(userID string) (*User, error)
}

type ctxKey string

const ContextUserKey ctxKey = "user"

func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ContextUserKey).(*User)
	return u, ok
}

func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}
