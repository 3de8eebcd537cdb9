package auth

import (
	"strings"

	errors "github.com/fondationhn/dossier-management/internal"
	"github.com/fondationhn/dossier-management/internal/core/common/validation"
)

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterDTO accepts new account requests. Role is optional and defaults to
// parent. A caller may also send a status-quo role explicitly; anything
// outside the closed set is rejected.
type RegisterDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

func (d LoginDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("email", d.Email).Required()
	v.Field("password", d.Password).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (d RegisterDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(200)
	v.Field("email", d.Email).Required().Email()
	v.Field("password", d.Password).Required().MinLength(8)
	if d.Role != "" {
		v.Field("role", d.Role).OneOf([]string{
			string(RoleParent), string(RoleSecretary), string(RoleAnalyst), string(RoleAdmin),
		}, errors.ErrCodeInvalidRole)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// NormalizedEmail lowercases and trims the email so uniqueness checks are
// case-insensitive.
func NormalizedEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
