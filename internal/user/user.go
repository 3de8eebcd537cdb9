package user

import (
	"time"

	"github.com/fondationhn/dossier-management/internal/auth"
	userDatamodel "github.com/fondationhn/dossier-management/internal/core/datamodel/user"
)

// User is the full identity record. The password hash never serializes.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         auth.Role `json:"role"`
	Avatar       *string   `json:"avatar,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         auth.Role(u.Role),
		Avatar:       u.Avatar,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func FromDataModelSlice(rows []*userDatamodel.User) []*User {
	result := make([]*User, len(rows))
	for i, row := range rows {
		result[i] = FromDataModel(row)
	}
	return result
}
