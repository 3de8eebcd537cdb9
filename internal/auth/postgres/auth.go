package postgres

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/fondationhn/dossier-management/internal"
	"github.com/fondationhn/dossier-management/internal/auth"
	userDatamodel "github.com/fondationhn/dossier-management/internal/core/datamodel/user"
)

// Repository implements auth.UserRepository over the users table.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetCredentials(email string) (string, string, error) {
	var row userDatamodel.User
	err := r.db.Select("id", "password_hash").Where("email = ?", email).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", apperrors.ErrUserNotFound
		}
		return "", "", err
	}
	return row.ID, row.PasswordHash, nil
}

func (r *Repository) GetByID(userID string) (*auth.User, error) {
	var row userDatamodel.User
	err := r.db.Where("id = ?", userID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	return &auth.User{
		ID:     row.ID,
		Name:   row.Name,
		Email:  row.Email,
		Role:   auth.Role(row.Role),
		Avatar: row.Avatar,
	}, nil
}

func (r *Repository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) Create(u *auth.User, passwordHash string) error {
	row := &userDatamodel.User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: passwordHash,
		Role:         string(u.Role),
		Avatar:       u.Avatar,
	}
	if err := r.db.Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrDuplicateEmail
		}
		return err
	}
	return nil
}
