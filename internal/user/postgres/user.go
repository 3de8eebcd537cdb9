package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/fondationhn/dossier-management/internal"
	dossierDatamodel "github.com/fondationhn/dossier-management/internal/core/datamodel/dossier"
	userDatamodel "github.com/fondationhn/dossier-management/internal/core/datamodel/user"
	"github.com/fondationhn/dossier-management/internal/user"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(ctx context.Context, id string) (*user.User, error) {
	var row userDatamodel.User
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&row), nil
}

func (r *Repository) GetAll(ctx context.Context) ([]*user.User, error) {
	var rows []*userDatamodel.User
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return user.FromDataModelSlice(rows), nil
}

// Delete removes the user and their dossiers in one transaction. The
// explicit dossier delete keeps sqlite-backed tests honest, where the
// schema-level cascade is not always enforced.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&dossierDatamodel.Dossier{}).Error; err != nil {
			return err
		}
		return tx.Delete(&userDatamodel.User{}, "id = ?", id).Error
	})
}
