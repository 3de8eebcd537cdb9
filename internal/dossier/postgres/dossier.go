package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/fondationhn/dossier-management/internal"
	dossierDatamodel "github.com/fondationhn/dossier-management/internal/core/datamodel/dossier"
	"github.com/fondationhn/dossier-management/internal/dossier"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, d *dossier.Dossier) error {
	return r.db.WithContext(ctx).Create(d.ToDataModel()).Error
}

func (r *Repository) GetByID(ctx context.Context, id string) (*dossier.Dossier, error) {
	var row dossierDatamodel.Dossier
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDossierNotFound
		}
		return nil, err
	}
	return dossier.FromDataModel(&row), nil
}

func (r *Repository) GetByOwner(ctx context.Context, ownerID string) ([]*dossier.Dossier, error) {
	var rows []*dossierDatamodel.Dossier
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return dossier.FromDataModelSlice(rows), nil
}

func (r *Repository) GetAll(ctx context.Context) ([]*dossier.Dossier, error) {
	var rows []*dossierDatamodel.Dossier
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return dossier.FromDataModelSlice(rows), nil
}

func (r *Repository) Update(ctx context.Context, d *dossier.Dossier) error {
	// Select("*") forces every column so fields cleared to nil persist.
	result := r.db.WithContext(ctx).
		Model(&dossierDatamodel.Dossier{}).
		Where("id = ?", d.ID).
		Select("*").
		Updates(d.ToDataModel())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrDossierNotFound
	}
	return nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id string, status dossier.Status) error {
	result := r.db.WithContext(ctx).
		Model(&dossierDatamodel.Dossier{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrDossierNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&dossierDatamodel.Dossier{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrDossierNotFound
	}
	return nil
}
