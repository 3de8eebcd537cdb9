package postgres

import (
	"context"

	"gorm.io/gorm"

	formulaireDatamodel "github.com/fondationhn/dossier-management/internal/core/datamodel/formulaire"
	"github.com/fondationhn/dossier-management/internal/formulaire"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, s *formulaire.Submission) error {
	return r.db.WithContext(ctx).Create(s.ToDataModel()).Error
}

func (r *Repository) GetByUser(ctx context.Context, userID string) ([]*formulaire.Submission, error) {
	var rows []*formulaireDatamodel.Submission
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return formulaire.FromDataModelSlice(rows), nil
}

func (r *Repository) GetAll(ctx context.Context) ([]*formulaire.Submission, error) {
	var rows []*formulaireDatamodel.Submission
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return formulaire.FromDataModelSlice(rows), nil
}
