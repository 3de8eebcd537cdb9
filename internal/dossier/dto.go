package dossier

import (
	"time"

	errors "github.com/fondationhn/dossier-management/internal"
	"github.com/fondationhn/dossier-management/internal/core/common/validation"
)

// CreateDossierDTO carries the intake form for a new case file. The
// submitted status, if any, is ignored: every dossier starts as New.
type CreateDossierDTO struct {
	Nom             string    `json:"nom"`
	Prenom          string    `json:"prenom"`
	DateNaissance   time.Time `json:"date_naissance"`
	Sexe            string    `json:"sexe"`
	Commune         string    `json:"commune"`
	Quartier        *string   `json:"quartier"`
	ParentNom       string    `json:"parent_nom"`
	ParentTelephone *string   `json:"parent_telephone"`
	ParentEmail     *string   `json:"parent_email"`
	Diagnostic      *string   `json:"diagnostic"`
}

func (dto *CreateDossierDTO) Validate() *errors.AppError {
	v := validation.NewValidator()

	v.Field("nom", dto.Nom).Required().MaxLength(100)
	v.Field("prenom", dto.Prenom).Required().MaxLength(100)
	v.Field("date_naissance", dto.DateNaissance).Required().NotFuture()
	v.Field("sexe", dto.Sexe).Required().OneOf([]string{"M", "F"}, errors.ErrCodeInvalidSexe)
	v.Field("commune", dto.Commune).Required().MaxLength(100)
	v.Field("parent_nom", dto.ParentNom).Required().MaxLength(100)
	v.Field("parent_email", dto.ParentEmail).Email()

	return v.Validate()
}

// UpdateDossierDTO carries a partial update. Nil fields are left
// untouched. Status is handled separately from the descriptive fields
// because it needs a capability the other fields do not.
type UpdateDossierDTO struct {
	Nom             *string    `json:"nom"`
	Prenom          *string    `json:"prenom"`
	DateNaissance   *time.Time `json:"date_naissance"`
	Sexe            *string    `json:"sexe"`
	Commune         *string    `json:"commune"`
	Quartier        *string    `json:"quartier"`
	ParentNom       *string    `json:"parent_nom"`
	ParentTelephone *string    `json:"parent_telephone"`
	ParentEmail     *string    `json:"parent_email"`
	Diagnostic      *string    `json:"diagnostic"`
	Status          *string    `json:"status"`
}

func (dto *UpdateDossierDTO) Validate() *errors.AppError {
	v := validation.NewValidator()

	if dto.Nom != nil {
		v.Field("nom", *dto.Nom).Required().MaxLength(100)
	}
	if dto.Prenom != nil {
		v.Field("prenom", *dto.Prenom).Required().MaxLength(100)
	}
	if dto.DateNaissance != nil {
		v.Field("date_naissance", *dto.DateNaissance).Required().NotFuture()
	}
	if dto.Sexe != nil {
		v.Field("sexe", *dto.Sexe).Required().OneOf([]string{"M", "F"}, errors.ErrCodeInvalidSexe)
	}
	if dto.Commune != nil {
		v.Field("commune", *dto.Commune).Required().MaxLength(100)
	}
	if dto.ParentNom != nil {
		v.Field("parent_nom", *dto.ParentNom).Required().MaxLength(100)
	}
	v.Field("parent_email", dto.ParentEmail).Email()
	if dto.Status != nil {
		v.Field("status", *dto.Status).Custom(func(value interface{}) *errors.AppError {
			if s, ok := value.(string); ok && !Status(s).Valid() {
				return errors.NewValidationFieldError("status", "status is not a recognized value", errors.ErrCodeValidationFailed)
			}
			return nil
		})
	}

	return v.Validate()
}

// HasFieldChanges reports whether any descriptive field (anything but
// status) is present in the payload.
func (dto *UpdateDossierDTO) HasFieldChanges() bool {
	return dto.Nom != nil || dto.Prenom != nil || dto.DateNaissance != nil ||
		dto.Sexe != nil || dto.Commune != nil || dto.Quartier != nil ||
		dto.ParentNom != nil || dto.ParentTelephone != nil ||
		dto.ParentEmail != nil || dto.Diagnostic != nil
}

// Apply copies the present fields onto the dossier.
func (dto *UpdateDossierDTO) Apply(d *Dossier) {
	if dto.Nom != nil {
		d.Nom = *dto.Nom
	}
	if dto.Prenom != nil {
		d.Prenom = *dto.Prenom
	}
	if dto.DateNaissance != nil {
		d.DateNaissance = *dto.DateNaissance
	}
	if dto.Sexe != nil {
		d.Sexe = *dto.Sexe
	}
	if dto.Quartier != nil {
		d.Quartier = dto.Quartier
	}
	if dto.Commune != nil {
		d.Commune = *dto.Commune
	}
	if dto.ParentNom != nil {
		d.ParentNom = *dto.ParentNom
	}
	if dto.ParentTelephone != nil {
		d.ParentTelephone = dto.ParentTelephone
	}
	if dto.ParentEmail != nil {
		d.ParentEmail = dto.ParentEmail
	}
	if dto.Diagnostic != nil {
		d.Diagnostic = dto.Diagnostic
	}
}
