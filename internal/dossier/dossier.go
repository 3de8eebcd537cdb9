package dossier

import (
	"time"

	dossierDatamodel "github.com/fondationhn/dossier-management/internal/core/datamodel/dossier"
)

// Status is the lifecycle state of a case file.
type Status string

const (
	StatusNew        Status = "New"
	StatusInProgress Status = "InProgress"
	StatusIncomplete Status = "Incomplete"
	StatusAccepted   Status = "Accepted"
	StatusRejected   Status = "Rejected"
	StatusClosed     Status = "Closed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusIncomplete, StatusAccepted, StatusRejected, StatusClosed:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s Status) Terminal() bool {
	return s == StatusClosed
}

// CanTransition reports whether a dossier may move from one status to
// another. Any move between valid statuses is allowed except out of
// Closed; self-transitions are rejected as no-ops.
func CanTransition(from, to Status) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from.Terminal() {
		return false
	}
	return from != to
}

// Dossier is a beneficiary case file. Field names follow the intake
// vocabulary used by the foundation's staff.
type Dossier struct {
	ID              string     `json:"id"`
	Nom             string     `json:"nom"`
	Prenom          string     `json:"prenom"`
	DateNaissance   time.Time  `json:"date_naissance"`
	Sexe            string     `json:"sexe"`
	Commune         string     `json:"commune"`
	Quartier        *string    `json:"quartier,omitempty"`
	ParentNom       string     `json:"parent_nom"`
	ParentTelephone *string    `json:"parent_telephone,omitempty"`
	ParentEmail     *string    `json:"parent_email,omitempty"`
	Diagnostic      *string    `json:"diagnostic,omitempty"`
	Status          Status     `json:"status"`
	UserID          string     `json:"user_id"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (d *Dossier) ToDataModel() *dossierDatamodel.Dossier {
	return &dossierDatamodel.Dossier{
		ID:              d.ID,
		Nom:             d.Nom,
		Prenom:          d.Prenom,
		DateNaissance:   d.DateNaissance,
		Sexe:            d.Sexe,
		Commune:         d.Commune,
		Quartier:        d.Quartier,
		ParentNom:       d.ParentNom,
		ParentTelephone: d.ParentTelephone,
		ParentEmail:     d.ParentEmail,
		Diagnostic:      d.Diagnostic,
		Status:          string(d.Status),
		UserID:          d.UserID,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func FromDataModel(row *dossierDatamodel.Dossier) *Dossier {
	return &Dossier{
		ID:              row.ID,
		Nom:             row.Nom,
		Prenom:          row.Prenom,
		DateNaissance:   row.DateNaissance,
		Sexe:            row.Sexe,
		Commune:         row.Commune,
		Quartier:        row.Quartier,
		ParentNom:       row.ParentNom,
		ParentTelephone: row.ParentTelephone,
		ParentEmail:     row.ParentEmail,
		Diagnostic:      row.Diagnostic,
		Status:          Status(row.Status),
		UserID:          row.UserID,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

func FromDataModelSlice(rows []*dossierDatamodel.Dossier) []*Dossier {
	result := make([]*Dossier, len(rows))
	for i, row := range rows {
		result[i] = FromDataModel(row)
	}
	return result
}
