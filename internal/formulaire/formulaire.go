package formulaire

import (
	"encoding/json"
	"time"

	formulaireDatamodel "github.com/fondationhn/dossier-management/internal/core/datamodel/formulaire"
)

// FormType identifies one of the intake questionnaires.
type FormType string

const (
	FormWISI  FormType = "wisi"
	FormTARII FormType = "tarii"
	FormFHN   FormType = "fhn"
)

func (t FormType) Valid() bool {
	switch t {
	case FormWISI, FormTARII, FormFHN:
		return true
	}
	return false
}

// Field describes one question of a template.
type Field struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
}

// Template is the shape of a questionnaire served to clients. Templates
// live in code, not in the database, so they version with the binary.
type Template struct {
	Type        FormType `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Fields      []Field  `json:"fields"`
}

// Submission is a completed questionnaire. The payload keeps the raw
// answers as submitted; validation checks presence of required fields
// only, so templates can evolve without breaking old submissions.
type Submission struct {
	ID        string          `json:"id"`
	FormType  FormType        `json:"form_type"`
	UserID    string          `json:"user_id"`
	DossierID *string         `json:"dossier_id,omitempty"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

func (s *Submission) ToDataModel() *formulaireDatamodel.Submission {
	return &formulaireDatamodel.Submission{
		ID:        s.ID,
		FormType:  string(s.FormType),
		UserID:    s.UserID,
		DossierID: s.DossierID,
		Payload:   []byte(s.Payload),
		CreatedAt: s.CreatedAt,
	}
}

func FromDataModel(row *formulaireDatamodel.Submission) *Submission {
	return &Submission{
		ID:        row.ID,
		FormType:  FormType(row.FormType),
		UserID:    row.UserID,
		DossierID: row.DossierID,
		Payload:   json.RawMessage(row.Payload),
		CreatedAt: row.CreatedAt,
	}
}

func FromDataModelSlice(rows []*formulaireDatamodel.Submission) []*Submission {
	result := make([]*Submission, len(rows))
	for i, row := range rows {
		result[i] = FromDataModel(row)
	}
	return result
}
