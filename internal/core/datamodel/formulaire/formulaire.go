package formulaire

import "time"

// Submission stores one filled-in questionnaire. The payload is kept as raw
// JSON: each formulaire type has its own field inventory and the server only
// needs to round-trip it.
type Submission struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	FormType  string    `gorm:"column:form_type;not null"`
	UserID    string    `gorm:"column:user_id;type:uuid;not null"`
	DossierID *string   `gorm:"column:dossier_id;type:uuid"`
	Payload   []byte    `gorm:"column:payload;type:jsonb;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Submission) TableName() string {
	return "formulaire_submissions"
}
