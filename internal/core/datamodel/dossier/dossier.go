package dossier

import "time"

type Dossier struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	Nom             string    `gorm:"column:nom;not null"`
	Prenom          string    `gorm:"column:prenom;not null"`
	DateNaissance   time.Time `gorm:"column:date_naissance;type:date;not null"`
	Sexe            string    `gorm:"column:sexe;not null"`
	Commune         string    `gorm:"column:commune;not null"`
	Quartier        *string   `gorm:"column:quartier"`
	ParentNom       string    `gorm:"column:parent_nom;not null"`
	ParentTelephone *string   `gorm:"column:parent_telephone"`
	ParentEmail     *string   `gorm:"column:parent_email"`
	Diagnostic      *string   `gorm:"column:diagnostic;type:text"`
	Status          string    `gorm:"column:status;not null;default:New"`
	UserID          string    `gorm:"column:user_id;type:uuid;not null"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Dossier) TableName() string {
	return "dossiers"
}
