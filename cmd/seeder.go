package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with demo accounts and dossiers for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			for _, table := range []string{"formulaire_submissions", "dossiers", "users"} {
				if _, err := db.Exec("DELETE FROM " + table); err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("password"), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}

		accounts := []struct {
			Name  string
			Email string
			Role  string
		}{
			{"Awa Diallo", "parent@fondation.test", "parent"},
			{"Mariam Koné", "secretaire@fondation.test", "secretary"},
			{"Issa Traoré", "analyste@fondation.test", "analyst"},
			{"Admin Fondation", "admin@fondation.test", "admin"},
		}

		userIDs := make(map[string]string)
		for _, a := range accounts {
			var existingID string
			err := db.Get(&existingID, "SELECT id FROM users WHERE email = $1", a.Email)
			if err == nil {
				fmt.Printf("user %s already exists\n", a.Email)
				userIDs[a.Role] = existingID
				continue
			}

			id := uuid.NewString()
			_, err = db.Exec(
				"INSERT INTO users (id, name, email, password_hash, role, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, now(), now())",
				id, a.Name, a.Email, string(hash), a.Role)
			if err != nil {
				log.Fatalf("failed to insert user %s: %v", a.Email, err)
			}
			userIDs[a.Role] = id
			fmt.Printf("Seeded %s user: %s\n", a.Role, a.Email)
		}

		parentID, ok := userIDs["parent"]
		if !ok {
			log.Fatal("parent account missing after seeding")
		}

		var dossierCount int
		if err := db.Get(&dossierCount, "SELECT count(*) FROM dossiers WHERE user_id = $1", parentID); err != nil {
			log.Fatalf("failed to count dossiers: %v", err)
		}
		if dossierCount > 0 {
			fmt.Println("demo dossiers already exist")
			return
		}

		dossiers := []struct {
			Nom    string
			Prenom string
			Sexe   string
			Status string
		}{
			{"Diallo", "Moussa", "M", "New"},
			{"Diallo", "Fatou", "F", "InProgress"},
		}

		for _, d := range dossiers {
			_, err := db.Exec(
				`INSERT INTO dossiers (id, nom, prenom, date_naissance, sexe, commune, parent_nom, status, user_id, created_at, updated_at)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())`,
				uuid.NewString(), d.Nom, d.Prenom,
				time.Date(2018, time.March, 12, 0, 0, 0, 0, time.UTC),
				d.Sexe, "Ratoma", "Awa Diallo", d.Status, parentID)
			if err != nil {
				log.Fatalf("failed to insert dossier: %v", err)
			}
		}
		fmt.Println("Seeded demo dossiers")
	},
}
