package formulaire

// Questionnaire definitions used by the foundation's intake workflow.
// Labels stay in French to match the forms the staff and families use.
var templates = map[FormType]Template{
	FormWISI: {
		Type:        FormWISI,
		Title:       "Questionnaire WISI",
		Description: "Évaluation initiale des besoins de l'enfant",
		Fields: []Field{
			{Name: "enfant_nom", Label: "Nom de l'enfant", Type: "text", Required: true},
			{Name: "enfant_age", Label: "Âge de l'enfant", Type: "number", Required: true},
			{Name: "scolarise", Label: "L'enfant est-il scolarisé ?", Type: "select", Required: true, Options: []string{"Oui", "Non"}},
			{Name: "etablissement", Label: "Établissement fréquenté", Type: "text", Required: false},
			{Name: "difficultes", Label: "Difficultés observées", Type: "textarea", Required: true},
			{Name: "suivi_medical", Label: "Suivi médical en cours", Type: "select", Required: true, Options: []string{"Oui", "Non"}},
			{Name: "commentaires", Label: "Commentaires", Type: "textarea", Required: false},
		},
	},
	FormTARII: {
		Type:        FormTARII,
		Title:       "Questionnaire TARII",
		Description: "Évaluation du trouble et de l'accompagnement requis",
		Fields: []Field{
			{Name: "diagnostic_pose", Label: "Un diagnostic a-t-il été posé ?", Type: "select", Required: true, Options: []string{"Oui", "Non", "En cours"}},
			{Name: "diagnostic_detail", Label: "Détail du diagnostic", Type: "textarea", Required: false},
			{Name: "date_diagnostic", Label: "Date du diagnostic", Type: "date", Required: false},
			{Name: "accompagnement", Label: "Accompagnement actuel", Type: "textarea", Required: true},
			{Name: "besoins", Label: "Besoins exprimés par la famille", Type: "textarea", Required: true},
			{Name: "urgence", Label: "Niveau d'urgence", Type: "select", Required: true, Options: []string{"Faible", "Moyen", "Élevé"}},
		},
	},
	FormFHN: {
		Type:        FormFHN,
		Title:       "Formulaire FHN",
		Description: "Demande de prise en charge par la fondation",
		Fields: []Field{
			{Name: "parent_nom", Label: "Nom du parent ou tuteur", Type: "text", Required: true},
			{Name: "parent_telephone", Label: "Téléphone", Type: "text", Required: true},
			{Name: "parent_email", Label: "Adresse e-mail", Type: "text", Required: false},
			{Name: "situation_familiale", Label: "Situation familiale", Type: "textarea", Required: true},
			{Name: "revenus", Label: "Tranche de revenus du ménage", Type: "select", Required: true, Options: []string{"Moins de 100 000", "100 000 à 300 000", "Plus de 300 000"}},
			{Name: "aide_souhaitee", Label: "Aide souhaitée", Type: "textarea", Required: true},
		},
	},
}

// TemplateFor returns the questionnaire definition for a form type.
func TemplateFor(formType FormType) (Template, bool) {
	t, ok := templates[formType]
	return t, ok
}

// Templates lists every questionnaire, in a stable order.
func Templates() []Template {
	return []Template{
		templates[FormWISI],
		templates[FormTARII],
		templates[FormFHN],
	}
}
