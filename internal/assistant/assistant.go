package assistant

import "strings"

// Rule maps trigger keywords to a canned reply. Matching is
// case-insensitive and substring-based; the first matching rule wins.
type Rule struct {
	Keywords []string
	Reply    string
}

// Fallback is returned when no rule matches or the message is empty.
const Fallback = "Je n'ai pas compris votre question. Vous pouvez me demander comment créer un dossier, suivre son statut, remplir un formulaire ou contacter la fondation."

// Replies are kept in French because the assistant serves the
// foundation's families directly.
var rules = []Rule{
	{
		Keywords: []string{"bonjour", "salut", "bonsoir"},
		Reply:    "Bonjour ! Je suis l'assistant de la fondation. Comment puis-je vous aider ?",
	},
	{
		Keywords: []string{"créer", "creer", "nouveau dossier", "ouvrir un dossier"},
		Reply:    "Pour créer un dossier, connectez-vous puis cliquez sur « Nouveau dossier ». Renseignez les informations de l'enfant et du parent, puis validez. Le dossier sera créé avec le statut « Nouveau ».",
	},
	{
		Keywords: []string{"statut", "status", "avancement", "où en est", "ou en est"},
		Reply:    "Le statut de votre dossier est visible sur la page « Mes dossiers ». Un dossier passe par les étapes : Nouveau, En cours, puis Accepté ou Refusé. S'il est marqué Incomplet, des pièces sont manquantes.",
	},
	{
		Keywords: []string{"incomplet", "pièce", "piece", "manquant"},
		Reply:    "Un dossier incomplet signifie qu'il manque des informations ou des pièces. Consultez les commentaires du secrétariat sur votre dossier pour savoir quoi compléter.",
	},
	{
		Keywords: []string{"formulaire", "wisi", "tarii", "fhn", "questionnaire"},
		Reply:    "Trois questionnaires sont disponibles : WISI (évaluation des besoins), TARII (évaluation du trouble) et FHN (demande de prise en charge). Vous les trouverez dans la rubrique « Formulaires ».",
	},
	{
		Keywords: []string{"mot de passe", "connexion", "connecter"},
		Reply:    "Si vous n'arrivez pas à vous connecter, vérifiez votre adresse e-mail et votre mot de passe. En cas de blocage, contactez le secrétariat de la fondation.",
	},
	{
		Keywords: []string{"contact", "téléphone", "telephone", "joindre", "adresse"},
		Reply:    "Vous pouvez joindre le secrétariat de la fondation par e-mail ou par téléphone aux heures d'ouverture, du lundi au vendredi de 8h à 16h.",
	},
	{
		Keywords: []string{"délai", "delai", "combien de temps", "durée", "duree"},
		Reply:    "Le traitement d'un dossier complet prend en général deux à quatre semaines. Ce délai peut varier selon le nombre de demandes en cours.",
	},
	{
		Keywords: []string{"merci"},
		Reply:    "Avec plaisir ! N'hésitez pas si vous avez d'autres questions.",
	},
}

// Reply answers a user message with the first matching rule, or the
// fallback when nothing matches.
func Reply(message string) string {
	normalized := strings.ToLower(strings.TrimSpace(message))
	if normalized == "" {
		return Fallback
	}
	for _, rule := range rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(normalized, keyword) {
				return rule.Reply
			}
		}
	}
	return Fallback
}
