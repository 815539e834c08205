package services

import "fmt"

// SurveyQuestion is one entry of the fixed learning-style survey.
type SurveyQuestion struct {
	ID      int      `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// The option position encodes the style category and must be identical for
// every question: 0 → Visuel, 1 → Analytique, 2 → Auditif, 3 → Pragmatique.
// Scoring relies on this positional convention; keep it when editing or
// adding questions.
var surveyQuestions = []SurveyQuestion{
	{
		ID:   1,
		Text: "Quand tu apprends une nouvelle notion, tu préfères :",
		Options: []string{
			"Voir un schéma ou diagramme",
			"Lire un texte détaillé",
			"Écouter une explication orale",
			"Pratiquer directement avec des exercices",
		},
	},
	{
		ID:   2,
		Text: "Pour retenir les informations, tu trouves plus efficace de :",
		Options: []string{
			"Créer des mindmaps ou des schémas visuels",
			"Prendre des notes écrites détaillées",
			"Discuter et expliquer à haute voix",
			"Faire directement des exercices pratiques",
		},
	},
	{
		ID:   3,
		Text: "Quel type de cours te plaît le plus ?",
		Options: []string{
			"Avec vidéos, diaporamas et visuels",
			"Sous forme de texte et de lecture",
			"Format discussion et débat",
			"Travaux pratiques et projets",
		},
	},
	{
		ID:   4,
		Text: "Quand tu dois comprendre quelque chose, tu :",
		Options: []string{
			"Aimes les couleurs, les surlignages, les symboles",
			"Préfères lire et relire le texte",
			"Aimes écouter et poser des questions",
			"Veux essayer tout de suite",
		},
	},
	{
		ID:   5,
		Text: "Pour organiser ton travail, tu aimes :",
		Options: []string{
			"Des listes très détaillées et plannings précis",
			"Une direction générale, le reste tu improvises",
			"Un mix des deux",
			"Pas de plan, tu fais au feeling",
		},
	},
	{
		ID:   6,
		Text: "Tu préfères étudier :",
		Options: []string{
			"Seul avec tes outils (livres, vidéos)",
			"En petits groupes de discussion",
			"Avec un professeur qui explique",
			"En faisant des projets en équipe",
		},
	},
	{
		ID:   7,
		Text: "Quel type d'explications te satisfait le plus ?",
		Options: []string{
			"Avec beaucoup d'exemples concrets",
			"Avec des chiffres et statistiques",
			"Avec un débat d'idées",
			"Avec des cas réels à résoudre",
		},
	},
	{
		ID:   8,
		Text: "Ton rythme d'apprentissage idéal est :",
		Options: []string{
			"Rapide avec beaucoup de stimuli visuels",
			"Lent et progressif avec de la lecture",
			"Avec des pauses pour discuter",
			"Avec des petits projets réguliers",
		},
	},
	{
		ID:   9,
		Text: "Tu trouves plus facile de mémoriser par :",
		Options: []string{
			"Des images mentales et symboles",
			"La répétition et l'écriture",
			"La conversation et la répétition verbale",
			"L'expérience pratique",
		},
	},
	{
		ID:   10,
		Text: "Face à un problème complexe, tu :",
		Options: []string{
			"Crées un diagramme ou un dessin",
			"Écris une analyse détaillée",
			"En parles avec d'autres",
			"Essaies directement des solutions",
		},
	},
	{
		ID:   11,
		Text: "Les cours qu'il te plaît de suivre sont :",
		Options: []string{
			"Basés sur des projets visuels",
			"Basés sur de la théorie écrite",
			"Basés sur des débats et discussions",
			"Basés sur des cas concrets",
		},
	},
	{
		ID:   12,
		Text: "Tu retiens mieux les informations quand :",
		Options: []string{
			"Tu as un support visuel (tableau, schéma)",
			"Tu as un texte écrit à revoir",
			"Quelqu'un t'explique à l'oral",
			"Tu dois les appliquer immédiatement",
		},
	},
	{
		ID:   13,
		Text: "Pour un sujet que tu dois maîtriser, tu :",
		Options: []string{
			"Regardes des tutoriels vidéo d'abord",
			"Lis des articles et des manuels",
			"En discutes avec des experts",
			"Fais des exercices pratiques",
		},
	},
	{
		ID:   14,
		Text: "Ton environnement d'étude idéal est :",
		Options: []string{
			"Bien illuminé avec des visuels",
			"Calme avec des ressources écrites",
			"Avec du monde pour discuter",
			"Spacieux pour des activités",
		},
	},
	{
		ID:   15,
		Text: "Quel format de test tu préfères ?",
		Options: []string{
			"Schémas et QCM avec images",
			"Rédactions et essais écrits",
			"Présentations orales",
			"Projets et travaux pratiques",
		},
	},
}

// SurveyLength is the number of questions in the learning-style survey.
const SurveyLength = 15

// Questions returns the full ordered survey. The returned slice is a copy so
// callers cannot mutate the compiled-in table.
func Questions() []SurveyQuestion {
	out := make([]SurveyQuestion, len(surveyQuestions))
	copy(out, surveyQuestions)
	return out
}

// QuestionAt returns the question at the 1-based position index.
// Indexing outside [1, SurveyLength] is a caller bug and fails loudly.
func QuestionAt(index int) (SurveyQuestion, error) {
	if index < 1 || index > SurveyLength {
		return SurveyQuestion{}, NewOutOfRangeError(fmt.Sprintf("survey question index %d out of range [1,%d]", index, SurveyLength))
	}
	return surveyQuestions[index-1], nil
}
