package services

// StyleProfile bundles everything the app derives from a learning style: the
// prompt instruction block for the tutor, the description and adaptation list
// shown on the survey result screen, and the suggested conversation starters
// surfaced in the chat UI.
type StyleProfile struct {
	Style        LearningStyle `json:"learning_style,omitempty"`
	Description  string        `json:"description,omitempty"`
	Instructions string        `json:"-"`
	Adaptations  []string      `json:"adaptations,omitempty"`
	Suggestions  []string      `json:"suggestions"`
}

const neutralInstructions = `- Équilibre structure et conversation : alterne listes courtes et explications rédigées
- Donne un exemple concret pour chaque notion importante
- Propose à la fois un résumé rapide et la possibilité d'approfondir
- Demande à l'étudiant quel format il préfère quand c'est pertinent`

var genericSuggestions = []string{
	"Explique-moi un concept en maths",
	"Résume ce texte pour moi",
	"Aide-moi à préparer mon exposé",
	"Crée un plan de révision",
	"Donne-moi des exercices d'entraînement",
}

// styleProfiles is built once and never mutated after init.
var styleProfiles = map[LearningStyle]StyleProfile{
	StyleVisual: {
		Style:       StyleVisual,
		Description: `Tu es un apprenant visuel qui aime avoir une structure claire. Tu retiens mieux les informations avec des schémas, des diagrammes et des visuels bien organisés. Tu apprécies les plannings précis et les listes détaillées. Pour toi, l'organisation visuelle est clé.`,
		Instructions: `- Utilise beaucoup de schémas et de structures visuelles dans ton texte (avec des symboles)
- Organise tes réponses avec des listes claires et numérotées
- Utilise des emojis pour illustrer les concepts
- Crée des divisions claires avec des titres`,
		Adaptations: []string{
			"📊 Des visuels et schémas pour chaque concept",
			"📋 Des plans structurés et organisés",
			"🎨 Du code couleur pour les différents thèmes",
			"📈 Des graphiques et des diagrammes explicatifs",
		},
		Suggestions: []string{
			"Fais-moi une mindmap de ce chapitre",
			"Résume ce cours sous forme de schéma",
			"Crée un planning de révision structuré",
			"Explique ce concept avec un tableau comparatif",
		},
	},
	StyleAuditory: {
		Style:       StyleAuditory,
		Description: `Tu es un apprenant auditif qui apprend en écoutant et en discutant. Tu aimes débattre, poser des questions et expliquer à voix haute. Tu retiens mieux en parlant et en échangeant avec les autres. Les discussions en groupe sont très efficaces pour toi.`,
		Instructions: `- Écris de manière conversationnelle, comme si tu parlais à l'étudiant
- Pose des questions pour engager le dialogue
- Utilise des exemples issus de discussions réelles
- Encourage à haute voix`,
		Adaptations: []string{
			"🎙️ Des transcriptions audio de tes cours",
			"💬 La possibilité de discuter tes doutes",
			"🗣️ Des explications orales approfondies",
			"👥 Des suggestions pour étudier en groupe",
		},
		Suggestions: []string{
			"Discutons de ce sujet ensemble",
			"Pose-moi des questions sur mon cours",
			"Aide-moi à préparer mon exposé oral",
			"Fais-moi réciter ma leçon",
		},
	},
	StylePragmatic: {
		Style:       StylePragmatic,
		Description: `Tu es un apprenant pragmatique qui préfère l'action directe. Tu aimes apprendre en faisant, avec des cas concrets et des exercices pratiques. Tu cherches l'efficacité et tu n'aimes pas les longs textes théoriques. Tu veux des résultats rapides.`,
		Instructions: `- Va droit au but, sans détails superflus
- Donne des exercices pratiques et des cas concrets
- Propose des solutions immédiatement applicables
- Sois bref et direct`,
		Adaptations: []string{
			"⚡ Des exercices pratiques immédiatement",
			"🎯 Des objectifs clairs et concis",
			"💪 Des cas concrets et réels à résoudre",
			"🏆 Des résultats mesurables et rapides",
		},
		Suggestions: []string{
			"Donne-moi des exercices d'entraînement",
			"Résume l'essentiel en 5 points",
			"Un cas pratique sur ce chapitre",
			"La méthode la plus rapide pour réviser ça",
		},
	},
	StyleAnalytical: {
		Style:       StyleAnalytical,
		Description: `Tu es un apprenant analytique qui aime la profondeur. Tu préfères lire des textes détaillés et comprendre le "pourquoi" derrière les choses. Tu aimes la réflexion progressive et tu n'aimes pas précipiter tes apprentissages. Tu veux maîtriser complètement les sujets.`,
		Instructions: `- Fournis des explications détaillées et complètes
- Donne le contexte historique ou scientifique
- Propose des ressources pour aller plus loin
- Encourage la réflexion approfondie`,
		Adaptations: []string{
			"📚 Des analyses détaillées et complètes",
			"🔬 Des explications scientifiques approfondies",
			"📖 Des ressources pour aller plus loin",
			"🧠 Des réflexions et des débats d'idées",
		},
		Suggestions: []string{
			"Explique-moi ce concept en profondeur",
			"Quel est le contexte historique de ce sujet ?",
			"Quelles ressources pour aller plus loin ?",
			"Analyse ce texte en détail",
		},
	},
}

// ProfileForStyle resolves the style profile for a learning style. Total over
// the five-way domain {four styles, StyleNone}: an absent or unknown style
// yields a neutral balanced profile, never a named style's block and never
// an error.
func ProfileForStyle(style LearningStyle) StyleProfile {
	if p, ok := styleProfiles[style]; ok {
		return p
	}
	return StyleProfile{
		Style:        StyleNone,
		Instructions: neutralInstructions,
		Suggestions:  genericSuggestions,
	}
}
