package services

import (
	"fmt"
	"strings"
)

const (
	defaultFiliere = "Lycée Général"

	// noHistoryPlaceholder is rendered when the student has no prior turns.
	noHistoryPlaceholder = "Aucune conversation précédente"
)

const groundRules = `Règles importantes :
- Réponds toujours en français
- Utilise la mise en forme Markdown (titres, listes, gras) pour structurer tes réponses
- Adapte ton niveau de complexité à la filière de l'étudiant
- Propose des exercices ou des cas pratiques quand c'est pertinent
- Si la question est vague, pose une question de clarification plutôt que de deviner
- Sois enthousiaste et encourageant`

// renderHistory renders prior turns oldest first, two lines per turn with a
// blank line between turns. Order is the caller's; it is never re-sorted here
// because reordering breaks conversational coherence.
func renderHistory(history []ConversationTurn) string {
	if len(history) == 0 {
		return noHistoryPlaceholder
	}
	parts := make([]string, 0, len(history))
	for _, turn := range history {
		parts = append(parts, fmt.Sprintf("User: %s\nAssistant: %s", turn.Message, turn.Response))
	}
	return strings.Join(parts, "\n\n")
}

// BuildPrompt assembles the full instruction text for one chat turn.
// Pure string composition: no storage or network access, deterministic for
// identical inputs.
func BuildPrompt(pc PromptContext) string {
	filiere := strings.TrimSpace(pc.Filiere)
	if filiere == "" {
		filiere = defaultFiliere
	}

	var framing string
	if name := strings.TrimSpace(pc.FirstName); name != "" {
		framing = fmt.Sprintf("Tu es Cartable, un assistant pédagogique bienveillant. Tu aides %s, étudiant(e) en %s.", name, filiere)
	} else {
		framing = fmt.Sprintf("Tu es Cartable, un assistant pédagogique bienveillant pour un étudiant en %s.", filiere)
	}

	var styleLine string
	if pc.Style == StyleNone {
		styleLine = "Profil d'apprentissage : non déterminé (le test n'a pas encore été réalisé)"
	} else {
		styleLine = fmt.Sprintf("Profil d'apprentissage : %s", pc.Style)
	}

	sp := ProfileForStyle(pc.Style)

	var b strings.Builder
	b.WriteString(framing)
	b.WriteString("\n\n")
	b.WriteString(styleLine)
	b.WriteString("\n\nAdapte tes réponses selon ce profil :\n")
	b.WriteString(sp.Instructions)
	b.WriteString("\n\nContexte des précédentes conversations :\n")
	b.WriteString(renderHistory(pc.History))
	b.WriteString("\n\n")
	b.WriteString(groundRules)
	b.WriteString("\n\nUser: ")
	b.WriteString(pc.UserMessage)
	return b.String()
}
