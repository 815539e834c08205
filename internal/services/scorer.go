package services

import "fmt"

// positionStyles binds each option position to its style category. This is
// the same convention the survey table is built around.
var positionStyles = [4]LearningStyle{StyleVisual, StyleAnalytical, StyleAuditory, StylePragmatic}

// scoreOrder is the declared iteration order used to pick the winner.
// On an exact tie the earliest style in this order wins. The order is a
// product decision carried over from the original app; changing it changes
// results for tied surveys.
var scoreOrder = [4]LearningStyle{StyleVisual, StyleAuditory, StylePragmatic, StyleAnalytical}

// ScoreAnswers converts a completed answer sequence into a learning style.
// answers must contain exactly SurveyLength option indices, each in [0,3].
// Pure function; no clamping of invalid input.
func ScoreAnswers(answers []int) (LearningStyle, error) {
	if len(answers) != SurveyLength {
		return StyleNone, NewInvalidError(fmt.Sprintf("expected %d answers, got %d", SurveyLength, len(answers)))
	}
	counts := map[LearningStyle]int{}
	for i, a := range answers {
		if a < 0 || a > 3 {
			return StyleNone, NewInvalidError(fmt.Sprintf("answer %d out of range [0,3]: %d", i+1, a))
		}
		counts[positionStyles[a]]++
	}
	best := StyleVisual
	max := 0
	for _, style := range scoreOrder {
		if counts[style] > max {
			max = counts[style]
			best = style
		}
	}
	return best, nil
}
