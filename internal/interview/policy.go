package interview

import "fmt"

// Adaptive policy thresholds. Scores at or above escalateScore move the
// difficulty one tier up; scores below deescalateScore move it one tier down.
// The band between them triggers a clarifying follow-up instead.
const (
	escalateScore   = 4.2
	deescalateScore = 3.0

	followUpMinScore = 2.8
	followUpMaxScore = 4.2

	followUpAnswerPreview = 20
)

// NextDifficulty maps the current tier and the latest score to the next tier.
// Transitions are always single steps; the edge tiers absorb further movement.
func NextDifficulty(current Difficulty, score float64) Difficulty {
	switch {
	case score >= escalateScore:
		switch current {
		case DifficultyEasy:
			return DifficultyMedium
		case DifficultyMedium:
			return DifficultyHard
		}
	case score < deescalateScore:
		switch current {
		case DifficultyHard:
			return DifficultyMedium
		case DifficultyMedium:
			return DifficultyEasy
		}
	}
	return current
}

// ShouldFollowUp reports whether a borderline score warrants a clarifying
// follow-up question.
func ShouldFollowUp(score float64) bool {
	return score >= followUpMinScore && score < followUpMaxScore
}

// SynthesizeFollowUp builds the follow-up question for the just-answered
// parent. The follow-up inherits the parent's type, difficulty and topic and
// quotes the opening of the candidate's answer.
func SynthesizeFollowUp(parent *QuestionRecord, previousAnswer string) QuestionRecord {
	preview := previousAnswer
	if runes := []rune(preview); len(runes) > followUpAnswerPreview {
		preview = string(runes[:followUpAnswerPreview])
	}

	return QuestionRecord{
		ID:         fmt.Sprintf("followup_%s", parent.ID),
		Text:       fmt.Sprintf("That's an interesting point about '%s...'. Can you elaborate on the challenges you faced?", preview),
		Type:       parent.Type,
		Difficulty: parent.Difficulty,
		Topic:      parent.Topic,
	}
}
