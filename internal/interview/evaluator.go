package interview

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"
)

// Keyword sets per STAR dimension. Matching is case-insensitive substring
// membership over the full answer.
var starKeywords = map[string][]string{
	"S": {"situation", "context", "background", "scenario", "role", "previous", "company", "corp"},
	"T": {"task", "goal", "responsibility", "assigned", "tasked", "objective", "challenge"},
	"A": {"action", "implemented", "did", "used", "applied", "developed", "created", "built", "handled"},
	"R": {"result", "impact", "outcome", "achieved", "improved", "reduced", "increased", "handled", "traffic"},
}

// Scoring weights and thresholds. Confidence bands share the same thresholds
// as the closing report.
const (
	starWeight      = 0.5
	relevanceWeight = 0.3
	detailWeight    = 0.2

	detailSaturationWords = 80

	highConfidenceScore   = 4.0
	mediumConfidenceScore = 2.8
)

// Evaluator scores free-text answers against the STAR rubric, the session's
// required skills and an answer-length proxy for depth.
type Evaluator struct {
	logger *zap.Logger
}

// NewEvaluator creates an evaluator. A nil logger is replaced with a no-op one.
func NewEvaluator(logger *zap.Logger) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Evaluator{logger: logger}
}

// Evaluate produces a fully populated answer record for the state's current
// question. All sub-scores are total over arbitrary text: empty or degenerate
// answers degrade to their minimum values instead of failing.
func (e *Evaluator) Evaluate(answer string, state *State, elapsedSec float64) AnswerRecord {
	lower := strings.ToLower(answer)

	star := make(map[string]bool, len(starDimensions))
	hits := 0
	for _, dim := range starDimensions {
		star[dim] = containsAny(lower, starKeywords[dim])
		if star[dim] {
			hits++
		}
	}
	starScore := float64(hits) / 4

	// An answer is never considered fully irrelevant, hence the 0.5 floor.
	relevance := 0.5
	for _, skill := range state.RequiredSkills {
		if skill != "" && strings.Contains(lower, strings.ToLower(skill)) {
			relevance = 1.0
			break
		}
	}

	detail := math.Min(float64(len(strings.Fields(answer)))/detailSaturationWords, 1.0)

	score := round2((starScore*starWeight + relevance*relevanceWeight + detail*detailWeight) * 5)
	confidence := ConfidenceFor(score)

	e.logger.Debug("answer evaluated",
		zap.Float64("star_score", starScore),
		zap.Float64("relevance", relevance),
		zap.Float64("detail", detail),
		zap.Float64("score", score),
		zap.String("confidence", string(confidence)),
	)

	return AnswerRecord{
		QuestionID:   state.CurrentQuestion.ID,
		Answer:       answer,
		Score:        score,
		Confidence:   confidence,
		STAR:         star,
		Feedback:     buildFeedback(score, confidence, star, starScore, relevance, detail, state.RequiredSkills),
		TimeTakenSec: elapsedSec,
	}
}

// ConfidenceFor maps a score to its confidence band.
func ConfidenceFor(score float64) Confidence {
	switch {
	case score >= highConfidenceScore:
		return ConfidenceHigh
	case score >= mediumConfidenceScore:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func buildFeedback(score float64, confidence Confidence, star map[string]bool, starScore, relevance, detail float64, skills []string) string {
	coverage := make([]string, 0, len(starDimensions))
	hits := 0
	missing := make([]string, 0, len(starDimensions))
	for _, dim := range starDimensions {
		presence := "Missing"
		if star[dim] {
			presence = "Present"
			hits++
		} else {
			missing = append(missing, dim)
		}
		coverage = append(coverage, fmt.Sprintf("%s=%s", dim, presence))
	}

	var suggestions []string
	if starScore < 1.0 {
		if hits >= 3 {
			suggestions = append(suggestions, "You explained the situation, task, and action well.")
		} else {
			suggestions = append(suggestions, fmt.Sprintf("Structure your answer using STAR: Missing %s.", strings.Join(missing, ", ")))
		}
		if !star["R"] {
			suggestions = append(suggestions, "Include measurable impact for the Result, e.g. reduced outage time, improved response time, etc.")
		} else {
			suggestions = append(suggestions, "Good use of STAR elements.")
		}
	} else {
		suggestions = append(suggestions, "You explained the situation, task, action, and result well.")
	}

	if relevance < 1.0 {
		suggestions = append(suggestions, fmt.Sprintf("Connect your answer more directly to the job description skills like %s.", skillExamples(skills)))
	}

	if detail < 0.7 {
		suggestions = append(suggestions, "Add more details, examples, and metrics to strengthen your response.")
	}

	switch {
	case score >= highConfidenceScore:
		suggestions = append(suggestions, "Excellent answer! Well-structured, relevant, and detailed.")
	case score >= mediumConfidenceScore:
		suggestions = append(suggestions, "Good effort. Focus on the suggestions above to improve further.")
	default:
		suggestions = append(suggestions, "This answer needs significant improvement. Review the STAR method and job description requirements.")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Feedback:\n\nScore: %.2f / 5\n\nConfidence Level: %s\n\nSTAR Coverage: %s\n\nImprovement Suggestions:\n",
		score, capitalize(string(confidence)), strings.Join(coverage, ", "))
	for _, suggestion := range suggestions {
		fmt.Fprintf(&b, "• %s\n", suggestion)
	}
	return b.String()
}

func skillExamples(skills []string) string {
	if len(skills) == 0 {
		return "the ones listed in the posting"
	}
	if len(skills) > 2 {
		skills = skills[:2]
	}
	return strings.Join(skills, ", ") + ", etc."
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
