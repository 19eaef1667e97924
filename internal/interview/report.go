package interview

import "fmt"

// Report rule thresholds.
const (
	reportStrengthScore    = 4.0
	reportImprovementScore = 2.5
	reportSTARCoveragePct  = 75.0
	reportLowAnswerScore   = 3.0
)

var reportNextSteps = []string{
	"Review the feedback for each question to identify patterns.",
	"Prepare 2-3 additional stories using the STAR method for common behavioral questions.",
	"Practice articulating the impact of your work with measurable outcomes.",
}

// GenerateReport reduces the full answer history into the closing summary.
// An empty history yields a fixed no-data report. Strengths and improvement
// lists are never empty; generic encouragement fills in when no rule fired.
func GenerateReport(state *State) *Report {
	answers := state.Answers
	if len(answers) == 0 {
		return &Report{
			TotalQuestions:      0,
			AverageScore:        "0.00",
			OverallConfidence:   "Low",
			STARCoverage:        "0%",
			BehavioralQuestions: 0,
			TechnicalQuestions:  0,
			Strengths:           []string{"No questions answered."},
			AreasToImprove:      []string{"Complete the interview to get feedback."},
			NextSteps:           []string{"Try running the interview simulation again."},
		}
	}

	total := len(answers)
	average := state.AverageScore()

	starHits := 0
	lowScoring := 0
	for _, a := range answers {
		for _, present := range a.STAR {
			if present {
				starHits++
			}
		}
		if a.Score < reportLowAnswerScore {
			lowScoring++
		}
	}
	starCoverage := float64(starHits) / float64(total*4) * 100

	var strengths, improvements []string

	if average >= reportStrengthScore {
		strengths = append(strengths, "Strong overall performance and clear communication.")
	} else if average < reportImprovementScore {
		improvements = append(improvements, "Focus on providing more detailed and structured answers.")
	}

	if starCoverage > reportSTARCoveragePct {
		strengths = append(strengths, "Excellent use of the STAR method.")
	} else {
		improvements = append(improvements, "Work on consistently applying the STAR method (Situation, Task, Action, Result).")
	}

	if lowScoring > total/2 {
		improvements = append(improvements, "Elaborate more on the results and impact of your actions.")
	}

	if len(strengths) == 0 {
		strengths = []string{"Good effort, keep practicing."}
	}
	if len(improvements) == 0 {
		improvements = []string{"Continue to refine your stories."}
	}

	return &Report{
		TotalQuestions:      total,
		AverageScore:        fmt.Sprintf("%.2f", average),
		OverallConfidence:   capitalize(string(ConfidenceFor(average))),
		STARCoverage:        fmt.Sprintf("%.0f%%", starCoverage),
		BehavioralQuestions: state.BehavioralQuestions,
		TechnicalQuestions:  state.TechnicalQuestions,
		Strengths:           strengths,
		AreasToImprove:      improvements,
		NextSteps:           reportNextSteps,
	}
}
