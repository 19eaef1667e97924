package interview

import "fmt"

// updateProgress folds the latest answer into the running time budget and
// narrates the average score. The average is informational only; difficulty
// and follow-up decisions use the latest score alone.
func (s *State) updateProgress() {
	last := s.LastAnswer()
	if last == nil {
		return
	}

	s.EstimatedTimeUsedMin += last.TimeTakenSec / 60.0

	s.appendMessage(RoleInterviewer, fmt.Sprintf("Progress: %.2f/5 avg score.", s.AverageScore()))
}

// AverageScore returns the running mean score over all answers, or zero when
// nothing has been answered yet.
func (s *State) AverageScore() float64 {
	if len(s.Answers) == 0 {
		return 0
	}

	sum := 0.0
	for _, a := range s.Answers {
		sum += a.Score
	}
	return sum / float64(len(s.Answers))
}
