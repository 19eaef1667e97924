// Package presenter renders a finished session for humans: the interview
// transcript on a writer and the same content exported to a report file. It
// is strictly a read-only view over the session state.
package presenter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spigell/interview-coach/internal/interview"
)

// Presenter renders session transcripts.
type Presenter struct {
	out io.Writer
}

// New creates a presenter writing to out.
func New(out io.Writer) *Presenter {
	return &Presenter{out: out}
}

// Transcript writes the complete interview transcript to the presenter's
// writer.
func (p *Presenter) Transcript(state *interview.State) {
	fmt.Fprint(p.out, Render(state))
}

// SaveReport writes the complete transcript to the given file.
func (p *Presenter) SaveReport(path string, state *interview.State) error {
	if err := os.WriteFile(path, []byte(Render(state)), 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}

// Render produces the full human-readable transcript: preparation sections,
// every question with its answer and feedback, and the final summary.
func Render(state *interview.State) string {
	var b strings.Builder

	header(&b, "Complete Interview Transcript", 20)

	section(&b, "Job Summary")
	writeOr(&b, state.JDSummary, "No job description summary available.")
	fmt.Fprintf(&b, "Skills extracted: %s\n", strings.Join(state.RequiredSkills, ", "))
	fmt.Fprintf(&b, "Soft Skills: %s\n", strings.Join(state.SoftSkills, ", "))

	section(&b, "Company Insights")
	writeOr(&b, state.CompanyInsights, "No company insights available.")

	section(&b, "Role Analysis & Required Competencies")
	writeOr(&b, state.RoleAnalysis, "No role analysis available.")
	b.WriteString("Key Competencies:\n")
	for _, competency := range state.Competencies {
		fmt.Fprintf(&b, "- %s\n", competency)
	}

	section(&b, "INTERVIEW TRANSCRIPT")
	for i, question := range state.AskedQuestions {
		fmt.Fprintf(&b, "\nQUESTION %d:\n%s\n", i+1, question.Text)

		answer := state.AnswerFor(question.ID)
		if answer == nil {
			b.WriteString("Candidate Answer: No answer recorded.\n")
			continue
		}

		fmt.Fprintf(&b, "\nCandidate Answer: %s\n", answer.Answer)
		fmt.Fprintf(&b, "\n%s", answer.Feedback)
		fmt.Fprintf(&b, "Time Taken: %.0f seconds\n", answer.TimeTakenSec)
	}

	b.WriteString("\n\n" + strings.Repeat("-", 20) + " Final Summary " + strings.Repeat("-", 20) + "\n")
	report := state.FinalReport
	if report == nil {
		b.WriteString("No final report generated.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Total Questions Answered: %d\n", report.TotalQuestions)
	fmt.Fprintf(&b, "Average Score: %s / 5\n", report.AverageScore)
	fmt.Fprintf(&b, "Overall Confidence Rating: %s\n", report.OverallConfidence)
	fmt.Fprintf(&b, "STAR Coverage: %s\n", report.STARCoverage)
	fmt.Fprintf(&b, "Behavioral Questions Answered: %d\n", report.BehavioralQuestions)
	fmt.Fprintf(&b, "Technical Questions Answered: %d\n", report.TechnicalQuestions)

	list(&b, "Strengths", report.Strengths)
	list(&b, "Areas to Improve", report.AreasToImprove)
	list(&b, "Next Steps for Preparation", report.NextSteps)

	return b.String()
}

func header(b *strings.Builder, title string, width int) {
	bar := strings.Repeat("=", width)
	fmt.Fprintf(b, "\n%s %s %s\n", bar, title, bar)
}

func section(b *strings.Builder, title string) {
	bar := strings.Repeat("=", 15)
	fmt.Fprintf(b, "\n%s %s %s\n", bar, title, bar)
}

func writeOr(b *strings.Builder, text, fallback string) {
	if text == "" {
		text = fallback
	}
	b.WriteString(text + "\n")
}

func list(b *strings.Builder, title string, items []string) {
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "• %s\n", item)
	}
}
