// Package content generates the preparation material for a session: the job
// description summary, company insights and the role analysis. The default
// provider is templated; a generative provider can be swapped in without
// touching the interview engine.
package content

import "context"

// Summary describes the job description from the candidate's perspective.
type Summary struct {
	Text           string
	RequiredSkills []string
	SoftSkills     []string
	Seniority      string
}

// RoleAnalysis describes the role and the competencies it demands.
type RoleAnalysis struct {
	Text         string
	Competencies []string
}

// Provider produces the session preparation content.
type Provider interface {
	Summarize(ctx context.Context, role, jobDescription string) (*Summary, error)
	Research(ctx context.Context, company string) (string, error)
	AnalyzeRole(ctx context.Context, role, jobDescription string) (*RoleAnalysis, error)
}
