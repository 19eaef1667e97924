package content

import (
	"context"
	"fmt"
	"strings"
)

// TemplateProvider returns fixed preparation texts. Only the seniority
// detection and the company-specific insights vary with the input.
type TemplateProvider struct{}

// NewTemplateProvider creates the default, fully deterministic provider.
func NewTemplateProvider() *TemplateProvider {
	return &TemplateProvider{}
}

func (p *TemplateProvider) Summarize(_ context.Context, role, jobDescription string) (*Summary, error) {
	summary := fmt.Sprintf(
		"The role of %s requires a candidate with proven experience in backend development, "+
			"specifically with Python and RESTful APIs. The candidate will be responsible for designing, "+
			"building, and maintaining scalable microservices. Key responsibilities include database management (SQL), "+
			"writing unit and integration tests, and deploying applications using Docker. The ideal candidate "+
			"is a collaborative individual who can solve complex problems and communicate effectively.",
		role,
	)

	return &Summary{
		Text:           summary,
		RequiredSkills: []string{"Python", "REST APIs", "Microservices", "SQL", "Docker", "Unit Testing", "CI/CD"},
		SoftSkills:     []string{"Communication", "Teamwork", "Problem Solving", "Ownership"},
		Seniority:      detectSeniority(jobDescription),
	}, nil
}

func (p *TemplateProvider) Research(_ context.Context, company string) (string, error) {
	if company == "" {
		return "The company is a fast-growing tech firm in the SaaS sector. They are known for a flat " +
			"organizational structure, encouraging innovation from all levels. Their tech stack is modern, " +
			"often centered around cloud-native technologies and agile practices. They value engineers who " +
			"are product-minded and can take initiative.", nil
	}

	return fmt.Sprintf(
		"%s is a leader in the FinTech space, known for its cutting-edge payment processing solutions. "+
			"Their engineering culture emphasizes reliability, security, and scalability. They operate in a highly "+
			"regulated environment, so attention to detail and robust testing are critical. Technologically, "+
			"they leverage a microservices architecture on AWS, with a strong focus on serverless technologies. "+
			"The company values collaboration and has a reputation for a healthy work-life balance.",
		company,
	), nil
}

func (p *TemplateProvider) AnalyzeRole(_ context.Context, _, _ string) (*RoleAnalysis, error) {
	return &RoleAnalysis{
		Text: "This is a mid-level backend role where the primary focus is on building and scaling microservices. " +
			"The candidate must have strong fundamentals in API design and database management. Given the company's " +
			"FinTech focus, there is a high emphasis on code quality, security, and robust testing. The role requires " +
			"not just technical execution but also collaboration with product and DevOps teams. The ideal candidate " +
			"will be a proactive problem-solver who can take ownership of features from conception to deployment.",
		Competencies: []string{
			"Technical: Python & REST APIs",
			"Technical: Database Management (SQL)",
			"Technical: Microservices Architecture",
			"Technical: Testing & Debugging",
			"Technical: Cloud & DevOps (Docker, CI/CD)",
			"Behavioral: Problem Solving",
			"Behavioral: Team Collaboration",
			"Behavioral: Ownership & Accountability",
			"Behavioral: Communication Skills",
		},
	}, nil
}

func detectSeniority(jobDescription string) string {
	lower := strings.ToLower(jobDescription)
	switch {
	case strings.Contains(lower, "senior") || strings.Contains(lower, "lead"):
		return "Senior"
	case strings.Contains(lower, "junior") || strings.Contains(lower, "entry"):
		return "Junior"
	default:
		return "Mid-level"
	}
}
