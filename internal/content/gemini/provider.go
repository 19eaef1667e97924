// Package gemini implements a generative content provider on top of the
// Gemini API. Responses are requested as JSON and coerced defensively; any
// failure falls back to the deterministic template provider so a session
// never stalls on the model.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/interview-coach/internal/content"
	"github.com/spigell/interview-coach/internal/logger"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

const defaultMaxLogLength = 200

// Provider generates preparation content with Gemini.
type Provider struct {
	generator contentGenerator
	fallback  content.Provider
	logger    *zap.Logger
	maxLogLen int
}

// NewProvider creates a Gemini-backed provider. The fallback provider handles
// generation failures; when nil, the templated default is used.
func NewProvider(generator contentGenerator, fallback content.Provider, log *zap.Logger, maxLogLength int) *Provider {
	if fallback == nil {
		fallback = content.NewTemplateProvider()
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Provider{
		generator: generator,
		fallback:  fallback,
		logger:    logger.WithCommonFields(log, "gemini", generator.Model()),
		maxLogLen: maxLogLength,
	}
}

func (p *Provider) Summarize(ctx context.Context, role, jobDescription string) (*content.Summary, error) {
	prompt := fmt.Sprintf(`You are an interview coach preparing a mock interview.
Summarize the following job description for the role %q.

Job description:
%s

Respond with JSON only, no prose:
{"summary": string, "required_skills": [string], "soft_skills": [string], "seniority": "Junior"|"Mid-level"|"Senior"}`,
		role, jobDescription)

	raw, err := p.generate(ctx, "summarize", prompt)
	if err != nil {
		p.logger.Warn("falling back to templated summary", zap.Error(err))
		return p.fallback.Summarize(ctx, role, jobDescription)
	}

	data, err := parseObject(raw)
	if err != nil {
		p.logger.Warn("falling back to templated summary", zap.Error(err))
		return p.fallback.Summarize(ctx, role, jobDescription)
	}

	summary := &content.Summary{
		Text:           coerceString(data["summary"]),
		RequiredSkills: coerceStrings(data["required_skills"]),
		SoftSkills:     coerceStrings(data["soft_skills"]),
		Seniority:      coerceString(data["seniority"]),
	}

	if summary.Text == "" || len(summary.RequiredSkills) == 0 {
		p.logger.Warn("gemini summary is incomplete, falling back to template")
		return p.fallback.Summarize(ctx, role, jobDescription)
	}

	return summary, nil
}

func (p *Provider) Research(ctx context.Context, company string) (string, error) {
	target := company
	if target == "" {
		target = "an unnamed fast-growing tech company"
	}

	prompt := fmt.Sprintf(`Provide a short briefing (one paragraph) about %s for a candidate
preparing for an interview: engineering culture, tech stack, what they value in engineers.
Respond with plain text only.`, target)

	raw, err := p.generate(ctx, "research", prompt)
	if err != nil {
		p.logger.Warn("falling back to templated company insights", zap.Error(err))
		return p.fallback.Research(ctx, company)
	}

	return strings.TrimSpace(raw), nil
}

func (p *Provider) AnalyzeRole(ctx context.Context, role, jobDescription string) (*content.RoleAnalysis, error) {
	prompt := fmt.Sprintf(`Analyze the role %q based on this job description:
%s

Respond with JSON only, no prose:
{"analysis": string, "competencies": [string]}
Prefix each competency with "Technical:" or "Behavioral:".`, role, jobDescription)

	raw, err := p.generate(ctx, "analyze_role", prompt)
	if err != nil {
		p.logger.Warn("falling back to templated role analysis", zap.Error(err))
		return p.fallback.AnalyzeRole(ctx, role, jobDescription)
	}

	data, err := parseObject(raw)
	if err != nil {
		p.logger.Warn("falling back to templated role analysis", zap.Error(err))
		return p.fallback.AnalyzeRole(ctx, role, jobDescription)
	}

	analysis := &content.RoleAnalysis{
		Text:         coerceString(data["analysis"]),
		Competencies: coerceStrings(data["competencies"]),
	}

	if analysis.Text == "" || len(analysis.Competencies) == 0 {
		p.logger.Warn("gemini role analysis is incomplete, falling back to template")
		return p.fallback.AnalyzeRole(ctx, role, jobDescription)
	}

	return analysis, nil
}

func (p *Provider) generate(ctx context.Context, stage, prompt string) (string, error) {
	p.logger.Debug("gemini generate content request",
		zap.String("stage", stage),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, p.maxLogLen)),
	)

	raw, err := p.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	p.logger.Debug("gemini generate content response",
		zap.String("stage", stage),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, p.maxLogLen)),
	)

	return raw, nil
}

func parseObject(raw string) (map[string]any, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}
	return data, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}

func coerceStrings(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}

	result := make([]string, 0, len(items))
	for _, item := range items {
		if s := coerceString(item); s != "" {
			result = append(result, s)
		}
	}
	return result
}
