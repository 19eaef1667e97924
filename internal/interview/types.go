package interview

import "time"

// Difficulty is the adaptive question tier.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// QuestionType classifies a question record.
type QuestionType string

const (
	QuestionTechnical  QuestionType = "technical"
	QuestionBehavioral QuestionType = "behavioral"
	QuestionMixed      QuestionType = "mixed"
)

// Confidence is the band assigned to an evaluated answer.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// STAR dimension keys, in canonical order.
var starDimensions = []string{"S", "T", "A", "R"}

// QuestionRecord is a single question from the bank. Follow-up questions are
// synthesized variants with a derived id and inherit the parent's
// type/difficulty/topic.
type QuestionRecord struct {
	ID         string       `json:"id" yaml:"id"`
	Text       string       `json:"text" yaml:"text"`
	Type       QuestionType `json:"type" yaml:"type"`
	Difficulty Difficulty   `json:"difficulty" yaml:"difficulty"`
	Topic      string       `json:"topic" yaml:"topic"`
}

// QuestionSource provides the ordered question corpus. Selection is always
// performed in source order to keep sessions reproducible.
type QuestionSource interface {
	Records() []QuestionRecord
}

// AnswerRecord captures a single evaluated answer. Records are immutable once
// created and only ever appended to the state.
type AnswerRecord struct {
	QuestionID   string          `json:"question_id" mapstructure:"question_id"`
	Answer       string          `json:"user_answer" mapstructure:"user_answer"`
	Score        float64         `json:"score" mapstructure:"score"`
	Confidence   Confidence      `json:"confidence" mapstructure:"confidence"`
	STAR         map[string]bool `json:"star_usage" mapstructure:"star_usage"`
	Feedback     string          `json:"feedback" mapstructure:"feedback"`
	TimeTakenSec float64         `json:"time_taken_sec" mapstructure:"time_taken_sec"`
}

// Message is one entry of the conversation transcript.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleInterviewer = "interviewer"
	RoleCandidate   = "candidate"
)

// Report is the closing summary produced once the interview ends.
type Report struct {
	TotalQuestions      int      `json:"total_questions" mapstructure:"total_questions"`
	AverageScore        string   `json:"average_score" mapstructure:"average_score"`
	OverallConfidence   string   `json:"overall_confidence" mapstructure:"overall_confidence"`
	STARCoverage        string   `json:"star_coverage" mapstructure:"star_coverage"`
	BehavioralQuestions int      `json:"behavioral_questions" mapstructure:"behavioral_questions"`
	TechnicalQuestions  int      `json:"technical_questions" mapstructure:"technical_questions"`
	Strengths           []string `json:"strengths" mapstructure:"strengths"`
	AreasToImprove      []string `json:"areas_to_improve" mapstructure:"areas_to_improve"`
	NextSteps           []string `json:"next_steps" mapstructure:"next_steps"`
}

// State is the single mutable aggregate for one interview session. It is
// mutated exclusively through the engine's transition methods and must stay
// serializable so a suspended session can resume from a checkpoint.
type State struct {
	SessionID string `json:"session_id"`

	// Static context, set once during preparation.
	JobDescription  string   `json:"job_description"`
	Role            string   `json:"user_role"`
	TargetCompany   string   `json:"target_company,omitempty"`
	JDSummary       string   `json:"jd_summary,omitempty"`
	RequiredSkills  []string `json:"required_skills,omitempty"`
	SoftSkills      []string `json:"soft_skills,omitempty"`
	Seniority       string   `json:"seniority,omitempty"`
	CompanyInsights string   `json:"company_insights,omitempty"`
	RoleAnalysis    string   `json:"role_analysis,omitempty"`
	Competencies    []string `json:"competencies,omitempty"`

	// Policy knobs, immutable after session start.
	MaxQuestions  int `json:"max_questions"`
	TimeBudgetMin int `json:"time_budget_min"`

	// Mutable progress.
	Difficulty           Difficulty       `json:"difficulty"`
	QuestionCounter      int              `json:"question_counter"`
	AskedQuestions       []QuestionRecord `json:"asked_questions"`
	Answers              []AnswerRecord   `json:"answers"`
	EstimatedTimeUsedMin float64          `json:"estimated_time_used_min"`
	BehavioralQuestions  int              `json:"behavioral_questions"`
	TechnicalQuestions   int              `json:"technical_questions"`

	// Transient flags.
	AwaitingAnswer         bool `json:"awaiting_answer"`
	ShouldFollowUp         bool `json:"should_follow_up"`
	SalaryNegotiationPhase bool `json:"salary_negotiation_phase"`
	InterviewComplete      bool `json:"interview_complete"`

	CurrentQuestion  *QuestionRecord `json:"current_question,omitempty"`
	QuestionPostedAt time.Time       `json:"question_posted_at,omitempty"`

	FinalReport *Report   `json:"final_report,omitempty"`
	Transcript  []Message `json:"transcript,omitempty"`
}

// Settings are the session entry point parameters.
type Settings struct {
	JobDescription string
	Role           string
	TargetCompany  string
	MaxQuestions   int
	TimeBudgetMin  int
}

const (
	defaultMaxQuestions  = 5
	defaultTimeBudgetMin = 15
)

// NewState creates the state for a fresh session. Zero knobs fall back to the
// defaults of five questions and a fifteen minute budget.
func NewState(sessionID string, settings Settings) *State {
	if settings.MaxQuestions <= 0 {
		settings.MaxQuestions = defaultMaxQuestions
	}
	if settings.TimeBudgetMin <= 0 {
		settings.TimeBudgetMin = defaultTimeBudgetMin
	}

	role := settings.Role
	if role == "" {
		role = "Candidate"
	}

	return &State{
		SessionID:      sessionID,
		JobDescription: settings.JobDescription,
		Role:           role,
		TargetCompany:  settings.TargetCompany,
		MaxQuestions:   settings.MaxQuestions,
		TimeBudgetMin:  settings.TimeBudgetMin,
		Difficulty:     DifficultyMedium,
	}
}

// LastAnswer returns the most recent answer record, or nil when none exists.
func (s *State) LastAnswer() *AnswerRecord {
	if len(s.Answers) == 0 {
		return nil
	}
	return &s.Answers[len(s.Answers)-1]
}

// AnswerFor returns the answer recorded for the given question id, or nil.
func (s *State) AnswerFor(questionID string) *AnswerRecord {
	for i := range s.Answers {
		if s.Answers[i].QuestionID == questionID {
			return &s.Answers[i]
		}
	}
	return nil
}

func (s *State) appendMessage(role, content string) {
	s.Transcript = append(s.Transcript, Message{Role: role, Content: content})
}
