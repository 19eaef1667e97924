package interview

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/interview-coach/internal/content"
)

// Action is the next step chosen by the transition controller.
type Action int

const (
	// ActionAwaitAnswer means a question is posed and the session is suspended
	// until the candidate answers.
	ActionAwaitAnswer Action = iota
	// ActionAskQuestion poses the next bank question.
	ActionAskQuestion
	// ActionFollowUp poses a synthesized clarifying question.
	ActionFollowUp
	// ActionFinalReport closes the main loop and generates the report.
	ActionFinalReport
	// ActionSalaryNegotiation enters the one-question salary stage.
	ActionSalaryNegotiation
	// ActionPersist is terminal: the session is ready to be recorded.
	ActionPersist
)

func (a Action) String() string {
	switch a {
	case ActionAwaitAnswer:
		return "await_answer"
	case ActionAskQuestion:
		return "ask_question"
	case ActionFollowUp:
		return "follow_up"
	case ActionFinalReport:
		return "final_report"
	case ActionSalaryNegotiation:
		return "salary_negotiation"
	case ActionPersist:
		return "persist"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Decide is the pure transition function of the interview state machine. It is
// evaluated after preparation and after every progress update.
func Decide(s *State) Action {
	if s.InterviewComplete {
		if !s.SalaryNegotiationPhase {
			return ActionSalaryNegotiation
		}
		return ActionPersist
	}

	if s.ShouldFollowUp {
		return ActionFollowUp
	}

	if s.EstimatedTimeUsedMin >= float64(s.TimeBudgetMin) {
		return ActionFinalReport
	}

	if s.QuestionCounter >= s.MaxQuestions {
		return ActionFinalReport
	}

	return ActionAskQuestion
}

// Engine owns one session's state and advances it through named transitions.
// It is re-entrant across the awaiting-answer suspension: a fresh engine built
// around a checkpointed state continues exactly where the previous one left
// off.
type Engine struct {
	state     *State
	bank      QuestionSource
	content   content.Provider
	evaluator *Evaluator
	logger    *zap.Logger

	now func() time.Time
}

// NewEngine wires an engine around existing state and collaborators.
func NewEngine(state *State, bank QuestionSource, provider content.Provider, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Engine{
		state:     state,
		bank:      bank,
		content:   provider,
		evaluator: NewEvaluator(logger),
		logger:    logger,
		now:       time.Now,
	}
}

// State exposes the session aggregate for presentation and persistence.
// Callers must not mutate it.
func (e *Engine) State() *State { return e.state }

// AwaitingAnswer reports whether the engine is suspended on candidate input.
func (e *Engine) AwaitingAnswer() bool { return e.state.AwaitingAnswer }

// Prepare runs the content preparation stage: job description summary,
// company research and role analysis. It also resets the progress fields so a
// prepared state always starts from a clean loop.
func (e *Engine) Prepare(ctx context.Context) error {
	s := e.state

	summary, err := e.content.Summarize(ctx, s.Role, s.JobDescription)
	if err != nil {
		return fmt.Errorf("summarize job description: %w", err)
	}
	s.JDSummary = summary.Text
	s.RequiredSkills = summary.RequiredSkills
	s.SoftSkills = summary.SoftSkills
	s.Seniority = summary.Seniority

	insights, err := e.content.Research(ctx, s.TargetCompany)
	if err != nil {
		return fmt.Errorf("research company: %w", err)
	}
	s.CompanyInsights = insights

	analysis, err := e.content.AnalyzeRole(ctx, s.Role, s.JobDescription)
	if err != nil {
		return fmt.Errorf("analyze role: %w", err)
	}
	s.RoleAnalysis = analysis.Text
	s.Competencies = analysis.Competencies

	if s.Difficulty == "" {
		s.Difficulty = DifficultyMedium
	}
	s.QuestionCounter = 0
	s.AskedQuestions = nil
	s.Answers = nil
	s.AwaitingAnswer = false
	s.EstimatedTimeUsedMin = 0
	s.BehavioralQuestions = 0
	s.TechnicalQuestions = 0

	e.logger.Info("session prepared",
		zap.String("session_id", s.SessionID),
		zap.String("role", s.Role),
		zap.String("seniority", s.Seniority),
		zap.Int("max_questions", s.MaxQuestions),
		zap.Int("time_budget_min", s.TimeBudgetMin),
	)

	return nil
}

// Advance performs exactly one non-interactive transition and reports which
// action was taken. When the engine is suspended on an answer it does nothing
// and returns ActionAwaitAnswer.
func (e *Engine) Advance() Action {
	s := e.state

	if s.AwaitingAnswer {
		return ActionAwaitAnswer
	}

	action := Decide(s)

	switch action {
	case ActionAskQuestion:
		q := SelectQuestion(e.bank, s)
		if q == nil {
			// Bank exhausted; close the loop instead of stalling.
			e.logger.Info("question bank exhausted", zap.String("session_id", s.SessionID))
			e.finalizeReport()
			return ActionFinalReport
		}
		e.poseQuestion(*q, fmt.Sprintf("Question: %s", q.Text), true)

	case ActionFollowUp:
		e.poseFollowUp()

	case ActionFinalReport:
		if s.EstimatedTimeUsedMin >= float64(s.TimeBudgetMin) {
			s.appendMessage(RoleInterviewer, "Time limit reached.")
		}
		e.finalizeReport()

	case ActionSalaryNegotiation:
		e.enterSalaryNegotiation()

	case ActionPersist:
		// Terminal; nothing to mutate.
	}

	e.logger.Debug("transition", zap.String("session_id", s.SessionID), zap.Stringer("action", action))

	return action
}

// Step records the candidate's answer to the current question and runs the
// evaluation and progress stages. Calling it when no answer is awaited is a
// defensive no-op.
func (e *Engine) Step(answer string) *AnswerRecord {
	s := e.state

	if !s.AwaitingAnswer || s.CurrentQuestion == nil {
		e.logger.Warn("answer received while no question is awaiting one", zap.String("session_id", s.SessionID))
		return nil
	}

	s.appendMessage(RoleCandidate, answer)

	elapsed := e.now().Sub(s.QuestionPostedAt).Seconds()
	rec := e.evaluator.Evaluate(answer, s, elapsed)

	s.Answers = append(s.Answers, rec)
	s.AwaitingAnswer = false
	s.Difficulty = NextDifficulty(s.Difficulty, rec.Score)
	s.ShouldFollowUp = ShouldFollowUp(rec.Score)

	s.updateProgress()

	e.logger.Info("answer evaluated",
		zap.String("session_id", s.SessionID),
		zap.String("question_id", rec.QuestionID),
		zap.Float64("score", rec.Score),
		zap.String("confidence", string(rec.Confidence)),
		zap.String("difficulty", string(s.Difficulty)),
		zap.Bool("follow_up", s.ShouldFollowUp),
		zap.Float64("time_used_min", s.EstimatedTimeUsedMin),
	)

	return s.LastAnswer()
}

// poseQuestion appends the question to the history and suspends the session
// until an answer arrives. Type counters only track bank questions, not
// synthesized follow-ups.
func (e *Engine) poseQuestion(q QuestionRecord, transcript string, countType bool) {
	s := e.state

	s.CurrentQuestion = &q
	s.QuestionPostedAt = e.now()
	s.QuestionCounter++
	s.AskedQuestions = append(s.AskedQuestions, q)
	s.AwaitingAnswer = true
	s.appendMessage(RoleInterviewer, transcript)

	if countType {
		switch q.Type {
		case QuestionBehavioral:
			s.BehavioralQuestions++
		case QuestionTechnical:
			s.TechnicalQuestions++
		}
	}

	e.logger.Info("question posed",
		zap.String("session_id", s.SessionID),
		zap.String("question_id", q.ID),
		zap.String("difficulty", string(q.Difficulty)),
		zap.String("topic", q.Topic),
		zap.Int("question_counter", s.QuestionCounter),
	)
}

// poseFollowUp synthesizes the clarifying question from the latest answer.
// The follow-up flag is consumed here, so at most one follow-up fires per
// evaluated answer.
func (e *Engine) poseFollowUp() {
	s := e.state
	s.ShouldFollowUp = false

	parent := s.CurrentQuestion
	if parent == nil {
		return
	}

	previous := ""
	if last := s.LastAnswer(); last != nil {
		previous = last.Answer
	}

	q := SynthesizeFollowUp(parent, previous)
	e.poseQuestion(q, fmt.Sprintf("Follow-up: %s", q.Text), false)
}

// finalizeReport generates the closing report exactly once.
func (e *Engine) finalizeReport() {
	s := e.state

	if s.InterviewComplete {
		return
	}

	s.FinalReport = GenerateReport(s)
	s.InterviewComplete = true
	s.ShouldFollowUp = false
	s.appendMessage(RoleInterviewer, "Interview complete. Generating final report.")

	e.logger.Info("final report generated",
		zap.String("session_id", s.SessionID),
		zap.Int("answered", s.FinalReport.TotalQuestions),
		zap.String("average_score", s.FinalReport.AverageScore),
	)
}

// enterSalaryNegotiation poses the single salary question, if the bank has
// one. Without a salary question the stage is a no-op and the next transition
// falls through to persistence.
func (e *Engine) enterSalaryNegotiation() {
	s := e.state
	s.SalaryNegotiationPhase = true

	q := FirstByTopic(e.bank, "Salary")
	if q == nil {
		e.logger.Info("no salary question in bank, skipping negotiation stage", zap.String("session_id", s.SessionID))
		return
	}

	e.poseQuestion(*q, fmt.Sprintf("Now, let's discuss salary. %s", q.Text), false)
}
