package interview

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/interview-coach/internal/content"
)

func TestDecide(t *testing.T) {
	cases := []struct {
		name  string
		state *State
		want  Action
	}{
		{
			name:  "fresh session asks a question",
			state: &State{MaxQuestions: 5, TimeBudgetMin: 15},
			want:  ActionAskQuestion,
		},
		{
			name:  "follow-up flag wins over questioning",
			state: &State{MaxQuestions: 5, TimeBudgetMin: 15, ShouldFollowUp: true},
			want:  ActionFollowUp,
		},
		{
			name:  "time budget exhausted",
			state: &State{MaxQuestions: 5, TimeBudgetMin: 15, EstimatedTimeUsedMin: 15},
			want:  ActionFinalReport,
		},
		{
			name:  "question quota reached",
			state: &State{MaxQuestions: 5, TimeBudgetMin: 15, QuestionCounter: 5},
			want:  ActionFinalReport,
		},
		{
			name:  "complete routes to salary stage",
			state: &State{InterviewComplete: true},
			want:  ActionSalaryNegotiation,
		},
		{
			name:  "complete and negotiated routes to persistence",
			state: &State{InterviewComplete: true, SalaryNegotiationPhase: true},
			want:  ActionPersist,
		},
		{
			name:  "completion wins over pending follow-up",
			state: &State{InterviewComplete: true, ShouldFollowUp: true},
			want:  ActionSalaryNegotiation,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Decide(tc.state))
		})
	}
}

// steppedClock advances a fixed amount on every reading.
func steppedClock(step time.Duration) func() time.Time {
	current := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return func() time.Time {
		current = current.Add(step)
		return current
	}
}

func newTestEngine(t *testing.T, bank QuestionSource, settings Settings) *Engine {
	t.Helper()

	state := NewState("test-session", settings)
	engine := NewEngine(state, bank, content.NewTemplateProvider(), nil)
	engine.now = steppedClock(0)

	require.NoError(t, engine.Prepare(context.Background()))
	return engine
}

const strongSQLAnswer = "In my previous company the situation was that our SQL database was overloaded. " +
	"My task was to reduce query latency for the reporting dashboard used by the sales team every morning. " +
	"I implemented an action plan: profiled the slowest queries, added covering indexes, and rewrote the worst joins. " +
	"I also built a caching layer for repeated lookups and created alerts for regressions. " +
	"The result was a major impact: latency improved by eighty percent and we reduced infrastructure cost while handling twice the traffic."

func TestEngineEndToEndStrongCandidate(t *testing.T) {
	engine := newTestEngine(t, sqlBank(), Settings{Role: "Backend Developer", MaxQuestions: 2})
	state := engine.State()

	action := engine.Advance()
	require.Equal(t, ActionAskQuestion, action)
	require.True(t, engine.AwaitingAnswer())
	// Medium start difficulty selects the medium question first.
	assert.Equal(t, "q2", state.CurrentQuestion.ID)
	assert.Equal(t, 1, state.QuestionCounter)
	assert.Equal(t, 1, state.TechnicalQuestions)

	rec := engine.Step(strongSQLAnswer)
	require.NotNil(t, rec)
	assert.Equal(t, 5.0, rec.Score)
	assert.Equal(t, ConfidenceHigh, rec.Confidence)
	// Difficulty escalates one tier, no follow-up for a 5.0 answer.
	assert.Equal(t, DifficultyHard, state.Difficulty)
	assert.False(t, state.ShouldFollowUp)

	action = engine.Advance()
	require.Equal(t, ActionAskQuestion, action)
	assert.Equal(t, "q3", state.CurrentQuestion.ID)

	rec = engine.Step(strongSQLAnswer)
	require.NotNil(t, rec)

	// Quota of two reached.
	action = engine.Advance()
	require.Equal(t, ActionFinalReport, action)
	require.True(t, state.InterviewComplete)
	require.NotNil(t, state.FinalReport)
	assert.Equal(t, 2, state.FinalReport.TotalQuestions)
	assert.Equal(t, "5.00", state.FinalReport.AverageScore)

	// No salary question in this bank: the stage is a no-op.
	action = engine.Advance()
	require.Equal(t, ActionSalaryNegotiation, action)
	assert.False(t, engine.AwaitingAnswer())
	assert.True(t, state.SalaryNegotiationPhase)

	action = engine.Advance()
	require.Equal(t, ActionPersist, action)
}

func TestEngineFollowUpFlow(t *testing.T) {
	engine := newTestEngine(t, sqlBank(), Settings{MaxQuestions: 5})
	state := engine.State()

	require.Equal(t, ActionAskQuestion, engine.Advance())

	// Two STAR dimensions, the required skill and ~40 words puts the score in
	// the follow-up band.
	answer := "The situation was a slow SQL report and my task was clear. " +
		"We profiled the queries and tuned the indexes over the next week, " +
		"then we verified the dashboards with the analysts and the operations team the following days."

	rec := engine.Step(answer)
	require.NotNil(t, rec)
	require.True(t, ShouldFollowUp(rec.Score), "score %v should be in the follow-up band", rec.Score)
	require.True(t, state.ShouldFollowUp)

	action := engine.Advance()
	require.Equal(t, ActionFollowUp, action)

	// The flag is consumed exactly once and the synthesized question inherits
	// the parent's identity.
	assert.False(t, state.ShouldFollowUp)
	assert.Equal(t, "followup_q2", state.CurrentQuestion.ID)
	assert.Equal(t, DifficultyMedium, state.CurrentQuestion.Difficulty)
	assert.Equal(t, "SQL", state.CurrentQuestion.Topic)
	assert.Equal(t, 2, state.QuestionCounter)
	// Follow-ups do not count as bank questions.
	assert.Equal(t, 1, state.TechnicalQuestions)
	assert.True(t, engine.AwaitingAnswer())
}

func TestEngineTimeBudgetRoutesToFinalReport(t *testing.T) {
	engine := newTestEngine(t, sqlBank(), Settings{MaxQuestions: 5, TimeBudgetMin: 1})
	state := engine.State()

	// Every clock reading advances 35 seconds: each pose+answer pair consumes
	// more than half the one minute budget.
	engine.now = steppedClock(35 * time.Second)

	require.Equal(t, ActionAskQuestion, engine.Advance())
	require.NotNil(t, engine.Step(strongSQLAnswer))

	require.Equal(t, ActionAskQuestion, engine.Advance())
	require.NotNil(t, engine.Step(strongSQLAnswer))

	require.GreaterOrEqual(t, state.EstimatedTimeUsedMin, 1.0)

	action := engine.Advance()
	require.Equal(t, ActionFinalReport, action)
	assert.True(t, state.InterviewComplete)
	assert.Less(t, state.QuestionCounter, state.MaxQuestions)
}

func TestEngineBankExhaustionRoutesToFinalReport(t *testing.T) {
	engine := newTestEngine(t, staticBank{}, Settings{MaxQuestions: 5})
	state := engine.State()

	action := engine.Advance()
	require.Equal(t, ActionFinalReport, action)
	require.True(t, state.InterviewComplete)
	assert.Equal(t, 0, state.FinalReport.TotalQuestions)

	// FinalReport is idempotent: the report generated once stays untouched.
	report := state.FinalReport
	engine.Advance()
	engine.Advance()
	assert.Same(t, report, state.FinalReport)
}

func TestEngineSalaryNegotiationStage(t *testing.T) {
	bank := append(sqlBank(), QuestionRecord{
		ID: "sal1", Text: "What are your salary expectations?", Type: QuestionBehavioral, Difficulty: DifficultyMedium, Topic: "Salary",
	})

	engine := newTestEngine(t, bank, Settings{MaxQuestions: 1})
	state := engine.State()

	require.Equal(t, ActionAskQuestion, engine.Advance())
	require.NotNil(t, engine.Step(strongSQLAnswer))
	require.Equal(t, ActionFinalReport, engine.Advance())

	action := engine.Advance()
	require.Equal(t, ActionSalaryNegotiation, action)
	require.True(t, engine.AwaitingAnswer())
	assert.Equal(t, "sal1", state.CurrentQuestion.ID)

	answers := len(state.Answers)
	rec := engine.Step("I expect a fair market salary based on the role and my results")
	require.NotNil(t, rec)
	assert.Len(t, state.Answers, answers+1)

	// Only one salary question is ever asked.
	action = engine.Advance()
	require.Equal(t, ActionPersist, action)

	// The salary answer arrives after the report and must not change it.
	assert.Equal(t, 1, state.FinalReport.TotalQuestions)
}

func TestEngineStepWithoutPendingQuestionIsNoOp(t *testing.T) {
	engine := newTestEngine(t, sqlBank(), Settings{})
	state := engine.State()

	require.Nil(t, engine.Step("out of order answer"))
	assert.Empty(t, state.Answers)
	assert.False(t, state.AwaitingAnswer)
}

func TestEngineResumesFromCheckpoint(t *testing.T) {
	engine := newTestEngine(t, sqlBank(), Settings{MaxQuestions: 2})

	require.Equal(t, ActionAskQuestion, engine.Advance())
	require.True(t, engine.AwaitingAnswer())

	// Suspend: serialize the state as the session store would.
	data, err := json.Marshal(engine.State())
	require.NoError(t, err)

	var restored State
	require.NoError(t, json.Unmarshal(data, &restored))

	resumed := NewEngine(&restored, sqlBank(), content.NewTemplateProvider(), nil)
	resumed.now = steppedClock(0)

	require.True(t, resumed.AwaitingAnswer())
	rec := resumed.Step(strongSQLAnswer)
	require.NotNil(t, rec)
	assert.Equal(t, 5.0, rec.Score)
	assert.Equal(t, "q2", rec.QuestionID)
	assert.Len(t, restored.Answers, 1)
}

func TestEngineStateInvariants(t *testing.T) {
	engine := newTestEngine(t, sqlBank(), Settings{MaxQuestions: 3})
	state := engine.State()

	for i := 0; i < 10; i++ {
		if engine.AwaitingAnswer() {
			require.NotNil(t, state.CurrentQuestion)
			require.Nil(t, state.AnswerFor(state.CurrentQuestion.ID))
			engine.Step(strongSQLAnswer)
		} else if engine.Advance() == ActionPersist {
			break
		}

		require.Len(t, state.AskedQuestions, state.QuestionCounter)
		for _, a := range state.Answers {
			found := false
			for _, q := range state.AskedQuestions {
				if q.ID == a.QuestionID {
					found = true
					break
				}
			}
			require.True(t, found, "answer %s has no matching asked question", a.QuestionID)
		}
	}

	require.True(t, state.InterviewComplete)
}
