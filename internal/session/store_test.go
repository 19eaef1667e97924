package session

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/spigell/interview-coach/internal/interview"
)

func TestCreateGeneratesID(t *testing.T) {
	store := NewStore(t.TempDir(), zap.NewNop())

	state := interview.NewState("", interview.Settings{})
	id := store.Create("", state)

	if id == "" {
		t.Fatalf("expected a generated id")
	}

	if state.SessionID != id {
		t.Fatalf("id not written into state: %q vs %q", state.SessionID, id)
	}

	other := store.Create("  ", interview.NewState("", interview.Settings{}))
	if other == id {
		t.Fatalf("expected distinct generated ids")
	}
}

func TestCreateKeepsExplicitID(t *testing.T) {
	store := NewStore(t.TempDir(), zap.NewNop())

	state := interview.NewState("", interview.Settings{})
	id := store.Create("my-session", state)

	if id != "my-session" {
		t.Fatalf("expected explicit id to survive, got %q", id)
	}

	got, ok := store.Get("my-session")
	if !ok || got != state {
		t.Fatalf("state not registered under its id")
	}
}

func TestCheckpointAndResume(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, zap.NewNop())

	state := interview.NewState("", interview.Settings{Role: "Backend Developer", MaxQuestions: 3})
	state.QuestionCounter = 2
	state.AwaitingAnswer = true
	state.CurrentQuestion = &interview.QuestionRecord{ID: "q2", Text: "Explain JOIN types.", Topic: "SQL"}
	state.Answers = []interview.AnswerRecord{{QuestionID: "q1", Score: 4.5}}

	id := store.Create("", state)
	if err := store.Checkpoint(id); err != nil {
		t.Fatalf("checkpoint: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "session_"+id+".json")); err != nil {
		t.Fatalf("checkpoint file not written: %v", err)
	}

	// A fresh store simulates a new process.
	restored, err := NewStore(dir, zap.NewNop()).Resume(id)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}

	if restored.SessionID != id || restored.QuestionCounter != 2 || !restored.AwaitingAnswer {
		t.Fatalf("state not round-tripped: %+v", restored)
	}

	if restored.CurrentQuestion == nil || restored.CurrentQuestion.ID != "q2" {
		t.Fatalf("current question lost: %+v", restored.CurrentQuestion)
	}

	if len(restored.Answers) != 1 || restored.Answers[0].Score != 4.5 {
		t.Fatalf("answers lost: %+v", restored.Answers)
	}
}

func TestCheckpointUnknownSession(t *testing.T) {
	store := NewStore(t.TempDir(), zap.NewNop())

	if err := store.Checkpoint("nope"); err == nil {
		t.Fatalf("expected error for unknown session")
	}
}

func TestResumeMissingCheckpoint(t *testing.T) {
	store := NewStore(t.TempDir(), zap.NewNop())

	if _, err := store.Resume("nope"); err == nil {
		t.Fatalf("expected error for missing checkpoint")
	}
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, zap.NewNop())

	for _, id := range []string{"aaa", "bbb"} {
		store.Create(id, interview.NewState("", interview.Settings{}))
		if err := store.Checkpoint(id); err != nil {
			t.Fatalf("checkpoint %s: %v", id, err)
		}
	}

	// Unrelated files are ignored.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	ids, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(ids) != 2 {
		t.Fatalf("expected 2 sessions, got %v", ids)
	}
}

func TestListMissingDirIsEmpty(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "never-created"), zap.NewNop())

	ids, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(ids) != 0 {
		t.Fatalf("expected no sessions, got %v", ids)
	}
}
