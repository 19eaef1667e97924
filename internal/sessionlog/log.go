// Package sessionlog appends completed sessions to a JSON log file. The log
// is advisory history: a missing or corrupt file is treated as empty and the
// whole file is rewritten on every append, last writer wins.
package sessionlog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/interview-coach/internal/interview"
)

// Entry is one completed session's summary.
type Entry struct {
	JobDescription string                   `json:"job_description" mapstructure:"job_description"`
	Role           string                   `json:"user_role" mapstructure:"user_role"`
	FinalReport    *interview.Report        `json:"final_report" mapstructure:"final_report"`
	Answers        []interview.AnswerRecord `json:"answers" mapstructure:"answers"`
}

// Log is the append-only session history.
type Log struct {
	path   string
	logger *zap.Logger
}

// New creates a log writing to path.
func New(path string, logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{path: path, logger: logger}
}

// NewEntry builds a log entry from a terminal session state.
func NewEntry(state *interview.State) *Entry {
	return &Entry{
		JobDescription: state.JobDescription,
		Role:           state.Role,
		FinalReport:    state.FinalReport,
		Answers:        state.Answers,
	}
}

// Append reads the existing log, adds the entry and rewrites the file.
// Read failures never propagate: the history restarts from the new entry.
func (l *Log) Append(entry *Entry) error {
	entries := l.Read()
	entries = append(entries, entry)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session log: %w", err)
	}

	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		return fmt.Errorf("writing session log %s: %w", l.path, err)
	}

	l.logger.Info("session appended to log", zap.String("path", l.path), zap.Int("sessions", len(entries)))

	return nil
}

// Read returns all recorded entries. Missing or malformed content is treated
// as an empty history; individually malformed entries are dropped.
func (l *Log) Read() []*Entry {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if !os.IsNotExist(err) {
			l.logger.Warn("reading session log failed, treating it as empty", zap.String("path", l.path), zap.Error(err))
		}
		return nil
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		l.logger.Warn("session log is malformed, treating it as empty", zap.String("path", l.path), zap.Error(err))
		return nil
	}

	entries := make([]*Entry, 0, len(raw))
	for i, item := range raw {
		var entry Entry
		if err := mapstructure.Decode(item, &entry); err != nil {
			l.logger.Warn("dropping malformed session log entry", zap.Int("index", i), zap.Error(err))
			continue
		}
		entries = append(entries, &entry)
	}

	return entries
}
