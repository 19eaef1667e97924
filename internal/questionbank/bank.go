// Package questionbank loads the static question corpus. The bank is read
// once at startup; a missing or unreadable file degrades to an empty bank so
// the session can still run and close immediately.
package questionbank

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/spigell/interview-coach/internal/interview"
)

// Bank is an ordered, immutable collection of question records.
type Bank struct {
	records []interview.QuestionRecord
}

// New wraps the provided records into a bank, preserving their order.
func New(records []interview.QuestionRecord) *Bank {
	return &Bank{records: records}
}

// Load reads the bank from a JSON or YAML file, chosen by extension. Load
// failures are not fatal: they are logged and an empty bank is returned.
func Load(path string, logger *zap.Logger) *Bank {
	if logger == nil {
		logger = zap.NewNop()
	}

	if strings.TrimSpace(path) == "" {
		logger.Warn("question bank path is not configured, starting with an empty bank")
		return New(nil)
	}

	records, err := readFile(path)
	if err != nil {
		logger.Warn("loading question bank failed, starting with an empty bank",
			zap.String("path", path),
			zap.Error(err),
		)
		return New(nil)
	}

	logger.Info("question bank loaded", zap.String("path", path), zap.Int("questions", len(records)))

	return New(records)
}

func readFile(path string) ([]interview.QuestionRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var records []interview.QuestionRecord

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parsing yaml bank %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parsing json bank %s: %w", path, err)
		}
	}

	return records, nil
}

// Records returns the bank's questions in their fixed order.
func (b *Bank) Records() []interview.QuestionRecord {
	if b == nil {
		return nil
	}
	return b.records
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int {
	if b == nil {
		return 0
	}
	return len(b.records)
}

// Topics returns the distinct topics in bank order.
func (b *Bank) Topics() []string {
	seen := make(map[string]struct{})
	topics := make([]string, 0)
	for _, q := range b.Records() {
		if _, ok := seen[q.Topic]; ok {
			continue
		}
		seen[q.Topic] = struct{}{}
		topics = append(topics, q.Topic)
	}
	return topics
}
