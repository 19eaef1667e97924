// Package session keeps interview state isolated per session key and
// checkpoints it to disk so a suspended conversation can resume in a later
// process. Steps within one session are strictly sequential; the store only
// guards its own map, sessions never share mutable data.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/interview-coach/internal/interview"
)

const checkpointPrefix = "session_"

// Store holds active sessions and their on-disk checkpoints.
type Store struct {
	mu       sync.Mutex
	dir      string
	logger   *zap.Logger
	sessions map[string]*interview.State
}

// NewStore creates a store writing checkpoints under dir.
func NewStore(dir string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Store{
		dir:      dir,
		logger:   logger,
		sessions: make(map[string]*interview.State),
	}
}

// Create registers a new session. An empty id is replaced with a generated
// UUID. The id is returned and also written into the state.
func (s *Store) Create(id string, state *interview.State) string {
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}
	state.SessionID = id

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = state

	return id
}

// Get returns the in-memory state for the given session key.
func (s *Store) Get(id string) (*interview.State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[id]
	return state, ok
}

// Checkpoint writes the session's current state to disk. Failures are
// returned to the caller but leave the in-memory state untouched.
func (s *Store) Checkpoint(id string) error {
	s.mu.Lock()
	state, ok := s.sessions[id]
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("unknown session %q", id)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating sessions dir %s: %w", s.dir, err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session %q: %w", id, err)
	}

	path := s.checkpointPath(id)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing checkpoint %s: %w", path, err)
	}

	s.logger.Debug("session checkpointed", zap.String("session_id", id), zap.String("path", path))

	return nil
}

// Resume loads a checkpointed session from disk and registers it in the
// store.
func (s *Store) Resume(id string) (*interview.State, error) {
	path := s.checkpointPath(id)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading checkpoint %s: %w", path, err)
	}

	var state interview.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parsing checkpoint %s: %w", path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &state

	s.logger.Info("session resumed", zap.String("session_id", id), zap.Bool("awaiting_answer", state.AwaitingAnswer))

	return &state, nil
}

// List returns the ids of all checkpointed sessions. A missing directory is
// an empty list, not an error.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading sessions dir %s: %w", s.dir, err)
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, checkpointPrefix) || filepath.Ext(name) != ".json" {
			continue
		}
		ids = append(ids, strings.TrimSuffix(strings.TrimPrefix(name, checkpointPrefix), ".json"))
	}

	return ids, nil
}

func (s *Store) checkpointPath(id string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s%s.json", checkpointPrefix, id))
}
