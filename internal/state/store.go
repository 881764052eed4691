package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// Store keeps the set of fingerprints already delivered in prior runs.
// It is the only entity with cross-run lifetime: loaded once at startup,
// mutated in memory, persisted after confirmed deliveries.
type Store struct {
	path   string
	logger *zerolog.Logger

	mu   sync.Mutex
	sent map[string]struct{}
}

func NewStore(path string, logger *zerolog.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger,
		sent:   make(map[string]struct{}),
	}
}

// Load reads the sent-state file. A missing or corrupt file yields an empty
// set: losing dedup state degrades the next run, it never fails it.
func (s *Store) Load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("path", s.path).Msg("failed to read state file, starting empty")
		}

		return
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("corrupt state file, starting empty")

		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		s.sent[id] = struct{}{}
	}
}

// Contains reports whether a fingerprint was delivered in a prior run.
func (s *Store) Contains(fingerprint string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.sent[fingerprint]

	return ok
}

// MarkSent records fingerprints of confirmed deliveries in memory.
func (s *Store) MarkSent(fingerprints ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, fp := range fingerprints {
		s.sent[fp] = struct{}{}
	}
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sent)
}

// Save persists the full set atomically via temp-file-and-rename so a crash
// mid-write cannot leave a half-written file. Write failure is logged and
// swallowed: state loss is a degraded mode, not a crash.
func (s *Store) Save() {
	if err := s.save(); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("failed to persist sent state")
	}
}

func (s *Store) save() error {
	s.mu.Lock()
	ids := make([]string, 0, len(s.sent))

	for id := range s.sent {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	sort.Strings(ids)

	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	dir := filepath.Dir(s.path)

	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}

	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)

		return fmt.Errorf("write temp state file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)

		return fmt.Errorf("close temp state file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)

		return fmt.Errorf("rename state file: %w", err)
	}

	return nil
}
