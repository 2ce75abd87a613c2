package dotdir

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	threadFile = "thread.json"
)

// ThreadState is the assistant thread the last "kagi ask" ran in.
type ThreadState struct {
	// ThreadID is the Kagi Assistant thread to continue.
	ThreadID string `json:"thread_id"`

	// Title is the thread title Kagi generated, for display only.
	Title string `json:"title,omitempty"`

	// Model is the model the thread was started with.
	Model string `json:"model,omitempty"`
}

// LoadThreadState loads the thread state from a target .kagi/thread.json.
// Returns nil, nil if no thread has been saved yet.
// If overrideDir is non-empty, it is used instead of the default location.
func (m *Manager) LoadThreadState(overrideDir string) (*ThreadState, error) {
	dir, err := m.Target(overrideDir)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, threadFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading thread state: %w", err)
	}

	state := &ThreadState{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("parsing thread state: %w", err)
	}

	return state, nil
}

// SaveThread persists the thread state to a target .kagi/thread.json.
func (m *Manager) SaveThread(state *ThreadState, overrideDir string) error {
	if state == nil {
		return errors.New("cannot save nil thread state")
	}
	if state.ThreadID == "" {
		return errors.New("cannot save thread state without a thread id")
	}

	dir, err := m.Target(overrideDir)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling thread state: %w", err)
	}

	path := filepath.Join(dir, threadFile)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing thread state: %w", err)
	}

	return nil
}

// ClearThread removes the thread state file so the next prompt starts a new
// thread. Returns nil if the file doesn't exist (already cleared).
func (m *Manager) ClearThread(overrideDir string) error {
	dir, err := m.Target(overrideDir)
	if err != nil {
		return err
	}

	path := filepath.Join(dir, threadFile)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("removing thread state: %w", err)
	}

	return nil
}
