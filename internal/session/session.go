// Package session remembers where the cursor was in each file between runs.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/kobzarvs/qcode/internal/logger"
)

// MaxFiles bounds how many files the session keeps; the least recently
// touched are dropped first.
const MaxFiles = 200

type FileState struct {
	CursorRow int       `json:"cursor_row"`
	CursorCol int       `json:"cursor_col"`
	ScrollY   int       `json:"scroll_y"`
	Language  string    `json:"language,omitempty"`
	Touched   time.Time `json:"touched"`
}

type Session struct {
	Files      map[string]FileState `json:"files"`
	ActiveFile string               `json:"active_file,omitempty"`
	LastSaved  time.Time            `json:"last_saved"`
}

type Manager struct {
	mu       sync.RWMutex
	session  Session
	path     string
	dirty    bool
	stopOnce sync.Once
	stopChan chan struct{}
}

// NewManager opens the session at the default path (see Path) and saves
// it every interval until Stop. An interval of zero disables autosave.
func NewManager(interval time.Duration) (*Manager, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	m, err := Open(path)
	if err != nil {
		return nil, err
	}
	if interval > 0 {
		go m.autosaveLoop(interval)
	}
	return m, nil
}

// Path is $XDG_STATE_HOME/qcode/session.json, falling back to
// ~/.local/state.
func Path() (string, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		stateDir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateDir, "qcode", "session.json"), nil
}

// Open loads the session stored at path. A missing or unreadable file
// starts an empty session.
func Open(path string) (*Manager, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	m := &Manager{
		session:  Session{Files: make(map[string]FileState)},
		path:     path,
		stopChan: make(chan struct{}),
	}
	m.load()
	return m, nil
}

func (m *Manager) load() {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("session read failed", "path", m.path, "err", err)
		}
		return
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		logger.Warn("session file corrupt, starting fresh", "path", m.path, "err", err)
		return
	}
	if s.Files == nil {
		s.Files = make(map[string]FileState)
	}
	m.session = s
}

// Save writes the session if anything changed since the last save.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.dirty {
		return nil
	}
	m.prune()
	m.session.LastSaved = time.Now()
	data, err := json.MarshalIndent(m.session, "", "  ")
	if err != nil {
		return err
	}
	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, m.path); err != nil {
		return err
	}
	m.dirty = false
	return nil
}

func (m *Manager) prune() {
	if len(m.session.Files) <= MaxFiles {
		return
	}
	paths := make([]string, 0, len(m.session.Files))
	for p := range m.session.Files {
		paths = append(paths, p)
	}
	sort.Slice(paths, func(i, j int) bool {
		return m.session.Files[paths[i]].Touched.After(m.session.Files[paths[j]].Touched)
	})
	for _, p := range paths[MaxFiles:] {
		delete(m.session.Files, p)
	}
}

func (m *Manager) FileState(absPath string) (FileState, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.session.Files[absPath]
	return st, ok
}

// SetFileState records state for absPath and makes it the active file.
func (m *Manager) SetFileState(absPath string, st FileState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st.Touched.IsZero() {
		st.Touched = time.Now()
	}
	m.session.Files[absPath] = st
	m.session.ActiveFile = absPath
	m.dirty = true
}

func (m *Manager) ActiveFile() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.ActiveFile
}

func (m *Manager) autosaveLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := m.Save(); err != nil {
				logger.Warn("session autosave failed", "err", err)
			}
		case <-m.stopChan:
			return
		}
	}
}

// Stop ends autosave and writes the final state.
func (m *Manager) Stop() error {
	m.stopOnce.Do(func() { close(m.stopChan) })
	return m.Save()
}
