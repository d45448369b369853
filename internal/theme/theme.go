// Package theme persists the light/dark preference. A Store is created once
// at startup and handed to whatever renders.
package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Mode is a colour scheme
type Mode string

const (
	Dark  Mode = "dark"
	Light Mode = "light"
)

// Opposite returns the other mode
func (m Mode) Opposite() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// Store holds the current mode and its persisted copy
type Store struct {
	path        string
	prefersDark func() bool

	mu   sync.Mutex
	mode Mode
}

// DefaultPath returns the theme file under the user config directory
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "portfolio", "theme"), nil
}

// NewStore creates a Store persisting to path. prefersDark reports the OS
// preference and may be nil to ask the terminal.
func NewStore(path string, prefersDark func() bool) *Store {
	if prefersDark == nil {
		prefersDark = lipgloss.HasDarkBackground
	}
	return &Store{path: path, prefersDark: prefersDark, mode: Light}
}

// Load reads the persisted mode, falling back to the OS preference when
// nothing valid is stored.
func (s *Store) Load() (Mode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to read theme: %w", err)
	}

	switch Mode(strings.TrimSpace(string(data))) {
	case Dark:
		s.mode = Dark
	case Light:
		s.mode = Light
	default:
		if s.prefersDark() {
			s.mode = Dark
		} else {
			s.mode = Light
		}
	}
	return s.mode, nil
}

// Mode returns the current mode
func (s *Store) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// IsDark reports whether the dark scheme is active
func (s *Store) IsDark() bool {
	return s.Mode() == Dark
}

// Toggle flips the mode and persists it
func (s *Store) Toggle() (Mode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.mode.Opposite()
	if err := s.save(next); err != nil {
		return s.mode, err
	}
	s.mode = next
	return next, nil
}

func (s *Store) save(m Mode) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create theme directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(m), 0o644); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}
