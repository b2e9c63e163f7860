// Package source keeps the text of every program handed to the front end so
// diagnostics can quote the offending line after the pipeline has finished.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/labstack/gommon/bytes"
)

// MaxSourceBytes caps a single source file (4MB).
const MaxSourceBytes = 4 << 20

// Ext is the file extension of sabaka programs.
const Ext = ".sb"

var (
	ErrFileNotFound = errors.New("file not found")
	ErrTooLarge     = errors.New("source file too large")
	ErrNotSource    = errors.New("not a sabaka source file")
)

type File struct {
	Name     string
	Text     string
	Loaded   time.Time
	Modified time.Time

	lines []string
}

// Store is an in-memory set of named source buffers. It is safe for
// concurrent use.
type Store struct {
	mu        sync.RWMutex
	files     map[string]*File
	usedBytes int
}

func NewStore() *Store {
	return &Store{files: make(map[string]*File)}
}

func newFile(name, text string) *File {
	return &File{
		Name:     name,
		Text:     text,
		Loaded:   time.Now(),
		Modified: time.Now(),
		lines:    strings.Split(text, "\n"),
	}
}

// Add stores text under name, replacing any previous buffer with that name.
func (s *Store) Add(name, text string) (*File, error) {
	if len(text) > MaxSourceBytes {
		return nil, fmt.Errorf("%s: %w (%s, limit %s)", name, ErrTooLarge,
			bytes.Format(int64(len(text))), bytes.Format(MaxSourceBytes))
	}

	f := newFile(name, text)
	s.put(f)
	return f, nil
}

func (s *Store) put(f *File) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.files[f.Name]; ok {
		s.usedBytes -= len(old.Text)
	}
	s.files[f.Name] = f
	s.usedBytes += len(f.Text)
}

// Load reads a file from disk and stores it under its absolute path.
func (s *Store) Load(path string) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrFileNotFound)
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s: %w", path, ErrNotSource)
	}
	if info.Size() > MaxSourceBytes {
		return nil, fmt.Errorf("%s: %w (%s, limit %s)", path, ErrTooLarge,
			bytes.Format(info.Size()), bytes.Format(MaxSourceBytes))
	}

	raw, err := os.ReadFile(abs)
	if err != nil {
		return nil, err
	}
	f := newFile(abs, string(raw))
	f.Modified = info.ModTime()
	s.put(f)
	return f, nil
}

// LoadDir loads every *.sb file directly inside dir and returns their names
// in sorted order. Subdirectories are not searched.
func (s *Store) LoadDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", dir, ErrFileNotFound)
		}
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != Ext {
			continue
		}
		f, err := s.Load(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names, nil
}

// Get returns the stored file called name.
func (s *Store) Get(name string) (*File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.files[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrFileNotFound)
	}
	return f, nil
}

// Line returns the 1-based line n of the named file.
func (s *Store) Line(name string, n int) (string, bool) {
	f, err := s.Get(name)
	if err != nil {
		return "", false
	}
	return f.Line(n)
}

// Line returns the 1-based line n of the file without its trailing newline.
func (f *File) Line(n int) (string, bool) {
	if n < 1 || n > len(f.lines) {
		return "", false
	}
	return strings.TrimSuffix(f.lines[n-1], "\r"), true
}

// Size returns the total number of stored bytes.
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.usedBytes
}

// List returns a sorted list of all stored names.
func (s *Store) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.files))
	for k := range s.files {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
