package source

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
)

func TestStore_Add(t *testing.T) {
	tests := []struct {
		name         string
		file         string
		text         string
		expectError  bool
		expectedSize int
	}{
		{
			name:         "Valid add",
			file:         "main.sb",
			text:         "int x = 1;",
			expectError:  false,
			expectedSize: 10,
		},
		{
			name:         "Empty source",
			file:         "empty.sb",
			text:         "",
			expectError:  false,
			expectedSize: 0,
		},
		{
			name:         "Too large",
			file:         "big.sb",
			text:         strings.Repeat("x", MaxSourceBytes+1),
			expectError:  true,
			expectedSize: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			f, err := s.Add(tt.file, tt.text)

			if (err != nil) != tt.expectError {
				t.Fatalf("Add() error = %v, expectError %v", err, tt.expectError)
			}
			if tt.expectError {
				if !errors.Is(err, ErrTooLarge) {
					t.Errorf("expected ErrTooLarge, got %v", err)
				}
				return
			}
			if s.Size() != tt.expectedSize {
				t.Errorf("Size() = %d, expected %d", s.Size(), tt.expectedSize)
			}
			if f.Name != tt.file || f.Text != tt.text {
				t.Errorf("stored %q = %q", f.Name, f.Text)
			}
		})
	}
}

func TestStore_AddReplaces(t *testing.T) {
	s := NewStore()
	s.Add("a.sb", "12345")
	s.Add("a.sb", "12")
	if s.Size() != 2 {
		t.Errorf("Size() = %d, expected 2", s.Size())
	}
	f, err := s.Get("a.sb")
	if err != nil {
		t.Fatal(err)
	}
	if f.Text != "12" {
		t.Errorf("Text = %q, expected %q", f.Text, "12")
	}
}

func TestStore_Get(t *testing.T) {
	s := NewStore()
	s.Add("a.sb", "x;")

	if _, err := s.Get("a.sb"); err != nil {
		t.Errorf("Get() error = %v", err)
	}
	if _, err := s.Get("missing.sb"); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Get() error = %v, expected ErrFileNotFound", err)
	}
}

func TestStore_Line(t *testing.T) {
	s := NewStore()
	s.Add("a.sb", "first\r\nsecond\n\nfourth")

	tests := []struct {
		n    int
		want string
		ok   bool
	}{
		{1, "first", true},
		{2, "second", true},
		{3, "", true},
		{4, "fourth", true},
		{0, "", false},
		{5, "", false},
	}
	for _, tt := range tests {
		got, ok := s.Line("a.sb", tt.n)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Line(%d) = %q, %v; expected %q, %v", tt.n, got, ok, tt.want, tt.ok)
		}
	}
	if _, ok := s.Line("missing.sb", 1); ok {
		t.Error("Line() on missing file reported ok")
	}
}

func TestStore_List(t *testing.T) {
	s := NewStore()
	s.Add("c.sb", "")
	s.Add("a.sb", "")
	s.Add("b.sb", "")

	expected := []string{"a.sb", "b.sb", "c.sb"}
	if got := s.List(); !reflect.DeepEqual(got, expected) {
		t.Errorf("List() = %v, expected %v", got, expected)
	}
}

func TestStore_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.sb")
	if err := os.WriteFile(path, []byte("int x = 1;\nx = 2;"), 0644); err != nil {
		t.Fatal(err)
	}

	s := NewStore()
	f, err := s.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !filepath.IsAbs(f.Name) {
		t.Errorf("Name %q is not absolute", f.Name)
	}
	if line, _ := f.Line(2); line != "x = 2;" {
		t.Errorf("Line(2) = %q", line)
	}

	if _, err := s.Load(filepath.Join(dir, "nope.sb")); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Load() missing error = %v, expected ErrFileNotFound", err)
	}
	if _, err := s.Load(dir); !errors.Is(err, ErrNotSource) {
		t.Errorf("Load() dir error = %v, expected ErrNotSource", err)
	}
}

func TestStore_LoadDir(t *testing.T) {
	dir := t.TempDir()
	for name, text := range map[string]string{
		"b.sb":      "int b;",
		"a.sb":      "int a;",
		"notes.txt": "ignored",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(text), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.sb"), 0755); err != nil {
		t.Fatal(err)
	}

	s := NewStore()
	names, err := s.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("LoadDir() = %v, expected 2 files", names)
	}
	if filepath.Base(names[0]) != "a.sb" || filepath.Base(names[1]) != "b.sb" {
		t.Errorf("LoadDir() = %v, expected a.sb then b.sb", names)
	}

	if _, err := s.LoadDir(filepath.Join(dir, "missing")); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("LoadDir() missing error = %v", err)
	}
}

func TestStore_Concurrent(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := string(rune('a'+i%26)) + ".sb"
			s.Add(name, "x;")
			s.Get(name)
			s.List()
		}(i)
	}
	wg.Wait()
	if len(s.List()) != 26 {
		t.Errorf("List() has %d entries, expected 26", len(s.List()))
	}
	if s.Size() != 26*2 {
		t.Errorf("Size() = %d, expected %d", s.Size(), 26*2)
	}
}
