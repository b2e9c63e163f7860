package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"

	"sabaka/pkg/compiler"
	"sabaka/pkg/config"
	"sabaka/pkg/source"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestCheckPaths(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		failed map[string]any // base name -> error type pointer
	}{
		{
			name:   "Valid Directory",
			path:   "testdata/valid",
			failed: map[string]any{},
		},
		{
			name: "Invalid Directory",
			path: "testdata/invalid",
			failed: map[string]any{
				"arity.sb":    new(*compiler.SemanticError),
				"bigint.sb":   new(*compiler.LexError),
				"mismatch.sb": new(*compiler.SemanticError),
				"scope.sb":    new(*compiler.SemanticError),
				"syntax.sb":   new(*compiler.SyntaxError),
			},
		},
		{
			name:   "Single File",
			path:   "testdata/valid/fib.sb",
			failed: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := checkPaths(context.Background(), []string{tt.path}, config.Default(), quietLogger())
			if err != nil {
				t.Fatalf("checkPaths() error = %v", err)
			}
			if len(results) == 0 {
				t.Fatal("no results")
			}
			for i, r := range results {
				if i > 0 && results[i-1].name > r.name {
					t.Errorf("results not sorted: %s before %s", results[i-1].name, r.name)
				}
				if !filepath.IsAbs(r.name) {
					t.Errorf("%s: name not absolute", r.name)
				}

				target, shouldFail := tt.failed[filepath.Base(r.name)]
				if !shouldFail {
					if r.err != nil {
						t.Errorf("%s: unexpected error %v", r.name, r.err)
					}
					continue
				}
				if r.err == nil {
					t.Errorf("%s: expected failure", r.name)
					continue
				}
				if !errors.As(r.err, target) {
					t.Errorf("%s: error %T, want %T", r.name, r.err, target)
				}
			}
		})
	}
}

func TestCheckPathsLegacyConfig(t *testing.T) {
	cfg, err := config.Load("testdata/legacy.toml")
	if err != nil {
		t.Fatal(err)
	}
	results, err := checkPaths(context.Background(), []string{"testdata/invalid/scope.sb"}, cfg, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].err != nil {
		t.Errorf("legacy scope exit should accept scope.sb, got %+v", results)
	}
}

func TestCheckPathsLoadErrors(t *testing.T) {
	_, err := checkPaths(context.Background(), []string{"testdata/nope.sb"}, config.Default(), quietLogger())
	if !errors.Is(err, source.ErrFileNotFound) {
		t.Errorf("missing file: error = %v, want ErrFileNotFound", err)
	}

	_, err = checkPaths(context.Background(), []string{t.TempDir()}, config.Default(), quietLogger())
	if err == nil || !strings.Contains(err.Error(), "no .sb files") {
		t.Errorf("empty dir: error = %v", err)
	}
}

func TestCheckPathsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := checkPaths(ctx, []string{"testdata/valid"}, config.Default(), quietLogger())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestPrintResults(t *testing.T) {
	results := []fileResult{
		{name: "a.sb", src: "int a = 1;"},
		{name: "b.sb", src: "int b = 1.0;", err: &compiler.SemanticError{
			Pos: compiler.Position{Line: 1, Column: 9}, Kind: compiler.TypeMismatch, Msg: "cannot assign float to int",
		}},
	}
	var buf bytes.Buffer
	if failed := printResults(&buf, results); failed != 1 {
		t.Errorf("failed = %d, want 1", failed)
	}

	out := pterm.RemoveColorFromString(buf.String())
	for _, want := range []string{
		"OK a.sb",
		"-- Type Error",
		"line 1: cannot assign float to int",
		"1 |  int b = 1.0;",
		"FAIL 2 file(s) checked, 1 failed",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
	}{
		{"Version", []string{"sabaka", "version"}, exitOK, Version},
		{"Check Valid", []string{"sabaka", "check", "testdata/valid"}, exitOK, "3 file(s) checked, 0 failed"},
		{"Check Invalid", []string{"sabaka", "check", "testdata/invalid"}, exitFailed, "5 file(s) checked, 5 failed"},
		{"Check Missing", []string{"sabaka", "check", "testdata/missing.sb"}, exitRuntime, ""},
		{"Legacy Config", []string{"sabaka", "--config", "testdata/legacy.toml", "check", "testdata/invalid/scope.sb"}, exitOK, "1 file(s) checked, 0 failed"},
		{"Missing Config", []string{"sabaka", "-c", "testdata/none.toml", "check", "testdata/valid"}, exitUsage, ""},
		{"No Command", []string{"sabaka"}, exitUsage, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, &stdout, &stderr)
			if code != tt.wantCode {
				t.Errorf("run() = %d, want %d\nstdout: %s\nstderr: %s", code, tt.wantCode, stdout.String(), stderr.String())
			}
			if out := pterm.RemoveColorFromString(stdout.String()); !strings.Contains(out, tt.wantOut) {
				t.Errorf("stdout missing %q:\n%s", tt.wantOut, out)
			}
		})
	}
}
