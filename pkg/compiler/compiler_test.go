package compiler

import (
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// quietOptions returns default options with a logger that discards output.
func quietOptions() Options {
	logger, _ := test.NewNullLogger()
	opts := DefaultOptions()
	opts.Logger = logger
	return opts
}

func TestCompile(t *testing.T) {
	src := `
	int square(int n) {
		return n * n;
	}

	int total = 0;
	int i = 0;
	while (i < 4) {
		total += square(i);
		i = i + 1;
	}
	`
	unit, err := Compile("squares.sb", src, quietOptions())
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if unit.Name != "squares.sb" {
		t.Errorf("Name = %q", unit.Name)
	}
	if len(unit.Stmts) != 4 {
		t.Errorf("expected 4 top-level statements, got %d", len(unit.Stmts))
	}
	if last := unit.Tokens[len(unit.Tokens)-1]; last.Type != EOF {
		t.Errorf("last token = %v, want EOF", last)
	}
	if _, ok := unit.Symbols.LookupFunction("square"); !ok {
		t.Error("square missing from symbols")
	}
	if !strings.Contains(unit.Symbols.String(), "var  total") {
		t.Errorf("symbol dump missing total:\n%s", unit.Symbols)
	}
}

// TestCompileStopsAtFirstPhase verifies each phase's error type surfaces
// unchanged and nothing later runs.
func TestCompileStopsAtFirstPhase(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		target any
	}{
		{"Lexical", "int x = 4294967296;", new(*LexError)},
		{"Syntax", "int x = ;", new(*SyntaxError)},
		{"Semantic", "int x = true;", new(*SemanticError)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit, err := Compile("bad.sb", tt.input, quietOptions())
			if err == nil {
				t.Fatal("expected error")
			}
			if unit != nil {
				t.Error("expected no unit on failure")
			}
			if !errors.As(err, tt.target) {
				t.Errorf("error %T does not match %T", err, tt.target)
			}
		})
	}
}

func TestCompileOptions(t *testing.T) {
	deep := strings.Repeat("(", 40) + "1" + strings.Repeat(")", 40) + ";"

	opts := quietOptions()
	opts.MaxDepth = 10
	if _, err := Compile("deep.sb", deep, opts); err == nil || !strings.Contains(err.Error(), "nesting too deep (limit 10)") {
		t.Errorf("expected depth error, got %v", err)
	}

	opts.MaxDepth = 0
	if _, err := Compile("deep.sb", deep, opts); err != nil {
		t.Errorf("unexpected error with no depth limit: %v", err)
	}

	leak := "{ int t = 1; } t = 2;"
	opts = quietOptions()
	opts.LegacyScopeExit = true
	if _, err := Compile("leak.sb", leak, opts); err != nil {
		t.Errorf("legacy scope exit: unexpected error %v", err)
	}

	unchecked := "while (nope) { }"
	opts = quietOptions()
	opts.SkipControlFlow = true
	if _, err := Compile("loop.sb", unchecked, opts); err != nil {
		t.Errorf("skip control flow: unexpected error %v", err)
	}
}

func TestCompileLogging(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	opts := DefaultOptions()
	opts.Logger = logger

	if _, err := Compile("ok.sb", "int x = 1;", opts); err != nil {
		t.Fatal(err)
	}

	entries := hook.AllEntries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 log entries, got %d", len(entries))
	}
	phases := []string{"lex", "parse", "check"}
	for i, e := range entries {
		if e.Data["file"] != "ok.sb" {
			t.Errorf("entry %d: file = %v", i, e.Data["file"])
		}
		if e.Data["phase"] != phases[i] {
			t.Errorf("entry %d: phase = %v, want %s", i, e.Data["phase"], phases[i])
		}
	}
	if e := hook.LastEntry(); e.Level != logrus.InfoLevel || e.Message != "front end finished" {
		t.Errorf("last entry = %v %q", e.Level, e.Message)
	}
	if entries[0].Data["tokens"] != 6 {
		t.Errorf("tokens = %v, want 6", entries[0].Data["tokens"])
	}

	hook.Reset()
	if _, err := Compile("bad.sb", "int x = 1.0;", opts); err == nil {
		t.Fatal("expected error")
	}
	last := hook.LastEntry()
	if last == nil || last.Data["phase"] != "check" || last.Data[logrus.ErrorKey] == nil {
		t.Errorf("expected check failure entry, got %+v", last)
	}
}

func TestParseSource(t *testing.T) {
	stmts, err := ParseSource("x = 1; y = 2;")
	if err != nil {
		t.Fatal(err)
	}
	// parsing alone does not resolve names
	if len(stmts) != 2 {
		t.Errorf("got %d statements, want 2", len(stmts))
	}

	if _, err := ParseSource("int x = 99999999999;"); err == nil {
		t.Error("expected lex error to surface")
	}
}
