package compiler

import (
	"time"

	"github.com/labstack/gommon/bytes"
	"github.com/sirupsen/logrus"
)

// Options tunes a pipeline run. The zero value is not the default; use
// DefaultOptions.
type Options struct {
	// MaxDepth bounds parser nesting; 0 disables the limit.
	MaxDepth int

	// LegacyScopeExit keeps exited block scopes visible, as early versions
	// of the checker did.
	LegacyScopeExit bool

	// SkipControlFlow leaves if/while conditions and bodies unchecked, as
	// early versions of the checker did.
	SkipControlFlow bool

	// Logger receives one entry per phase. Nil means the logrus standard logger.
	Logger logrus.FieldLogger
}

func DefaultOptions() Options {
	return Options{MaxDepth: DefaultMaxDepth}
}

// Unit is the output of a successful pipeline run.
type Unit struct {
	Name    string
	Tokens  []Token
	Stmts   []Stmt
	Symbols *SymbolTable
}

// ParseSource lexes and parses src without type checking.
func ParseSource(src string) ([]Stmt, error) {
	tokens, err := Lex(src)
	if err != nil {
		return nil, err
	}
	return Parse(tokens, src)
}

// Compile runs Lex, Parse and Check over src, stopping at the first error.
// name only labels log entries.
func Compile(name, src string, opts Options) (*Unit, error) {
	var log logrus.FieldLogger = logrus.StandardLogger()
	if opts.Logger != nil {
		log = opts.Logger
	}
	log = log.WithField("file", name)
	start := time.Now()

	tokens, err := Lex(src)
	if err != nil {
		log.WithField("phase", "lex").WithError(err).Debug("lexing failed")
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"phase":  "lex",
		"size":   bytes.Format(int64(len(src))),
		"tokens": len(tokens),
	}).Debug("lexed source")

	p := NewParser(tokens, src)
	p.maxDepth = opts.MaxDepth
	stmts, err := p.parseProgram()
	if err != nil {
		log.WithField("phase", "parse").WithError(err).Debug("parsing failed")
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"phase":      "parse",
		"statements": len(stmts),
	}).Debug("parsed tokens")

	c := NewChecker(opts)
	if err := c.Check(stmts); err != nil {
		log.WithField("phase", "check").WithError(err).Debug("type check failed")
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"phase":   "check",
		"elapsed": time.Since(start),
	}).Info("front end finished")

	return &Unit{Name: name, Tokens: tokens, Stmts: stmts, Symbols: c.Symbols()}, nil
}
