package compiler

import "fmt"

// Position is a 1-based line/column pair in the source text.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }

// LexError is returned when a numeric literal cannot be converted to its value.
// Every other lexical anomaly is silently skipped.
type LexError struct {
	Pos    Position
	Lexeme string
	Err    error
}

func (e *LexError) Error() string {
	return fmt.Sprintf("line %d: malformed numeric literal %q: %v", e.Pos.Line, e.Lexeme, e.Err)
}

func (e *LexError) Unwrap() error { return e.Err }

// SyntaxError stops parsing at the first malformed construct.
type SyntaxError struct {
	Pos     Position
	Msg     string
	Snippet string // trimmed source line containing Pos, if available
}

func (e *SyntaxError) Error() string {
	if e.Snippet == "" {
		return fmt.Sprintf("line %d: %s", e.Pos.Line, e.Msg)
	}
	return fmt.Sprintf("line %d: %s\n  |> %s", e.Pos.Line, e.Msg, e.Snippet)
}

// SemanticErrorKind classifies a SemanticError.
type SemanticErrorKind int

const (
	UnknownType SemanticErrorKind = iota
	Redeclared
	UndefinedVariable
	UndefinedFunction
	InvalidCallTarget
	TypeMismatch
	ArgumentCount
	ArgumentType
	ReturnMismatch
)

var semanticKindNames = [...]string{
	UnknownType:       "unknown type",
	Redeclared:        "redeclared",
	UndefinedVariable: "undefined variable",
	UndefinedFunction: "undefined function",
	InvalidCallTarget: "invalid call target",
	TypeMismatch:      "type mismatch",
	ArgumentCount:     "argument count mismatch",
	ArgumentType:      "argument type mismatch",
	ReturnMismatch:    "return type mismatch",
}

func (k SemanticErrorKind) String() string {
	if int(k) >= 0 && int(k) < len(semanticKindNames) {
		return semanticKindNames[k]
	}
	return fmt.Sprintf("SemanticErrorKind(%d)", int(k))
}

// SemanticError stops type checking at the first violation.
type SemanticError struct {
	Pos  Position
	Kind SemanticErrorKind
	Msg  string
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Pos.Line, e.Msg)
}

func semanticErr(pos Position, kind SemanticErrorKind, format string, args ...any) error {
	return &SemanticError{Pos: pos, Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
