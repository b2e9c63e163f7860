package compiler

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF TokenType = iota // sentinel: end of input

	// Literals
	IDENTIFIER // variable / function name
	INT_LIT    // decimal integer literal
	FLOAT_LIT  // decimal literal with a fractional part, e.g. 1.5
	STRING_LIT // string literal "..."

	// Declaration keywords
	CONST  // "const"
	RETURN // "return"
	CLASS  // "class"
	STRUCT // "struct"
	ENUM   // "enum"

	// Flow control keywords
	IF       // "if"
	ELSE     // "else"
	SWITCH   // "switch"
	CASE     // "case"
	DEFAULT  // "default"
	WHILE    // "while"
	FOR      // "for"
	BREAK    // "break"
	CONTINUE // "continue"

	// Object keywords
	THIS  // "this"
	SUPER // "super"
	NEW   // "new"

	// Access modifiers
	PUBLIC    // "public"
	PRIVATE   // "private"
	PROTECTED // "protected"
	STATIC    // "static"

	// Literal keywords
	TRUE  // "true"
	FALSE // "false"
	NULL  // "null"

	// Built-in I/O, tokenized only
	PRINT // "print"
	INPUT // "input"

	// Type keywords
	INT    // "int"
	FLOAT  // "float"
	BOOL   // "bool"
	STRING // "string"
	VOID   // "void"

	// Arithmetic operators
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %

	// Assignment
	ASSIGN         // =
	PLUS_ASSIGN    // +=
	MINUS_ASSIGN   // -=
	STAR_ASSIGN    // *=
	SLASH_ASSIGN   // /=
	PERCENT_ASSIGN // %=

	// Comparison
	EQUALS     // ==
	NOT_EQ     // !=
	GREATER    // >
	GREATER_EQ // >=
	LESS       // <
	LESS_EQ    // <=

	// Logical
	NOT         // !
	AND_LOGICAL // &&
	OR_LOGICAL  // ||

	// Bitwise
	AND    // &
	PIPE   // |
	CARET  // ^
	TILDE  // ~
	SHL_OP // <<
	SHR_OP // >>

	PLUS_PLUS   // ++
	MINUS_MINUS // --

	ARROW     // ->
	FAT_ARROW // =>

	// Paired delimiters
	LPAREN   // (
	RPAREN   // )
	LBRACE   // {
	RBRACE   // }
	LBRACKET // [
	RBRACKET // ]

	// Punctuation
	COMMA        // ,
	DOT          // .
	SEMICOLON    // ;
	COLON        // :
	DOUBLE_COLON // ::
	QUESTION     // ?
)

// tokenNames is indexed by TokenType.
var tokenNames = [...]string{
	EOF:            "EOF",
	IDENTIFIER:     "IDENTIFIER",
	INT_LIT:        "INT_LIT",
	FLOAT_LIT:      "FLOAT_LIT",
	STRING_LIT:     "STRING_LIT",
	CONST:          "CONST",
	RETURN:         "RETURN",
	CLASS:          "CLASS",
	STRUCT:         "STRUCT",
	ENUM:           "ENUM",
	IF:             "IF",
	ELSE:           "ELSE",
	SWITCH:         "SWITCH",
	CASE:           "CASE",
	DEFAULT:        "DEFAULT",
	WHILE:          "WHILE",
	FOR:            "FOR",
	BREAK:          "BREAK",
	CONTINUE:       "CONTINUE",
	THIS:           "THIS",
	SUPER:          "SUPER",
	NEW:            "NEW",
	PUBLIC:         "PUBLIC",
	PRIVATE:        "PRIVATE",
	PROTECTED:      "PROTECTED",
	STATIC:         "STATIC",
	TRUE:           "TRUE",
	FALSE:          "FALSE",
	NULL:           "NULL",
	PRINT:          "PRINT",
	INPUT:          "INPUT",
	INT:            "INT",
	FLOAT:          "FLOAT",
	BOOL:           "BOOL",
	STRING:         "STRING",
	VOID:           "VOID",
	PLUS:           "PLUS",
	MINUS:          "MINUS",
	STAR:           "STAR",
	SLASH:          "SLASH",
	PERCENT:        "PERCENT",
	ASSIGN:         "ASSIGN",
	PLUS_ASSIGN:    "PLUS_ASSIGN",
	MINUS_ASSIGN:   "MINUS_ASSIGN",
	STAR_ASSIGN:    "STAR_ASSIGN",
	SLASH_ASSIGN:   "SLASH_ASSIGN",
	PERCENT_ASSIGN: "PERCENT_ASSIGN",
	EQUALS:         "EQUALS",
	NOT_EQ:         "NOT_EQ",
	GREATER:        "GREATER",
	GREATER_EQ:     "GREATER_EQ",
	LESS:           "LESS",
	LESS_EQ:        "LESS_EQ",
	NOT:            "NOT",
	AND_LOGICAL:    "AND_LOGICAL",
	OR_LOGICAL:     "OR_LOGICAL",
	AND:            "AND",
	PIPE:           "PIPE",
	CARET:          "CARET",
	TILDE:          "TILDE",
	SHL_OP:         "SHL_OP",
	SHR_OP:         "SHR_OP",
	PLUS_PLUS:      "PLUS_PLUS",
	MINUS_MINUS:    "MINUS_MINUS",
	ARROW:          "ARROW",
	FAT_ARROW:      "FAT_ARROW",
	LPAREN:         "LPAREN",
	RPAREN:         "RPAREN",
	LBRACE:         "LBRACE",
	RBRACE:         "RBRACE",
	LBRACKET:       "LBRACKET",
	RBRACKET:       "RBRACKET",
	COMMA:          "COMMA",
	DOT:            "DOT",
	SEMICOLON:      "SEMICOLON",
	COLON:          "COLON",
	DOUBLE_COLON:   "DOUBLE_COLON",
	QUESTION:       "QUESTION",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// IsTypeKeyword reports whether tt names one of the builtin types.
func (tt TokenType) IsTypeKeyword() bool {
	switch tt {
	case INT, FLOAT, BOOL, STRING, VOID:
		return true
	}
	return false
}

// ValueKind tags the payload carried by a Value.
type ValueKind int

const (
	NoValue ValueKind = iota
	IntValue
	FloatValue
	StringValue
	BoolValue
	NullValue
)

// Value is a literal payload. Only the field selected by Kind is meaningful.
type Value struct {
	Kind  ValueKind
	Int   int64
	Float float64
	Str   string
	Bool  bool
}

func (v Value) String() string {
	switch v.Kind {
	case IntValue:
		return fmt.Sprintf("%d", v.Int)
	case FloatValue:
		return fmt.Sprintf("%g", v.Float)
	case StringValue:
		return fmt.Sprintf("%q", v.Str)
	case BoolValue:
		return fmt.Sprintf("%t", v.Bool)
	case NullValue:
		return "null"
	}
	return "<none>"
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Type    TokenType
	Literal Value  // payload for INT_LIT, FLOAT_LIT and STRING_LIT
	Lexeme  string // the exact source text that was matched
	Line    int    // 1-based line of the first rune
	Column  int    // 1-based column of the first rune
	Start   int    // rune offset of the first rune
	End     int    // rune offset one past the last rune
}

// Pos returns the position of the token's first rune.
func (t Token) Pos() Position {
	return Position{Line: t.Line, Column: t.Column}
}

func (t Token) String() string {
	if t.Literal.Kind != NoValue {
		return fmt.Sprintf("%-12s %-14q  %d:%d  (%s)", t.Type, t.Lexeme, t.Line, t.Column, t.Literal)
	}
	return fmt.Sprintf("%-12s %-14q  %d:%d", t.Type, t.Lexeme, t.Line, t.Column)
}
