package compiler

import (
	"strconv"
	"strings"
	"unicode"
)

// keywords maps source text to its keyword TokenType.
var keywords = map[string]TokenType{
	"const":     CONST,
	"return":    RETURN,
	"class":     CLASS,
	"struct":    STRUCT,
	"enum":      ENUM,
	"if":        IF,
	"else":      ELSE,
	"switch":    SWITCH,
	"case":      CASE,
	"default":   DEFAULT,
	"while":     WHILE,
	"for":       FOR,
	"break":     BREAK,
	"continue":  CONTINUE,
	"this":      THIS,
	"super":     SUPER,
	"new":       NEW,
	"public":    PUBLIC,
	"private":   PRIVATE,
	"protected": PROTECTED,
	"static":    STATIC,
	"true":      TRUE,
	"false":     FALSE,
	"null":      NULL,
	"print":     PRINT,
	"input":     INPUT,
	"int":       INT,
	"float":     FLOAT,
	"bool":      BOOL,
	"string":    STRING,
	"void":      VOID,
}

// Lexer holds all mutable state for a single scanning pass over src.
type Lexer struct {
	src    []rune
	pos    int // index of the next rune to consume
	line   int // current 1-based source line
	column int // current 1-based source column

	tokens []Token
}

func newLexer(src string) *Lexer {
	return &Lexer{src: []rune(src), line: 1, column: 1}
}

func (l *Lexer) atEnd() bool { return l.pos >= len(l.src) }

// peek returns the rune at the current position without advancing.
func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

// peek2 returns the rune one position ahead of the current position.
func (l *Lexer) peek2() rune {
	if l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

// advance consumes one rune and returns it.
func (l *Lexer) advance() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

// match consumes the current rune if it equals want.
func (l *Lexer) match(want rune) bool {
	if l.atEnd() || l.peek() != want {
		return false
	}
	l.advance()
	return true
}

// mark captures the position of the token about to be scanned.
type mark struct {
	pos, line, column int
}

func (l *Lexer) mark() mark { return mark{l.pos, l.line, l.column} }

func (l *Lexer) emit(m mark, tt TokenType, lit Value) {
	l.tokens = append(l.tokens, Token{
		Type:    tt,
		Literal: lit,
		Lexeme:  string(l.src[m.pos:l.pos]),
		Line:    m.line,
		Column:  m.column,
		Start:   m.pos,
		End:     l.pos,
	})
}

// skipTrivia discards whitespace and both comment styles. An unterminated
// block comment runs to the end of the input.
func (l *Lexer) skipTrivia() {
	for !l.atEnd() {
		switch {
		case unicode.IsSpace(l.peek()):
			l.advance()
		case l.peek() == '/' && l.peek2() == '/':
			for !l.atEnd() && l.peek() != '\n' {
				l.advance()
			}
		case l.peek() == '/' && l.peek2() == '*':
			l.advance()
			l.advance()
			for !l.atEnd() && !(l.peek() == '*' && l.peek2() == '/') {
				l.advance()
			}
			if !l.atEnd() {
				l.advance() // *
				l.advance() // /
			}
		default:
			return
		}
	}
}

// scanIdent collects a full identifier or keyword token.
func (l *Lexer) scanIdent(m mark) {
	for !l.atEnd() {
		r := l.peek()
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}
		l.advance()
	}
	tt := IDENTIFIER
	if kw, ok := keywords[string(l.src[m.pos:l.pos])]; ok {
		tt = kw
	}
	l.emit(m, tt, Value{})
}

// scanNumber collects an integer or float literal. A '.' is only part of
// the literal when a digit follows it.
func (l *Lexer) scanNumber(m mark) error {
	for unicode.IsDigit(l.peek()) {
		l.advance()
	}

	isFloat := false
	if l.peek() == '.' && unicode.IsDigit(l.peek2()) {
		isFloat = true
		l.advance() // .
		for unicode.IsDigit(l.peek()) {
			l.advance()
		}
	}

	text := string(l.src[m.pos:l.pos])
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return &LexError{Pos: Position{m.line, m.column}, Lexeme: text, Err: err}
		}
		l.emit(m, FLOAT_LIT, Value{Kind: FloatValue, Float: f})
		return nil
	}

	n, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return &LexError{Pos: Position{m.line, m.column}, Lexeme: text, Err: err}
	}
	l.emit(m, INT_LIT, Value{Kind: IntValue, Int: n})
	return nil
}

// scanString collects a string literal. The opening quote has already been
// consumed. A string with no closing quote runs to the end of the input.
func (l *Lexer) scanString(m mark) {
	var sb strings.Builder
	for !l.atEnd() && l.peek() != '"' {
		r := l.advance()
		if r != '\\' {
			sb.WriteRune(r)
			continue
		}
		if l.atEnd() {
			break
		}
		switch next := l.advance(); next {
		case 'n':
			sb.WriteRune('\n')
		case 't':
			sb.WriteRune('\t')
		default:
			// \" and \\ map to themselves, as does any unknown escape
			sb.WriteRune(next)
		}
	}
	l.match('"')
	l.emit(m, STRING_LIT, Value{Kind: StringValue, Str: sb.String()})
}

// scanOperator handles operators and delimiters using maximal munch on the
// leading rune. Unrecognized runes produce no token.
func (l *Lexer) scanOperator(m mark) {
	pick := func(next rune, long, short TokenType) TokenType {
		if l.match(next) {
			return long
		}
		return short
	}

	var tt TokenType
	switch ch := l.advance(); ch {
	case '+':
		switch {
		case l.match('='):
			tt = PLUS_ASSIGN
		case l.match('+'):
			tt = PLUS_PLUS
		default:
			tt = PLUS
		}
	case '-':
		switch {
		case l.match('='):
			tt = MINUS_ASSIGN
		case l.match('-'):
			tt = MINUS_MINUS
		case l.match('>'):
			tt = ARROW
		default:
			tt = MINUS
		}
	case '*':
		tt = pick('=', STAR_ASSIGN, STAR)
	case '/':
		tt = pick('=', SLASH_ASSIGN, SLASH)
	case '%':
		tt = pick('=', PERCENT_ASSIGN, PERCENT)
	case '=':
		switch {
		case l.match('='):
			tt = EQUALS
		case l.match('>'):
			tt = FAT_ARROW
		default:
			tt = ASSIGN
		}
	case '!':
		tt = pick('=', NOT_EQ, NOT)
	case '>':
		switch {
		case l.match('='):
			tt = GREATER_EQ
		case l.match('>'):
			tt = SHR_OP
		default:
			tt = GREATER
		}
	case '<':
		switch {
		case l.match('='):
			tt = LESS_EQ
		case l.match('<'):
			tt = SHL_OP
		default:
			tt = LESS
		}
	case '&':
		tt = pick('&', AND_LOGICAL, AND)
	case '|':
		tt = pick('|', OR_LOGICAL, PIPE)
	case '^':
		tt = CARET
	case '~':
		tt = TILDE
	case '(':
		tt = LPAREN
	case ')':
		tt = RPAREN
	case '{':
		tt = LBRACE
	case '}':
		tt = RBRACE
	case '[':
		tt = LBRACKET
	case ']':
		tt = RBRACKET
	case ',':
		tt = COMMA
	case '.':
		tt = DOT
	case ';':
		tt = SEMICOLON
	case ':':
		tt = pick(':', DOUBLE_COLON, COLON)
	case '?':
		tt = QUESTION
	case '"':
		l.scanString(m)
		return
	default:
		return
	}
	l.emit(m, tt, Value{})
}

// Lex tokenises src and returns all tokens including the final EOF token.
// The only failure is a numeral that cannot be converted to its value.
func Lex(src string) ([]Token, error) {
	l := newLexer(src)
	for {
		l.skipTrivia()
		if l.atEnd() {
			break
		}

		m := l.mark()
		ch := l.peek()
		switch {
		case unicode.IsLetter(ch) || ch == '_':
			l.scanIdent(m)
		case unicode.IsDigit(ch):
			if err := l.scanNumber(m); err != nil {
				return l.tokens, err
			}
		default:
			l.scanOperator(m)
		}
	}
	l.emit(l.mark(), EOF, Value{})
	return l.tokens, nil
}
