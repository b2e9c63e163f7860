// Package compiler provides the sabaka front end: a lexer, a parser and a
// type checker for a small statically typed C-like language.
//
// Pipeline: source → Lex → Parse → Check → validated AST
//
// Every stage stops at its first error. The lexer is deliberately lenient:
// unknown characters are dropped and unterminated strings or block comments
// run to the end of the input without complaint.
package compiler
