// Package report renders front-end failures for a terminal and builds the
// logger used by the command line tools.
package report

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"

	"sabaka/pkg/compiler"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = pterm.FgLightCyan
	InfoStyleBG    = pterm.NewStyle(pterm.BgLightCyan, pterm.FgBlack)
)

const maxBannerWidth = 50

// Kind names the pipeline stage that produced err.
func Kind(err error) string {
	var (
		lexErr *compiler.LexError
		synErr *compiler.SyntaxError
		semErr *compiler.SemanticError
	)
	switch {
	case errors.As(err, &lexErr):
		return "Lexical"
	case errors.As(err, &synErr):
		return "Syntax"
	case errors.As(err, &semErr):
		return "Type"
	}
	return "Load"
}

// location extracts the message, position and highlight width from a
// front-end error. ok is false for errors that carry no position.
func location(err error) (msg string, pos compiler.Position, width int, ok bool) {
	var (
		lexErr *compiler.LexError
		synErr *compiler.SyntaxError
		semErr *compiler.SemanticError
	)
	switch {
	case errors.As(err, &lexErr):
		return fmt.Sprintf("malformed numeric literal %q: %v", lexErr.Lexeme, lexErr.Err),
			lexErr.Pos, len([]rune(lexErr.Lexeme)), true
	case errors.As(err, &synErr):
		return synErr.Msg, synErr.Pos, 1, true
	case errors.As(err, &semErr):
		return semErr.Msg, semErr.Pos, 1, true
	}
	return err.Error(), compiler.Position{}, 0, false
}

// Format renders err as a banner naming the stage and file, the message, and
// the offending source line with carets under the reported column.
func Format(name, src string, err error) string {
	var sb strings.Builder
	kind := Kind(err) + " Error"
	msg, pos, width, ok := location(err)

	fileName := filepath.Base(name)
	bannerLen := pterm.GetTerminalWidth() / 2
	if bannerLen <= 0 || bannerLen > maxBannerWidth {
		bannerLen = maxBannerWidth
	}
	dashCount := bannerLen - len(fileName) - len(kind) - 5
	if dashCount < 3 {
		dashCount = 3
	}

	sb.WriteString("-- ")
	sb.WriteString(ErrorStyleBG.Sprint(kind))
	sb.WriteString(" " + strings.Repeat("-", dashCount) + " ")
	sb.WriteString(InfoColorFG.Sprint(fileName))
	sb.WriteString("\n")

	if ok && pos.Line > 0 {
		fmt.Fprintf(&sb, "line %d: %s\n", pos.Line, msg)
	} else {
		sb.WriteString(msg + "\n")
	}

	if !ok {
		return sb.String()
	}
	lines := strings.Split(src, "\n")
	if pos.Line < 1 || pos.Line > len(lines) {
		return sb.String()
	}
	writeSelection(&sb, strings.TrimSuffix(lines[pos.Line-1], "\r"), pos, width)
	return sb.String()
}

// writeSelection prints one numbered source line followed by a caret line.
// Tabs are expanded to four spaces on both lines so the carets stay aligned.
func writeSelection(sb *strings.Builder, line string, pos compiler.Position, width int) {
	numWidth := len(strconv.Itoa(pos.Line)) + 1
	numFmt := "%-" + strconv.Itoa(numWidth) + "v"

	sb.WriteString(InfoColorFG.Sprint(fmt.Sprintf(numFmt, pos.Line)))
	sb.WriteString("|  ")
	sb.WriteString(strings.ReplaceAll(line, "\t", "    "))
	sb.WriteString("\n")

	offset := 0
	for i, r := range []rune(line) {
		if i >= pos.Column-1 {
			break
		}
		if r == '\t' {
			offset += 4
		} else {
			offset++
		}
	}
	if width < 1 {
		width = 1
	}

	sb.WriteString(strings.Repeat(" ", numWidth) + "|  ")
	sb.WriteString(strings.Repeat(" ", offset))
	sb.WriteString(ErrorColorFG.Sprint(strings.Repeat("^", width)))
	sb.WriteString("\n")
}

// Failure prints a tagged error line.
func Failure(w io.Writer, tag string, err error) {
	fmt.Fprintln(w, ErrorStyleBG.Sprint(tag)+ErrorColorFG.Sprint(" "+err.Error()))
}

// Success prints a tagged success line.
func Success(w io.Writer, tag, msg string) {
	fmt.Fprintln(w, SuccessStyleBG.Sprint(tag)+SuccessColorFG.Sprint(" "+msg))
}

// Info prints a tagged informational line.
func Info(w io.Writer, tag, msg string) {
	fmt.Fprintln(w, InfoStyleBG.Sprint(tag)+InfoColorFG.Sprint(" "+msg))
}

// NewLogger builds a text logger writing to out at the given level.
func NewLogger(level logrus.Level, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	})
	return logger
}
