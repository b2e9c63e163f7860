// Command sbdump prints every stage of the sabaka front end for one file:
// the source, the token stream, the AST and the global symbol table.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pterm/pterm"

	"sabaka/pkg/compiler"
	"sabaka/pkg/report"
	"sabaka/pkg/source"
)

const sampleSource = `int x = 10;
int twice(int n) {
    return n * 2;
}
x = twice(x);
`

func main() {
	store := source.NewStore()
	name := "sample.sb"
	if len(os.Args) > 1 {
		f, err := store.Load(os.Args[1])
		if err != nil {
			report.Failure(os.Stderr, "Load Error", err)
			os.Exit(1)
		}
		name = f.Name
	} else {
		store.Add(name, sampleSource)
	}

	f, _ := store.Get(name)
	if err := dump(os.Stdout, name, f.Text); err != nil {
		fmt.Fprint(os.Stderr, report.Format(name, f.Text, err))
		os.Exit(1)
	}
}

// dump writes each stage to w and stops at the first failing one.
func dump(w io.Writer, name, src string) error {
	fmt.Fprintf(w, "Source:\n%s\n", src)

	tokens, err := compiler.Lex(src)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Tokens (%d)\n", len(tokens))
	table, err := tokenTable(tokens)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, table)

	stmts, err := compiler.Parse(tokens, src)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "AST")
	for _, s := range stmts {
		fmt.Fprintln(w, " ", s)
	}
	fmt.Fprintln(w)

	c := compiler.NewChecker(compiler.DefaultOptions())
	if err := c.Check(stmts); err != nil {
		return err
	}
	fmt.Fprint(w, c.Symbols())
	return nil
}

func tokenTable(tokens []compiler.Token) (string, error) {
	data := pterm.TableData{{"#", "Pos", "Type", "Lexeme", "Value"}}
	for i, tok := range tokens {
		value := ""
		if tok.Literal.Kind != compiler.NoValue {
			value = tok.Literal.String()
		}
		data = append(data, []string{
			strconv.Itoa(i), tok.Pos().String(), tok.Type.String(), tok.Lexeme, value,
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}
