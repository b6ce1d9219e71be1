package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/minic/internal/driver"
	"github.com/you-not-fish/minic/internal/syntax"
)

func (a *app) tokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file.mc>",
		Short: "Print the token stream of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.options()
			opts.StopAfter = driver.Scan
			u, err := driver.CompileFile(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			printTokens(a.stdout, u.Tokens)
			if !a.report(a.printer(), u) {
				return errFailed
			}
			return nil
		},
	}
}

func printTokens(w io.Writer, toks []syntax.Token) {
	fmt.Fprintf(w, "%-20s %-12s %s\n", "POSITION", "TOKEN", "TEXT")
	fmt.Fprintf(w, "%-20s %-12s %s\n", strings.Repeat("-", 20), strings.Repeat("-", 12), strings.Repeat("-", 20))
	for _, tok := range toks {
		kind := tok.Kind.String()
		if tok.Kind == syntax.Literal {
			kind = tok.Lit.String()
		}
		text := ""
		switch tok.Kind {
		case syntax.Name, syntax.Literal, syntax.Error:
			text = formatText(tok.Text)
		}
		fmt.Fprintf(w, "%-20s %-12s %s\n", tok.Pos, kind, text)
	}
}

// formatText quotes s with control characters escaped.
func formatText(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case 0:
			b.WriteString(`\0`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
