package main

import (
	"github.com/spf13/cobra"

	"github.com/you-not-fish/minic/internal/driver"
	"github.com/you-not-fish/minic/internal/syntax"
)

func (a *app) astCmd() *cobra.Command {
	var asJSON, typed bool

	cmd := &cobra.Command{
		Use:   "ast <file.mc>",
		Short: "Print the syntax tree of a file",
		Long: `Print the syntax tree of a file.

With --typed the file is also resolved and type-checked, and every
expression is annotated with its type. The tree is printed only if
every requested phase succeeds.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.options()
			if !typed {
				opts.StopAfter = driver.Parse
			}
			u, err := driver.CompileFile(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			if !a.report(a.printer(), u) {
				return errFailed
			}

			var typeOf func(syntax.ExprID) string
			if typed {
				typeOf = func(id syntax.ExprID) string {
					if t := u.Info.TypeOf(id); t != nil {
						return t.String()
					}
					return ""
				}
			}
			if asJSON {
				return syntax.FprintJSON(a.stdout, u.File, typeOf)
			}
			syntax.FprintTyped(a.stdout, u.File, typeOf)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the tree as JSON")
	cmd.Flags().BoolVar(&typed, "typed", false, "annotate expressions with their types")
	return cmd
}
