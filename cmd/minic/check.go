package main

import (
	"github.com/spf13/cobra"

	"github.com/you-not-fish/minic/internal/driver"
)

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file.mc>...",
		Short: "Parse, resolve and type-check files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			units, err := driver.CompileFiles(cmd.Context(), args, a.options())
			if err != nil {
				return err
			}
			p := a.printer()
			ok := true
			for _, u := range units {
				if !a.report(p, u) {
					ok = false
				}
			}
			if !ok {
				return errFailed
			}
			return nil
		},
	}
}
