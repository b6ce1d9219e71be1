package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/minic/internal/driver"
)

func (a *app) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <file.mc>...",
		Short: "Re-check files whenever they change",
		Long: `Check the files once, then check each file again every time it is
saved. Runs until interrupted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := a.printer()
			return driver.Watch(cmd.Context(), args, a.options(), func(u *driver.Unit) {
				if a.report(p, u) {
					fmt.Fprintf(a.stdout, "%s: ok\n", u.Filename)
				}
			})
		},
	}
}
