package main

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/minic/internal/config"
	"github.com/you-not-fish/minic/internal/diag"
	"github.com/you-not-fish/minic/internal/driver"
)

// errFailed is returned by commands whose input had diagnostics.
var errFailed = errors.New("compilation failed")

// app holds the state shared by all subcommands.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	color      string
	trace      bool
	workers    int

	cfg *config.Config
	log *slog.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "minic",
		Short: "MiniC front end: parse, resolve and type-check MiniC programs",
		Long: `minic runs the MiniC front end over source files.

Commands:
  check    Report the first error of each file
  tokens   Print the token stream of a file
  ast      Print the syntax tree of a file
  watch    Re-check files whenever they change
  version  Print version information
`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "project file (default ./"+config.FileName+" if present)")
	pf.StringVar(&a.color, "color", "", "colour diagnostics: auto, always or never")
	pf.BoolVar(&a.trace, "trace", false, "trace compiler phases on stderr")
	pf.IntVar(&a.workers, "workers", 0, "files checked in parallel (0: no limit)")

	root.SetOut(stdout)
	root.SetErr(stderr)
	root.AddCommand(
		a.checkCmd(),
		a.tokensCmd(),
		a.astCmd(),
		a.watchCmd(),
		versionCmd(),
	)
	return root
}

// setup loads the project file and applies flag overrides.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("color") {
		cfg.Color = a.color
	}
	if flags.Changed("trace") {
		cfg.Trace = a.trace
	}
	if flags.Changed("workers") {
		cfg.Workers = a.workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	level := slog.LevelWarn
	if cfg.Trace {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

func (a *app) options() driver.Options {
	return driver.Options{
		Logger:   a.log,
		Workers:  a.cfg.Workers,
		Debounce: a.cfg.Debounce(),
	}
}

// printer returns a diagnostics printer for stderr.
func (a *app) printer() *diag.Printer {
	f, _ := a.stderr.(*os.File)
	return diag.NewPrinter(a.stderr, a.cfg.ColorMode().Enabled(f))
}

// report prints the diagnostics of u and reports whether it compiled.
func (a *app) report(p *diag.Printer, u *driver.Unit) bool {
	for _, d := range u.Diags {
		p.Report(d)
	}
	if u.Err != nil && len(u.Diags) == 0 {
		// Cancellation carries no diagnostic.
		a.log.Warn("compilation stopped", "file", u.Filename, "stage", u.Stage.String(), "err", u.Err)
	}
	return u.OK()
}
