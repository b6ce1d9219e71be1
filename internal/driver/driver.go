// Package driver runs the MiniC front end over source files.
//
// A compilation is a fixed sequence of phases: scan, parse, resolve and
// check. Each phase stops the pipeline on its first error, so a Unit holds
// at most one error diagnostic (plus any notes attached to it).
package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/you-not-fish/minic/internal/diag"
	"github.com/you-not-fish/minic/internal/resolve"
	"github.com/you-not-fish/minic/internal/syntax"
	"github.com/you-not-fish/minic/internal/types2"
)

// Stage identifies a phase of the pipeline.
type Stage int

const (
	Scan Stage = iota + 1
	Parse
	Resolve
	Check
	Done // every phase succeeded
)

var stageNames = [...]string{
	Scan:    "scan",
	Parse:   "parse",
	Resolve: "resolve",
	Check:   "check",
	Done:    "done",
}

func (s Stage) String() string {
	if s > 0 && int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// Options configures a compilation.
type Options struct {
	// Sink additionally receives every diagnostic as it is produced.
	// It must be safe for concurrent use when passed to CompileFiles.
	Sink diag.Sink

	// Logger receives phase trace records at Debug level. Nil disables
	// tracing.
	Logger *slog.Logger

	// Workers bounds CompileFiles concurrency. Zero or less means no
	// limit.
	Workers int

	// Debounce is the quiet period Watch waits after a change.
	Debounce time.Duration

	// StopAfter ends the pipeline early once the given stage has run.
	// The zero value runs every phase.
	StopAfter Stage
}

func (o *Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}

// A Unit is the result of compiling one file.
type Unit struct {
	Filename string
	Tokens   []syntax.Token
	File     *syntax.File // nil if scanning or parsing failed
	Info     *types2.Info // populated by the check phase
	Diags    []*diag.Diagnostic

	// Stage is the phase that failed, or Done.
	Stage Stage

	// Err is the first error diagnostic, or a context error if the
	// compilation was cancelled.
	Err error
}

// OK reports whether every phase succeeded.
func (u *Unit) OK() bool { return u.Err == nil && u.Stage == Done }

// phase is a single step of the pipeline.
type phase struct {
	stage Stage
	run   func(u *Unit, src []byte, sink diag.Sink) error
}

var pipeline = []phase{
	{Scan, scan},
	{Parse, parse},
	{Resolve, resolveNames},
	{Check, check},
}

// Compile runs the pipeline over src. Diagnostics are collected in the
// returned Unit and also forwarded to opts.Sink.
func Compile(ctx context.Context, filename string, src []byte, opts Options) *Unit {
	log := opts.logger()
	u := &Unit{Filename: filename}

	var list diag.List
	sink := diag.Tee(&list, opts.Sink)
	defer func() { u.Diags = list.Items() }()

	for _, p := range pipeline {
		if err := ctx.Err(); err != nil {
			u.Stage, u.Err = p.stage, err
			return u
		}

		start := time.Now()
		err := p.run(u, src, sink)
		log.Debug("phase",
			"file", filename,
			"phase", p.stage.String(),
			"duration", time.Since(start),
			"ok", err == nil)
		if err != nil {
			u.Stage, u.Err = p.stage, err
			return u
		}
		if p.stage == opts.StopAfter {
			break
		}
	}
	u.Stage = Done
	return u
}

// CompileFile reads filename and compiles it. Only I/O failures are
// returned as errors.
func CompileFile(ctx context.Context, filename string, opts Options) (*Unit, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return Compile(ctx, filename, src, opts), nil
}

func scan(u *Unit, src []byte, sink diag.Sink) error {
	var first *diag.Diagnostic
	u.Tokens = syntax.Tokenize(u.Filename, bytes.NewReader(src), func(pos syntax.Pos, msg string) {
		if first == nil {
			first = diag.Errorf(diag.Syntax, pos, "%s", msg)
		}
	})
	if first != nil {
		sink.Report(first)
		return first
	}
	return nil
}

func parse(u *Unit, _ []byte, sink diag.Sink) error {
	file, err := syntax.NewParser(u.Filename, u.Tokens, nil).Parse()
	if err != nil {
		var serr *syntax.SyntaxError
		if !errors.As(err, &serr) {
			return err
		}
		d := diag.FromSyntax(serr)
		sink.Report(d)
		return d
	}
	u.File = file
	return nil
}

func resolveNames(u *Unit, _ []byte, sink diag.Sink) error {
	return resolve.Resolve(u.File, &resolve.Config{Sink: sink})
}

func check(u *Unit, _ []byte, sink diag.Sink) error {
	u.Info = &types2.Info{}
	return types2.Check(u.File, &types2.Config{Sink: sink}, u.Info)
}
