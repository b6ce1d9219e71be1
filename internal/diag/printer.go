package diag

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// ColorMode selects when the Printer uses ANSI colour.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates s. The empty string means auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(s); m {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	}
	return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
}

// Enabled reports whether output to f should be coloured.
func (m ColorMode) Enabled(f *os.File) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	return f != nil && os.Getenv("NO_COLOR") == "" && IsTerminal(f.Fd())
}

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
)

// Printer is a Sink that writes one line per diagnostic.
type Printer struct {
	mu    sync.Mutex
	w     io.Writer
	color bool
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer, color bool) *Printer {
	return &Printer{w: w, color: color}
}

func (p *Printer) Report(d *Diagnostic) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.color {
		fmt.Fprintln(p.w, d.Error())
		return
	}

	var c string
	switch d.Severity {
	case Error:
		c = ansiRed
	case Warning:
		c = ansiYellow
	default:
		c = ansiCyan
	}
	fmt.Fprintf(p.w, "%s%s:%s %s%s:%s %s\n",
		ansiBold, d.Pos, ansiReset,
		c, d.label(), ansiReset,
		d.Msg)
}
