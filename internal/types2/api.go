package types2

import (
	"github.com/you-not-fish/minic/internal/diag"
	"github.com/you-not-fish/minic/internal/syntax"
	"github.com/you-not-fish/minic/internal/types"
)

// Config specifies the configuration for type checking.
type Config struct {
	// Sink receives the diagnostic of the first type error.
	// If nil, diagnostics are dropped.
	Sink diag.Sink
}

// Info holds the results of type checking. The slices are indexed by
// syntax.ExprID and sized to the file's expression arena.
type Info struct {
	// Types records the type of every checked expression.
	// Expressions that were not reached hold nil.
	Types []types.Type

	// Addressable records whether an expression denotes a location:
	// a variable or parameter, *p, p->f, a[i], or s.f with s addressable.
	Addressable []bool

	// Defs maps declarations to their types. Variables map to their
	// declared type, functions to a *types.Func, typedefs to the aliased
	// type and structs to a *types.Named.
	Defs map[syntax.DeclID]types.Type
}

// TypeOf returns the type of expression id, or nil if it was not checked.
func (info *Info) TypeOf(id syntax.ExprID) types.Type {
	if id < 0 || int(id) >= len(info.Types) {
		return nil
	}
	return info.Types[id]
}

// IsAddressable reports whether expression id denotes a location.
func (info *Info) IsAddressable(id syntax.ExprID) bool {
	return id >= 0 && int(id) < len(info.Addressable) && info.Addressable[id]
}

// Check type-checks a name-resolved file. It stops at the first error,
// reports it to conf.Sink and returns it as a *diag.Diagnostic.
//
// Check may be run again on the same file; the previous contents of info
// and the HasReturn flags of the file's functions are recomputed.
func Check(file *syntax.File, conf *Config, info *Info) error {
	if conf == nil {
		conf = &Config{}
	}
	if info == nil {
		info = new(Info)
	}
	info.Types = make([]types.Type, file.NumExprs())
	info.Addressable = make([]bool, file.NumExprs())
	info.Defs = make(map[syntax.DeclID]types.Type)

	c := &Checker{
		conf:      conf,
		info:      info,
		file:      file,
		resolving: make(map[syntax.DeclID]bool),
	}

	c.checkFile()

	if c.first != nil {
		return c.first
	}
	return nil
}
