package rules

import (
	"fmt"

	"addinlint/internal/diag"
	"addinlint/internal/interop"
	"addinlint/internal/source"
	"addinlint/internal/symbol"
)

// Checker runs the per-declaration phase of the rule engine. It is read-only
// over the program and safe to call from multiple goroutines; the only shared
// mutable state is the InterfaceRegistry, which synchronizes internally.
type Checker struct {
	prog     *symbol.Program
	oracle   *interop.Oracle
	registry *InterfaceRegistry
}

func NewChecker(prog *symbol.Program, registry *InterfaceRegistry) *Checker {
	return &Checker{
		prog:     prog,
		oracle:   interop.NewOracle(prog),
		registry: registry,
	}
}

// CheckDecl dispatches one declaration to the analyzer matching its kind.
func (c *Checker) CheckDecl(d *symbol.Decl, r diag.Reporter) {
	switch d.Kind {
	case symbol.DeclStruct:
		c.checkStruct(d, r)
	case symbol.DeclInterface:
		c.checkInterface(d, r)
		c.checkMethods(d, r)
	case symbol.DeclClass:
		c.checkClass(d, r)
		c.checkMethods(d, r)
	}
}

// report emits one violation at the rule's default severity. A zero span
// means the host could not resolve a location; the check is skipped silently
// rather than aborting the pass.
func (c *Checker) report(r diag.Reporter, code diag.Code, span source.Span, format string, args ...any) *diag.ReportBuilder {
	if span.Zero() {
		return nil
	}
	return diag.Report(r, code, span, fmt.Sprintf(format, args...))
}

// anchor picks the span a declaration's diagnostics attach to.
func anchor(nameSpan, declSpan source.Span) source.Span {
	if !nameSpan.Zero() {
		return nameSpan
	}
	return declSpan
}
