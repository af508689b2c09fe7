package rules

import (
	"sort"
	"strings"

	"addinlint/internal/diag"
	"addinlint/internal/symbol"
)

// ProgramAnalyzer runs the end-of-program phase: cardinality rules that only
// make sense once every declaration has been visited. Run must be called
// after the per-declaration fan-out has joined, so the registry is complete.
type ProgramAnalyzer struct {
	prog     *symbol.Program
	registry *InterfaceRegistry
}

func NewProgramAnalyzer(prog *symbol.Program, registry *InterfaceRegistry) *ProgramAnalyzer {
	return &ProgramAnalyzer{prog: prog, registry: registry}
}

func (a *ProgramAnalyzer) Run(r diag.Reporter) {
	entries := a.registry.Entries()
	sort.Slice(entries, func(i, j int) bool {
		return a.declLess(entries[i].Decl, entries[j].Decl)
	})

	switch len(entries) {
	case 0:
		a.reportNoInterface(r)
	case 1:
		a.checkImplementations(entries[0], r)
	default:
		a.reportManyInterfaces(entries, r)
	}

	a.checkDuplicateStructures(r)
}

// reportNoInterface anchors the violation at the earliest interface in the
// program. A program with no interfaces at all has nothing to decorate, so
// the rule stays silent there.
func (a *ProgramAnalyzer) reportNoInterface(r diag.Reporter) {
	target := a.earliest(a.prog.Interfaces())
	if target == nil {
		return
	}
	sp := anchor(target.NameSpan, target.Span)
	if sp.Zero() {
		return
	}
	diag.Report(r, diag.ProgNoInterface, sp,
		"no interface is decorated as the add-in interface").Emit()
}

func (a *ProgramAnalyzer) checkImplementations(entry InterfaceEntry, r diag.Reporter) {
	sp := anchor(entry.Decl.NameSpan, entry.Decl.Span)
	if sp.Zero() {
		return
	}

	impls := a.prog.ClassesImplementing(entry.Name)
	switch {
	case len(impls) == 0:
		diag.Report(r, diag.ProgMissingImpl, sp,
			"interface '"+entry.Name+"' has no implementation").Emit()
	case len(impls) > 1:
		names := make([]string, len(impls))
		for i, d := range impls {
			names[i] = d.Name
		}
		sort.Strings(names)
		diag.Report(r, diag.ProgManyImpl, sp,
			"interface '"+entry.Name+"' has multiple implementations: "+strings.Join(names, ", ")).Emit()
	}
}

// reportManyInterfaces emits one violation per marked interface so every
// offending site is visible; each message lists the full sorted set.
func (a *ProgramAnalyzer) reportManyInterfaces(entries []InterfaceEntry, r diag.Reporter) {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	sort.Strings(names)
	all := strings.Join(names, ", ")

	for _, e := range entries {
		sp := anchor(e.Decl.NameSpan, e.Decl.Span)
		if sp.Zero() {
			continue
		}
		diag.Report(r, diag.ProgManyInterfaces, sp,
			"multiple interfaces are decorated as the add-in interface: "+all).Emit()
	}
}

// checkDuplicateStructures flags marked structures sharing a simple name.
// The simple name is the structure's external identity, so two marked
// structures with the same name collide even across namespaces.
func (a *ProgramAnalyzer) checkDuplicateStructures(r diag.Reporter) {
	groups := make(map[string][]*symbol.Decl)
	var order []string
	for _, d := range a.prog.Decls {
		if d.Kind != symbol.DeclStruct || !d.Annotations.Has(symbol.AnnStructMarker) {
			continue
		}
		if _, ok := groups[d.Name]; !ok {
			order = append(order, d.Name)
		}
		groups[d.Name] = append(groups[d.Name], d)
	}

	for _, name := range order {
		decls := groups[name]
		if len(decls) < 2 {
			continue
		}
		for _, d := range decls {
			sp := anchor(d.NameSpan, d.Span)
			if sp.Zero() {
				continue
			}
			diag.Report(r, diag.ProgDuplicateName, sp,
				"structure name '"+name+"' is declared more than once").Emit()
		}
	}
}

// earliest picks the declaration with the lowest (file, line, col) position.
func (a *ProgramAnalyzer) earliest(decls []*symbol.Decl) *symbol.Decl {
	var best *symbol.Decl
	for _, d := range decls {
		if d.Span.Zero() {
			continue
		}
		if best == nil || a.declLess(d, best) {
			best = d
		}
	}
	return best
}

func (a *ProgramAnalyzer) declLess(x, y *symbol.Decl) bool {
	if x.Span.File != y.Span.File {
		return x.Span.File < y.Span.File
	}
	px, py := a.prog.Position(x.Span), a.prog.Position(y.Span)
	if px.Line != py.Line {
		return px.Line < py.Line
	}
	if px.Col != py.Col {
		return px.Col < py.Col
	}
	return x.Name < y.Name
}
