package rules

import (
	"sort"
	"strings"

	"addinlint/internal/diag"
	"addinlint/internal/symbol"
)

// checkClass analyzes one class declaration. The class rules only apply to
// classes that implement a marked add-in interface; plain classes pass
// silently.
func (c *Checker) checkClass(d *symbol.Decl, r diag.Reporter) {
	if !c.implementsMarkedInterface(d) {
		return
	}

	declAnchor := anchor(d.NameSpan, d.Span)

	if d.Access != symbol.AccessPublic {
		c.report(r, diag.ClassImplNotPublic, declAnchor,
			"implementation class '%s' must be public", d.Name).Emit()
	}

	if !d.HasPublicDefaultCtor() {
		c.report(r, diag.ClassNoPublicCtor, declAnchor,
			"implementation class '%s' must have a public parameterless constructor", d.Name).Emit()
	}

	if statics := staticStateMembers(d); len(statics) > 0 {
		c.report(r, diag.ClassStaticState, declAnchor,
			"implementation class '%s' declares static state: %s",
			d.Name, strings.Join(statics, ", ")).Emit()
	}
}

// implementsMarkedInterface reads the interface declarations straight from
// the program rather than the registry: the registry may not yet hold every
// sighting while the per-declaration phase is still fanning out.
func (c *Checker) implementsMarkedInterface(d *symbol.Decl) bool {
	for _, name := range d.Implements {
		iface, ok := c.prog.InterfaceNamed(name)
		if ok && iface.Annotations.Has(symbol.AnnInterfaceMarker) {
			return true
		}
	}
	return false
}

// staticStateMembers returns the sorted names of mutable static members.
// Compile-time constants and compiler-generated members carry no runtime
// state and are exempt.
func staticStateMembers(d *symbol.Decl) []string {
	var names []string
	for i := range d.Members {
		m := &d.Members[i]
		if m.Static && !m.Const && !m.Synthesized {
			names = append(names, m.Name)
		}
	}
	sort.Strings(names)
	return names
}
