package rules

import (
	"strings"

	"addinlint/internal/diag"
	"addinlint/internal/symbol"
)

// checkInterface analyzes one interface declaration carrying the interface
// marker. The sighting is also recorded into the registry for the
// end-of-program cardinality pass; insertion is first-write-wins and safe
// under concurrent visits.
func (c *Checker) checkInterface(d *symbol.Decl, r diag.Reporter) {
	ann, ok := d.Annotations.Get(symbol.AnnInterfaceMarker)
	if !ok {
		return
	}

	c.registry.Record(d.Name, d)

	declAnchor := anchor(d.NameSpan, d.Span)

	if len(d.Methods) == 0 {
		c.report(r, diag.IfaceEmpty, declAnchor,
			"interface '%s' declares no methods", d.Name).Emit()
	}

	checkName(r, resolvedInterfaceName(d, ann), declAnchor)

	if d.Access != symbol.AccessPublic {
		c.report(r, diag.IfaceNotPublic, declAnchor,
			"interface '%s' must be public", d.Name).Emit()
	}
}

// resolvedInterfaceName computes the externally-visible name of the add-in
// interface: the explicit name override wins, then the original-name
// override, then the interface's own name with a single leading "I" stripped.
func resolvedInterfaceName(d *symbol.Decl, ann symbol.Annotation) string {
	if ann.NameOverride != "" {
		return ann.NameOverride
	}
	if ann.OriginalName != "" {
		return ann.OriginalName
	}
	if strings.HasPrefix(d.Name, "I") {
		return d.Name[1:]
	}
	return d.Name
}
