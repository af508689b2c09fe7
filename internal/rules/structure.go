package rules

import (
	"addinlint/internal/diag"
	"addinlint/internal/interop"
	"addinlint/internal/symbol"
)

// checkStruct analyzes one structure declaration. It runs only when the
// structure carries the structure marker; undecorated structures are the
// method analyzer's concern.
func (c *Checker) checkStruct(d *symbol.Decl, r diag.Reporter) {
	if !d.Annotations.Has(symbol.AnnStructMarker) {
		return
	}

	declAnchor := anchor(d.NameSpan, d.Span)

	if d.Access != symbol.AccessPublic {
		c.report(r, diag.StructNotPublic, declAnchor,
			"structure '%s' must be public", d.Name).Emit()
	}

	if !hasPublicMember(d) {
		c.report(r, diag.StructEmpty, declAnchor,
			"structure '%s' has no public fields or properties", d.Name).Emit()
	}

	for i := range d.Members {
		c.checkStructMember(d, &d.Members[i], r)
	}
}

func hasPublicMember(d *symbol.Decl) bool {
	for i := range d.Members {
		m := &d.Members[i]
		if m.Synthesized {
			continue
		}
		if m.Access == symbol.AccessPublic {
			return true
		}
	}
	return false
}

func (c *Checker) checkStructMember(d *symbol.Decl, m *symbol.Member, r diag.Reporter) {
	if m.Synthesized {
		return
	}

	memberAnchor := anchor(m.NameSpan, m.Span)

	if m.Annotations.Has(symbol.AnnFieldMarker) && m.Access != symbol.AccessPublic {
		c.report(r, diag.StructFieldNotPublic, memberAnchor,
			"structure field '%s.%s' must be public", d.Name, m.Name).Emit()
	}

	if m.Annotations.Has(symbol.AnnIgnoreMarker) && m.Access != symbol.AccessPublic {
		c.report(r, diag.StructIgnoredNotPublic, memberAnchor,
			"ignored structure field '%s.%s' must be public", d.Name, m.Name).Emit()
	}

	if ann, ok := m.Annotations.Get(symbol.AnnFieldMarker); ok && ann.TypeTag != "" {
		tag := interop.ParseTypeTag(ann.TypeTag)
		// The inferred tag never produces a mapping violation; an
		// unrecognized tag matches nothing and fails closed.
		if tag != interop.TagInferred && !interop.MatchesTag(m.Type, tag) {
			typeAnchor := anchor(m.TypeSpan, memberAnchor)
			c.report(r, diag.StructTypeMapping, typeAnchor,
				"field '%s.%s' is declared as '%s' but its type tag '%s' requires a different type",
				d.Name, m.Name, m.Type.Display(), ann.TypeTag).Emit()
		}
	}

	// Every public field or property must carry an acceptable interop type,
	// whether annotated or not.
	if m.Access == symbol.AccessPublic && !c.oracle.AcceptableMemberType(m.Type) {
		typeAnchor := anchor(m.TypeSpan, memberAnchor)
		c.report(r, diag.StructUnsupportedMember, typeAnchor,
			"type '%s' of '%s.%s' is not supported on the interop surface",
			m.Type.Display(), d.Name, m.Name).Emit()
	}
}
