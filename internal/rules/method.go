package rules

import (
	"strings"

	"addinlint/internal/diag"
	"addinlint/internal/interop"
	"addinlint/internal/symbol"
)

// checkMethods runs the method-surface rules. The full parameter checks
// apply only to methods of a marked interface; for classes implementing a
// marked interface only the underscore naming rule applies, since the
// parameter shapes are already constrained at the interface.
func (c *Checker) checkMethods(d *symbol.Decl, r diag.Reporter) {
	switch d.Kind {
	case symbol.DeclInterface:
		if !d.Annotations.Has(symbol.AnnInterfaceMarker) {
			return
		}
		for i := range d.Methods {
			m := &d.Methods[i]
			c.checkMethodName(m, r)
			c.checkMethodParams(d, m, r)
		}
	case symbol.DeclClass:
		if !c.implementsMarkedInterface(d) {
			return
		}
		for i := range d.Methods {
			c.checkMethodName(&d.Methods[i], r)
		}
	}
}

func (c *Checker) checkMethodName(m *symbol.Method, r diag.Reporter) {
	if !strings.HasPrefix(m.Name, "_") {
		return
	}
	c.report(r, diag.NameLeadingUnderscore, anchor(m.NameSpan, m.Span),
		"Method '%s' begins with an underscore", m.Name).Emit()
}

func (c *Checker) checkMethodParams(d *symbol.Decl, m *symbol.Method, r diag.Reporter) {
	sizeLimitReported := false

	for i := range m.Params {
		p := &m.Params[i]
		paramAnchor := anchor(p.Span, anchor(m.NameSpan, m.Span))

		// Any reference-like passing mode breaks the interop call convention,
		// including read-only references.
		if p.Mode == symbol.PassByRef || p.Mode == symbol.PassOut || p.Mode == symbol.PassIn {
			c.report(r, diag.MethodParamByRef, paramAnchor,
				"parameter '%s' of '%s.%s' is passed by reference", p.Name, d.Name, m.Name).Emit()
		}

		// One size-limit advisory per method is enough; the host limit
		// applies to the whole call payload, not to each parameter.
		if !sizeLimitReported && interop.IsByteSequence(p.Type) {
			c.report(r, diag.MethodInputSizeLimit, paramAnchor,
				"byte array parameter '%s' of '%s.%s' is subject to the host input size limit",
				p.Name, d.Name, m.Name).Emit()
			sizeLimitReported = true
		}

		if !interop.AcceptableDefault(*p) {
			c.report(r, diag.MethodUnsupportedDefault, paramAnchor,
				"default value of parameter '%s' of '%s.%s' is not supported",
				p.Name, d.Name, m.Name).Emit()
		}

		for _, structName := range c.oracle.UndecoratedStructures(p.Type) {
			b := c.report(r, diag.MethodUndecoratedStruct, paramAnchor,
				"parameter '%s' of '%s.%s' refers to structure '%s' which is not marked for interop",
				p.Name, d.Name, m.Name, structName)
			if target, ok := c.prog.StructNamed(structName); ok && !target.Span.Zero() {
				b = b.WithNote(anchor(target.NameSpan, target.Span),
					"structure '"+structName+"' declared here")
			}
			b.Emit()
		}
	}
}
