package symbol

import (
	"addinlint/internal/source"
)

// Program is the whole-program view the end-of-program analyzer and the fix
// synthesizer query. It owns the FileSet resolving every declaration span.
type Program struct {
	Decls []*Decl
	Files *source.FileSet

	// Path and Hash identify the snapshot this program was loaded from;
	// the driver keys its result cache on Hash.
	Path string
	Hash [32]byte
}

// DeclsWhere returns every declaration satisfying pred, in snapshot order.
func (p *Program) DeclsWhere(pred func(*Decl) bool) []*Decl {
	var out []*Decl
	for _, d := range p.Decls {
		if pred(d) {
			out = append(out, d)
		}
	}
	return out
}

// Interfaces returns every interface declaration.
func (p *Program) Interfaces() []*Decl {
	return p.DeclsWhere(func(d *Decl) bool { return d.Kind == DeclInterface })
}

// StructsNamed returns every structure with the given simple name, across all
// namespaces.
func (p *Program) StructsNamed(name string) []*Decl {
	return p.DeclsWhere(func(d *Decl) bool {
		return d.Kind == DeclStruct && d.Name == name
	})
}

// StructNamed returns the first structure with the given simple name.
func (p *Program) StructNamed(name string) (*Decl, bool) {
	for _, d := range p.Decls {
		if d.Kind == DeclStruct && d.Name == name {
			return d, true
		}
	}
	return nil, false
}

// InterfaceNamed returns the first interface with the given simple name.
func (p *Program) InterfaceNamed(name string) (*Decl, bool) {
	for _, d := range p.Decls {
		if d.Kind == DeclInterface && d.Name == name {
			return d, true
		}
	}
	return nil, false
}

// ClassesImplementing returns every class that lists the interface name in
// its implements clause.
func (p *Program) ClassesImplementing(ifaceName string) []*Decl {
	return p.DeclsWhere(func(d *Decl) bool {
		if d.Kind != DeclClass {
			return false
		}
		for _, impl := range d.Implements {
			if impl == ifaceName {
				return true
			}
		}
		return false
	})
}

// DeclAt returns the declaration whose span contains the given span. Used by
// the fix synthesizer to map a diagnostic back to its symbol. Returns false
// when no declaration or more than one candidate matches a zero-width span
// boundary; the synthesizer fails closed on ambiguity.
func (p *Program) DeclAt(span source.Span) (*Decl, bool) {
	var found *Decl
	for _, d := range p.Decls {
		if d.Span.Zero() || !d.Span.Contains(span) {
			continue
		}
		if found != nil {
			// Nested or overlapping declarations: prefer the tighter one.
			if d.Span.Len() < found.Span.Len() {
				found = d
			}
			continue
		}
		found = d
	}
	return found, found != nil
}

// MemberAt returns the declaration and member whose span contains the given
// span.
func (p *Program) MemberAt(span source.Span) (*Decl, *Member, bool) {
	d, ok := p.DeclAt(span)
	if !ok {
		return nil, nil, false
	}
	for i := range d.Members {
		m := &d.Members[i]
		if !m.Span.Zero() && m.Span.Contains(span) {
			return d, m, true
		}
	}
	return nil, nil, false
}

// MethodAt returns the declaration and method whose span contains the given
// span.
func (p *Program) MethodAt(span source.Span) (*Decl, *Method, bool) {
	d, ok := p.DeclAt(span)
	if !ok {
		return nil, nil, false
	}
	for i := range d.Methods {
		m := &d.Methods[i]
		if !m.Span.Zero() && m.Span.Contains(span) {
			return d, m, true
		}
	}
	return nil, nil, false
}

// Position resolves a span's start into (line, col); zero spans resolve to
// line 0 so they order before any real position.
func (p *Program) Position(span source.Span) source.LineCol {
	if span.Zero() || p.Files == nil {
		return source.LineCol{}
	}
	start, _ := p.Files.Resolve(span)
	return start
}
