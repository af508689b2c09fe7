package symbol

import (
	"addinlint/internal/source"
)

// Decl is the read-only view of one host declaration. The rule engine only
// reads it and never retains it past the current run except inside the
// interface registry.
type Decl struct {
	Kind      DeclKind
	Name      string
	Namespace string
	Access    Access

	Span       source.Span // whole declaration
	NameSpan   source.Span // identifier
	AccessSpan source.Span // accessibility keyword; zero when implicit

	Annotations AnnotationSet

	Members    []Member // struct fields and properties
	Methods    []Method // interface and class methods
	Ctors      []Ctor   // class constructors; empty means implicit public default
	Implements []string // class: simple names of implemented interfaces
}

// QualifiedName returns "Namespace.Name", or just Name when the declaration
// sits in the global namespace.
func (d *Decl) QualifiedName() string {
	if d.Namespace == "" {
		return d.Name
	}
	return d.Namespace + "." + d.Name
}

// Member is a field or property of a structure or class.
type Member struct {
	Name        string
	Property    bool
	Static      bool
	Const       bool // compile-time constant
	Synthesized bool // compiler-generated (backing fields etc.)
	Access      Access

	Type TypeRef

	Span       source.Span
	NameSpan   source.Span
	TypeSpan   source.Span
	AccessSpan source.Span // zero when implicit

	Annotations AnnotationSet
}

// Method is a method of an interface or class.
type Method struct {
	Name   string
	Access Access
	Static bool

	Span       source.Span
	NameSpan   source.Span
	AccessSpan source.Span

	Params []Param
}

// Param is one method parameter.
type Param struct {
	Name    string
	Type    TypeRef
	Mode    PassMode
	Default DefaultValue
	Span    source.Span
}

// Ctor is a class constructor signature.
type Ctor struct {
	Access     Access
	ParamCount int
	Span       source.Span
}

// HasPublicDefaultCtor reports whether the class can be instantiated with no
// arguments: either an explicit public parameterless constructor, or no
// declared constructors at all (the host synthesizes a public default one).
func (d *Decl) HasPublicDefaultCtor() bool {
	if len(d.Ctors) == 0 {
		return true
	}
	for _, c := range d.Ctors {
		if c.Access == AccessPublic && c.ParamCount == 0 {
			return true
		}
	}
	return false
}
