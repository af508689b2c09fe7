package interop

import (
	"strings"

	"addinlint/internal/symbol"
)

// acceptablePrimitives is the fixed set of host value types the interop
// surface can marshal directly.
var acceptablePrimitives = map[string]struct{}{
	"string":   {},
	"char":     {},
	"boolean":  {},
	"sbyte":    {},
	"byte":     {},
	"int16":    {},
	"uint16":   {},
	"int32":    {},
	"uint32":   {},
	"int64":    {},
	"uint64":   {},
	"single":   {},
	"double":   {},
	"decimal":  {},
	"datetime": {},
}

// enumerableNames are the generic collection shapes treated as "an enumerable
// of T" by the interop layer. Exactly one type argument is expected.
var enumerableNames = map[string]struct{}{
	"ienumerable":         {},
	"icollection":         {},
	"ilist":               {},
	"ireadonlycollection": {},
	"ireadonlylist":       {},
	"list":                {},
}

// Oracle answers type-compatibility questions against one program. It is
// read-only and safe for concurrent use from per-declaration analyzers.
type Oracle struct {
	prog *symbol.Program
}

func NewOracle(prog *symbol.Program) *Oracle {
	return &Oracle{prog: prog}
}

// AcceptableMemberType reports whether a declared member or parameter type is
// an acceptable value on the interop surface: a primitive, a byte sequence, a
// structure decorated with the structure marker, or an enumerable of an
// acceptable type. A nullable wrapper around an otherwise-acceptable value
// type is acceptable.
//
// Acceptability is structural: recursion follows generic type arguments only,
// never the field graph, so cyclic data models cannot loop the check.
func (o *Oracle) AcceptableMemberType(t symbol.TypeRef) bool {
	if t.Nullable {
		return o.AcceptableMemberType(t.Unwrap())
	}
	if t.Array {
		// Byte[] is the interop byte sequence; any other array is an
		// enumerable of its element type.
		elem := t
		elem.Array = false
		return o.AcceptableMemberType(elem)
	}
	if len(t.Args) > 0 {
		if _, ok := enumerableNames[strings.ToLower(t.Name)]; !ok {
			return false
		}
		if len(t.Args) != 1 {
			return false
		}
		return o.AcceptableMemberType(t.Args[0])
	}
	if _, ok := acceptablePrimitives[strings.ToLower(t.Name)]; ok {
		return true
	}
	return o.isMarkedStructure(t.Name)
}

// IsByteSequence reports whether the type is the interop byte sequence.
func IsByteSequence(t symbol.TypeRef) bool {
	return t.Array && len(t.Args) == 0 && strings.EqualFold(t.Name, "Byte")
}

// MatchesTag compares a declared type against the accepted host type for a
// tag, case-insensitively on the display name. TagInferred always matches;
// TagInvalid never does.
func MatchesTag(t symbol.TypeRef, tag TypeTag) bool {
	if tag == TagInferred {
		return true
	}
	accepted, ok := tag.AcceptedHostType()
	if !ok {
		return false
	}
	return strings.EqualFold(t.Display(), accepted)
}

// UndecoratedStructures returns, for a parameter type, the names of
// structure declarations referenced by the type (its own name or, for a
// generic type, any of its type arguments) that exist in the program but
// lack the structure marker. Order follows the type's own argument order.
func (o *Oracle) UndecoratedStructures(t symbol.TypeRef) []string {
	var out []string
	o.collectUndecorated(t, &out)
	return out
}

func (o *Oracle) collectUndecorated(t symbol.TypeRef, out *[]string) {
	if len(t.Args) == 0 {
		if st, ok := o.prog.StructNamed(t.Name); ok && !st.Annotations.Has(symbol.AnnStructMarker) {
			*out = append(*out, st.Name)
		}
		return
	}
	for _, a := range t.Args {
		o.collectUndecorated(a, out)
	}
}

func (o *Oracle) isMarkedStructure(name string) bool {
	st, ok := o.prog.StructNamed(name)
	return ok && st.Annotations.Has(symbol.AnnStructMarker)
}

// literalDefaultTypes is the constant-friendly set a parameter default
// literal may have.
var literalDefaultTypes = map[string]struct{}{
	"string":   {},
	"int32":    {},
	"int64":    {},
	"single":   {},
	"double":   {},
	"decimal":  {},
	"boolean":  {},
	"datetime": {},
}

// AcceptableDefault reports whether a parameter default is allowed on the
// interop surface: a literal of a constant-friendly type, or null for a
// reference or nullable type. Named constants and computed expressions are
// rejected.
func AcceptableDefault(p symbol.Param) bool {
	switch p.Default.Kind {
	case symbol.DefaultNone:
		return true
	case symbol.DefaultLiteral:
		_, ok := literalDefaultTypes[strings.ToLower(p.Default.LiteralType)]
		return ok
	case symbol.DefaultNull:
		return p.Type.IsReference()
	}
	return false
}
