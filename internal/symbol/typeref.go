package symbol

import "strings"

// TypeRef is the structural identity of a declared type as the host resolved
// it. Acceptability decisions over TypeRefs are made by internal/interop;
// this package only carries the shape.
type TypeRef struct {
	Name      string    // simple type name, e.g. "String", "Int32", "Byte"
	Array     bool      // T[]
	Nullable  bool      // T? wrapper
	ValueType bool      // host reports T as a value type
	Args      []TypeRef // generic type arguments
}

// Display renders the type the way it appears in diagnostics and in the
// accepted-type table, e.g. "Byte[]" or "IEnumerable<Int32>".
func (t TypeRef) Display() string {
	var sb strings.Builder
	sb.WriteString(t.Name)
	if len(t.Args) > 0 {
		sb.WriteByte('<')
		for i, a := range t.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(a.Display())
		}
		sb.WriteByte('>')
	}
	if t.Array {
		sb.WriteString("[]")
	}
	if t.Nullable {
		sb.WriteByte('?')
	}
	return sb.String()
}

// Unwrap returns the type with one Nullable wrapper removed.
func (t TypeRef) Unwrap() TypeRef {
	t.Nullable = false
	return t
}

// IsReference reports whether null is an assignable value for the type.
func (t TypeRef) IsReference() bool {
	return t.Nullable || t.Array || !t.ValueType
}
