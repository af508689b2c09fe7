package interop

import "strings"

// TypeTag is the externally defined enumeration describing the intended
// interop data type of a structure field.
type TypeTag uint8

const (
	// TagInvalid is any unrecognized tag value. It is compatible with no
	// host type: an unknown tag must fail closed, never be silently
	// accepted.
	TagInvalid TypeTag = iota
	// TagInferred lets the host derive the interop type from the declared
	// member type; it never produces a mapping violation.
	TagInferred
	TagText
	TagInteger
	TagLongInteger
	TagDecimal
	TagBoolean
	TagDateTime
	TagDate
	TagTime
	TagPhone
	TagEmail
	TagBinary
	TagCurrency
)

var tagNames = map[TypeTag]string{
	TagInferred:    "InferredFromDotNetType",
	TagText:        "Text",
	TagInteger:     "Integer",
	TagLongInteger: "LongInteger",
	TagDecimal:     "Decimal",
	TagBoolean:     "Boolean",
	TagDateTime:    "DateTime",
	TagDate:        "Date",
	TagTime:        "Time",
	TagPhone:       "Phone",
	TagEmail:       "Email",
	TagBinary:      "Binary",
	TagCurrency:    "Currency",
}

// acceptedHostTypes maps every non-inferred tag to the single host type the
// interop layer marshals it from. The table is total over all non-inferred
// tags; keep it that way when extending the enumeration.
var acceptedHostTypes = map[TypeTag]string{
	TagText:        "String",
	TagInteger:     "Int32",
	TagLongInteger: "Int64",
	TagDecimal:     "Decimal",
	TagBoolean:     "Boolean",
	TagDateTime:    "DateTime",
	TagDate:        "DateTime",
	TagTime:        "DateTime",
	TagPhone:       "String",
	TagEmail:       "String",
	TagBinary:      "Byte[]",
	TagCurrency:    "Decimal",
}

func (t TypeTag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return "Invalid"
}

// ParseTypeTag resolves a raw tag string case-insensitively. An empty string
// parses to TagInferred (absence of a tag means inference); anything
// unrecognized parses to TagInvalid.
func ParseTypeTag(raw string) TypeTag {
	if raw == "" {
		return TagInferred
	}
	for tag, name := range tagNames {
		if strings.EqualFold(raw, name) {
			return tag
		}
	}
	return TagInvalid
}

// AcceptedHostType returns the host type name a tag marshals from. The second
// result is false for TagInferred (nothing to enforce) and TagInvalid
// (incompatible with everything; callers must treat a false result for a
// non-inferred tag as a mapping violation).
func (t TypeTag) AcceptedHostType() (string, bool) {
	name, ok := acceptedHostTypes[t]
	return name, ok
}
