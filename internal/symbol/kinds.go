package symbol

// DeclKind classifies a top-level declaration in the host program.
type DeclKind uint8

const (
	DeclInvalid DeclKind = iota
	DeclStruct
	DeclInterface
	DeclClass
)

func (k DeclKind) String() string {
	switch k {
	case DeclStruct:
		return "struct"
	case DeclInterface:
		return "interface"
	case DeclClass:
		return "class"
	}
	return "invalid"
}

// ParseDeclKind maps a snapshot string onto a DeclKind.
func ParseDeclKind(s string) DeclKind {
	switch s {
	case "struct", "structure":
		return DeclStruct
	case "interface":
		return DeclInterface
	case "class":
		return DeclClass
	}
	return DeclInvalid
}

// Access is the host accessibility level of a declaration or member.
type Access uint8

const (
	AccessUnknown Access = iota
	AccessPrivate
	AccessProtected
	AccessInternal
	AccessPublic
)

func (a Access) String() string {
	switch a {
	case AccessPrivate:
		return "private"
	case AccessProtected:
		return "protected"
	case AccessInternal:
		return "internal"
	case AccessPublic:
		return "public"
	}
	return "unknown"
}

// Keyword returns the source keyword for the accessibility, empty for
// unknown/implicit.
func (a Access) Keyword() string {
	if a == AccessUnknown {
		return ""
	}
	return a.String()
}

// ParseAccess maps a snapshot string onto an Access level.
func ParseAccess(s string) Access {
	switch s {
	case "private":
		return AccessPrivate
	case "protected":
		return AccessProtected
	case "internal":
		return AccessInternal
	case "public":
		return AccessPublic
	}
	return AccessUnknown
}

// PassMode describes how a parameter is passed.
type PassMode uint8

const (
	PassByValue PassMode = iota
	PassByRef            // mutable reference
	PassOut              // output-only
	PassIn               // read-only reference
)

func (m PassMode) String() string {
	switch m {
	case PassByValue:
		return "value"
	case PassByRef:
		return "ref"
	case PassOut:
		return "out"
	case PassIn:
		return "in"
	}
	return "unknown"
}

// ParsePassMode maps a snapshot string onto a PassMode.
func ParsePassMode(s string) PassMode {
	switch s {
	case "ref":
		return PassByRef
	case "out":
		return PassOut
	case "in":
		return PassIn
	}
	return PassByValue
}

// DefaultKind classifies a parameter's default value.
type DefaultKind uint8

const (
	DefaultNone DefaultKind = iota
	DefaultLiteral
	DefaultNull
	DefaultNamedConst // reference to another constant
	DefaultExpr       // computed expression
)

// ParseDefaultKind maps a snapshot string onto a DefaultKind.
func ParseDefaultKind(s string) DefaultKind {
	switch s {
	case "literal":
		return DefaultLiteral
	case "null":
		return DefaultNull
	case "named-const":
		return DefaultNamedConst
	case "expr":
		return DefaultExpr
	}
	return DefaultNone
}

// DefaultValue is a parameter default as resolved by the host.
type DefaultValue struct {
	Kind DefaultKind
	// LiteralType is the host type name of the literal, set only for
	// DefaultLiteral.
	LiteralType string
}
