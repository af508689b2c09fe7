package diag

import (
	"fmt"
)

// Code is a stable rule identifier. The string form (Code.ID) is part of the
// external contract consumed by CI pipelines and editors: never renumber or
// rename an existing code.
type Code uint16

const (
	UnknownCode Code = 0

	// Naming rules (1000-1999)
	NameInfo              Code = 1000
	NameTooLong           Code = 1001
	NameLeadingDigit      Code = 1002
	NameUnsupportedChars  Code = 1003
	NameLeadingUnderscore Code = 1004

	// Structure rules (2000-2999)
	StructInfo              Code = 2000
	StructNotPublic         Code = 2001
	StructEmpty             Code = 2002
	StructFieldNotPublic    Code = 2003
	StructIgnoredNotPublic  Code = 2004
	StructTypeMapping       Code = 2005
	StructUnsupportedMember Code = 2006

	// Interface rules (3000-3999)
	IfaceInfo      Code = 3000
	IfaceEmpty     Code = 3001
	IfaceNotPublic Code = 3002

	// Class rules (4000-4999)
	ClassInfo          Code = 4000
	ClassImplNotPublic Code = 4001
	ClassNoPublicCtor  Code = 4002
	ClassStaticState   Code = 4003

	// Method rules (5000-5999)
	MethodInfo               Code = 5000
	MethodParamByRef         Code = 5001
	MethodInputSizeLimit     Code = 5002
	MethodUnsupportedDefault Code = 5003
	MethodUndecoratedStruct  Code = 5004

	// Program-level rules (6000-6999)
	ProgInfo           Code = 6000
	ProgNoInterface    Code = 6001
	ProgMissingImpl    Code = 6002
	ProgManyImpl       Code = 6003
	ProgManyInterfaces Code = 6004
	ProgDuplicateName  Code = 6005

	// Operational (7000-7999)
	IOLoadFileError Code = 7001
	SnapshotError   Code = 7002
)

var codeDescription = map[Code]string{
	UnknownCode: "Unknown rule",

	NameInfo:              "Naming information",
	NameTooLong:           "Name is longer than the allowed maximum",
	NameLeadingDigit:      "Name begins with a digit",
	NameUnsupportedChars:  "Name contains unsupported characters",
	NameLeadingUnderscore: "Name begins with an underscore",

	StructInfo:              "Structure information",
	StructNotPublic:         "Structure is not public",
	StructEmpty:             "Structure has no public fields or properties",
	StructFieldNotPublic:    "Structure field is not public",
	StructIgnoredNotPublic:  "Ignored structure field is not public",
	StructTypeMapping:       "Field type does not match the declared type tag",
	StructUnsupportedMember: "Structure member type is not supported",

	IfaceInfo:      "Interface information",
	IfaceEmpty:     "Interface declares no methods",
	IfaceNotPublic: "Interface is not public",

	ClassInfo:          "Class information",
	ClassImplNotPublic: "Implementation class is not public",
	ClassNoPublicCtor:  "Implementation class has no public parameterless constructor",
	ClassStaticState:   "Implementation class declares static state",

	MethodInfo:               "Method information",
	MethodParamByRef:         "Parameter is passed by reference",
	MethodInputSizeLimit:     "Byte array parameter may hit the input size limit",
	MethodUnsupportedDefault: "Parameter default value is not supported",
	MethodUndecoratedStruct:  "Parameter refers to an undecorated structure",

	ProgInfo:           "Program information",
	ProgNoInterface:    "No interface is decorated as the add-in interface",
	ProgMissingImpl:    "The add-in interface has no implementation",
	ProgManyImpl:       "The add-in interface has multiple implementations",
	ProgManyInterfaces: "Multiple interfaces are decorated as the add-in interface",
	ProgDuplicateName:  "Duplicate structure name",

	IOLoadFileError: "I/O load file error",
	SnapshotError:   "Malformed program snapshot",
}

// ID returns the stable external identifier, e.g. "STR2005".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("NAM%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("STR%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("IFC%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("CLS%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("MTH%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("PRG%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// CodeByID resolves a stable identifier back to its Code; used by severity
// overrides in the config file.
func CodeByID(id string) (Code, bool) {
	for c := range codeDescription {
		if c != UnknownCode && c.ID() == id {
			return c, true
		}
	}
	return UnknownCode, false
}

// DefaultSeverity returns the contract-mandated severity for a rule.
// Advisory rules are warnings; everything else breaks the interop contract
// and defaults to error.
func (c Code) DefaultSeverity() Severity {
	switch c {
	case ClassStaticState, MethodInputSizeLimit:
		return SevWarning
	case NameInfo, StructInfo, IfaceInfo, ClassInfo, MethodInfo, ProgInfo:
		return SevInfo
	}
	return SevError
}
