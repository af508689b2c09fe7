package rules

import (
	"strings"
	"testing"

	"addinlint/internal/diag"
)

// structProgram wraps one structure declaration into a program that is
// otherwise clean at the program level.
func structProgram(structDecl string) string {
	return `{
		"schema": 1,
		"declarations": [
			{
				"kind": "interface",
				"name": "ICalc",
				"access": "public",
				"span": {"start": 0, "end": 40},
				"name_span": {"start": 10, "end": 15},
				"annotations": [{"name": "AddInInterface"}],
				"methods": [{"name": "Run", "span": {"start": 20, "end": 30}, "name_span": {"start": 20, "end": 23}}]
			},
			{
				"kind": "class",
				"name": "Calc",
				"access": "public",
				"span": {"start": 50, "end": 90},
				"name_span": {"start": 60, "end": 64},
				"implements": ["ICalc"]
			},
			` + structDecl + `
		]
	}`
}

func TestStructNotPublic(t *testing.T) {
	bag := runRules(t, structProgram(`{
		"kind": "struct",
		"name": "Payload",
		"access": "internal",
		"span": {"start": 100, "end": 200},
		"name_span": {"start": 110, "end": 117},
		"annotations": [{"name": "AddInStructure"}],
		"members": [
			{"name": "Text", "access": "public", "type": {"name": "String"},
			 "span": {"start": 120, "end": 140}, "name_span": {"start": 130, "end": 134}}
		]
	}`))
	if countCode(bag, diag.StructNotPublic) != 1 {
		t.Fatalf("want one STR2001, got %v", codesOf(bag))
	}
}

func TestUnmarkedStructIsIgnored(t *testing.T) {
	bag := runRules(t, structProgram(`{
		"kind": "struct",
		"name": "Scratch",
		"access": "private",
		"span": {"start": 100, "end": 200},
		"name_span": {"start": 110, "end": 117}
	}`))
	if len(bag.Items()) != 0 {
		t.Fatalf("undecorated struct produced diagnostics: %v", codesOf(bag))
	}
}

func TestStructWithOnlyPrivateMembersIsEmpty(t *testing.T) {
	bag := runRules(t, structProgram(`{
		"kind": "struct",
		"name": "Payload",
		"access": "public",
		"span": {"start": 100, "end": 200},
		"name_span": {"start": 110, "end": 117},
		"annotations": [{"name": "AddInStructure"}],
		"members": [
			{"name": "hidden", "access": "private", "type": {"name": "String"},
			 "span": {"start": 120, "end": 140}, "name_span": {"start": 130, "end": 136}}
		]
	}`))
	if countCode(bag, diag.StructEmpty) != 1 {
		t.Fatalf("want one STR2002, got %v", codesOf(bag))
	}
}

func TestSynthesizedMembersDoNotCountAsContent(t *testing.T) {
	bag := runRules(t, structProgram(`{
		"kind": "struct",
		"name": "Payload",
		"access": "public",
		"span": {"start": 100, "end": 200},
		"name_span": {"start": 110, "end": 117},
		"annotations": [{"name": "AddInStructure"}],
		"members": [
			{"name": "<Text>k__BackingField", "access": "public", "synthesized": true,
			 "type": {"name": "String"},
			 "span": {"start": 120, "end": 140}, "name_span": {"start": 130, "end": 136}}
		]
	}`))
	if countCode(bag, diag.StructEmpty) != 1 {
		t.Fatalf("synthesized member counted as content: %v", codesOf(bag))
	}
	// And it never produces member-level diagnostics either.
	if countCode(bag, diag.StructUnsupportedMember) != 0 {
		t.Fatalf("synthesized member was checked: %v", codesOf(bag))
	}
}

func TestMarkedMembersMustBePublic(t *testing.T) {
	bag := runRules(t, structProgram(`{
		"kind": "struct",
		"name": "Payload",
		"access": "public",
		"span": {"start": 100, "end": 300},
		"name_span": {"start": 110, "end": 117},
		"annotations": [{"name": "AddInStructure"}],
		"members": [
			{"name": "Text", "access": "public", "type": {"name": "String"},
			 "span": {"start": 120, "end": 140}, "name_span": {"start": 130, "end": 134}},
			{"name": "field", "access": "private", "type": {"name": "String"},
			 "annotations": [{"name": "AddInField"}],
			 "span": {"start": 150, "end": 170}, "name_span": {"start": 160, "end": 165}},
			{"name": "skipped", "access": "protected", "type": {"name": "String"},
			 "annotations": [{"name": "AddInIgnore"}],
			 "span": {"start": 180, "end": 200}, "name_span": {"start": 190, "end": 197}}
		]
	}`))
	if countCode(bag, diag.StructFieldNotPublic) != 1 {
		t.Fatalf("want one STR2003, got %v", codesOf(bag))
	}
	if countCode(bag, diag.StructIgnoredNotPublic) != 1 {
		t.Fatalf("want one STR2004, got %v", codesOf(bag))
	}
}

func TestTypeTagMismatch(t *testing.T) {
	decl := func(typeTag string) string {
		return `{
			"kind": "struct",
			"name": "Payload",
			"access": "public",
			"span": {"start": 100, "end": 200},
			"name_span": {"start": 110, "end": 117},
			"annotations": [{"name": "AddInStructure"}],
			"members": [
				{"name": "Count", "access": "public", "type": {"name": "String"},
				 "annotations": [{"name": "AddInField", "args": {"type": "` + typeTag + `"}}],
				 "span": {"start": 120, "end": 140}, "name_span": {"start": 130, "end": 135},
				 "type_span": {"start": 121, "end": 127}}
			]
		}`
	}

	// String member tagged Integer: the tag requires Int32.
	bag := runRules(t, structProgram(decl("Integer")))
	d := findCode(t, bag, diag.StructTypeMapping)
	if !strings.Contains(d.Message, "Int") && !strings.Contains(d.Message, "Integer") {
		t.Fatalf("mapping message lacks the tag: %q", d.Message)
	}

	// The inferred tag matches any type.
	bag = runRules(t, structProgram(decl("InferredFromDotNetType")))
	if countCode(bag, diag.StructTypeMapping) != 0 {
		t.Fatalf("inferred tag flagged: %v", codesOf(bag))
	}

	// An unknown tag fails closed and is reported.
	bag = runRules(t, structProgram(decl("Widget")))
	if countCode(bag, diag.StructTypeMapping) != 1 {
		t.Fatalf("unknown tag not flagged: %v", codesOf(bag))
	}
}

func TestUnsupportedMemberType(t *testing.T) {
	bag := runRules(t, structProgram(`{
		"kind": "struct",
		"name": "Payload",
		"access": "public",
		"span": {"start": 100, "end": 200},
		"name_span": {"start": 110, "end": 117},
		"annotations": [{"name": "AddInStructure"}],
		"members": [
			{"name": "Stream", "access": "public", "type": {"name": "MemoryStream"},
			 "span": {"start": 120, "end": 140}, "name_span": {"start": 130, "end": 136},
			 "type_span": {"start": 121, "end": 127}}
		]
	}`))
	if countCode(bag, diag.StructUnsupportedMember) != 1 {
		t.Fatalf("want one STR2006, got %v", codesOf(bag))
	}
}
