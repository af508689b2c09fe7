package rules

import (
	"strings"
	"testing"

	"addinlint/internal/diag"
)

// classProgram wraps one class declaration into a program with a single
// marked interface named ICalc.
func classProgram(classDecl string) string {
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
			` + classDecl + `
		]
	}`
}

func TestImplementationMustBePublic(t *testing.T) {
	bag := runRules(t, classProgram(`{
		"kind": "class",
		"name": "Calc",
		"access": "internal",
		"span": {"start": 50, "end": 120},
		"name_span": {"start": 60, "end": 64},
		"implements": ["ICalc"]
	}`))
	if countCode(bag, diag.ClassImplNotPublic) != 1 {
		t.Fatalf("want one CLS4001, got %v", codesOf(bag))
	}
}

func TestImplementationNeedsPublicDefaultCtor(t *testing.T) {
	// Only a parameterized constructor: no way to instantiate with zero
	// arguments.
	bag := runRules(t, classProgram(`{
		"kind": "class",
		"name": "Calc",
		"access": "public",
		"span": {"start": 50, "end": 120},
		"name_span": {"start": 60, "end": 64},
		"implements": ["ICalc"],
		"ctors": [{"access": "public", "param_count": 2, "span": {"start": 70, "end": 90}}]
	}`))
	if countCode(bag, diag.ClassNoPublicCtor) != 1 {
		t.Fatalf("want one CLS4002, got %v", codesOf(bag))
	}

	// No declared constructors at all: the implicit default one counts.
	bag = runRules(t, classProgram(`{
		"kind": "class",
		"name": "Calc",
		"access": "public",
		"span": {"start": 50, "end": 120},
		"name_span": {"start": 60, "end": 64},
		"implements": ["ICalc"]
	}`))
	if countCode(bag, diag.ClassNoPublicCtor) != 0 {
		t.Fatalf("implicit default ctor flagged: %v", codesOf(bag))
	}

	// A private parameterless ctor next to a public parameterized one still
	// fails.
	bag = runRules(t, classProgram(`{
		"kind": "class",
		"name": "Calc",
		"access": "public",
		"span": {"start": 50, "end": 120},
		"name_span": {"start": 60, "end": 64},
		"implements": ["ICalc"],
		"ctors": [
			{"access": "private", "param_count": 0, "span": {"start": 70, "end": 80}},
			{"access": "public", "param_count": 1, "span": {"start": 85, "end": 95}}
		]
	}`))
	if countCode(bag, diag.ClassNoPublicCtor) != 1 {
		t.Fatalf("private parameterless ctor accepted: %v", codesOf(bag))
	}
}

func TestStaticStateIsAdvisory(t *testing.T) {
	bag := runRules(t, classProgram(`{
		"kind": "class",
		"name": "Calc",
		"access": "public",
		"span": {"start": 50, "end": 200},
		"name_span": {"start": 60, "end": 64},
		"implements": ["ICalc"],
		"members": [
			{"name": "zebra", "static": true, "access": "private", "type": {"name": "Int32", "value_type": true},
			 "span": {"start": 70, "end": 90}, "name_span": {"start": 80, "end": 85}},
			{"name": "apple", "static": true, "access": "private", "type": {"name": "Int32", "value_type": true},
			 "span": {"start": 95, "end": 115}, "name_span": {"start": 100, "end": 105}},
			{"name": "MaxLen", "static": true, "const": true, "access": "public",
			 "type": {"name": "Int32", "value_type": true},
			 "span": {"start": 120, "end": 140}, "name_span": {"start": 130, "end": 136}}
		]
	}`))

	d := findCode(t, bag, diag.ClassStaticState)
	if d.Severity != diag.SevWarning {
		t.Fatalf("static state severity = %v, want warning", d.Severity)
	}
	// Constants are exempt and the mutable names come sorted.
	if !strings.Contains(d.Message, "apple, zebra") {
		t.Fatalf("static member list wrong: %q", d.Message)
	}
	if strings.Contains(d.Message, "MaxLen") {
		t.Fatalf("constant flagged as static state: %q", d.Message)
	}
}

func TestPlainClassIsIgnored(t *testing.T) {
	bag := runRules(t, classProgram(`{
		"kind": "class",
		"name": "Helper",
		"access": "private",
		"span": {"start": 50, "end": 120},
		"name_span": {"start": 60, "end": 66},
		"ctors": [{"access": "private", "param_count": 3, "span": {"start": 70, "end": 90}}],
		"members": [
			{"name": "cache", "static": true, "access": "private", "type": {"name": "Object"},
			 "span": {"start": 95, "end": 110}, "name_span": {"start": 100, "end": 105}}
		]
	}`))
	// The class rules stay quiet; only the missing implementation fires.
	if countCode(bag, diag.ClassImplNotPublic)+countCode(bag, diag.ClassNoPublicCtor)+countCode(bag, diag.ClassStaticState) != 0 {
		t.Fatalf("plain class triggered class rules: %v", codesOf(bag))
	}
	if countCode(bag, diag.ProgMissingImpl) != 1 {
		t.Fatalf("want one PRG6002, got %v", codesOf(bag))
	}
}
