package rules

import (
	"testing"

	"addinlint/internal/diag"
	"addinlint/internal/symbol"
)

// runRules executes both analysis phases over an inline snapshot and returns
// the sorted bag.
func runRules(t *testing.T, snapshot string) *diag.Bag {
	t.Helper()

	prog, err := symbol.ParseSnapshot("rules.snapshot.json", []byte(snapshot))
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	bag := diag.NewBag(256)
	r := diag.BagReporter{Bag: bag}

	registry := NewInterfaceRegistry()
	checker := NewChecker(prog, registry)
	for _, d := range prog.Decls {
		checker.CheckDecl(d, r)
	}
	NewProgramAnalyzer(prog, registry).Run(r)

	bag.Sort()
	return bag
}

func codesOf(bag *diag.Bag) []diag.Code {
	out := make([]diag.Code, 0, len(bag.Items()))
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func countCode(bag *diag.Bag, code diag.Code) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Code == code {
			n++
		}
	}
	return n
}

func findCode(t *testing.T, bag *diag.Bag, code diag.Code) diag.Diagnostic {
	t.Helper()
	for _, d := range bag.Items() {
		if d.Code == code {
			return d
		}
	}
	t.Fatalf("no %s diagnostic in %v", code.ID(), codesOf(bag))
	return diag.Diagnostic{}
}

// wellFormed is a minimal program satisfying every rule: one marked
// interface, one public implementation, one marked structure in use.
const wellFormed = `{
	"schema": 1,
	"declarations": [
		{
			"kind": "interface",
			"name": "ICalc",
			"access": "public",
			"span": {"start": 0, "end": 80},
			"name_span": {"start": 10, "end": 15},
			"annotations": [{"name": "AddInInterface"}],
			"methods": [
				{
					"name": "Add",
					"span": {"start": 20, "end": 60},
					"name_span": {"start": 20, "end": 23},
					"params": [
						{"name": "input", "type": {"name": "Payload"}, "span": {"start": 30, "end": 45}}
					]
				}
			]
		},
		{
			"kind": "struct",
			"name": "Payload",
			"access": "public",
			"span": {"start": 100, "end": 180},
			"name_span": {"start": 110, "end": 117},
			"annotations": [{"name": "AddInStructure"}],
			"members": [
				{
					"name": "Text",
					"access": "public",
					"type": {"name": "String"},
					"span": {"start": 120, "end": 140},
					"name_span": {"start": 130, "end": 134},
					"annotations": [{"name": "AddInField", "args": {"type": "Text"}}]
				}
			]
		},
		{
			"kind": "class",
			"name": "Calc",
			"access": "public",
			"span": {"start": 200, "end": 300},
			"name_span": {"start": 210, "end": 214},
			"implements": ["ICalc"],
			"methods": [
				{
					"name": "Add",
					"access": "public",
					"span": {"start": 220, "end": 280},
					"name_span": {"start": 220, "end": 223}
				}
			]
		}
	]
}`

func TestWellFormedProgramIsClean(t *testing.T) {
	bag := runRules(t, wellFormed)
	if len(bag.Items()) != 0 {
		t.Fatalf("expected no diagnostics, got %v", codesOf(bag))
	}
}
