package rules

import (
	"strings"
	"testing"

	"addinlint/internal/diag"
)

func TestNoMarkedInterface(t *testing.T) {
	bag := runRules(t, `{
		"schema": 1,
		"declarations": [
			{
				"kind": "interface",
				"name": "ISecond",
				"access": "public",
				"span": {"start": 100, "end": 140},
				"name_span": {"start": 110, "end": 117}
			},
			{
				"kind": "interface",
				"name": "IFirst",
				"access": "public",
				"span": {"start": 0, "end": 40},
				"name_span": {"start": 10, "end": 16}
			}
		]
	}`)
	if countCode(bag, diag.ProgNoInterface) != 1 {
		t.Fatalf("want one PRG6001, got %v", codesOf(bag))
	}
	// Anchored at the earliest interface regardless of snapshot order.
	d := findCode(t, bag, diag.ProgNoInterface)
	if d.Primary.Start != 10 {
		t.Fatalf("PRG6001 anchored at %d, want the earliest interface", d.Primary.Start)
	}
}

func TestNoInterfacesAtAll(t *testing.T) {
	bag := runRules(t, `{
		"schema": 1,
		"declarations": [
			{
				"kind": "struct", "name": "Payload", "access": "public",
				"span": {"start": 0, "end": 80}, "name_span": {"start": 10, "end": 17},
				"annotations": [{"name": "AddInStructure"}],
				"members": [
					{"name": "Text", "access": "public", "type": {"name": "String"},
					 "span": {"start": 20, "end": 40}, "name_span": {"start": 30, "end": 34}}
				]
			}
		]
	}`)
	// Nothing to decorate, so the missing-interface rule stays quiet.
	if countCode(bag, diag.ProgNoInterface) != 0 {
		t.Fatalf("structure-only program flagged: %v", codesOf(bag))
	}
}

func TestMissingImplementation(t *testing.T) {
	bag := runRules(t, `{
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
			}
		]
	}`)
	if countCode(bag, diag.ProgMissingImpl) != 1 {
		t.Fatalf("want one PRG6002, got %v", codesOf(bag))
	}
}

func TestMultipleImplementations(t *testing.T) {
	bag := runRules(t, `{
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
				"kind": "class", "name": "Zeta", "access": "public",
				"span": {"start": 100, "end": 140}, "name_span": {"start": 110, "end": 114},
				"implements": ["ICalc"]
			},
			{
				"kind": "class", "name": "Alpha", "access": "public",
				"span": {"start": 200, "end": 240}, "name_span": {"start": 210, "end": 215},
				"implements": ["ICalc"]
			}
		]
	}`)
	d := findCode(t, bag, diag.ProgManyImpl)
	if !strings.Contains(d.Message, "Alpha, Zeta") {
		t.Fatalf("implementation list not sorted: %q", d.Message)
	}
}

func TestMultipleMarkedInterfaces(t *testing.T) {
	bag := runRules(t, `{
		"schema": 1,
		"declarations": [
			{
				"kind": "interface",
				"name": "IZulu",
				"access": "public",
				"span": {"start": 0, "end": 40},
				"name_span": {"start": 10, "end": 15},
				"annotations": [{"name": "AddInInterface"}],
				"methods": [{"name": "Run", "span": {"start": 20, "end": 30}, "name_span": {"start": 20, "end": 23}}]
			},
			{
				"kind": "interface",
				"name": "IAlpha",
				"access": "public",
				"span": {"start": 100, "end": 140},
				"name_span": {"start": 110, "end": 116},
				"annotations": [{"name": "AddInInterface"}],
				"methods": [{"name": "Go", "span": {"start": 120, "end": 130}, "name_span": {"start": 120, "end": 122}}]
			}
		]
	}`)
	// One violation per marked interface, each listing the full sorted set.
	if countCode(bag, diag.ProgManyInterfaces) != 2 {
		t.Fatalf("want PRG6004 at every marked interface, got %v", codesOf(bag))
	}
	for _, d := range bag.Items() {
		if d.Code != diag.ProgManyInterfaces {
			continue
		}
		if !strings.Contains(d.Message, "IAlpha, IZulu") {
			t.Fatalf("interface list not sorted: %q", d.Message)
		}
	}
}

func TestDuplicateStructureNames(t *testing.T) {
	bag := runRules(t, `{
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
				"kind": "class", "name": "Calc", "access": "public",
				"span": {"start": 50, "end": 90}, "name_span": {"start": 60, "end": 64},
				"implements": ["ICalc"]
			},
			{
				"kind": "struct", "name": "Payload", "namespace": "A", "access": "public",
				"span": {"start": 100, "end": 160}, "name_span": {"start": 110, "end": 117},
				"annotations": [{"name": "AddInStructure"}],
				"members": [
					{"name": "Text", "access": "public", "type": {"name": "String"},
					 "span": {"start": 120, "end": 140}, "name_span": {"start": 130, "end": 134}}
				]
			},
			{
				"kind": "struct", "name": "Payload", "namespace": "B", "access": "public",
				"span": {"start": 200, "end": 260}, "name_span": {"start": 210, "end": 217},
				"annotations": [{"name": "AddInStructure"}],
				"members": [
					{"name": "Text", "access": "public", "type": {"name": "String"},
					 "span": {"start": 220, "end": 240}, "name_span": {"start": 230, "end": 234}}
				]
			},
			{
				"kind": "struct", "name": "Unique", "access": "public",
				"span": {"start": 300, "end": 360}, "name_span": {"start": 310, "end": 316},
				"annotations": [{"name": "AddInStructure"}],
				"members": [
					{"name": "Text", "access": "public", "type": {"name": "String"},
					 "span": {"start": 320, "end": 340}, "name_span": {"start": 330, "end": 334}}
				]
			}
		]
	}`)
	// One violation at every duplicate site; the unique structure stays
	// quiet.
	if countCode(bag, diag.ProgDuplicateName) != 2 {
		t.Fatalf("want PRG6005 at both duplicates, got %v", codesOf(bag))
	}
}

func TestUnmarkedDuplicatesAreAllowed(t *testing.T) {
	bag := runRules(t, `{
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
				"kind": "class", "name": "Calc", "access": "public",
				"span": {"start": 50, "end": 90}, "name_span": {"start": 60, "end": 64},
				"implements": ["ICalc"]
			},
			{
				"kind": "struct", "name": "Scratch", "namespace": "A", "access": "public",
				"span": {"start": 100, "end": 140}, "name_span": {"start": 110, "end": 117}
			},
			{
				"kind": "struct", "name": "Scratch", "namespace": "B", "access": "public",
				"span": {"start": 200, "end": 240}, "name_span": {"start": 210, "end": 217}
			}
		]
	}`)
	if countCode(bag, diag.ProgDuplicateName) != 0 {
		t.Fatalf("unmarked duplicates flagged: %v", codesOf(bag))
	}
}
