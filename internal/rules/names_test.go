package rules

import (
	"strings"
	"testing"

	"addinlint/internal/diag"
	"addinlint/internal/symbol"
)

func markedInterfaceWithName(nameArg string) string {
	return `{
		"schema": 1,
		"declarations": [
			{
				"kind": "interface",
				"name": "ICalc",
				"access": "public",
				"span": {"start": 0, "end": 80},
				"name_span": {"start": 10, "end": 15},
				"annotations": [{"name": "AddInInterface", "args": {"name": ` + quoteJSON(nameArg) + `}}],
				"methods": [{"name": "Run", "span": {"start": 20, "end": 40}, "name_span": {"start": 20, "end": 23}}]
			},
			{
				"kind": "class",
				"name": "Calc",
				"access": "public",
				"span": {"start": 100, "end": 160},
				"name_span": {"start": 110, "end": 114},
				"implements": ["ICalc"]
			}
		]
	}`
}

func quoteJSON(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func TestNameTooLong(t *testing.T) {
	long := strings.Repeat("A", 51)
	bag := runRules(t, markedInterfaceWithName(long))
	if countCode(bag, diag.NameTooLong) != 1 {
		t.Fatalf("want one NAM1001, got %v", codesOf(bag))
	}

	ok := strings.Repeat("A", 50)
	bag = runRules(t, markedInterfaceWithName(ok))
	if countCode(bag, diag.NameTooLong) != 0 {
		t.Fatalf("50-rune name flagged: %v", codesOf(bag))
	}
}

func TestNameLeadingDigit(t *testing.T) {
	bag := runRules(t, markedInterfaceWithName("1Calc"))
	if countCode(bag, diag.NameLeadingDigit) != 1 {
		t.Fatalf("want one NAM1002, got %v", codesOf(bag))
	}
}

func TestNameUnsupportedChars(t *testing.T) {
	bag := runRules(t, markedInterfaceWithName("My-Calc!"))
	d := findCode(t, bag, diag.NameUnsupportedChars)
	if !strings.Contains(d.Message, "-, !") {
		t.Fatalf("offending characters missing from message: %q", d.Message)
	}
}

func TestNameChecksDoNotShortCircuit(t *testing.T) {
	// Longer than the limit, starts with a digit, and carries a dash: all
	// three rules fire on the same name.
	name := "9" + strings.Repeat("x", 49) + "-tail"
	bag := runRules(t, markedInterfaceWithName(name))
	for _, code := range []diag.Code{diag.NameTooLong, diag.NameLeadingDigit, diag.NameUnsupportedChars} {
		if countCode(bag, code) != 1 {
			t.Fatalf("want one %s, got %v", code.ID(), codesOf(bag))
		}
	}
}

func TestUnsupportedCharsDedupPreservesOrder(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"clean_name_42", ""},
		{"a-b-c", "-"},
		{"a-b.c-d!", "-, ., !"},
		{"имя_поля", ""}, // any Unicode letter is fine
		{"x y", " "},
	}
	for _, tt := range tests {
		if got := unsupportedChars([]rune(tt.name)); got != tt.want {
			t.Fatalf("unsupportedChars(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestResolvedInterfaceName(t *testing.T) {
	d := &symbol.Decl{Name: "ICalc"}

	tests := []struct {
		name string
		ann  symbol.Annotation
		want string
	}{
		{"override wins", symbol.Annotation{NameOverride: "Calculator", OriginalName: "Legacy"}, "Calculator"},
		{"original name second", symbol.Annotation{OriginalName: "Legacy"}, "Legacy"},
		{"leading I stripped", symbol.Annotation{}, "Calc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolvedInterfaceName(d, tt.ann); got != tt.want {
				t.Fatalf("resolvedInterfaceName = %q, want %q", got, tt.want)
			}
		})
	}

	// Only a single leading I is stripped, and a name without the prefix is
	// used as-is.
	if got := resolvedInterfaceName(&symbol.Decl{Name: "IIndex"}, symbol.Annotation{}); got != "Index" {
		t.Fatalf("resolvedInterfaceName(IIndex) = %q", got)
	}
	if got := resolvedInterfaceName(&symbol.Decl{Name: "Calc"}, symbol.Annotation{}); got != "Calc" {
		t.Fatalf("resolvedInterfaceName(Calc) = %q", got)
	}
}
