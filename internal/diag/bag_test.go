package diag

import (
	"testing"

	"addinlint/internal/source"
)

func TestBagSortIsDeterministic(t *testing.T) {
	bag := NewBag(10)
	bag.Add(New(SevWarning, ClassStaticState, source.Span{File: 1, Start: 40, End: 50}, "later"))
	bag.Add(New(SevError, IfaceNotPublic, source.Span{File: 0, Start: 10, End: 20}, "earlier"))
	bag.Add(New(SevError, StructNotPublic, source.Span{File: 0, Start: 10, End: 20}, "same span"))

	bag.Sort()
	items := bag.Items()

	if items[0].Primary.File != 0 || items[2].Primary.File != 1 {
		t.Fatalf("sort did not order by file: %+v", items)
	}
	// Same span: ordered by code string (IFC before STR).
	if items[0].Code != IfaceNotPublic || items[1].Code != StructNotPublic {
		t.Fatalf("sort did not break ties by code: %v then %v", items[0].Code, items[1].Code)
	}
}

func TestBagDedup(t *testing.T) {
	bag := NewBag(10)
	d := New(SevError, ProgDuplicateName, source.Span{File: 0, Start: 5, End: 9}, "duplicate structure name 'Data'")
	bag.Add(d)
	bag.Add(d)
	bag.Add(New(SevError, ProgDuplicateName, source.Span{File: 0, Start: 5, End: 9}, "different message"))

	bag.Dedup()
	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics after dedup, got %d", bag.Len())
	}
}

func TestBagLimit(t *testing.T) {
	bag := NewBag(1)
	if !bag.Add(New(SevError, IfaceEmpty, source.Span{}, "first")) {
		t.Fatalf("first add must succeed")
	}
	if bag.Add(New(SevError, IfaceEmpty, source.Span{}, "second")) {
		t.Fatalf("second add must be rejected at capacity")
	}
}

func TestDedupReporterSuppressesRepeats(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})

	span := source.Span{File: 0, Start: 1, End: 2}
	r.Report(StructEmpty, SevError, span, "empty", nil, nil)
	r.Report(StructEmpty, SevError, span, "empty", nil, nil)
	r.Report(StructEmpty, SevError, span, "still empty", nil, nil)

	if bag.Len() != 2 {
		t.Fatalf("expected 2 unique diagnostics, got %d", bag.Len())
	}
}

func TestCodeIDStability(t *testing.T) {
	tests := []struct {
		code Code
		id   string
	}{
		{NameTooLong, "NAM1001"},
		{StructTypeMapping, "STR2005"},
		{IfaceNotPublic, "IFC3002"},
		{ClassStaticState, "CLS4003"},
		{MethodInputSizeLimit, "MTH5002"},
		{ProgManyInterfaces, "PRG6004"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.id {
			t.Fatalf("Code %d ID = %q, want %q", tt.code, got, tt.id)
		}
		back, ok := CodeByID(tt.id)
		if !ok || back != tt.code {
			t.Fatalf("CodeByID(%q) = %v, %v", tt.id, back, ok)
		}
	}
}
