package rules

import (
	"fmt"
	"sync"
	"testing"

	"addinlint/internal/symbol"
)

func TestRegistryFirstWriteWins(t *testing.T) {
	reg := NewInterfaceRegistry()
	first := &symbol.Decl{Kind: symbol.DeclInterface, Name: "ICalc"}
	second := &symbol.Decl{Kind: symbol.DeclInterface, Name: "ICalc"}

	if !reg.Record("ICalc", first) {
		t.Fatalf("first record rejected")
	}
	if reg.Record("ICalc", second) {
		t.Fatalf("second record accepted")
	}

	entries := reg.Entries()
	if len(entries) != 1 || entries[0].Decl != first {
		t.Fatalf("registry kept the wrong declaration: %+v", entries)
	}
}

func TestRegistryConcurrentRecord(t *testing.T) {
	reg := NewInterfaceRegistry()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				name := fmt.Sprintf("IFace%d", i%10)
				reg.Record(name, &symbol.Decl{Kind: symbol.DeclInterface, Name: name})
			}
		}()
	}
	wg.Wait()

	if reg.Len() != 10 {
		t.Fatalf("Len = %d, want 10", reg.Len())
	}
}

func TestRegistryEntriesIsACopy(t *testing.T) {
	reg := NewInterfaceRegistry()
	reg.Record("ICalc", &symbol.Decl{Name: "ICalc"})

	entries := reg.Entries()
	entries[0] = InterfaceEntry{}

	if got := reg.Entries(); len(got) != 1 || got[0].Name != "ICalc" {
		t.Fatalf("mutation leaked into the registry: %+v", got)
	}
}
