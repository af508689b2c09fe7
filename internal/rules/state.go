package rules

import (
	"sync"

	"addinlint/internal/symbol"
)

// InterfaceEntry is one recorded sighting of a marked add-in interface.
type InterfaceEntry struct {
	Name string
	Decl *symbol.Decl
}

// InterfaceRegistry aggregates marked-interface sightings across the
// parallel per-declaration phase. Record is first-write-wins so re-running
// an analyzer over the same declaration cannot change the aggregate; the
// end-of-program pass reads Entries only after the fan-out barrier.
type InterfaceRegistry struct {
	mu      sync.Mutex
	entries map[string]InterfaceEntry
}

func NewInterfaceRegistry() *InterfaceRegistry {
	return &InterfaceRegistry{entries: make(map[string]InterfaceEntry)}
}

// Record stores a sighting keyed by interface name. It returns true when the
// name was seen for the first time.
func (reg *InterfaceRegistry) Record(name string, d *symbol.Decl) bool {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if _, ok := reg.entries[name]; ok {
		return false
	}
	reg.entries[name] = InterfaceEntry{Name: name, Decl: d}
	return true
}

// Entries returns a copy of the recorded sightings in unspecified order.
func (reg *InterfaceRegistry) Entries() []InterfaceEntry {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	out := make([]InterfaceEntry, 0, len(reg.entries))
	for _, e := range reg.entries {
		out = append(out, e)
	}
	return out
}

func (reg *InterfaceRegistry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.entries)
}
