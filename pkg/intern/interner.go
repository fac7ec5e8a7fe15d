// Package intern provides bidirectional string-to-dense-integer interning.
//
// An Interner normalizes the opaque external string IDs a host process uses
// (node IDs, arrow/columnar UUIDs, whatever an upstream store hands us) into
// compact dense integers suitable for array-indexed adjacency storage. A
// TypeInterner does the same for edge-type labels, but over a narrower
// domain since the number of distinct edge types in a property graph is
// small and bounded.
package intern

import (
	"errors"
	"sync"
)

// ErrTooManyEdgeTypes is returned by TypeInterner.Intern once more than 256
// distinct edge-type labels have been requested; the type domain is a uint8.
var ErrTooManyEdgeTypes = errors.New("intern: more than 256 distinct edge types")

// Interner is a thread-safe bidirectional map between external string IDs
// and dense uint32 indices. The zero value is not usable; use New.
//
// Intern assigns the smallest unused index on first sight of a string and
// is idempotent thereafter. Indices are never reused or reassigned, so a
// previously interned string always resolves to the same index for the
// life of the Interner.
type Interner struct {
	mu     sync.RWMutex
	byName map[string]uint32
	byID   []string
}

// New creates an empty Interner.
func New() *Interner {
	return &Interner{
		byName: make(map[string]uint32),
	}
}

// Intern returns the dense id for name, assigning a new one if name has not
// been seen before. O(1) average.
func (in *Interner) Intern(name string) uint32 {
	in.mu.Lock()
	defer in.mu.Unlock()

	if id, ok := in.byName[name]; ok {
		return id
	}

	id := uint32(len(in.byID))
	in.byID = append(in.byID, name)
	in.byName[name] = id
	return id
}

// Lookup returns the original string for id, or ("", false) if id was never
// assigned.
func (in *Interner) Lookup(id uint32) (string, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()

	if int(id) >= len(in.byID) {
		return "", false
	}
	return in.byID[id], true
}

// LookupID returns the id for name without interning it. A non-mutating
// query.
func (in *Interner) LookupID(name string) (uint32, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()

	id, ok := in.byName[name]
	return id, ok
}

// Len reports the number of distinct strings interned so far.
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()

	return len(in.byID)
}

// NewFromOrdered rebuilds an Interner from a slice where index i is the
// string previously assigned dense id i, as produced by a snapshot. The
// result assigns the same ids Intern would have assigned had the strings
// been interned in this order originally.
func NewFromOrdered(names []string) *Interner {
	in := &Interner{
		byName: make(map[string]uint32, len(names)),
		byID:   append([]string(nil), names...),
	}
	for i, name := range names {
		in.byName[name] = uint32(i)
	}
	return in
}

// TypeInterner is an Interner restricted to a uint8 domain, used for edge
// type labels. Past 256 distinct labels, Intern fails with
// ErrTooManyEdgeTypes rather than wrapping.
type TypeInterner struct {
	mu     sync.RWMutex
	byName map[string]uint8
	byID   []string
}

// NewType creates an empty TypeInterner.
func NewType() *TypeInterner {
	return &TypeInterner{
		byName: make(map[string]uint8),
	}
}

// Intern returns the dense id for name, assigning a new one if unseen.
// Returns ErrTooManyEdgeTypes if this would be the 257th distinct label.
func (t *TypeInterner) Intern(name string) (uint8, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if id, ok := t.byName[name]; ok {
		return id, nil
	}

	if len(t.byID) >= 256 {
		return 0, ErrTooManyEdgeTypes
	}

	id := uint8(len(t.byID))
	t.byID = append(t.byID, name)
	t.byName[name] = id
	return id, nil
}

// Lookup returns the original label for id, or ("", false) if unassigned.
func (t *TypeInterner) Lookup(id uint8) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if int(id) >= len(t.byID) {
		return "", false
	}
	return t.byID[id], true
}

// LookupID returns the id for name without interning it.
func (t *TypeInterner) LookupID(name string) (uint8, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	id, ok := t.byName[name]
	return id, ok
}

// Len reports the number of distinct edge-type labels interned so far.
func (t *TypeInterner) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.byID)
}

// NewTypeFromOrdered rebuilds a TypeInterner from a slice where index i is
// the label previously assigned dense id i, as produced by a snapshot.
func NewTypeFromOrdered(labels []string) *TypeInterner {
	t := &TypeInterner{
		byName: make(map[string]uint8, len(labels)),
		byID:   append([]string(nil), labels...),
	}
	for i, label := range labels {
		t.byName[label] = uint8(i)
	}
	return t
}
