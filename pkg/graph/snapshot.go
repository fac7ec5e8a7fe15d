package graph

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quackgraph/quackgraph/pkg/intern"
)

// snapshotVersion is bumped whenever the on-disk schema changes in a way
// that is not backward compatible. Save stamps every file with it; Load
// rejects anything else with ErrSnapshotVersionMismatch.
const snapshotVersion = 1

// snapshotFile is the single-file on-disk representation of an Index: both
// interners' dense-id assignments, every node's tombstone flag, and every
// adjacency record, keyed by node id rather than external name so the
// interner round-trips exactly (dense ids are reassigned on Load in the
// same order they appear in Nodes/Types, which is the order they were
// originally interned).
type snapshotFile struct {
	Version int      `json:"version"`
	Nodes   []string `json:"nodes"` // index i is external id of dense node i
	Types   []string `json:"types"` // index i is label of dense edge-type i
	Deleted []bool   `json:"deleted"`
	Out     [][]EdgeRecord `json:"out"` // Out[i] is node i's outgoing records
	In      [][]EdgeRecord `json:"in"`  // In[i] is node i's incoming records
}

// SaveSnapshot serializes the full state of the index to a single file at path,
// writing to a temporary sibling file first and renaming it into place so
// a reader never observes a partially-written snapshot, grounded on the
// same atomic-write-then-rename discipline used for journaled storage
// engines.
func (g *Index) SaveSnapshot(path string) error {
	g.mu.RLock()
	snap := g.toSnapshotLocked()
	g.mu.RUnlock()

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("%w: marshal snapshot: %v", ErrIO, err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", ErrIO, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: write temp file: %v", ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: close temp file: %v", ErrIO, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: rename into place: %v", ErrIO, err)
	}

	return nil
}

// LoadSnapshot replaces the index's entire state with the contents of the snapshot
// at path. It is a writer operation requiring exclusive access, same as
// Compact. Returns ErrSnapshotVersionMismatch if the file's version does
// not match the version this build writes, ErrIO on any filesystem
// failure, and ErrDecode on a malformed file.
func (g *Index) LoadSnapshot(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: read snapshot: %v", ErrIO, err)
	}

	var snap snapshotFile
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("%w: unmarshal snapshot: %v", ErrDecode, err)
	}
	if snap.Version != snapshotVersion {
		return fmt.Errorf("%w: file is version %d, this build reads version %d",
			ErrSnapshotVersionMismatch, snap.Version, snapshotVersion)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.loadFromSnapshotLocked(snap)
	return nil
}

// toSnapshotLocked builds a snapshotFile from the current state. Caller
// must hold at least a read lock.
func (g *Index) toSnapshotLocked() snapshotFile {
	n := len(g.adj)

	snap := snapshotFile{
		Version: snapshotVersion,
		Nodes:   make([]string, g.nodes.Len()),
		Types:   make([]string, g.types.Len()),
		Deleted: make([]bool, n),
		Out:     make([][]EdgeRecord, n),
		In:      make([][]EdgeRecord, n),
	}

	for i := range snap.Nodes {
		name, _ := g.nodes.Lookup(uint32(i))
		snap.Nodes[i] = name
	}
	for i := range snap.Types {
		name, _ := g.types.Lookup(uint8(i))
		snap.Types[i] = name
	}
	copy(snap.Deleted, g.deleted)
	for i := 0; i < n; i++ {
		snap.Out[i] = g.adj[i].Out
		snap.In[i] = g.adj[i].In
	}

	return snap
}

// loadFromSnapshotLocked overwrites g's state from snap. Caller must hold
// the write lock. The interners are rebuilt with NewFromOrdered/
// NewTypeFromOrdered, which give each name its position in Nodes/Types as
// its dense id; that reproduces the original assignment exactly since
// Intern always hands out the next sequential id.
func (g *Index) loadFromSnapshotLocked(snap snapshotFile) {
	nodes := intern.NewFromOrdered(snap.Nodes)
	types := intern.NewTypeFromOrdered(snap.Types)

	n := len(snap.Deleted)
	adj := make([]adjacency, n)
	for i := 0; i < n; i++ {
		if i < len(snap.Out) {
			adj[i].Out = snap.Out[i]
		}
		if i < len(snap.In) {
			adj[i].In = snap.In[i]
		}
	}

	g.nodes = nodes
	g.types = types
	g.deleted = append([]bool(nil), snap.Deleted...)
	g.adj = adj
}
