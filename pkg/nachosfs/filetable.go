// file: pkg/nachosfs/filetable.go

package nachosfs

import "sync"

// Node is the process-wide, per-header-sector record coordinating
// multi-reader / single-writer access and open-handle reference counting
// for one file.
type Node struct {
	mu     sync.Mutex // guards users and remove
	sector int
	users  int
	remove bool

	readers  int
	canRead  semaphore // mutex protecting readers
	canWrite semaphore // writer-exclusion
}

func newNode(sector int) *Node {
	return &Node{
		sector:   sector,
		canRead:  newSemaphore(1),
		canWrite: newSemaphore(1),
	}
}

// acquireReader implements the reader-entry protocol:
// canRead.P(); readers++; if readers==1 { canWrite.P() }; canRead.V().
func (n *Node) acquireReader() {
	n.canRead.P()
	n.readers++
	if n.readers == 1 {
		n.canWrite.P()
	}
	n.canRead.V()
}

// releaseReader is the symmetric reader-exit protocol.
func (n *Node) releaseReader() {
	n.canRead.P()
	n.readers--
	if n.readers == 0 {
		n.canWrite.V()
	}
	n.canRead.V()
}

func (n *Node) acquireWriter() {
	n.canWrite.P()
}

func (n *Node) releaseWriter() {
	n.canWrite.V()
}

// Table is the process-wide open-file table, keyed by header sector.
type Table struct {
	mu    sync.Mutex
	nodes map[int]*Node
}

// NewTable returns an empty open-file table.
func NewTable() *Table {
	return &Table{nodes: make(map[int]*Node)}
}

// find returns the node for sector, or nil if none is open.
func (t *Table) find(sector int) *Node {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.nodes[sector]
}

// addFile returns the existing node for sector if one is open, or
// creates, registers and returns a new one. The name parameter matches
// a fixed add_file(name, sector) signature; it is accepted for
// debugging symmetry and is not otherwise interpreted since Node keys
// purely on sector.
func (t *Table) addFile(name string, sector int) *Node {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n, ok := t.nodes[sector]; ok {
		return n
	}
	n := newNode(sector)
	t.nodes[sector] = n
	return n
}

// remove drops the node for sector from the table.
func (t *Table) remove(sector int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.nodes, sector)
}
