package host

import (
	"sync"

	"github.com/wippyai/structpack"
)

// Handle identifies a descriptor held by a Table. Handles are 1-based;
// zero is never valid.
type Handle uint32

// Table is an in-memory descriptor handle table with free-slot reuse.
type Table struct {
	entries  []tableEntry
	freeList []Handle
	mu       sync.RWMutex
	closed   bool
}

type tableEntry struct {
	desc  *structpack.Descriptor
	valid bool
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		entries:  make([]tableEntry, 0, 16),
		freeList: make([]Handle, 0, 8),
	}
}

// Insert stores a descriptor and returns its handle, or 0 if the table is
// closed.
func (t *Table) Insert(d *structpack.Descriptor) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return 0
	}

	e := tableEntry{desc: d, valid: true}

	if len(t.freeList) > 0 {
		handle := t.freeList[len(t.freeList)-1]
		t.freeList = t.freeList[:len(t.freeList)-1]
		t.entries[handle-1] = e
		return handle
	}

	t.entries = append(t.entries, e)
	return Handle(len(t.entries))
}

// Get retrieves a descriptor by handle.
func (t *Table) Get(handle Handle) (*structpack.Descriptor, bool) {
	if handle == 0 {
		return nil, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	idx := handle - 1
	if int(idx) >= len(t.entries) {
		return nil, false
	}

	e := t.entries[idx]
	if !e.valid {
		return nil, false
	}
	return e.desc, true
}

// Remove releases a handle and recycles its slot. It reports whether the
// handle was live.
func (t *Table) Remove(handle Handle) bool {
	if handle == 0 {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	idx := handle - 1
	if int(idx) >= len(t.entries) {
		return false
	}

	e := &t.entries[idx]
	if !e.valid {
		return false
	}

	e.valid = false
	e.desc = nil
	t.freeList = append(t.freeList, handle)
	return true
}

// Len returns the number of live descriptors.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	count := 0
	for _, e := range t.entries {
		if e.valid {
			count++
		}
	}
	return count
}

// Close releases all descriptors. Subsequent Inserts return 0.
func (t *Table) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}
	t.closed = true
	t.entries = nil
	t.freeList = nil
}
