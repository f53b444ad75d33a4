// Package shm implements the external shared-memory table the kernel
// core's four thin operations (alloc/map/unmap/ref) delegate to. The
// table tracks per-segment size and refcount and, per process, which
// segments are mapped at which simulated virtual address.
package shm

import "kcore-go/kerr"

// Segment is one shared-memory allocation.
type Segment struct {
	ID    int
	Size  int
	Flag  int
	refs  int
	owner int
}

// Table is the process-agnostic SHM table; the kernel core calls it
// scoped to "the current process" by always passing the caller's pid.
type Table struct {
	segments map[int]*Segment
	mapped   map[int]map[int]uintptr // pid -> segment id -> vaddr
	nextID   int
	nextAddr uintptr
}

// New creates an empty SHM table.
func New() *Table {
	return &Table{
		segments: make(map[int]*Segment),
		mapped:   make(map[int]map[int]uintptr),
		nextAddr: 0x40000000,
	}
}

// Alloc creates a new segment owned by pid and returns its id.
func (t *Table) Alloc(pid, size, flag int) int {
	t.nextID++
	id := t.nextID
	t.segments[id] = &Segment{ID: id, Size: size, Flag: flag, owner: pid}
	return id
}

// Map maps segment id into pid's address space and returns a simulated
// virtual address, incrementing the segment's refcount.
func (t *Table) Map(pid, id int) (uintptr, error) {
	seg, ok := t.segments[id]
	if !ok {
		return 0, kerr.ErrNoSuchSegment
	}
	if t.mapped[pid] == nil {
		t.mapped[pid] = make(map[int]uintptr)
	}
	if addr, already := t.mapped[pid][id]; already {
		return addr, nil
	}
	addr := t.nextAddr
	t.nextAddr += uintptr(alignUp(seg.Size, 4096))
	t.mapped[pid][id] = addr
	seg.refs++
	return addr, nil
}

// Unmap removes pid's mapping of segment id, decrementing its refcount.
// The segment itself is never freed here: the core exposes no explicit
// shm_free, matching the narrow four-operation interface in the spec.
func (t *Table) Unmap(pid, id int) error {
	seg, ok := t.segments[id]
	if !ok {
		return kerr.ErrNoSuchSegment
	}
	if m, ok := t.mapped[pid]; ok {
		if _, ok := m[id]; ok {
			delete(m, id)
			if seg.refs > 0 {
				seg.refs--
			}
		}
	}
	return nil
}

// Ref increments a segment's reference count without mapping it, used
// when a handle is passed between processes out-of-band (e.g. via IPC).
func (t *Table) Ref(id int) error {
	seg, ok := t.segments[id]
	if !ok {
		return kerr.ErrNoSuchSegment
	}
	seg.refs++
	return nil
}

// AllocedSize returns the total size of live segments, mirroring the
// external mm interface's shm_alloced_size accounting hook.
func (t *Table) AllocedSize() int {
	total := 0
	for _, seg := range t.segments {
		if seg.refs > 0 {
			total += seg.Size
		}
	}
	return total
}

func alignUp(size, align int) int {
	if size <= 0 {
		return align
	}
	return (size + align - 1) / align * align
}
