package vfs

import "kcore-go/kerr"

// FD is one open-file record in a process's descriptor table.
type FD struct {
	Node     Handle
	Cursor   int64
	Writable bool
	Ufid     uint64
}

// FDTableMax bounds the number of simultaneously open descriptors per
// process; generous enough that only a runaway leak trips it.
const FDTableMax = 256

// FDTable is one process's array of open-file records.
type FDTable struct {
	slots [FDTableMax]*FD
}

// NewFDTable returns an empty descriptor table.
func NewFDTable() *FDTable {
	return &FDTable{}
}

// Open allocates a fresh descriptor, incrementing the node's VFS
// refcount and assigning a fresh monotonic ufid.
func (t *FDTable) Open(v *VFS, node Handle, writable bool) (int, error) {
	for i := range t.slots {
		if t.slots[i] == nil {
			if err := v.Ref(node); err != nil {
				return -1, err
			}
			t.slots[i] = &FD{Node: node, Writable: writable, Ufid: v.NextUfid()}
			return i, nil
		}
	}
	return -1, kerr.ErrFDTableFull
}

// Close releases a descriptor, decrementing the underlying node's refs.
func (t *FDTable) Close(v *VFS, fd int) error {
	f, err := t.get(fd)
	if err != nil {
		return err
	}
	v.Unref(f.Node)
	t.slots[fd] = nil
	return nil
}

// Get returns the node handle and ufid for a descriptor.
func (t *FDTable) Get(fd int) (Handle, uint64, error) {
	f, err := t.get(fd)
	if err != nil {
		return nilHandle, 0, err
	}
	return f.Node, f.Ufid, nil
}

// Tell returns the current cursor of a descriptor.
func (t *FDTable) Tell(fd int) (int64, error) {
	f, err := t.get(fd)
	if err != nil {
		return 0, err
	}
	return f.Cursor, nil
}

// Seek sets the cursor of a descriptor.
func (t *FDTable) Seek(fd int, off int64) error {
	f, err := t.get(fd)
	if err != nil {
		return err
	}
	f.Cursor = off
	return nil
}

// Advance moves a descriptor's cursor forward by n (used after a
// successful read/write through the descriptor).
func (t *FDTable) Advance(fd int, n int64) error {
	f, err := t.get(fd)
	if err != nil {
		return err
	}
	f.Cursor += n
	return nil
}

// Dup allocates a new descriptor sharing the same node and cursor: per
// invariant 7, reads/writes via either descriptor advance the same
// cursor, so Dup shares the *FD record rather than copying it.
func (t *FDTable) Dup(v *VFS, fd int) (int, error) {
	f, err := t.get(fd)
	if err != nil {
		return -1, err
	}
	for i := range t.slots {
		if t.slots[i] == nil {
			if err := v.Ref(f.Node); err != nil {
				return -1, err
			}
			t.slots[i] = f
			return i, nil
		}
	}
	return -1, kerr.ErrFDTableFull
}

// Dup2 makes newfd an alias of fd (closing whatever newfd held first).
func (t *FDTable) Dup2(v *VFS, fd, newfd int) error {
	if newfd < 0 || newfd >= len(t.slots) {
		return kerr.ErrBadFD
	}
	f, err := t.get(fd)
	if err != nil {
		return err
	}
	if t.slots[newfd] != nil {
		v.Unref(t.slots[newfd].Node)
	}
	if err := v.Ref(f.Node); err != nil {
		return err
	}
	t.slots[newfd] = f
	return nil
}

func (t *FDTable) get(fd int) (*FD, error) {
	if fd < 0 || fd >= len(t.slots) || t.slots[fd] == nil {
		return nil, kerr.ErrBadFD
	}
	return t.slots[fd], nil
}

// CloseAll closes every open descriptor, used on process exit.
func (t *FDTable) CloseAll(v *VFS) {
	for i := range t.slots {
		if t.slots[i] != nil {
			v.Unref(t.slots[i].Node)
			t.slots[i] = nil
		}
	}
}
