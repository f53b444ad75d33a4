// Package lock implements the kernel's numbered blocking locks: a small
// per-address-space array of kernel-allocated words that user code
// acquires and releases by slot index instead of by pointer.
//
// The table never blocks a caller itself — Lock reports whether the slot
// was free and, if not, the opaque wait token the caller should block on
// (the scheduler performs the actual suspension). This keeps lock free of
// any dependency on the scheduler, mirroring the layering in the kernel's
// dependency graph (L4 sits below L2's block/wake primitive).
package lock

import (
	"unsafe"

	"kcore-go/kerr"
)

// word is the kernel-allocated cell a lock slot holds: 0 free, 1 held.
type word struct {
	held bool
}

// Table is the LOCK_MAX-sized lock array of one address space.
type Table struct {
	slots [cap_]*word
}

// cap_ mirrors kernel.LockMax without importing the kernel package (lock
// sits below kernel in the dependency graph and must not import it back).
const cap_ = 32

// New allocates a fresh, empty lock table.
func New() *Table {
	return &Table{}
}

// NewSlot reserves a free slot and returns its index.
func (t *Table) NewSlot() (int, error) {
	for i := range t.slots {
		if t.slots[i] == nil {
			t.slots[i] = &word{}
			return i, nil
		}
	}
	return -1, kerr.ErrLockTableFull
}

// Free releases a slot back to the table. Per the documented sharp edge,
// nothing calls this automatically on process exit.
func (t *Table) Free(slot int) error {
	if !t.valid(slot) {
		return kerr.ErrBadLockSlot
	}
	t.slots[slot] = nil
	return nil
}

// Token returns the opaque wait token for a slot: the address of the
// kernel-held word, exactly as the spec's glossary describes a wait
// token ("typically the address of the object waited on").
func (t *Table) Token(slot int) (uintptr, error) {
	if !t.valid(slot) || t.slots[slot] == nil {
		return 0, kerr.ErrBadLockSlot
	}
	return uintptr(unsafe.Pointer(t.slots[slot])), nil
}

// Lock attempts to acquire the lock. ok=true means acquired; ok=false
// means the caller must block on the returned token and retry.
func (t *Table) Lock(slot int) (ok bool, token uintptr, err error) {
	if !t.valid(slot) || t.slots[slot] == nil {
		return false, 0, kerr.ErrBadLockSlot
	}
	w := t.slots[slot]
	token = uintptr(unsafe.Pointer(w))
	if w.held {
		return false, token, nil
	}
	w.held = true
	return true, token, nil
}

// Unlock releases the lock and returns the token so the caller can wake
// every process blocked on it. Unlock on an already-free lock is
// idempotent, matching "unlock sets the word to 0" in the source.
func (t *Table) Unlock(slot int) (token uintptr, err error) {
	if !t.valid(slot) || t.slots[slot] == nil {
		return 0, kerr.ErrBadLockSlot
	}
	w := t.slots[slot]
	w.held = false
	return uintptr(unsafe.Pointer(w)), nil
}

func (t *Table) valid(slot int) bool {
	return slot >= 0 && slot < len(t.slots)
}
