package kevent

import "kcore-go/kerr"

// Usint is the user-space-interrupt registry: PROC_USINT_REGISTER binds
// an interrupt id to the calling pid, so a later hardware or software
// event can be routed straight to whichever process owns that id.
type Usint struct {
	owners map[int]int // interrupt id -> pid
}

// NewUsint returns an empty registry.
func NewUsint() *Usint {
	return &Usint{owners: make(map[int]int)}
}

// Register binds id to pid, replacing any previous owner.
func (u *Usint) Register(id, pid int) {
	u.owners[id] = pid
}

// Unregister removes id's binding, if any.
func (u *Usint) Unregister(id int) {
	delete(u.owners, id)
}

// PidFor returns the pid registered for an interrupt id.
func (u *Usint) PidFor(id int) (int, error) {
	pid, ok := u.owners[id]
	if !ok {
		return 0, kerr.ErrNoSuchProcess
	}
	return pid, nil
}
