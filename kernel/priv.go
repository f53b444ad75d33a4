package kernel

import "kcore-go/kerr"

// IsPrivileged reports whether a process may perform a uid-0-only
// operation (killing another process, registering the kernel event
// listener, mounting a filesystem). There is no capability set to
// narrow this by operation, only the single owner-0 bit the spec's
// data model defines.
func (p *Proc) IsPrivileged() bool {
	p.k.mu.Lock()
	defer p.k.mu.Unlock()
	return p.p.Owner == 0
}

// RequirePrivileged returns ErrPermission unless the caller is uid 0.
func (p *Proc) RequirePrivileged() error {
	if !p.IsPrivileged() {
		return kerr.ErrPermission
	}
	return nil
}
