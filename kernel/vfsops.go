package kernel

import (
	"strings"

	"kcore-go/kerr"
	"kcore-go/vfs"
)

// VFSGet resolves a slash-separated path from the VFS root.
func (p *Proc) VFSGet(path string) (vfs.Handle, error) {
	parts := splitPath(path)
	return p.k.VFS.Get(p.k.VFS.Root(), parts)
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// VFSKids lists a node's children.
func (p *Proc) VFSKids(h vfs.Handle) ([]vfs.Handle, error) {
	return p.k.VFS.Kids(h)
}

// VFSSet replaces a node's payload.
func (p *Proc) VFSSet(h vfs.Handle, data any, size int64) error {
	return p.k.VFS.Set(h, data, size)
}

// VFSAdd attaches a node under a parent.
func (p *Proc) VFSAdd(parent, child vfs.Handle) (vfs.Handle, error) {
	return p.k.VFS.Add(parent, child)
}

// VFSDel detaches a node, rejected while it has live references.
func (p *Proc) VFSDel(h vfs.Handle) error {
	return p.k.VFS.Del(h)
}

// VFSNewNode allocates a fresh, unattached node.
func (p *Proc) VFSNewNode(name string, typ vfs.NodeType) vfs.Handle {
	return p.k.VFS.NewNode(name, typ)
}

// VFSFSInfo returns a node's fsinfo.
func (p *Proc) VFSFSInfo(h vfs.Handle) (vfs.FSInfo, error) {
	return p.k.VFS.FSInfo(h)
}

// VFSMount overlays `at` with `overlay`, recording this process as the
// owning filesystem server.
func (p *Proc) VFSMount(at, overlay vfs.Handle) (int, error) {
	return p.k.VFS.Mount(at, overlay, p.p.Pid)
}

// VFSUmount restores the node overlaid by a prior VFSMount.
func (p *Proc) VFSUmount(at vfs.Handle) error {
	return p.k.VFS.Umount(at)
}

// VFSGetMount reports the mount installed at a node.
func (p *Proc) VFSGetMount(h vfs.Handle) (vfs.MountInfo, bool) {
	return p.k.VFS.GetMount(h)
}

// VFSGetMountByID finds a mount by id.
func (p *Proc) VFSGetMountByID(id int) (vfs.Handle, vfs.MountInfo, bool) {
	return p.k.VFS.GetMountByID(id)
}

// VFSOpen opens a node into this process's fd table, returning the new fd.
func (p *Proc) VFSOpen(h vfs.Handle, writable bool) (int, error) {
	return p.p.Space.FDs.Open(p.k.VFS, h, writable)
}

// VFSClose closes a descriptor in this process's fd table.
func (p *Proc) VFSClose(fd int) error {
	return p.p.Space.FDs.Close(p.k.VFS, fd)
}

// VFSSeek and VFSTell manage a descriptor's cursor.
func (p *Proc) VFSSeek(fd int, off int64) error {
	return p.p.Space.FDs.Seek(fd, off)
}

func (p *Proc) VFSTell(fd int) (int64, error) {
	return p.p.Space.FDs.Tell(fd)
}

// VFSGetByFD resolves a descriptor to its node handle, for the caller's
// own process (VFS_PROC_GET_BY_FD).
func (p *Proc) VFSGetByFD(fd int) (vfs.Handle, error) {
	h, _, err := p.p.Space.FDs.Get(fd)
	if err != nil {
		return 0, err
	}
	return h, nil
}

// VFSGetByFDForPid resolves a descriptor in another process's fd table,
// returning both the node handle and its ufid (VFS_GET_BY_FD's
// `get_by_fd(fd, proc) -> (node, ufid)` signature): a filesystem server
// uses this to identify which of its own nodes a caller's fd names and
// to disambiguate that caller's particular open. Only a privileged
// caller may inspect another process's fd table, matching
// sys_vfs_get_by_fd's "if(... || _current_proc->owner != 0) return ufid;"
// (which returns the zero ufid for any non-owner-0 caller).
func (p *Proc) VFSGetByFDForPid(targetPid, fd int) (vfs.Handle, uint64, error) {
	if err := p.RequirePrivileged(); err != nil {
		return 0, 0, err
	}
	k := p.k
	k.mu.Lock()
	target, ok := k.procs[targetPid]
	k.mu.Unlock()
	if !ok {
		return 0, 0, errNoSuchProcessForFD
	}
	return target.Space.FDs.Get(fd)
}

// VFSDup duplicates a descriptor, sharing its cursor.
func (p *Proc) VFSDup(fd int) (int, error) {
	return p.p.Space.FDs.Dup(p.k.VFS, fd)
}

// VFSDup2 makes newfd an alias of fd.
func (p *Proc) VFSDup2(fd, newfd int) error {
	return p.p.Space.FDs.Dup2(p.k.VFS, fd, newfd)
}

var errNoSuchProcessForFD = kerr.ErrNoSuchProcess
