// Package vfs implements the kernel's node graph: a tree of named nodes
// with reference counting, mount-point overlay redirection, and the
// per-process file-descriptor table that maps descriptors to nodes.
//
// Per the spec's design notes on opaque handles, a node is addressed
// externally by a Handle (an arena index packed with a generation
// counter) so that a stale handle to a freed node is detectable instead
// of silently aliasing whatever node is later allocated at that slot —
// the ABI still only ever carries this one machine word.
package vfs

import "kcore-go/kerr"

// NodeType classifies a VFS node.
type NodeType int

const (
	TypeDir NodeType = iota
	TypeFile
	TypeDev
	TypePipe
	TypeMountPoint
)

// Handle is an opaque, ABI-stable reference to a node: index in the low
// 32 bits, generation in the high 32 bits.
type Handle uint64

const nilHandle Handle = 0

func makeHandle(index, generation uint32) Handle {
	return Handle(uint64(generation)<<32 | uint64(index))
}

func (h Handle) index() uint32      { return uint32(h) }
func (h Handle) generation() uint32 { return uint32(h >> 32) }

// FSInfo is the user-visible record describing a node: everything a
// filesystem server needs without touching kernel-internal tree links.
// Node is a *weak* back-pointer — valid only until the node is freed.
type FSInfo struct {
	Type    NodeType
	Size    int64
	Name    string
	Node    Handle
	MountID int
	Data    any
}

// node is the kernel-internal record; never exposed directly.
type node struct {
	generation uint32
	live       bool

	name     string
	typ      NodeType
	fsinfo   FSInfo
	parent   Handle
	children []Handle
	refs     int

	mount *mountInfo
}

type mountInfo struct {
	overlay   Handle
	underlay  Handle
	ownerPid  int
	mountID   int
}

// VFS is the kernel-wide node graph.
type VFS struct {
	arena       []node
	root        Handle
	nextMountID int
	nextUfid    uint64
}

// New creates a VFS with a single root directory node.
func New() *VFS {
	v := &VFS{arena: make([]node, 1)} // index 0 reserved as nilHandle sentinel
	v.root = v.alloc("/", TypeDir)
	return v
}

// Root returns the handle of the root directory.
func (v *VFS) Root() Handle { return v.root }

func (v *VFS) alloc(name string, typ NodeType) Handle {
	for i := range v.arena {
		if i == 0 {
			continue
		}
		if !v.arena[i].live {
			v.arena[i].generation++
			v.arena[i].live = true
			v.arena[i].name = name
			v.arena[i].typ = typ
			v.arena[i].fsinfo = FSInfo{}
			v.arena[i].parent = nilHandle
			v.arena[i].children = nil
			v.arena[i].refs = 0
			v.arena[i].mount = nil
			h := makeHandle(uint32(i), v.arena[i].generation)
			v.arena[i].fsinfo = FSInfo{Type: typ, Name: name, Node: h}
			return h
		}
	}
	v.arena = append(v.arena, node{generation: 1, live: true, name: name, typ: typ})
	idx := uint32(len(v.arena) - 1)
	h := makeHandle(idx, 1)
	v.arena[idx].fsinfo = FSInfo{Type: typ, Name: name, Node: h}
	return h
}

func (v *VFS) resolve(h Handle) *node {
	if h == nilHandle {
		return nil
	}
	idx := h.index()
	if int(idx) >= len(v.arena) {
		return nil
	}
	n := &v.arena[idx]
	if !n.live || n.generation != h.generation() {
		return nil
	}
	return n
}

// NewNode allocates a fresh, parentless node of the given type and name.
func (v *VFS) NewNode(name string, typ NodeType) Handle {
	return v.alloc(name, typ)
}

// Add attaches child under parent. If a child with the same name already
// exists, Add is a no-op and returns that existing child's handle.
func (v *VFS) Add(parent, child Handle) (Handle, error) {
	p := v.resolve(parent)
	c := v.resolve(child)
	if p == nil || c == nil {
		return nilHandle, kerr.ErrNoSuchNode
	}
	for _, existingH := range p.children {
		existing := v.resolve(existingH)
		if existing != nil && existing.name == c.name {
			return existingH, nil
		}
	}
	p.children = append(p.children, child)
	c.parent = parent
	p.refs++ // the parent counts its children, per the refs accounting invariant
	return child, nil
}

// Del removes a node from its parent's child list. Rejected while the
// node still has live references (open fds or further children).
func (v *VFS) Del(h Handle) error {
	n := v.resolve(h)
	if n == nil {
		return kerr.ErrNoSuchNode
	}
	if n.refs > 0 {
		return kerr.ErrNodeHasRefs
	}
	if p := v.resolve(n.parent); p != nil {
		for i, ch := range p.children {
			if ch == h {
				p.children = append(p.children[:i], p.children[i+1:]...)
				if p.refs > 0 {
					p.refs--
				}
				break
			}
		}
	}
	n.live = false
	return nil
}

// Kids returns the children of a node, resolving through a mount overlay
// if one is installed.
func (v *VFS) Kids(h Handle) ([]Handle, error) {
	n := v.resolve(h)
	if n == nil {
		return nil, kerr.ErrNoSuchNode
	}
	if n.mount != nil {
		return v.Kids(n.mount.overlay)
	}
	out := make([]Handle, len(n.children))
	copy(out, n.children)
	return out, nil
}

// Get walks path components from root, transparently descending into
// mount overlays exactly as real traversal would.
func (v *VFS) Get(root Handle, path []string) (Handle, error) {
	cur := root
	for _, part := range path {
		if part == "" {
			continue
		}
		n := v.resolve(cur)
		if n == nil {
			return nilHandle, kerr.ErrNoSuchNode
		}
		if n.mount != nil {
			cur = n.mount.overlay
			n = v.resolve(cur)
			if n == nil {
				return nilHandle, kerr.ErrNoSuchNode
			}
		}
		found := nilHandle
		for _, ch := range n.children {
			cn := v.resolve(ch)
			if cn != nil && cn.name == part {
				found = ch
				break
			}
		}
		if found == nilHandle {
			return nilHandle, kerr.ErrNoSuchNode
		}
		cur = found
	}
	if n := v.resolve(cur); n != nil && n.mount != nil {
		cur = n.mount.overlay
	}
	return cur, nil
}

// Set replaces a node's user-visible fsinfo payload, preserving its
// identity (Type/Name/Node fields are kept authoritative by the VFS).
func (v *VFS) Set(h Handle, data any, size int64) error {
	n := v.resolve(h)
	if n == nil {
		return kerr.ErrNoSuchNode
	}
	n.fsinfo.Data = data
	n.fsinfo.Size = size
	return nil
}

// FSInfo returns a copy of a node's fsinfo.
func (v *VFS) FSInfo(h Handle) (FSInfo, error) {
	n := v.resolve(h)
	if n == nil {
		return FSInfo{}, kerr.ErrNoSuchNode
	}
	fi := n.fsinfo
	if n.mount != nil {
		fi.MountID = n.mount.mountID
	}
	return fi, nil
}

// Mount redirects traversal at `at` into the overlay subtree, remembering
// the owning filesystem server's pid and a fresh mount id.
func (v *VFS) Mount(at, overlay Handle, ownerPid int) (int, error) {
	n := v.resolve(at)
	o := v.resolve(overlay)
	if n == nil || o == nil {
		return 0, kerr.ErrNoSuchNode
	}
	if n.mount != nil {
		return 0, kerr.ErrAlreadyMount
	}
	n.typ = TypeMountPoint
	v.nextMountID++
	n.mount = &mountInfo{overlay: overlay, underlay: at, ownerPid: ownerPid, mountID: v.nextMountID}
	return v.nextMountID, nil
}

// Umount restores the node that was overlaid by a prior Mount.
func (v *VFS) Umount(at Handle) error {
	n := v.resolve(at)
	if n == nil {
		return kerr.ErrNoSuchNode
	}
	if n.mount == nil {
		return kerr.ErrNotMounted
	}
	n.mount = nil
	n.typ = TypeDir
	return nil
}

// MountInfo describes a mount for cross-mount dispatch.
type MountInfo struct {
	OwnerPid int
	MountID  int
	Overlay  Handle
}

// GetMount reports the mount installed at a node, if any.
func (v *VFS) GetMount(h Handle) (MountInfo, bool) {
	n := v.resolve(h)
	if n == nil || n.mount == nil {
		return MountInfo{}, false
	}
	return MountInfo{OwnerPid: n.mount.ownerPid, MountID: n.mount.mountID, Overlay: n.mount.overlay}, true
}

// GetMountByID finds a mount by its id, scanning the live arena. Mount
// counts are small in practice (one per filesystem server), so a linear
// scan needs no secondary index.
func (v *VFS) GetMountByID(id int) (Handle, MountInfo, bool) {
	for i := range v.arena {
		if v.arena[i].live && v.arena[i].mount != nil && v.arena[i].mount.mountID == id {
			h := makeHandle(uint32(i), v.arena[i].generation)
			mi := MountInfo{OwnerPid: v.arena[i].mount.ownerPid, MountID: id, Overlay: v.arena[i].mount.overlay}
			return h, mi, true
		}
	}
	return nilHandle, MountInfo{}, false
}

// Ref and Unref adjust a node's open-reference count; used by the FD
// table on open/close/dup so the refs invariant in §8 holds without the
// FD table needing access to VFS internals.
func (v *VFS) Ref(h Handle) error {
	n := v.resolve(h)
	if n == nil {
		return kerr.ErrNoSuchNode
	}
	n.refs++
	return nil
}

func (v *VFS) Unref(h Handle) error {
	n := v.resolve(h)
	if n == nil {
		return kerr.ErrNoSuchNode
	}
	if n.refs > 0 {
		n.refs--
	}
	return nil
}

// Refs reports a node's current reference count, for invariant testing.
func (v *VFS) Refs(h Handle) (int, error) {
	n := v.resolve(h)
	if n == nil {
		return 0, kerr.ErrNoSuchNode
	}
	return n.refs, nil
}

// NextUfid returns a fresh, monotonically increasing unique-open id.
func (v *VFS) NextUfid() uint64 {
	v.nextUfid++
	return v.nextUfid
}

// Valid reports whether a handle still resolves to a live node.
func (v *VFS) Valid(h Handle) bool {
	return v.resolve(h) != nil
}
