package kernel

import "kcore-go/kerr"

// heap is a process's simulated private mapping: MALLOC/FREE at this
// level of fidelity only need to hand out distinct, non-overlapping
// addresses and reject double-frees, since there is no real MMU behind
// them (see spec.md §6's narrow mm interface and SPEC_FULL.md's
// Non-goals around demand paging).
type heap struct {
	next  uintptr
	freed map[uintptr]bool
}

func newHeap() *heap {
	return &heap{next: 0x01000000, freed: make(map[uintptr]bool)}
}

// Malloc implements MALLOC: proc_malloc in the target process's own
// simulated heap, returning a fresh address.
func (p *Proc) Malloc(size int) uintptr {
	k := p.k
	k.mu.Lock()
	defer k.mu.Unlock()
	if p.p.Space.heap == nil {
		p.p.Space.heap = newHeap()
	}
	h := p.p.Space.heap
	addr := h.next
	h.next += uintptr(alignUp(size, 16))
	h.freed[addr] = false // handed out and live
	return addr
}

// Free implements FREE: proc_free, rejecting an address never handed
// out by Malloc or already freed.
func (p *Proc) Free(addr uintptr) error {
	k := p.k
	k.mu.Lock()
	defer k.mu.Unlock()
	h := p.p.Space.heap
	if h == nil {
		return kerr.New(kerr.KindNotFound, "free", "address not live")
	}
	if wasFreed, handedOut := h.freed[addr]; !handedOut || wasFreed {
		return kerr.New(kerr.KindNotFound, "free", "address not live")
	}
	h.freed[addr] = true
	return nil
}

func alignUp(size, align int) int {
	if size <= 0 {
		return align
	}
	return (size + align - 1) / align * align
}

// MMIOMap implements MMIO_MAP: privileged-only, delegates to the dev
// registry's MMIO window allocator.
func (p *Proc) MMIOMap(size int) (uintptr, error) {
	if err := p.RequirePrivileged(); err != nil {
		return 0, err
	}
	return p.k.Dev.MMIOMap(size), nil
}

// FramebufferMap implements FRAMEBUFFER_MAP: privileged-only, returns
// the framebuffer geometry alongside the mapped address.
func (p *Proc) FramebufferMap() (vaddr uintptr, width, height, stride int, err error) {
	if err := p.RequirePrivileged(); err != nil {
		return 0, 0, 0, 0, err
	}
	fb := p.k.Dev.FramebufferMap()
	return fb.VAddr, fb.Width, fb.Height, fb.Stride, nil
}
