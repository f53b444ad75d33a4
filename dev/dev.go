// Package dev stands in for the narrow "dev"/"mm" external interfaces
// spec.md §6 says the core calls through rather than implements: a
// character device (the UART), a block device (the SD card), GIC
// interrupt masks, and a framebuffer descriptor. None of these are
// modeled at hardware fidelity — there is no real interrupt controller
// or disk to drive — but the shapes the core's syscalls expect (a
// device handle keyed by type, synchronous block I/O with a completion
// step, a framebuffer info blob) are real enough to exercise DEV_*,
// MMIO_MAP, and FRAMEBUFFER_MAP end to end.
package dev

import "kcore-go/kerr"

// Kind identifies a device class, mirroring get_dev(type).
type Kind int

const (
	KindChar Kind = iota
	KindBlock
)

// Char is a byte-stream device (the UART in the real kernel).
type Char struct {
	name string
	buf  []byte
}

// Block is a fixed-size-sector device (the SD card in the real kernel).
type Block struct {
	name     string
	sectors  [][]byte
	sectSize int
}

// BlockJob is a pending block I/O request, completed synchronously in
// this simulation but kept as a distinct handle so DEV_BLOCK_READ_DONE
// has something to poll, matching the split start/done ABI shape.
type BlockJob struct {
	data  []byte
	write bool
	done  bool
}

// Registry is the kernel-wide device table, one Char and one Block by
// convention (uart, sd), plus the simulated MMIO and framebuffer windows
// MMIO_MAP/FRAMEBUFFER_MAP hand addresses out of.
type Registry struct {
	uart *Char
	sd   *Block

	nextMMIO uintptr
	nextJob  int
	jobs     map[int]*BlockJob

	fb FBInfo
}

// FBInfo mirrors fb_get_info: the geometry a user-space compositor needs
// to interpret the mapped framebuffer window.
type FBInfo struct {
	Width, Height, Stride int
	VAddr                 uintptr
}

// New builds a registry with one simulated UART and one 512-sector,
// 512-byte-sector SD card, and a placeholder 640x480 framebuffer.
func New() *Registry {
	sectors := make([][]byte, 512)
	for i := range sectors {
		sectors[i] = make([]byte, 512)
	}
	return &Registry{
		uart:     &Char{name: "uart"},
		sd:       &Block{name: "sd", sectors: sectors, sectSize: 512},
		nextMMIO: 0x10000000,
		jobs:     make(map[int]*BlockJob),
		fb:       FBInfo{Width: 640, Height: 480, Stride: 640 * 4},
	}
}

// CharRead drains whatever the UART has buffered (e.g. from a TTY pump),
// mirroring dev_ch_read.
func (r *Registry) CharRead(out []byte) int {
	n := copy(out, r.uart.buf)
	r.uart.buf = r.uart.buf[n:]
	return n
}

// CharWrite appends to the UART's output, mirroring dev_ch_write /
// uart_write; a real implementation would flush to the physical wire.
func (r *Registry) CharWrite(data []byte) int {
	r.uart.buf = append(r.uart.buf, data...)
	return len(data)
}

// Feed injects bytes as if received on the UART, used by a TTY pump
// feeding real keystrokes through the same path DEV_CHAR_READ drains.
func (r *Registry) Feed(data []byte) {
	r.uart.buf = append(r.uart.buf, data...)
}

// BlockRead starts a read of one sector, returning a job handle the
// caller polls with BlockReadDone.
func (r *Registry) BlockRead(sector int) (int, error) {
	if sector < 0 || sector >= len(r.sd.sectors) {
		return 0, kerr.New(kerr.KindNotFound, "dev_block_read", "sector out of range")
	}
	r.nextJob++
	id := r.nextJob
	buf := make([]byte, r.sd.sectSize)
	copy(buf, r.sd.sectors[sector])
	r.jobs[id] = &BlockJob{data: buf, done: true} // completes synchronously
	return id, nil
}

// BlockWrite starts a write of one sector.
func (r *Registry) BlockWrite(sector int, data []byte) (int, error) {
	if sector < 0 || sector >= len(r.sd.sectors) {
		return 0, kerr.New(kerr.KindNotFound, "dev_block_write", "sector out of range")
	}
	copy(r.sd.sectors[sector], data)
	r.nextJob++
	id := r.nextJob
	r.jobs[id] = &BlockJob{write: true, done: true}
	return id, nil
}

// BlockReadDone polls a read job; ready=false means the caller should
// retry (DEV_BLOCK_READ_DONE's retry-sentinel contract).
func (r *Registry) BlockReadDone(job int, out []byte) (n int, ready bool) {
	j, ok := r.jobs[job]
	if !ok || j.write {
		return 0, true // unknown job: nothing to wait for, don't spin forever
	}
	if !j.done {
		return 0, false
	}
	delete(r.jobs, job)
	return copy(out, j.data), true
}

// BlockWriteDone polls a write job.
func (r *Registry) BlockWriteDone(job int) (ready bool) {
	j, ok := r.jobs[job]
	if !ok || !j.write {
		return true
	}
	if !j.done {
		return false
	}
	delete(r.jobs, job)
	return true
}

// MMIOMap hands out a fresh simulated physical/virtual MMIO window;
// callers must already have checked privilege (see kernel.Proc.MMIOMap).
func (r *Registry) MMIOMap(size int) uintptr {
	addr := r.nextMMIO
	r.nextMMIO += uintptr(alignUp(size, 4096))
	return addr
}

// FramebufferMap returns the framebuffer geometry and a stable vaddr.
func (r *Registry) FramebufferMap() FBInfo {
	if r.fb.VAddr == 0 {
		r.fb.VAddr = 0x20000000
	}
	return r.fb
}

func alignUp(size, align int) int {
	if size <= 0 {
		return align
	}
	return (size + align - 1) / align * align
}
