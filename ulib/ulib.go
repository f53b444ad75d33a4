// Package ulib is the thin user-space convenience layer every workload
// Program is written against: a handful of retry-loop wrappers around
// the kernel's pipe and WaitPid primitives, mirroring the blocking
// SyncPipe.Wait/Signal helpers the teacher wraps around a raw pipe fd so
// callers never hand-roll the same spin loop twice.
package ulib

import (
	"kcore-go/kernel"
	"kcore-go/pipe"
)

// PipeWrite writes the whole of data to token, blocking (via the
// kernel's own block/wake primitive, not a Yield spin) while the buffer
// is full and a reader is still alive, and stopping early if the peer
// has gone away.
func PipeWrite(p *kernel.Proc, token uintptr, data []byte) (n int, eof bool) {
	for n < len(data) {
		written, status := p.PipeWrite(token, data[n:], true)
		switch status {
		case pipe.StatusOK:
			n += written
		case pipe.StatusRetry:
			p.Yield() // defensive: PipeWrite(block=true) should not surface retry
		case pipe.StatusEOF:
			return n, true
		}
	}
	return n, false
}

// PipeRead fills out as far as possible, blocking while the buffer is
// empty and a writer is still alive, and stopping once the peer has
// closed and the buffer has drained (EOF).
func PipeRead(p *kernel.Proc, token uintptr, out []byte) (n int, eof bool) {
	for n < len(out) {
		read, status := p.PipeRead(token, out[n:], true)
		switch status {
		case pipe.StatusOK:
			n += read
			if read == 0 {
				return n, false
			}
		case pipe.StatusRetry:
			p.Yield() // defensive: PipeRead(block=true) should not surface retry
		case pipe.StatusEOF:
			return n, true
		}
	}
	return n, false
}

// WaitPid blocks until the named child (or any child, pid==0) exits,
// retrying with an explicit Yield between attempts exactly the way a
// real syscall stub would re-invoke the trap after waking from BLOCK.
func WaitPid(p *kernel.Proc, pid int) int {
	for {
		reaped, retry, _ := p.WaitPid(pid)
		if !retry {
			return reaped
		}
		p.Yield()
	}
}
