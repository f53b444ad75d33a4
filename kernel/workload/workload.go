// Package workload ships a handful of built-in Programs exercising every
// core subsystem end to end: an echo IPC server, a pipe producer and
// consumer, lock racers, a VFS mount demo, and a usleep demo. These are
// spec.md §8's five End-to-end scenarios expressed as runnable Go
// closures instead of as prose, used both by `kcore boot`'s default
// workload and by package tests.
package workload

import (
	"fmt"

	"kcore-go/kernel"
	"kcore-go/logging"
	"kcore-go/ulib"
	"kcore-go/vfs"
)

// EchoServer installs an IPC entry point that echoes every request back
// prefixed with "echo:", then serves calls until told to stop (it never
// exits in a boot-time workload; a test harness should instead Kill it).
func EchoServer(p *kernel.Proc) {
	p.IPCSetup(1, false)
	for {
		req, from, err := p.IPCReceive()
		if err != nil {
			return
		}
		reply := append([]byte("echo:"), req...)
		if err := p.IPCReply(reply); err != nil {
			logging.Default().Warn("echo server reply failed", "from", from, "err", err)
		}
	}
}

// IPCCaller places one synchronous call against serverPid and forwards
// the reply on result, modeling the scenario 3 "simultaneous callers"
// end-to-end test when two of these run against the same server.
func IPCCaller(serverPid int, payload string, result chan<- string) kernel.Program {
	return func(p *kernel.Proc) {
		reply, dead, err := p.IPCCall(serverPid, []byte(payload))
		if dead || err != nil {
			result <- ""
			return
		}
		result <- string(reply)
	}
}

// PipeProducerConsumer forks a consumer child that reads everything
// written to the pipe's read end, then the parent writes msg and closes
// its end, exercising scenario 2 (EOF observed once the buffer drains).
func PipeProducerConsumer(msg string, observed chan<- []byte) kernel.Program {
	return func(p *kernel.Proc) {
		r := p.PipeOpen()
		w := r // same buffer token; the two "ends" differ only in who calls Read vs Write

		child := p.Fork(func(c *kernel.Proc) {
			buf := make([]byte, 0, 64)
			chunk := make([]byte, 16)
			for {
				n, eof := ulib.PipeRead(c, r, chunk)
				buf = append(buf, chunk[:n]...)
				if eof {
					break
				}
				if n == 0 {
					break
				}
			}
			observed <- buf
			c.Exit(0)
		})

		ulib.PipeWrite(p, w, []byte(msg))
		p.PipeClose(w)

		ulib.WaitPid(p, child.Pid())
		p.Exit(0)
	}
}

// LockRacers spawns two threads that each increment a shared counter
// iters times under a shared lock, exercising scenario 4's mutual
// exclusion invariant; total reports the final value once both finish.
func LockRacers(iters int, total chan<- int) kernel.Program {
	return func(p *kernel.Proc) {
		slot, err := p.NewLock()
		if err != nil {
			total <- -1
			return
		}
		counter := 0
		done := make(chan struct{}, 2)

		race := func(p *kernel.Proc) {
			for i := 0; i < iters; i++ {
				if err := p.Lock(slot); err != nil {
					break
				}
				counter++
				p.Unlock(slot)
			}
			done <- struct{}{}
		}

		th := p.Thread(func(p2 *kernel.Proc) {
			race(p2)
			p2.Exit(0)
		})
		race(p)
		ulib.WaitPid(p, th.Pid()) // gives up the CPU so the thread can run

		<-done
		<-done
		total <- counter
		p.FreeLock(slot)
		p.Exit(0)
	}
}

// VFSMountDemo builds "/x" and "/y/a", mounts "/y" onto "/x", resolves
// "/x/a" through the overlay, then umounts and confirms the path is
// gone again — scenario 6 verbatim.
func VFSMountDemo(result chan<- bool) kernel.Program {
	return func(p *kernel.Proc) {
		root, _ := p.VFSGet("")
		x := p.VFSNewNode("x", vfs.TypeDir)
		p.VFSAdd(root, x)

		y := p.VFSNewNode("y", vfs.TypeDir)
		p.VFSAdd(root, y)
		a := p.VFSNewNode("a", vfs.TypeFile)
		p.VFSAdd(y, a)

		if _, err := p.VFSMount(x, y); err != nil {
			result <- false
			p.Exit(1)
			return
		}

		resolved, err := p.VFSGet("x/a")
		ok := err == nil && resolved == a

		if err := p.VFSUmount(x); err != nil {
			ok = false
		}
		if _, err := p.VFSGet("x/a"); err == nil {
			ok = false // must be gone again post-umount
		}

		result <- ok
		p.Exit(0)
	}
}

// SleepDemo calls usleep(usec) and reports the kernel clock value
// observed on wake, for scenario 1 (usleep wakes no earlier than the
// deadline once enough ticks have been delivered).
func SleepDemo(usec uint64, wokeAt chan<- uint64) kernel.Program {
	return func(p *kernel.Proc) {
		p.Sleep(usec)
		wokeAt <- p.Kernel().KernelUsec()
		p.Exit(0)
	}
}

// Kprinter is a trivial boot-time workload that logs a line through
// KPRINT's backing call and exits. No `kcore` command spawns it.
func Kprinter(msg string) kernel.Program {
	return func(p *kernel.Proc) {
		logging.Default().Info(fmt.Sprintf("[pid %d] %s", p.Pid(), msg))
		p.Exit(0)
	}
}
