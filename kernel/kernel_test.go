package kernel

import (
	"sync"
	"testing"
	"time"

	"kcore-go/pipe"
)

func TestForkExitWaitPid(t *testing.T) {
	k := New()
	done := make(chan int, 1)

	k.Spawn("parent", 0, func(parent *Proc) {
		parent.Fork(func(child *Proc) {
			child.Exit(0)
		})
		pid, retry, _ := parent.WaitPid(0)
		for retry {
			pid, retry, _ = parent.WaitPid(0)
		}
		done <- pid
	})

	select {
	case pid := <-done:
		if pid == 0 {
			t.Fatal("expected a reaped child pid")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for fork/exit/waitpid")
	}
}

func TestLockMutualExclusion(t *testing.T) {
	k := New()
	const iters = 10000
	counter := 0
	var wg sync.WaitGroup
	wg.Add(2)

	var slot int
	ready := make(chan struct{})

	k.Spawn("owner", 0, func(p *Proc) {
		s, err := p.NewLock()
		if err != nil {
			t.Error(err)
		}
		slot = s
		close(ready)

		run := func() {
			for i := 0; i < iters; i++ {
				if err := p.Lock(slot); err != nil {
					t.Error(err)
					return
				}
				counter++
				if err := p.Unlock(slot); err != nil {
					t.Error(err)
					return
				}
			}
			wg.Done()
		}

		p.Thread(func(p2 *Proc) {
			<-ready
			run2 := func() {
				for i := 0; i < iters; i++ {
					if err := p2.Lock(slot); err != nil {
						t.Error(err)
						return
					}
					counter++
					if err := p2.Unlock(slot); err != nil {
						t.Error(err)
						return
					}
				}
				wg.Done()
			}
			run2()
			p2.Exit(0)
		})

		run()
		p.Exit(0)
	})

	wg.Wait()
	if counter != 2*iters {
		t.Fatalf("counter = %d, want %d", counter, 2*iters)
	}
}

func TestIPCRoundTrip(t *testing.T) {
	k := New()
	result := make(chan string, 1)

	k.Spawn("server", 0, func(p *Proc) {
		p.IPCSetup(1, false)
		req, _, err := p.IPCReceive()
		if err != nil {
			t.Error(err)
			return
		}
		p.IPCReply([]byte("echo:" + string(req)))
	})

	// give the server a moment to install its entry point before the
	// client looks it up by pid
	time.Sleep(10 * time.Millisecond)

	k.Spawn("client", 0, func(p *Proc) {
		reply, dead, err := p.IPCCall(1, []byte("hi"))
		if err != nil || dead {
			t.Error(err, dead)
			return
		}
		result <- string(reply)
	})

	select {
	case r := <-result:
		if r != "echo:hi" {
			t.Fatalf("reply = %q", r)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for ipc round trip")
	}
}

func TestSleepWakesOnTick(t *testing.T) {
	k := New()
	woke := make(chan uint64, 1)

	k.Spawn("sleeper", 0, func(p *Proc) {
		p.Sleep(51_000)
		woke <- p.k.KernelUsec()
		p.Exit(0)
	})

	time.Sleep(5 * time.Millisecond)
	for i := 0; i < 51; i++ {
		k.Tick(1000)
	}

	select {
	case usec := <-woke:
		if usec < 51_000 {
			t.Fatalf("woke too early at %d usec", usec)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for sleeper to wake")
	}
}

func TestPipeWriterBlocksOnFullBufferUntilReaderDrains(t *testing.T) {
	k := New()
	done := make(chan struct{})
	var token uintptr

	k.Spawn("writer", 0, func(p *Proc) {
		token = p.PipeOpen()
		payload := make([]byte, PipeBufSize+8)
		// the first call fills the buffer; the next one blocks until the
		// reader drains it
		n := 0
		for n < len(payload) {
			written, status := p.PipeWrite(token, payload[n:], true)
			if status != pipe.StatusOK {
				t.Errorf("blocking write status = %v, want OK", status)
				break
			}
			n += written
		}
		if n != len(payload) {
			t.Errorf("blocking write only wrote %d of %d bytes", n, len(payload))
		}
		close(done)
	})

	// give the writer a moment to fill the buffer and park
	time.Sleep(10 * time.Millisecond)

	k.Spawn("reader", 0, func(p *Proc) {
		out := make([]byte, PipeBufSize+8)
		got := 0
		for got < len(out) {
			n, status := p.PipeRead(token, out[got:], true)
			if status != pipe.StatusOK {
				t.Errorf("blocking read status = %v, want OK", status)
				return
			}
			got += n
		}
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out: writer never unblocked after reader drained the buffer")
	}
}

func TestPrefetchAbortHaltsClockDistinctFromDataAbort(t *testing.T) {
	k := New()
	before := k.KernelUsec()
	k.PrefetchAbort(0)
	if !k.Halted() {
		t.Fatal("expected Halted() true after PrefetchAbort")
	}
	k.Tick(1000)
	if k.KernelUsec() != before {
		t.Fatalf("clock advanced after halt: %d -> %d", before, k.KernelUsec())
	}
}

func TestCriticalEnterDeniedForUnprivileged(t *testing.T) {
	k := New()
	done := make(chan error, 1)
	k.Spawn("unpriv", 1, func(p *Proc) {
		done <- p.CriticalEnter()
	})
	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected CriticalEnter to be denied for a non-owner-0 process")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out")
	}
}

// criticalCounter reads pr.CriticalCounter under k.mu, the same lock Tick
// uses to decrement it, so the check never races the owning goroutine.
func (k *Kernel) criticalCounter(pid int) int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.procs[pid].CriticalCounter
}

func TestTickDecrementsCriticalCounterOfCurrentProcess(t *testing.T) {
	k := New()
	ready := make(chan struct{})
	result := make(chan int, 1)

	k.Spawn("owner", 0, func(p *Proc) {
		if err := p.CriticalEnter(); err != nil {
			t.Error(err)
		}
		close(ready)
		for k.criticalCounter(p.Pid()) > 0 {
			time.Sleep(time.Millisecond)
		}
		result <- k.criticalCounter(p.Pid())
	})

	<-ready
	k.Tick(1000)

	select {
	case c := <-result:
		if c != 0 {
			t.Fatalf("CriticalCounter = %d, want 0", c)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for critical counter to drain")
	}
}
