package kernel

import "runtime"

// baton is the single-processor token: exactly one process goroutine may
// hold it and be StateRunning at a time, matching the "exactly one
// RUNNING process" invariant without simulating real context switches —
// a blocked goroutine simply parks on a Go channel instead of having its
// registers saved.
func (k *Kernel) initBaton() {
	if k.baton == nil {
		k.baton = make(chan struct{}, 1)
		k.baton <- struct{}{}
	}
}

// run is the top-level goroutine body for one process: acquire the CPU,
// execute its program to completion (which internally yields/blocks as
// it issues syscalls), then retire it.
func (k *Kernel) run(pr *Process) {
	k.acquire(pr)
	pr.program(&Proc{k: k, p: pr})
	k.retire(pr)
}

func (k *Kernel) acquire(pr *Process) {
	<-k.baton
	k.mu.Lock()
	if pr.State == StateZombie {
		// killed while off the CPU: hand the CPU back and never run again
		k.mu.Unlock()
		k.baton <- struct{}{}
		k.wakeWaiters(pr)
		runtime.Goexit()
	}
	pr.State = StateRunning
	k.current = pr.Pid
	k.mu.Unlock()
}

func (k *Kernel) release(pr *Process) {
	k.mu.Lock()
	if k.current == pr.Pid {
		k.current = 0
	}
	k.mu.Unlock()
	k.baton <- struct{}{}
}

func (k *Kernel) retire(pr *Process) {
	k.mu.Lock()
	pr.State = StateZombie
	k.mu.Unlock()
	k.baton <- struct{}{}
	k.wakeWaiters(pr)
}

// wakeWaiters wakes any process parked in WAIT_PID on this pid, or on
// "any child" of pr's father.
func (k *Kernel) wakeWaiters(pr *Process) {
	k.mu.Lock()
	defer k.mu.Unlock()
	for _, other := range k.procs {
		if other.State != StateWait {
			continue
		}
		if other.Pid != pr.FatherPid {
			continue
		}
		if other.WaitPid != 0 && other.WaitPid != pr.Pid {
			continue
		}
		other.State = StateReady
		k.wakeParked(other)
	}
}

// Yield releases the CPU to another ready process and rejoins the queue
// for the next turn; used by PROC_YIELD and implicitly by the retry loop
// between failed attempts at a busy resource.
func (p *Proc) Yield() {
	p.k.release(p.p)
	p.k.acquire(p.p)
}

// block marks pr BLOCK on token, releases the CPU, and parks the calling
// goroutine until Wakeup(token) matches it, then re-enters the ready
// queue to regain the CPU before returning to the program.
func (k *Kernel) block(pr *Process, token uintptr, state State) {
	k.mu.Lock()
	pr.State = state
	pr.WaitToken = token
	ch := make(chan struct{})
	pr.parkCh = ch
	k.mu.Unlock()

	k.release(pr)
	<-ch
	k.acquire(pr)
}

func (k *Kernel) wakeParked(pr *Process) {
	close(pr.parkCh)
}

// Wakeup broadcasts READY to every BLOCK process whose wait token
// matches, per the no-fairness-guaranteed broadcast model.
func (k *Kernel) Wakeup(token uintptr) {
	k.mu.Lock()
	defer k.mu.Unlock()
	for _, pr := range k.procs {
		if pr.State == StateBlock && pr.WaitToken == token {
			pr.State = StateReady
			k.wakeParked(pr)
		}
	}
}

// Sleep parks the calling process until at least usec kernel-microseconds
// have elapsed, woken by Tick rather than by a resource token.
func (p *Proc) Sleep(usec uint64) {
	k := p.k
	k.mu.Lock()
	deadline := k.kernelUsec + usec
	p.p.State = StateSleep
	p.p.SleepUntilUsec = deadline
	ch := make(chan struct{})
	p.p.parkCh = ch
	k.mu.Unlock()

	k.release(p.p)
	<-ch
	k.acquire(p.p)
}

// Tick is the timer-IRQ equivalent: it advances the kernel clock by
// deltaUsec and wakes any process whose sleep deadline has passed. If
// the process that was running at IRQ time is inside a critical section
// (CriticalCounter > 0), the tick only decrements that counter and does
// nothing else — no clock advance, no wakeups — matching irq_handler's
// "if(_current_proc->critical_counter > 0) { critical_counter--; return; }"
// path verbatim; this is the sole mechanism bounding how long a
// privileged process can mask preemption. Once the machine has taken a
// prefetch abort (k.halted), it stops admitting ticks entirely.
func (k *Kernel) Tick(deltaUsec uint64) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.halted {
		return
	}
	if cur, ok := k.procs[k.current]; ok && cur.CriticalCounter > 0 {
		cur.CriticalCounter--
		return
	}
	k.kernelUsec += deltaUsec
	k.kernelTic++
	for _, pr := range k.procs {
		if pr.State == StateSleep && k.kernelUsec >= pr.SleepUntilUsec {
			pr.State = StateReady
			k.wakeParked(pr)
		}
	}
}

// KernelUsec and KernelTic report the simulated clock, for GET_KERNEL_USEC
// and GET_KERNEL_TIC.
func (k *Kernel) KernelUsec() uint64 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.kernelUsec
}

func (k *Kernel) KernelTic() uint64 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.kernelTic
}
