package kernel

import "kcore-go/logging"

// DataAbort handles a process-fatal memory fault: the faulting process
// is killed and the scheduler carries on, exactly as the error taxonomy
// distinguishes a process fault (isolated) from a kernel fault (halt).
func (k *Kernel) DataAbort(pid int) {
	k.mu.Lock()
	pr, ok := k.procs[pid]
	if ok {
		pr.State = StateZombie
	}
	k.mu.Unlock()
	if ok && pr.parkCh != nil {
		select {
		case <-pr.parkCh:
		default:
			close(pr.parkCh)
		}
	}
}

// PrefetchAbort is a kernel-fatal fault, distinct from DataAbort: it does
// not touch the faulting process's state and does not reschedule. It
// halts the machine outright — Tick stops advancing the clock or waking
// sleepers — the simulated equivalent of prefetch_abort_handler's bare
// "while(1);" in the original trap handler.
func (k *Kernel) PrefetchAbort(pid int) {
	k.mu.Lock()
	k.halted = true
	k.mu.Unlock()
	logging.Default().Error("prefetch abort, halted", "pid", pid)
}

// Halted reports whether the machine has taken a prefetch abort and
// permanently stopped admitting further ticks.
func (k *Kernel) Halted() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.halted
}
