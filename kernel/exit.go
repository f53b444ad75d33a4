package kernel

import "kcore-go/kerr"

// Exit marks this process ZOMBIE and drops its reference on the address
// space, closing the descriptors when it was the last one. It does not
// hand back the CPU: the program keeps running until its function
// returns, and the owning goroutine's run() then retires it.
func (p *Proc) Exit(code int) {
	k := p.k
	k.mu.Lock()
	p.p.State = StateZombie
	p.p.Space.refs--
	if p.p.Space.refs <= 0 {
		p.p.Space.FDs.CloseAll(k.VFS)
	}
	k.mu.Unlock()
}

// Kill forces a target process into ZOMBIE, used by PROC_KILL. Unlike
// Exit it acts on another process's record, so it only marks state: the
// victim's own goroutine observes it next time it touches the scheduler.
// Killing a process owned by a different uid is denied unless the
// caller is privileged (spec.md §7's "kill another owner" denial case).
func (p *Proc) Kill(targetPid int) error {
	k := p.k
	k.mu.Lock()
	defer k.mu.Unlock()
	target, ok := k.procs[targetPid]
	if !ok {
		return kerr.ErrNoSuchProcess
	}
	if target.Owner != p.p.Owner && p.p.Owner != 0 {
		return kerr.ErrPermission
	}
	target.State = StateZombie
	if target.parkCh != nil {
		select {
		case <-target.parkCh:
			// already closed/woken
		default:
			close(target.parkCh)
		}
	}
	return nil
}

// WaitPid blocks until a specific child (or any child, if pid == 0) has
// become a zombie, then reaps it from the process table and returns its
// pid. retry is true when the caller was woken but no matching zombie
// was found, so the caller must call again; blocked is always false.
func (p *Proc) WaitPid(pid int) (reapedPid int, retry, blocked bool) {
	k := p.k
	k.mu.Lock()

	if zpid, found := k.reapZombieChild(p.p.Pid, pid); found {
		k.mu.Unlock()
		return zpid, false, false
	}

	p.p.State = StateWait
	p.p.WaitPid = pid
	ch := make(chan struct{})
	p.p.parkCh = ch
	k.mu.Unlock()

	k.release(p.p)
	<-ch
	k.acquire(p.p)

	k.mu.Lock()
	zpid, found := k.reapZombieChild(p.p.Pid, pid)
	k.mu.Unlock()
	if !found {
		return 0, true, false
	}
	return zpid, false, false
}

// reapZombieChild finds a zombie child of father matching pid (0 = any),
// removes it from the table, and returns its pid. Caller holds k.mu.
func (k *Kernel) reapZombieChild(father, pid int) (int, bool) {
	for candPid, cand := range k.procs {
		if cand.FatherPid != father {
			continue
		}
		if pid != 0 && candPid != pid {
			continue
		}
		if cand.State == StateZombie {
			delete(k.procs, candPid)
			return candPid, true
		}
	}
	return 0, false
}
