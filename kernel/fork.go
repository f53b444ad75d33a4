package kernel

// Fork creates a child process with a copy-on-spawn address space (a
// fresh, empty one — this kernel core never models copying user pages,
// only the kernel-side records a fork needs) and starts it running prog.
func (p *Proc) Fork(prog Program) *Proc {
	k := p.k
	k.mu.Lock()
	k.nextPid++
	pid := k.nextPid
	child := &Process{
		Pid:       pid,
		FatherPid: p.p.Pid,
		Type:      ProcTypeProc,
		State:     StateReady,
		Owner:     p.p.Owner,
		Cmd:       p.p.Cmd,
		Cwd:       p.p.Cwd,
		Space:     NewAddressSpace(pid),
		parkCh:    make(chan struct{}),
		program:   prog,
	}
	k.procs[pid] = child
	k.mu.Unlock()

	go k.run(child)
	return &Proc{k: k, p: child}
}

// Thread creates a new thread sharing this process's address space, so
// locks, the IPC channel, env, and the fd table are all aliased rather
// than copied.
func (p *Proc) Thread(prog Program) *Proc {
	k := p.k
	k.mu.Lock()
	k.nextPid++
	pid := k.nextPid
	p.p.Space.refs++
	child := &Process{
		Pid:       pid,
		FatherPid: p.p.Pid,
		Type:      ProcTypeThread,
		State:     StateReady,
		Owner:     p.p.Owner,
		Cmd:       p.p.Cmd,
		Cwd:       p.p.Cwd,
		Space:     p.p.Space,
		parkCh:    make(chan struct{}),
		program:   prog,
	}
	k.procs[pid] = child
	k.mu.Unlock()

	go k.run(child)
	return &Proc{k: k, p: child}
}

// Detach clears the father_pid link, the way a daemonizing process
// orphans itself so a future WAIT_PID from its father doesn't hang
// the father on a child that will outlive it.
func (p *Proc) Detach() {
	p.k.mu.Lock()
	defer p.k.mu.Unlock()
	p.p.FatherPid = 0
}
