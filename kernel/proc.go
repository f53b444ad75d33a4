package kernel

import "sort"

// Proc is the capability handle a Program receives: every syscall a
// process can issue is a method on Proc, scoped to that one process's
// record and address space. Nothing outside this package can reach a
// *Process directly, so every mutation goes through the kernel lock.
type Proc struct {
	k *Kernel
	p *Process
}

// Pid returns the process's pid.
func (p *Proc) Pid() int { return p.p.Pid }

// FatherPid returns the pid of the process that spawned this one.
func (p *Proc) FatherPid() int {
	p.k.mu.Lock()
	defer p.k.mu.Unlock()
	return p.p.FatherPid
}

// Kernel returns the owning kernel, for subsystems (ulib, workload,
// svc) that need to reach kernel-wide operations like Tick or Wakeup.
func (p *Proc) Kernel() *Kernel { return p.k }

// Cmd returns the command name PROC_GET_CMD reports.
func (p *Proc) Cmd() string {
	p.k.mu.Lock()
	defer p.k.mu.Unlock()
	return p.p.Cmd
}

// Cwd returns the current working directory.
func (p *Proc) Cwd() string {
	p.k.mu.Lock()
	defer p.k.mu.Unlock()
	return p.p.Cwd
}

// SetCwd sets the current working directory.
func (p *Proc) SetCwd(cwd string) {
	p.k.mu.Lock()
	defer p.k.mu.Unlock()
	p.p.Cwd = cwd
}

// GlobalName returns the process's registered lookup name.
func (p *Proc) GlobalName() string {
	p.k.mu.Lock()
	defer p.k.mu.Unlock()
	return p.p.GlobalName
}

// SetGlobalName sets the process's registered lookup name.
func (p *Proc) SetGlobalName(name string) {
	p.k.mu.Lock()
	defer p.k.mu.Unlock()
	p.p.GlobalName = name
}

// Uid returns the process's owner uid.
func (p *Proc) Uid() int {
	p.k.mu.Lock()
	defer p.k.mu.Unlock()
	return p.p.Owner
}

// SetUid sets the process's owner uid. Only a privileged caller may
// raise its own uid; enforcement lives in svc, which knows the caller's
// identity before and after the change.
func (p *Proc) SetUid(uid int) {
	p.k.mu.Lock()
	defer p.k.mu.Unlock()
	p.p.Owner = uid
}

// Type reports PROC/THREAD/IPC_WORKER.
func (p *Proc) Type() ProcType {
	p.k.mu.Lock()
	defer p.k.mu.Unlock()
	return p.p.Type
}

// State reports the process's current lifecycle state.
func (p *Proc) State() State {
	p.k.mu.Lock()
	defer p.k.mu.Unlock()
	return p.p.State
}

// Space returns the process's address space.
func (p *Proc) Space() *AddressSpace { return p.p.Space }

// SetEnv and GetEnv implement PROC_SET_ENV / PROC_GET_ENV_VALUE.
func (p *Proc) SetEnv(key, value string) {
	p.k.mu.Lock()
	defer p.k.mu.Unlock()
	p.p.Space.Env[key] = value
}

func (p *Proc) GetEnv(key string) (string, bool) {
	p.k.mu.Lock()
	defer p.k.mu.Unlock()
	v, ok := p.p.Space.Env[key]
	return v, ok
}

// EnvName returns the key at position i, for PROC_GET_ENV_NAME's
// iteration-by-index contract; ok is false past the end.
func (p *Proc) EnvName(i int) (string, bool) {
	p.k.mu.Lock()
	defer p.k.mu.Unlock()
	if i < 0 || i >= len(p.p.Space.Env) {
		return "", false
	}
	keys := make([]string, 0, len(p.p.Space.Env))
	for k := range p.p.Space.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys) // map order varies between calls; index a stable order
	return keys[i], true
}

// ReadyPing implements PROC_READY_PING / PROC_PING.
func (p *Proc) SetReadyPing(v bool) {
	p.k.mu.Lock()
	defer p.k.mu.Unlock()
	p.p.Space.ReadyPing = v
}

func (p *Proc) ReadyPing() bool {
	p.k.mu.Lock()
	defer p.k.mu.Unlock()
	return p.p.Space.ReadyPing
}

// CriticalEnter increments the nesting counter, capped at CriticalMax; a
// privileged region delays timer preemption but never indefinitely. Only
// a privileged (owner-0) caller may enter a critical section — matching
// sys_proc_critical_enter's "if(_current_proc->owner != 0) return;" — so
// an unprivileged process can never mask preemption at all.
func (p *Proc) CriticalEnter() error {
	if err := p.RequirePrivileged(); err != nil {
		return err
	}
	p.k.mu.Lock()
	defer p.k.mu.Unlock()
	if p.p.CriticalCounter >= CriticalMax {
		return errCriticalOverflow
	}
	p.p.CriticalCounter++
	return nil
}

// CriticalQuit decrements the nesting counter, floored at zero.
func (p *Proc) CriticalQuit() {
	p.k.mu.Lock()
	defer p.k.mu.Unlock()
	if p.p.CriticalCounter > 0 {
		p.p.CriticalCounter--
	}
}

// GlobalSet and GlobalGet implement SET_GLOBAL / GET_GLOBAL, the
// kernel-wide string dictionary every process shares.
func (p *Proc) GlobalSet(key, value string) {
	p.k.mu.Lock()
	defer p.k.mu.Unlock()
	p.k.globals[key] = value
}

func (p *Proc) GlobalGet(key string) (string, bool) {
	p.k.mu.Lock()
	defer p.k.mu.Unlock()
	v, ok := p.k.globals[key]
	return v, ok
}
