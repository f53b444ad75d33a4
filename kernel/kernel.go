package kernel

import (
	"sync"

	"kcore-go/dev"
	"kcore-go/kevent"
	"kcore-go/pipe"
	"kcore-go/shm"
	"kcore-go/vfs"
)

// Kernel is the single shared instance of every L0-L7 subsystem. All
// mutation goes through mu, which stands in for the single-processor
// assumption: only one goroutine is ever inside kernel state at a time,
// matching "exactly one process is RUNNING".
type Kernel struct {
	mu sync.Mutex

	procs  map[int]*Process
	nextPid int

	VFS   *vfs.VFS
	Shm   *shm.Table
	Kev   *kevent.Queue
	Usint *kevent.Usint
	Dev   *dev.Registry

	pipes map[uintptr]*pipe.Buffer // registry so PIPE_OPEN can hand out tokens

	globals  map[string]string
	programs map[string]Program // EXEC_ELF's stand-in for a loadable image table

	kernelUsec uint64
	kernelTic  uint64

	current  int // pid of the process presently RUNNING, 0 if none
	baton    chan struct{}
	bootUsec uint64
	halted   bool // set by PrefetchAbort: the machine stops admitting ticks
}

// New builds a kernel with an empty process table and a fresh VFS root.
func New() *Kernel {
	k := &Kernel{
		procs:    make(map[int]*Process),
		VFS:      vfs.New(),
		Shm:      shm.New(),
		Kev:      kevent.New(),
		Usint:    kevent.NewUsint(),
		Dev:      dev.New(),
		pipes:    make(map[uintptr]*pipe.Buffer),
		globals:  make(map[string]string),
		programs: make(map[string]Program),
	}
	k.initBaton()
	return k
}

// Spawn creates a new top-level process running prog and returns its
// Proc handle. The process is marked READY and its goroutine is started
// at once; it runs as soon as it obtains the CPU.
func (k *Kernel) Spawn(cmd string, owner int, prog Program) *Proc {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.nextPid++
	pid := k.nextPid
	proc := &Process{
		Pid:       pid,
		FatherPid: 0,
		Type:      ProcTypeProc,
		State:     StateCreated,
		Owner:     owner,
		Cmd:       cmd,
		Cwd:       "/",
		Space:     NewAddressSpace(pid),
		parkCh:    make(chan struct{}),
		program:   prog,
	}
	k.procs[pid] = proc
	proc.State = StateReady
	go k.run(proc)
	return &Proc{k: k, p: proc}
}

func (k *Kernel) lookup(pid int) *Process {
	return k.procs[pid]
}

// Lookup returns a capability handle for an existing pid, or nil.
func (k *Kernel) Lookup(pid int) *Proc {
	k.mu.Lock()
	defer k.mu.Unlock()
	p := k.lookup(pid)
	if p == nil {
		return nil
	}
	return &Proc{k: k, p: p}
}

// Current returns the pid of the RUNNING process, or 0.
func (k *Kernel) Current() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.current
}
