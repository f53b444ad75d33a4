package kernel

import (
	"kcore-go/ipc"
	"kcore-go/lock"
	"kcore-go/vfs"
)

// Process is one process-table record.
type Process struct {
	Pid        int
	FatherPid  int
	Type       ProcType
	State      State
	Owner      int // uid; 0 is privileged
	Cmd        string
	Cwd        string
	GlobalName string

	Ctx             Context
	CriticalCounter int

	Space *AddressSpace

	WaitToken      uintptr
	SleepUntilUsec uint64
	WaitPid        int // pid a WAIT_PID caller is waiting on, 0 = any child

	// parkCh is recreated every time block, Sleep or WaitPid parks this
	// process; the parked goroutine waits on its own snapshot of it
	// outside the kernel lock.
	parkCh chan struct{}

	// program is the user-space closure driving this process; a kill or
	// a data abort stops it the next time it would regain the CPU, while
	// after exit() it runs on until the closure returns.
	program Program
}

// AddressSpace is the memory-adjacent state shared by a process and its
// threads: numbered locks, the one IPC channel this process can serve,
// the environment dictionary, the VFS descriptor table, and the
// ready-to-run ping flag PROC_READY_PING tests.
type AddressSpace struct {
	Owner     int // the owning process's pid, for debugging/introspection
	Locks     *lock.Table
	IPC       *ipc.Channel
	Env       map[string]string
	ReadyPing bool
	FDs       *vfs.FDTable

	heap *heap // lazily allocated by the first MALLOC

	refs int // thread count sharing this space
}

// NewAddressSpace allocates a fresh, empty address space.
func NewAddressSpace(owner int) *AddressSpace {
	return &AddressSpace{
		Owner: owner,
		Locks: lock.New(),
		IPC:   &ipc.Channel{},
		Env:   make(map[string]string),
		FDs:   vfs.NewFDTable(),
		refs:  1,
	}
}

// Program is the body of a process or thread: a closure over a *Proc
// capability handle, scheduled cooperatively via the retry-sentinel
// protocol instead of preempted mid-instruction.
type Program func(p *Proc)
