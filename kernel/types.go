// Package kernel implements the process table, address spaces, the
// scheduler, the block/wake primitive, and the trap path of the kernel
// core: the tightly coupled bundle of subsystems that shares the
// running-process pointer, the saved trap context, and the blocking sets.
package kernel

// ProcType distinguishes a full process, a thread sharing its parent's
// address space, or an IPC worker spawned to service a prefork channel.
type ProcType int

const (
	ProcTypeProc ProcType = iota
	ProcTypeThread
	ProcTypeIPCWorker
)

func (t ProcType) String() string {
	switch t {
	case ProcTypeProc:
		return "PROC"
	case ProcTypeThread:
		return "THREAD"
	case ProcTypeIPCWorker:
		return "IPC_WORKER"
	default:
		return "UNKNOWN"
	}
}

// State is a process's position in its lifecycle.
type State int

const (
	StateUnused State = iota
	StateCreated
	StateReady
	StateRunning
	StateBlock
	StateSleep
	StateWait
	StateZombie
)

func (s State) String() string {
	switch s {
	case StateUnused:
		return "UNUSED"
	case StateCreated:
		return "CREATED"
	case StateReady:
		return "READY"
	case StateRunning:
		return "RUNNING"
	case StateBlock:
		return "BLOCK"
	case StateSleep:
		return "SLEEP"
	case StateWait:
		return "WAIT"
	case StateZombie:
		return "ZOMBIE"
	default:
		return "UNKNOWN"
	}
}

// Kernel-wide constants. These are budgets, not architectural limits: a
// principled reimplementation could make them configurable, but the
// source treats them as fixed so boundary tests (lock table exhaustion,
// critical-counter decay) have a known edge to probe.
const (
	// CriticalMax caps proc_critical_enter nesting so a privileged process
	// cannot mask timer preemption indefinitely.
	CriticalMax = 8
	// LockMax bounds the number of numbered locks live in one address space.
	LockMax = 32
	// KeventQueueMax bounds the kernel event FIFO.
	KeventQueueMax = 256
	// PipeBufSize is the default bounded pipe buffer capacity.
	PipeBufSize = 4096
)

// RetrySentinel is the scalar syscall return value a caller observes
// immediately after proc_block_on marks it BLOCK: "go back to user space
// and re-execute this syscall once woken."
const RetrySentinel = -1

// RetryCode is the non-blocking "try again" return distinct from a block:
// the kernel never suspended the caller, it just lost a race or found a
// resource momentarily unavailable (non-blocking pipe read/write, IPC
// caller losing a race for a BUSY channel without requesting to block).
const RetryCode = 0

// ChannelDeadCode is returned when an IPC channel has no server or the
// server died mid-call.
const ChannelDeadCode = -2
