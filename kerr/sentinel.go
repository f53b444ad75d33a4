// Package kerr: predefined sentinel errors for common kernel failure cases.
package kerr

// Process lifecycle errors.
var (
	ErrNoSuchProcess = &KernelError{Kind: KindNotFound, Detail: "no such process"}
	ErrNotZombie     = &KernelError{Kind: KindInvalidState, Detail: "process is not a zombie"}
	ErrProcessTable  = &KernelError{Kind: KindResource, Detail: "process table exhausted"}
)

// VFS errors.
var (
	ErrNoSuchNode    = &KernelError{Kind: KindNotFound, Detail: "no such vfs node"}
	ErrNodeHasRefs   = &KernelError{Kind: KindInvalidState, Detail: "node has live references"}
	ErrNotMounted    = &KernelError{Kind: KindInvalidState, Detail: "node is not a mount point"}
	ErrAlreadyMount  = &KernelError{Kind: KindInvalidState, Detail: "node is already a mount point"}
	ErrBadFD         = &KernelError{Kind: KindNotFound, Detail: "invalid file descriptor"}
	ErrFDTableFull   = &KernelError{Kind: KindResource, Detail: "file descriptor table exhausted"}
)

// Pipe errors.
var (
	ErrPipeEOF = &KernelError{Kind: KindNotFound, Detail: "pipe end closed"}
)

// Lock errors.
var (
	ErrLockTableFull = &KernelError{Kind: KindResource, Detail: "lock table exhausted (LOCK_MAX)"}
	ErrBadLockSlot   = &KernelError{Kind: KindNotFound, Detail: "invalid lock slot"}
)

// Shared memory errors.
var (
	ErrNoSuchSegment = &KernelError{Kind: KindNotFound, Detail: "no such shm segment"}
)

// IPC errors.
var (
	ErrChannelDead     = &KernelError{Kind: KindChannelDead, Detail: "ipc channel has no server or died busy"}
	ErrChannelBusy     = &KernelError{Kind: KindRetry, Detail: "ipc channel busy"}
	ErrNotCollector    = &KernelError{Kind: KindInvalidState, Detail: "caller is not the recorded collector"}
	ErrNoEntry         = &KernelError{Kind: KindChannelDead, Detail: "no ipc entry registered"}
)

// Privilege errors.
var (
	ErrPermission = &KernelError{Kind: KindDenied, Detail: "privileged operation denied"}
)

// Kernel event errors.
var (
	ErrQueueEmpty = &KernelError{Kind: KindRetry, Detail: "kernel event queue empty"}
)
