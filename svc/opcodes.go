// Package svc is the syscall dispatcher (L7): the single place that
// maps a numeric opcode and its arguments onto a kernel.Proc method call
// and flattens the result — or a *kerr.KernelError's Kind — into the
// scalar ABI return code the error-handling design specifies.
package svc

// Opcode identifies one syscall. The numbering itself carries no
// meaning; it exists so a dispatch table can be built with a plain
// switch, the way the teacher's seccomp filter keys its syscall table
// by a flat integer rather than a string.
type Opcode int

const (
	// Process lifecycle.
	OpExit Opcode = iota + 1
	OpFork
	OpThread
	OpDetach
	OpWaitPid
	OpExecELF
	OpUSleep
	OpKill
	OpYield
	OpGetPid
	OpGetPidByGName
	OpGetThreadID

	// Identity.
	OpProcSetCwd
	OpProcGetCwd
	OpProcSetGName
	OpProcSetUID
	OpProcGetUID
	OpProcGetCmd

	// Memory / shared memory.
	OpMalloc
	OpFree
	OpProcShmAlloc
	OpProcShmMap
	OpProcShmUnmap
	OpProcShmRef
	OpMMIOMap
	OpFramebufferMap

	// VFS.
	OpVFSGet
	OpVFSKids
	OpVFSSet
	OpVFSAdd
	OpVFSDel
	OpVFSNewNode
	OpVFSGetMount
	OpVFSGetMountByID
	OpVFSMount
	OpVFSUmount
	OpVFSOpen
	OpVFSProcClose
	OpVFSProcSeek
	OpVFSProcTell
	OpVFSGetByFD
	OpVFSProcGetByFD
	OpVFSProcDup
	OpVFSProcDup2

	// Pipes.
	OpPipeOpen
	OpPipeRead
	OpPipeWrite

	// Locks.
	OpLockNew
	OpLockFree
	OpLock
	OpUnlock

	// Env / global.
	OpProcSetEnv
	OpProcGetEnvValue
	OpProcGetEnvName
	OpSetGlobal
	OpGetGlobal

	// IPC.
	OpIPCSetup
	OpIPCCall
	OpIPCGetReturn
	OpIPCSetReturn
	OpIPCEnd
	OpIPCGetArg

	// Devices.
	OpDevCharRead
	OpDevCharWrite
	OpDevBlockRead
	OpDevBlockWrite
	OpDevBlockReadDone
	OpDevBlockWriteDone

	// Interrupts / critical sections.
	OpProcUsintRegister
	OpProcUsintUnregister
	OpGetUsintPid
	OpProcCriticalEnter
	OpProcCriticalQuit
	OpGetKevent

	// Info / debug.
	OpGetSysinfo
	OpGetKernelUsec
	OpGetKernelTic
	OpGetProcs
	OpProcPing
	OpProcReadyPing
	OpKprint
)
