package svc

import (
	"fmt"

	"kcore-go/kerr"
	"kcore-go/kernel"
	"kcore-go/logging"
	"kcore-go/pipe"
	"kcore-go/vfs"
)

// Args carries a syscall's operands. Unlike the real trap entry, which
// finds arguments in r1..r3 of the saved Context, this kernel core has
// no flat address space to decode pointers out of, so Args carries them
// already typed; Int0/Int1/Int2 stand in for a0/a1/a2.
type Args struct {
	Int0, Int1, Int2 int64
	Str              string
	Bytes            []byte
	Program          kernel.Program // for FORK/THREAD/EXEC_ELF
}

// Dispatch routes one syscall to its kernel.Proc implementation and
// flattens the result to the scalar ABI code described by the error
// taxonomy: not-found/denied/invalid -> -1, retry -> 0, channel dead ->
// -2, success -> a non-negative value (often just 0 or a handle).
func Dispatch(p *kernel.Proc, code Opcode, a Args) int64 {
	switch code {
	case OpExit:
		p.Exit(int(a.Int0))
		return 0
	case OpFork:
		child := p.Fork(a.Program)
		return int64(child.Pid())
	case OpThread:
		child := p.Thread(a.Program)
		return int64(child.Pid())
	case OpDetach:
		p.Detach()
		return 0
	case OpExecELF:
		return fail(p.ExecELF(a.Str))
	case OpWaitPid:
		pid, retry, _ := p.WaitPid(int(a.Int0))
		if retry {
			return kernel.RetryCode
		}
		return int64(pid)
	case OpUSleep:
		p.Sleep(uint64(a.Int0))
		return 0
	case OpKill:
		return fail(p.Kill(int(a.Int0)))
	case OpYield:
		p.Yield()
		return 0
	case OpGetPid:
		return int64(p.Pid())
	case OpGetThreadID:
		return int64(p.Pid())
	case OpGetPidByGName:
		pid, ok := p.Kernel().PidByGlobalName(a.Str)
		if !ok {
			return -1
		}
		return int64(pid)

	case OpProcSetCwd:
		p.SetCwd(a.Str)
		return 0
	case OpProcGetCwd:
		return str(p.Cwd(), a.Bytes)
	case OpProcSetGName:
		p.SetGlobalName(a.Str)
		return 0
	case OpProcSetUID:
		if !p.IsPrivileged() {
			return -1
		}
		p.SetUid(int(a.Int0))
		return 0
	case OpProcGetUID:
		return int64(p.Uid())
	case OpProcGetCmd:
		return str(p.Cmd(), a.Bytes)

	case OpProcShmAlloc:
		return int64(p.ShmAlloc(int(a.Int0), int(a.Int1)))
	case OpProcShmMap:
		addr, err := p.ShmMap(int(a.Int0))
		if err != nil {
			return -1
		}
		return int64(addr)
	case OpProcShmUnmap:
		return fail(p.ShmUnmap(int(a.Int0)))
	case OpProcShmRef:
		return fail(p.ShmRef(int(a.Int0)))
	case OpMalloc:
		return int64(p.Malloc(int(a.Int0)))
	case OpFree:
		return fail(p.Free(uintptr(a.Int0)))
	case OpMMIOMap:
		addr, err := p.MMIOMap(int(a.Int0))
		if err != nil {
			return -1
		}
		return int64(addr)
	case OpFramebufferMap:
		addr, _, _, _, err := p.FramebufferMap()
		if err != nil {
			return -1
		}
		return int64(addr)

	case OpVFSGet:
		h, err := p.VFSGet(a.Str)
		if err != nil {
			return -1
		}
		return int64(h)
	case OpVFSKids:
		kids, err := p.VFSKids(vfs.Handle(a.Int0))
		if err != nil {
			return -1
		}
		return int64(len(kids))
	case OpVFSAdd:
		h, err := p.VFSAdd(vfs.Handle(a.Int0), vfs.Handle(a.Int1))
		if err != nil {
			return -1
		}
		return int64(h)
	case OpVFSDel:
		return fail(p.VFSDel(vfs.Handle(a.Int0)))
	case OpVFSSet:
		return fail(p.VFSSet(vfs.Handle(a.Int0), a.Bytes, int64(a.Int1)))
	case OpVFSNewNode:
		return int64(p.VFSNewNode(a.Str, vfs.NodeType(a.Int0)))
	case OpVFSGetMount:
		mi, ok := p.VFSGetMount(vfs.Handle(a.Int0))
		if !ok {
			return -1
		}
		return int64(mi.MountID)
	case OpVFSGetMountByID:
		h, _, ok := p.VFSGetMountByID(int(a.Int0))
		if !ok {
			return -1
		}
		return int64(h)
	case OpVFSMount:
		id, err := p.VFSMount(vfs.Handle(a.Int0), vfs.Handle(a.Int1))
		if err != nil {
			return -1
		}
		return int64(id)
	case OpVFSUmount:
		return fail(p.VFSUmount(vfs.Handle(a.Int0)))
	case OpVFSOpen:
		fd, err := p.VFSOpen(vfs.Handle(a.Int0), a.Int1 != 0)
		if err != nil {
			return -1
		}
		return int64(fd)
	case OpVFSProcClose:
		return fail(p.VFSClose(int(a.Int0)))
	case OpVFSProcSeek:
		return fail(p.VFSSeek(int(a.Int0), a.Int1))
	case OpVFSProcTell:
		off, err := p.VFSTell(int(a.Int0))
		if err != nil {
			return -1
		}
		return off
	case OpVFSGetByFD:
		h, _, err := p.VFSGetByFDForPid(int(a.Int0), int(a.Int1))
		if err != nil {
			return -1
		}
		return int64(h)
	case OpVFSProcGetByFD:
		h, err := p.VFSGetByFD(int(a.Int0))
		if err != nil {
			return -1
		}
		return int64(h)
	case OpVFSProcDup:
		fd, err := p.VFSDup(int(a.Int0))
		if err != nil {
			return -1
		}
		return int64(fd)
	case OpVFSProcDup2:
		return fail(p.VFSDup2(int(a.Int0), int(a.Int1)))

	case OpPipeOpen:
		return int64(p.PipeOpen())
	case OpPipeRead:
		n, status := p.PipeRead(uintptr(a.Int0), a.Bytes, a.Int1 != 0)
		return pipeCode(n, status)
	case OpPipeWrite:
		n, status := p.PipeWrite(uintptr(a.Int0), a.Bytes, a.Int1 != 0)
		return pipeCode(n, status)

	case OpLockNew:
		slot, err := p.NewLock()
		if err != nil {
			return -1
		}
		return int64(slot)
	case OpLockFree:
		return fail(p.FreeLock(int(a.Int0)))
	case OpLock:
		return fail(p.Lock(int(a.Int0)))
	case OpUnlock:
		return fail(p.Unlock(int(a.Int0)))

	case OpProcSetEnv:
		p.SetEnv(a.Str, string(a.Bytes))
		return 0
	case OpProcGetEnvValue:
		v, ok := p.GetEnv(a.Str)
		if !ok {
			return -1
		}
		return str(v, a.Bytes)
	case OpProcGetEnvName:
		name, ok := p.EnvName(int(a.Int0))
		if !ok {
			return -1
		}
		return str(name, a.Bytes)
	case OpSetGlobal:
		p.GlobalSet(a.Str, string(a.Bytes))
		return 0
	case OpGetGlobal:
		v, ok := p.GlobalGet(a.Str)
		if !ok {
			return -1
		}
		return str(v, a.Bytes)

	case OpIPCSetup:
		p.IPCSetup(uintptr(a.Int0), a.Int1 != 0)
		return 0
	case OpIPCCall:
		reply, dead, err := p.IPCCall(int(a.Int0), a.Bytes)
		if dead {
			return kernel.ChannelDeadCode
		}
		if err != nil {
			return -1
		}
		return int64(len(reply))
	case OpIPCGetArg:
		req, _, err := p.IPCReceive()
		if err != nil {
			return -1
		}
		return int64(len(req))
	case OpIPCSetReturn, OpIPCEnd:
		return fail(p.IPCReply(a.Bytes))
	case OpIPCGetReturn:
		reply, dead, err := p.IPCGetReturn(int(a.Int0))
		if dead {
			return kernel.ChannelDeadCode
		}
		if err != nil {
			return -1
		}
		if len(a.Bytes) > 0 {
			copy(a.Bytes, reply)
		}
		return int64(len(reply))

	case OpDevCharRead:
		return int64(p.DevCharRead(a.Bytes))
	case OpDevCharWrite:
		return int64(p.DevCharWrite(a.Bytes))
	case OpDevBlockRead:
		job, err := p.DevBlockRead(int(a.Int0))
		if err != nil {
			return -1
		}
		return int64(job)
	case OpDevBlockWrite:
		job, err := p.DevBlockWrite(int(a.Int0), a.Bytes)
		if err != nil {
			return -1
		}
		return int64(job)
	case OpDevBlockReadDone:
		n, ready := p.DevBlockReadDone(int(a.Int0), a.Bytes)
		if !ready {
			return kernel.RetryCode
		}
		return int64(n)
	case OpDevBlockWriteDone:
		if !p.DevBlockWriteDone(int(a.Int0)) {
			return kernel.RetryCode
		}
		return 0

	case OpProcUsintRegister:
		p.UsintRegister(int(a.Int0))
		return 0
	case OpProcUsintUnregister:
		p.UsintUnregister(int(a.Int0))
		return 0
	case OpGetUsintPid:
		pid, err := p.UsintPid(int(a.Int0))
		if err != nil {
			return -1
		}
		return int64(pid)
	case OpProcCriticalEnter:
		return fail(p.CriticalEnter())
	case OpProcCriticalQuit:
		p.CriticalQuit()
		return 0
	case OpGetKevent:
		e, err := p.GetKevent()
		if err != nil {
			return -1
		}
		return int64(e.Type)

	case OpGetSysinfo:
		info := p.Kernel().Sysinfo(int(a.Int0))
		return int64(info.ProcCount)
	case OpGetKernelUsec:
		return int64(p.Kernel().KernelUsec())
	case OpGetKernelTic:
		return int64(p.Kernel().KernelTic())
	case OpGetProcs:
		return int64(len(p.Kernel().Procs()))
	case OpProcPing:
		return 0
	case OpProcReadyPing:
		p.SetReadyPing(true)
		return 0
	case OpKprint:
		logging.Info(a.Str)
		return 0

	default:
		logging.Default().Error(fmt.Sprintf("pid:%d, code(%d) error!", p.Pid(), int(code)))
		return -1
	}
}

// fail flattens a typed kernel error to the scalar ABI code.
func fail(err error) int64 {
	if err == nil {
		return 0
	}
	if kerr.IsKind(err, kerr.KindRetry) {
		return kernel.RetryCode
	}
	if kerr.IsKind(err, kerr.KindChannelDead) {
		return kernel.ChannelDeadCode
	}
	return -1
}

func pipeCode(n int, status pipe.Status) int64 {
	switch status {
	case pipe.StatusOK:
		return int64(n)
	case pipe.StatusRetry:
		return kernel.RetryCode
	default:
		return -1
	}
}

// str packs a string result as its length; callers that need the bytes
// read them back out of the out-parameter buffer they supplied (Args.Bytes),
// matching how the real ABI would place a string in a caller-owned buffer
// rather than returning a pointer through r0.
func str(s string, out []byte) int64 {
	copy(out, s)
	return int64(len(s))
}
