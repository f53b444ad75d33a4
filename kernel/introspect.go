package kernel

// Sysinfo is the snapshot GET_SYSINFO reports.
type Sysinfo struct {
	ProcCount   int
	KernelUsec  uint64
	KernelTic   uint64
	FreeMemSize int
	ShmAlloced  int
}

// ProcInfo is one row of the GET_PROCS table.
type ProcInfo struct {
	Pid       int
	FatherPid int
	Type      ProcType
	State     State
	Owner     int
	Cmd       string
	GlobalName string
}

// Sysinfo reports the kernel-wide snapshot used by GET_SYSINFO.
func (k *Kernel) Sysinfo(totalMem int) Sysinfo {
	k.mu.Lock()
	defer k.mu.Unlock()
	return Sysinfo{
		ProcCount:   len(k.procs),
		KernelUsec:  k.kernelUsec,
		KernelTic:   k.kernelTic,
		FreeMemSize: totalMem - k.Shm.AllocedSize(),
		ShmAlloced:  k.Shm.AllocedSize(),
	}
}

// Procs returns a snapshot of every live process, for GET_PROCS.
func (k *Kernel) Procs() []ProcInfo {
	k.mu.Lock()
	defer k.mu.Unlock()
	out := make([]ProcInfo, 0, len(k.procs))
	for _, pr := range k.procs {
		out = append(out, ProcInfo{
			Pid: pr.Pid, FatherPid: pr.FatherPid, Type: pr.Type,
			State: pr.State, Owner: pr.Owner, Cmd: pr.Cmd, GlobalName: pr.GlobalName,
		})
	}
	return out
}

// PidByGlobalName implements GET_PID_BY_GNAME, a linear scan since
// global names are rarely registered and never looked up in a hot path.
func (k *Kernel) PidByGlobalName(name string) (int, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	for _, pr := range k.procs {
		if pr.GlobalName == name {
			return pr.Pid, true
		}
	}
	return 0, false
}
