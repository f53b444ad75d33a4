package kernel

import (
	"kcore-go/ipc"
	"kcore-go/kerr"
)

// IPCSetup installs this process's entry point and prefork hint, making
// it a servable IPC channel other processes can call by pid.
func (p *Proc) IPCSetup(entry uintptr, prefork bool) {
	p.p.Space.IPC.Setup(entry, prefork)
}

// IPCCall places a request on serverPid's channel and blocks until the
// server has supplied a reply, returning it. The call unblocks with
// dead=true once the channel has been marked dead through the server's
// IPCAbandon; a server that exits or is killed while the channel is BUSY
// does not mark it dead, and its caller stays blocked.
func (p *Proc) IPCCall(serverPid int, req []byte) (reply []byte, dead bool, err error) {
	k := p.k
	k.mu.Lock()
	server, found := k.procs[serverPid]
	k.mu.Unlock()
	if !found {
		return nil, false, kerr.ErrNoSuchProcess
	}
	ch := server.Space.IPC

	for {
		ok, retry, chDead := ch.Call(p.p.Pid, req)
		if chDead {
			return nil, true, kerr.ErrChannelDead
		}
		if ok {
			break
		}
		if retry {
			k.block(p.p, ch.StateToken(), StateBlock)
			continue
		}
		return nil, false, kerr.ErrChannelDead
	}

	k.Wakeup(ch.StateToken()) // wake a server parked in IPCReceive

	return p.IPCGetReturn(serverPid)
}

// IPCGetReturn blocks until serverPid's channel transitions to RETURN for
// this caller, then collects the reply and frees the channel for the
// next pending caller. It backs SYS_IPC_GET_RETURN and enforces
// invariant (ii): only the pid recorded as fromPid by Call may observe
// RETURN, exactly as sys_ipc_get_return checks
// "proc->space->ipc.from_pid != _current_proc->pid". IPCCall itself ends
// by calling it, so IPC_CALL already returns the collected reply and
// never leaves one pending for a separate IPC_GET_RETURN.
func (p *Proc) IPCGetReturn(serverPid int) (reply []byte, dead bool, err error) {
	k := p.k
	k.mu.Lock()
	server, found := k.procs[serverPid]
	k.mu.Unlock()
	if !found {
		return nil, false, kerr.ErrNoSuchProcess
	}
	ch := server.Space.IPC

	for {
		reply, ok, retry, chDead, wake := ch.GetReturn(p.p.Pid)
		if chDead {
			return nil, true, kerr.ErrChannelDead
		}
		if ok {
			k.Wakeup(wake) // free the channel for the next pending caller
			return reply, false, nil
		}
		if retry {
			k.block(p.p, ch.DataToken(), StateBlock)
			continue
		}
		return nil, false, kerr.ErrNotCollector
	}
}

// IPCReceive blocks this process (the channel's server) until a call
// arrives, then returns the request bytes and the calling pid.
func (p *Proc) IPCReceive() (req []byte, fromPid int, err error) {
	ch := p.p.Space.IPC
	for {
		if ch.State() == ipc.StateBusy {
			req, err = ch.GetArg()
			if err != nil {
				return nil, 0, err
			}
			return req, ch.CallerPid(), nil
		}
		p.k.block(p.p, ch.StateToken(), StateBlock)
	}
}

// IPCReply supplies the reply and ends the call, waking the caller
// parked in IPCCall's second phase.
func (p *Proc) IPCReply(reply []byte) error {
	ch := p.p.Space.IPC
	if err := ch.SetReturn(reply); err != nil {
		return err
	}
	token, err := ch.End()
	if err != nil {
		return err
	}
	p.k.Wakeup(token)
	return nil
}

// IPCAbandon marks this process's channel dead so any caller blocked in
// IPCCall observes the channel-dead error instead of hanging. Exit and
// Kill do not call it.
func (p *Proc) IPCAbandon() {
	ch := p.p.Space.IPC
	ch.MarkDead()
	p.k.Wakeup(ch.StateToken())
	p.k.Wakeup(ch.DataToken())
}
