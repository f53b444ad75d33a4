package kernel

import "kcore-go/kevent"

// GetKevent blocks until a kernel event is queued, then dequeues and
// returns it; GET_KEVENT is the one syscall the privileged event-loop
// process is expected to spend most of its time parked in. Only a
// privileged caller may listen, matching sys_get_kevent_raw's
// "if(_current_proc->owner != 0) return NULL;".
func (p *Proc) GetKevent() (kevent.Event, error) {
	if err := p.RequirePrivileged(); err != nil {
		return kevent.Event{}, err
	}
	k := p.k
	for {
		k.mu.Lock()
		e, ok := k.Kev.Pop()
		token := k.Kev.Token()
		k.mu.Unlock()
		if ok {
			return e, nil
		}
		k.block(p.p, token, StateBlock)
	}
}

// PushKevent enqueues an event and wakes a parked GET_KEVENT caller, if
// any. Used by the trap path (IRQKey) and workloads simulating hardware.
func (k *Kernel) PushKevent(typ int, data []byte) {
	k.mu.Lock()
	k.Kev.Push(typ, data)
	token := k.Kev.Token()
	k.mu.Unlock()
	k.Wakeup(token)
}

// UsintRegister binds a user-interrupt id to this process.
func (p *Proc) UsintRegister(id int) {
	p.k.mu.Lock()
	defer p.k.mu.Unlock()
	p.k.Usint.Register(id, p.p.Pid)
}

// UsintUnregister removes a user-interrupt binding.
func (p *Proc) UsintUnregister(id int) {
	p.k.mu.Lock()
	defer p.k.mu.Unlock()
	p.k.Usint.Unregister(id)
}

// UsintPid returns the pid registered for a user-interrupt id. Only a
// privileged caller may query this reverse mapping (spec.md §4.7).
func (p *Proc) UsintPid(id int) (int, error) {
	if err := p.RequirePrivileged(); err != nil {
		return 0, err
	}
	p.k.mu.Lock()
	defer p.k.mu.Unlock()
	return p.k.Usint.PidFor(id)
}
