package kernel

// NewLock allocates a numbered lock in this process's address space.
func (p *Proc) NewLock() (int, error) {
	return p.p.Space.Locks.NewSlot()
}

// FreeLock releases a numbered lock slot.
func (p *Proc) FreeLock(slot int) error {
	return p.p.Space.Locks.Free(slot)
}

// Lock acquires slot, blocking (via the retry-sentinel protocol) until
// it is free.
func (p *Proc) Lock(slot int) error {
	for {
		ok, token, err := p.p.Space.Locks.Lock(slot)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		p.k.block(p.p, token, StateBlock)
	}
}

// Unlock releases slot and wakes at least one blocked waiter, if any.
func (p *Proc) Unlock(slot int) error {
	token, err := p.p.Space.Locks.Unlock(slot)
	if err != nil {
		return err
	}
	p.k.Wakeup(token)
	return nil
}
