package kernel

// Context is the saved register frame a trap entry publishes and a
// schedule swaps in and out. On real hardware this is populated by the
// assembly trampoline; here it is the explicit state a Program closure
// observes and mutates across a block/wake round-trip.
type Context struct {
	// Regs holds general-purpose registers r0..r12. Regs[0] carries the
	// scalar syscall return value, matching "the saved frame's first
	// general register" in the trap entry contract.
	Regs [13]uint64
	SP   uint64
	PC   uint64
	LR   uint64
	Mode uint32
}

// ReturnValue reads the scalar return register (r0).
func (c *Context) ReturnValue() int64 {
	return int64(c.Regs[0])
}

// SetReturnValue writes the scalar return register (r0).
func (c *Context) SetReturnValue(v int64) {
	c.Regs[0] = uint64(v)
}

// Arg returns syscall argument i (0,1,2), following a0/a1/a2 in r1..r3.
func (c *Context) Arg(i int) uint64 {
	return c.Regs[1+i]
}
