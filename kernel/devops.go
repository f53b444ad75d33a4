package kernel

// DevCharRead implements DEV_CHAR_READ: drains whatever the UART has
// buffered into out, never blocking (an empty device just returns 0).
func (p *Proc) DevCharRead(out []byte) int {
	return p.k.Dev.CharRead(out)
}

// DevCharWrite implements DEV_CHAR_WRITE.
func (p *Proc) DevCharWrite(data []byte) int {
	return p.k.Dev.CharWrite(data)
}

// DevBlockRead implements DEV_BLOCK_READ: starts a sector read and
// returns a job handle for DEV_BLOCK_READ_DONE to poll.
func (p *Proc) DevBlockRead(sector int) (int, error) {
	return p.k.Dev.BlockRead(sector)
}

// DevBlockWrite implements DEV_BLOCK_WRITE.
func (p *Proc) DevBlockWrite(sector int, data []byte) (int, error) {
	return p.k.Dev.BlockWrite(sector, data)
}

// DevBlockReadDone implements DEV_BLOCK_READ_DONE: ready=false is the
// retry-sentinel case for an I/O not yet complete.
func (p *Proc) DevBlockReadDone(job int, out []byte) (n int, ready bool) {
	return p.k.Dev.BlockReadDone(job, out)
}

// DevBlockWriteDone implements DEV_BLOCK_WRITE_DONE.
func (p *Proc) DevBlockWriteDone(job int) bool {
	return p.k.Dev.BlockWriteDone(job)
}
