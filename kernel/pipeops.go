package kernel

import (
	"kcore-go/pipe"
)

// PipeOpen creates a new pipe buffer and registers it so its token can be
// resolved later, returning the token used as the pipe's opaque handle.
func (p *Proc) PipeOpen() uintptr {
	k := p.k
	buf := pipe.New(PipeBufSize)
	k.mu.Lock()
	k.pipes[buf.Token()] = buf
	k.mu.Unlock()
	return buf.Token()
}

// PipeClose drops this process's end of a pipe, decrementing its refs.
func (p *Proc) PipeClose(token uintptr) {
	k := p.k
	k.mu.Lock()
	buf, ok := k.pipes[token]
	k.mu.Unlock()
	if !ok {
		return
	}
	buf.Unref()
	if buf.Refs() <= 0 {
		k.mu.Lock()
		delete(k.pipes, token)
		k.mu.Unlock()
	}
}

// PipeRead is the PIPE_READ primitive, matching sys_pipe_read: a
// successful or EOF read returns immediately. An empty buffer with a
// live writer returns pipe.StatusRetry unless block is set, in which
// case the caller parks on the buffer's token via k.block and retries
// once woken — exactly the "if(block == 0) retry; else proc_block_on"
// branch in the original, and the same blocking mechanism lock/IPC/sleep
// already use. Either way, a successful or failed attempt wakes any peer
// parked on the buffer (proc_wakeup((uint32_t)buffer), unconditional).
func (p *Proc) PipeRead(token uintptr, out []byte, block bool) (int, pipe.Status) {
	k := p.k
	for {
		k.mu.Lock()
		buf, ok := k.pipes[token]
		k.mu.Unlock()
		if !ok {
			return 0, pipe.StatusEOF
		}
		n, status := buf.Read(out)
		k.Wakeup(buf.Token())
		if status != pipe.StatusRetry || !block {
			return n, status
		}
		k.block(p.p, buf.Token(), StateBlock)
	}
}

// PipeWrite is the PIPE_WRITE primitive, symmetric with PipeRead.
func (p *Proc) PipeWrite(token uintptr, data []byte, block bool) (int, pipe.Status) {
	k := p.k
	for {
		k.mu.Lock()
		buf, ok := k.pipes[token]
		k.mu.Unlock()
		if !ok {
			return 0, pipe.StatusEOF
		}
		n, status := buf.Write(data)
		k.Wakeup(buf.Token())
		if status != pipe.StatusRetry || !block {
			return n, status
		}
		k.block(p.p, buf.Token(), StateBlock)
	}
}
