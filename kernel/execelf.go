package kernel

import "kcore-go/kerr"

// RegisterProgram names a Program so EXEC_ELF can load it. A real kernel
// parses ELF bytes out of a VFS file; this one has no page-table-backed
// image to execute into, so EXEC_ELF resolves a name against this
// in-memory registry instead (see SPEC_FULL.md's Non-goals).
func (k *Kernel) RegisterProgram(name string, prog Program) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.programs[name] = prog
}

// ExecELF replaces the calling process's program image with the named
// one: cwd/owner/pid survive, env and open descriptors do not, and cmd
// becomes the new image's name, matching a real exec()'s address-space
// replacement. Because a running
// goroutine cannot swap out its own call stack, the new Program runs as
// a tail call from inside ExecELF — from the scheduler's perspective
// this is indistinguishable from the original code never returning.
func (p *Proc) ExecELF(name string) error {
	k := p.k
	k.mu.Lock()
	prog, ok := k.programs[name]
	if !ok {
		k.mu.Unlock()
		return kerr.New(kerr.KindNotFound, "exec_elf", "no such program image")
	}
	p.p.Space.FDs.CloseAll(k.VFS)
	p.p.Space.Env = make(map[string]string)
	p.p.Cmd = name
	k.mu.Unlock()

	prog(p)
	return nil
}
