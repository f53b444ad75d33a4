// Package ipc implements the synchronous request/reply channel that is
// the only cross-address-space RPC mechanism in the kernel: a three-state
// machine (IDLE/BUSY/RETURN) per address space, switched on exactly the
// way the teacher's hooks package switches on a small typed enum to pick
// the right list of actions to run.
package ipc

import (
	"unsafe"

	"kcore-go/kerr"
)

// State is one of the three positions a channel can occupy.
type State int

const (
	StateIdle State = iota
	StateBusy
	StateReturn
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateBusy:
		return "BUSY"
	case StateReturn:
		return "RETURN"
	default:
		return "UNKNOWN"
	}
}

// Channel is the IPC block of one address space: the service endpoint a
// program installs by calling Setup.
type Channel struct {
	// Entry is a user-space function address; 0 means "no service registered".
	Entry uintptr
	// Prefork hints that the kernel may dedicate a worker thread to this
	// channel instead of serializing calls on the server's own thread.
	// The scheduler in this implementation never spawns that worker (see
	// the architecture decision in SPEC_FULL.md); the hint is preserved
	// read-only for introspection.
	Prefork bool

	state  State
	fromPid int
	data    []byte
	dead    bool
}

// Setup installs (or clears, with entry==0) the channel's service entry.
func (c *Channel) Setup(entry uintptr, prefork bool) {
	c.Entry = entry
	c.Prefork = prefork
	c.state = StateIdle
	c.dead = false
}

// State reports the channel's current position, for introspection only.
func (c *Channel) State() State { return c.state }

// StateToken and DataToken are the opaque wait tokens callers block on while the channel is
// BUSY (waiting for §4.6 step 2 to finish) or while waiting for RETURN.
// Two distinct tokens exist per channel: one for "state changed" (the
// next caller may proceed) and one for "data arrived" (the collector may
// read the reply); both are derived from the channel's own address so
// they are stable and unique per channel.
func (c *Channel) StateToken() uintptr { return channelToken(c, 1) }
func (c *Channel) DataToken() uintptr  { return channelToken(c, 2) }

func channelToken(c *Channel, salt uintptr) uintptr {
	return uintptr(unsafe.Pointer(c)) ^ (salt << 60)
}

// Call implements the caller side of §4.6 step 1. ok=true means the
// request was accepted and the caller should proceed to GetReturn;
// ok=false with retry=true means the channel was busy and the caller
// should block on StateToken and retry; dead=true means the server has
// no entry or is unrecoverable (ABI code -2).
func (c *Channel) Call(fromPid int, req []byte) (ok, retry, dead bool) {
	if c.Entry == 0 || c.dead {
		return false, false, true
	}
	if c.state != StateIdle {
		return false, true, false
	}
	c.state = StateBusy
	c.fromPid = fromPid
	c.data = append([]byte(nil), req...)
	return true, false, false
}

// GetArg returns the request payload for the server's entry function.
func (c *Channel) GetArg() ([]byte, error) {
	if c.state != StateBusy {
		return nil, kerr.New(kerr.KindInvalidState, "ipc_get_arg", "channel not busy")
	}
	return c.data, nil
}

// SetReturn copies the reply bytes into the channel (§4.6 step 2).
func (c *Channel) SetReturn(reply []byte) error {
	if c.state != StateBusy {
		return kerr.New(kerr.KindInvalidState, "ipc_set_return", "channel not busy")
	}
	c.data = append([]byte(nil), reply...)
	return nil
}

// End transitions BUSY -> RETURN and returns the data token the kernel
// should wake after this call.
func (c *Channel) End() (token uintptr, err error) {
	if c.state != StateBusy {
		return 0, kerr.New(kerr.KindInvalidState, "ipc_end", "channel not busy")
	}
	c.state = StateReturn
	return c.DataToken(), nil
}

// GetReturn implements §4.6 step 3. ok=true returns the reply and clears
// the channel to IDLE, yielding the state token to wake for the next
// pending caller. retry=true means the caller should block on DataToken.
func (c *Channel) GetReturn(callerPid int) (reply []byte, ok, retry, dead bool, wake uintptr) {
	if c.dead {
		return nil, false, false, true, 0
	}
	if c.state != StateReturn || c.fromPid != callerPid {
		return nil, false, true, false, 0
	}
	reply = c.data
	c.data = nil
	c.fromPid = 0
	c.state = StateIdle
	return reply, true, false, false, c.StateToken()
}

// MarkDead marks the channel permanently unrecoverable, e.g. because the
// owning process exited while the channel was BUSY (invariant (iv)).
func (c *Channel) MarkDead() {
	c.dead = true
}

// Dead reports whether the channel is permanently unrecoverable.
func (c *Channel) Dead() bool { return c.dead }

// CallerPid returns the pid recorded by Call while the channel is BUSY.
func (c *Channel) CallerPid() int { return c.fromPid }
