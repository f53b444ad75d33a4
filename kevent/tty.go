package kevent

import (
	"os"

	"golang.org/x/term"
)

// TTY bridges a real terminal's keyboard input into kernel events,
// putting the controlling terminal in raw mode the way a console driver
// would, then feeding every byte read to the kernel event queue as an
// EventKeyPress so user space observes it through GET_KEVENT like any
// other interrupt source.
type TTY struct {
	fd    int
	state *term.State
	stop  chan struct{}
	done  chan struct{}
}

// OpenTTY puts f (normally os.Stdin) into raw mode and starts forwarding
// keystrokes into q until Close is called.
func OpenTTY(f *os.File, q *Queue) (*TTY, error) {
	fd := int(f.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	t := &TTY{fd: fd, state: state, stop: make(chan struct{}), done: make(chan struct{})}
	go t.pump(f, q)
	return t, nil
}

func (t *TTY) pump(f *os.File, q *Queue) {
	defer close(t.done)
	buf := make([]byte, 1)
	for {
		select {
		case <-t.stop:
			return
		default:
		}
		n, err := f.Read(buf)
		if err != nil {
			return
		}
		if n > 0 {
			q.Push(EventKeyPress, []byte{buf[0]})
		}
	}
}

// Close restores the terminal's prior mode. The forwarding goroutine may
// stay parked in its current Read until the next keystroke arrives; stop
// only signals it to exit rather than block on a closed fd.
func (t *TTY) Close() error {
	close(t.stop)
	return term.Restore(t.fd, t.state)
}
