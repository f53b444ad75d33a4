// Package kerr provides typed error handling for the kernel core.
//
// Kernel-internal code returns *KernelError so callers can classify a
// failure without string matching. The syscall dispatcher is the single
// place that flattens a *KernelError into the scalar ABI return code
// described by the error taxonomy in the kernel's syscall contract; every
// layer below the dispatcher uses ordinary Go error returns.
package kerr

import (
	"errors"
	"fmt"
)

// Kind classifies a kernel error for both logging and ABI translation.
type Kind int

const (
	// KindNotFound covers an invalid handle: pid, fd, node, lock slot, device type.
	KindNotFound Kind = iota
	// KindDenied covers a privilege check failure.
	KindDenied
	// KindInvalidState covers an operation attempted in a state that forbids it.
	KindInvalidState
	// KindRetry signals the caller should re-invoke (non-blocking retry, not a failure).
	KindRetry
	// KindChannelDead marks an IPC channel whose server has no entry or died mid-call.
	KindChannelDead
	// KindResource covers allocation failures (lock table full, SHM exhausted, pipe buffer full).
	KindResource
	// KindFault covers a process-fatal fault (data/prefetch abort).
	KindFault
	// KindInternal covers a bug in the kernel itself.
	KindInternal
)

// String returns a human-readable name for the error kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindDenied:
		return "denied"
	case KindInvalidState:
		return "invalid state"
	case KindRetry:
		return "retry"
	case KindChannelDead:
		return "channel dead"
	case KindResource:
		return "resource error"
	case KindFault:
		return "fault"
	case KindInternal:
		return "internal error"
	default:
		return "unknown error"
	}
}

// KernelError is the error type returned by every kernel-internal operation.
type KernelError struct {
	// Op is the operation that failed (e.g. "ipc_call", "vfs_open").
	Op string
	// Pid is the process the error concerns, if any; 0 means unset.
	Pid int
	// Err is the underlying error, if any.
	Err error
	// Kind classifies the failure.
	Kind Kind
	// Detail is additional human-readable context.
	Detail string
}

// Error returns the error message.
func (e *KernelError) Error() string {
	if e == nil {
		return "<nil>"
	}
	var msg string
	if e.Op != "" {
		msg = fmt.Sprintf("%s: ", e.Op)
	}
	if e.Pid != 0 {
		msg += fmt.Sprintf("pid %d: ", e.Pid)
	}
	if e.Detail != "" {
		msg += e.Detail
	} else {
		msg += e.Kind.String()
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *KernelError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether the error matches the target by Kind.
func (e *KernelError) Is(target error) bool {
	if e == nil {
		return target == nil
	}
	if t, ok := target.(*KernelError); ok {
		return e.Kind == t.Kind
	}
	return false
}

// New creates a new KernelError with the given kind.
func New(kind Kind, op string, detail string) *KernelError {
	return &KernelError{Op: op, Kind: kind, Detail: detail}
}

// Wrap wraps an error with an operation and kind.
func Wrap(err error, kind Kind, op string) *KernelError {
	return &KernelError{Op: op, Err: err, Kind: kind}
}

// WrapWithPid wraps an error with a process identity.
func WrapWithPid(err error, kind Kind, op string, pid int) *KernelError {
	return &KernelError{Op: op, Pid: pid, Err: err, Kind: kind}
}

// WrapWithDetail wraps an error with additional detail.
func WrapWithDetail(err error, kind Kind, op string, detail string) *KernelError {
	return &KernelError{Op: op, Err: err, Kind: kind, Detail: detail}
}

// IsKind reports whether err is a *KernelError of the given kind.
func IsKind(err error, kind Kind) bool {
	var kerr *KernelError
	if errors.As(err, &kerr) {
		return kerr.Kind == kind
	}
	return false
}

// GetKind returns the error kind if err is a *KernelError.
func GetKind(err error) (Kind, bool) {
	var kerr *KernelError
	if errors.As(err, &kerr) {
		return kerr.Kind, true
	}
	return 0, false
}

// Re-exported standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)
