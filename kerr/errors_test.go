package kerr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindNotFound, "not found"},
		{KindDenied, "denied"},
		{KindInvalidState, "invalid state"},
		{KindRetry, "retry"},
		{KindChannelDead, "channel dead"},
		{KindResource, "resource error"},
		{KindFault, "fault"},
		{KindInternal, "internal error"},
		{Kind(999), "unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("Kind.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestKernelError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *KernelError
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "<nil>",
		},
		{
			name: "full error",
			err: &KernelError{
				Op:     "ipc_call",
				Pid:    7,
				Kind:   KindNotFound,
				Detail: "no entry registered",
				Err:    fmt.Errorf("lookup failed"),
			},
			expected: "ipc_call: pid 7: no entry registered: lookup failed",
		},
		{
			name: "without pid",
			err: &KernelError{
				Op:     "vfs_mount",
				Kind:   KindInvalidState,
				Detail: "already mounted",
			},
			expected: "vfs_mount: already mounted",
		},
		{
			name: "kind only",
			err: &KernelError{
				Kind: KindDenied,
			},
			expected: "denied",
		},
		{
			name: "with underlying error",
			err: &KernelError{
				Op:   "lock",
				Kind: KindResource,
				Err:  fmt.Errorf("table full"),
			},
			expected: "lock: resource error: table full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("KernelError.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestKernelError_Unwrap(t *testing.T) {
	underlying := fmt.Errorf("underlying error")
	err := &KernelError{Op: "test", Kind: KindInternal, Err: underlying}

	if got := err.Unwrap(); got != underlying {
		t.Errorf("Unwrap() = %v, want %v", got, underlying)
	}

	var nilErr *KernelError
	if got := nilErr.Unwrap(); got != nil {
		t.Errorf("nil.Unwrap() = %v, want nil", got)
	}
}

func TestKernelError_Is(t *testing.T) {
	err1 := &KernelError{Kind: KindNotFound, Op: "test1"}
	err2 := &KernelError{Kind: KindNotFound, Op: "test2"}
	err3 := &KernelError{Kind: KindDenied, Op: "test3"}

	if !err1.Is(err2) {
		t.Error("err1.Is(err2) should be true (same kind)")
	}
	if err1.Is(err3) {
		t.Error("err1.Is(err3) should be false (different kind)")
	}
	if err1.Is(fmt.Errorf("some error")) {
		t.Error("err1.Is(fmt.Errorf(...)) should be false")
	}

	var nilErr *KernelError
	if !nilErr.Is(nil) {
		t.Error("nil.Is(nil) should be true")
	}
}

func TestNew(t *testing.T) {
	err := New(KindInvalidState, "validate", "channel not idle")

	if err.Kind != KindInvalidState {
		t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidState)
	}
	if err.Op != "validate" {
		t.Errorf("Op = %q, want %q", err.Op, "validate")
	}
	if err.Detail != "channel not idle" {
		t.Errorf("Detail = %q, want %q", err.Detail, "channel not idle")
	}
}

func TestWrap(t *testing.T) {
	underlying := fmt.Errorf("permission denied")
	err := Wrap(underlying, KindDenied, "mmio_map")

	if err.Err != underlying {
		t.Error("Wrapped error should preserve underlying error")
	}
	if err.Kind != KindDenied {
		t.Errorf("Kind = %v, want %v", err.Kind, KindDenied)
	}
	if err.Op != "mmio_map" {
		t.Errorf("Op = %q, want %q", err.Op, "mmio_map")
	}
}

func TestWrapWithPid(t *testing.T) {
	underlying := fmt.Errorf("not found")
	err := WrapWithPid(underlying, KindNotFound, "waitpid", 42)

	if err.Pid != 42 {
		t.Errorf("Pid = %d, want %d", err.Pid, 42)
	}
}

func TestWrapWithDetail(t *testing.T) {
	underlying := fmt.Errorf("syscall failed")
	err := WrapWithDetail(underlying, KindInternal, "dispatch", "unknown opcode")

	if err.Detail != "unknown opcode" {
		t.Errorf("Detail = %q, want %q", err.Detail, "unknown opcode")
	}
}

func TestIsKind(t *testing.T) {
	err := &KernelError{Kind: KindNotFound}
	wrapped := fmt.Errorf("wrapped: %w", err)

	if !IsKind(err, KindNotFound) {
		t.Error("IsKind(err, KindNotFound) should be true")
	}
	if !IsKind(wrapped, KindNotFound) {
		t.Error("IsKind(wrapped, KindNotFound) should be true")
	}
	if IsKind(err, KindDenied) {
		t.Error("IsKind(err, KindDenied) should be false")
	}
	if IsKind(fmt.Errorf("plain error"), KindNotFound) {
		t.Error("IsKind(plain error, KindNotFound) should be false")
	}
}

func TestGetKind(t *testing.T) {
	err := &KernelError{Kind: KindResource}
	wrapped := fmt.Errorf("wrapped: %w", err)

	kind, ok := GetKind(err)
	if !ok || kind != KindResource {
		t.Errorf("GetKind(err) = (%v, %v), want (%v, true)", kind, ok, KindResource)
	}

	kind, ok = GetKind(wrapped)
	if !ok || kind != KindResource {
		t.Errorf("GetKind(wrapped) = (%v, %v), want (%v, true)", kind, ok, KindResource)
	}

	_, ok = GetKind(fmt.Errorf("plain error"))
	if ok {
		t.Error("GetKind(plain error) should return false")
	}
}

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  *KernelError
		kind Kind
	}{
		{"ErrNoSuchProcess", ErrNoSuchProcess, KindNotFound},
		{"ErrProcessTable", ErrProcessTable, KindResource},
		{"ErrNoSuchNode", ErrNoSuchNode, KindNotFound},
		{"ErrNodeHasRefs", ErrNodeHasRefs, KindInvalidState},
		{"ErrLockTableFull", ErrLockTableFull, KindResource},
		{"ErrChannelDead", ErrChannelDead, KindChannelDead},
		{"ErrPermission", ErrPermission, KindDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("%s.Kind = %v, want %v", tt.name, tt.err.Kind, tt.kind)
			}
			wrapped := Wrap(fmt.Errorf("underlying"), tt.kind, "test")
			if !errors.Is(wrapped, tt.err) {
				t.Errorf("errors.Is(wrapped, %s) should be true", tt.name)
			}
		})
	}
}

func TestErrorChain(t *testing.T) {
	underlying := fmt.Errorf("table full")
	err1 := Wrap(underlying, KindResource, "lock_new")
	err2 := fmt.Errorf("syscall failed: %w", err1)

	if !errors.Is(err2, ErrLockTableFull) {
		t.Error("errors.Is should find ErrLockTableFull in chain")
	}

	var kerr *KernelError
	if !errors.As(err2, &kerr) {
		t.Error("errors.As should find KernelError in chain")
	}
	if kerr.Op != "lock_new" {
		t.Errorf("kerr.Op = %q, want %q", kerr.Op, "lock_new")
	}

	if errors.Unwrap(err1) != underlying {
		t.Error("Unwrap should return underlying error")
	}
}
