package kernel

import "golang.org/x/sys/unix"

// monotonicUsec reads CLOCK_MONOTONIC as microseconds, giving the
// kernel's simulated tick source a real hardware-timer-shaped baseline
// (timer_read_sys_usec in the external dev interface) instead of a
// wall-clock call that could jump backward under NTP adjustment.
func monotonicUsec() uint64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return 0
	}
	return uint64(ts.Sec)*1_000_000 + uint64(ts.Nsec)/1_000
}

// BootBaseline records the real monotonic time on its first call and
// returns that same value on every later call. It is separate from the
// tick-driven kernelUsec/kernelTic counters, and GET_SYSINFO does not
// report it.
func (k *Kernel) BootBaseline() uint64 {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.bootUsec == 0 {
		k.bootUsec = monotonicUsec()
	}
	return k.bootUsec
}
