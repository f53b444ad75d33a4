// kcore-go simulates the core of a single-CPU preemptive microkernel in
// user-space Go: process/thread lifecycle, the block/wake primitive,
// synchronous IPC, the VFS node graph, pipes, locks, shared memory
// hooks, the kernel event queue, and the syscall dispatcher.
//
// Commands:
//
//	boot    - Boot a kernel, run the demo workload, and report
//	ps      - Print the process table of a freshly booted demo workload
//	state   - Print one process's state from a freshly booted demo workload
//	kill    - Boot the demo workload and issue PROC_KILL against one process
//	version - Print version information
package main

import (
	"fmt"
	"os"

	"kcore-go/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
