package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"kcore-go/kernel"
	"kcore-go/kernel/workload"
)

var bootTicks int

var bootCmd = &cobra.Command{
	Use:   "boot",
	Short: "Boot a kernel, run the built-in demo workload, and report",
	Long: `Boot spawns one kernel instance, runs the five demo Programs in
kernel/workload (mirroring spec.md §8's end-to-end scenarios), drives
the simulated timer for --ticks ticks of --tick-usec microseconds each,
and prints the resulting process table.`,
	Args: cobra.NoArgs,
	RunE: runBoot,
}

func init() {
	rootCmd.AddCommand(bootCmd)
	bootCmd.Flags().IntVar(&bootTicks, "ticks", 60, "number of simulated timer ticks to drive")
}

// demoSession boots a kernel, spawns the standard workload set, and
// drives the clock for ticks ticks of tickUsec microseconds — shared by
// boot/ps/state/kill since none of this kernel's state survives a
// process exit (spec.md §6: no persisted state).
func demoSession(ticks int) (*kernel.Kernel, chan int) {
	k := kernel.New()
	lockTotal := make(chan int, 1)

	k.Spawn("echo-server", 0, workload.EchoServer)
	time.Sleep(5 * time.Millisecond)

	r1 := make(chan string, 1)
	server := k.Lookup(1)
	if server != nil {
		k.Spawn("ipc-caller-1", 0, workload.IPCCaller(server.Pid(), "hello", r1))
	}

	observed := make(chan []byte, 1)
	k.Spawn("pipe-demo", 0, workload.PipeProducerConsumer("abc", observed))

	k.Spawn("lock-demo", 0, workload.LockRacers(500, lockTotal))

	mountResult := make(chan bool, 1)
	k.Spawn("vfs-demo", 0, workload.VFSMountDemo(mountResult))

	woke := make(chan uint64, 1)
	k.Spawn("sleep-demo", 0, workload.SleepDemo(20_000, woke))

	driveTicks(k, ticks)
	return k, lockTotal
}

func driveTicks(k *kernel.Kernel, ticks int) {
	time.Sleep(5 * time.Millisecond)
	for i := 0; i < ticks; i++ {
		k.Tick(tickUsec)
		time.Sleep(time.Millisecond)
	}
}

func runBoot(cmd *cobra.Command, args []string) error {
	k, lockTotal := demoSession(bootTicks)

	select {
	case total := <-lockTotal:
		fmt.Printf("lock-demo: counter = %d\n", total)
	case <-time.After(2 * time.Second):
		fmt.Println("lock-demo: timed out waiting for completion")
	}

	printProcTable(k)
	return nil
}

func printProcTable(k *kernel.Kernel) {
	fmt.Printf("uptime: %d usec, %d ticks\n\n", k.KernelUsec(), k.KernelTic())
	fmt.Printf("%-6s %-6s %-10s %-9s %-5s %s\n", "PID", "PPID", "TYPE", "STATE", "UID", "CMD")
	for _, pr := range k.Procs() {
		fmt.Printf("%-6d %-6d %-10s %-9s %-5d %s\n",
			pr.Pid, pr.FatherPid, pr.Type, colorState(pr.State), pr.Owner, pr.Cmd)
	}
}

func colorState(s kernel.State) string {
	switch s {
	case kernel.StateRunning, kernel.StateReady:
		return color.GreenString(s.String())
	case kernel.StateZombie:
		return color.RedString(s.String())
	case kernel.StateBlock, kernel.StateSleep, kernel.StateWait:
		return color.YellowString(s.String())
	default:
		return s.String()
	}
}
