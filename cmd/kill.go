package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var killCmd = &cobra.Command{
	Use:   "kill <pid>",
	Short: "Boot the demo workload and issue PROC_KILL against one process",
	Long: `kill boots the standard demo workload and, mid-run, forces the
named pid into ZOMBIE via PROC_KILL — demonstrating that a killed
process's resources (including any lock it held) are not released by
the act of killing it, per spec.md §9's documented sharp edge.`,
	Args: cobra.ExactArgs(1),
	RunE: runKill,
}

func init() {
	rootCmd.AddCommand(killCmd)
}

func runKill(cmd *cobra.Command, args []string) error {
	var pid int
	if _, err := fmt.Sscanf(args[0], "%d", &pid); err != nil {
		return fmt.Errorf("invalid pid %q: %w", args[0], err)
	}

	k, lockTotal := demoSession(0) // pause before the clock runs so the target is likely still alive
	victim := k.Lookup(pid)
	if victim == nil {
		return fmt.Errorf("no such process: pid %d", pid)
	}
	caller := k.Lookup(1)
	if caller == nil {
		return fmt.Errorf("no privileged caller available to issue kill")
	}
	if err := caller.Kill(pid); err != nil {
		return fmt.Errorf("kill pid %d: %w", pid, err)
	}
	fmt.Printf("pid %d killed\n", pid)

	driveTicks(k, bootTicks)
	select {
	case <-lockTotal:
	case <-time.After(2 * time.Second):
	}
	printProcTable(k)
	return nil
}
