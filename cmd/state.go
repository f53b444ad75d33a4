package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"kcore-go/kernel"
)

var stateCmd = &cobra.Command{
	Use:   "state <pid>",
	Short: "Print one process's state from a freshly booted demo workload",
	Long: `state boots the standard demo workload, lets it run for --ticks
ticks, then reports the GET_PROCS row for <pid> — the simulated
equivalent of inspecting one process's saved context and lifecycle
state.`,
	Args: cobra.ExactArgs(1),
	RunE: runState,
}

func init() {
	rootCmd.AddCommand(stateCmd)
	stateCmd.Flags().IntVar(&bootTicks, "ticks", 60, "number of simulated timer ticks to drive")
}

func runState(cmd *cobra.Command, args []string) error {
	var pid int
	if _, err := fmt.Sscanf(args[0], "%d", &pid); err != nil {
		return fmt.Errorf("invalid pid %q: %w", args[0], err)
	}

	k, lockTotal := demoSession(bootTicks)
	select {
	case <-lockTotal:
	case <-time.After(2 * time.Second):
	}

	for _, pr := range k.Procs() {
		if pr.Pid == pid {
			printProcState(pr)
			return nil
		}
	}
	return fmt.Errorf("no such process: pid %d", pid)
}

func printProcState(pr kernel.ProcInfo) {
	fmt.Printf("pid:         %d\n", pr.Pid)
	fmt.Printf("father_pid:  %d\n", pr.FatherPid)
	fmt.Printf("type:        %s\n", pr.Type)
	fmt.Printf("state:       %s\n", colorState(pr.State))
	fmt.Printf("owner:       %d\n", pr.Owner)
	fmt.Printf("cmd:         %s\n", pr.Cmd)
	if pr.GlobalName != "" {
		fmt.Printf("global_name: %s\n", pr.GlobalName)
	}
}
