package cmd

import (
	"time"

	"github.com/spf13/cobra"
)

var psCmd = &cobra.Command{
	Use:   "ps",
	Short: "Boot the demo workload and print the resulting process table",
	Long: `ps boots a fresh kernel, runs the standard demo workload to
quiescence, and prints GET_PROCS' snapshot as a table, color-coded by
process state the way lazydocker color-codes container status.`,
	Args: cobra.NoArgs,
	RunE: runPs,
}

func init() {
	rootCmd.AddCommand(psCmd)
}

func runPs(cmd *cobra.Command, args []string) error {
	k, lockTotal := demoSession(bootTicks)
	select {
	case <-lockTotal:
	case <-time.After(2 * time.Second):
	}
	printProcTable(k)
	return nil
}
