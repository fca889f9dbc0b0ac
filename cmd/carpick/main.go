package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/run-bigpig/carpick/internal/logger"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "carpick",
		Short: "Carpick, multi-agent used-car consultation",
		Long:  "Carpick runs a simulated multi-agent consultation that turns a free-text request and budget into a ranked used-vehicle shortlist.",
	}

	cmd.PersistentFlags().String("config", "", "path to config.yaml")
	cmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newSeedCmd())
	cmd.AddCommand(newAskCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "carpick %s (commit: %s, built: %s)\n", Version, Commit, Date)
		},
	}
}

func applyLogLevel(cmd *cobra.Command, configured string) {
	level := configured
	if flag, _ := cmd.Flags().GetString("log-level"); flag != "" {
		level = flag
	}
	logger.SetGlobalLevel(logger.ParseLevel(level))
}

func execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(newRootCmd()))
}
