package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version information - set at build time via ldflags
var version = "dev"

var (
	configPath  string
	journalPath string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "arrivq",
	Short: "Priority task manager with arrival-ordered listing",
	Long: `arrivq keeps a set of pending tasks and answers two questions:
which task runs next (highest priority, earliest arrival on ties) and
what is pending, oldest first. Tasks can be cancelled before they run.

The demo and run commands replay a script of operations against a fresh
manager and print the outcome of every step.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "arrivq %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yml", "path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&journalPath, "journal", "", "write a CSV event journal to this path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
