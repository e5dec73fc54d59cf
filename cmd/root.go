package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rskv-p/stuff/cmd/cmd_env"
	"github.com/rskv-p/stuff/cmd/cmd_json"
	"github.com/rskv-p/stuff/cmd/cmd_log"
	"github.com/rskv-p/stuff/cmd/cmd_store"
)

var rootCmd = &cobra.Command{
	Use:          "stuff",
	Short:        "JSON, persistence and logging helpers",
	SilenceUsage: true,
}

// Root returns the root command with all subcommands attached.
func Root() *cobra.Command {
	return rootCmd
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cmd_env.ConfigPath, "config", "c", "", "config file (default $STUFF_CONFIG or ./stuff.json)")

	rootCmd.AddCommand(cmd_json.Cmd)
	rootCmd.AddCommand(cmd_store.Cmd)
	rootCmd.AddCommand(cmd_log.Cmd)
}
