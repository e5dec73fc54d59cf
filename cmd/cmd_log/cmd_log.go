package cmd_log

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/rskv-p/stuff/cmd/cmd_env"
	"github.com/rskv-p/stuff/logger"
)

var (
	level   string
	minimum string
	format  string
	trace   bool
)

var Cmd = &cobra.Command{
	Use:   "log <message...>",
	Short: "Write one record through the configured logger",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cmd_env.Config()
		if err != nil {
			return err
		}
		if format != "" {
			cfg.Log.Format = format
		}
		if minimum != "" {
			cfg.Log.Level = minimum
		}
		lvl, err := logger.ParseLevel(level)
		if err != nil {
			return err
		}

		l, err := cmd_env.Logger(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = l.Close() }()

		var opts []logger.Option
		if trace {
			opts = append(opts, logger.WithCallTrace())
		}
		l.Log(lvl, strings.Join(args, " "), opts...)
		return nil
	},
}

func init() {
	Cmd.Flags().StringVar(&level, "level", "debug", "record severity")
	Cmd.Flags().StringVar(&minimum, "min", "", "minimum severity (overrides config)")
	Cmd.Flags().StringVar(&format, "format", "", "console or json (overrides config)")
	Cmd.Flags().BoolVar(&trace, "trace", false, "attach the call trace")
}
