package cmd_json

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rskv-p/stuff/cmd/cmd_env"
	"github.com/rskv-p/stuff/codec"
)

var Cmd = &cobra.Command{
	Use:   "json",
	Short: "Inspect and re-encode JSON documents",
}

var (
	keyPath string
	pretty  bool
)

var pickCmd = &cobra.Command{
	Use:   "pick [file]",
	Short: "Print the value at a key path (reads stdin without a file)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cmd_env.Config()
		if err != nil {
			return err
		}
		opts, err := cfg.CodecOptions()
		if err != nil {
			return err
		}
		opts = append(opts, codec.WithKeyPath(keyPath), codec.WithUseNumber())
		if pretty {
			opts = append(opts, codec.Pretty())
		}

		data, err := cmd_env.ReadInput(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}
		v, err := codec.Decode[any](data, opts...)
		if err != nil {
			return err
		}
		out, err := codec.Encode(v, opts...)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return err
	},
}

func init() {
	pickCmd.Flags().StringVarP(&keyPath, "key-path", "k", "", "dotted path to select, e.g. user.profile")
	pickCmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "indent the output")
	Cmd.AddCommand(pickCmd)
}
