package cmd_store

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rskv-p/stuff/cmd/cmd_env"
	"github.com/rskv-p/stuff/codec"
	"github.com/rskv-p/stuff/store"
)

var Cmd = &cobra.Command{
	Use:   "store",
	Short: "Save and load JSON documents in the cache or documents directory",
}

var (
	location string
	pretty   bool
)

// open builds a Store from the resolved config.
func open() (*store.Store, store.Location, error) {
	loc, err := store.ParseLocation(location)
	if err != nil {
		return nil, 0, err
	}
	cfg, err := cmd_env.Config()
	if err != nil {
		return nil, 0, err
	}
	log, err := cmd_env.Logger(cfg)
	if err != nil {
		return nil, 0, err
	}
	opts, err := cfg.StoreOptions()
	if err != nil {
		return nil, 0, err
	}
	return store.New(append(opts, store.WithLogger(log))...), loc, nil
}

var saveCmd = &cobra.Command{
	Use:   "save <name> [file]",
	Short: "Validate a JSON document and store it atomically",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, loc, err := open()
		if err != nil {
			return err
		}
		data, err := cmd_env.ReadInput(cmd.InOrStdin(), args[1:])
		if err != nil {
			return err
		}
		return s.SaveRaw(loc, args[0], data)
	},
}

var loadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Print a stored document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, loc, err := open()
		if err != nil {
			return err
		}
		data, err := s.LoadRaw(loc, args[0])
		if err != nil {
			return err
		}
		if pretty {
			v, err := codec.Decode[any](data, codec.WithUseNumber())
			if err != nil {
				return err
			}
			if data, err = codec.Encode(v, codec.Pretty()); err != nil {
				return err
			}
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	},
}

var removeCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Remove a stored document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, loc, err := open()
		if err != nil {
			return err
		}
		return s.Remove(loc, args[0])
	},
}

var pathCmd = &cobra.Command{
	Use:   "path <name>",
	Short: "Print the file backing a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, loc, err := open()
		if err != nil {
			return err
		}
		p, err := s.Path(loc, args[0])
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), p)
		return err
	},
}

func init() {
	Cmd.PersistentFlags().StringVarP(&location, "location", "l", "cache", "cache or documents")
	loadCmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "indent the output")

	Cmd.AddCommand(saveCmd)
	Cmd.AddCommand(loadCmd)
	Cmd.AddCommand(removeCmd)
	Cmd.AddCommand(pathCmd)
}
