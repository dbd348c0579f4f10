package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts globalOptions

	root := &cobra.Command{
		Use:           "dvdlend",
		Short:         "Track DVDs lent to friends",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "config.yaml", "path to an optional YAML config file")
	root.PersistentFlags().StringVar(&opts.addr, "addr", "http://localhost:8080", "API address used by client commands")

	root.AddCommand(
		newServeCmd(&opts),
		newDemoCmd(&opts),
		newFriendCmd(&opts),
		newDVDCmd(&opts),
		newLoanCmd(&opts),
	)
	return root
}

type globalOptions struct {
	configPath string
	addr       string
}
