package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kobzarvs/qcode/internal/app"
	"github.com/kobzarvs/qcode/internal/logger"
)

func newRootCmd() *cobra.Command {
	var debug bool
	root := &cobra.Command{
		Use:           "qcode [file]",
		Short:         "A small terminal code editor with incremental syntax highlighting",
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if err := logger.Init(debug); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "qcode: logging disabled:", err)
			}
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			logger.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := app.Options{}
			if len(args) == 1 {
				opts.Path = args[0]
			}
			return app.New(opts).Run(cmd.Context())
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "write debug output to the log file")
	root.AddCommand(newCatCmd(), newRulesCmd())
	return root
}
