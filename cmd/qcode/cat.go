package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kobzarvs/qcode/internal/app"
	"github.com/kobzarvs/qcode/internal/config"
	"github.com/kobzarvs/qcode/internal/termout"
)

func newCatCmd() *cobra.Command {
	var color string
	cmd := &cobra.Command{
		Use:   "cat FILE",
		Short: "Print a file with syntax highlighting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			profile, err := termout.Profile(color, out)
			if err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			langs, err := config.LoadLanguages()
			if err != nil {
				return err
			}
			doc, _, err := app.LoadDocument(cfg, langs, args[0])
			if err != nil {
				return err
			}
			return termout.Write(out, doc, cfg.Theme, profile)
		},
	}
	cmd.Flags().StringVar(&color, "color", "auto", "colour output: auto, always or never")
	return cmd
}
