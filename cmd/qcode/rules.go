package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kobzarvs/qcode/internal/config"
	"github.com/kobzarvs/qcode/internal/highlight"
)

func newRulesCmd() *cobra.Command {
	var language string
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the highlighting rules of a language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			langs, err := config.LoadLanguages()
			if err != nil {
				return err
			}
			lang := langs.Find(language)
			if lang == nil {
				names := make([]string, 0, len(langs.Languages))
				for _, l := range langs.Languages {
					names = append(names, l.Name)
				}
				return fmt.Errorf("unknown language %q (known: %s)", language, strings.Join(names, ", "))
			}
			hl, err := lang.Build()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "#\tCATEGORY\tGROUP\tPATTERN\n")
			for i, r := range hl.Rules().Rules() {
				fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", i, r.Category, r.Group, r.Pattern)
			}
			fmt.Fprintf(tw, "-\t%s\t-\t/* ... */ (multi-line)\n", highlight.BlockComment)
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&language, "language", "l", "cpp", "language name from languages.toml")
	return cmd
}
