package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ravivyas84/dailynotes-panel/internal/summary"
)

var flagSummaryOpen bool

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Regenerate the summary document, or print the open-task view",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		if flagSummaryOpen {
			entries, _ := summary.Collect(s.Workspace())
			fmt.Print(summary.Render(entries, true))
			return nil
		}
		path, err := s.RegenerateSummary()
		if err != nil {
			return err
		}
		fmt.Println("Wrote", path)
		return nil
	},
}

func init() {
	summaryCmd.Flags().BoolVar(&flagSummaryOpen, "open", false,
		"print open tasks to stdout instead of writing the document")
	rootCmd.AddCommand(summaryCmd)
}
