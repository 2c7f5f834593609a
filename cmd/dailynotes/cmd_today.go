package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ravivyas84/dailynotes-panel/internal/journal"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Open or create today's note, rolling unfinished tasks in on creation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		doc, err := s.OpenToday()
		if err != nil {
			return err
		}
		fmt.Println(doc.Path)
		return nil
	},
}

var openCmd = &cobra.Command{
	Use:   "open <date>",
	Short: "Open or create the note for an arbitrary date",
	Long: `Open or create the note for a date given in either recognized
format (2026-02-21 or 20260221). Unlike today, opening an arbitrary
date never triggers rollover.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		d, ok := journal.ParsePeriodStem(args[0])
		if !ok {
			return fmt.Errorf("%w: %q is not a recognized date", journal.ErrInvalid, args[0])
		}
		ws := s.Workspace()
		doc, _, err := ws.EnsurePeriodDoc(d)
		if err != nil {
			return err
		}
		if _, err := s.NormalizeDoc(doc.Path); err != nil {
			return err
		}
		fmt.Println(doc.Path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(todayCmd, openCmd)
}
