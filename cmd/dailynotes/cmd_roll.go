package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ravivyas84/dailynotes-panel/internal/rollover"
)

var rollCmd = &cobra.Command{
	Use:   "roll",
	Short: "Carry all uncompleted tasks from the previous note into today's",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		ws := s.Workspace()
		res, err := rollover.RollAll(ws, ws.Today())
		if err != nil {
			return err
		}
		if res.Source == "" {
			fmt.Println("No earlier note to roll from.")
			return nil
		}
		if res.Carried == 0 {
			fmt.Println("Nothing left to carry from", res.Source)
			return nil
		}
		if _, err := s.NormalizeDoc(res.Target); err != nil {
			return err
		}
		fmt.Printf("Carried %d task(s) from %s\n", res.Carried, res.Source)
		return nil
	},
}

var rollLineCmd = &cobra.Command{
	Use:   "roll-line <file> <line>",
	Short: "Carry the task on one line into today's note",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		lineNo, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("line must be a number, got %q", args[1])
		}
		ws := s.Workspace()
		res, err := rollover.RollLine(ws, args[0], lineNo, ws.Today())
		if err != nil {
			return err
		}
		if res.Carried == 0 {
			fmt.Println("Task already carried.")
			return nil
		}
		if _, err := s.NormalizeDoc(res.Target); err != nil {
			return err
		}
		fmt.Printf("Carried task from %s:%d\n", args[0], lineNo)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rollCmd, rollLineCmd)
}
