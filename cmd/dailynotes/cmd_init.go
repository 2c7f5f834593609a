package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ravivyas84/dailynotes-panel/internal/journal"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the notes folder and default configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := journal.Open(notesFolder())
		if err != nil {
			return err
		}
		if err := ws.Init(); err != nil {
			return err
		}
		fmt.Println("Initialized notes folder at:", ws.Root)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
