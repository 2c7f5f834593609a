package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Generate a few days of sample notes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		created, err := s.GenerateSample()
		if err != nil {
			return err
		}
		for _, path := range created {
			fmt.Println("Created", path)
		}
		if len(created) == 0 {
			fmt.Println("Sample files already exist; nothing created.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sampleCmd)
}
