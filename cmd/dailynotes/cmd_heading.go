package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var headingCmd = &cobra.Command{
	Use:   "heading <file>",
	Short: "Insert a title heading derived from the filename",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		ws := s.Workspace()
		path := args[0]
		content, err := ws.ReadDoc(path)
		if err != nil {
			return err
		}
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		heading := "# " + stem
		if strings.HasPrefix(strings.TrimLeft(content, "\n"), heading+"\n") ||
			strings.TrimRight(content, "\n") == heading {
			fmt.Println("Heading already present.")
			return nil
		}
		if err := ws.WriteDoc(path, heading+"\n\n"+content); err != nil {
			return err
		}
		fmt.Println("Inserted heading:", heading)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(headingCmd)
}
