package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ravivyas84/dailynotes-panel/internal/journal"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change workspace settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		cfg := ws.Config()
		fmt.Println("folder:      ", ws.Root)
		fmt.Println("date_format: ", cfg.DateFormat)
		fmt.Println("autosave:    ", cfg.Autosave)
		fmt.Println("summary_file:", cfg.SummaryFile)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set date_format, autosave, or summary_file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		cfg := ws.Config()
		key := strings.ToLower(strings.TrimSpace(args[0]))
		value := strings.TrimSpace(args[1])
		switch key {
		case "date_format":
			cfg.DateFormat = value
		case "autosave":
			v, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("%w: autosave wants true or false, got %q", journal.ErrInvalid, value)
			}
			cfg.Autosave = v
		case "summary_file":
			cfg.SummaryFile = value
		default:
			return fmt.Errorf("%w: unknown key %q (date_format|autosave|summary_file)", journal.ErrInvalid, key)
		}
		if err := ws.SaveConfig(cfg); err != nil {
			return err
		}
		fmt.Printf("Updated %s\n", key)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}
