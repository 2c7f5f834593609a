// Command dailynotes is the host surface for the daily-notes task
// engine: it opens the notes folder, wires up the engine session, and
// exposes each engine operation as a subcommand.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ravivyas84/dailynotes-panel/internal/engine"
	"github.com/ravivyas84/dailynotes-panel/internal/journal"
)

var (
	flagFolder  string
	flagVerbose bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "dailynotes",
	Short: "Task tracking over plain-text daily notes",
	Long: `dailynotes keeps a consistent metadata trail on checkbox tasks in a
folder of markdown daily notes: identities, creation and completion
stamps, rollover of unfinished work, mirroring of tasks from other
notes, and a grouped summary of everything open.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		config.Encoding = "console"
		config.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		if flagVerbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagFolder, "folder", "",
		"notes folder (default: $DAILYNOTES_FOLDER or ~/DailyNotes)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"debug logging")
}

func notesFolder() string {
	if flagFolder != "" {
		return flagFolder
	}
	if env := os.Getenv("DAILYNOTES_FOLDER"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	if home == "" {
		return "DailyNotes"
	}
	return filepath.Join(home, "DailyNotes")
}

// openWorkspace opens the configured folder, requiring it to exist.
// The missing-folder case is an actionable message, not a stack trace.
func openWorkspace() (*journal.Workspace, error) {
	ws, err := journal.Open(notesFolder())
	if err != nil {
		return nil, err
	}
	if !ws.Exists() {
		return nil, fmt.Errorf("notes folder %s does not exist (run `dailynotes init` first)", ws.Root)
	}
	return ws, nil
}

func newSession() (*engine.Session, error) {
	ws, err := openWorkspace()
	if err != nil {
		return nil, err
	}
	return engine.NewSession(ws, logger)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "dailynotes:", err)
		os.Exit(1)
	}
}
