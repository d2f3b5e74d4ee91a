// hanoi is a Towers of Hanoi puzzle played in the terminal.
//
// Usage:
//
//	hanoi play               - Play a game in this terminal
//	hanoi menu               - Pick settings in a menu, then play
//	hanoi serve              - Start SSH server for remote play
//	hanoi scores             - Show player records
//	hanoi maxima             - Show the largest disk count this terminal fits
//	hanoi validate <file>    - Check a list of moves
//
// Global flags:
//
//	--config <path>    - Settings file (default: search ~/.hanoi, ./configs)
//	--db <path>        - Records database (default: ~/.hanoi/records.db)
//	--seed <value>     - RNG seed for reproducible disk sizes and colors
//	--log-file <path>  - Log file (default: ~/.hanoi/hanoi.log)
//	--debug            - Log at debug level
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-hanoi/internal/config"
	"github.com/vovakirdan/tui-hanoi/internal/storage"
)

var (
	// Global flags
	flagConfig  string
	flagDBPath  string
	flagSeed    int64
	flagLogFile string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hanoi",
	Short: "Towers of Hanoi in your terminal",
	Long: `Move a stack of disks from the first rod to the third, one disk at a
time, never putting a bigger disk on a smaller one.

Available commands:
  play      - Play a game directly
  menu      - Interactive setup menu
  serve     - Start SSH server for remote play
  scores    - View player records
  maxima    - Largest disk count for this terminal
  validate  - Check a list of moves

Examples:
  hanoi play --disks 5
  hanoi play --difficulty hard --plain
  hanoi menu
  hanoi serve --ssh :2222
  hanoi validate moves.txt`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to settings YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.hanoi/records.db", "Path to records database")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file (default ~/.hanoi/hanoi.log)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log at debug level")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(maximaCmd)
	rootCmd.AddCommand(validateCmd)
}

// newLogger opens the log file. The terminal is the game's screen, so
// nothing is logged to it; when the file cannot be opened logs are dropped.
func newLogger() (*log.Logger, func()) {
	path := flagLogFile
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".hanoi", "hanoi.log")
		}
	}

	var w io.Writer = io.Discard
	closeFn := func() {}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
				w = f
				var once sync.Once
				closeFn = func() { once.Do(func() { f.Close() }) }
			}
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "hanoi",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeFn
}

// openStore opens the records database. Games still work without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open records database: %v\n", err)
		return nil
	}
	return store
}

func loadSettings() config.Settings {
	settings, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return settings
}

func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.UserConfigPath()
}
