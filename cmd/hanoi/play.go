package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-hanoi/internal/config"
	"github.com/vovakirdan/tui-hanoi/internal/platform/tui"
	"github.com/vovakirdan/tui-hanoi/internal/session"
	"github.com/vovakirdan/tui-hanoi/internal/storage"
	"github.com/vovakirdan/tui-hanoi/internal/watch"
)

var (
	flagDisks      int
	flagPlain      bool
	flagMode       string
	flagTimeLimit  int
	flagPlayer     string
	flagLives      int
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game in this terminal.

Type commands at the >> prompt:
  m <src> <dst>   - Move the top disk of rod src onto rod dst
  lc              - List all commands
  help            - How to play
  quit            - End the game

Difficulty options:
  easy    - 3 disks, 3 lives, no clock
  normal  - 5 disks, 3 lives, no clock
  hard    - 7 disks, 1 life, 5 minute clock
  custom  - Settings file and flags only

Flags override the difficulty preset, which overrides the settings file.

Examples:
  hanoi play
  hanoi play --disks 6 --plain
  hanoi play --difficulty hard
  hanoi play --mode textual --player alice`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	addGameFlags(playCmd)
}

// addGameFlags registers the flags that override game settings.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&flagDisks, "disks", "n", 3, "Number of disks")
	cmd.Flags().BoolVar(&flagPlain, "plain", false, "Draw with plain ASCII glyphs")
	cmd.Flags().StringVar(&flagMode, "mode", "graphics", "Interface mode: graphics or textual")
	cmd.Flags().IntVar(&flagTimeLimit, "time-limit", 0, "Time limit in seconds (0 = none)")
	cmd.Flags().StringVar(&flagPlayer, "player", "", "Player name (empty = generated)")
	cmd.Flags().IntVar(&flagLives, "lives", 3, "Lives")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, custom")
}

// applyFlags layers the difficulty preset and explicitly set flags over
// the loaded settings.
func applyFlags(cmd *cobra.Command, settings config.Settings) (config.Settings, error) {
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return settings, err
		}
		config.ApplyPreset(&settings, preset)
	}

	flags := cmd.Flags()
	if flags.Changed("disks") {
		settings.DiskCapacity = flagDisks
	}
	if flags.Changed("plain") {
		settings.RenderPlain = flagPlain
	}
	if flags.Changed("mode") {
		settings.InterfaceMode = flagMode
	}
	if flags.Changed("time-limit") {
		settings.TimeLimit = flagTimeLimit
	}
	if flags.Changed("player") {
		settings.PlayerName = flagPlayer
	}
	if flags.Changed("lives") {
		settings.Lives = flagLives
	}
	return settings, settings.Validate()
}

func runPlay(cmd *cobra.Command, _ []string) {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: hanoi play needs an interactive terminal")
		os.Exit(1)
	}

	settings, err := applyFlags(cmd, loadSettings())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := newLogger()
	defer closeLog()

	store := openStore()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	runErr := playGame(ctx, settings, store, logger)
	stop()

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		logger.Error("game ended with error", "error", runErr)
		// os.Exit skips deferred calls.
		closeLog()
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}

// playGame runs one game on stdin and stdout.
func playGame(ctx context.Context, settings config.Settings, store *storage.Store, logger *log.Logger) error {
	game, err := session.New(session.NewLineReader(os.Stdin), os.Stdout, session.Options{
		Settings:   settings,
		Size:       watch.TermSize{Fd: int(os.Stdout.Fd())},
		Store:      store,
		Logger:     logger,
		Pager:      tui.NewPager(),
		Seed:       flagSeed,
		ConfigPath: configPath(),
	})
	if err != nil {
		return err
	}
	return game.Run(ctx)
}
