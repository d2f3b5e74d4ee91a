package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-hanoi/internal/layout"
	"github.com/vovakirdan/tui-hanoi/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick settings in a menu, then play",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to move, left/right to change a value and Enter on
Start to play. After a game ends, you return to the menu.

Controls:
  Up/Down/j/k     - Navigate menu
  Left/Right/h/l  - Change value
  Enter/Space     - Select
  Tab             - Player records
  Q               - Quit

Examples:
  hanoi menu
  hanoi menu --db ./records.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: hanoi menu needs an interactive terminal")
		os.Exit(1)
	}

	settings := loadSettings()
	logger, closeLog := newLogger()
	defer closeLog()

	store := openStore()
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for ctx.Err() == nil {
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
			height = h
		}

		result, err := tui.RunSetup(settings, layout.MaxDisks(width), width, height)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		settings = result.Settings

		switch {
		case result.Quit:
			return

		case result.WantsScoreboard:
			goBack, sbErr := tui.RunScoreboard(store, width, height)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if !goBack {
				return
			}

		case result.Start:
			if err := playGame(ctx, settings, store, logger); err != nil {
				logger.Error("game ended with error", "error", err)
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return
			}
		}
	}
}
