package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-hanoi/internal/layout"
)

var maximaCmd = &cobra.Command{
	Use:   "maxima",
	Short: "Show the largest disk count this terminal fits",
	Long: `Print the maximum number of disks a game can use at the current
terminal width. Widen the terminal to play with more disks.`,
	Args: cobra.NoArgs,
	Run:  runMaxima,
}

func runMaxima(_ *cobra.Command, _ []string) {
	cols, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot read terminal size: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(layout.MaxDisks(cols))
}
