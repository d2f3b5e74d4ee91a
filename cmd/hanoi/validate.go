package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-hanoi/internal/hanoi"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a list of moves",
	Long: `Replay a list of moves and report whether it solves the puzzle.

The first non-blank line is the number of disks. Every further line is a
move written src->dst, for example:

  3
  1->3
  1->2
  3->2

Exits with status 1 when a move is illegal or the puzzle is left unsolved.`,
	Args: cobra.ExactArgs(1),
	Run:  runValidate,
}

func runValidate(_ *cobra.Command, args []string) {
	f, err := os.Open(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	res, err := hanoi.Validate(f)
	if err != nil {
		if errors.Is(err, hanoi.ErrBadSource) {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", args[0], err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	pass := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	fail := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))

	switch res.Verdict {
	case hanoi.Solved:
		fmt.Println(pass.Render("SOLVED"), fmt.Sprintf("%d disks in %d moves (minimum %d)",
			res.Disks, res.Moves, hanoi.MinimumMoves(res.Disks)))
		return
	case hanoi.Unsolved:
		fmt.Println(fail.Render("NOT SOLVED"), fmt.Sprintf("%d legal moves leave disks off rod 3", res.Moves))
	case hanoi.Refused:
		fmt.Println(fail.Render("ILLEGAL"), fmt.Sprintf("move %d %q: %v", res.Moves+1, res.Move, res.Err))
	}
	os.Exit(1)
}
