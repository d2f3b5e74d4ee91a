package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-hanoi/internal/storage"
)

var (
	flagScoresPlayer string
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show player records",
	Long: `Display the top 10 players by perfect runs, or the recent games of one
player with --player.

A run is perfect when it uses the minimum number of moves, and best when it
uses at most six more.

Examples:
  hanoi scores
  hanoi scores --player alice
  hanoi scores --player alice --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Show recent games of this player")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the records of --player")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening records database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if flagScoresPlayer == "" {
			fmt.Fprintln(os.Stderr, "Error: --clear needs --player")
			os.Exit(1)
		}
		if err := store.ClearPlayer(flagScoresPlayer); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Records of %s deleted.\n", flagScoresPlayer)
		return
	}

	if flagScoresPlayer != "" {
		printGames(store, flagScoresPlayer)
		return
	}

	players, err := store.Players(10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving players: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Player Records")
	fmt.Println()

	if len(players) == 0 {
		fmt.Println("No players recorded yet.")
		fmt.Println()
		fmt.Println("Play 'hanoi play' to get on the board!")
		return
	}

	fmt.Printf("  %-4s  %-16s  %-7s  %-4s\n", "Rank", "Player", "Perfect", "Best")
	fmt.Printf("  %-4s  %-16s  %-7s  %-4s\n", "----", "------", "-------", "----")
	for i, p := range players {
		fmt.Printf("  %-4d  %-16s  %-7d  %-4d\n", i+1, p.Name, p.PerfectRuns, p.BestRuns)
	}
}

func printGames(store *storage.Store, player string) {
	rec, err := store.Player(player)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving player: %v\n", err)
		os.Exit(1)
	}
	games, err := store.RecentGames(player, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving games: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s - %d perfect, %d best\n", rec.Name, rec.PerfectRuns, rec.BestRuns)
	fmt.Println()

	if len(games) == 0 {
		fmt.Println("No games recorded yet.")
		return
	}

	fmt.Printf("  %-16s  %-7s  %-5s  %-5s  %s\n", "Date", "Outcome", "Disks", "Moves", "Time")
	fmt.Printf("  %-16s  %-7s  %-5s  %-5s  %s\n", "----", "-------", "-----", "-----", "----")
	for _, g := range games {
		fmt.Printf("  %-16s  %-7s  %-5d  %-5d  %s\n",
			g.CreatedAt.Format("2006-01-02 15:04"), g.Outcome, g.Disks, g.Moves, g.Duration)
	}
}
