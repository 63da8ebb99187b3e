package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/quick-skirmish/internal/games/skirmish"
	"github.com/vovakirdan/quick-skirmish/internal/registry"
	"github.com/vovakirdan/quick-skirmish/internal/storage"
)

const scoresLimit = 10

var (
	flagClearScores bool
	flagMatchID     string
)

var errMatchNotFound = errors.New("match not found")

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores and match statistics",
	Long: `Display the top 10 high scores for a game (default: skirmish), followed
by overall match statistics and the most recent matches.

Examples:
  skirmish scores
  skirmish scores --match 3f2c9a4e-...   # Show one recorded match
  skirmish scores --clear                # Delete all scores for the game
  skirmish scores --db ./skirmish.db`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete all high scores for the game")
	scoresCmd.Flags().StringVar(&flagMatchID, "match", "", "Show the recorded match with this ID")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := skirmish.GameID
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'skirmish list' to see available games.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening match database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagClearScores:
		err = clearScores(os.Stdout, store, gameID)
	case flagMatchID != "":
		err = printMatch(os.Stdout, store, flagMatchID)
	default:
		err = printScores(os.Stdout, store, gameID)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func clearScores(w io.Writer, store *storage.Store, gameID string) error {
	if err := store.ClearScores(gameID); err != nil {
		return err
	}
	fmt.Fprintf(w, "Cleared high scores for %s.\n", gameID)
	return nil
}

func printMatch(w io.Writer, store *storage.Store, matchID string) error {
	m, err := store.MatchByID(matchID)
	if err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("%w: %s", errMatchNotFound, matchID)
	}

	fmt.Fprintf(w, "Match %s\n\n", m.MatchID)
	fmt.Fprintf(w, "  Player:     %s\n", m.Player)
	fmt.Fprintf(w, "  Difficulty: %s\n", m.Difficulty)
	fmt.Fprintf(w, "  Winner:     %s (%s)\n", m.Winner, m.EndReason)
	fmt.Fprintf(w, "  Rounds:     %d/%d\n", m.Rounds, m.MaxTurns)
	fmt.Fprintf(w, "  Survivors:  blue %d, red %d\n", m.BlueSurvivors, m.RedSurvivors)
	fmt.Fprintf(w, "  Score:      %d\n", m.Score)
	fmt.Fprintf(w, "  Duration:   %ds\n", m.Duration)
	fmt.Fprintf(w, "  Played:     %s\n", m.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}

func printScores(w io.Writer, store *storage.Store, gameID string) error {
	scores, err := store.TopScores(gameID, scoresLimit)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "High Scores - %s\n\n", gameID)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Play 'skirmish play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-8s  %-16s  %s\n", "Rank", "Score", "Player", "Date")
	fmt.Fprintf(w, "  %-4s  %-8s  %-16s  %s\n", "----", "-----", "------", "----")
	for i, entry := range scores {
		fmt.Fprintf(w, "  %-4d  %-8d  %-16s  %s\n", i+1, entry.Score, entry.Player, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if best, err := store.HighScore(gameID); err == nil {
		fmt.Fprintf(w, "\nBest: %d\n", best)
	}

	if gameID != skirmish.GameID {
		return nil
	}

	stats, err := store.MatchStats()
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, formatMatchStats(*stats))

	matches, err := store.RecentMatches(scoresLimit)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Recent matches:")
	fmt.Fprintf(w, "  %-36s  %-16s  %-12s  %-6s  %-5s  %-7s  %-11s  %s\n", "ID", "Date", "Player", "Level", "Win", "Rounds", "Reason", "Score")
	for _, m := range matches {
		fmt.Fprintf(w, "  %-36s  %-16s  %-12s  %-6s  %-5s  %-7s  %-11s  %d\n",
			m.MatchID,
			m.CreatedAt.Format("2006-01-02 15:04"),
			m.Player,
			m.Difficulty,
			m.Winner,
			fmt.Sprintf("%d/%d", m.Rounds, m.MaxTurns),
			m.EndReason,
			m.Score,
		)
	}
	return nil
}

func formatMatchStats(s storage.MatchStats) string {
	return fmt.Sprintf("Matches: %d  Won: %d  Lost: %d  Drawn: %d  Avg rounds: %.1f  Best: %d",
		s.Played, s.BlueWins, s.RedWins, s.Draws, s.AvgRounds, s.BestScore)
}
