// skirmish is a turn-based tactical game for the terminal, playable locally,
// over SSH or through an HTTP API.
//
// Usage:
//
//	skirmish list              - List available games
//	skirmish play [game]       - Play a game (default: skirmish)
//	skirmish menu              - Start menu with match history
//	skirmish serve             - Start SSH and/or HTTP servers
//	skirmish scores [game]     - Show high scores and match stats
//	skirmish demo              - Play a scripted headless turn
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.skirmish/skirmish.db)
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/quick-skirmish/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "skirmish",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skirmish",
	Short: "Quick Skirmish - turn-based tactics in your terminal",
	Long: `Quick Skirmish is a small turn-based tactics game. Blue (you) and
Red (the AI) each field a squad on a grid; destroy the enemy squad or
hold out until the turn limit.

Available commands:
  list     - Show all available games
  play     - Play a match directly
  menu     - Interactive menu with match history
  serve    - Start SSH and HTTP servers for remote play
  scores   - View high scores and match statistics
  demo     - Play one scripted turn without a terminal UI

Examples:
  skirmish play
  skirmish play --difficulty hard
  skirmish menu
  skirmish serve --ssh :2222 --http :8080
  skirmish demo --json`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to the match database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(demoCmd)
}

func setupLogging(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger.SetLevel(level)
	return nil
}

// currentPlayer names the local player for match records.
func currentPlayer() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}

// openStore opens the match database. A failure is reported and nil is
// returned so games still run without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open match database: %v\n", err)
		return nil
	}
	return store
}
