package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/quick-skirmish/internal/config"
	"github.com/vovakirdan/quick-skirmish/internal/core"
	"github.com/vovakirdan/quick-skirmish/internal/games/skirmish"
	"github.com/vovakirdan/quick-skirmish/internal/platform/tui"
	"github.com/vovakirdan/quick-skirmish/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game (default: skirmish).

Controls:
  Arrows/WASD/hjkl  - Move the cursor
  Space/Enter       - Select a unit, move or attack
  X/Backspace       - Cancel the selection
  E/Tab             - End your turn
  R                 - Restart (after game over)
  Ctrl+S            - Save a screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - 14 rounds, weaker Red attacks
  normal - configured rules
  hard   - 8 rounds, stronger Red attacks

Without --difficulty a selector is shown before the match.

Examples:
  skirmish play
  skirmish play --difficulty hard
  skirmish play --config ./my-skirmish.yaml
  skirmish play --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

// terminalConfig builds the runtime config from the terminal size and the
// global flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func runPlay(cmd *cobra.Command, args []string) {
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

	cfg := terminalConfig()

	if gameID == skirmish.GameID {
		// Report config errors here, the game itself falls back to defaults.
		if flagConfig != "" {
			if _, err := config.LoadSkirmish(flagConfig); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}
		skirmish.SetConfigPath(flagConfig)

		preset, err := choosePreset(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		// User pressed back or quit
		if preset == "" {
			return
		}
		skirmish.SetDifficultyPreset(string(preset))
	}

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Continue without storage if the database cannot be opened
	store := openStore()

	runErr := tui.Run(game, store, cfg, currentPlayer())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// choosePreset returns the --difficulty preset, or asks for one when the
// flag is unset. An empty preset means the user backed out.
func choosePreset(cfg core.RuntimeConfig) (config.DifficultyPreset, error) {
	if flagDifficulty != "" {
		return config.ParseDifficulty(flagDifficulty)
	}
	return tui.RunSkirmishModeSelector(cfg)
}
