package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/quick-skirmish/internal/config"
	"github.com/vovakirdan/quick-skirmish/internal/games/skirmish"
	"github.com/vovakirdan/quick-skirmish/internal/games/skirmish/engine"
)

var flagDemoJSON bool

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Play one scripted turn without a terminal UI",
	Long: `Run a headless match on the default board: move the Blue soldier from
(0,2) to (1,2), list the Blue tank's actions, end the turn so Red plays,
then print the resulting state.

Examples:
  skirmish demo
  skirmish demo --seed 7
  skirmish demo --json | jq .final.units`,
	Args: cobra.NoArgs,
	Run:  runDemo,
}

func init() {
	demoCmd.Flags().BoolVar(&flagDemoJSON, "json", false, "Print the demo as JSON")
}

// demoReport is the JSON form of a demo run.
type demoReport struct {
	Seed        int64            `json:"seed"`
	Initial     engine.GameState `json:"initial"`
	Moved       bool             `json:"moved"`
	TankActions engine.Actions   `json:"tank_actions"`
	Final       engine.GameState `json:"final"`
	Events      []engine.Event   `json:"events"`
	Result      skirmish.Result  `json:"result"`
}

var (
	demoSoldierFrom = engine.Pos(0, 2)
	demoSoldierTo   = engine.Pos(1, 2)
	demoTank        = engine.Pos(1, 1)
)

func runDemo(_ *cobra.Command, _ []string) {
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if err := demo(os.Stdout, seed, flagDemoJSON); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func demo(w io.Writer, seed int64, asJSON bool) error {
	eng, err := skirmish.NewEngine(config.DefaultSkirmishConfig(), seed)
	if err != nil {
		return err
	}

	report := demoReport{Seed: seed, Initial: eng.State()}
	report.Moved = eng.MoveUnit(demoSoldierFrom, demoSoldierTo)
	report.TankActions = eng.ValidActions(demoTank)
	eng.EndTurn()
	report.Final = eng.State()
	report.Events = eng.Events()
	report.Result = skirmish.ResultOf(eng)

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintf(w, "Seed %d\n\nInitial state:\n", seed)
	writeBoard(w, report.Initial)
	fmt.Fprintf(w, "\nMove soldier %s -> %s: %v\n", demoSoldierFrom, demoSoldierTo, report.Moved)
	fmt.Fprintf(w, "Tank at %s can move to %s\n", demoTank, joinPositions(report.TankActions.Moves))
	fmt.Fprintf(w, "Tank at %s can attack %s\n", demoTank, joinPositions(report.TankActions.Attacks))
	fmt.Fprintln(w, "\nEnd turn. Events:")
	for _, ev := range report.Events {
		fmt.Fprintf(w, "  %s\n", ev)
	}
	fmt.Fprintln(w, "\nFinal state:")
	writeBoard(w, report.Final)
	fmt.Fprintf(w, "\nScore: %d\n", report.Result.Score)
	return nil
}

// writeBoard prints the grid with Blue units in upper case and Red units in
// lower case, followed by the turn line.
func writeBoard(w io.Writer, st engine.GameState) {
	grid := make([][]byte, st.BoardSize)
	for y := range grid {
		grid[y] = []byte(strings.Repeat(".", st.BoardSize))
	}
	for _, p := range st.Obstacles {
		grid[p.Y][p.X] = '#'
	}
	for _, u := range st.Units {
		c := byte(u.Type.Symbol())
		if u.Team == engine.Red {
			c += 'a' - 'A'
		}
		grid[u.Position.Y][u.Position.X] = c
	}
	for _, row := range grid {
		fmt.Fprintf(w, "  %s\n", row)
	}
	fmt.Fprintf(w, "  %s to play, round %d/%d", st.CurrentTeam, st.TurnCount, st.MaxTurns)
	if st.GameOver {
		fmt.Fprintf(w, ", game over (winner: %s)", st.Winner)
	}
	fmt.Fprintln(w)
	for _, u := range st.Units {
		fmt.Fprintf(w, "  %-4s %-10s %s hp %d/%d\n", u.Team, u.Type, u.Position, u.Health, u.MaxHealth)
	}
}

func joinPositions(ps []engine.Position) string {
	if len(ps) == 0 {
		return "nothing"
	}
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}
