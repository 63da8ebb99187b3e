package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/vovakirdan/quick-skirmish/internal/games/skirmish/engine"
)

func TestDemoJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := demo(&buf, 42, true); err != nil {
		t.Fatalf("demo() error = %v", err)
	}

	var report demoReport
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}

	if report.Seed != 42 {
		t.Errorf("Seed = %d, want 42", report.Seed)
	}
	if !report.Moved {
		t.Error("soldier move was rejected")
	}
	if len(report.Initial.Units) != 6 {
		t.Errorf("initial units = %d, want 6", len(report.Initial.Units))
	}
	if report.Initial.TurnCount != 0 {
		t.Errorf("initial TurnCount = %d, want 0", report.Initial.TurnCount)
	}
	if len(report.TankActions.Moves) == 0 {
		t.Error("tank has no moves")
	}
	if !report.Final.GameOver && report.Final.CurrentTeam != engine.Blue {
		t.Errorf("final CurrentTeam = %v, want blue", report.Final.CurrentTeam)
	}
	if report.Final.TurnCount != 1 {
		t.Errorf("final TurnCount = %d, want 1", report.Final.TurnCount)
	}
	if len(report.Events) == 0 || report.Events[0].Kind != engine.EventMove {
		t.Errorf("first event = %+v, want a move", report.Events)
	}
}

func TestDemoText(t *testing.T) {
	var buf bytes.Buffer
	if err := demo(&buf, 7, false); err != nil {
		t.Fatalf("demo() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Seed 7",
		"Initial state:",
		"Move soldier (0,2) -> (1,2): true",
		"Tank at (1,1) can move to",
		"Final state:",
		"Score:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestWriteBoard(t *testing.T) {
	st := engine.GameState{
		BoardSize:   3,
		Obstacles:   []engine.Position{engine.Pos(1, 1)},
		CurrentTeam: engine.Blue,
		MaxTurns:    10,
		Units: []engine.UnitState{
			{Type: engine.Tank, Team: engine.Blue, Position: engine.Pos(0, 0), Health: 100, MaxHealth: 100},
			{Type: engine.Soldier, Team: engine.Red, Position: engine.Pos(2, 1), Health: 40, MaxHealth: 100},
		},
	}

	var buf bytes.Buffer
	writeBoard(&buf, st)
	lines := strings.Split(buf.String(), "\n")

	want := []string{"  T..", "  .#s", "  ..."}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("row %d = %q, want %q", i, lines[i], w)
		}
	}
	if !strings.Contains(buf.String(), "blue to play, round 0/10") {
		t.Errorf("missing turn line:\n%s", buf.String())
	}
}
