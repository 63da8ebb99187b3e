package skirmish

import (
	"slices"

	"github.com/vovakirdan/quick-skirmish/internal/games/skirmish/engine"
)

// ClickResult reports what selecting a cell did.
type ClickResult int

const (
	ClickIgnored ClickResult = iota
	ClickSelected
	ClickDeselected
	ClickMoved
	ClickAttacked
)

func (r ClickResult) String() string {
	switch r {
	case ClickSelected:
		return "selected"
	case ClickDeselected:
		return "deselected"
	case ClickMoved:
		return "moved"
	case ClickAttacked:
		return "attacked"
	default:
		return "ignored"
	}
}

// Select applies the cell-selection rules to pos:
//   - with nothing selected, an own unit becomes selected;
//   - the selected unit again clears the selection;
//   - a highlighted empty cell moves the selected unit there, keeping it selected;
//   - a highlighted enemy is attacked and the selection cleared;
//   - another own unit takes over the selection.
//
// Anything else, including any input outside Blue's turn, is ignored.
func (g *Game) Select(pos engine.Position) ClickResult {
	if g.eng.GameOver() || g.eng.CurrentTeam() != engine.Blue {
		return ClickIgnored
	}
	unit, occupied := g.eng.UnitAt(pos)

	if !g.hasSel {
		if occupied && unit.Team == engine.Blue {
			g.selectAt(pos)
			return ClickSelected
		}
		return ClickIgnored
	}

	switch {
	case pos == g.selected:
		g.clearSelection()
		return ClickDeselected

	case !occupied:
		if slices.Contains(g.highlights.Moves, pos) && g.eng.MoveUnit(g.selected, pos) {
			g.selectAt(pos)
			return ClickMoved
		}

	case unit.Team != engine.Blue:
		if slices.Contains(g.highlights.Attacks, pos) && g.eng.AttackUnit(g.selected, pos) {
			g.clearSelection()
			return ClickAttacked
		}

	default:
		g.selectAt(pos)
		return ClickSelected
	}
	return ClickIgnored
}

// Cancel clears the selection.
func (g *Game) Cancel() {
	g.clearSelection()
}

// Highlights returns the legal moves and attacks of the selected unit.
func (g *Game) Highlights() engine.Actions {
	return g.highlights
}

func (g *Game) selectAt(pos engine.Position) {
	g.selected = pos
	g.hasSel = true
	g.highlights = g.eng.ValidActions(pos)
}

func (g *Game) clearSelection() {
	g.hasSel = false
	g.selected = engine.Position{}
	g.highlights = engine.Actions{}
}
