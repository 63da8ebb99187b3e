// Package engine implements the Quick Skirmish rules: a small turn-based
// tactical board where a human-controlled Blue squad fights an AI-controlled
// Red squad. It has no dependencies on rendering or input, so every
// front-end (terminal, SSH, HTTP) drives the same engine.
package engine

import "fmt"

// Position is an integer grid coordinate.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pos is shorthand for Position{X: x, Y: y}.
func Pos(x, y int) Position {
	return Position{X: x, Y: y}
}

// Add returns the component-wise sum of two positions.
func (p Position) Add(other Position) Position {
	return Position{X: p.X + other.X, Y: p.Y + other.Y}
}

// DistanceTo returns the Manhattan distance between two positions.
func (p Position) DistanceTo(other Position) int {
	return abs(p.X-other.X) + abs(p.Y-other.Y)
}

// String formats the position as "(x,y)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
