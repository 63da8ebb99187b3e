package engine

import "fmt"

// MaxEvents is how many combat log entries the engine keeps.
const MaxEvents = 64

// EventKind classifies a combat log entry.
type EventKind string

const (
	EventMove     EventKind = "move"
	EventAttack   EventKind = "attack"
	EventKill     EventKind = "kill"
	EventEndTurn  EventKind = "end_turn"
	EventGameOver EventKind = "game_over"
)

// Event is one entry in the combat log.
type Event struct {
	Kind   EventKind `json:"kind"`
	Round  int       `json:"round"`
	Team   Team      `json:"team"`
	Unit   UnitType  `json:"unit"`
	From   Position  `json:"from"`
	To     Position  `json:"to"`
	Damage int       `json:"damage,omitempty"`
	Health int       `json:"health,omitempty"`
	Winner Winner    `json:"winner,omitempty"`
}

// String renders the event as a short log line.
func (e Event) String() string {
	switch e.Kind {
	case EventMove:
		return fmt.Sprintf("%s %s %s -> %s", e.Team, e.Unit, e.From, e.To)
	case EventAttack:
		return fmt.Sprintf("%s %s hits %s for %d (%d left)", e.Team, e.Unit, e.To, e.Damage, e.Health)
	case EventKill:
		return fmt.Sprintf("%s %s at %s destroyed", e.Team.Opponent(), e.Unit, e.To)
	case EventEndTurn:
		return fmt.Sprintf("%s ends turn", e.Team)
	case EventGameOver:
		if e.Winner == WinnerNone {
			return "game over: draw"
		}
		return fmt.Sprintf("game over: %s wins", e.Winner)
	default:
		return string(e.Kind)
	}
}

func (e *Engine) record(ev Event) {
	ev.Round = e.turnCount
	e.events = append(e.events, ev)
	if over := len(e.events) - MaxEvents; over > 0 {
		e.events = append(e.events[:0], e.events[over:]...)
	}
}

// Events returns a copy of the combat log, oldest first.
func (e *Engine) Events() []Event {
	out := make([]Event, len(e.events))
	copy(out, e.events)
	return out
}
