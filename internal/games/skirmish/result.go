package skirmish

import "github.com/vovakirdan/quick-skirmish/internal/games/skirmish/engine"

// Scoring constants.
const (
	VictoryBonus = 500
	RoundBonus   = 50 // per unused round on victory
)

// End reasons recorded with a match.
const (
	ReasonElimination = "elimination"
	ReasonTurnLimit   = "turn_limit"
	ReasonInProgress  = "in_progress"
)

// Result summarizes a finished (or abandoned) match.
type Result struct {
	Winner        engine.Winner `json:"winner"`
	Rounds        int           `json:"rounds"`
	MaxTurns      int           `json:"max_turns"`
	BlueSurvivors int           `json:"blue_survivors"`
	RedSurvivors  int           `json:"red_survivors"`
	Reason        string        `json:"reason"`
	Score         int           `json:"score"`
}

// Score is the surviving Blue health, plus bonuses when Blue has won.
func Score(e *engine.Engine) int {
	score := 0
	for _, u := range e.Units() {
		if u.Team == engine.Blue {
			score += u.Health
		}
	}
	if e.GameOver() && e.Winner() == engine.WinnerBlue {
		score += VictoryBonus + RoundBonus*max(0, e.MaxTurns()-e.TurnCount())
	}
	return score
}

// ResultOf summarizes the current state of an engine.
func ResultOf(e *engine.Engine) Result {
	blue, red := e.Count(engine.Blue), e.Count(engine.Red)
	reason := ReasonInProgress
	if e.GameOver() {
		reason = ReasonTurnLimit
		if blue == 0 || red == 0 {
			reason = ReasonElimination
		}
	}
	return Result{
		Winner:        e.Winner(),
		Rounds:        e.TurnCount(),
		MaxTurns:      e.MaxTurns(),
		BlueSurvivors: blue,
		RedSurvivors:  red,
		Reason:        reason,
		Score:         Score(e),
	}
}
