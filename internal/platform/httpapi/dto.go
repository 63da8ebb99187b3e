package httpapi

import (
	"github.com/vovakirdan/quick-skirmish/internal/games/skirmish"
	"github.com/vovakirdan/quick-skirmish/internal/games/skirmish/engine"
)

type createRequest struct {
	Player     string `json:"player"`
	Difficulty string `json:"difficulty"`
}

type moveRequest struct {
	From *engine.Position `json:"from" binding:"required"`
	To   *engine.Position `json:"to" binding:"required"`
}

type attackRequest struct {
	From   *engine.Position `json:"from" binding:"required"`
	Target *engine.Position `json:"target" binding:"required"`
}

type actionsQuery struct {
	X *int `form:"x" binding:"required"`
	Y *int `form:"y" binding:"required"`
}

type sessionResponse struct {
	SessionID  string           `json:"session_id"`
	Player     string           `json:"player"`
	Difficulty string           `json:"difficulty"`
	State      engine.GameState `json:"state"`
	Result     skirmish.Result  `json:"result"`
	Events     []engine.Event   `json:"events,omitempty"`
}

type commandResponse struct {
	OK    bool             `json:"ok"`
	State engine.GameState `json:"state"`
}

type errorResponse struct {
	Error string `json:"error"`
}
