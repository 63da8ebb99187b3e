package engine

// UnitState is the serializable view of a unit.
type UnitState struct {
	Type          UnitType `json:"type"`
	Team          Team     `json:"team"`
	Position      Position `json:"position"`
	Health        int      `json:"health"`
	MaxHealth     int      `json:"max_health"`
	AttackPower   int      `json:"attack_power"`
	MovementRange int      `json:"movement_range"`
	AttackRange   int      `json:"attack_range"`
	HasMoved      bool     `json:"has_moved"`
	HasAttacked   bool     `json:"has_attacked"`
}

// GameState is a serializable snapshot of a game.
type GameState struct {
	BoardSize   int         `json:"board_size"`
	Units       []UnitState `json:"units"`
	Obstacles   []Position  `json:"obstacles"`
	CurrentTeam Team        `json:"current_team"`
	TurnCount   int         `json:"turn_count"`
	MaxTurns    int         `json:"max_turns"`
	GameOver    bool        `json:"game_over"`
	Winner      Winner      `json:"winner"`
	Phase       Phase       `json:"phase"`
}

// State returns a snapshot of the current game. It shares no memory with the engine.
func (e *Engine) State() GameState {
	units := e.board.Units()
	st := GameState{
		BoardSize:   e.board.Size(),
		Units:       make([]UnitState, 0, len(units)),
		Obstacles:   e.board.Obstacles(),
		CurrentTeam: e.currentTeam,
		TurnCount:   e.turnCount,
		MaxTurns:    e.maxTurns,
		GameOver:    e.gameOver,
		Winner:      e.winner,
		Phase:       e.phase,
	}
	for _, u := range units {
		st.Units = append(st.Units, UnitState{
			Type:          u.Type,
			Team:          u.Team,
			Position:      u.Position,
			Health:        u.Health,
			MaxHealth:     u.MaxHealth,
			AttackPower:   u.AttackPower,
			MovementRange: u.MovementRange,
			AttackRange:   u.AttackRange,
			HasMoved:      u.HasMoved,
			HasAttacked:   u.HasAttacked,
		})
	}
	return st
}
