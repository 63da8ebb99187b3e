package engine

// runAI plays one turn for the current team. Each living unit, in board
// order, attacks a random enemy in range; otherwise it closes in on the
// nearest enemy. Units destroyed earlier in the turn are skipped.
func (e *Engine) runAI() {
	team := e.currentTeam
	for _, u := range e.board.UnitsOf(team) {
		if !u.Alive() || e.board.UnitAt(u.Position) != u {
			continue
		}

		if targets := e.board.AttackTargets(u); len(targets) > 0 {
			e.attack(u, targets[e.rng.Intn(len(targets))])
			continue
		}

		enemy := e.nearestEnemy(u)
		if enemy == nil {
			continue
		}
		if to, ok := e.closestMove(u, enemy.Position); ok {
			e.move(u, to)
		}
	}
}

// nearestEnemy returns the first enemy at minimum Manhattan distance.
func (e *Engine) nearestEnemy(u *Unit) *Unit {
	var best *Unit
	bestDist := 0
	for _, enemy := range e.board.UnitsOf(u.Team.Opponent()) {
		d := u.Position.DistanceTo(enemy.Position)
		if best == nil || d < bestDist {
			best, bestDist = enemy, d
		}
	}
	return best
}

// closestMove picks the first valid move that minimises distance to goal.
func (e *Engine) closestMove(u *Unit, goal Position) (Position, bool) {
	moves := e.board.ValidMoves(u)
	if len(moves) == 0 {
		return Position{}, false
	}
	best := moves[0]
	bestDist := best.DistanceTo(goal)
	for _, m := range moves[1:] {
		if d := m.DistanceTo(goal); d < bestDist {
			best, bestDist = m, d
		}
	}
	return best, true
}
