package server

import "github.com/zucenko/turf/model"

type Death struct {
	Player int32
	Reason DeathReason
}

// DetectCollisions evaluates the death rules for every alive player
// against the same pre-tick grid and the full set of proposed next
// positions, so no player's fate depends on the order moves are
// applied. A player whose proposed position equals its current one
// (no pending heading) cannot move onto anything, but still occupies
// its cell for the head-on rule.
func DetectCollisions(g *Grid, players map[int32]*Player, proposed map[int32]model.Vec) []Death {
	deaths := make([]Death, 0)
	dead := make(map[int32]bool)
	kill := func(id int32, r DeathReason) {
		if dead[id] {
			return
		}
		dead[id] = true
		deaths = append(deaths, Death{Player: id, Reason: r})
	}

	for id, next := range proposed {
		p := players[id]
		if p == nil || !p.Alive || next == p.Pos {
			continue
		}
		if !g.InBounds(next) {
			kill(id, REASON_BOUNDARY)
			continue
		}
		if p.OnTrail(next) {
			kill(id, REASON_SELF_TRAIL)
			continue
		}
		cell, err := g.CellAt(next)
		if err != nil {
			continue
		}
		if cell.Kind == model.CellTrail && cell.Owner != id {
			if owner := players[cell.Owner]; owner != nil && owner.Alive {
				kill(id, REASON_OPPONENT_TRAIL)
			}
		}
	}

	// head-on: two or more heads landing on the same cell, unless the
	// cell is the standing territory of one of them
	byCell := make(map[model.Vec][]int32)
	for id, next := range proposed {
		p := players[id]
		if p == nil || !p.Alive || !g.InBounds(next) {
			continue
		}
		byCell[next] = append(byCell[next], id)
	}
	for cell, ids := range byCell {
		if len(ids) < 2 {
			continue
		}
		home := false
		for _, id := range ids {
			if players[id].OwnsTerritory(cell) {
				home = true
				break
			}
		}
		if home {
			continue
		}
		for _, id := range ids {
			kill(id, REASON_HEAD_ON)
		}
	}

	return deaths
}
