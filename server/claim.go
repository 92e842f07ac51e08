package server

import "github.com/zucenko/turf/model"

// claimTerritory resolves a closed lap: every cell the lap plus the
// existing territory encloses becomes p's territory, except territory
// of other living players. The fill is an iterative breadth-first
// traversal seeded from the board edge, with an explicit queue and a
// visited slice sized to the grid.
func (gs *GameSession) claimTerritory(p *Player) {
	if len(p.Trail) == 0 {
		return
	}
	g := gs.Grid

	inRegion := make([]bool, len(g.Cells))
	for v := range p.Territory {
		inRegion[g.index(v)] = true
	}
	for _, v := range p.Trail {
		inRegion[g.index(v)] = true
	}

	// everything reachable from the edge without crossing the region
	// is outside the enclosure
	visited := make([]bool, len(g.Cells))
	queue := make([]model.Vec, 0, 2*(g.Cols+g.Rows))
	seed := func(v model.Vec) {
		i := g.index(v)
		if !inRegion[i] && !visited[i] {
			visited[i] = true
			queue = append(queue, v)
		}
	}
	for x := 0; x < g.Cols; x++ {
		seed(model.Vec{X: x, Y: 0})
		seed(model.Vec{X: x, Y: g.Rows - 1})
	}
	for y := 0; y < g.Rows; y++ {
		seed(model.Vec{X: 0, Y: y})
		seed(model.Vec{X: g.Cols - 1, Y: y})
	}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, n := range g.Neighbors4(v) {
			i := g.index(n)
			if !visited[i] && !inRegion[i] {
				visited[i] = true
				queue = append(queue, n)
			}
		}
	}

	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			v := model.Vec{X: x, Y: y}
			i := g.index(v)
			if visited[i] {
				continue
			}
			if p.OwnsTerritory(v) {
				// already ours; a foreign trail crossing it stays
				// until its owner resolves
				continue
			}
			if owner := gs.territoryOwnerAt(v); owner != nil {
				if owner.Alive {
					// never reassigned; reclaim the display only from
					// p's own abandoned trail, another live trail
					// crossing it stays until its owner resolves
					if g.Cells[i].IsTrailOf(p.Id) {
						gs.mustSetCell(v, model.Territory(owner.Id))
					}
					continue
				}
				delete(owner.Territory, v)
				owner.rescore()
			}
			if cell := g.Cells[i]; cell.Kind == model.CellTrail && cell.Owner != p.Id {
				// enclosed foreign trail is cut out of its owner's lap
				if q := gs.Players[cell.Owner]; q != nil {
					q.dropTrailCell(v)
				}
			}
			p.claimCell(v)
			gs.mustSetCell(v, model.Territory(p.Id))
		}
	}

	p.clearTrail()
	p.rescore()
}

// territoryOwnerAt finds the player whose territory set contains v.
// The grid cell alone cannot answer this: a trail may temporarily
// cover someone's territory.
func (gs *GameSession) territoryOwnerAt(v model.Vec) *Player {
	for _, p := range gs.Players {
		if p.OwnsTerritory(v) {
			return p
		}
	}
	return nil
}
