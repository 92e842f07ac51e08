package server

import "github.com/zucenko/turf/model"

// Player is the authoritative per-player state. Trail holds the open
// lap in move order; trailSet mirrors it for O(1) self-collision
// checks and guards the no-duplicate invariant.
type Player struct {
	Id      int32
	Name    string
	Alive   bool
	Pos     model.Vec
	Heading model.Direction

	Trail     []model.Vec
	trailSet  map[model.Vec]struct{}
	Territory map[model.Vec]struct{}
	Score     int
}

func NewPlayer(id int32, name string) *Player {
	return &Player{
		Id:        id,
		Name:      name,
		Alive:     true,
		Heading:   model.DirNone,
		trailSet:  make(map[model.Vec]struct{}),
		Territory: make(map[model.Vec]struct{}),
	}
}

func (p *Player) OnTrail(v model.Vec) bool {
	_, ok := p.trailSet[v]
	return ok
}

func (p *Player) OwnsTerritory(v model.Vec) bool {
	_, ok := p.Territory[v]
	return ok
}

func (p *Player) appendTrail(v model.Vec) {
	p.Trail = append(p.Trail, v)
	p.trailSet[v] = struct{}{}
}

func (p *Player) dropTrailCell(v model.Vec) {
	if !p.OnTrail(v) {
		return
	}
	delete(p.trailSet, v)
	for i, t := range p.Trail {
		if t == v {
			p.Trail = append(p.Trail[:i], p.Trail[i+1:]...)
			break
		}
	}
}

func (p *Player) clearTrail() {
	p.Trail = p.Trail[:0]
	p.trailSet = make(map[model.Vec]struct{})
}

func (p *Player) claimCell(v model.Vec) {
	p.Territory[v] = struct{}{}
}

func (p *Player) rescore() {
	p.Score = len(p.Territory)
}
