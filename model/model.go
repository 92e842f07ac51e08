package model

type Vec struct {
	X, Y int
}

func (v Vec) Add(o Vec) Vec {
	return Vec{v.X + o.X, v.Y + o.Y}
}

type Direction int32

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
	DirNone Direction = -1
)

var deltas = [4]Vec{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}

func (d Direction) Valid() bool {
	return d >= DirRight && d <= DirUp
}

func (d Direction) Delta() Vec {
	if !d.Valid() {
		return Vec{}
	}
	return deltas[d]
}

func (d Direction) Opposite() Direction {
	if !d.Valid() {
		return DirNone
	}
	return (d + 2) % 4
}

type CellKind int32

const (
	CellEmpty CellKind = iota
	CellTerritory
	CellTrail
)

// CellState is the tagged per-cell variant. Owner is meaningful only
// for the Territory and Trail kinds.
type CellState struct {
	Kind  CellKind
	Owner int32
}

func Empty() CellState {
	return CellState{Kind: CellEmpty}
}

func Territory(owner int32) CellState {
	return CellState{Kind: CellTerritory, Owner: owner}
}

func Trail(owner int32) CellState {
	return CellState{Kind: CellTrail, Owner: owner}
}

func (c CellState) IsEmpty() bool {
	return c.Kind == CellEmpty
}

func (c CellState) IsTerritoryOf(id int32) bool {
	return c.Kind == CellTerritory && c.Owner == id
}

func (c CellState) IsTrailOf(id int32) bool {
	return c.Kind == CellTrail && c.Owner == id
}
