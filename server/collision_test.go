package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/turf/model"
)

func reasonsByPlayer(deaths []Death) map[int32]DeathReason {
	out := make(map[int32]DeathReason)
	for _, d := range deaths {
		out[d.Player] = d.Reason
	}
	return out
}

func TestBoundaryDeath(t *testing.T) {
	g := NewGrid(10, 10)
	a := NewPlayer(1, "a")
	a.Pos = model.Vec{X: 0, Y: 5}
	players := map[int32]*Player{1: a}

	deaths := DetectCollisions(g, players, map[int32]model.Vec{1: {X: -1, Y: 5}})
	require.Len(t, deaths, 1)
	assert.Equal(t, REASON_BOUNDARY, deaths[0].Reason)
}

func TestSelfTrailDeath(t *testing.T) {
	g := NewGrid(10, 10)
	a := NewPlayer(1, "a")
	a.Pos = model.Vec{X: 3, Y: 3}
	for _, v := range []model.Vec{{X: 2, Y: 2}, {X: 3, Y: 2}, {X: 3, Y: 3}} {
		a.appendTrail(v)
		require.NoError(t, g.SetCell(v, model.Trail(1)))
	}
	players := map[int32]*Player{1: a}

	deaths := DetectCollisions(g, players, map[int32]model.Vec{1: {X: 3, Y: 2}})
	require.Len(t, deaths, 1)
	assert.Equal(t, REASON_SELF_TRAIL, deaths[0].Reason)
}

func TestOpponentTrailDeath(t *testing.T) {
	g := NewGrid(10, 10)
	a := NewPlayer(1, "a")
	a.Pos = model.Vec{X: 6, Y: 6}
	a.appendTrail(model.Vec{X: 5, Y: 5})
	require.NoError(t, g.SetCell(model.Vec{X: 5, Y: 5}, model.Trail(1)))

	b := NewPlayer(2, "b")
	b.Pos = model.Vec{X: 4, Y: 5}
	players := map[int32]*Player{1: a, 2: b}

	deaths := DetectCollisions(g, players, map[int32]model.Vec{
		1: {X: 7, Y: 6},
		2: {X: 5, Y: 5},
	})
	r := reasonsByPlayer(deaths)
	assert.Equal(t, REASON_OPPONENT_TRAIL, r[2])
	_, aDied := r[1]
	assert.False(t, aDied, "trail owner must be unaffected")
}

func TestDeadOwnersTrailDoesNotKill(t *testing.T) {
	g := NewGrid(10, 10)
	a := NewPlayer(1, "a")
	a.Alive = false
	require.NoError(t, g.SetCell(model.Vec{X: 5, Y: 5}, model.Trail(1)))

	b := NewPlayer(2, "b")
	b.Pos = model.Vec{X: 4, Y: 5}
	players := map[int32]*Player{1: a, 2: b}

	deaths := DetectCollisions(g, players, map[int32]model.Vec{2: {X: 5, Y: 5}})
	assert.Empty(t, deaths)
}

func TestHeadOnSymmetry(t *testing.T) {
	g := NewGrid(10, 10)
	a := NewPlayer(1, "a")
	a.Pos = model.Vec{X: 4, Y: 5}
	b := NewPlayer(2, "b")
	b.Pos = model.Vec{X: 6, Y: 5}
	players := map[int32]*Player{1: a, 2: b}

	proposed := map[int32]model.Vec{
		1: {X: 5, Y: 5},
		2: {X: 5, Y: 5},
	}
	r := reasonsByPlayer(DetectCollisions(g, players, proposed))
	assert.Equal(t, REASON_HEAD_ON, r[1])
	assert.Equal(t, REASON_HEAD_ON, r[2])

	// swap ids, same outcome
	players2 := map[int32]*Player{2: a, 1: b}
	a.Id, b.Id = 2, 1
	r2 := reasonsByPlayer(DetectCollisions(g, players2, proposed))
	assert.Equal(t, REASON_HEAD_ON, r2[1])
	assert.Equal(t, REASON_HEAD_ON, r2[2])
}

func TestHeadOnOnOwnTerritorySpared(t *testing.T) {
	g := NewGrid(10, 10)
	a := NewPlayer(1, "a")
	a.Pos = model.Vec{X: 4, Y: 5}
	a.claimCell(model.Vec{X: 5, Y: 5})
	require.NoError(t, g.SetCell(model.Vec{X: 5, Y: 5}, model.Territory(1)))
	b := NewPlayer(2, "b")
	b.Pos = model.Vec{X: 6, Y: 5}
	players := map[int32]*Player{1: a, 2: b}

	deaths := DetectCollisions(g, players, map[int32]model.Vec{
		1: {X: 5, Y: 5},
		2: {X: 5, Y: 5},
	})
	assert.Empty(t, deaths)
}
