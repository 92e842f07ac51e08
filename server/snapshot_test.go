package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/turf/model"
)

func TestSnapshotDiff(t *testing.T) {
	gs := newTestSession(10, 10)
	addTestPlayer(gs, 2, 7, 7)
	a := addTestPlayer(gs, 1, 0, 0)

	// first snapshot carries both spawn blocks
	snap := gs.buildSnapshot()
	require.Len(t, snap.Cells, 8)
	require.Len(t, snap.Players, 2)
	assert.Equal(t, int32(1), snap.Players[0].Id)
	assert.Equal(t, int32(2), snap.Players[1].Id)

	// nothing changed: empty diff
	snap = gs.buildSnapshot()
	assert.Empty(t, snap.Cells)

	// one move, one changed cell
	gs.StepTick(map[int32]model.Direction{1: model.DirRight})
	snap = gs.buildSnapshot()
	require.Len(t, snap.Cells, 1)
	assert.Equal(t, model.CellDiff{
		At:    model.Vec{X: 2, Y: 1},
		State: model.Trail(1),
	}, snap.Cells[0])
	assert.Equal(t, a.Pos, snap.Players[0].Pos)
	assert.Equal(t, gs.Tick, snap.Tick)
}

func TestSetupCarriesFullGrid(t *testing.T) {
	gs := newTestSession(6, 5)
	p := addTestPlayer(gs, 1, 2, 2)
	ps := &PlayerSession{Id: 1, GameSession: gs}

	msg := ps.MakeGameSetupMessage()
	require.NotNil(t, msg.Setup)
	assert.Equal(t, 6, msg.Setup.Cols)
	assert.Equal(t, 5, msg.Setup.Rows)
	assert.Equal(t, int32(1), msg.Setup.PlayerKey)
	assert.Len(t, msg.Setup.Grid, 30)
	assert.Equal(t, model.Territory(1), msg.Setup.Grid[2*6+2])
	assert.Equal(t, 4, p.Score)
}
