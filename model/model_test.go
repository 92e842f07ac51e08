package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirectionDelta(t *testing.T) {
	assert.Equal(t, Vec{X: 1, Y: 0}, DirRight.Delta())
	assert.Equal(t, Vec{X: 0, Y: 1}, DirDown.Delta())
	assert.Equal(t, Vec{X: -1, Y: 0}, DirLeft.Delta())
	assert.Equal(t, Vec{X: 0, Y: -1}, DirUp.Delta())
	assert.Equal(t, Vec{}, DirNone.Delta())
}

func TestDirectionOpposite(t *testing.T) {
	assert.Equal(t, DirLeft, DirRight.Opposite())
	assert.Equal(t, DirUp, DirDown.Opposite())
	assert.Equal(t, DirRight, DirLeft.Opposite())
	assert.Equal(t, DirDown, DirUp.Opposite())
	assert.Equal(t, DirNone, DirNone.Opposite())
	assert.False(t, DirNone.Valid())
	assert.False(t, Direction(4).Valid())
}

func TestCellStateTags(t *testing.T) {
	assert.True(t, Empty().IsEmpty())
	assert.True(t, Territory(3).IsTerritoryOf(3))
	assert.False(t, Territory(3).IsTerritoryOf(4))
	assert.True(t, Trail(3).IsTrailOf(3))
	assert.False(t, Trail(3).IsTrailOf(4))
	assert.False(t, Trail(3).IsEmpty())
}
