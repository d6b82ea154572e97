package address

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tilemesh/core"
)

func TestResolve_Coordinate(t *testing.T) {
	tests := []struct {
		name     string
		shape    core.MeshShape
		row, col int
		want     core.CoreAddress
	}{
		{name: "origin", shape: core.MeshShape{X: 2, Y: 4}, row: 0, col: 0, want: 0},
		{name: "last column", shape: core.MeshShape{X: 2, Y: 4}, row: 1, col: 3, want: 5},
		{name: "square mesh", shape: core.MeshShape{X: 4, Y: 4}, row: 2, col: 1, want: 9},
		{name: "single core", shape: core.MeshShape{X: 1, Y: 1}, row: 0, col: 0, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(core.Coordinate(tt.row, tt.col), tt.shape)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_CoordinateFormula(t *testing.T) {
	// id = row*X + col, and every in-range coordinate lands in [0, X*Y).
	shape := core.MeshShape{X: 3, Y: 5}
	for row := 0; row < shape.X; row++ {
		for col := 0; col < shape.Y; col++ {
			got, err := Resolve(core.Coordinate(row, col), shape)
			require.NoError(t, err)
			assert.Equal(t, core.CoreAddress(row*shape.X+col), got)
			assert.GreaterOrEqual(t, int(got), 0)
			assert.Less(t, int(got), shape.Cores())
		}
	}
}

func TestResolve_Linear(t *testing.T) {
	shape := core.MeshShape{X: 2, Y: 4}
	for id := 0; id < shape.Cores(); id++ {
		got, err := Resolve(core.Linear(id), shape)
		require.NoError(t, err)
		assert.Equal(t, core.CoreAddress(id), got)
	}
}

func TestResolve_OutOfBounds(t *testing.T) {
	shape := core.MeshShape{X: 2, Y: 4}
	tests := []struct {
		name string
		ref  core.CoreRef
	}{
		{name: "negative linear", ref: core.Linear(-1)},
		{name: "linear past end", ref: core.Linear(8)},
		{name: "row too large", ref: core.Coordinate(2, 0)},
		{name: "col too large", ref: core.Coordinate(0, 4)},
		{name: "negative row", ref: core.Coordinate(-1, 0)},
		{name: "negative col", ref: core.Coordinate(0, -1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.ref, shape)
			require.Error(t, err)
			assert.True(t, errors.Is(err, core.ErrOutOfBounds), "want ErrOutOfBounds, got %v", err)
		})
	}
}

func TestResolve_InvalidRef(t *testing.T) {
	_, err := Resolve(nil, core.MeshShape{X: 2, Y: 2})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInvalidArgument))
}

func TestResolve_InvalidShape(t *testing.T) {
	_, err := Resolve(core.Linear(0), core.MeshShape{X: 0, Y: 4})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInvalidArgument))
}

func TestResolveGroup(t *testing.T) {
	shape := core.MeshShape{X: 2, Y: 2}
	got, err := ResolveGroup([]core.CoreRef{
		core.Coordinate(0, 0),
		core.Coordinate(0, 1),
		core.Linear(3),
	}, shape)
	require.NoError(t, err)
	assert.Equal(t, []core.CoreAddress{0, 1, 3}, got)
}

func TestResolveGroup_Empty(t *testing.T) {
	got, err := ResolveGroup(nil, core.MeshShape{X: 2, Y: 2})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResolveGroup_FailsFast(t *testing.T) {
	_, err := ResolveGroup([]core.CoreRef{
		core.Coordinate(0, 0),
		core.Coordinate(5, 0),
	}, core.MeshShape{X: 2, Y: 2})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrOutOfBounds))
	assert.Contains(t, err.Error(), "group member 1")
}
