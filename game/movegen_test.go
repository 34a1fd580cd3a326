package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderedMoves(t *testing.T) {
	gen := NewMoveGenerator(13)

	t.Run("empty board falls back to all legal moves", func(t *testing.T) {
		gs := NewGameState(13, 5, false)
		moves := gen.OrderedMoves(gs, 1)
		require.Len(t, moves, 169, "Every cell is a candidate on an empty board")
	})

	t.Run("candidates stay within the distance bound", func(t *testing.T) {
		gs := NewGameState(13, 5, false)
		play(t, gs, Position{6, 6})

		moves := gen.OrderedMoves(gs, 1)
		require.Len(t, moves, 8)
		for _, mv := range moves {
			require.Equal(t, 1, chebyshev(mv.Row, mv.Col, 6, 6))
		}
	})

	t.Run("occupied cells are filtered out", func(t *testing.T) {
		gs := NewGameState(13, 5, false)
		play(t, gs, Position{6, 6}, Position{6, 7})

		moves := gen.OrderedMoves(gs, 2)
		require.NotContains(t, moves, Position{6, 6})
		require.NotContains(t, moves, Position{6, 7})
		for _, mv := range moves {
			require.True(t, gs.Board().IsEmpty(mv.Row, mv.Col))
		}
	})

	t.Run("closer candidates come first", func(t *testing.T) {
		gs := NewGameState(13, 5, false)
		play(t, gs, Position{6, 6})

		moves := gen.OrderedMoves(gs, 3)
		previous := 0
		for _, mv := range moves {
			d := chebyshev(mv.Row, mv.Col, 6, 6)
			require.GreaterOrEqual(t, d, previous, "Ordering should be nondecreasing in distance")
			previous = d
		}
	})
}

func TestProgressiveWideningMoves(t *testing.T) {
	gen := NewMoveGenerator(13)
	gs := NewGameState(13, 5, false)
	play(t, gs, Position{6, 6}, Position{6, 7}, Position{7, 6})

	t.Run("candidate sets widen with visits", func(t *testing.T) {
		narrow := gen.ProgressiveWideningMoves(gs, 0)
		middle := gen.ProgressiveWideningMoves(gs, 50)
		wide := gen.ProgressiveWideningMoves(gs, 500)
		widest := gen.ProgressiveWideningMoves(gs, 5000)

		require.LessOrEqual(t, len(narrow), len(middle))
		require.LessOrEqual(t, len(middle), len(wide))
		require.LessOrEqual(t, len(wide), len(widest))

		require.LessOrEqual(t, len(narrow), 15)
		require.LessOrEqual(t, len(middle), 30)
		require.LessOrEqual(t, len(wide), 50)
		require.LessOrEqual(t, len(widest), 80)
	})

	t.Run("fresh node sticks to adjacent cells", func(t *testing.T) {
		for _, mv := range gen.ProgressiveWideningMoves(gs, 0) {
			closest := 13
			for _, stone := range gs.StonePositions() {
				if d := chebyshev(mv.Row, mv.Col, stone.Row, stone.Col); d < closest {
					closest = d
				}
			}
			require.Equal(t, 1, closest, "Visit count 0 should only admit distance-1 cells")
		}
	})
}

func TestNextWideningThreshold(t *testing.T) {
	require.Equal(t, 10, NextWideningThreshold(0))
	require.Equal(t, 10, NextWideningThreshold(9))
	require.Equal(t, 100, NextWideningThreshold(10))
	require.Equal(t, 1000, NextWideningThreshold(999))
	maxInt := int(^uint(0) >> 1)
	require.Equal(t, maxInt, NextWideningThreshold(1000))
	require.Equal(t, maxInt, NextWideningThreshold(100000))
}
