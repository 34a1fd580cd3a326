package player

import (
	"testing"

	"pente/game"
	"pente/searcher"

	"github.com/stretchr/testify/require"
)

func openFourState(t *testing.T) *game.GameState {
	t.Helper()
	gs := game.NewGameState(9, 5, false)
	for _, mv := range []game.Position{
		{Row: 3, Col: 1}, {Row: 6, Col: 1},
		{Row: 3, Col: 2}, {Row: 6, Col: 2},
		{Row: 3, Col: 3}, {Row: 6, Col: 3},
		{Row: 3, Col: 4}, {Row: 0, Col: 8},
	} {
		_, err := gs.MakeMove(mv)
		require.NoError(t, err)
	}
	return gs
}

func TestHeuristicPlayer(t *testing.T) {
	t.Run("takes the immediate win", func(t *testing.T) {
		gs := openFourState(t)
		move, err := HeuristicPlayer{}.NextMove(gs)
		require.NoError(t, err)
		require.Contains(t, []game.Position{{Row: 3, Col: 0}, {Row: 3, Col: 5}}, move)
	})

	t.Run("does not mutate the state", func(t *testing.T) {
		gs := openFourState(t)
		snapshot := gs.Clone()

		_, err := HeuristicPlayer{}.NextMove(gs)
		require.NoError(t, err)
		require.True(t, gs.Board().Equal(snapshot.Board()))
		require.Equal(t, snapshot.MoveCount(), gs.MoveCount())
	})
}

func TestSearchPlayer(t *testing.T) {
	t.Run("takes the immediate win", func(t *testing.T) {
		gs := openFourState(t)
		p := NewSearchPlayer(searcher.NewMCTS(9,
			searcher.WithSimulations(150),
			searcher.WithEvaluator(searcher.HeuristicEvaluator{}),
		))

		move, err := p.NextMove(gs)
		require.NoError(t, err)
		require.Contains(t, []game.Position{{Row: 3, Col: 0}, {Row: 3, Col: 5}}, move)
	})

	t.Run("surfaces search errors", func(t *testing.T) {
		gs := game.NewGameState(9, 5, false)
		for _, mv := range []game.Position{
			{Row: 0, Col: 0}, {Row: 8, Col: 0},
			{Row: 0, Col: 1}, {Row: 8, Col: 1},
			{Row: 0, Col: 2}, {Row: 8, Col: 2},
			{Row: 0, Col: 3}, {Row: 8, Col: 3},
			{Row: 0, Col: 4},
		} {
			_, err := gs.MakeMove(mv)
			require.NoError(t, err)
		}

		p := NewSearchPlayer(searcher.NewMCTS(9, searcher.WithSimulations(10)))
		_, err := p.NextMove(gs)
		require.ErrorIs(t, err, game.ErrNoLegalMoves)
	})
}
