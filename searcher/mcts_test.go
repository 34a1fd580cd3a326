package searcher

import (
	"testing"

	"pente/game"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// fourInRowState builds a position where player 1 has an open four on
// row 3 and is to move: (3,0) and (3,5) both win on the spot.
func fourInRowState(t *testing.T) *game.GameState {
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
	require.Equal(t, 1, gs.CurrentPlayer())
	require.Equal(t, 0, gs.Winner())
	return gs
}

func TestSearchFindsWinningMove(t *testing.T) {
	gs := fourInRowState(t)
	m := NewMCTS(9,
		WithSimulations(200),
		WithEvaluator(HeuristicEvaluator{}),
	)

	move, policy, err := m.Search(gs)
	require.NoError(t, err)

	winning := []game.Position{{Row: 3, Col: 0}, {Row: 3, Col: 5}}
	require.Contains(t, winning, move, "Search should play the immediate win")
	require.NotEmpty(t, policy)
	require.Greater(t, policy[winning[0]]+policy[winning[1]], float32(0.5),
		"The winning moves should dominate the visit distribution")
}

func TestSearchBlocksOpponentWin(t *testing.T) {
	// Player -1 holds a four anchored on the board edge; (3,4) is the
	// only end left open, so every other reply loses.
	gs := game.NewGameState(9, 5, false)
	for _, mv := range []game.Position{
		{Row: 6, Col: 1}, {Row: 3, Col: 0},
		{Row: 6, Col: 2}, {Row: 3, Col: 1},
		{Row: 6, Col: 3}, {Row: 3, Col: 2},
		{Row: 0, Col: 8}, {Row: 3, Col: 3},
	} {
		_, err := gs.MakeMove(mv)
		require.NoError(t, err)
	}
	require.Equal(t, 1, gs.CurrentPlayer())
	require.Equal(t, 0, gs.Winner())

	m := NewMCTS(9,
		WithSimulations(1500),
		WithEvaluator(HeuristicEvaluator{}),
	)

	move, _, err := m.Search(gs)
	require.NoError(t, err)
	require.Equal(t, game.Position{Row: 3, Col: 4}, move, "The block is the only non-losing move")
}

func TestSearchRestoresState(t *testing.T) {
	gs := fourInRowState(t)
	snapshot := gs.Clone()

	m := NewMCTS(9,
		WithSimulations(100),
		WithEvaluator(HeuristicEvaluator{}),
	)
	_, _, err := m.Search(gs)
	require.NoError(t, err)

	require.True(t, gs.Board().Equal(snapshot.Board()), "Search must leave the state untouched")
	require.Equal(t, snapshot.MoveCount(), gs.MoveCount())
	require.Equal(t, snapshot.CurrentPlayer(), gs.CurrentPlayer())
	require.Equal(t, snapshot.Captures(1), gs.Captures(1))
	require.Equal(t, snapshot.Captures(-1), gs.Captures(-1))
}

func TestSearchDeterminism(t *testing.T) {
	build := func() *MCTS {
		return NewMCTS(9,
			WithSimulations(150),
			WithEvaluator(HeuristicEvaluator{}),
		)
	}

	moveA, policyA, err := build().Search(fourInRowState(t))
	require.NoError(t, err)
	moveB, policyB, err := build().Search(fourInRowState(t))
	require.NoError(t, err)

	require.Equal(t, moveA, moveB, "Same evaluator and budget should reproduce the move")
	require.Equal(t, policyA, policyB)
}

func TestSearchTerminalPosition(t *testing.T) {
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
	require.Equal(t, 1, gs.Winner())

	m := NewMCTS(9, WithSimulations(10), WithEvaluator(HeuristicEvaluator{}))
	_, _, err := m.Search(gs)
	require.ErrorIs(t, err, game.ErrNoLegalMoves)
}

func TestSearchEvaluatorFailure(t *testing.T) {
	gs := fourInRowState(t)
	snapshot := gs.Clone()

	calls := 0
	failing := EvaluatorFunc(func(state *game.GameState, candidates []game.Position) (Prediction, error) {
		calls++
		if calls > 3 {
			return Prediction{}, errors.New("inference backend down")
		}
		return HeuristicEvaluator{}.Evaluate(state, candidates)
	})

	m := NewMCTS(9, WithSimulations(500), WithEvaluator(failing))
	_, _, err := m.Search(gs)

	require.ErrorIs(t, err, ErrEvaluator, "Evaluator failures abort the search")
	require.True(t, gs.Board().Equal(snapshot.Board()),
		"A failed search must still unwind the state")
	require.Equal(t, snapshot.MoveCount(), gs.MoveCount())
}

func TestSearchRootWidening(t *testing.T) {
	// Enough simulations to push the root past its first two widening
	// thresholds; the candidate set must only ever grow.
	gs := game.NewGameState(9, 5, false)
	for _, mv := range []game.Position{{Row: 4, Col: 4}, {Row: 4, Col: 5}} {
		_, err := gs.MakeMove(mv)
		require.NoError(t, err)
	}

	m := NewMCTS(9, WithSimulations(300), WithEvaluator(HeuristicEvaluator{}))
	root, err := m.run(gs)
	require.NoError(t, err)

	require.Greater(t, len(root.children), 15,
		"The root should have widened beyond the first bucket")
	seen := make(map[game.Position]struct{})
	for _, child := range root.children {
		_, dup := seen[child.move]
		require.False(t, dup, "Widening must never duplicate a child")
		seen[child.move] = struct{}{}
	}
}
