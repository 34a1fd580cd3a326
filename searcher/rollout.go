package searcher

import (
	"pente/game"

	"golang.org/x/exp/rand"
)

// RolloutEvaluator is the evaluator-absent fallback: priors come from
// the move heuristic, and the value comes from playing the position out
// to a terminal state with heuristic-weighted random moves. Every move
// made during the playout is undone before Evaluate returns, so the
// state comes back bit-identical.
//
// Playouts are stochastic; seed the source for reproducible searches.
type RolloutEvaluator struct {
	rng *rand.Rand

	// MaxMoves caps the playout length; a playout that hits the cap
	// scores 0. Zero means no cap beyond the board filling up.
	MaxMoves int
}

// NewRolloutEvaluator creates a rollout evaluator seeded for
// reproducibility.
func NewRolloutEvaluator(seed uint64) *RolloutEvaluator {
	return &RolloutEvaluator{rng: rand.New(rand.NewSource(seed))}
}

// Evaluate implements Evaluator.
func (e *RolloutEvaluator) Evaluate(state *game.GameState, candidates []game.Position) (Prediction, error) {
	h := game.NewMoveHeuristic(state)
	priors := make([]float32, len(candidates))
	for i, mv := range candidates {
		priors[i] = h.Score(mv)
	}

	return Prediction{
		Priors: normalizePriors(priors, len(candidates)),
		Value:  e.playout(state),
	}, nil
}

// playout plays heuristic-weighted random moves until the game ends or
// the cap is reached, then unwinds every move. The returned value is
// from the perspective of the player to move in the starting position.
func (e *RolloutEvaluator) playout(state *game.GameState) float32 {
	mover := state.CurrentPlayer()
	depth := 0
	// The unwind must run on every exit path, including an early win.
	defer func() {
		for i := 0; i < depth; i++ {
			state.UndoMove()
		}
	}()

	for e.MaxMoves <= 0 || depth < e.MaxMoves {
		if winner := state.Winner(); winner != 0 {
			if winner == mover {
				return 1
			}
			return -1
		}
		moves := state.LegalMoves()
		if len(moves) == 0 {
			return 0 // board full, no winner
		}

		if _, err := state.MakeMove(e.sampleMove(state, moves)); err != nil {
			// Legal moves are generated from the live board; a failed
			// apply means the state machine is corrupted.
			panic(err)
		}
		depth++
	}
	return 0
}

// sampleMove picks a legal move with probability proportional to its
// heuristic weight, so playouts prefer forcing moves without becoming
// deterministic.
func (e *RolloutEvaluator) sampleMove(state *game.GameState, moves []game.Position) game.Position {
	h := game.NewMoveHeuristic(state)
	weights := make([]float32, len(moves))
	var total float32
	for i, mv := range moves {
		weights[i] = h.Score(mv)
		total += weights[i]
	}
	if total <= 0 {
		return moves[e.rng.Intn(len(moves))]
	}

	target := float32(e.rng.Float64()) * total
	var cumulative float32
	for i, w := range weights {
		cumulative += w
		if target <= cumulative {
			return moves[i]
		}
	}
	return moves[len(moves)-1]
}
