package searcher

import (
	"pente/game"

	"github.com/pkg/errors"
)

// ErrEvaluator wraps any failure of the position evaluator. The search
// performs no retries; retry policy belongs to whoever owns the
// evaluator, so the error surfaces directly to the Search caller.
var ErrEvaluator = errors.New("evaluator failure")

// Prediction is the evaluator's answer for one position: a prior
// probability per candidate move, aligned index-for-index with the
// candidate slice the evaluator was given, and a scalar value in
// [-1, 1] from the perspective of the player to move.
type Prediction struct {
	Priors []float32
	Value  float32
}

// Evaluator scores a position. Any scoring strategy satisfies it: a
// learned network over the state's feature tensor, the rule-based
// heuristic, a uniform prior. Implementations must not leave the state
// mutated, and may return priors for only a subset of the candidates;
// the search treats missing entries as zero and renormalizes.
type Evaluator interface {
	Evaluate(state *game.GameState, candidates []game.Position) (Prediction, error)
}

// EvaluatorFunc adapts a plain function to the Evaluator capability.
type EvaluatorFunc func(state *game.GameState, candidates []game.Position) (Prediction, error)

// Evaluate implements Evaluator.
func (f EvaluatorFunc) Evaluate(state *game.GameState, candidates []game.Position) (Prediction, error) {
	return f(state, candidates)
}

// normalizePriors pads or truncates priors to n entries, zeroes out
// negatives, and renormalizes to sum to 1. A degenerate distribution
// (everything zero or missing) falls back to uniform so the search
// still gets a usable exploration term.
func normalizePriors(priors []float32, n int) []float32 {
	out := make([]float32, n)
	var sum float32
	for i := 0; i < n && i < len(priors); i++ {
		if priors[i] > 0 {
			out[i] = priors[i]
			sum += priors[i]
		}
	}
	if sum <= 0 {
		uniform := 1 / float32(n)
		for i := range out {
			out[i] = uniform
		}
		return out
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// UniformEvaluator assigns every candidate the same prior and values
// every position as even. Useful as a control and in tests.
type UniformEvaluator struct{}

// Evaluate implements Evaluator.
func (UniformEvaluator) Evaluate(_ *game.GameState, candidates []game.Position) (Prediction, error) {
	if len(candidates) == 0 {
		return Prediction{}, errors.New("no candidates to evaluate")
	}
	priors := make([]float32, len(candidates))
	uniform := 1 / float32(len(candidates))
	for i := range priors {
		priors[i] = uniform
	}
	return Prediction{Priors: priors}, nil
}

// HeuristicEvaluator derives priors from the rule-based move tiers and
// values the position by the capture race. It is deterministic, which
// makes it the evaluator of choice for reproducible searches without a
// network.
type HeuristicEvaluator struct{}

// Evaluate implements Evaluator.
func (HeuristicEvaluator) Evaluate(state *game.GameState, candidates []game.Position) (Prediction, error) {
	if len(candidates) == 0 {
		return Prediction{}, errors.New("no candidates to evaluate")
	}
	h := game.NewMoveHeuristic(state)
	priors := make([]float32, len(candidates))
	for i, mv := range candidates {
		priors[i] = h.Score(mv)
	}
	return Prediction{
		Priors: normalizePriors(priors, len(candidates)),
		Value:  captureRaceValue(state),
	}, nil
}

// captureRaceValue scores the position by the capture differential from
// the current player's perspective, scaled into (-1, 1).
func captureRaceValue(state *game.GameState) float32 {
	player := state.CurrentPlayer()
	diff := state.Captures(player) - state.Captures(-player)
	return float32(diff) / float32(state.CapturesToWin())
}
