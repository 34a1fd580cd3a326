package searcher

import (
	"sync"

	"pente/game"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// ParallelMCTS runs root-parallel search: each worker clones the state,
// grows its own tree with its own searcher, and the root visit counts
// are merged move-by-move at the end. No locks on the hot path; the
// workers share nothing but the immutable distance rings.
type ParallelMCTS struct {
	workers int
	build   func() *MCTS
}

// NewParallelMCTS creates a root-parallel searcher. build constructs
// one worker's MCTS; it is called once per worker so stochastic
// evaluators can be seeded per worker instead of shared.
func NewParallelMCTS(workers int, build func() *MCTS) *ParallelMCTS {
	if workers < 1 {
		workers = 1
	}
	return &ParallelMCTS{workers: workers, build: build}
}

// Search runs every worker to completion and returns the move with the
// highest merged visit count, together with the merged visit
// distribution. The caller's state is cloned per worker and never
// mutated. If any worker fails, the first error is returned.
func (p *ParallelMCTS) Search(state *game.GameState) (game.Position, map[game.Position]float32, error) {
	if state.IsTerminal() {
		return game.Position{}, nil, errors.Wrap(game.ErrNoLegalMoves, "search from terminal position")
	}

	roots := make([]*node, p.workers)
	errs := make([]error, p.workers)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			roots[i], errs[i] = p.build().run(state.Clone())
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return game.Position{}, nil, err
		}
	}

	visits := make(map[game.Position]int)
	total := 0
	for _, root := range roots {
		for _, child := range root.children {
			visits[child.move] += child.visits
			total += child.visits
		}
	}
	if total == 0 {
		scored := game.NewMoveHeuristic(state).EvaluateMoves(state.LegalMoves())
		return scored[0].Move, nil, nil
	}

	var best game.Position
	bestVisits := -1
	policy := make(map[game.Position]float32, len(visits))
	for mv, v := range visits {
		if v > 0 {
			policy[mv] = float32(v) / float32(total)
		}
		if v > bestVisits {
			best, bestVisits = mv, v
		}
	}

	log.Debug().
		Int("workers", p.workers).
		Int("merged_visits", total).
		Int("best_visits", bestVisits).
		Msg("parallel search complete")

	return best, policy, nil
}
