package searcher

import (
	"pente/game"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	defaultSimulations = 1000
	defaultExploration = 1.4
	defaultRolloutSeed = 1
)

// MCTS runs PUCT-guided Monte Carlo tree search over a single mutable
// game state. One instance serves one goroutine; for parallel search
// each worker gets its own MCTS and its own clone of the state.
type MCTS struct {
	simulations int
	exploration float32
	evaluator   Evaluator
	generator   *game.MoveGenerator
}

// Option configures an MCTS.
type Option func(*MCTS)

// WithSimulations sets the number of simulations per search.
func WithSimulations(n int) Option {
	return func(m *MCTS) { m.simulations = n }
}

// WithExploration sets the PUCT exploration constant.
func WithExploration(c float32) Option {
	return func(m *MCTS) { m.exploration = c }
}

// WithEvaluator sets the position evaluator. Without this option the
// search falls back to heuristic-guided rollouts.
func WithEvaluator(e Evaluator) Option {
	return func(m *MCTS) { m.evaluator = e }
}

// NewMCTS creates a searcher for the given board size.
func NewMCTS(boardSize int, options ...Option) *MCTS {
	m := &MCTS{
		simulations: defaultSimulations,
		exploration: defaultExploration,
		evaluator:   NewRolloutEvaluator(defaultRolloutSeed),
		generator:   game.NewMoveGenerator(boardSize),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Search runs the configured number of simulations from the given
// position and returns the most-visited root move together with the
// normalized visit distribution over the root's children. The state is
// mutated during the search but restored before Search returns, even
// when the evaluator fails mid-simulation.
//
// Searching a finished position, or one with no legal moves, returns
// ErrNoLegalMoves. An evaluator failure aborts the search and surfaces
// as ErrEvaluator.
func (m *MCTS) Search(state *game.GameState) (game.Position, map[game.Position]float32, error) {
	if state.IsTerminal() {
		return game.Position{}, nil, errors.Wrap(game.ErrNoLegalMoves, "search from terminal position")
	}

	root, err := m.run(state)
	if err != nil {
		return game.Position{}, nil, err
	}

	best := root.bestChild()
	if best == nil || best.visits == 0 {
		// Degenerate budget: no simulation reached a child, so fall back
		// to the best heuristic move rather than an arbitrary one.
		scored := game.NewMoveHeuristic(state).EvaluateMoves(state.LegalMoves())
		return scored[0].Move, nil, nil
	}

	log.Debug().
		Int("simulations", m.simulations).
		Int("root_children", len(root.children)).
		Int("best_visits", best.visits).
		Float32("best_q", best.q()).
		Msg("search complete")

	return best.move, root.visitPolicy(), nil
}

// run builds a fresh tree and runs the simulation budget against it.
// Root-parallel workers call this directly and merge the roots.
func (m *MCTS) run(state *game.GameState) (*node, error) {
	root := &node{}
	for i := 0; i < m.simulations; i++ {
		if err := m.simulate(state, root); err != nil {
			return nil, err
		}
	}
	return root, nil
}

// simulate walks one selection path from the root, expands the leaf it
// lands on, and backpropagates the leaf value. Every move made on the
// way down is undone before simulate returns, on every exit path.
func (m *MCTS) simulate(state *game.GameState, root *node) error {
	depth := 0
	defer func() {
		for i := 0; i < depth; i++ {
			state.UndoMove()
		}
	}()

	current := root
	for {
		if current.terminal {
			backpropagate(current, current.terminalValue)
			return nil
		}
		if !current.expanded {
			value, err := m.expand(state, current)
			if err != nil {
				return err
			}
			backpropagate(current, value)
			return nil
		}
		if current.visits >= current.nextWiden {
			if err := m.widen(state, current); err != nil {
				return err
			}
		}

		child := current.selectChild(m.exploration)
		if child == nil {
			// Expanded with no children only happens on a full board.
			backpropagate(current, 0)
			return nil
		}
		if _, err := state.MakeMove(child.move); err != nil {
			return errors.Wrap(err, "apply selected move")
		}
		depth++
		current = child

		if winner := state.Winner(); winner != 0 {
			current.terminal = true
			current.terminalValue = -1
			if winner == state.CurrentPlayer() {
				current.terminalValue = 1
			}
		}
	}
}

// expand materializes the leaf's first candidate set, queries the
// evaluator once for priors and a value, and attaches one child per
// candidate. Returns the leaf value from the to-move perspective.
func (m *MCTS) expand(state *game.GameState, n *node) (float32, error) {
	candidates := m.generator.ProgressiveWideningMoves(state, n.visits)
	if len(candidates) == 0 {
		// The tight bucket can come up empty when the only legal cells
		// sit far from the stones; widen to the whole board before
		// declaring the position dead.
		candidates = m.generator.OrderedMoves(state, state.BoardSize())
	}
	if len(candidates) == 0 {
		n.expanded = true
		n.terminal = true
		n.terminalValue = 0
		return 0, nil
	}

	prediction, err := m.evaluator.Evaluate(state, candidates)
	if err != nil {
		return 0, errors.Wrapf(ErrEvaluator, "expand: %v", err)
	}

	priors := normalizePriors(prediction.Priors, len(candidates))
	for i, mv := range candidates {
		n.children = append(n.children, &node{move: mv, parent: n, prior: priors[i]})
	}
	n.expanded = true
	n.nextWiden = game.NextWideningThreshold(n.visits)
	return prediction.Value, nil
}

// widen recomputes the candidate set for a node that has crossed its
// widening threshold and attaches children for the newly admitted
// moves. Existing children are never regenerated; their statistics are
// the whole point of the tree.
func (m *MCTS) widen(state *game.GameState, n *node) error {
	candidates := m.generator.ProgressiveWideningMoves(state, n.visits)

	fresh := 0
	for _, mv := range candidates {
		if !n.hasChild(mv) {
			fresh++
		}
	}
	if fresh > 0 {
		prediction, err := m.evaluator.Evaluate(state, candidates)
		if err != nil {
			return errors.Wrapf(ErrEvaluator, "widen: %v", err)
		}
		priors := normalizePriors(prediction.Priors, len(candidates))
		for i, mv := range candidates {
			if !n.hasChild(mv) {
				n.children = append(n.children, &node{move: mv, parent: n, prior: priors[i]})
			}
		}
	}
	n.nextWiden = game.NextWideningThreshold(n.visits)
	return nil
}

// backpropagate adds the leaf value up the path to the root. The value
// arrives from the perspective of the player to move at the leaf; each
// node accumulates from the perspective of the player who moved into
// it, so the sign flips at every level starting with the leaf itself.
func backpropagate(leaf *node, value float32) {
	w := -value
	for n := leaf; n != nil; n = n.parent {
		n.visits++
		n.total += w
		w = -w
	}
}
