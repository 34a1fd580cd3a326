package player

import (
	"pente/game"
	"pente/searcher"

	"github.com/pkg/errors"
)

// Player chooses the next move for the side to move in the given
// position. Implementations must leave the state unmutated.
type Player interface {
	NextMove(state *game.GameState) (game.Position, error)
}

// SearchPlayer picks moves with Monte Carlo tree search.
type SearchPlayer struct {
	mcts *searcher.MCTS
}

// NewSearchPlayer wraps a configured searcher as a player.
func NewSearchPlayer(mcts *searcher.MCTS) *SearchPlayer {
	return &SearchPlayer{mcts: mcts}
}

// NextMove implements Player.
func (p *SearchPlayer) NextMove(state *game.GameState) (game.Position, error) {
	move, _, err := p.mcts.Search(state)
	if err != nil {
		return game.Position{}, errors.Wrap(err, "search player")
	}
	return move, nil
}

// HeuristicPlayer picks the best move by the rule-based tiers alone,
// no lookahead. A cheap, deterministic baseline opponent.
type HeuristicPlayer struct{}

// NextMove implements Player.
func (HeuristicPlayer) NextMove(state *game.GameState) (game.Position, error) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return game.Position{}, game.ErrNoLegalMoves
	}
	scored := game.NewMoveHeuristic(state).EvaluateMoves(moves)
	return scored[0].Move, nil
}
