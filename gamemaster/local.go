package gamemaster

import (
	"pente/game"
	"pente/player"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Result is the outcome of one finished game.
type Result struct {
	Winner int // 1, -1, or 0 for a draw
	Moves  int
	Final  *game.GameState
}

// LocalEngine plays two players against each other on one in-process
// game state. It owns the state: players only ever see it through
// NextMove and must not mutate it.
type LocalEngine struct {
	boardSize      int
	capturesToWin  int
	tournamentRule bool
	maxMoves       int
}

// NewLocalEngine creates an engine with the given game parameters.
// maxMoves caps runaway games; zero means no cap beyond a full board.
func NewLocalEngine(boardSize, capturesToWin int, tournamentRule bool, maxMoves int) *LocalEngine {
	return &LocalEngine{
		boardSize:      boardSize,
		capturesToWin:  capturesToWin,
		tournamentRule: tournamentRule,
		maxMoves:       maxMoves,
	}
}

// Play runs a full game, first against second, until someone wins, the
// board fills, or the move cap is hit. Player 1 moves first. A player
// returning an illegal move, or any move the state rejects, ends the
// game with an error.
func (e *LocalEngine) Play(first, second player.Player) (Result, error) {
	state := game.NewGameState(e.boardSize, e.capturesToWin, e.tournamentRule)
	players := map[int]player.Player{1: first, -1: second}

	for e.maxMoves <= 0 || state.MoveCount() < e.maxMoves {
		if winner := state.Winner(); winner != 0 {
			log.Info().
				Int("winner", winner).
				Int("moves", state.MoveCount()).
				Int("captures_p1", state.Captures(1)).
				Int("captures_p2", state.Captures(-1)).
				Msg("game over")
			return Result{Winner: winner, Moves: state.MoveCount(), Final: state}, nil
		}
		if len(state.LegalMoves()) == 0 {
			return Result{Moves: state.MoveCount(), Final: state}, nil
		}

		mover := state.CurrentPlayer()
		move, err := players[mover].NextMove(state)
		if err != nil {
			return Result{}, errors.Wrapf(err, "player %d move %d", mover, state.MoveCount())
		}
		if _, err := state.MakeMove(move); err != nil {
			return Result{}, errors.Wrapf(err, "player %d played illegal move (%d,%d)", mover, move.Row, move.Col)
		}
		log.Debug().
			Int("player", mover).
			Int("row", move.Row).
			Int("col", move.Col).
			Int("move", state.MoveCount()).
			Msg("move played")
	}

	// Move cap reached with no winner; score it a draw.
	return Result{Moves: state.MoveCount(), Final: state}, nil
}
