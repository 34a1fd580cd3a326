package game

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// eightDirections covers every capture direction from a placed stone.
var eightDirections = [8][2]int{
	{0, 1}, {1, 0}, {1, 1}, {1, -1}, {0, -1}, {-1, 0}, {-1, -1}, {-1, 1},
}

// lineDirections covers the four axes used for run detection; the
// opposite directions are handled by scanning backward.
var lineDirections = [4][2]int{
	{0, 1}, {1, 0}, {1, 1}, {1, -1},
}

// tournamentDistance is the minimum Chebyshev distance from center for
// the restricted second move when the tournament rule is on.
const tournamentDistance = 3

// GameState is the single mutable Pente position. It is created once per
// game and mutated in place for the whole search: MakeMove applies a
// move and records a MoveDelta, UndoMove reverses the most recent one.
// The board is never copied on the search path.
type GameState struct {
	board          *BitBoard
	boardSize      int
	capturesToWin  int
	tournamentRule bool

	currentPlayer int
	history       []MoveDelta
	captures      map[int]int // pairs captured, keyed by player 1 / -1
	moveCount     int
}

// NewGameState creates a fresh game. Board size, the capture-pair win
// threshold, and the tournament rule are fixed for the lifetime of the
// state. Player 1 moves first.
func NewGameState(boardSize, capturesToWin int, tournamentRule bool) *GameState {
	return &GameState{
		board:          NewBitBoard(boardSize),
		boardSize:      boardSize,
		capturesToWin:  capturesToWin,
		tournamentRule: tournamentRule,
		currentPlayer:  1,
		history:        make([]MoveDelta, 0, boardSize*boardSize),
		captures:       map[int]int{1: 0, -1: 0},
	}
}

// Board exposes the underlying bitboard for read access; mutating it
// directly bypasses the move history and breaks undo.
func (gs *GameState) Board() *BitBoard { return gs.board }

// BoardSize returns the side length of the board.
func (gs *GameState) BoardSize() int { return gs.boardSize }

// CapturesToWin returns the number of captured pairs that wins the game.
func (gs *GameState) CapturesToWin() int { return gs.capturesToWin }

// CurrentPlayer returns the player to move: 1 or -1.
func (gs *GameState) CurrentPlayer() int { return gs.currentPlayer }

// MoveCount returns the number of moves played so far.
func (gs *GameState) MoveCount() int { return gs.moveCount }

// Captures returns the number of pairs the given player has captured.
func (gs *GameState) Captures(player int) int { return gs.captures[player] }

// StonePositions returns the positions of all stones on the board, in
// play order. It reads the move history, so it is O(moves) rather than
// a board scan.
func (gs *GameState) StonePositions() []Position {
	positions := make([]Position, 0, len(gs.history))
	for _, delta := range gs.history {
		if gs.board.GetStone(delta.Position.Row, delta.Position.Col) != 0 {
			positions = append(positions, delta.Position)
		}
	}
	return positions
}

// MakeMove places a stone for the current player, resolves captures,
// pushes the resulting delta onto the history, and passes the turn.
// This is the critical path of the search.
func (gs *GameState) MakeMove(pos Position) (MoveDelta, error) {
	if !gs.board.InBounds(pos.Row, pos.Col) {
		return MoveDelta{}, errors.Wrapf(ErrOutOfRange, "move at (%d,%d)", pos.Row, pos.Col)
	}
	if !gs.board.IsEmpty(pos.Row, pos.Col) {
		return MoveDelta{}, errors.Wrapf(ErrOccupiedCell, "move at (%d,%d)", pos.Row, pos.Col)
	}
	if gs.tournamentRule && gs.moveCount == 1 && gs.currentPlayer == -1 {
		center := gs.boardSize / 2
		if chebyshev(pos.Row, pos.Col, center, center) < tournamentDistance {
			return MoveDelta{}, errors.Wrapf(ErrRestrictedMove, "move at (%d,%d)", pos.Row, pos.Col)
		}
	}

	player := gs.currentPlayer
	if err := gs.board.SetStone(pos.Row, pos.Col, player); err != nil {
		return MoveDelta{}, err
	}

	captured := gs.resolveCaptures(pos, player)
	capturedPlayer := 0
	if len(captured) > 0 {
		capturedPlayer = -player
	}
	captureCount := len(captured) / 2
	if captureCount > 0 {
		gs.captures[player] += captureCount
	}

	delta := MoveDelta{
		Position:       pos,
		Player:         player,
		Captured:       captured,
		CapturedPlayer: capturedPlayer,
		CaptureCount:   captureCount,
	}
	gs.history = append(gs.history, delta)
	gs.moveCount++
	gs.currentPlayer = -player
	return delta, nil
}

// resolveCaptures removes every opponent pair flanked by the stone just
// placed at pos, pattern mine-opp-opp-mine along each of the eight
// directions, and returns the removed positions.
func (gs *GameState) resolveCaptures(pos Position, player int) []Position {
	opponent := -player
	var captured []Position
	for _, dir := range eightDirections {
		r1, c1 := pos.Row+dir[0], pos.Col+dir[1]
		r2, c2 := r1+dir[0], c1+dir[1]
		r3, c3 := r2+dir[0], c2+dir[1]
		// GetStone reads out-of-range as empty, so the bounds checks are
		// folded into the pattern match.
		if gs.board.GetStone(r1, c1) != opponent ||
			gs.board.GetStone(r2, c2) != opponent ||
			gs.board.GetStone(r3, c3) != player {
			continue
		}
		gs.board.RemoveStone(r1, c1)
		gs.board.RemoveStone(r2, c2)
		captured = append(captured, Position{r1, c1}, Position{r2, c2})
	}
	return captured
}

// UndoMove reverses the most recent move: restores captured stones,
// decrements the capture tally, clears the placed cell, and returns the
// turn to the mover. Undoing past the start of history is a no-op that
// returns nil, so callers can unwind unconditionally.
func (gs *GameState) UndoMove() *MoveDelta {
	if len(gs.history) == 0 {
		return nil
	}
	delta := gs.history[len(gs.history)-1]
	gs.history = gs.history[:len(gs.history)-1]

	gs.currentPlayer = delta.Player
	gs.moveCount--
	gs.board.RemoveStone(delta.Position.Row, delta.Position.Col)
	if delta.HasCaptures() {
		for _, pos := range delta.Captured {
			gs.board.SetStone(pos.Row, pos.Col, delta.CapturedPlayer)
		}
		gs.captures[delta.Player] -= delta.CaptureCount
	}
	return &delta
}

// LegalMoves returns every empty cell, except on the second move of the
// game under the tournament rule, where the second player's reply is
// restricted to cells at Chebyshev distance >= 3 from the center.
func (gs *GameState) LegalMoves() []Position {
	restricted := gs.tournamentRule && gs.moveCount == 1 && gs.currentPlayer == -1
	center := gs.boardSize / 2

	moves := make([]Position, 0, gs.boardSize*gs.boardSize-gs.moveCount)
	for row := 0; row < gs.boardSize; row++ {
		for col := 0; col < gs.boardSize; col++ {
			if !gs.board.IsEmpty(row, col) {
				continue
			}
			if restricted && chebyshev(row, col, center, center) < tournamentDistance {
				continue
			}
			moves = append(moves, Position{row, col})
		}
	}
	return moves
}

// Winner returns the winning player, or 0 while the game is open. A
// player wins by reaching the capture threshold or by any run of five
// or more stones along a row, column, or diagonal; overlines count.
func (gs *GameState) Winner() int {
	for _, player := range []int{1, -1} {
		if gs.captures[player] >= gs.capturesToWin {
			return player
		}
	}
	return gs.fiveInRow()
}

func (gs *GameState) fiveInRow() int {
	for _, stone := range gs.board.AllStones() {
		for _, dir := range lineDirections {
			if gs.countLine(stone.Row, stone.Col, dir[0], dir[1], stone.Player) >= 5 {
				return stone.Player
			}
		}
	}
	return 0
}

// countLine counts the consecutive stones of player through (row, col)
// along direction (dr, dc), scanning both ways from the starting cell.
func (gs *GameState) countLine(row, col, dr, dc, player int) int {
	count := 1
	for r, c := row+dr, col+dc; gs.board.GetStone(r, c) == player; r, c = r+dr, c+dc {
		count++
	}
	for r, c := row-dr, col-dc; gs.board.GetStone(r, c) == player; r, c = r-dr, c-dc {
		count++
	}
	return count
}

// IsTerminal reports whether the game is over: a winner exists or no
// legal moves remain.
func (gs *GameState) IsTerminal() bool {
	return gs.Winner() != 0 || len(gs.LegalMoves()) == 0
}

// Clone returns an independent copy for root-parallel workers and test
// fixtures. The search itself never clones.
func (gs *GameState) Clone() *GameState {
	history := make([]MoveDelta, len(gs.history))
	copy(history, gs.history)
	return &GameState{
		board:          gs.board.Copy(),
		boardSize:      gs.boardSize,
		capturesToWin:  gs.capturesToWin,
		tournamentRule: gs.tournamentRule,
		currentPlayer:  gs.currentPlayer,
		history:        history,
		captures:       map[int]int{1: gs.captures[1], -1: gs.captures[-1]},
		moveCount:      gs.moveCount,
	}
}

func (gs *GameState) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "move %d, player %d to play\n", gs.moveCount, gs.currentPlayer)
	fmt.Fprintf(&sb, "captures: player 1 = %d, player -1 = %d\n", gs.captures[1], gs.captures[-1])
	sb.WriteString(gs.board.String())
	return sb.String()
}

// chebyshev is the max of the absolute row and column differences.
func chebyshev(r1, c1, r2, c2 int) int {
	dr, dc := r1-r2, c1-c2
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	if dr > dc {
		return dr
	}
	return dc
}
