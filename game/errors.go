package game

import "github.com/pkg/errors"

// Error kinds surfaced by the engine. All of them indicate caller or
// generator bugs rather than recoverable conditions: a search that
// produces an occupied or out-of-range move is broken and should stop.
var (
	// ErrOccupiedCell is returned when a move targets a non-empty cell.
	ErrOccupiedCell = errors.New("cell is already occupied")

	// ErrOutOfRange is returned for coordinates outside the board.
	ErrOutOfRange = errors.New("position out of range")

	// ErrRestrictedMove is returned for a second move that violates the
	// tournament rule's distance requirement.
	ErrRestrictedMove = errors.New("move restricted by tournament rule")

	// ErrNoLegalMoves is returned when a search is started on a state
	// with no legal moves; callers should check IsTerminal first.
	ErrNoLegalMoves = errors.New("no legal moves")
)
