package game

// MoveDelta records the full effect of one move: the placed stone and
// any stones it captured. A delta holds everything UndoMove needs to
// reverse the move exactly, which is what lets the search explore by
// mutating a single GameState instead of cloning it.
//
// Deltas are immutable once returned by MakeMove and are owned by the
// GameState's move history.
type MoveDelta struct {
	Position       Position
	Player         int        // who placed the stone: 1 or -1
	Captured       []Position // captured stones, in scan order; empty for most moves
	CapturedPlayer int        // owner of the captured stones, 0 when none
	CaptureCount   int        // number of captured pairs: len(Captured)/2
}

// HasCaptures reports whether the move removed any opponent stones.
func (d MoveDelta) HasCaptures() bool { return len(d.Captured) > 0 }
