package game

import "sort"

// Heuristic priority tiers. Every candidate move lands in exactly one
// tier; the weights only need to order the tiers, their magnitudes are
// also used as sampling weights by the rollout policy.
const (
	WeightCritical float32 = 100 // wins now, or blocks an immediate win
	WeightVeryHigh float32 = 50  // captures a pair, or makes an open four
	WeightHigh     float32 = 20  // makes an open three, or blocks one
	WeightMedium   float32 = 5   // within distance 2 of an existing stone
	WeightLow      float32 = 1   // anything else
)

// ScoredMove pairs a candidate move with its heuristic weight.
type ScoredMove struct {
	Move  Position
	Score float32
}

// MoveHeuristic is the rule-based fallback scorer used when no learned
// evaluator is wired in: simulation-phase move sampling, prior
// seeding, and the last-resort move pick all consult it. All checks
// are static board scans; the heuristic never mutates the state.
type MoveHeuristic struct {
	state *GameState
}

// NewMoveHeuristic creates a scorer bound to the given state.
func NewMoveHeuristic(state *GameState) *MoveHeuristic {
	return &MoveHeuristic{state: state}
}

// Score returns the tier weight for a single candidate move of the
// current player.
func (h *MoveHeuristic) Score(move Position) float32 {
	player := h.state.CurrentPlayer()
	opponent := -player

	switch {
	case h.winsAt(move, player), h.winsAt(move, opponent):
		// Taking a win and denying one are equally urgent.
		return WeightCritical
	case h.capturesAt(move, player) > 0, h.makesRun(move, player, 4):
		return WeightVeryHigh
	case h.makesRun(move, player, 3), h.makesRun(move, opponent, 3):
		return WeightHigh
	case h.nearCluster(move, 2):
		return WeightMedium
	default:
		return WeightLow
	}
}

// EvaluateMoves scores every candidate and returns them ordered best
// first. The sort is stable, so ties keep the caller's candidate order.
func (h *MoveHeuristic) EvaluateMoves(moves []Position) []ScoredMove {
	scored := make([]ScoredMove, len(moves))
	for i, mv := range moves {
		scored[i] = ScoredMove{Move: mv, Score: h.Score(mv)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// winsAt reports whether placing a stone for player at pos would win
// immediately, by completing a run of five or by reaching the capture
// threshold.
func (h *MoveHeuristic) winsAt(pos Position, player int) bool {
	if h.runThrough(pos, player) >= 5 {
		return true
	}
	pairs := h.capturesAt(pos, player)
	return pairs > 0 && h.state.Captures(player)+pairs >= h.state.CapturesToWin()
}

// runThrough returns the longest run player would hold through pos,
// counting pos as occupied.
func (h *MoveHeuristic) runThrough(pos Position, player int) int {
	board := h.state.Board()
	longest := 1
	for _, dir := range lineDirections {
		count := 1
		for r, c := pos.Row+dir[0], pos.Col+dir[1]; board.GetStone(r, c) == player; r, c = r+dir[0], c+dir[1] {
			count++
		}
		for r, c := pos.Row-dir[0], pos.Col-dir[1]; board.GetStone(r, c) == player; r, c = r-dir[0], c-dir[1] {
			count++
		}
		if count > longest {
			longest = count
		}
	}
	return longest
}

// capturesAt counts the opponent pairs a stone for player at pos would
// capture: pattern opp, opp, mine outward in each direction.
func (h *MoveHeuristic) capturesAt(pos Position, player int) int {
	board := h.state.Board()
	opponent := -player
	pairs := 0
	for _, dir := range eightDirections {
		r1, c1 := pos.Row+dir[0], pos.Col+dir[1]
		r2, c2 := r1+dir[0], c1+dir[1]
		r3, c3 := r2+dir[0], c2+dir[1]
		if board.GetStone(r1, c1) == opponent &&
			board.GetStone(r2, c2) == opponent &&
			board.GetStone(r3, c3) == player {
			pairs++
		}
	}
	return pairs
}

// makesRun reports whether placing a stone for player at pos would form
// a run of at least length with both ends open. An edge of the board
// counts as closed.
func (h *MoveHeuristic) makesRun(pos Position, player, length int) bool {
	board := h.state.Board()
	for _, dir := range lineDirections {
		count := 1

		r, c := pos.Row+dir[0], pos.Col+dir[1]
		for board.GetStone(r, c) == player {
			count++
			r, c = r+dir[0], c+dir[1]
		}
		forwardOpen := board.InBounds(r, c) && board.IsEmpty(r, c)

		r, c = pos.Row-dir[0], pos.Col-dir[1]
		for board.GetStone(r, c) == player {
			count++
			r, c = r-dir[0], c-dir[1]
		}
		backwardOpen := board.InBounds(r, c) && board.IsEmpty(r, c)

		if count >= length && forwardOpen && backwardOpen {
			return true
		}
	}
	return false
}

// nearCluster reports whether any stone sits within maxDistance of pos.
func (h *MoveHeuristic) nearCluster(pos Position, maxDistance int) bool {
	board := h.state.Board()
	for r := pos.Row - maxDistance; r <= pos.Row+maxDistance; r++ {
		for c := pos.Col - maxDistance; c <= pos.Col+maxDistance; c++ {
			if board.GetStone(r, c) != 0 {
				return true
			}
		}
	}
	return false
}
