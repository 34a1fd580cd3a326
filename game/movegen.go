package game

// wideningBuckets maps a node's visit count to how far from the existing
// stones the generator looks and how many candidates it keeps. Few
// visits mean a tight, shallow candidate set; as a node proves
// important the set widens.
var wideningBuckets = []struct {
	visits      int
	maxDistance int
	targetCount int
}{
	{10, 1, 15},
	{100, 2, 30},
	{1000, 3, 50},
}

// Widest bucket, used once a node clears every threshold.
const (
	fullWideningDistance = 5
	fullWideningCount    = 80
)

// NextWideningThreshold returns the visit count at which a node with the
// given visits moves into the next widening bucket. Past the last bucket
// the candidate set is final and the threshold is never reached.
func NextWideningThreshold(visits int) int {
	for _, bucket := range wideningBuckets {
		if visits < bucket.visits {
			return bucket.visits
		}
	}
	return int(^uint(0) >> 1)
}

// MoveGenerator produces legal moves ordered by Chebyshev distance to
// the stones already on the board, closest first. Safe for concurrent
// use: it holds only the shared immutable rings.
type MoveGenerator struct {
	boardSize int
	rings     *DistanceRings
}

// NewMoveGenerator creates a generator for the given board size, reusing
// the process-wide distance rings.
func NewMoveGenerator(boardSize int) *MoveGenerator {
	return &MoveGenerator{
		boardSize: boardSize,
		rings:     RingsFor(boardSize),
	}
}

// OrderedMoves returns the legal moves within maxDistance of any stone,
// ordered by distance to the nearest stone. On an empty board there is
// no distance to order by, so the state's legal moves are returned
// unfiltered; that also routes the tournament-rule restriction through
// one place.
func (g *MoveGenerator) OrderedMoves(state *GameState, maxDistance int) []Position {
	stones := state.StonePositions()
	if len(stones) == 0 {
		return state.LegalMoves()
	}

	candidates := g.rings.OrderedPositionsAroundStones(stones, maxDistance)

	legal := make(map[Position]struct{})
	for _, mv := range state.LegalMoves() {
		legal[mv] = struct{}{}
	}

	moves := make([]Position, 0, len(candidates))
	for _, pos := range candidates {
		if _, ok := legal[pos]; ok {
			moves = append(moves, pos)
		}
	}
	return moves
}

// ProgressiveWideningMoves returns the candidate set for a tree node
// with the given visit count, truncated to the bucket's target size so
// the closest candidates survive.
func (g *MoveGenerator) ProgressiveWideningMoves(state *GameState, visits int) []Position {
	maxDistance, targetCount := fullWideningDistance, fullWideningCount
	for _, bucket := range wideningBuckets {
		if visits < bucket.visits {
			maxDistance, targetCount = bucket.maxDistance, bucket.targetCount
			break
		}
	}

	moves := g.OrderedMoves(state, maxDistance)
	if len(moves) > targetCount {
		moves = moves[:targetCount]
	}
	return moves
}
