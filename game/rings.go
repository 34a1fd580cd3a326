package game

import "sync"

// DistanceRings precomputes, for every cell of a board, the cells at
// each exact Chebyshev distance. Construction is O(n^2) over cells, so
// instances are cached process-wide by board size; queries after that
// are O(1) slice lookups. A DistanceRings is immutable once built.
type DistanceRings struct {
	boardSize   int
	maxDistance int
	// rings[cell][distance-1] lists the positions at exactly that
	// distance from cell, cell encoded as row*boardSize+col.
	rings [][][]Position
}

var (
	ringsMu    sync.Mutex
	ringsCache = map[int]*DistanceRings{}
)

// RingsFor returns the shared DistanceRings for the given board size,
// building it on first use.
func RingsFor(boardSize int) *DistanceRings {
	ringsMu.Lock()
	defer ringsMu.Unlock()
	if r, ok := ringsCache[boardSize]; ok {
		return r
	}
	r := newDistanceRings(boardSize)
	ringsCache[boardSize] = r
	return r
}

func newDistanceRings(boardSize int) *DistanceRings {
	r := &DistanceRings{
		boardSize:   boardSize,
		maxDistance: boardSize - 1,
		rings:       make([][][]Position, boardSize*boardSize),
	}
	for row := 0; row < boardSize; row++ {
		for col := 0; col < boardSize; col++ {
			cell := row*boardSize + col
			buckets := make([][]Position, r.maxDistance)
			for or := 0; or < boardSize; or++ {
				for oc := 0; oc < boardSize; oc++ {
					if or == row && oc == col {
						continue
					}
					d := chebyshev(row, col, or, oc)
					buckets[d-1] = append(buckets[d-1], Position{or, oc})
				}
			}
			r.rings[cell] = buckets
		}
	}
	return r
}

// BoardSize returns the board size the rings were built for.
func (r *DistanceRings) BoardSize() int { return r.boardSize }

// MaxDistance returns the largest representable distance, boardSize-1.
func (r *DistanceRings) MaxDistance() int { return r.maxDistance }

// PositionsAtDistance returns the cells at exactly the given Chebyshev
// distance from (row, col). Invalid centers or distances outside
// [1, boardSize-1] yield an empty result rather than an error: the
// generator probes distances blindly.
func (r *DistanceRings) PositionsAtDistance(row, col, distance int) []Position {
	if row < 0 || row >= r.boardSize || col < 0 || col >= r.boardSize {
		return nil
	}
	if distance < 1 || distance > r.maxDistance {
		return nil
	}
	return r.rings[row*r.boardSize+col][distance-1]
}

// OrderedPositionsAroundStones unions the rings of every stone, distance
// by distance, and returns the result in strictly nondecreasing distance
// order. Each position appears once, at its minimum distance to any
// stone, and the stone cells themselves are skipped.
func (r *DistanceRings) OrderedPositionsAroundStones(stones []Position, maxDistance int) []Position {
	if len(stones) == 0 {
		return nil
	}
	if maxDistance > r.maxDistance {
		maxDistance = r.maxDistance
	}

	seen := make(map[Position]struct{}, len(stones)*8)
	for _, s := range stones {
		seen[s] = struct{}{}
	}

	var ordered []Position
	for distance := 1; distance <= maxDistance; distance++ {
		for _, s := range stones {
			if s.Row < 0 || s.Row >= r.boardSize || s.Col < 0 || s.Col >= r.boardSize {
				continue
			}
			for _, pos := range r.rings[s.Row*r.boardSize+s.Col][distance-1] {
				if _, ok := seen[pos]; ok {
					continue
				}
				seen[pos] = struct{}{}
				ordered = append(ordered, pos)
			}
		}
	}
	return ordered
}
