package game

import (
	"math/bits"
	"strings"

	"github.com/pkg/errors"
)

// Position is a (row, col) coordinate on the board.
type Position struct {
	Row, Col int
}

// Stone is an occupied position together with its owner (1 or -1).
type Stone struct {
	Position
	Player int
}

// BitBoard packs one bit per cell for each of the two players into
// uint64 words. Cell (row, col) maps to bit index row*size+col. A cell's
// bit is set in at most one of the two word vectors at a time: SetStone
// clears both vectors before setting either.
//
// A BitBoard is owned by exactly one GameState and is never copied during
// search; the search explores by mutation and undo. Copy exists for test
// fixtures and root-parallel workers only.
type BitBoard struct {
	size  int
	cells int
	p1    []uint64 // player 1 stones
	p2    []uint64 // player -1 stones
}

// NewBitBoard creates an empty board of size x size cells.
func NewBitBoard(size int) *BitBoard {
	cells := size * size
	words := (cells + 63) / 64
	return &BitBoard{
		size:  size,
		cells: cells,
		p1:    make([]uint64, words),
		p2:    make([]uint64, words),
	}
}

// Size returns the board's side length.
func (b *BitBoard) Size() int { return b.size }

// InBounds reports whether (row, col) is on the board.
func (b *BitBoard) InBounds(row, col int) bool {
	return row >= 0 && row < b.size && col >= 0 && col < b.size
}

func (b *BitBoard) index(row, col int) (word int, mask uint64) {
	bit := row*b.size + col
	return bit / 64, 1 << uint(bit%64)
}

// SetStone places a stone for player (1 or -1) at (row, col). The cell is
// cleared for both players first, so setting an occupied cell replaces
// the stone rather than corrupting the mutual-exclusion invariant.
func (b *BitBoard) SetStone(row, col, player int) error {
	if !b.InBounds(row, col) {
		return errors.Wrapf(ErrOutOfRange, "set stone at (%d,%d)", row, col)
	}
	if player != 1 && player != -1 {
		return errors.Errorf("invalid player %d: must be 1 or -1", player)
	}
	word, mask := b.index(row, col)
	b.p1[word] &^= mask
	b.p2[word] &^= mask
	if player == 1 {
		b.p1[word] |= mask
	} else {
		b.p2[word] |= mask
	}
	return nil
}

// RemoveStone clears (row, col) for both players.
func (b *BitBoard) RemoveStone(row, col int) error {
	if !b.InBounds(row, col) {
		return errors.Wrapf(ErrOutOfRange, "remove stone at (%d,%d)", row, col)
	}
	word, mask := b.index(row, col)
	b.p1[word] &^= mask
	b.p2[word] &^= mask
	return nil
}

// GetStone returns the owner of (row, col): 1, -1, or 0 when empty.
// Out-of-range cells read as empty; callers that generate coordinates
// bounds-check before writing.
func (b *BitBoard) GetStone(row, col int) int {
	if !b.InBounds(row, col) {
		return 0
	}
	word, mask := b.index(row, col)
	if b.p1[word]&mask != 0 {
		return 1
	}
	if b.p2[word]&mask != 0 {
		return -1
	}
	return 0
}

// IsEmpty reports whether (row, col) holds no stone.
func (b *BitBoard) IsEmpty(row, col int) bool {
	return b.GetStone(row, col) == 0
}

// AllStones scans the full board and returns every stone in row-major
// order.
func (b *BitBoard) AllStones() []Stone {
	stones := make([]Stone, 0, 32)
	for w := range b.p1 {
		occupied := b.p1[w] | b.p2[w]
		for occupied != 0 {
			offset := bits.TrailingZeros64(occupied)
			occupied &= occupied - 1
			bit := w*64 + offset
			if bit >= b.cells {
				break
			}
			player := 1
			if b.p2[w]&(1<<uint(offset)) != 0 {
				player = -1
			}
			stones = append(stones, Stone{
				Position: Position{Row: bit / b.size, Col: bit % b.size},
				Player:   player,
			})
		}
	}
	return stones
}

// StonePositions returns every position occupied by the given player in
// row-major order.
func (b *BitBoard) StonePositions(player int) []Position {
	words := b.p1
	if player == -1 {
		words = b.p2
	}
	positions := make([]Position, 0, 16)
	for w, chunk := range words {
		for chunk != 0 {
			offset := bits.TrailingZeros64(chunk)
			chunk &= chunk - 1
			bit := w*64 + offset
			if bit >= b.cells {
				break
			}
			positions = append(positions, Position{Row: bit / b.size, Col: bit % b.size})
		}
	}
	return positions
}

// Clear removes every stone.
func (b *BitBoard) Clear() {
	for i := range b.p1 {
		b.p1[i] = 0
		b.p2[i] = 0
	}
}

// Copy returns an independent deep copy. Not used on the search hot
// path.
func (b *BitBoard) Copy() *BitBoard {
	nb := NewBitBoard(b.size)
	copy(nb.p1, b.p1)
	copy(nb.p2, b.p2)
	return nb
}

// Equal reports whether both boards hold identical stones.
func (b *BitBoard) Equal(other *BitBoard) bool {
	if other == nil || b.size != other.size {
		return false
	}
	for i := range b.p1 {
		if b.p1[i] != other.p1[i] || b.p2[i] != other.p2[i] {
			return false
		}
	}
	return true
}

func (b *BitBoard) String() string {
	var sb strings.Builder
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			switch b.GetStone(row, col) {
			case 1:
				sb.WriteByte('X')
			case -1:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
