// Package board implements the rules of Reversi on a board of arbitrary
// dimensions: the seed position, capture computation, legal move
// generation, move application and the material evaluation used by
// search.
package board

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/cespare/xxhash"
)

var (
	ErrOutOfBounds        = errors.New("coordinate is out of bounds")
	ErrInvalidDimensions  = errors.New("board dimensions must be at least 2x2")
	errInconsistentRowLen = errors.New("all rows must have the same length")
)

// Board is a Reversi position. A Board exclusively owns its cells;
// search branches work on copies made with Copy.
type Board struct {
	width  int
	height int
	// cells are stored row-major: index y*width + x.
	cells []Cell
	turn  Player

	lastMove    Coord
	hasLastMove bool
}

// NewBoard returns a board of the given dimensions with the four center
// cells seeded in the cross pattern and Player0 to move.
func NewBoard(width, height int) (*Board, error) {
	if width < 2 || height < 2 {
		return nil, ErrInvalidDimensions
	}
	b := &Board{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
	b.Clear()
	mx, my := width/2, height/2
	b.set(Coord{mx, my}, Disk0)
	b.set(Coord{mx - 1, my - 1}, Disk0)
	b.set(Coord{mx - 1, my}, Disk1)
	b.set(Coord{mx, my - 1}, Disk1)
	return b, nil
}

// MakeBoard is like NewBoard but panics on invalid dimensions.
func MakeBoard(width, height int) *Board {
	b, err := NewBoard(width, height)
	if err != nil {
		panic(err)
	}
	return b
}

// Clear empties every cell and resets the turn and last move.
func (b *Board) Clear() {
	for i := range b.cells {
		b.cells[i] = Empty
	}
	b.turn = Player0
	b.lastMove = Coord{}
	b.hasLastMove = false
}

// Copy returns a deep copy of the board. The copy shares no memory with
// the original.
func (b *Board) Copy() *Board {
	n := &Board{
		width:       b.width,
		height:      b.height,
		cells:       make([]Cell, len(b.cells)),
		turn:        b.turn,
		lastMove:    b.lastMove,
		hasLastMove: b.hasLastMove,
	}
	copy(n.cells, b.cells)
	return n
}

// CopyFrom copies the other board's state into this one. Both boards
// must have the same dimensions.
func (b *Board) CopyFrom(other *Board) {
	if b.width != other.width || b.height != other.height {
		panic("CopyFrom: mismatched board dimensions")
	}
	copy(b.cells, other.cells)
	b.turn = other.turn
	b.lastMove = other.lastMove
	b.hasLastMove = other.hasLastMove
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }

// Turn is the player to move.
func (b *Board) Turn() Player { return b.turn }

// SetTurn sets the player to move. It is meant for setting up positions;
// during play the turn only changes through ApplyMove.
func (b *Board) SetTurn(p Player) { b.turn = p }

// LastMove returns the most recently applied move. ok is false if no move
// has been applied since the board was seeded.
func (b *Board) LastMove() (c Coord, ok bool) {
	return b.lastMove, b.hasLastMove
}

func (b *Board) InBounds(c Coord) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < b.width && c.Y < b.height
}

// CellAt returns the occupant of c, or ErrOutOfBounds.
func (b *Board) CellAt(c Coord) (Cell, error) {
	if !b.InBounds(c) {
		return Empty, ErrOutOfBounds
	}
	return b.get(c), nil
}

// SetCell places a cell value directly, without any capture logic. It is
// meant for setting up positions.
func (b *Board) SetCell(c Coord, v Cell) error {
	if !b.InBounds(c) {
		return ErrOutOfBounds
	}
	b.set(c, v)
	return nil
}

func (b *Board) get(c Coord) Cell {
	return b.cells[c.Y*b.width+c.X]
}

func (b *Board) set(c Coord, v Cell) {
	b.cells[c.Y*b.width+c.X] = v
}

// CountDisks returns the number of cells occupied by p.
func (b *Board) CountDisks(p Player) int {
	d := DiskOf(p)
	count := 0
	for _, c := range b.cells {
		if c == d {
			count++
		}
	}
	return count
}

// CapturesFor returns the opponent disks that would flip to p if p put a
// disk on c. Directions are scanned with dy outer and dx inner, both from
// -1 to 1, so the result order is deterministic. The occupancy of c itself
// is not considered.
func (b *Board) CapturesFor(c Coord, p Player) []Coord {
	var results []Coord
	own, opp := DiskOf(p), DiskOf(p.Opponent())
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			var ray []Coord
			pos := c.Offset(dx, dy)
			for b.InBounds(pos) && b.get(pos) == opp {
				ray = append(ray, pos)
				pos = pos.Offset(dx, dy)
			}
			if b.InBounds(pos) && b.get(pos) == own {
				results = append(results, ray...)
			}
		}
	}
	return results
}

// IsLegal reports whether p may play at c: the cell must be in bounds and
// empty, and the move must capture at least one disk.
func (b *Board) IsLegal(c Coord, p Player) bool {
	if !b.InBounds(c) || b.get(c) != Empty {
		return false
	}
	return len(b.CapturesFor(c, p)) > 0
}

// LegalMoves returns every legal move for p, scanning rows top to bottom
// and each row left to right.
func (b *Board) LegalMoves(p Player) []Coord {
	var moves []Coord
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := Coord{x, y}
			if b.get(c) == Empty && len(b.CapturesFor(c, p)) > 0 {
				moves = append(moves, c)
			}
		}
	}
	return moves
}

// ApplyMove plays c for the player on turn. It returns false and leaves
// the board untouched if the move is illegal. There is no pass: the turn
// always goes to the opponent after a successful move.
func (b *Board) ApplyMove(c Coord) bool {
	if !b.InBounds(c) || b.get(c) != Empty {
		return false
	}
	captures := b.CapturesFor(c, b.turn)
	if len(captures) == 0 {
		return false
	}
	d := DiskOf(b.turn)
	b.set(c, d)
	for _, p := range captures {
		b.set(p, d)
	}
	b.lastMove = c
	b.hasLastMove = true
	b.turn = b.turn.Opponent()
	return true
}

// IsFinished reports whether the player on turn has no legal move. The
// opponent's mobility is not considered.
func (b *Board) IsFinished() bool {
	return len(b.LegalMoves(b.turn)) == 0
}

// Evaluate scores the board from p's point of view. Finished boards score
// +Inf if p has strictly more disks than the opponent and -Inf otherwise,
// ties included. Other boards score the ratio of p's disks to the
// opponent's, or +Inf if the opponent has none.
func (b *Board) Evaluate(p Player) float64 {
	ours, theirs := b.CountDisks(p), b.CountDisks(p.Opponent())
	if b.IsFinished() {
		if ours > theirs {
			return math.Inf(1)
		}
		return math.Inf(-1)
	}
	if theirs == 0 {
		return math.Inf(1)
	}
	return float64(ours) / float64(theirs)
}

// Hash returns a 64-bit fingerprint of the dimensions, cells and turn.
// The last move is not part of the hash.
func (b *Board) Hash() uint64 {
	buf := make([]byte, 0, 17+len(b.cells))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(b.width))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(b.height))
	buf = append(buf, byte(b.turn))
	for _, c := range b.cells {
		buf = append(buf, byte(c))
	}
	return xxhash.Sum64(buf)
}

// Equals reports whether two boards have the same dimensions, cells and
// turn.
func (b *Board) Equals(other *Board) bool {
	if b.width != other.width || b.height != other.height || b.turn != other.turn {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}
