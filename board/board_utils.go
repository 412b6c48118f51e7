package board

import (
	"fmt"
	"strings"
)

// ToDisplayText renders the board as text with column letters and row
// numbers. When showMoves is set, legal moves for the player on turn are
// marked with '*'. The last move is bracketed.
func (b *Board) ToDisplayText(showMoves bool) string {
	var str strings.Builder
	var legal map[Coord]bool
	if showMoves {
		legal = map[Coord]bool{}
		for _, m := range b.LegalMoves(b.turn) {
			legal[m] = true
		}
	}
	last, hasLast := b.LastMove()

	row := "    "
	for i := 0; i < b.width; i++ {
		if i < 26 {
			row = row + fmt.Sprintf("%c", 'a'+i) + " "
		} else {
			row = row + "? "
		}
	}
	str.WriteString(row + "\n")
	str.WriteString("   " + strings.Repeat("-", b.width*2+1) + "\n")
	for y := 0; y < b.height; y++ {
		str.WriteString(fmt.Sprintf("%2d|", y+1))
		for x := 0; x < b.width; x++ {
			c := Coord{x, y}
			sep := " "
			if hasLast && c == last {
				sep = "["
			} else if hasLast && c == last.Offset(1, 0) {
				sep = "]"
			}
			str.WriteString(sep)
			if showMoves && legal[c] {
				str.WriteString("*")
			} else {
				str.WriteString(b.get(c).DisplayString())
			}
		}
		if hasLast && last.X == b.width-1 && last.Y == y {
			str.WriteString("]")
		} else {
			str.WriteString(" ")
		}
		str.WriteString("|\n")
	}
	str.WriteString("   " + strings.Repeat("-", b.width*2+1) + "\n")
	str.WriteString(fmt.Sprintf("X: %d  O: %d  ", b.CountDisks(Player0), b.CountDisks(Player1)))
	if b.IsFinished() {
		str.WriteString("(finished)\n")
	} else {
		str.WriteString(fmt.Sprintf("%v to move\n", b.turn))
	}
	return "\n" + str.String()
}

// FromRows builds a board from text rows, one string per row. 'X' (or
// '0') is a Player0 disk, 'O' (or '1') a Player1 disk; '.', '-', '_' and
// ' ' are empty. Rows must all have the same length.
func FromRows(rows []string, turn Player) (*Board, error) {
	if len(rows) == 0 {
		return nil, ErrInvalidDimensions
	}
	b, err := NewBoard(len(rows[0]), len(rows))
	if err != nil {
		return nil, err
	}
	b.Clear()
	for y, r := range rows {
		if err := b.SetRow(y, r); err != nil {
			return nil, err
		}
	}
	b.turn = turn
	return b, nil
}

// SetRow sets row y from its text representation (see FromRows).
func (b *Board) SetRow(y int, row string) error {
	if len(row) != b.width {
		return errInconsistentRowLen
	}
	if y < 0 || y >= b.height {
		return ErrOutOfBounds
	}
	for x, ch := range row {
		var v Cell
		switch ch {
		case 'X', 'x', '0':
			v = Disk0
		case 'O', 'o', '1':
			v = Disk1
		case '.', '-', '_', ' ':
			v = Empty
		default:
			return fmt.Errorf("unrecognized cell %q in row %d", ch, y+1)
		}
		b.set(Coord{x, y}, v)
	}
	return nil
}

// Rows is the inverse of FromRows, using 'X', 'O' and '.'.
func (b *Board) Rows() []string {
	rows := make([]string, b.height)
	for y := 0; y < b.height; y++ {
		var sb strings.Builder
		for x := 0; x < b.width; x++ {
			sb.WriteString(b.get(Coord{x, y}).String())
		}
		rows[y] = sb.String()
	}
	return rows
}
