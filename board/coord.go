package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrBadCoordinate = errors.New("badly formatted coordinate")

// Coord is a zero-based board position. X is the column, Y is the row.
type Coord struct {
	X int
	Y int
}

// String returns algebraic notation: the column letter followed by the
// one-based row, e.g. Coord{3, 2} is "d3". Columns past 'z' fall back to
// "(x,y)".
func (c Coord) String() string {
	if c.X < 0 || c.X >= 26 || c.Y < 0 {
		return fmt.Sprintf("(%d,%d)", c.X, c.Y)
	}
	return fmt.Sprintf("%c%d", 'a'+c.X, c.Y+1)
}

// Offset returns the coordinate one step away in direction (dx, dy).
func (c Coord) Offset(dx, dy int) Coord {
	return Coord{c.X + dx, c.Y + dy}
}

// ParseCoord accepts algebraic notation ("d3", "D3") or a zero-based
// "x,y" pair ("3,2"). It does not check bounds.
func ParseCoord(s string) (Coord, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	if s == "" {
		return Coord{}, ErrBadCoordinate
	}
	if x, y, found := strings.Cut(s, ","); found {
		xi, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return Coord{}, fmt.Errorf("%w: %q", ErrBadCoordinate, s)
		}
		yi, err := strconv.Atoi(strings.TrimSpace(y))
		if err != nil {
			return Coord{}, fmt.Errorf("%w: %q", ErrBadCoordinate, s)
		}
		return Coord{xi, yi}, nil
	}
	col := strings.ToLower(s[:1])[0]
	if col < 'a' || col > 'z' {
		return Coord{}, fmt.Errorf("%w: %q", ErrBadCoordinate, s)
	}
	row, err := strconv.Atoi(s[1:])
	if err != nil || row < 1 {
		return Coord{}, fmt.Errorf("%w: %q", ErrBadCoordinate, s)
	}
	return Coord{int(col - 'a'), row - 1}, nil
}
