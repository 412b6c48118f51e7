package board

import (
	"fmt"
	"os"
)

var (
	ColorSupport = os.Getenv("REVERSI_DISABLE_COLOR") != "on"
)

// A Player is one of the two sides. Player0 always moves first from the
// seed position.
type Player int

const (
	Player0 Player = 0
	Player1 Player = 1
)

// Opponent returns the other side.
func (p Player) Opponent() Player {
	return 1 - p
}

func (p Player) String() string {
	switch p {
	case Player0:
		return "X"
	case Player1:
		return "O"
	}
	return fmt.Sprintf("player(%d)", int(p))
}

// A Cell is the occupant of a single board square: either Empty or the
// disk of one of the players.
type Cell int8

const (
	Empty Cell = -1
	Disk0 Cell = Cell(Player0)
	Disk1 Cell = Cell(Player1)
)

// DiskOf returns the cell value for a disk owned by p.
func DiskOf(p Player) Cell {
	return Cell(p)
}

// Owner returns the player owning the disk in this cell. ok is false
// for an empty cell.
func (c Cell) Owner() (p Player, ok bool) {
	if c == Empty {
		return 0, false
	}
	return Player(c), true
}

// DisplayString is the one-character representation used by
// ToDisplayText. Disks are colored when the terminal supports it.
func (c Cell) DisplayString() string {
	switch c {
	case Disk0:
		if ColorSupport {
			return "\x1b[1;34mX\x1b[0m"
		}
		return "X"
	case Disk1:
		if ColorSupport {
			return "\x1b[1;31mO\x1b[0m"
		}
		return "O"
	}
	return "."
}

func (c Cell) String() string {
	switch c {
	case Empty:
		return "."
	case Disk0:
		return "X"
	case Disk1:
		return "O"
	}
	return fmt.Sprintf("cell(%d)", int8(c))
}
