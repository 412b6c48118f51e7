package board

// This file contains some sample positions, used mostly for testing.

// SampleRows is a named text position; see FromRows.
type SampleRows []string

var (
	// CaptureLine has a row of four O disks flanked on the left by an X
	// disk. X playing at f4 captures the whole row and nothing else.
	CaptureLine = SampleRows{
		"........",
		"........",
		"........",
		"XOOOO...",
		"........",
		"........",
		"........",
		"........",
	}

	// StarCapture lets X capture in all eight directions at once by
	// playing d4.
	StarCapture = SampleRows{
		"X..X..X.",
		".O.O.O..",
		"..OOO...",
		"XOO.OOX.",
		"..OOO...",
		".O.O.O..",
		"X..X..X.",
		"........",
	}

	// FullTie is a full 4x4 board with eight disks each.
	FullTie = SampleRows{
		"XXOO",
		"XXOO",
		"OOXX",
		"OOXX",
	}

	// OStuck has O to move with no legal move while X would still have
	// one at d3.
	OStuck = SampleRows{
		"XXXX",
		"XXXX",
		"XXO.",
		"XXXX",
	}

	// TwoWinningMoves is a 4x4 position where X to move has two legal
	// moves, a1 and d1. Either one leaves O without a reply and X ahead.
	TwoWinningMoves = SampleRows{
		".OX.",
		"XOOX",
		"XOOX",
		"XOOX",
	}

	// FirstMoveLoses gives X two moves. c1 comes first in scan order but
	// ends the game in a 4-4 tie; f4 ends it 7-1.
	FirstMoveLoses = SampleRows{
		"XO......",
		"........",
		"........",
		"XOOOO...",
		"........",
		"........",
		"........",
		"........",
	}
)

// Board builds the sample position with the given player to move. It
// panics on malformed samples.
func (s SampleRows) Board(turn Player) *Board {
	b, err := FromRows(s, turn)
	if err != nil {
		panic(err)
	}
	return b
}
