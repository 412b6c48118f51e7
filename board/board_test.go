package board

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/matryer/is"
	"lukechampine.com/frand"
)

func TestSeedInvariant(t *testing.T) {
	is := is.New(t)
	type tc struct {
		w, h int
	}
	for _, c := range []tc{{2, 2}, {4, 4}, {8, 8}, {6, 10}, {10, 6}, {16, 16}} {
		b, err := NewBoard(c.w, c.h)
		is.NoErr(err)
		is.Equal(b.Width(), c.w)
		is.Equal(b.Height(), c.h)
		is.Equal(b.CountDisks(Player0), 2)
		is.Equal(b.CountDisks(Player1), 2)
		is.Equal(b.Turn(), Player0)
		_, hasLast := b.LastMove()
		is.True(!hasLast)

		mx, my := c.w/2, c.h/2
		expected := map[Coord]Cell{
			{mx, my}:         Disk0,
			{mx - 1, my - 1}: Disk0,
			{mx - 1, my}:     Disk1,
			{mx, my - 1}:     Disk1,
		}
		for y := 0; y < c.h; y++ {
			for x := 0; x < c.w; x++ {
				cell, err := b.CellAt(Coord{x, y})
				is.NoErr(err)
				if v, ok := expected[Coord{x, y}]; ok {
					is.Equal(cell, v)
				} else {
					is.Equal(cell, Empty)
				}
			}
		}
	}
}

func TestInvalidDimensions(t *testing.T) {
	is := is.New(t)
	for _, d := range [][2]int{{0, 8}, {8, 0}, {1, 1}, {-2, 4}, {1, 8}} {
		b, err := NewBoard(d[0], d[1])
		is.True(errors.Is(err, ErrInvalidDimensions))
		is.True(b == nil)
	}
}

func TestOpeningMoves(t *testing.T) {
	is := is.New(t)
	b := MakeBoard(8, 8)
	moves := b.LegalMoves(Player0)
	is.Equal(moves, []Coord{{4, 2}, {5, 3}, {2, 4}, {3, 5}})

	strs := []string{}
	for _, m := range moves {
		strs = append(strs, m.String())
	}
	is.Equal(strs, []string{"e3", "f4", "c5", "d6"})

	// Player1's openings are the mirror image.
	is.Equal(b.LegalMoves(Player1), []Coord{{3, 2}, {2, 3}, {5, 4}, {4, 5}})
}

func TestCaptureLine(t *testing.T) {
	is := is.New(t)
	b := CaptureLine.Board(Player0)
	before := b.Copy()

	move := Coord{5, 3}
	caps := b.CapturesFor(move, Player0)
	is.Equal(caps, []Coord{{4, 3}, {3, 3}, {2, 3}, {1, 3}})
	is.Equal(b.LegalMoves(Player0), []Coord{move})

	is.True(b.ApplyMove(move))
	flipped := map[Coord]bool{move: true}
	for _, c := range caps {
		flipped[c] = true
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			c := Coord{x, y}
			after, _ := b.CellAt(c)
			if flipped[c] {
				is.Equal(after, Disk0)
				continue
			}
			orig, _ := before.CellAt(c)
			is.Equal(after, orig)
		}
	}
	is.Equal(b.CountDisks(Player0), 6)
	is.Equal(b.CountDisks(Player1), 0)
	is.Equal(b.Turn(), Player1)
	last, ok := b.LastMove()
	is.True(ok)
	is.Equal(last, move)
}

func TestCapturesAllDirections(t *testing.T) {
	is := is.New(t)
	b := StarCapture.Board(Player0)
	caps := b.CapturesFor(Coord{3, 3}, Player0)
	is.Equal(caps, []Coord{
		{2, 2}, {1, 1},
		{3, 2}, {3, 1},
		{4, 2}, {5, 1},
		{2, 3}, {1, 3},
		{4, 3}, {5, 3},
		{2, 4}, {1, 5},
		{3, 4}, {3, 5},
		{4, 4}, {5, 5},
	})
	// O can't capture anything from the same square.
	is.Equal(len(b.CapturesFor(Coord{3, 3}, Player1)), 0)
}

func TestCapturesIgnoreRaysEndingOffBoardOrEmpty(t *testing.T) {
	is := is.New(t)
	b, err := FromRows([]string{
		".OOX",
		"O...",
		"O...",
		"....",
	}, Player0)
	is.NoErr(err)
	// The rightward ray ends on X; the downward ray runs into an empty
	// square.
	is.Equal(b.CapturesFor(Coord{0, 0}, Player0), []Coord{{1, 0}, {2, 0}})
	// A ray running off the board captures nothing.
	b2, err := FromRows([]string{
		"..OO",
		"....",
	}, Player0)
	is.NoErr(err)
	is.Equal(len(b2.CapturesFor(Coord{1, 0}, Player0)), 0)
}

func randomBoard(w, h int) *Board {
	b := MakeBoard(w, h)
	for i := range b.cells {
		b.cells[i] = Cell(frand.Intn(3) - 1)
	}
	b.turn = Player(frand.Intn(2))
	return b
}

func TestLegalitySymmetry(t *testing.T) {
	is := is.New(t)
	for iter := 0; iter < 500; iter++ {
		b := randomBoard(2+frand.Intn(5), 2+frand.Intn(5))
		for _, p := range []Player{Player0, Player1} {
			legal := map[Coord]bool{}
			for _, m := range b.LegalMoves(p) {
				legal[m] = true
			}
			for y := 0; y < b.Height(); y++ {
				for x := 0; x < b.Width(); x++ {
					c := Coord{x, y}
					cell, _ := b.CellAt(c)
					want := cell == Empty && len(b.CapturesFor(c, p)) > 0
					is.Equal(legal[c], want)
					is.Equal(b.IsLegal(c, p), want)
				}
			}
		}
	}
}

func TestLegalMovesAreRowMajor(t *testing.T) {
	is := is.New(t)
	for iter := 0; iter < 100; iter++ {
		b := randomBoard(3+frand.Intn(6), 3+frand.Intn(6))
		moves := b.LegalMoves(b.Turn())
		for i := 1; i < len(moves); i++ {
			prev, cur := moves[i-1], moves[i]
			is.True(prev.Y < cur.Y || (prev.Y == cur.Y && prev.X < cur.X))
		}
	}
}

func TestFailedMoveIsNoop(t *testing.T) {
	is := is.New(t)
	b := MakeBoard(8, 8)
	is.True(b.ApplyMove(Coord{4, 2}))
	snapshot := b.Copy()
	lastBefore, _ := b.LastMove()

	for _, c := range []Coord{
		{3, 3},  // occupied
		{0, 0},  // empty, no captures
		{-1, 2}, // off the board
		{8, 8},  // off the board
	} {
		is.True(!b.ApplyMove(c))
		is.True(b.Equals(snapshot))
		is.Equal(b.Turn(), Player1)
		last, ok := b.LastMove()
		is.True(ok)
		is.Equal(last, lastBefore)
	}
}

func TestTurnAlternation(t *testing.T) {
	is := is.New(t)
	for game := 0; game < 20; game++ {
		b := MakeBoard(8, 8)
		for !b.IsFinished() {
			moves := b.LegalMoves(b.Turn())
			m := moves[frand.Intn(len(moves))]
			before := b.Turn()
			is.True(b.ApplyMove(m))
			is.Equal(b.Turn(), before.Opponent())
			last, ok := b.LastMove()
			is.True(ok)
			is.Equal(last, m)
			cell, _ := b.CellAt(m)
			is.Equal(cell, DiskOf(before))
		}
		is.Equal(len(b.LegalMoves(b.Turn())), 0)
	}
}

func TestTerminalEvaluation(t *testing.T) {
	is := is.New(t)

	tie := FullTie.Board(Player0)
	is.True(tie.IsFinished())
	is.True(math.IsInf(tie.Evaluate(Player0), -1))
	is.True(math.IsInf(tie.Evaluate(Player1), -1))

	// O has no move, even though X would. That still ends the game.
	stuck := OStuck.Board(Player1)
	is.True(stuck.IsFinished())
	is.Equal(stuck.LegalMoves(Player0), []Coord{{3, 2}})
	is.True(math.IsInf(stuck.Evaluate(Player0), 1))
	is.True(math.IsInf(stuck.Evaluate(Player1), -1))

	// Same disks, but X on turn: not finished, so a plain ratio.
	notStuck := OStuck.Board(Player0)
	is.True(!notStuck.IsFinished())
	is.Equal(notStuck.Evaluate(Player0), 14.0)
	is.Equal(notStuck.Evaluate(Player1), 1.0/14.0)
}

func TestEvaluateRatio(t *testing.T) {
	is := is.New(t)
	b := MakeBoard(8, 8)
	is.Equal(b.Evaluate(Player0), 1.0)
	is.True(b.ApplyMove(Coord{4, 2}))
	is.Equal(b.Evaluate(Player0), 4.0)
	is.Equal(b.Evaluate(Player1), 0.25)
}

func TestEvaluateWithoutOpponentDisks(t *testing.T) {
	is := is.New(t)
	b, err := FromRows([]string{
		"X...",
		"....",
		"..X.",
		"....",
	}, Player0)
	is.NoErr(err)
	is.True(math.IsInf(b.Evaluate(Player0), 1))
	is.True(math.IsInf(b.Evaluate(Player1), -1))
}

func TestCopyIndependence(t *testing.T) {
	is := is.New(t)
	orig := MakeBoard(8, 8)
	origRows := orig.Rows()

	cp := orig.Copy()
	is.True(cp.Equals(orig))
	is.True(cp.ApplyMove(Coord{4, 2}))
	is.True(cp.ApplyMove(Coord{3, 2}))

	is.Equal(orig.Rows(), origRows)
	is.Equal(orig.Turn(), Player0)
	_, ok := orig.LastMove()
	is.True(!ok)
	is.True(!cp.Equals(orig))

	// CopyFrom restores the copy.
	cp.CopyFrom(orig)
	is.True(cp.Equals(orig))
}

func TestCellAtOutOfBounds(t *testing.T) {
	is := is.New(t)
	b := MakeBoard(6, 4)
	for _, c := range []Coord{{-1, 0}, {0, -1}, {6, 0}, {0, 4}} {
		is.True(!b.InBounds(c))
		_, err := b.CellAt(c)
		is.True(errors.Is(err, ErrOutOfBounds))
		is.True(errors.Is(b.SetCell(c, Disk0), ErrOutOfBounds))
	}
	is.True(b.InBounds(Coord{5, 3}))
}

func TestCoordNotation(t *testing.T) {
	is := is.New(t)
	type tc struct {
		in  string
		out Coord
	}
	for _, c := range []tc{
		{"a1", Coord{0, 0}},
		{"D3", Coord{3, 2}},
		{"h8", Coord{7, 7}},
		{"z26", Coord{25, 25}},
		{"3,2", Coord{3, 2}},
		{"(30, 1)", Coord{30, 1}},
	} {
		got, err := ParseCoord(c.in)
		is.NoErr(err)
		is.Equal(got, c.out)
	}
	for _, bad := range []string{"", "1a", "a0", "aa", "3,", ",4", "#5"} {
		_, err := ParseCoord(bad)
		is.True(errors.Is(err, ErrBadCoordinate))
	}
	is.Equal(Coord{3, 2}.String(), "d3")
	is.Equal(Coord{30, 1}.String(), "(30,1)")
}

func TestFromRows(t *testing.T) {
	is := is.New(t)
	b, err := FromRows(CaptureLine, Player1)
	is.NoErr(err)
	is.Equal(b.Rows(), []string(CaptureLine))
	is.Equal(b.Turn(), Player1)

	_, err = FromRows([]string{"XO.", "XO"}, Player0)
	is.True(err != nil)
	_, err = FromRows([]string{"XQ", ".."}, Player0)
	is.True(err != nil)
	_, err = FromRows(nil, Player0)
	is.True(errors.Is(err, ErrInvalidDimensions))
}

func TestHash(t *testing.T) {
	is := is.New(t)
	b := MakeBoard(8, 8)
	cp := b.Copy()
	is.Equal(b.Hash(), cp.Hash())

	is.True(cp.ApplyMove(Coord{4, 2}))
	is.True(b.Hash() != cp.Hash())

	// Same cells, different side to move.
	other := b.Copy()
	other.SetTurn(Player1)
	is.True(b.Hash() != other.Hash())

	// Same cell count, different shape.
	is.True(MakeBoard(4, 8).Hash() != MakeBoard(8, 4).Hash())
}

func TestToDisplayText(t *testing.T) {
	is := is.New(t)
	ColorSupport = false
	b := MakeBoard(8, 8)
	txt := b.ToDisplayText(true)
	is.Equal(strings.Count(txt, "*"), 4)
	is.True(strings.Contains(txt, "X: 2  O: 2"))
	is.True(strings.Contains(txt, "X to move"))

	is.True(b.ApplyMove(Coord{4, 2}))
	txt = b.ToDisplayText(false)
	is.Equal(strings.Count(txt, "*"), 0)
	is.True(strings.Contains(txt, "[X]"))
	is.True(strings.Contains(txt, "O to move"))

	finished := FullTie.Board(Player0).ToDisplayText(true)
	is.True(strings.Contains(finished, "(finished)"))
}
