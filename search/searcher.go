// Package search picks a move for the side to move with a fixed-depth,
// exhaustive walk of the game tree, scoring frontier boards with
// board.Evaluate.
package search

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/reversi/board"
)

// DefaultDepth is the number of plies searched below each root move.
const DefaultDepth = 4

var (
	ErrNoLegalMoves = errors.New("no legal moves for the side to move")
	ErrInvalidDepth = errors.New("search depth must not be negative")
)

// Variant selects how each level of the tree picks its child.
type Variant int

const (
	// Greedy lets every level maximize the evaluation for whoever is on
	// turn at that level. The sign never flips between plies, so this is
	// not an adversarial minimax: each side plays greedily for itself, and
	// the root re-scores the resulting frontier from the root mover's view.
	Greedy Variant = iota
	// Adversarial is a true minimax from the root mover's point of view:
	// levels where the root mover is on turn maximize its evaluation,
	// levels where the opponent is on turn minimize it.
	Adversarial
)

func (v Variant) String() string {
	switch v {
	case Greedy:
		return "greedy"
	case Adversarial:
		return "adversarial"
	}
	return fmt.Sprintf("variant(%d)", int(v))
}

// ParseVariant is the inverse of Variant.String.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "greedy", "":
		return Greedy, nil
	case "adversarial", "minimax":
		return Adversarial, nil
	}
	return Greedy, fmt.Errorf("unknown search variant %q", s)
}

// RootResult is the outcome of searching below a single root move.
type RootResult struct {
	Move board.Coord
	// Frontier is the board the search settled on below Move.
	Frontier *board.Board
	// Score is Frontier evaluated for the root mover.
	Score float64
}

// Analysis holds the per-move results of a search, in the same order as
// the root's legal moves.
type Analysis struct {
	Mover   board.Player
	Results []RootResult
	// Best indexes the first result with the strictly greatest score.
	Best    int
	Nodes   uint64
	Elapsed time.Duration
}

// BestMove returns the chosen root move.
func (a *Analysis) BestMove() board.Coord {
	return a.Results[a.Best].Move
}

func (a *Analysis) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-6s %-10s %s\n", "Move", "Score", "Frontier")
	for i, r := range a.Results {
		marker := " "
		if i == a.Best {
			marker = "*"
		}
		frontier := "-"
		if last, ok := r.Frontier.LastMove(); ok {
			frontier = fmt.Sprintf("%s (X %d, O %d)", last,
				r.Frontier.CountDisks(board.Player0), r.Frontier.CountDisks(board.Player1))
		}
		fmt.Fprintf(&sb, "%s%-5s %-10s %s\n", marker, r.Move, FormatScore(r.Score), frontier)
	}
	return sb.String()
}

// FormatScore prints infinite scores as +inf and -inf.
func FormatScore(s float64) string {
	switch {
	case math.IsInf(s, 1):
		return "+inf"
	case math.IsInf(s, -1):
		return "-inf"
	}
	return fmt.Sprintf("%.4f", s)
}

// Searcher walks the game tree to a fixed depth. A Searcher may be used
// for many searches but not for concurrent ones.
type Searcher struct {
	depth   int
	variant Variant
	threads int

	nodes atomic.Uint64
}

// NewSearcher returns a single-threaded Greedy searcher at DefaultDepth.
func NewSearcher() *Searcher {
	return &Searcher{depth: DefaultDepth, variant: Greedy, threads: 1}
}

func (s *Searcher) SetDepth(depth int) error {
	if depth < 0 {
		return ErrInvalidDepth
	}
	s.depth = depth
	return nil
}

func (s *Searcher) Depth() int { return s.depth }

func (s *Searcher) SetVariant(v Variant) { s.variant = v }

func (s *Searcher) Variant() Variant { return s.variant }

// SetThreads sets how many root moves are searched concurrently. The
// chosen move does not depend on the thread count.
func (s *Searcher) SetThreads(threads int) {
	if threads < 1 {
		threads = 1
	}
	s.threads = threads
}

func (s *Searcher) Threads() int { return s.threads }

// Nodes returns the number of boards visited by the most recent Analyze,
// BestMove or MiniMax call.
func (s *Searcher) Nodes() uint64 { return s.nodes.Load() }

// BestMove returns the legal move for b's side to move whose frontier
// board scores strictly highest for that side. On ties the earliest move
// in scan order wins. b is not modified.
func (s *Searcher) BestMove(b *board.Board) (board.Coord, error) {
	a, err := s.Analyze(b)
	if err != nil {
		return board.Coord{}, err
	}
	return a.BestMove(), nil
}

// Analyze searches below every legal root move and returns all of the
// results. It returns ErrNoLegalMoves if the side to move has no move.
func (s *Searcher) Analyze(b *board.Board) (*Analysis, error) {
	mover := b.Turn()
	children := successors(b)
	if len(children) == 0 {
		return nil, ErrNoLegalMoves
	}
	s.nodes.Store(uint64(1 + len(children)))
	start := time.Now()

	results := make([]RootResult, len(children))
	evalRoot := func(i int) {
		next := children[i]
		move, _ := next.LastMove()
		frontier := s.frontier(next, s.depth, mover)
		results[i] = RootResult{
			Move:     move,
			Frontier: frontier,
			Score:    frontier.Evaluate(mover),
		}
		log.Debug().
			Str("move", move.String()).
			Float64("score", results[i].Score).
			Msg("root-move-evaluated")
	}

	if s.threads > 1 && len(children) > 1 {
		g := errgroup.Group{}
		g.SetLimit(s.threads)
		for i := range children {
			i := i
			g.Go(func() error {
				evalRoot(i)
				return nil
			})
		}
		// The workers never fail.
		_ = g.Wait()
	} else {
		for i := range children {
			evalRoot(i)
		}
	}

	// Reduce in root order so ties go to the first move regardless of
	// which goroutine finished first.
	best := 0
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[best].Score {
			best = i
		}
	}
	a := &Analysis{
		Mover:   mover,
		Results: results,
		Best:    best,
		Nodes:   s.nodes.Load(),
		Elapsed: time.Since(start),
	}
	log.Debug().
		Str("best", a.BestMove().String()).
		Uint64("nodes", a.Nodes).
		Dur("elapsed", a.Elapsed).
		Str("variant", s.variant.String()).
		Int("depth", s.depth).
		Msg("search-complete")
	return a, nil
}

// MiniMax returns the frontier board reached from b after depth plies.
// With the Greedy variant each level keeps the child whose frontier scores
// strictly highest for the player on turn at that level; the Adversarial
// variant scores every level from b's side to move. b itself is returned
// when depth is 0 or when the side to move has no legal move.
func (s *Searcher) MiniMax(b *board.Board, depth int) *board.Board {
	s.nodes.Store(1)
	return s.frontier(b, depth, b.Turn())
}

func (s *Searcher) frontier(b *board.Board, depth int, perspective board.Player) *board.Board {
	if s.variant == Adversarial {
		return s.adversarial(b, depth, perspective)
	}
	return s.greedy(b, depth)
}

func (s *Searcher) greedy(b *board.Board, depth int) *board.Board {
	if depth == 0 {
		return b
	}
	children := successors(b)
	if len(children) == 0 {
		return b
	}
	s.nodes.Add(uint64(len(children)))

	var best *board.Board
	bestScore := math.Inf(-1)
	for _, next := range children {
		f := s.greedy(next, depth-1)
		score := f.Evaluate(b.Turn())
		if best == nil || score > bestScore {
			best = f
			bestScore = score
		}
	}
	return best
}

func (s *Searcher) adversarial(b *board.Board, depth int, perspective board.Player) *board.Board {
	if depth == 0 {
		return b
	}
	children := successors(b)
	if len(children) == 0 {
		return b
	}
	s.nodes.Add(uint64(len(children)))

	maximize := b.Turn() == perspective
	var best *board.Board
	var bestScore float64
	for _, next := range children {
		f := s.adversarial(next, depth-1, perspective)
		score := f.Evaluate(perspective)
		if best == nil || (maximize && score > bestScore) || (!maximize && score < bestScore) {
			best = f
			bestScore = score
		}
	}
	return best
}

// successors returns one copy of b per legal move for the side to move,
// with that move applied, in scan order.
func successors(b *board.Board) []*board.Board {
	return lo.Map(b.LegalMoves(b.Turn()), func(m board.Coord, _ int) *board.Board {
		next := b.Copy()
		next.ApplyMove(m)
		return next
	})
}
