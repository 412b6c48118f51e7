package automatic

import (
	"fmt"
	"strconv"
	"strings"

	"lukechampine.com/frand"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/config"
	"github.com/domino14/reversi/search"
)

const (
	GreedyPlayer      = "greedy"
	AdversarialPlayer = "adversarial"
	RandomPlayer      = "random"
)

// A Player picks moves during an automatic game.
type Player interface {
	Name() string
	// ChooseMove returns a legal move for b's side to move.
	ChooseMove(b *board.Board) (board.Coord, error)
}

// SearchPlayer plays whatever its searcher recommends.
type SearchPlayer struct {
	name     string
	searcher *search.Searcher
}

func NewSearchPlayer(name string, s *search.Searcher) *SearchPlayer {
	return &SearchPlayer{name: name, searcher: s}
}

func (p *SearchPlayer) Name() string { return p.name }

func (p *SearchPlayer) ChooseMove(b *board.Board) (board.Coord, error) {
	return p.searcher.BestMove(b)
}

// RandomMover plays a uniformly random legal move.
type RandomMover struct{}

func (RandomMover) Name() string { return RandomPlayer }

func (RandomMover) ChooseMove(b *board.Board) (board.Coord, error) {
	moves := b.LegalMoves(b.Turn())
	if len(moves) == 0 {
		return board.Coord{}, search.ErrNoLegalMoves
	}
	return moves[frand.Intn(len(moves))], nil
}

// PlayerFactory makes a fresh Player. Each autoplay worker gets its own
// players, since searchers are not safe for concurrent use.
type PlayerFactory func() Player

// NewPlayerFactory parses a player kind: "random", or a search variant
// ("greedy", "adversarial") with an optional ":depth" suffix, e.g.
// "greedy:2". The depth defaults to the configured search depth.
func NewPlayerFactory(kind string, cfg *config.Config) (PlayerFactory, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind == RandomPlayer {
		return func() Player { return RandomMover{} }, nil
	}
	name, depthStr, hasDepth := strings.Cut(kind, ":")
	depth := cfg.SearchDepth()
	if hasDepth {
		d, err := strconv.Atoi(depthStr)
		if err != nil {
			return nil, fmt.Errorf("bad depth in player kind %q: %w", kind, err)
		}
		depth = d
	}
	if depth < 0 {
		return nil, search.ErrInvalidDepth
	}
	variant, err := search.ParseVariant(name)
	if err != nil {
		return nil, err
	}
	label := fmt.Sprintf("%s:%d", variant, depth)
	return func() Player {
		s := search.NewSearcher()
		s.SetVariant(variant)
		// depth was validated above.
		_ = s.SetDepth(depth)
		return NewSearchPlayer(label, s)
	}, nil
}
