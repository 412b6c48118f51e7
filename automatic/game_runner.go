// Package automatic plays computer-vs-computer Reversi games and collects
// statistics about them.
package automatic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/reversi/board"
)

var errIllegalChoice = errors.New("player chose an illegal move")

// GameResult describes one finished game.
type GameResult struct {
	// Players holds the names of the first and second mover.
	Players [2]string
	Disks   [2]int
	// Winner is 0 or 1 for the side with more disks, or -1 for a draw.
	Winner    int
	Moves     []board.Coord
	FinalHash uint64
	final     *board.Board
}

// Final returns the final position.
func (r *GameResult) Final() *board.Board {
	return r.final
}

func (r *GameResult) String() string {
	var sb strings.Builder
	for i, m := range r.Moves {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(m.String())
	}
	outcome := "draw"
	if r.Winner >= 0 {
		outcome = fmt.Sprintf("%s (%v) wins", r.Players[r.Winner], board.Player(r.Winner))
	}
	return fmt.Sprintf("%s vs %s: %d-%d, %s\n%s", r.Players[0], r.Players[1],
		r.Disks[0], r.Disks[1], outcome, sb.String())
}

// GameRunner plays a game between two players from the seed position.
type GameRunner struct {
	width   int
	height  int
	players [2]Player
}

// NewGameRunner returns a runner; players[0] moves first.
func NewGameRunner(width, height int, players [2]Player) *GameRunner {
	return &GameRunner{width: width, height: height, players: players}
}

// PlayGame plays until the side to move has no legal move.
func (r *GameRunner) PlayGame() (*GameResult, error) {
	b, err := board.NewBoard(r.width, r.height)
	if err != nil {
		return nil, err
	}
	res := &GameResult{Players: [2]string{r.players[0].Name(), r.players[1].Name()}}
	for !b.IsFinished() {
		p := r.players[b.Turn()]
		m, err := p.ChooseMove(b)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Name(), err)
		}
		if !b.ApplyMove(m) {
			return nil, fmt.Errorf("%w: %s played %s", errIllegalChoice, p.Name(), m)
		}
		res.Moves = append(res.Moves, m)
	}
	res.Disks = [2]int{b.CountDisks(board.Player0), b.CountDisks(board.Player1)}
	switch {
	case res.Disks[0] > res.Disks[1]:
		res.Winner = 0
	case res.Disks[1] > res.Disks[0]:
		res.Winner = 1
	default:
		res.Winner = -1
	}
	res.FinalHash = b.Hash()
	res.final = b
	log.Debug().
		Str("p0", res.Players[0]).
		Str("p1", res.Players[1]).
		Int("disks0", res.Disks[0]).
		Int("disks1", res.Disks[1]).
		Int("moves", len(res.Moves)).
		Msg("game-over")
	return res, nil
}
