package shell

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/reversi/automatic"
	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/search"
)

var (
	errGameOver    = errors.New("the game is over; type new to start another")
	errIllegalMove = errors.New("illegal move")
	errNoHistory   = errors.New("there is nothing to undo")
)

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) Int(key string) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) StringDefault(key string, defaultS string) string {
	v := c[key]
	if len(v) == 0 {
		return defaultS
	}
	return v[0]
}

func msg(message string) *Response {
	return &Response{message: message}
}

func (sc *ShellController) displayText() string {
	out := sc.curBoard.ToDisplayText(sc.showHints)
	if sc.curBoard.IsFinished() {
		out += gameOverText(sc.curBoard)
	}
	return out
}

func gameOverText(b *board.Board) string {
	d0, d1 := b.CountDisks(board.Player0), b.CountDisks(board.Player1)
	switch {
	case d0 > d1:
		return fmt.Sprintf("Game over, %v wins %d-%d", board.Player0, d0, d1)
	case d1 > d0:
		return fmt.Sprintf("Game over, %v wins %d-%d", board.Player1, d1, d0)
	}
	return fmt.Sprintf("Game over, draw %d-%d", d0, d1)
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	w, h := sc.config.BoardWidth(), sc.config.BoardHeight()
	switch len(cmd.args) {
	case 0:
	case 2:
		var err error
		if w, err = strconv.Atoi(cmd.args[0]); err != nil {
			return nil, err
		}
		if h, err = strconv.Atoi(cmd.args[1]); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New("usage: new [width height]")
	}
	b, err := board.NewBoard(w, h)
	if err != nil {
		return nil, err
	}
	sc.curBoard = b
	sc.history = nil
	return msg(sc.displayText()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	return msg(sc.displayText()), nil
}

// applyMove plays c for the side to move, remembering the previous
// position. The board is unchanged if c is illegal.
func (sc *ShellController) applyMove(c board.Coord) error {
	if sc.curBoard.IsFinished() {
		return errGameOver
	}
	prev := sc.curBoard.Copy()
	if !sc.curBoard.ApplyMove(c) {
		return fmt.Errorf("%w: %v cannot play %s", errIllegalMove, sc.curBoard.Turn(), c)
	}
	sc.history = append(sc.history, prev)
	return nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: play <coordinate>")
	}
	c, err := board.ParseCoord(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if err := sc.applyMove(c); err != nil {
		return nil, err
	}
	return msg(sc.displayText()), nil
}

func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if len(sc.history) == 0 {
		return nil, errNoHistory
	}
	sc.curBoard = sc.history[len(sc.history)-1]
	sc.history = sc.history[:len(sc.history)-1]
	return msg(sc.displayText()), nil
}

func (sc *ShellController) aiplay(cmd *shellcmd) (*Response, error) {
	if sc.curBoard.IsFinished() {
		return nil, errGameOver
	}
	mover := sc.curBoard.Turn()
	a, err := sc.searcher.Analyze(sc.curBoard)
	if err != nil {
		return nil, err
	}
	best := a.Results[a.Best]
	if err := sc.applyMove(best.Move); err != nil {
		return nil, err
	}
	summary := sc.printer.Sprintf("%v plays %s (score %s, %d nodes)",
		mover, best.Move, search.FormatScore(best.Score), a.Nodes)
	return msg(summary + "\n" + sc.displayText()), nil
}

func (sc *ShellController) analyze(cmd *shellcmd) (*Response, error) {
	a, err := sc.searcher.Analyze(sc.curBoard)
	if err != nil {
		return nil, err
	}
	footer := sc.printer.Sprintf("%v to move, %s depth %d: %d nodes in %v",
		a.Mover, sc.searcher.Variant(), sc.searcher.Depth(), a.Nodes, a.Elapsed)
	return msg(a.String() + footer), nil
}

func (sc *ShellController) hints(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) > 0 {
		on, err := parseToggle(cmd.args[0])
		if err != nil {
			return nil, err
		}
		sc.showHints = on
	} else {
		sc.showHints = !sc.showHints
	}
	state := "off"
	if sc.showHints {
		state = "on"
	}
	return msg("hints " + state + "\n" + sc.displayText()), nil
}

func (sc *ShellController) moves(cmd *shellcmd) (*Response, error) {
	p := sc.curBoard.Turn()
	legal := sc.curBoard.LegalMoves(p)
	if len(legal) == 0 {
		return msg(fmt.Sprintf("%v has no legal moves", p)), nil
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d legal moves for %v:\n", len(legal), p)
	for _, m := range legal {
		fmt.Fprintf(&sb, "%-5s flips %d\n", m, len(sc.curBoard.CapturesFor(m, p)))
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

func (sc *ShellController) settingsText() string {
	return fmt.Sprintf("depth    %d\nvariant  %s\nthreads  %d",
		sc.searcher.Depth(), sc.searcher.Variant(), sc.searcher.Threads())
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return msg(sc.settingsText()), nil
	}
	if len(cmd.args) != 2 {
		return nil, errors.New("usage: set <depth|variant|threads> <value>")
	}
	opt, val := cmd.args[0], cmd.args[1]
	switch opt {
	case "depth":
		d, err := strconv.Atoi(val)
		if err != nil {
			return nil, err
		}
		if err := sc.searcher.SetDepth(d); err != nil {
			return nil, err
		}
	case "variant":
		v, err := search.ParseVariant(val)
		if err != nil {
			return nil, err
		}
		sc.searcher.SetVariant(v)
	case "threads":
		t, err := strconv.Atoi(val)
		if err != nil {
			return nil, err
		}
		sc.searcher.SetThreads(t)
	default:
		return nil, fmt.Errorf("unknown setting %q", opt)
	}
	log.Debug().Str("setting", opt).Str("value", val).Msg("set")
	return msg("set " + opt + " to " + val), nil
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	games, err := cmd.options.IntDefault("games", sc.config.AutoplayGames())
	if err != nil {
		return nil, err
	}
	threads, err := cmd.options.IntDefault("threads", sc.config.AutoplayThreads())
	if err != nil {
		return nil, err
	}
	if games < 1 {
		return nil, errors.New("need at least one game")
	}
	searchKind := fmt.Sprintf("%s:%d", sc.searcher.Variant(), sc.searcher.Depth())
	p0, err := automatic.NewPlayerFactory(cmd.options.StringDefault("p0", searchKind), sc.config)
	if err != nil {
		return nil, err
	}
	p1, err := automatic.NewPlayerFactory(cmd.options.StringDefault("p1", automatic.RandomPlayer), sc.config)
	if err != nil {
		return nil, err
	}

	summary, err := automatic.RunGames(context.Background(), automatic.Options{
		Width:      sc.curBoard.Width(),
		Height:     sc.curBoard.Height(),
		Games:      games,
		Threads:    threads,
		Contenders: [2]automatic.PlayerFactory{p0, p1},
	})
	if err != nil {
		return nil, err
	}
	out := summary.String()
	hist, err := summary.HistogramText(10, 40)
	if err != nil {
		return nil, err
	}
	if hist != "" {
		out += "margin histogram for " + summary.Contenders[0].Name + ":\n" + hist
	}
	if path := cmd.options.StringDefault("out", sc.config.AutoplayOutput()); path != "" {
		if err := automatic.WriteSummaryFile(summary, path); err != nil {
			return nil, err
		}
		out += "wrote summary to " + path
	}
	return msg(strings.TrimRight(out, "\n")), nil
}

func parseToggle(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}
