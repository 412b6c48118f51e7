package automatic

// Data collection for automatic games: run many computer vs computer
// games and summarize them.

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"sync/atomic"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int

	playing atomic.Bool

	ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

// Options configures a batch of automatic games.
type Options struct {
	Width   int
	Height  int
	Games   int
	Threads int
	// Contenders make the two players. Contender 0 moves first in even
	// numbered games and second in odd numbered games.
	Contenders [2]PlayerFactory
}

// ContenderStats are the results for one contender across a batch.
type ContenderStats struct {
	Name        string `yaml:"name"`
	Wins        int    `yaml:"wins"`
	Losses      int    `yaml:"losses"`
	Draws       int    `yaml:"draws"`
	WinsAsFirst int    `yaml:"wins_as_first"`
	TotalDisks  int    `yaml:"total_disks"`
}

// Summary aggregates a batch of games. Margins are disk differences from
// contender 0's point of view.
type Summary struct {
	Games          int               `yaml:"games"`
	Width          int               `yaml:"width"`
	Height         int               `yaml:"height"`
	Contenders     [2]ContenderStats `yaml:"contenders"`
	MeanMargin     float64           `yaml:"mean_margin"`
	StdevMargin    float64           `yaml:"stdev_margin"`
	MeanMoves      float64           `yaml:"mean_moves"`
	DistinctFinals int               `yaml:"distinct_final_positions"`

	margins []float64
}

// Margins returns contender 0's disk margin for every game, in the order
// the games finished.
func (s *Summary) Margins() []float64 {
	return s.margins
}

func (s *Summary) add(res *GameResult, gameIdx int) {
	// c0seat is the seat (first or second mover) of contender 0.
	c0seat := gameIdx % 2
	seats := [2]int{c0seat, 1 - c0seat}
	for c := 0; c < 2; c++ {
		seat := seats[c]
		st := &s.Contenders[c]
		st.Name = res.Players[seat]
		st.TotalDisks += res.Disks[seat]
		switch res.Winner {
		case -1:
			st.Draws++
		case seat:
			st.Wins++
			if seat == 0 {
				st.WinsAsFirst++
			}
		default:
			st.Losses++
		}
	}
	s.margins = append(s.margins, float64(res.Disks[seats[0]]-res.Disks[seats[1]]))
}

func (s *Summary) finalize(results []*GameResult) {
	s.Games = len(results)
	if len(s.margins) > 0 {
		if len(s.margins) > 1 {
			s.MeanMargin, s.StdevMargin = stat.MeanStdDev(s.margins, nil)
		} else {
			s.MeanMargin = s.margins[0]
		}
	}
	if len(results) > 0 {
		s.MeanMoves = float64(lo.SumBy(results, func(r *GameResult) int {
			return len(r.Moves)
		})) / float64(len(results))
	}
	s.DistinctFinals = len(lo.Uniq(lo.Map(results, func(r *GameResult, _ int) uint64 {
		return r.FinalHash
	})))
}

// HistogramText draws a histogram of contender 0's margins.
func (s *Summary) HistogramText(bins, width int) (string, error) {
	if len(s.margins) == 0 {
		return "", nil
	}
	var sb strings.Builder
	h := histogram.Hist(bins, s.margins)
	if err := histogram.Fprint(&sb, h, histogram.Linear(width)); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// WriteYAML writes the summary as YAML.
func (s *Summary) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

func (s *Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d games on %dx%d\n", s.Games, s.Width, s.Height)
	for _, c := range s.Contenders {
		fmt.Fprintf(&sb, "%-16s wins %d (as first %d), losses %d, draws %d\n",
			c.Name, c.Wins, c.WinsAsFirst, c.Losses, c.Draws)
	}
	stdev := s.StdevMargin
	if math.IsNaN(stdev) {
		stdev = 0
	}
	fmt.Fprintf(&sb, "margin for %s: mean %.2f, stdev %.2f\n",
		s.Contenders[0].Name, s.MeanMargin, stdev)
	fmt.Fprintf(&sb, "mean game length %.1f moves, %d distinct final positions\n",
		s.MeanMoves, s.DistinctFinals)
	return sb.String()
}

// RunGames plays opts.Games games on opts.Threads workers. If ctx is
// canceled, no new games start and the summary covers the games that did
// finish.
func RunGames(ctx context.Context, opts Options) (*Summary, error) {
	if !playing.CompareAndSwap(false, true) {
		return nil, ErrAlreadyPlaying
	}
	defer playing.Store(false)

	threads := max(1, opts.Threads)
	log.Debug().Msgf("Starting %v games, %v threads", opts.Games, threads)
	CVCCounter.Set(0)

	type finished struct {
		idx int
		res *GameResult
	}
	jobs := make(chan int, 100)
	done := make(chan finished, 100)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < opts.Games; i++ {
			select {
			case <-gctx.Done():
				log.Info().Msg("Got stop signal, exiting soon...")
				return nil
			case jobs <- i:
			}
		}
		return nil
	})

	for t := 0; t < threads; t++ {
		g.Go(func() error {
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			c0, c1 := opts.Contenders[0](), opts.Contenders[1]()
			for idx := range jobs {
				if gctx.Err() != nil {
					continue
				}
				players := [2]Player{c0, c1}
				if idx%2 == 1 {
					players = [2]Player{c1, c0}
				}
				res, err := NewGameRunner(opts.Width, opts.Height, players).PlayGame()
				if err != nil {
					return err
				}
				CVCCounter.Add(1)
				done <- finished{idx, res}
			}
			return nil
		})
	}
	go func() {
		g.Wait()
		close(done)
	}()

	summary := &Summary{Width: opts.Width, Height: opts.Height}
	var results []*GameResult
	for f := range done {
		summary.add(f.res, f.idx)
		results = append(results, f.res)
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	summary.finalize(results)
	log.Info().Int("games", summary.Games).Msg("autoplay-finished")
	return summary, nil
}

// WriteSummaryFile writes the summary as YAML to path.
func WriteSummaryFile(s *Summary, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.WriteYAML(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
