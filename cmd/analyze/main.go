// Command analyze plays headless autopilot games on every preset in the
// config directory and prints, per preset, how long the snake grew and how
// the games ended. It is a quick way to see whether a preset is too cramped
// or too forgiving.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wricardo/termsnake/game/autopilot"
	"github.com/wricardo/termsnake/game/config"
	"github.com/wricardo/termsnake/game/engine"
)

// Options controls one analysis run.
type Options struct {
	Games    int
	MaxTicks int
	Parallel int
	Seed     int64
}

// Stats aggregates the autopilot games played on one preset.
type Stats struct {
	Config      string
	Games       int
	TotalLength int64
	MaxLength   int64
	TotalTicks  int64
	Walls       int64
	Self        int64
	Timeouts    int64
}

// AverageLength returns the mean final length.
func (s Stats) AverageLength() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.TotalLength) / float64(s.Games)
}

// AverageTicks returns the mean number of ticks played.
func (s Stats) AverageTicks() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.TotalTicks) / float64(s.Games)
}

type counters struct {
	games       atomic.Int64
	totalLength atomic.Int64
	maxLength   atomic.Int64
	totalTicks  atomic.Int64
	walls       atomic.Int64
	self        atomic.Int64
	timeouts    atomic.Int64
}

func (c *counters) record(e *engine.Engine, ended bool) {
	length := int64(e.Length())

	c.games.Inc()
	c.totalLength.Add(length)
	c.totalTicks.Add(int64(e.Ticks()))

	for {
		current := c.maxLength.Load()
		if length <= current || c.maxLength.CompareAndSwap(current, length) {
			break
		}
	}

	switch {
	case !ended:
		c.timeouts.Inc()
	case e.Cause() == engine.CauseOutOfBounds:
		c.walls.Inc()
	case e.Cause() == engine.CauseSelfCollision:
		c.self.Inc()
	}
}

func (c *counters) stats(name string) Stats {
	return Stats{
		Config:      name,
		Games:       int(c.games.Load()),
		TotalLength: c.totalLength.Load(),
		MaxLength:   c.maxLength.Load(),
		TotalTicks:  c.totalTicks.Load(),
		Walls:       c.walls.Load(),
		Self:        c.self.Load(),
		Timeouts:    c.timeouts.Load(),
	}
}

// Simulate plays opts.Games autopilot games on cfg, at most opts.Parallel at
// a time. Game i uses seed opts.Seed+i, so a run is reproducible.
func Simulate(ctx context.Context, cfg *engine.GameConfig, opts Options) (Stats, error) {
	if err := engine.ValidateGameConfig(cfg); err != nil {
		return Stats{}, err
	}
	if opts.Games <= 0 || opts.MaxTicks <= 0 {
		return Stats{}, errors.Errorf("games and max ticks must be positive, got %d and %d", opts.Games, opts.MaxTicks)
	}
	if opts.Parallel <= 0 {
		opts.Parallel = 1
	}

	var c counters
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Parallel)

	for i := 0; i < opts.Games; i++ {
		seed := opts.Seed + int64(i)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			e, err := engine.NewEngine(cfg, engine.NewRandomSource(seed))
			if err != nil {
				return err
			}
			ended, err := autopilot.Play(ctx, e, opts.MaxTicks)
			if err != nil {
				return err
			}
			c.record(e, ended)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Stats{}, errors.Wrapf(err, "simulation of %s interrupted", cfg.Name)
	}
	return c.stats(cfg.Name), nil
}

func printReport(w io.Writer, filename string, s Stats) {
	fmt.Fprintf(w, "\n=== Analyzing %s ===\n", filename)
	fmt.Fprintf(w, "Name: %s\n", s.Config)
	fmt.Fprintf(w, "Games: %d\n", s.Games)
	fmt.Fprintf(w, "Average length: %.2f\n", s.AverageLength())
	fmt.Fprintf(w, "Max length: %d\n", s.MaxLength)
	fmt.Fprintf(w, "Average ticks: %.1f\n", s.AverageTicks())
	fmt.Fprintf(w, "Wall deaths: %d\n", s.Walls)
	fmt.Fprintf(w, "Self collisions: %d\n", s.Self)
	fmt.Fprintf(w, "Timeouts: %d\n", s.Timeouts)

	if s.Games > 0 && s.Walls*2 > int64(s.Games) {
		fmt.Fprintf(w, "⚠️  WARNING: most games end at a wall\n")
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "play headless autopilot games on every preset and report the outcome",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config-dir", Value: "configs", Usage: "directory containing game presets", Sources: cli.EnvVars("CONFIG_DIR")},
			&cli.IntFlag{Name: "games", Value: 50, Usage: "games per preset"},
			&cli.IntFlag{Name: "max-ticks", Value: 5000, Usage: "ticks before a game counts as a timeout"},
			&cli.IntFlag{Name: "parallel", Value: 4, Usage: "games played at once"},
			&cli.Int64Flag{Name: "seed", Value: 1, Usage: "seed of the first game"},
			&cli.BoolFlag{Name: "debug", Usage: "enable debug logging"},
		},
		Action: run,
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(ctx context.Context, cmd *cli.Command) error {
	logger, err := newLogger(cmd.Bool("debug"))
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	manager, err := config.NewManager(cmd.String("config-dir"))
	if err != nil {
		return err
	}
	reports, err := manager.Scan()
	if err != nil {
		return err
	}

	opts := Options{
		Games:    int(cmd.Int("games")),
		MaxTicks: int(cmd.Int("max-ticks")),
		Parallel: int(cmd.Int("parallel")),
		Seed:     cmd.Int64("seed"),
	}

	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}

	for _, report := range reports {
		if report.Err != nil {
			logger.Warn("skipping invalid preset", zap.String("file", report.Filename), zap.Error(report.Err))
			continue
		}

		logger.Debug("simulating preset", zap.String("file", report.Filename), zap.Int("games", opts.Games))
		stats, err := Simulate(ctx, report.Config, opts)
		if err != nil {
			return err
		}
		printReport(w, report.Filename, stats)
	}

	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "analyze: %v\n", err)
		os.Exit(1)
	}
}
