// Command termsnake plays Snake in the terminal.
//
// It supports three commands:
//  1. "play" (default) - runs the game on the alternate screen
//  2. "mcp" - serves independent game sessions as MCP tools over stdio
//  3. "configs" - lists (and optionally validates) the presets in the config directory
//
// Flags control the preset, grid size, tick period, seed, autopilot, sound,
// and logging. A single positional argument sets a square grid size.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/wricardo/termsnake/audio"
	"github.com/wricardo/termsnake/game/config"
	"github.com/wricardo/termsnake/game/engine"
	"github.com/wricardo/termsnake/game/service"
	"github.com/wricardo/termsnake/game/session"
	"github.com/wricardo/termsnake/transport/mcp"
	"github.com/wricardo/termsnake/transport/terminal"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "termsnake"
)

const (
	sessionCleanupInterval = time.Hour
	sessionMaxAge          = 24 * time.Hour
)

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: error loading .env file: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", AppName, err)
		os.Exit(1)
	}
}

// newApp builds the command tree. Flags on the root command are visible to
// every sub-command.
func newApp() *cli.Command {
	return &cli.Command{
		Name:      AppName,
		Usage:     "play Snake in the terminal",
		Version:   Version,
		ArgsUsage: "[size]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory containing game presets",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "preset to play (defaults to classic)",
				Sources: cli.EnvVars("SNAKE_CONFIG"),
			},
			&cli.IntFlag{Name: "width", Usage: "override the grid width"},
			&cli.IntFlag{Name: "height", Usage: "override the grid height"},
			&cli.DurationFlag{Name: "tick", Usage: "override the tick period (e.g. 100ms)"},
			&cli.Int64Flag{Name: "seed", Usage: "random seed for food placement (0 picks one)"},
			&cli.BoolFlag{Name: "autopilot", Usage: "let the greedy autopilot steer"},
			&cli.BoolFlag{Name: "sound", Usage: "play sound effects"},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "write logs to this file (play discards logs without it)",
				Sources: cli.EnvVars("SNAKE_LOG_FILE"),
			},
			&cli.BoolFlag{Name: "debug", Usage: "enable debug logging", Sources: cli.EnvVars("SNAKE_DEBUG")},
		},
		Action: playAction,
		Commands: []*cli.Command{
			{
				Name:      "play",
				Usage:     "play in the terminal (default)",
				ArgsUsage: "[size]",
				Action:    playAction,
			},
			{
				Name:   "mcp",
				Usage:  "serve game sessions as MCP tools over stdio",
				Action: mcpAction,
			},
			{
				Name:  "configs",
				Usage: "list the presets in the config directory",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "validate", Usage: "report every preset file and fail if any is invalid"},
				},
				Action: configsAction,
			},
		},
	}
}

// newLogger builds a production zap logger writing to path. An empty path
// discards all logs.
func newLogger(path string, debug bool) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create logger for %s", path)
	}
	return logger, nil
}

// overrides are the command line adjustments applied on top of a preset.
// Zero values mean unset.
type overrides struct {
	Size   string
	Width  int
	Height int
	Tick   time.Duration
}

// applyOverrides adjusts cfg in place and validates the result. The
// positional size sets both dimensions; explicit width and height win.
func applyOverrides(cfg *engine.GameConfig, o overrides) error {
	if o.Size != "" {
		size, err := strconv.Atoi(o.Size)
		if err != nil {
			return errors.Errorf("invalid grid size %q", o.Size)
		}
		if size <= 0 {
			return errors.Errorf("grid size must be positive, got %d", size)
		}
		cfg.Width, cfg.Height = size, size
	}

	if o.Width < 0 || o.Height < 0 {
		return errors.Errorf("grid dimensions must be positive, got %dx%d", o.Width, o.Height)
	}
	if o.Width > 0 {
		cfg.Width = o.Width
	}
	if o.Height > 0 {
		cfg.Height = o.Height
	}

	if o.Tick < 0 {
		return errors.Errorf("tick must be positive, got %s", o.Tick)
	}
	if o.Tick > 0 {
		cfg.TickMillis = int(o.Tick / time.Millisecond)
	}

	return engine.ValidateGameConfig(cfg)
}

// resolveGameConfig picks the preset and applies command line overrides. A
// missing config directory is tolerated unless a preset was asked for by
// name.
func resolveGameConfig(configDir, name string, o overrides) (*engine.GameConfig, error) {
	var base *engine.GameConfig

	manager, err := config.NewManager(configDir)
	switch {
	case err != nil && name != "":
		return nil, err
	case err != nil:
		base = engine.DefaultGameConfig()
	case name != "":
		base, err = manager.LoadConfig(name)
		if err != nil {
			return nil, err
		}
	default:
		base = manager.GetDefault()
	}

	cfg := base.Clone()
	if err := applyOverrides(cfg, o); err != nil {
		return nil, err
	}
	return cfg, nil
}

func playAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() > 1 {
		return errors.Errorf("expected at most one size argument, got %d", cmd.Args().Len())
	}

	logger, err := newLogger(cmd.String("log-file"), cmd.Bool("debug"))
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	gameConfig, err := resolveGameConfig(cmd.String("config-dir"), cmd.String("config"), overrides{
		Size:   cmd.Args().First(),
		Width:  int(cmd.Int("width")),
		Height: int(cmd.Int("height")),
		Tick:   cmd.Duration("tick"),
	})
	if err != nil {
		return err
	}

	seed := cmd.Int64("seed")
	e, err := engine.NewEngine(gameConfig, engine.NewRandomSource(seed))
	if err != nil {
		return err
	}

	var player audio.Player = audio.Nop{}
	if cmd.Bool("sound") {
		speaker, err := audio.NewSpeaker()
		if err != nil {
			logger.Warn("sound disabled", zap.Error(err))
		} else {
			defer speaker.Close()
			player = speaker
		}
	}

	logger.Info("starting game",
		zap.String("config", gameConfig.Name),
		zap.Int("width", gameConfig.Width),
		zap.Int("height", gameConfig.Height),
		zap.Int("tick_ms", gameConfig.TickMillis),
		zap.Int64("seed", seed),
		zap.Bool("autopilot", cmd.Bool("autopilot")))

	final, err := terminal.Run(ctx, terminal.NewModel(e, terminal.Options{
		Autopilot: cmd.Bool("autopilot"),
		Player:    player,
		Logger:    logger,
	}))
	if err != nil {
		return err
	}

	logger.Info("game closed", zap.Int("games", final.Games()), zap.Int("best", final.Best()))
	return nil
}

func mcpAction(ctx context.Context, cmd *cli.Command) error {
	logPath := cmd.String("log-file")
	if logPath == "" {
		logPath = "stderr"
	}
	logger, err := newLogger(logPath, cmd.Bool("debug"))
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	gameService, sessionManager, err := initializeServices(cmd.String("config-dir"), logger)
	if err != nil {
		return err
	}

	go sessionCleanupRoutine(ctx, sessionManager, sessionCleanupInterval, sessionMaxAge, logger)

	logger.Info("MCP stdio server ready", zap.String("version", Version))
	if err := mcp.NewServer(gameService, AppName, Version, logger).ServeStdio(); err != nil {
		return errors.Wrap(err, "MCP stdio server failed")
	}
	return nil
}

func configsAction(ctx context.Context, cmd *cli.Command) error {
	manager, err := config.NewManager(cmd.String("config-dir"))
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}

	if cmd.Bool("validate") {
		return validatePresets(w, manager)
	}
	return listPresets(w, manager)
}

func listPresets(w io.Writer, manager *config.Manager) error {
	configs, err := manager.ListConfigs()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tGRID\tLENGTH\tTICK\tFILE")
	for _, c := range configs {
		fmt.Fprintf(tw, "%s\t%s\t%dx%d\t%d\t%dms\t%s\n",
			c.ConfigID, c.Name, c.Width, c.Height, c.InitialLength, c.TickMillis, c.Filename)
	}
	return tw.Flush()
}

func validatePresets(w io.Writer, manager *config.Manager) error {
	reports, err := manager.Scan()
	if err != nil {
		return err
	}

	invalid := 0
	for _, report := range reports {
		if report.Err != nil {
			invalid++
			fmt.Fprintf(w, "✗ %s: %v\n", report.Filename, report.Err)
			continue
		}
		fmt.Fprintf(w, "✓ %s (%s)\n", report.Filename, report.Config.Name)
	}

	fmt.Fprintf(w, "%d files, %d valid, %d invalid\n", len(reports), len(reports)-invalid, invalid)
	if invalid > 0 {
		return errors.Errorf("%d invalid preset file(s) in %s", invalid, manager.Dir())
	}
	return nil
}

// initializeServices wires the session and config managers into the game
// service.
func initializeServices(configDir string, logger *zap.Logger) (service.GameService, *session.Manager, error) {
	configManager, err := config.NewManager(configDir)
	if err != nil {
		return nil, nil, errors.WithMessage(err, "failed to create config manager")
	}

	sessionManager := session.NewManager(logger)
	gameService := service.NewGameService(sessionManager, configManager, logger)

	return gameService, sessionManager, nil
}

// sessionCleanupRoutine periodically removes sessions that have not been
// accessed within maxAge, until ctx is done.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, interval, maxAge time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(maxAge); removed > 0 {
				logger.Info("cleaned up expired sessions", zap.Int("removed", removed))
			}
		}
	}
}
