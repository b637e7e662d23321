// Package cli implements the indoornav command-line interface.
//
// Commands:
//   - route: plan a multi-stop route and print its segments
//   - walk: step through a planned route on a floor map
//   - floors: list floors, areas and transit nodes
//   - graph: export the floor-transit graph as DOT or SVG
//   - serve: run the HTTP API
//
// Every command accepts --config, --world, --lang and --verbose (-v).
// The logger travels in the command context.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/indoornav/gridpath"
	"github.com/katalvlaran/indoornav/i18n"
	"github.com/katalvlaran/indoornav/internal/config"
	"github.com/katalvlaran/indoornav/route"
	"github.com/katalvlaran/indoornav/world"
)

const appName = "indoornav"

// Version is reported by --version; set at build time with -ldflags.
var Version = "dev"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds state shared by all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	worldPath  string
	lang       string
	verbose    bool
}

// newLogger builds the command logger. Lines carry a wall-clock stamp
// down to hundredths of a second.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one step of a command.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at info level with keyvals and a "took" field holding
// the time since newProgress, rounded to milliseconds.
func (p *progress) done(msg string, keyvals ...any) {
	p.logger.Info(msg, append(keyvals, "took", time.Since(p.start).Round(time.Millisecond))...)
}

type ctxKey struct{}

// withLogger attaches l to ctx. RootCommand does this for every
// subcommand before it runs.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// loggerFromContext returns the logger attached by withLogger.
// Library code called without one still gets log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root command with every subcommand registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Plan multi-stop walking routes through multi-floor buildings",
		Long:         `indoornav plans walking routes through a building: it orders the stops by floor-aware distance, climbs floors over stairs, escalators and lifts, and walks each floor around the shops in the way.`,
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "configuration file (TOML)")
	flags.StringVarP(&c.worldPath, "world", "w", "", "world file (TOML or JSON); default is the built-in demo mall")
	flags.StringVarP(&c.lang, "lang", "l", "", "instruction language (en, hi, kn, ...)")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.routeCommand())
	root.AddCommand(c.walkCommand())
	root.AddCommand(c.floorsCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.serveCommand())

	return root
}

// env is everything a command needs, resolved from config and flags.
type env struct {
	cfg     config.Config
	world   *world.World
	catalog *i18n.Catalog
	planner *route.Planner
}

// load reads the configuration, the world and the catalogs. Flags win
// over the file.
func (c *CLI) load(ctx context.Context) (*env, error) {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if c.worldPath != "" {
		cfg.World = c.worldPath
	}
	if c.lang != "" {
		cfg.Lang = c.lang
	}

	var w *world.World
	if cfg.World == "" {
		w = world.Demo()
		logger.Debug("using built-in demo mall")
	} else if w, err = world.Load(cfg.World); err != nil {
		return nil, err
	}
	if err := w.Validate(); err != nil {
		logger.Warn("world data has defects; routes through them stop early", "err", err)
	}
	logger.Debug("world loaded", "floors", len(w.Floors()), "areas", len(w.Areas()), "nodes", len(w.Nodes()))

	catalog := i18n.Default()
	for _, path := range cfg.Catalogs {
		if err := catalog.Load(path); err != nil {
			return nil, err
		}
		logger.Debug("catalog loaded", "path", path)
	}

	planner, err := route.NewPlanner(w,
		route.WithFloorPenalty(cfg.Route.FloorPenalty),
		route.WithLogger(logger),
		route.WithTranslator(catalog.For(cfg.Lang)),
		route.WithPathOptions(gridpath.WithMaxExpansions(cfg.Route.MaxExpansions)),
	)
	if err != nil {
		return nil, fmt.Errorf("planner: %w", err)
	}
	return &env{cfg: cfg, world: w, catalog: catalog, planner: planner}, nil
}
