package route

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/indoornav/geom"
	"github.com/katalvlaran/indoornav/gridpath"
	"github.com/katalvlaran/indoornav/i18n"
	"github.com/katalvlaran/indoornav/transit"
)

// Sentinel errors of route planning.
var (
	// ErrNoFloorPath aliases transit.ErrNoFloorPath.
	ErrNoFloorPath = transit.ErrNoFloorPath

	// ErrNoTransitNode aliases transit.ErrNoTransitNode.
	ErrNoTransitNode = transit.ErrNoTransitNode

	// ErrDanglingLink is reported when a transit link names a node that
	// does not exist or lives on another floor than the link claims.
	ErrDanglingLink = errors.New("route: dangling transit link")

	// ErrNilWorld is returned by NewPlanner without world data.
	ErrNilWorld = errors.New("route: world is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("route: invalid option supplied")
)

// Stop is one destination of a route.
type Stop struct {
	ID    string     `json:"id,omitempty"`
	Point geom.Point `json:"point"`
	Name  string     `json:"name"`
}

// Segment is a walk on a single floor. Every point has the segment's floor.
type Segment struct {
	Floor       int          `json:"floor"`
	Points      []geom.Point `json:"points"`
	Instruction string       `json:"instruction"`

	// Fallback is set when no lattice path was found and Points is the
	// straight line between the two ends.
	Fallback bool `json:"fallback,omitempty"`
}

// Length returns the walking length of s.
func (s Segment) Length() float64 {
	return gridpath.Length(s.Points)
}

// Result is the outcome of Planner.Plan.
type Result struct {
	Segments []Segment

	// Complete is true when every stop was reached.
	Complete bool

	// Visited lists the stops in visiting order.
	Visited []Stop

	// Unvisited lists the stops left when planning stopped early.
	Unvisited []Stop

	// Err explains an incomplete result.
	Err error

	// Fallbacks counts segments built by the direct-line fallback.
	Fallbacks int
}

// Distance sums the walking length of all segments.
func (r Result) Distance() float64 {
	var d float64
	for _, s := range r.Segments {
		d += s.Length()
	}
	return d
}

// Option configures a Planner.
type Option func(*Options)

// Options holds the planner tunables.
type Options struct {
	// FloorPenalty weights one floor of difference when ordering stops.
	FloorPenalty float64

	// Logger receives data-integrity errors and fallback notices.
	Logger *log.Logger

	// Translator renders instructions.
	Translator i18n.Translator

	// PathOptions are passed to every floor-local search.
	PathOptions []gridpath.Option

	err error
}

// DefaultOptions returns the planner defaults: geom.DefaultFloorPenalty,
// a discarding logger and the English catalog.
func DefaultOptions() Options {
	return Options{
		FloorPenalty: geom.DefaultFloorPenalty,
		Logger:       log.NewWithOptions(io.Discard, log.Options{}),
		Translator:   i18n.NewCatalog(),
	}
}

// WithFloorPenalty sets the per-floor ordering weight. It must be
// non-negative.
func WithFloorPenalty(p float64) Option {
	return func(o *Options) {
		if !(p >= 0) {
			o.err = fmt.Errorf("%w: FloorPenalty must be non-negative (%g)", ErrOptionViolation, p)
			return
		}
		o.FloorPenalty = p
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithTranslator sets the instruction translator.
func WithTranslator(t i18n.Translator) Option {
	return func(o *Options) {
		if t != nil {
			o.Translator = t
		}
	}
}

// WithPathOptions appends floor-local search options.
func WithPathOptions(opts ...gridpath.Option) Option {
	return func(o *Options) {
		o.PathOptions = append(o.PathOptions, opts...)
	}
}
