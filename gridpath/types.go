package gridpath

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/indoornav/geom"
	"github.com/katalvlaran/indoornav/world"
)

// ErrOptionViolation is returned when an invalid Option is supplied.
var ErrOptionViolation = errors.New("gridpath: invalid option supplied")

// quantum is the lattice resolution: every step length must be a
// multiple of it so that lattice points map to integer indexes.
const quantum = 0.5

// Defaults of the walking lattice.
const (
	DefaultOrthogonalStep = 2.0
	DefaultDiagonalStep   = 1.5
	DefaultArrivalRadius  = 2.0
	DefaultMaxExpansions  = 20000
)

// Status tells how a path was produced.
type Status int

const (
	// Found means the path walks the lattice around every obstacle.
	Found Status = iota
	// FallbackDirect means no lattice path was found and the path is the
	// straight segment [start, end].
	FallbackDirect
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case FallbackDirect:
		return "fallback-direct"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result is the outcome of Search.
type Result struct {
	Path     []geom.Point
	Status   Status
	Expanded int // states popped from the open set
}

// Obstacles answers whether a lattice point is blocked on a floor.
type Obstacles interface {
	Blocked(p geom.Point, floor int) bool
}

// Areas is an Obstacles implementation scanning a plain slice of areas.
// Areas on other floors and entrance areas never block.
type Areas []world.FloorArea

// Blocked implements Obstacles.
func (as Areas) Blocked(p geom.Point, floor int) bool {
	for _, a := range as {
		if a.Floor == floor && a.Blocks() && a.Rect().Contains(p) {
			return true
		}
	}
	return false
}

// Option configures Search via functional arguments.
// Invalid values are recorded and surfaced as ErrOptionViolation.
type Option func(*Options)

// Options holds the tunables of one search.
type Options struct {
	// Ctx is checked between expansions.
	Ctx context.Context

	// MaxExpansions caps popped states; 0 disables the cap.
	MaxExpansions int

	// Orthogonal is the length of a +x/−x/+y/−y move.
	Orthogonal float64

	// Diagonal is the per-axis offset of a diagonal move.
	Diagonal float64

	// ArrivalRadius ends the search once a state is strictly closer than
	// this to the target.
	ArrivalRadius float64

	err error
}

// DefaultOptions returns the lattice used by the route engine.
func DefaultOptions() Options {
	return Options{
		Ctx:           context.Background(),
		MaxExpansions: DefaultMaxExpansions,
		Orthogonal:    DefaultOrthogonalStep,
		Diagonal:      DefaultDiagonalStep,
		ArrivalRadius: DefaultArrivalRadius,
	}
}

// WithContext sets a context checked between expansions.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxExpansions caps the number of expanded states.
//
//	n > 0:  cap at n
//	n == 0: no cap
//	n < 0:  ErrOptionViolation
func WithMaxExpansions(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxExpansions cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxExpansions = n
	}
}

// WithStep sets the orthogonal step length and the per-axis diagonal
// offset. Both must be positive multiples of 0.5.
func WithStep(orthogonal, diagonal float64) Option {
	return func(o *Options) {
		if !onLattice(orthogonal) || !onLattice(diagonal) {
			o.err = fmt.Errorf("%w: steps must be positive multiples of %g (got %g, %g)",
				ErrOptionViolation, quantum, orthogonal, diagonal)
			return
		}
		o.Orthogonal, o.Diagonal = orthogonal, diagonal
	}
}

// WithArrivalRadius sets how close a state must get to the target.
// r must be positive.
func WithArrivalRadius(r float64) Option {
	return func(o *Options) {
		if !(r > 0) || math.IsInf(r, 1) {
			o.err = fmt.Errorf("%w: ArrivalRadius must be positive and finite (%g)", ErrOptionViolation, r)
			return
		}
		o.ArrivalRadius = r
	}
}

func onLattice(v float64) bool {
	if !(v > 0) || math.IsInf(v, 1) {
		return false
	}
	q := v / quantum
	return q == math.Trunc(q)
}

// Length returns the total length of a polyline.
func Length(path []geom.Point) float64 {
	var total float64
	for i := 1; i < len(path); i++ {
		total += geom.Distance(path[i-1], path[i])
	}
	return total
}
