package transit

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// Sentinel errors for floor search.
var (
	// ErrNoFloorPath is returned when no chain of links connects two floors.
	ErrNoFloorPath = errors.New("transit: no floor path")

	// ErrNoTransitNode is returned when no node on a floor links to the wanted floor.
	ErrNoTransitNode = errors.New("transit: no transit node")

	// ErrFloorNotFound is returned when BFS starts on a floor absent from the graph.
	ErrFloorNotFound = errors.New("transit: start floor not found")

	// ErrGraphNil is returned if a nil graph is passed to BFS.
	ErrGraphNil = errors.New("transit: graph is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("transit: invalid option supplied")
)

// Option configures BFS behaviour via functional arguments.
// If an Option is invalid (e.g. negative hops), it is recorded and
// surfaced as ErrOptionViolation when BFS runs.
type Option func(*Options)

// Options holds parameters and callbacks of one BFS run.
type Options struct {
	// Ctx allows cancellation.
	Ctx context.Context

	// OnVisit is called when a floor is dequeued. Returning an error
	// aborts the walk.
	OnVisit func(floor, depth int) error

	// MaxHops, if > 0, stops exploring beyond that many floor changes.
	MaxHops int

	err error
}

// DefaultOptions returns Options with no hop limit and a no-op hook.
func DefaultOptions() Options {
	return Options{
		Ctx:     context.Background(),
		OnVisit: func(int, int) error { return nil },
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit registers a callback run on every visited floor.
func WithOnVisit(fn func(floor, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxHops limits the number of floor changes explored.
//
//	n > 0:  at most n changes
//	n == 0: no limit
//	n < 0:  ErrOptionViolation
func WithMaxHops(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxHops cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxHops = n
	}
}

// Result holds the outcome of a BFS walk:
//   - Order: floors in visit sequence.
//   - Depth: floor changes from the start floor.
//   - Parent: predecessor of every reached floor but the start.
type Result struct {
	Start  int
	Order  []int
	Depth  map[int]int
	Parent map[int]int
}

// Reached reports whether floor was visited.
func (r *Result) Reached(floor int) bool {
	_, ok := r.Depth[floor]
	return ok
}

// PathTo rebuilds the floor sequence from the start floor to dest.
func (r *Result) PathTo(dest int) ([]int, error) {
	if !r.Reached(dest) {
		return nil, fmt.Errorf("%w: %d → %d", ErrNoFloorPath, r.Start, dest)
	}
	path := []int{dest}
	for cur := dest; cur != r.Start; {
		cur = r.Parent[cur]
		path = append(path, cur)
	}
	slices.Reverse(path)
	return path, nil
}
