package route

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/katalvlaran/indoornav/geom"
	"github.com/katalvlaran/indoornav/gridpath"
	"github.com/katalvlaran/indoornav/i18n"
	"github.com/katalvlaran/indoornav/transit"
	"github.com/katalvlaran/indoornav/world"
)

// Planner computes multi-stop routes over one World. It holds no
// per-route state and is safe for concurrent use.
type Planner struct {
	world *world.World
	nodes []world.NavigationNode
	graph *transit.Graph
	opts  Options
}

// NewPlanner prepares a planner for w.
func NewPlanner(w *world.World, opts ...Option) (*Planner, error) {
	if w == nil {
		return nil, ErrNilWorld
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	// A zero-length search returns at once and surfaces bad path options.
	if _, err := gridpath.Search(geom.Point{}, geom.Point{}, 0, nil, o.PathOptions...); errors.Is(err, gridpath.ErrOptionViolation) {
		return nil, fmt.Errorf("%w: %v", ErrOptionViolation, err)
	}

	nodes := w.Nodes()
	return &Planner{
		world: w,
		nodes: nodes,
		graph: transit.NewGraph(nodes),
		opts:  o,
	}, nil
}

// World returns the world the planner routes over.
func (p *Planner) World() *world.World { return p.world }

// Graph returns the floor graph of the world.
func (p *Planner) Graph() *transit.Graph { return p.graph }

// CalculateMultiStopRoute plans a route from start through every stop
// and returns its segments. On a data-integrity defect the segments
// built so far are returned. A nil translator renders English.
func CalculateMultiStopRoute(start geom.Point, stops []Stop, w *world.World, t i18n.Translator) []Segment {
	p, err := NewPlanner(w, WithTranslator(t))
	if err != nil {
		return nil
	}
	return p.Plan(context.Background(), start, stops).Segments
}

// Plan computes the route from start through every stop using the
// greedy floor-aware nearest-next order. ctx bounds the floor-local
// searches; on cancellation the route built so far is returned with
// the context error.
func (p *Planner) Plan(ctx context.Context, start geom.Point, stops []Stop) Result {
	pl := &plan{
		Planner:   p,
		ctx:       ctx,
		current:   start,
		remaining: slices.Clone(stops),
		res:       Result{Segments: []Segment{}},
	}
	pl.run()
	return pl.res
}

// plan is the mutable state of one Plan call.
type plan struct {
	*Planner
	ctx       context.Context
	current   geom.Point
	remaining []Stop
	res       Result
}

func (pl *plan) run() {
	for len(pl.remaining) > 0 {
		// 1) Order what is left by floor-aware distance and take the closest.
		here := pl.current
		penalty := pl.opts.FloorPenalty
		slices.SortStableFunc(pl.remaining, func(a, b Stop) int {
			return cmp.Compare(
				geom.FloorAwareDistance(here, a.Point, penalty),
				geom.FloorAwareDistance(here, b.Point, penalty),
			)
		})
		next := pl.remaining[0]

		// 2) Change floors if needed.
		if pl.current.Floor != next.Point.Floor {
			if err := pl.climb(next.Point.Floor); err != nil {
				pl.stop(err)
				return
			}
		}

		// 3) Approach the stop itself.
		pl.remaining = pl.remaining[1:]
		key := i18n.KeyProceedTo
		if len(pl.remaining) == 0 {
			key = i18n.KeyArrivedAt
		}
		instr := pl.opts.Translator.Translate(key, i18n.Params{Destination: next.Name})
		if err := pl.walk(next.Point, next.Point.Floor, instr); err != nil {
			pl.remaining = append([]Stop{next}, pl.remaining...)
			pl.stop(err)
			return
		}
		pl.res.Visited = append(pl.res.Visited, next)
		pl.current = next.Point
	}
	pl.res.Complete = true
}

// climb walks from the current point through every floor change to
// target, leaving current on the linked node of the target floor.
func (pl *plan) climb(target int) error {
	floors, err := pl.graph.Path(pl.current.Floor, target)
	if err != nil {
		return err
	}
	for i := 0; i < len(floors)-1; i++ {
		from, to := floors[i], floors[i+1]

		node, err := transit.SelectNode(pl.nodes, from, to, pl.current)
		if err != nil {
			return err
		}
		instr := pl.opts.Translator.Translate(i18n.KeyGoTo, i18n.Params{
			Destination: string(node.Type),
			Floor:       to,
		})
		if err := pl.walk(node.Point(), from, instr); err != nil {
			return err
		}

		link, _ := node.LinkTo(to)
		linked, ok := pl.world.Node(link.ID)
		if !ok {
			return fmt.Errorf("%w: %s → %q (floor %d) does not exist", ErrDanglingLink, node.ID, link.ID, to)
		}
		if linked.Floor != to {
			return fmt.Errorf("%w: %s → %q is on floor %d, not %d", ErrDanglingLink, node.ID, link.ID, linked.Floor, to)
		}
		pl.current = linked.Point()
	}
	return nil
}

// walk appends the floor-local segment from the current point to end.
func (pl *plan) walk(end geom.Point, floor int, instruction string) error {
	opts := append(slices.Clone(pl.opts.PathOptions), gridpath.WithContext(pl.ctx))
	found, err := gridpath.Search(pl.current, end, floor, pl.world.Obstacles(), opts...)
	if err != nil {
		return err
	}
	seg := Segment{
		Floor:       floor,
		Points:      found.Path,
		Instruction: instruction,
	}
	if found.Status == gridpath.FallbackDirect {
		seg.Fallback = true
		pl.res.Fallbacks++
		pl.opts.Logger.Debug("no walkable path, using straight line",
			"floor", floor, "from", pl.current, "to", end, "expanded", found.Expanded)
	}
	pl.res.Segments = append(pl.res.Segments, seg)
	return nil
}

// stop ends planning early with err.
func (pl *plan) stop(err error) {
	pl.res.Err = err
	pl.res.Unvisited = slices.Clone(pl.remaining)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		pl.opts.Logger.Warn("route planning cancelled", "err", err,
			"visited", len(pl.res.Visited), "unvisited", len(pl.res.Unvisited))
		return
	}
	pl.opts.Logger.Error("route stopped early: inconsistent navigation data", "err", err,
		"visited", len(pl.res.Visited), "unvisited", len(pl.res.Unvisited))
}

// Translated returns a copy of p that renders instructions with t.
func (p *Planner) Translated(t i18n.Translator) *Planner {
	if t == nil {
		return p
	}
	cp := *p
	cp.opts.Translator = t
	return &cp
}
