package gridpath

import (
	"container/heap"
	"errors"
	"math"

	"github.com/katalvlaran/indoornav/geom"
)

// cell is a lattice index in quantum units relative to the start point.
type cell struct {
	i, j int
}

// move is one of the eight lattice moves with its precomputed cost.
type move struct {
	d    cell
	cost float64
}

// state is one discovered lattice point.
type state struct {
	at     cell
	p      geom.Point
	g, f   float64
	seq    int // discovery order, stable across score improvements
	parent *state
	slot   int // index in the open heap, -1 when not queued
}

// openHeap orders states by f-score, then by discovery order.
type openHeap []*state

func (h openHeap) Len() int { return len(h) }
func (h openHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].seq < h[j].seq
}
func (h openHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].slot, h[j].slot = i, j
}
func (h *openHeap) Push(x any) {
	s := x.(*state)
	s.slot = len(*h)
	*h = append(*h, s)
}
func (h *openHeap) Pop() any {
	old := *h
	n := len(old)
	s := old[n-1]
	old[n-1] = nil
	s.slot = -1
	*h = old[:n-1]
	return s
}

// FindPathOnFloor returns a walking path from start to end on floor.
// It never fails: when no lattice path exists the result is [start, end].
// Invalid options are ignored and the defaults are used instead.
func FindPathOnFloor(start, end geom.Point, floor int, obstacles Obstacles, opts ...Option) []geom.Point {
	res, err := Search(start, end, floor, obstacles, opts...)
	if errors.Is(err, ErrOptionViolation) {
		res, _ = Search(start, end, floor, obstacles)
	}
	return res.Path
}

// Search runs A* from start to end on floor and reports how the path
// was obtained.
//
// Returns ErrOptionViolation (and an empty Result) for invalid options.
// A cancelled context yields the FallbackDirect result together with
// the context error.
func Search(start, end geom.Point, floor int, obstacles Obstacles, opts ...Option) (Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return Result{}, o.err
	}
	if obstacles == nil {
		obstacles = noObstacles{}
	}

	r := &runner{
		start:     start,
		end:       end,
		floor:     floor,
		obstacles: obstacles,
		opts:      o,
		moves:     lattice(o.Orthogonal, o.Diagonal),
		states:    make(map[cell]*state),
	}
	return r.run()
}

// runner holds the mutable state of one search.
type runner struct {
	start, end geom.Point
	floor      int
	obstacles  Obstacles
	opts       Options
	moves      []move

	states   map[cell]*state
	open     openHeap
	seq      int
	expanded int
}

// lattice builds the eight moves in their fixed order:
// +x, −x, +y, −y, (+,+), (−,−), (+,−), (−,+).
func lattice(orthogonal, diagonal float64) []move {
	o := int(math.Round(orthogonal / quantum))
	d := int(math.Round(diagonal / quantum))
	dc := diagonal * math.Sqrt2
	return []move{
		{cell{o, 0}, orthogonal},
		{cell{-o, 0}, orthogonal},
		{cell{0, o}, orthogonal},
		{cell{0, -o}, orthogonal},
		{cell{d, d}, dc},
		{cell{-d, -d}, dc},
		{cell{d, -d}, dc},
		{cell{-d, d}, dc},
	}
}

func (r *runner) run() (Result, error) {
	// 1) Seed the open set with start.
	root := r.discover(cell{}, r.start, 0, nil)
	heap.Push(&r.open, root)

	for r.open.Len() > 0 {
		// 2) Watchdogs: cancellation and expansion cap.
		select {
		case <-r.opts.Ctx.Done():
			return r.fallback(), r.opts.Ctx.Err()
		default:
		}
		if r.opts.MaxExpansions > 0 && r.expanded >= r.opts.MaxExpansions {
			return r.fallback(), nil
		}

		// 3) Expand the best state; stop once close enough to end.
		cur := heap.Pop(&r.open).(*state)
		r.expanded++
		if geom.Distance(cur.p, r.end) < r.opts.ArrivalRadius {
			return Result{Path: r.reconstruct(cur), Status: Found, Expanded: r.expanded}, nil
		}

		// 4) Relax the eight neighbours in fixed order.
		for _, m := range r.moves {
			r.relax(cur, m)
		}
	}

	return r.fallback(), nil
}

func (r *runner) relax(cur *state, m move) {
	at := cell{cur.at.i + m.d.i, cur.at.j + m.d.j}
	p := r.point(at)
	if !geom.InPlane(p) || r.obstacles.Blocked(p, r.floor) {
		return
	}

	g := cur.g + m.cost
	s, seen := r.states[at]
	if !seen {
		heap.Push(&r.open, r.discover(at, p, g, cur))
		return
	}
	if g >= s.g {
		return
	}
	s.g = g
	s.f = g + geom.Distance(p, r.end)
	s.parent = cur
	if s.slot >= 0 {
		heap.Fix(&r.open, s.slot)
	} else {
		heap.Push(&r.open, s)
	}
}

func (r *runner) discover(at cell, p geom.Point, g float64, parent *state) *state {
	s := &state{
		at:     at,
		p:      p,
		g:      g,
		f:      g + geom.Distance(p, r.end),
		seq:    r.seq,
		parent: parent,
		slot:   -1,
	}
	r.seq++
	r.states[at] = s
	return s
}

func (r *runner) point(at cell) geom.Point {
	return geom.Point{
		X:     r.start.X + float64(at.i)*quantum,
		Y:     r.start.Y + float64(at.j)*quantum,
		Floor: r.floor,
	}
}

// reconstruct returns start, the walked lattice points up to and
// including last (unless last is the start itself), then end.
func (r *runner) reconstruct(last *state) []geom.Point {
	var walked []geom.Point
	for s := last; s != nil && s.parent != nil; s = s.parent {
		walked = append(walked, s.p)
	}
	path := make([]geom.Point, 0, len(walked)+2)
	path = append(path, r.start)
	for i := len(walked) - 1; i >= 0; i-- {
		path = append(path, walked[i])
	}
	return append(path, r.end)
}

func (r *runner) fallback() Result {
	return Result{
		Path:     []geom.Point{r.start, r.end},
		Status:   FallbackDirect,
		Expanded: r.expanded,
	}
}

// noObstacles is the empty obstacle set.
type noObstacles struct{}

func (noObstacles) Blocked(geom.Point, int) bool { return false }
