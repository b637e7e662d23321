package transit

import (
	"context"
	"fmt"
)

// queueItem pairs a floor with its BFS depth.
type queueItem struct {
	floor int
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	graph   *Graph
	opts    Options
	ctx     context.Context
	queue   []queueItem
	visited map[int]bool
	res     *Result
}

// BFS walks g breadth-first from start.
// Returns ErrGraphNil, ErrFloorNotFound, ErrOptionViolation, a context
// error or the error of an OnVisit hook.
func BFS(g *Graph, start int, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !g.HasFloor(start) {
		return nil, fmt.Errorf("%w: %d", ErrFloorNotFound, start)
	}

	n := len(g.floors)
	w := &walker{
		graph:   g,
		opts:    o,
		ctx:     o.Ctx,
		queue:   make([]queueItem, 0, n),
		visited: make(map[int]bool, n),
		res: &Result{
			Start:  start,
			Order:  make([]int, 0, n),
			Depth:  make(map[int]int, n),
			Parent: make(map[int]int, n),
		},
	}

	w.enqueue(start, 0, start)
	return w.res, w.loop()
}

// enqueue marks f visited at depth d and records its parent.
func (w *walker) enqueue(f, d, parent int) {
	w.visited[f] = true
	w.res.Depth[f] = d
	if d > 0 {
		w.res.Parent[f] = parent
	}
	w.queue = append(w.queue, queueItem{floor: f, depth: d})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]

		w.res.Order = append(w.res.Order, item.floor)
		if err := w.opts.OnVisit(item.floor, item.depth); err != nil {
			return fmt.Errorf("transit: OnVisit error at floor %d: %w", item.floor, err)
		}

		next := item.depth + 1
		if w.opts.MaxHops > 0 && next > w.opts.MaxHops {
			continue
		}
		for _, nb := range w.graph.adj[item.floor] {
			if !w.visited[nb] {
				w.enqueue(nb, next, item.floor)
			}
		}
	}
	return nil
}
