package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/indoornav/geom"
	"github.com/katalvlaran/indoornav/route"
)

// ErrBadPoint is returned for a malformed "x,y,floor" argument.
var ErrBadPoint = errors.New("cli: point must be x,y,floor")

// defaultStart is the mall entrance of the demo.
const defaultStart = "50,92,1"

type routeFlags struct {
	from   string
	stops  []string
	areas  []string
	asJSON bool
}

func (f *routeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", defaultStart, "start point as x,y,floor")
	cmd.Flags().StringArrayVar(&f.stops, "stop", nil, "stop point as x,y,floor (repeatable)")
	cmd.Flags().StringSliceVarP(&f.areas, "areas", "a", nil, "area ids to visit (comma separated)")
}

func (c *CLI) routeCommand() *cobra.Command {
	var flags routeFlags
	cmd := &cobra.Command{
		Use:   "route",
		Short: "Plan a route through the given stops",
		Example: `  indoornav route --areas f1_produce,f2_frozen
  indoornav route --from 50,92,1 --stop 20,51,1 --lang hi
  indoornav route -a f4_cafe --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, e, err := c.planRoute(cmd.Context(), flags)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if flags.asJSON {
				return writeRouteJSON(out, res)
			}
			printRoute(out, res, e.cfg.Lang)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "print the segments as JSON")
	return cmd
}

// planRoute resolves the flags into stops and plans the route within the
// configured timeout.
func (c *CLI) planRoute(ctx context.Context, flags routeFlags) (route.Result, *env, error) {
	e, err := c.load(ctx)
	if err != nil {
		return route.Result{}, nil, err
	}
	start, err := parsePoint(flags.from)
	if err != nil {
		return route.Result{}, nil, fmt.Errorf("--from: %w", err)
	}

	var stops []route.Stop
	for i, s := range flags.stops {
		p, err := parsePoint(s)
		if err != nil {
			return route.Result{}, nil, fmt.Errorf("--stop %q: %w", s, err)
		}
		stops = append(stops, route.Stop{Point: p, Name: fmt.Sprintf("stop %d", i+1)})
	}
	fromAreas, err := e.planner.Stops(flags.areas, e.cfg.Lang)
	if err != nil {
		return route.Result{}, nil, err
	}
	stops = append(stops, fromAreas...)
	if len(stops) == 0 {
		return route.Result{}, nil, errors.New("nothing to visit: pass --stop or --areas")
	}

	if e.cfg.Route.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Route.Timeout)
		defer cancel()
	}
	prog := newProgress(loggerFromContext(ctx))
	res := e.planner.Plan(ctx, start, stops)
	prog.done("route planned", "stops", len(stops), "segments", len(res.Segments))
	return res, e, nil
}

// parsePoint parses "x,y,floor".
func parsePoint(s string) (geom.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return geom.Point{}, fmt.Errorf("%w: %q", ErrBadPoint, s)
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	floor, errF := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err := errors.Join(errX, errY, errF); err != nil {
		return geom.Point{}, fmt.Errorf("%w: %q", ErrBadPoint, s)
	}
	p := geom.Pt(x, y, floor)
	if !geom.InPlane(p) {
		return geom.Point{}, fmt.Errorf("%w: %q is outside 0..100", ErrBadPoint, s)
	}
	return p, nil
}

func writeRouteJSON(w io.Writer, res route.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res.Segments)
}

func printRoute(w io.Writer, res route.Result, lang string) {
	fmt.Fprintln(w, styleTitle.Render("Route"))
	for i, seg := range res.Segments {
		line := styleFloor.Render(fmt.Sprintf("floor %d", seg.Floor)) + " " + styleValue.Render(seg.Instruction)
		fmt.Fprintf(w, "%2d %s\n", i+1, line)
		detail := fmt.Sprintf("%d points · %.1f", len(seg.Points), seg.Length())
		if seg.Fallback {
			detail += " · straight line"
		}
		printDetail(w, "%s", detail)
	}
	fmt.Fprintln(w)
	printKeyValue(w, "distance", styleNumber.Render(fmt.Sprintf("%.1f", res.Distance())))
	printKeyValue(w, "language", lang)

	if res.Complete {
		printSuccess(w, "visited %d stops", len(res.Visited))
		return
	}
	printWarning(w, "route stopped after %d of %d stops: %v",
		len(res.Visited), len(res.Visited)+len(res.Unvisited), res.Err)
	for _, s := range res.Unvisited {
		printDetail(w, "not visited: %s (floor %d)", s.Name, s.Point.Floor)
	}
}
