package route

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/indoornav/world"
)

// ErrUnknownArea is returned by Stops for an id the world does not know.
var ErrUnknownArea = errors.New("route: unknown area")

// AreaStop turns an area into a stop at its entrance, named in lang.
func AreaStop(a world.FloorArea, lang string) Stop {
	return Stop{ID: a.ID, Point: a.EntrancePoint, Name: a.Name.In(lang)}
}

// Stops resolves area ids into stops, keeping their order.
func (p *Planner) Stops(ids []string, lang string) ([]Stop, error) {
	out := make([]Stop, 0, len(ids))
	for _, id := range ids {
		a, ok := p.world.Area(id)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownArea, id)
		}
		out = append(out, AreaStop(a, lang))
	}
	return out, nil
}
