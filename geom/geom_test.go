package geom_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/indoornav/geom"
)

func TestDistance_IgnoresFloor(t *testing.T) {
	a := geom.Pt(0, 0, 1)
	b := geom.Pt(3, 4, 7)
	assert.InDelta(t, 5.0, geom.Distance(a, b), 1e-12)
	assert.InDelta(t, 5.0, geom.Distance(b, a), 1e-12)
	assert.Zero(t, geom.Distance(a, a))
}

func TestFloorAwareDistance(t *testing.T) {
	cases := []struct {
		name     string
		from, to geom.Point
		penalty  float64
		want     float64
	}{
		{"SameFloor", geom.Pt(50, 92, 1), geom.Pt(20, 51, 1), geom.DefaultFloorPenalty, math.Hypot(30, 41)},
		{"OneUp", geom.Pt(0, 0, 1), geom.Pt(3, 4, 2), geom.DefaultFloorPenalty, 1005},
		{"TwoDown", geom.Pt(0, 0, 3), geom.Pt(0, 0, 1), geom.DefaultFloorPenalty, 2000},
		{"CustomPenalty", geom.Pt(0, 0, 1), geom.Pt(0, 0, 2), 10, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, geom.FloorAwareDistance(tc.from, tc.to, tc.penalty), 1e-9)
		})
	}
}

// TestFloorAwareDistance_SameFloorAlwaysWins pins the ordering guarantee:
// the farthest same-floor point is still nearer than the closest point
// one floor away.
func TestFloorAwareDistance_SameFloorAlwaysWins(t *testing.T) {
	from := geom.Pt(0, 0, 2)
	farSame := geom.Pt(100, 100, 2)
	closeOther := geom.Pt(0, 0, 3)
	assert.Less(t,
		geom.FloorAwareDistance(from, farSame, geom.DefaultFloorPenalty),
		geom.FloorAwareDistance(from, closeOther, geom.DefaultFloorPenalty))
}

func TestInPlane(t *testing.T) {
	assert.True(t, geom.InPlane(geom.Pt(0, 0, 1)))
	assert.True(t, geom.InPlane(geom.Pt(100, 100, 1)))
	assert.False(t, geom.InPlane(geom.Pt(-0.5, 10, 1)))
	assert.False(t, geom.InPlane(geom.Pt(10, 100.5, 1)))
}

func TestRect_ContainsIsClosed(t *testing.T) {
	r := geom.RectXYWH(40, 10, 25, 25)
	assert.True(t, r.Contains(geom.Pt(40, 10, 1)), "corner")
	assert.True(t, r.Contains(geom.Pt(65, 35, 1)), "far corner")
	assert.True(t, r.Contains(geom.Pt(52.5, 20, 1)))
	assert.False(t, r.Contains(geom.Pt(52.5, 36, 1)), "entrance point just below")
	assert.Equal(t, geom.Pt(52.5, 22.5, 4), r.Center(4))
	assert.Equal(t, 25.0, r.Width())
	assert.Equal(t, 25.0, r.Height())
}

func TestPoint_Helpers(t *testing.T) {
	p := geom.Pt(2.5, 45, 1)
	q := p.OnFloor(2)
	assert.Equal(t, 2, q.Floor)
	assert.True(t, p.SameSpot(q))
	assert.NotEqual(t, p, q)
	assert.Equal(t, "(2.5, 45)@1", p.String())
}
