package spatial

import (
	"fmt"
	"sort"

	"github.com/paulmach/orb"
)

// ConvexHull computes the convex hull of every exterior-ring vertex in the
// set and returns it as a closed counter-clockwise ring, the winding order
// required by the CMR polygon parameter. A single distinct point or a
// collinear point set yields a degenerate (zero-area) ring.
func ConvexHull(ps *PolygonSet) (orb.Ring, error) {
	pts := ps.Vertices()
	if len(pts) == 0 {
		return nil, fmt.Errorf("%s: %w", ps.Path, ErrEmptyGeometry)
	}

	sort.Slice(pts, func(i, j int) bool {
		if pts[i][0] != pts[j][0] {
			return pts[i][0] < pts[j][0]
		}
		return pts[i][1] < pts[j][1]
	})
	pts = dedupe(pts)

	switch len(pts) {
	case 1:
		return orb.Ring{pts[0], pts[0]}, nil
	case 2:
		return orb.Ring{pts[0], pts[1], pts[0]}, nil
	}

	// Andrew's monotone chain. Popping on cross <= 0 drops collinear
	// points; lower-then-upper concatenation walks counter-clockwise.
	lower := make([]orb.Point, 0, len(pts))
	for _, p := range pts {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}
	upper := make([]orb.Point, 0, len(pts))
	for i := len(pts) - 1; i >= 0; i-- {
		p := pts[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	hull := append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	if len(hull) == 2 {
		// All input points were collinear.
		return orb.Ring{hull[0], hull[1], hull[0]}, nil
	}
	return orb.Ring(append(hull, hull[0])), nil
}

// cross returns the z component of (a-o) x (b-o); positive when o->a->b turns
// counter-clockwise.
func cross(o, a, b orb.Point) float64 {
	return (a[0]-o[0])*(b[1]-o[1]) - (a[1]-o[1])*(b[0]-o[0])
}

func dedupe(sorted []orb.Point) []orb.Point {
	out := sorted[:1]
	for _, p := range sorted[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}
