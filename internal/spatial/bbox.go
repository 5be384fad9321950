package spatial

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// BoundingBox is an axis-aligned rectangle in geographic coordinates.
// Invariant: LonMin <= LonMax and LatMin <= LatMax.
type BoundingBox struct {
	LonMin float64
	LatMin float64
	LonMax float64
	LatMax float64
}

// NewBoundingBox builds a validated bounding box from four ordered floats.
func NewBoundingBox(lonMin, latMin, lonMax, latMax float64) (BoundingBox, error) {
	b := BoundingBox{LonMin: lonMin, LatMin: latMin, LonMax: lonMax, LatMax: latMax}
	if err := b.Validate(); err != nil {
		return BoundingBox{}, err
	}
	return b, nil
}

// BoundsOf returns the bounding box of a ring, such as a convex hull. A
// degenerate ring yields a zero-area box.
func BoundsOf(ring orb.Ring) (BoundingBox, error) {
	if len(ring) == 0 {
		return BoundingBox{}, ErrEmptyGeometry
	}
	bound := ring.Bound()
	return NewBoundingBox(bound.Min.Lon(), bound.Min.Lat(), bound.Max.Lon(), bound.Max.Lat())
}

// ParseBoundingBox parses a comma-separated "lonmin,latmin,lonmax,latmax"
// string, the form taken by the --bbox option.
func ParseBoundingBox(s string) (BoundingBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return BoundingBox{}, fmt.Errorf("bounding box %q: want 4 comma-separated values, got %d: %w",
			s, len(parts), ErrInvalidBounds)
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return BoundingBox{}, fmt.Errorf("bounding box %q: %w: %w", s, ErrInvalidBounds, err)
		}
		vals[i] = v
	}
	return NewBoundingBox(vals[0], vals[1], vals[2], vals[3])
}

// Validate checks the ordering invariant and the geographic coordinate
// ranges.
func (b BoundingBox) Validate() error {
	if b.LonMin > b.LonMax {
		return fmt.Errorf("lonmin %g > lonmax %g: %w", b.LonMin, b.LonMax, ErrInvalidBounds)
	}
	if b.LatMin > b.LatMax {
		return fmt.Errorf("latmin %g > latmax %g: %w", b.LatMin, b.LatMax, ErrInvalidBounds)
	}
	if b.LonMin < -180 || b.LonMax > 180 {
		return fmt.Errorf("longitude out of [-180, 180]: %w", ErrInvalidBounds)
	}
	if b.LatMin < -90 || b.LatMax > 90 {
		return fmt.Errorf("latitude out of [-90, 90]: %w", ErrInvalidBounds)
	}
	return nil
}

// String serializes the box as "lonmin,latmin,lonmax,latmax" with six decimal
// digits, the form consumed by the CMR bounding_box parameter.
func (b BoundingBox) String() string {
	return fmt.Sprintf("%.6f,%.6f,%.6f,%.6f", b.LonMin, b.LatMin, b.LonMax, b.LatMax)
}

// FormatPolygon serializes a ring as "lon1,lat1,lon2,lat2,...", the form
// consumed by the CMR and EGI polygon parameters.
func FormatPolygon(ring orb.Ring) string {
	parts := make([]string, 0, 2*len(ring))
	for _, p := range ring {
		parts = append(parts, fmt.Sprintf("%.6f", p.Lon()), fmt.Sprintf("%.6f", p.Lat()))
	}
	return strings.Join(parts, ",")
}
