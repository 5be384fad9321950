package subset

import (
	"fmt"

	"github.com/nsidc-tools/nsidc-subset/internal/spatial"
)

// SpatialFilter is the resolved spatial constraint of a run. BoundingBox
// always holds the granule-search box; Polygon additionally holds the convex
// hull used for server-side subsetting when the region came from a polygon
// file.
type SpatialFilter struct {
	BoundingBox spatial.BoundingBox
	Polygon     string
	FromPolygon bool
}

// ResolveSpatial turns the --bbox / --polygon options into a spatial filter.
// An explicit bounding box wins when both are supplied. Returns nil when
// neither option is set, meaning no spatial subsetting.
func ResolveSpatial(bbox, polygonPath string) (*SpatialFilter, error) {
	if bbox != "" {
		box, err := spatial.ParseBoundingBox(bbox)
		if err != nil {
			return nil, err
		}
		return &SpatialFilter{BoundingBox: box}, nil
	}
	if polygonPath == "" {
		return nil, nil
	}

	ps, err := spatial.ReadFile(polygonPath)
	if err != nil {
		return nil, err
	}
	if err := spatial.Normalize(ps); err != nil {
		return nil, err
	}
	hull, err := spatial.ConvexHull(ps)
	if err != nil {
		return nil, err
	}
	box, err := spatial.BoundsOf(hull)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", polygonPath, err)
	}
	return &SpatialFilter{
		BoundingBox: box,
		Polygon:     spatial.FormatPolygon(hull),
		FromPolygon: true,
	}, nil
}
