// Package spatial extracts polygon geometries from georeferenced vector files
// (GeoJSON, KML/KMZ, ESRI shapefiles) and reduces them to the bounding
// geometries consumed by granule search and subsetting queries: an axis-aligned
// bounding box and a counter-clockwise convex hull ring.
package spatial

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
)

// Polygon is a single polygon feature read from a source file. Interior rings
// are retained for completeness but play no part in hull or bounds
// computation, since every interior vertex lies inside the exterior ring.
// ID is the feature identifier within the source file: the feature's declared
// id when the format carries one, otherwise its zero-based position in file
// order.
type Polygon struct {
	ID        string
	Exterior  orb.Ring
	Interiors []orb.Ring
}

// PolygonSet holds every polygon read from one source file, in file order.
// CRS is the declared source coordinate reference system; the empty string
// means geographic WGS84 longitude/latitude.
type PolygonSet struct {
	Path     string
	CRS      string
	Polygons []Polygon
}

// Vertices returns all exterior-ring vertices of the set, in file order.
func (ps *PolygonSet) Vertices() []orb.Point {
	var pts []orb.Point
	for _, p := range ps.Polygons {
		pts = append(pts, p.Exterior...)
	}
	return pts
}

type readFunc func(path string) (*PolygonSet, error)

// readers maps a normalized file extension to the reader that handles it.
// The set of supported formats is closed; anything else is a format error.
var readers = map[string]readFunc{
	".json":    ReadGeoJSON,
	".geojson": ReadGeoJSON,
	".kml":     ReadKML,
	".kmz":     ReadKMZ,
	".shp":     ReadShapefile,
	".zip":     ReadShapefileZip,
}

// ReadFile reads the polygon file at path, dispatching on its extension. A
// trailing bracket suffix selects specific features by identifier, e.g.
// "regions.geojson[0,2]" reads only the features with ids 0 and 2.
func ReadFile(path string) (*PolygonSet, error) {
	base, ids := splitIdentifiers(path)
	ext := strings.ToLower(filepath.Ext(base))
	read, ok := readers[ext]
	if !ok {
		return nil, fmt.Errorf("%s: unsupported polygon file type %q: %w", base, ext, ErrFormat)
	}
	ps, err := read(base)
	if err != nil {
		return nil, err
	}
	if len(ids) > 0 {
		if err := ps.SelectIDs(ids); err != nil {
			return nil, err
		}
	}
	return ps, nil
}

// splitIdentifiers separates an optional trailing "[id1,id2,...]" feature
// selector from the file path.
func splitIdentifiers(path string) (string, []string) {
	if !strings.HasSuffix(path, "]") {
		return path, nil
	}
	i := strings.LastIndex(path, "[")
	if i < 0 {
		return path, nil
	}
	var ids []string
	for _, id := range strings.Split(path[i+1:len(path)-1], ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return path[:i], ids
}

// SelectIDs reduces the set to the features whose ID is in ids. Selecting no
// matching feature is an error.
func (ps *PolygonSet) SelectIDs(ids []string) error {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var kept []Polygon
	for _, p := range ps.Polygons {
		if want[p.ID] {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return fmt.Errorf("%s: no features match identifiers %s: %w",
			ps.Path, strings.Join(ids, ","), ErrNotFound)
	}
	ps.Polygons = kept
	return nil
}
