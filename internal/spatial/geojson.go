package spatial

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ReadGeoJSON reads polygon features from a GeoJSON (.json, .geojson) file.
// Polygon, MultiPolygon and LineString geometries contribute vertices; other
// geometry types are skipped. GeoJSON's implicit CRS is geographic WGS84, but
// a legacy top-level "crs" member is honored when present.
func ReadGeoJSON(path string) (*PolygonSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", path, ErrFormat, err)
	}

	ps := &PolygonSet{
		Path: path,
		CRS:  legacyCRS(data),
	}
	for i, f := range fc.Features {
		id := featureID(f.ID, i)
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			ps.Polygons = append(ps.Polygons, fromOrbPolygon(id, g))
		case orb.MultiPolygon:
			// Every part of a MultiPolygon shares the feature id.
			for _, p := range g {
				ps.Polygons = append(ps.Polygons, fromOrbPolygon(id, p))
			}
		case orb.LineString:
			ps.Polygons = append(ps.Polygons, Polygon{ID: id, Exterior: orb.Ring(g)})
		}
	}

	if len(ps.Polygons) == 0 {
		return nil, fmt.Errorf("%s: no polygon features: %w", path, ErrFormat)
	}
	return ps, nil
}

func fromOrbPolygon(id string, p orb.Polygon) Polygon {
	poly := Polygon{ID: id}
	if len(p) > 0 {
		poly.Exterior = p[0]
		poly.Interiors = p[1:]
	}
	return poly
}

// featureID renders a feature's declared GeoJSON id; features without one are
// identified by their position in the collection.
func featureID(declared interface{}, index int) string {
	switch v := declared.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.Itoa(index)
}

// legacyCRS extracts the deprecated GeoJSON "crs" member, if any. Modern
// GeoJSON (RFC 7946) dropped the member and mandates WGS84.
func legacyCRS(data []byte) string {
	var doc struct {
		CRS *struct {
			Properties struct {
				Name string `json:"name"`
			} `json:"properties"`
		} `json:"crs"`
	}
	if err := json.Unmarshal(data, &doc); err != nil || doc.CRS == nil {
		return ""
	}
	return doc.CRS.Properties.Name
}
