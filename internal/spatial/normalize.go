package spatial

import (
	"fmt"
	"strings"

	"github.com/ctessum/geom/proj"
	"github.com/paulmach/orb"
)

// WGS84 is the target coordinate reference system of the pipeline, as a PROJ
// string.
const WGS84 = "+proj=longlat +datum=WGS84 +no_defs"

// Normalize reprojects every vertex of the set to geographic WGS84
// longitude/latitude. It is a no-op when the declared source CRS already is
// geographic WGS84 or is unspecified.
func Normalize(ps *PolygonSet) error {
	if isGeographicWGS84(ps.CRS) {
		return nil
	}

	src, err := proj.Parse(ps.CRS)
	if err != nil {
		return fmt.Errorf("%s: parse CRS %q: %w", ps.Path, ps.CRS, err)
	}
	dst, err := proj.Parse(WGS84)
	if err != nil {
		return fmt.Errorf("parse target CRS: %w", err)
	}
	transform, err := src.NewTransform(dst)
	if err != nil {
		return fmt.Errorf("%s: build transform from %q: %w", ps.Path, ps.CRS, err)
	}

	for i := range ps.Polygons {
		if err := transformRing(ps.Polygons[i].Exterior, transform); err != nil {
			return fmt.Errorf("%s: %w", ps.Path, err)
		}
		for _, ring := range ps.Polygons[i].Interiors {
			if err := transformRing(ring, transform); err != nil {
				return fmt.Errorf("%s: %w", ps.Path, err)
			}
		}
	}
	ps.CRS = ""
	return nil
}

func transformRing(ring orb.Ring, transform proj.Transformer) error {
	for i := range ring {
		x, y, err := transform(ring[i][0], ring[i][1])
		if err != nil {
			return fmt.Errorf("reproject (%g, %g): %w", ring[i][0], ring[i][1], err)
		}
		ring[i][0], ring[i][1] = x, y
	}
	return nil
}

// isGeographicWGS84 reports whether a CRS identifier already denotes
// geographic WGS84 coordinates. It recognizes the common aliases found in
// GeoJSON crs members and shapefile .prj sidecars.
func isGeographicWGS84(crs string) bool {
	s := strings.TrimSpace(crs)
	if s == "" {
		return true
	}
	switch strings.ToUpper(s) {
	case "EPSG:4326", "WGS84", "CRS84", "OGC:CRS84",
		"URN:OGC:DEF:CRS:OGC:1.3:CRS84",
		"URN:OGC:DEF:CRS:EPSG::4326":
		return true
	}
	// PROJ strings for unprojected WGS84.
	if strings.Contains(s, "+proj=longlat") && strings.Contains(s, "WGS84") {
		return true
	}
	// ESRI WKT for the WGS84 geographic coordinate system.
	upper := strings.ToUpper(s)
	if strings.HasPrefix(upper, "GEOGCS") &&
		(strings.Contains(upper, "GCS_WGS_1984") || strings.Contains(upper, "WGS 84") || strings.Contains(upper, "WGS_1984")) {
		return true
	}
	return false
}
