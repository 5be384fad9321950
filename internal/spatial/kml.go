package spatial

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// kmlPolygon mirrors the KML <Polygon> element. MultiGeometry and Placemark
// nesting is handled by the token walk in decodeKML, so only the polygon
// subtree needs a schema here.
type kmlPolygon struct {
	XMLName xml.Name `xml:"Polygon"`
	Outer   struct {
		LinearRing struct {
			Coordinates string `xml:"coordinates"`
		} `xml:"LinearRing"`
	} `xml:"outerBoundaryIs"`
	Inner []struct {
		LinearRing struct {
			Coordinates string `xml:"coordinates"`
		} `xml:"LinearRing"`
	} `xml:"innerBoundaryIs"`
}

// ReadKML reads polygon geometries from a keyhole markup language (.kml) file.
// KML coordinates are always geographic WGS84 lon,lat[,alt]; altitude is
// discarded.
func ReadKML(path string) (*PolygonSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer f.Close()
	return decodeKML(path, f)
}

// ReadKMZ reads polygon geometries from a compressed keyhole markup language
// (.kmz) archive. An archive with no .kml entry is an error; when several are
// present the first in archive order is used and the rest are ignored.
func ReadKMZ(path string) (*PolygonSet, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", path, ErrFormat, err)
	}
	defer zr.Close()

	var entries []*zip.File
	for _, f := range zr.File {
		if strings.HasSuffix(strings.ToLower(f.Name), ".kml") {
			entries = append(entries, f)
		}
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s: no .kml entry in archive: %w", path, ErrNotFound)
	}
	if len(entries) > 1 {
		slog.Warn("kmz archive contains multiple .kml entries, using first",
			"path", path, "entry", entries[0].Name, "count", len(entries))
	}

	rc, err := entries[0].Open()
	if err != nil {
		return nil, fmt.Errorf("%s: open %s: %w", path, entries[0].Name, err)
	}
	defer rc.Close()
	return decodeKML(path, rc)
}

// decodeKML walks the XML token stream and decodes every <Polygon> element,
// wherever it is nested (Document, Folder, Placemark, MultiGeometry).
func decodeKML(path string, r io.Reader) (*PolygonSet, error) {
	dec := xml.NewDecoder(r)
	ps := &PolygonSet{Path: path}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %w", path, ErrFormat, err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Polygon" {
			continue
		}

		var kp kmlPolygon
		if err := dec.DecodeElement(&kp, &se); err != nil {
			return nil, fmt.Errorf("%s: %w: %w", path, ErrFormat, err)
		}

		exterior, err := parseKMLCoordinates(kp.Outer.LinearRing.Coordinates)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %w", path, ErrFormat, err)
		}
		poly := Polygon{ID: strconv.Itoa(len(ps.Polygons)), Exterior: exterior}
		for _, inner := range kp.Inner {
			ring, err := parseKMLCoordinates(inner.LinearRing.Coordinates)
			if err != nil {
				return nil, fmt.Errorf("%s: %w: %w", path, ErrFormat, err)
			}
			poly.Interiors = append(poly.Interiors, ring)
		}
		ps.Polygons = append(ps.Polygons, poly)
	}

	if len(ps.Polygons) == 0 {
		return nil, fmt.Errorf("%s: no Polygon elements: %w", path, ErrFormat)
	}
	return ps, nil
}

// parseKMLCoordinates parses a KML coordinate list: whitespace-separated
// lon,lat[,alt] tuples.
func parseKMLCoordinates(s string) (orb.Ring, error) {
	var ring orb.Ring
	for _, tuple := range strings.Fields(s) {
		parts := strings.Split(tuple, ",")
		if len(parts) < 2 {
			return nil, fmt.Errorf("coordinate tuple %q: want lon,lat[,alt]", tuple)
		}
		lon, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return nil, fmt.Errorf("coordinate tuple %q: %w", tuple, err)
		}
		lat, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("coordinate tuple %q: %w", tuple, err)
		}
		ring = append(ring, orb.Point{lon, lat})
	}
	if len(ring) == 0 {
		return nil, fmt.Errorf("empty coordinate list")
	}
	return ring, nil
}
