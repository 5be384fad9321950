package spatial

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	shp "github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
)

// shapefileComponents are the mandatory members of a shapefile component set.
var shapefileComponents = []string{".shp", ".shx", ".dbf"}

// ReadShapefile reads polygon features from an ESRI shapefile. The projection
// is taken from the sidecar .prj file when present; otherwise the coordinates
// are assumed to be geographic WGS84.
func ReadShapefile(path string) (*PolygonSet, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", path, ErrFormat, err)
	}
	defer r.Close()

	ps := &PolygonSet{
		Path: path,
		CRS:  readProjectionSidecar(path),
	}
	for r.Next() {
		n, shape := r.Shape()
		switch s := shape.(type) {
		case *shp.Polygon:
			ps.Polygons = append(ps.Polygons, polygonsFromParts(strconv.Itoa(n), s.Points, s.Parts)...)
		case *shp.PolyLine:
			ps.Polygons = append(ps.Polygons, polygonsFromParts(strconv.Itoa(n), s.Points, s.Parts)...)
		}
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", path, ErrFormat, err)
	}
	return ps, nil
}

// ReadShapefileZip reads polygon features from a .zip archive containing a
// shapefile component set. The archive must carry the .shp/.shx/.dbf triplet;
// members are extracted to a temporary directory for reading.
func ReadShapefileZip(path string) (*PolygonSet, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", path, ErrFormat, err)
	}
	defer zr.Close()

	members := make(map[string]*zip.File)
	for _, f := range zr.File {
		ext := strings.ToLower(filepath.Ext(f.Name))
		if _, seen := members[ext]; !seen {
			members[ext] = f
		}
	}
	var missing []string
	for _, ext := range shapefileComponents {
		if _, ok := members[ext]; !ok {
			missing = append(missing, ext)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s: archive missing shapefile components %s: %w",
			path, strings.Join(missing, ","), ErrFormat)
	}

	tmp, err := os.MkdirTemp("", "nsidc-subset-shp-")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer os.RemoveAll(tmp)

	// Extract under one common basename so the sidecar lookup works.
	for ext, f := range members {
		if err := extractZipMember(f, filepath.Join(tmp, "layer"+ext)); err != nil {
			return nil, fmt.Errorf("%s: extract %s: %w", path, f.Name, err)
		}
	}

	ps, err := ReadShapefile(filepath.Join(tmp, "layer.shp"))
	if err != nil {
		return nil, err
	}
	ps.Path = path
	return ps, nil
}

func extractZipMember(f *zip.File, dest string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// polygonsFromParts splits a shapefile point list on its parts index table.
// The first ring of a record is the exterior; subsequent rings are interiors.
func polygonsFromParts(id string, points []shp.Point, parts []int32) []Polygon {
	rings := make([]orb.Ring, 0, len(parts))
	for i, start := range parts {
		end := len(points)
		if i+1 < len(parts) {
			end = int(parts[i+1])
		}
		if int(start) >= end {
			continue
		}
		ring := make(orb.Ring, 0, end-int(start))
		for _, pt := range points[start:end] {
			ring = append(ring, orb.Point{pt.X, pt.Y})
		}
		rings = append(rings, ring)
	}
	if len(rings) == 0 {
		return nil
	}
	return []Polygon{{ID: id, Exterior: rings[0], Interiors: rings[1:]}}
}

// readProjectionSidecar returns the WKT contents of the .prj file next to the
// given .shp file, or the empty string (assume WGS84) when absent.
func readProjectionSidecar(shpPath string) string {
	prj := strings.TrimSuffix(shpPath, filepath.Ext(shpPath)) + ".prj"
	data, err := os.ReadFile(prj)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
