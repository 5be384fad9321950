package spatial

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoTrianglesKML = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <Folder>
      <Placemark>
        <name>west triangle</name>
        <Polygon>
          <outerBoundaryIs><LinearRing>
            <coordinates>0,0,0 1,0,0 0.5,1,0 0,0,0</coordinates>
          </LinearRing></outerBoundaryIs>
        </Polygon>
      </Placemark>
      <Placemark>
        <name>east triangle</name>
        <MultiGeometry>
          <Polygon>
            <outerBoundaryIs><LinearRing>
              <coordinates>3,0 4,0 3.5,1 3,0</coordinates>
            </LinearRing></outerBoundaryIs>
          </Polygon>
        </MultiGeometry>
      </Placemark>
    </Folder>
  </Document>
</kml>`

func writeKMZ(t *testing.T, name string, entries [][2]string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, entry := range entries {
		w, err := zw.Create(entry[0])
		require.NoError(t, err)
		_, err = w.Write([]byte(entry[1]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestReadKMLTwoTriangles(t *testing.T) {
	path := writeTemp(t, "triangles.kml", twoTrianglesKML)

	ps, err := ReadKML(path)
	require.NoError(t, err)
	require.Len(t, ps.Polygons, 2)
	assert.Len(t, ps.Polygons[0].Exterior, 4)
	assert.Empty(t, ps.CRS, "KML coordinates are always WGS84")
}

func TestReadKMZHullOfTwoTriangles(t *testing.T) {
	path := writeKMZ(t, "triangles.kmz", [][2]string{{"doc.kml", twoTrianglesKML}})

	ps, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, ps.Polygons, 2)

	hull, err := ConvexHull(ps)
	require.NoError(t, err)
	// Six input vertices reduce to the four outer hull corners.
	assert.Len(t, hull, 5)
	box, err := BoundsOf(hull)
	require.NoError(t, err)
	assert.Equal(t, "0.000000,0.000000,4.000000,1.000000", box.String())
}

func TestReadKMZNoKMLEntry(t *testing.T) {
	path := writeKMZ(t, "empty.kmz", [][2]string{{"readme.txt", "no kml here"}})

	_, err := ReadKMZ(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "empty.kmz")
}

func TestReadKMZFirstEntryWins(t *testing.T) {
	path := writeKMZ(t, "multi.kmz", [][2]string{
		{"a.kml", twoTrianglesKML},
		{"b.kml", `<?xml version="1.0"?><kml><Placemark><Polygon>
		  <outerBoundaryIs><LinearRing><coordinates>9,9 10,9 10,10 9,9</coordinates></LinearRing></outerBoundaryIs>
		</Polygon></Placemark></kml>`},
	})

	ps, err := ReadKMZ(path)
	require.NoError(t, err)
	// a.kml comes first in archive order; b.kml is ignored.
	assert.Len(t, ps.Polygons, 2)
	assert.Equal(t, 0.0, ps.Polygons[0].Exterior[0].Lon())
}

func TestReadKMLMalformed(t *testing.T) {
	// Unterminated Polygon element.
	path := writeTemp(t, "broken.kml", `<?xml version="1.0"?>
	<kml><Document><Placemark><Polygon>
	  <outerBoundaryIs><LinearRing><coordinates>0,0 1,1</coordinates></LinearRing>
	</Document></kml>`)

	_, err := ReadKML(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFormat)
	assert.Contains(t, err.Error(), "broken.kml")
}

func TestReadKMLBadCoordinates(t *testing.T) {
	path := writeTemp(t, "badcoords.kml", `<?xml version="1.0"?>
	<kml><Placemark><Polygon>
	  <outerBoundaryIs><LinearRing><coordinates>not-a-number,68</coordinates></LinearRing></outerBoundaryIs>
	</Polygon></Placemark></kml>`)

	_, err := ReadKML(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFormat)
}
