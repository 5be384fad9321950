package spatial

import "errors"

var (
	// ErrFormat is returned when a file is unreadable, malformed, or
	// contains no polygon geometries.
	ErrFormat = errors.New("malformed polygon file")

	// ErrNotFound is returned when an expected archive member is missing,
	// such as a KMZ archive with no .kml entry.
	ErrNotFound = errors.New("archive member not found")

	// ErrEmptyGeometry is returned when there are no vertices to reduce.
	ErrEmptyGeometry = errors.New("empty geometry")

	// ErrInvalidBounds is returned when a bounding box is degenerate or
	// out of range.
	ErrInvalidBounds = errors.New("invalid bounding box")
)
