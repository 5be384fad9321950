package cmr

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// versionPadLength is the width CMR pads dataset version numbers to.
const versionPadLength = 3

// SearchParams represents parameters for CMR granule searches.
type SearchParams struct {
	// Collection identification
	ShortName string // Product short name, e.g. "ATL06"
	Version   string // Dataset version; queried in all zero-padded variants

	// Spatial filter
	BoundingBox string // lonmin,latmin,lonmax,latmax

	// Temporal filter
	Temporal string // start,end in ISO 8601 format

	// Pagination
	PageSize    int
	SearchAfter string // CMR-Search-After cursor, sent as a header
}

// ToURLValues converts SearchParams to URL query parameters.
func (p *SearchParams) ToURLValues() url.Values {
	values := url.Values{}

	if p.ShortName != "" {
		values.Set("short_name", p.ShortName)
	}
	for _, v := range VersionVariants(p.Version) {
		values.Add("version", v)
	}

	if p.BoundingBox != "" {
		values.Set("bounding_box", p.BoundingBox)
	}
	if p.Temporal != "" {
		values.Set("temporal", p.Temporal)
	}

	if p.PageSize > 0 {
		values.Set("page_size", strconv.Itoa(p.PageSize))
	} else {
		values.Set("page_size", strconv.Itoa(DefaultPageSize))
	}

	// Stable ordering so pagination cursors stay consistent.
	values.Add("sort_key[]", "start_date")
	values.Add("sort_key[]", "producer_granule_id")

	return values
}

// VersionVariants expands a dataset version into every zero-padded form CMR
// providers register, e.g. "4" -> ["004", "04", "4"]. An empty version yields
// no variants.
func VersionVariants(version string) []string {
	if version == "" {
		return nil
	}
	v := strings.TrimLeft(version, "0")
	if v == "" {
		v = "0"
	}
	var variants []string
	for pad := versionPadLength; pad >= len(v); pad-- {
		variants = append(variants, strings.Repeat("0", pad-len(v))+v)
	}
	return variants
}

// ValidateVersion rejects version strings wider than the CMR pad length.
func ValidateVersion(version string) error {
	if len(version) > versionPadLength {
		return fmt.Errorf("version string too long: %q", version)
	}
	return nil
}
