// Package products holds the registry of NSIDC altimetry products the
// subsetter accepts.
package products

import (
	"fmt"
	"sort"
	"strings"
)

// Product identifies one NSIDC altimetry dataset.
type Product struct {
	ShortName string
	Title     string
}

// catalog is the closed set of supported products: ICESat/GLAS, Operation
// IceBridge, and ICESat-2/ATLAS.
var catalog = map[string]Product{
	// ICESat/GLAS
	"GLAH12": {"GLAH12", "GLAS/ICESat L2 Antarctic and Greenland Ice Sheet Altimetry"},
	// Operation IceBridge
	"ILATM2":  {"ILATM2", "IceBridge Airborne Topographic Mapper Icessn Product"},
	"ILATM1B": {"ILATM1B", "IceBridge Airborne Topographic Mapper QFIT Elevation"},
	"ILVIS1B": {"ILVIS1B", "IceBridge LVIS Geolocated Return Energy Waveforms"},
	"ILVIS2":  {"ILVIS2", "IceBridge Land, Vegetation and Ice Sensor Elevation Product"},
	// ICESat-2/ATLAS
	"ATL03": {"ATL03", "Global Geolocated Photon Data"},
	"ATL04": {"ATL04", "Normalized Relative Backscatter"},
	"ATL06": {"ATL06", "Land Ice Height"},
	"ATL07": {"ATL07", "Sea Ice Height"},
	"ATL08": {"ATL08", "Land and Vegetation Height"},
	"ATL09": {"ATL09", "Atmospheric Layer Characteristics"},
	"ATL10": {"ATL10", "Sea Ice Freeboard"},
	"ATL12": {"ATL12", "Ocean Surface Height"},
	"ATL13": {"ATL13", "Inland Water Surface Height"},
}

// Lookup returns the product registered under shortName.
func Lookup(shortName string) (Product, bool) {
	p, ok := catalog[strings.ToUpper(shortName)]
	return p, ok
}

// Validate checks that every name is a registered product short name.
func Validate(names []string) error {
	for _, name := range names {
		if _, ok := Lookup(name); !ok {
			return fmt.Errorf("unknown product %q, supported: %s", name, strings.Join(ShortNames(), ", "))
		}
	}
	return nil
}

// ShortNames returns the registered short names in sorted order.
func ShortNames() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
