package products

import (
	"sort"
	"strings"
	"testing"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name  string
		found bool
	}{
		{"ATL06", true},
		{"atl06", true},
		{"Glah12", true},
		{"ILVIS2", true},
		{"ATL99", false},
		{"", false},
	}

	for _, tt := range tests {
		p, ok := Lookup(tt.name)
		if ok != tt.found {
			t.Errorf("Lookup(%q) found = %v, want %v", tt.name, ok, tt.found)
			continue
		}
		if ok && p.ShortName != strings.ToUpper(tt.name) {
			t.Errorf("Lookup(%q) short name = %s", tt.name, p.ShortName)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := Validate([]string{"ATL06", "glah12", "ILATM1B"}); err != nil {
		t.Errorf("Validate() failed for known products: %v", err)
	}

	err := Validate([]string{"ATL06", "MOD10A1"})
	if err == nil {
		t.Fatal("Validate() = nil error for unknown product")
	}
	if !strings.Contains(err.Error(), "MOD10A1") {
		t.Errorf("error %q does not name the unknown product", err)
	}
	if !strings.Contains(err.Error(), "ATL03") {
		t.Errorf("error %q does not list supported products", err)
	}
}

func TestShortNamesSorted(t *testing.T) {
	names := ShortNames()
	if len(names) != 14 {
		t.Fatalf("expected 14 products, got %d", len(names))
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("short names not sorted: %v", names)
	}
}
