package subset

import (
	"testing"
	"time"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2019-06-22", time.Date(2019, 6, 22, 0, 0, 0, 0, time.UTC)},
		{"2019-06-22T00:00:00", time.Date(2019, 6, 22, 0, 0, 0, 0, time.UTC)},
		{"2019-06-22 13:45:00", time.Date(2019, 6, 22, 13, 45, 0, 0, time.UTC)},
		{"2019-06-22T13:45:00Z", time.Date(2019, 6, 22, 13, 45, 0, 0, time.UTC)},
		{"2019-06-22T13:45:00.5Z", time.Date(2019, 6, 22, 13, 45, 0, 5e8, time.UTC)},
		{" 2019-06-22 ", time.Date(2019, 6, 22, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got, err := ParseTime(tt.input)
		if err != nil {
			t.Errorf("ParseTime(%q) failed: %v", tt.input, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseTime(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestParseTimeInvalid(t *testing.T) {
	for _, input := range []string{"", "yesterday", "22-06-2019"} {
		if _, err := ParseTime(input); err == nil {
			t.Errorf("ParseTime(%q) = nil error", input)
		}
	}
}

func TestFormatTemporal(t *testing.T) {
	got, err := FormatTemporal("2019-06-22", "2019-06-23T14:00:00")
	if err != nil {
		t.Fatalf("FormatTemporal() failed: %v", err)
	}
	want := "2019-06-22T00:00:00Z,2019-06-23T14:00:00Z"
	if got != want {
		t.Errorf("FormatTemporal() = %q, want %q", got, want)
	}
}

func TestFormatTemporalEndBeforeStart(t *testing.T) {
	if _, err := FormatTemporal("2019-06-23", "2019-06-22"); err == nil {
		t.Error("FormatTemporal() = nil error for reversed range")
	}
}
