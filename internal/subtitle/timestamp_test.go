package subtitle

import (
	"math"
	"testing"
)

func TestFormatSRTTimestamp(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00,000"},
		{3.5, "00:00:03,500"},
		{3661.234, "01:01:01,234"},
		{0.9996, "00:00:01,000"},
		{59.9999, "00:01:00,000"},
		{3599.9996, "01:00:00,000"},
		{0.001, "00:00:00,001"},
		{12.0004, "00:00:12,000"},
		{86400, "24:00:00,000"},
		{360000.5, "100:00:00,500"},
		{-1, "00:00:00,000"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatSRTTimestamp(tt.seconds); got != tt.want {
				t.Errorf("FormatSRTTimestamp(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestFormatVTTTimestamp(t *testing.T) {
	if got := FormatVTTTimestamp(3661.234); got != "01:01:01.234" {
		t.Errorf("FormatVTTTimestamp = %q", got)
	}
}

func TestParseSRTTimestamp(t *testing.T) {
	tests := []struct {
		ts   string
		want float64
	}{
		{"00:00:03,500", 3.5},
		{"01:01:01,234", 3661.234},
		{"100:00:00,500", 360000.5},
		{"00:00:01.000", 1},
		{"01:05.250", 65.25},
	}

	for _, tt := range tests {
		got, err := ParseSRTTimestamp(tt.ts)
		if err != nil {
			t.Fatalf("ParseSRTTimestamp(%q): %v", tt.ts, err)
		}
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ParseSRTTimestamp(%q) = %v, want %v", tt.ts, got, tt.want)
		}
	}

	for _, bad := range []string{"", "1:2", "00:00:03", "00:61:00,000", "aa:bb:cc,ddd"} {
		if _, err := ParseSRTTimestamp(bad); err == nil {
			t.Errorf("ParseSRTTimestamp(%q) expected error", bad)
		}
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	segments := []Segment{
		{Start: 0, Duration: 1},
		{Start: 1.2345, Duration: 2.0001},
		{Start: 59.9995, Duration: 0.0004},
		{Start: 3599.999, Duration: 0},
		{Start: 7384.5678, Duration: 3.21},
		{Start: 0.1 + 0.2, Duration: 0.7},
	}

	for _, seg := range segments {
		start, err := ParseSRTTimestamp(FormatSRTTimestamp(seg.Start))
		if err != nil {
			t.Fatalf("parse start: %v", err)
		}
		end, err := ParseSRTTimestamp(FormatSRTTimestamp(seg.End()))
		if err != nil {
			t.Fatalf("parse end: %v", err)
		}
		if math.Abs(start-seg.Start) > 0.001 {
			t.Errorf("start %v round tripped to %v", seg.Start, start)
		}
		if math.Abs(end-seg.End()) > 0.001 {
			t.Errorf("end %v round tripped to %v", seg.End(), end)
		}
	}
}
