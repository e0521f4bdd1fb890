package timecode

import (
	"errors"
	"testing"
)

func TestNewRange(t *testing.T) {
	r, err := NewRange("0:47", "0:52", 24)
	if err != nil {
		t.Fatalf("NewRange returned error: %v", err)
	}
	if r.Start != 1128 || r.End != 1248 {
		t.Errorf("NewRange = %v, want [1128, 1248)", r)
	}
	if r.Len() != 120 {
		t.Errorf("Len = %d, want 120", r.Len())
	}
	if r.EndInclusive() != 1247 {
		t.Errorf("EndInclusive = %d, want 1247", r.EndInclusive())
	}
}

func TestNewRangeDegenerate(t *testing.T) {
	tests := []struct {
		start, end string
	}{
		{"0:52", "0:47"},
		{"1:00", "1:00"},
		{"60", "1:00"},
	}

	for _, tt := range tests {
		t.Run(tt.start+"-"+tt.end, func(t *testing.T) {
			_, err := NewRange(tt.start, tt.end, 30)
			if !errors.Is(err, ErrDegenerateRange) {
				t.Fatalf("expected ErrDegenerateRange, got %v", err)
			}
			var de *DegenerateRangeError
			if !errors.As(err, &de) {
				t.Fatalf("expected *DegenerateRangeError, got %T", err)
			}
			if de.StartTimecode != tt.start || de.EndTimecode != tt.end {
				t.Errorf("error carries %q-%q", de.StartTimecode, de.EndTimecode)
			}
		})
	}
}

func TestNewRangeSubFrameCollapse(t *testing.T) {
	// one second at 0.5 fps truncates to frame 0 for both ends
	_, err := NewRange("0", "1", 0.5)
	if !errors.Is(err, ErrDegenerateRange) {
		t.Fatalf("expected ErrDegenerateRange, got %v", err)
	}
}

func TestNewRangeMalformed(t *testing.T) {
	if _, err := NewRange("0:47", "0:5x", 24); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
	if _, err := NewRange("a", "0:52", 24); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
}
