package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestRectCentered(t *testing.T) {
	tests := []struct {
		name     string
		outer    Rect
		w, h     int
		expected Rect
	}{
		{"even fit", NewRect(0, 0, 20, 10), 10, 4, NewRect(5, 3, 10, 4)},
		{"odd remainder", NewRect(0, 0, 21, 11), 10, 4, NewRect(5, 3, 10, 4)},
		{"offset outer", NewRect(2, 4, 10, 10), 4, 2, NewRect(5, 8, 4, 2)},
		{"larger than outer", NewRect(0, 0, 4, 4), 8, 2, NewRect(-2, 1, 8, 2)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.outer.Centered(tc.w, tc.h); got != tc.expected {
				t.Errorf("Centered(%d, %d) = %+v, expected %+v", tc.w, tc.h, got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestMeanTicksPerTag(t *testing.T) {
	if got := (RunSummary{Ticks: 10}).MeanTicksPerTag(); got != 0 {
		t.Errorf("MeanTicksPerTag without transfers = %v, expected 0", got)
	}
	if got := (RunSummary{Ticks: 30, Transfers: 4}).MeanTicksPerTag(); got != 7.5 {
		t.Errorf("MeanTicksPerTag = %v, expected 7.5", got)
	}
}
