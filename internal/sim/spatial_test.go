package sim

import "testing"

func TestNewSpatialIndexEmpty(t *testing.T) {
	idx := NewSpatialIndex(4, 3)

	if idx.Len() != 12 {
		t.Fatalf("Len() = %d, expected 12", idx.Len())
	}
	for y := uint32(0); y < 3; y++ {
		for x := uint32(0); x < 4; x++ {
			if id, ok := idx.Get(C(x, y)); ok {
				t.Errorf("Get(%d, %d) = %d, expected empty", x, y, id)
			}
		}
	}
	if idx.Count() != 0 {
		t.Errorf("Count() = %d, expected 0", idx.Count())
	}
}

func TestSpatialIndexSetGetClear(t *testing.T) {
	idx := NewSpatialIndex(5, 5)

	idx.Set(C(2, 3), 0)
	idx.Set(C(4, 4), 7)

	if id, ok := idx.Get(C(2, 3)); !ok || id != 0 {
		t.Errorf("Get(2, 3) = (%d, %v), expected (0, true)", id, ok)
	}
	if id, ok := idx.Get(C(4, 4)); !ok || id != 7 {
		t.Errorf("Get(4, 4) = (%d, %v), expected (7, true)", id, ok)
	}
	if !idx.Occupied(C(2, 3)) {
		t.Error("Occupied(2, 3) should be true")
	}
	if idx.Count() != 2 {
		t.Errorf("Count() = %d, expected 2", idx.Count())
	}

	idx.Clear(C(2, 3))
	if _, ok := idx.Get(C(2, 3)); ok {
		t.Error("cell (2, 3) should be empty after Clear")
	}
	if idx.Count() != 1 {
		t.Errorf("Count() after Clear = %d, expected 1", idx.Count())
	}
}

func TestSpatialIndexRowMajorLayout(t *testing.T) {
	idx := NewSpatialIndex(4, 3)
	idx.Set(C(1, 2), 5)

	// index = y*width + x
	if idx.cells[2*4+1] != 6 {
		t.Errorf("cell slot = %d, expected id+1 = 6", idx.cells[2*4+1])
	}
	if c := idx.coordAt(9); c != C(1, 2) {
		t.Errorf("coordAt(9) = %v, expected (1,2)", c)
	}
}

func TestSpatialIndexOutOfBoundsPanics(t *testing.T) {
	idx := NewSpatialIndex(3, 3)

	tests := []struct {
		name string
		fn   func()
	}{
		{"get past width", func() { idx.Get(C(3, 0)) }},
		{"get past height", func() { idx.Get(C(0, 3)) }},
		{"set past width", func() { idx.Set(C(5, 1), 0) }},
		{"clear past height", func() { idx.Clear(C(1, 9)) }},
		{"store NoAgent", func() { idx.Set(C(0, 0), NoAgent) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tc.fn()
		})
	}
}

func TestWindowClipping(t *testing.T) {
	tests := []struct {
		name                 string
		center, radius, size uint32
		lo, hi               uint32
	}{
		{"interior", 10, 2, 30, 8, 12},
		{"left edge", 1, 2, 30, 0, 3},
		{"right edge", 29, 2, 30, 27, 29},
		{"radius covers grid", 1, 100, 3, 0, 2},
		{"single cell", 0, 8, 1, 0, 0},
		{"zero radius", 4, 0, 9, 4, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lo, hi := window(tc.center, tc.radius, tc.size)
			if lo != tc.lo || hi != tc.hi {
				t.Errorf("window(%d, %d, %d) = [%d, %d], expected [%d, %d]",
					tc.center, tc.radius, tc.size, lo, hi, tc.lo, tc.hi)
			}
		})
	}
}
