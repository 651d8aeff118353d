package grid

import "testing"

func TestKeyRoundTrip(t *testing.T) {
	cells := []Cell{
		{0, 0}, {1, 0}, {0, 1}, {-1, 0}, {0, -1}, {-7, 12},
		{2147483647, -2147483648}, {-2147483648, 2147483647},
	}
	seen := map[Key]Cell{}
	for _, c := range cells {
		k := c.Key()
		if got := k.Cell(); got != c {
			t.Errorf("Key(%v).Cell() = %v", c, got)
		}
		if prev, dup := seen[k]; dup {
			t.Errorf("key collision between %v and %v", prev, c)
		}
		seen[k] = c
	}
}

func TestRectOfNormalizes(t *testing.T) {
	r := RectOf(C(5, 1), C(2, 4))
	if r.Min != C(2, 1) || r.Max != C(5, 4) {
		t.Fatalf("RectOf = %+v, want min (2,1) max (5,4)", r)
	}
	if r.Width() != 4 || r.Height() != 4 {
		t.Errorf("size = %dx%d, want 4x4", r.Width(), r.Height())
	}
	n := 0
	r.Each(func(Cell) { n++ })
	if n != 16 {
		t.Errorf("Each visited %d cells, want 16", n)
	}
}

func TestBounds(t *testing.T) {
	if _, ok := Bounds(nil); ok {
		t.Error("Bounds(nil) should report empty")
	}
	r, ok := Bounds([]Cell{{3, 3}, {1, 5}, {4, 2}})
	if !ok {
		t.Fatal("Bounds should report non-empty")
	}
	if r.Min != C(1, 2) || r.Max != C(4, 5) {
		t.Errorf("Bounds = %+v", r)
	}
}

func TestDirections(t *testing.T) {
	for _, d := range Directions {
		back := C(3, 3).Step(d).Step(d.Opposite())
		if back != C(3, 3) {
			t.Errorf("%v then %v = %v, want (3,3)", d, d.Opposite(), back)
		}
		parsed, err := ParseDirection(d.String())
		if err != nil || parsed != d {
			t.Errorf("ParseDirection(%q) = %v, %v", d.String(), parsed, err)
		}
	}
	if _, err := ParseDirection("up"); err == nil {
		t.Error("expected error for unknown direction")
	}
}

func TestDimsEdge(t *testing.T) {
	d := Dims{Width: 10, Height: 8}
	tests := []struct {
		c    Cell
		edge bool
	}{
		{C(0, 4), true},
		{C(4, 0), true},
		{C(9, 4), true},
		{C(4, 7), true},
		{C(1, 1), false},
		{C(8, 6), false},
	}
	for _, tt := range tests {
		if got := d.OnEdge(tt.c); got != tt.edge {
			t.Errorf("OnEdge(%v) = %v, want %v", tt.c, got, tt.edge)
		}
	}
}
