package input

import (
	"testing"

	"github.com/ChicagoDave/citycore/pkg/grid"
)

func record(t *testing.T) (*Surface, *[]Event) {
	t.Helper()
	var got []Event
	s := NewSurface(grid.Dims{Width: 10, Height: 10}, 16, func(e Event) { got = append(got, e) })
	return s, &got
}

func kinds(events []Event) []Kind {
	out := make([]Kind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func sameKinds(a, b []Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCellAt(t *testing.T) {
	s, _ := record(t)
	tests := []struct {
		px, py int
		want   grid.Cell
		ok     bool
	}{
		{0, 0, grid.C(0, 0), true},
		{15, 15, grid.C(0, 0), true},
		{16, 33, grid.C(1, 2), true},
		{-1, 5, grid.C(-1, 0), false},
		{160, 0, grid.C(10, 0), false},
	}
	for _, tt := range tests {
		got, ok := s.CellAt(tt.px, tt.py)
		if got != tt.want || ok != tt.ok {
			t.Errorf("CellAt(%d, %d) = %v, %v, want %v, %v", tt.px, tt.py, got, ok, tt.want, tt.ok)
		}
	}
}

func TestClickWithoutDrag(t *testing.T) {
	s, got := record(t)
	s.Press(20, 20, Primary)
	s.Motion(25, 22)
	s.Release(25, 22)

	want := []Kind{PointerDown, PointerMove, PointerUp}
	if !sameKinds(kinds(*got), want) {
		t.Errorf("events = %v, want %v", kinds(*got), want)
	}
	if (*got)[0].Button != Primary || (*got)[0].Cell != grid.C(1, 1) {
		t.Errorf("down = %v", (*got)[0])
	}
}

func TestDragAcrossCells(t *testing.T) {
	s, got := record(t)
	s.Press(20, 20, Primary)
	s.Motion(40, 20)
	s.Motion(41, 21)
	s.Motion(60, 40)
	s.Release(60, 40)

	want := []Kind{PointerDown, PointerMove, DragStart, DragMove, PointerMove, DragMove, DragEnd, PointerUp}
	if !sameKinds(kinds(*got), want) {
		t.Fatalf("events = %v, want %v", kinds(*got), want)
	}
	if (*got)[2].Cell != grid.C(1, 1) {
		t.Errorf("drag start = %v, want (1,1)", (*got)[2].Cell)
	}
	if (*got)[6].Cell != grid.C(3, 2) {
		t.Errorf("drag end = %v, want (3,2)", (*got)[6].Cell)
	}
}

func TestSecondaryPressDoesNotDrag(t *testing.T) {
	s, got := record(t)
	s.Press(20, 20, Secondary)
	s.Motion(60, 60)
	s.Release(60, 60)
	for _, e := range *got {
		if e.Kind == DragStart {
			t.Fatal("secondary button started a drag")
		}
	}
}

func TestDragLeavingGridIsClamped(t *testing.T) {
	s, got := record(t)
	s.Press(100, 100, Primary)
	s.Motion(300, 300)
	s.Release(300, 300)
	last := (*got)[len(*got)-2]
	if last.Kind != DragEnd || last.Cell != grid.C(9, 9) {
		t.Errorf("drag end = %v, want drag_end (9,9)", last)
	}
}

func TestEventValidate(t *testing.T) {
	if err := Click(grid.C(1, 1)).Validate(); err != nil {
		t.Errorf("click: %v", err)
	}
	if err := (Event{Kind: PointerDown}).Validate(); err == nil {
		t.Error("pointer_down without button should fail")
	}
	if err := (Event{Kind: "wiggle"}).Validate(); err == nil {
		t.Error("unknown kind should fail")
	}
	if len(Drag(grid.C(1, 1), grid.C(2, 2))) != 3 {
		t.Error("Drag should produce three events")
	}
}
