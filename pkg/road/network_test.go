package road

import (
	"image/color"
	"math/rand"
	"testing"

	"github.com/ChicagoDave/citycore/pkg/grid"
)

type recordingOverlay struct {
	shown   []grid.Rect
	cleared int
	last    color.Color
}

func (o *recordingOverlay) Show(r grid.Rect, c color.Color) {
	o.shown = append(o.shown, r)
	o.last = c
}

func (o *recordingOverlay) Clear() { o.cleared++ }

func newTestNetwork(t *testing.T) (*Network, *[][]Cell, *recordingOverlay) {
	t.Helper()
	var events [][]Cell
	ov := &recordingOverlay{}
	n := New(Options{
		Overlay:  ov,
		OnChange: func(cells []Cell) { events = append(events, cells) },
	})
	return n, &events, ov
}

func mustAt(t *testing.T, n *Network, c grid.Cell) Connections {
	t.Helper()
	conn, ok := n.At(c)
	if !ok {
		t.Fatalf("no road at %v", c)
	}
	return conn
}

func assertSymmetric(t *testing.T, n *Network) {
	t.Helper()
	if r := n.Verify(); !r.Valid {
		for _, e := range r.Errors {
			t.Errorf("topology: %s", e.Message)
		}
	}
}

func TestCommitHorizontalThreeCells(t *testing.T) {
	n, events, _ := newTestNetwork(t)
	n.CommitSegment(grid.C(0, 0), grid.C(2, 0))

	want := []struct {
		c    grid.Cell
		conn Connections
		a    Archetype
	}{
		{grid.C(0, 0), Connections{Right: true}, HorizontalLeftEnd},
		{grid.C(1, 0), Connections{Left: true, Right: true}, Horizontal},
		{grid.C(2, 0), Connections{Left: true}, HorizontalRightEnd},
	}
	for _, w := range want {
		got := mustAt(t, n, w.c)
		if got != w.conn {
			t.Errorf("%v connections = %+v, want %+v", w.c, got, w.conn)
		}
		if a := Classify(got); a != w.a {
			t.Errorf("%v archetype = %v, want %v", w.c, a, w.a)
		}
	}
	if len(*events) != 1 || len((*events)[0]) != 3 {
		t.Fatalf("expected one change event with 3 cells, got %v", *events)
	}
	assertSymmetric(t, n)
}

func TestCommitVerticalRunIgnoresDiagonal(t *testing.T) {
	n, _, _ := newTestNetwork(t)
	// |dx| < |dy| keeps the column of the anchor.
	n.CommitSegment(grid.C(3, 1), grid.C(4, 4))
	if n.Len() != 4 {
		t.Fatalf("Len = %d, want 4", n.Len())
	}
	for y := 1; y <= 4; y++ {
		if !n.Has(grid.C(3, y)) {
			t.Errorf("missing road at (3,%d)", y)
		}
	}
	if got := mustAt(t, n, grid.C(3, 1)); got != (Connections{Bottom: true}) {
		t.Errorf("top end = %+v", got)
	}
	if got := mustAt(t, n, grid.C(3, 4)); got != (Connections{Top: true}) {
		t.Errorf("bottom end = %+v", got)
	}
}

func TestSnap(t *testing.T) {
	tests := []struct {
		anchor, c, want grid.Cell
	}{
		{grid.C(0, 0), grid.C(5, 2), grid.C(5, 0)},
		{grid.C(0, 0), grid.C(2, 5), grid.C(0, 5)},
		{grid.C(0, 0), grid.C(3, 3), grid.C(0, 3)},
		{grid.C(4, 4), grid.C(1, 3), grid.C(1, 4)},
		{grid.C(4, 4), grid.C(4, 4), grid.C(4, 4)},
	}
	for _, tt := range tests {
		if got := Snap(tt.anchor, tt.c); got != tt.want {
			t.Errorf("Snap(%v, %v) = %v, want %v", tt.anchor, tt.c, got, tt.want)
		}
	}
}

func TestChainedDrawingMakesCorner(t *testing.T) {
	n, events, _ := newTestNetwork(t)
	n.BeginOrContinue(grid.C(1, 1))
	n.UpdateEndpoint(grid.C(4, 2))
	n.BeginOrContinue(grid.C(4, 1))

	if !n.Drawing() {
		t.Fatal("drawing should continue after clicking an empty cell")
	}
	start, _, _ := n.Pending()
	if start != grid.C(4, 1) {
		t.Errorf("new anchor = %v, want (4,1)", start)
	}

	n.UpdateEndpoint(grid.C(4, 5))
	n.BeginOrContinue(grid.C(4, 5))

	corner := mustAt(t, n, grid.C(4, 1))
	if Classify(corner) != TopRightCorner {
		t.Errorf("corner archetype = %v (%+v), want top_right_corner", Classify(corner), corner)
	}
	if len(*events) != 2 {
		t.Errorf("got %d change events, want 2", len(*events))
	}
	assertSymmetric(t, n)
}

func TestClickOnExistingRoadEndsChain(t *testing.T) {
	n, _, ov := newTestNetwork(t)
	n.CommitSegment(grid.C(5, 0), grid.C(5, 6))

	n.BeginOrContinue(grid.C(1, 3))
	n.UpdateEndpoint(grid.C(5, 3))
	n.BeginOrContinue(grid.C(5, 3))

	if n.Drawing() {
		t.Error("clicking an existing road should end the chain")
	}
	if ov.cleared == 0 {
		t.Error("preview should be cleared when the chain ends")
	}
	if got := mustAt(t, n, grid.C(5, 3)); Classify(got) != TLeft {
		t.Errorf("(5,3) = %v (%+v), want t_left", Classify(got), got)
	}
	if got := mustAt(t, n, grid.C(1, 3)); Classify(got) != HorizontalLeftEnd {
		t.Errorf("(1,3) = %v, want horizontal_left_end", Classify(got))
	}
	assertSymmetric(t, n)
}

func TestJoinThroughExistingCellMakesT(t *testing.T) {
	n, _, _ := newTestNetwork(t)
	n.CommitSegment(grid.C(0, 3), grid.C(6, 3))
	n.CommitSegment(grid.C(3, 3), grid.C(3, 7))

	got := mustAt(t, n, grid.C(3, 3))
	if Classify(got) != TDown {
		t.Errorf("junction = %v (%+v), want t_down", Classify(got), got)
	}
	assertSymmetric(t, n)
}

func TestCancel(t *testing.T) {
	n, events, _ := newTestNetwork(t)
	n.BeginOrContinue(grid.C(1, 1))
	n.UpdateEndpoint(grid.C(5, 1))
	n.Cancel()
	if n.Drawing() {
		t.Error("Cancel should stop drawing")
	}
	if n.Len() != 0 || len(*events) != 0 {
		t.Error("Cancel should not commit anything")
	}
	n.Commit()
	if n.Len() != 0 {
		t.Error("Commit with nothing pending should be a no-op")
	}
}

func TestDisabledIgnoresInput(t *testing.T) {
	n, _, _ := newTestNetwork(t)
	n.BeginOrContinue(grid.C(1, 1))
	n.Disable()
	if n.Drawing() {
		t.Error("Disable should cancel the pending segment")
	}
	n.BeginOrContinue(grid.C(2, 2))
	if n.Drawing() {
		t.Error("disabled network should ignore clicks")
	}
	n.Enable()
	n.BeginOrContinue(grid.C(2, 2))
	if !n.Drawing() {
		t.Error("re-enabled network should accept clicks")
	}
}

func TestEraseClearsNeighborFlags(t *testing.T) {
	n, events, _ := newTestNetwork(t)
	n.CommitSegment(grid.C(0, 3), grid.C(6, 3))
	n.CommitSegment(grid.C(3, 3), grid.C(3, 7))

	n.Erase(grid.C(3, 4), grid.C(3, 7))
	got := mustAt(t, n, grid.C(3, 3))
	if got.Bottom {
		t.Errorf("junction still points at erased road: %+v", got)
	}
	if Classify(got) != Horizontal {
		t.Errorf("junction = %v, want horizontal", Classify(got))
	}
	assertSymmetric(t, n)

	before := n.Cells()
	n.Erase(grid.C(3, 4), grid.C(3, 7))
	after := n.Cells()
	if len(before) != len(after) {
		t.Fatalf("second erase changed cell count %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("second erase changed %v: %+v -> %+v", before[i].Cell, before[i], after[i])
		}
	}
	if len(*events) != 4 {
		t.Errorf("got %d change events, want 4", len(*events))
	}
}

func TestDestroyModeErasesOnSecondClick(t *testing.T) {
	n, _, ov := newTestNetwork(t)
	n.CommitSegment(grid.C(0, 2), grid.C(8, 2))
	n.SetDestroyMode(true)

	n.BeginOrContinue(grid.C(2, 2))
	if ov.last != DestroyColor {
		t.Errorf("destroy preview color = %v", ov.last)
	}
	n.UpdateEndpoint(grid.C(4, 3))
	n.BeginOrContinue(grid.C(4, 3))

	if n.Drawing() {
		t.Error("destroy gesture should end after the second click")
	}
	for x := 2; x <= 4; x++ {
		if n.Has(grid.C(x, 2)) {
			t.Errorf("(%d,2) should be erased", x)
		}
	}
	if got := mustAt(t, n, grid.C(1, 2)); got.Right {
		t.Errorf("(1,2) = %+v, right flag should be cleared", got)
	}
	if got := mustAt(t, n, grid.C(5, 2)); got.Left {
		t.Errorf("(5,2) = %+v, left flag should be cleared", got)
	}
	assertSymmetric(t, n)
}

func TestCellsSorted(t *testing.T) {
	n, _, _ := newTestNetwork(t)
	n.CommitSegment(grid.C(5, 0), grid.C(5, 3))
	n.CommitSegment(grid.C(0, 2), grid.C(3, 2))
	cells := n.Cells()
	for i := 1; i < len(cells); i++ {
		if !cells[i-1].Cell.Less(cells[i].Cell) {
			t.Errorf("cells out of order at %d: %v then %v", i, cells[i-1].Cell, cells[i].Cell)
		}
	}
}

func TestRandomEditsStaySymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	n, _, _ := newTestNetwork(t)
	for i := 0; i < 300; i++ {
		a := grid.C(rng.Intn(12), rng.Intn(12))
		b := grid.C(rng.Intn(12), rng.Intn(12))
		if rng.Intn(3) == 0 {
			n.Erase(a, b)
		} else {
			n.CommitSegment(a, b)
		}
		if r := n.Verify(); !r.Valid {
			t.Fatalf("step %d: %s: %s", i, r.Summary, r.Errors[0].Message)
		}
	}
}
