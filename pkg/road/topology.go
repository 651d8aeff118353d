package road

import (
	"fmt"

	"github.com/ChicagoDave/citycore/pkg/grid"
	"github.com/ChicagoDave/citycore/pkg/validation"
)

// Run returns the cells of the straight run from start toward end. The end
// is snapped to the dominant axis first, so the run is never diagonal.
func Run(start, end grid.Cell) []grid.Cell {
	r := grid.RectOf(start, Snap(start, end))
	cells := make([]grid.Cell, 0, r.Width()*r.Height())
	for x := r.Min.X; x <= r.Max.X; x++ {
		for y := r.Min.Y; y <= r.Max.Y; y++ {
			cells = append(cells, grid.Cell{X: x, Y: y})
		}
	}
	return cells
}

// CommitSegment places a straight run of road between start and end and
// emits the full road set.
//
// Each cell of the run is connected along the run's axis wherever the run
// continues past it, and toward any existing neighbor that already reports a
// connection back to it. Flags the cell held before are kept. Cells of the
// run replace earlier entries at the same coordinates, after which the
// neighbors of the run are reconciled so every flag is reciprocated.
func (n *Network) CommitSegment(start, end grid.Cell) {
	end = Snap(start, end)
	r := grid.RectOf(start, end)
	horizontal := r.Min.Y == r.Max.Y

	run := Run(start, end)
	placed := make([]Cell, 0, len(run))
	for _, c := range run {
		var conn Connections
		if horizontal {
			conn.Top = n.reports(c, grid.Top)
			conn.Bottom = n.reports(c, grid.Bottom)
			conn.Left = c.X != r.Min.X || n.reports(c, grid.Left)
			conn.Right = c.X != r.Max.X || n.reports(c, grid.Right)
		} else {
			conn.Top = c.Y != r.Min.Y
			conn.Bottom = c.Y != r.Max.Y
			conn.Left = n.reports(c, grid.Left)
			conn.Right = n.reports(c, grid.Right)
		}
		if prev, ok := n.cells[c.Key()]; ok {
			conn = conn.Or(prev)
		}
		placed = append(placed, Cell{Cell: c, Connections: conn})
	}

	for _, p := range placed {
		n.cells[p.Key()] = p.Connections
	}
	for _, p := range placed {
		n.reconcile(p.Cell)
	}

	n.logger.Debug("road segment committed", "start", start, "end", end, "cells", len(placed))
	n.emit()
}

// reports reports whether the neighbor of c on side d exists and has its
// facing flag set.
func (n *Network) reports(c grid.Cell, d grid.Direction) bool {
	conn, ok := n.cells[c.Step(d).Key()]
	return ok && conn.Has(d.Opposite())
}

// reconcile makes the flags between c and its neighbors agree. A flag toward
// an empty cell is dropped; otherwise the neighbor takes c's view.
func (n *Network) reconcile(c grid.Cell) {
	conn, ok := n.cells[c.Key()]
	if !ok {
		return
	}
	for _, d := range grid.Directions {
		nk := c.Step(d).Key()
		other, present := n.cells[nk]
		if !present {
			conn = conn.With(d, false)
			continue
		}
		if other.Has(d.Opposite()) != conn.Has(d) {
			n.cells[nk] = other.With(d.Opposite(), conn.Has(d))
		}
	}
	n.cells[c.Key()] = conn
}

// Erase removes the straight run between start and end, clears every
// neighbor flag that pointed into it and emits the full road set. Erasing
// cells that hold no road changes nothing.
func (n *Network) Erase(start, end grid.Cell) {
	run := Run(start, end)
	removed := 0
	for _, c := range run {
		if _, ok := n.cells[c.Key()]; ok {
			delete(n.cells, c.Key())
			removed++
		}
	}
	for _, c := range run {
		for _, d := range grid.Directions {
			nk := c.Step(d).Key()
			if other, ok := n.cells[nk]; ok && other.Has(d.Opposite()) {
				n.cells[nk] = other.With(d.Opposite(), false)
			}
		}
	}

	n.logger.Debug("road segment erased", "start", start, "end", end, "removed", removed)
	n.emit()
}

// Verify checks that every connection flag is reciprocated by an existing
// neighbor.
func (n *Network) Verify() *validation.Report {
	r := validation.NewReport()
	for _, cell := range n.Cells() {
		for _, d := range grid.Directions {
			nb := cell.Step(d)
			other, ok := n.cells[nb.Key()]
			switch {
			case !ok && cell.Connections.Has(d):
				r.AddError(validation.Result{
					Level:    validation.LevelTopology,
					Message:  fmt.Sprintf("road %v connects %v to an empty cell", cell.Cell, d),
					Path:     fmt.Sprintf("roads.%d.%d.%v", cell.X, cell.Y, d),
					Cells:    []grid.Cell{cell.Cell, nb},
					Expected: "no connection",
				})
			case ok && (d == grid.Right || d == grid.Bottom) && other.Has(d.Opposite()) != cell.Connections.Has(d):
				r.AddError(validation.Result{
					Level:        validation.LevelTopology,
					Message:      fmt.Sprintf("roads %v and %v disagree about their shared side", cell.Cell, nb),
					Path:         fmt.Sprintf("roads.%d.%d.%v", cell.X, cell.Y, d),
					Cells:        []grid.Cell{cell.Cell, nb},
					ActualValue:  cell.Connections.Has(d),
					ConflictWith: fmt.Sprintf("roads.%d.%d.%v", nb.X, nb.Y, d.Opposite()),
				})
			}
		}
	}
	return r
}
