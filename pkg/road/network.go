package road

import (
	"image/color"
	"io"
	"log/slog"
	"sort"

	"golang.org/x/image/colornames"

	"github.com/ChicagoDave/citycore/pkg/grid"
)

// Preview colors for the pending segment.
var (
	DrawColor    color.Color = colornames.Dimgray
	DestroyColor color.Color = colornames.Firebrick
)

// Options configures a Network.
type Options struct {
	Overlay  grid.Overlay
	OnChange func(cells []Cell)
	Logger   *slog.Logger
}

// Network owns the placed road cells and the segment drawing gesture.
// It is not safe for concurrent use.
type Network struct {
	cells map[grid.Key]Connections

	enabled bool
	destroy bool
	drawing bool
	start   grid.Cell
	end     grid.Cell

	overlay  grid.Overlay
	onChange func([]Cell)
	logger   *slog.Logger
}

// New creates an empty, enabled network.
func New(opts Options) *Network {
	n := &Network{
		cells:    make(map[grid.Key]Connections),
		enabled:  true,
		overlay:  opts.Overlay,
		onChange: opts.OnChange,
		logger:   opts.Logger,
	}
	if n.overlay == nil {
		n.overlay = grid.NopOverlay{}
	}
	if n.logger == nil {
		n.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return n
}

// Enable turns on pointer handling.
func (n *Network) Enable() {
	n.enabled = true
}

// Disable cancels any pending segment and ignores pointer input until
// re-enabled.
func (n *Network) Disable() {
	n.Cancel()
	n.enabled = false
	n.overlay.Clear()
}

// Enabled reports whether the network accepts pointer input.
func (n *Network) Enabled() bool { return n.enabled }

// SetDestroyMode switches the drawing gesture between building and erasing.
func (n *Network) SetDestroyMode(on bool) {
	n.destroy = on
}

// DestroyMode reports whether the gesture erases.
func (n *Network) DestroyMode() bool { return n.destroy }

// Drawing reports whether a segment is pending.
func (n *Network) Drawing() bool { return n.drawing }

// Pending returns the anchor and snapped endpoint of the pending segment.
func (n *Network) Pending() (start, end grid.Cell, ok bool) {
	return n.start, n.end, n.drawing
}

// BeginOrContinue handles a primary click. With no pending segment it anchors
// a new one at c. Otherwise the pending segment is committed; if c was
// already a road the gesture ends there, else a new segment is anchored at
// the committed endpoint. In destroy mode the second click erases the
// pending run and ends the gesture.
func (n *Network) BeginOrContinue(c grid.Cell) {
	if !n.enabled {
		return
	}
	if !n.drawing {
		n.drawing = true
		n.start, n.end = c, c
		n.preview()
		return
	}

	n.end = Snap(n.start, c)
	if n.destroy {
		start, end := n.start, n.end
		n.stop()
		n.Erase(start, end)
		return
	}

	onRoad := n.Has(c)
	start, end := n.start, n.end
	n.stop()
	n.CommitSegment(start, end)
	if onRoad {
		return
	}
	n.drawing = true
	n.start, n.end = end, Snap(end, c)
	n.preview()
}

// UpdateEndpoint moves the free end of the pending segment toward c, snapped
// to the dominant axis. With no pending segment it previews the hovered cell.
func (n *Network) UpdateEndpoint(c grid.Cell) {
	if !n.enabled {
		return
	}
	if !n.drawing {
		n.overlay.Show(grid.RectOf(c, c), n.color())
		return
	}
	n.end = Snap(n.start, c)
	n.preview()
}

// Cancel aborts the pending segment without committing.
func (n *Network) Cancel() {
	if n.drawing {
		n.stop()
	}
}

// Commit places the pending segment, if any, and ends the gesture.
func (n *Network) Commit() {
	if !n.drawing {
		return
	}
	start, end := n.start, n.end
	n.stop()
	n.CommitSegment(start, end)
}

func (n *Network) stop() {
	n.drawing = false
	n.start, n.end = grid.Cell{}, grid.Cell{}
	n.overlay.Clear()
}

func (n *Network) preview() {
	n.overlay.Show(grid.RectOf(n.start, n.end), n.color())
}

func (n *Network) color() color.Color {
	if n.destroy {
		return DestroyColor
	}
	return DrawColor
}

// Has reports whether c holds a road.
func (n *Network) Has(c grid.Cell) bool {
	_, ok := n.cells[c.Key()]
	return ok
}

// At returns the connections of the road at c.
func (n *Network) At(c grid.Cell) (Connections, bool) {
	conn, ok := n.cells[c.Key()]
	return conn, ok
}

// Len returns the number of road cells.
func (n *Network) Len() int { return len(n.cells) }

// Cells returns every road cell ordered by x, then y.
func (n *Network) Cells() []Cell {
	out := make([]Cell, 0, len(n.cells))
	for k, conn := range n.cells {
		out = append(out, Cell{Cell: k.Cell(), Connections: conn})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cell.Less(out[j].Cell) })
	return out
}

func (n *Network) emit() {
	if n.onChange != nil {
		n.onChange(n.Cells())
	}
}

// Snap returns the endpoint of a straight run from anchor toward c, keeping
// whichever axis has the larger delta. Ties keep the column.
func Snap(anchor, c grid.Cell) grid.Cell {
	dx := c.X - anchor.X
	dy := c.Y - anchor.Y
	if grid.Abs(dx) > grid.Abs(dy) {
		return grid.Cell{X: c.X, Y: anchor.Y}
	}
	return grid.Cell{X: anchor.X, Y: c.Y}
}
