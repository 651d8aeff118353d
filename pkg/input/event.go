// Package input defines the cell-level pointer events consumed by a world
// and a surface that derives them from raw pointer samples.
package input

import (
	"fmt"

	"github.com/ChicagoDave/citycore/pkg/grid"
)

// Kind names a pointer event.
type Kind string

const (
	PointerDown Kind = "pointer_down"
	PointerMove Kind = "pointer_move"
	PointerUp   Kind = "pointer_up"
	DragStart   Kind = "drag_start"
	DragMove    Kind = "drag_move"
	DragEnd     Kind = "drag_end"
)

// Button identifies the pressed pointer button.
type Button string

const (
	Primary   Button = "primary"
	Secondary Button = "secondary"
)

// Event is a pointer event already mapped to a grid cell.
type Event struct {
	Kind   Kind      `json:"kind" yaml:"kind"`
	Cell   grid.Cell `json:"cell" yaml:"cell"`
	Button Button    `json:"button,omitempty" yaml:"button,omitempty"`
}

func (e Event) String() string {
	if e.Button != "" {
		return fmt.Sprintf("%s %s %v", e.Kind, e.Button, e.Cell)
	}
	return fmt.Sprintf("%s %v", e.Kind, e.Cell)
}

// Validate reports malformed events.
func (e Event) Validate() error {
	switch e.Kind {
	case PointerDown:
		if e.Button != Primary && e.Button != Secondary {
			return fmt.Errorf("pointer_down needs button primary or secondary, got %q", e.Button)
		}
	case PointerMove, PointerUp, DragStart, DragMove, DragEnd:
	default:
		return fmt.Errorf("unknown event kind %q", e.Kind)
	}
	return nil
}

// Click returns a primary pointer-down at c.
func Click(c grid.Cell) Event { return Event{Kind: PointerDown, Cell: c, Button: Primary} }

// RightClick returns a secondary pointer-down at c.
func RightClick(c grid.Cell) Event { return Event{Kind: PointerDown, Cell: c, Button: Secondary} }

// Move returns a pointer-move to c.
func Move(c grid.Cell) Event { return Event{Kind: PointerMove, Cell: c} }

// Drag returns the drag-start, drag-move and drag-end events of a drag from
// a to b.
func Drag(a, b grid.Cell) []Event {
	return []Event{
		{Kind: DragStart, Cell: a},
		{Kind: DragMove, Cell: b},
		{Kind: DragEnd, Cell: b},
	}
}
