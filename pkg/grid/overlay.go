package grid

import "image/color"

// Overlay receives transient preview rectangles drawn on top of the grid.
type Overlay interface {
	Show(r Rect, c color.Color)
	Clear()
}

// NopOverlay discards previews.
type NopOverlay struct{}

func (NopOverlay) Show(Rect, color.Color) {}
func (NopOverlay) Clear()                 {}
