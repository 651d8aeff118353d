package road

import "fmt"

// Archetype is one of the sixteen road tile categories. The numeric value is
// the tile index in the road tileset.
type Archetype int

const (
	Horizontal Archetype = iota
	HorizontalLeftEnd
	HorizontalRightEnd
	Vertical
	VerticalTopEnd
	VerticalBottomEnd
	Crossroads
	TopRightCorner
	TopLeftCorner
	BottomRightCorner
	BottomLeftCorner
	TUp
	TDown
	TLeft
	TRight
	Center
)

var archetypeNames = [...]string{
	Horizontal:         "horizontal",
	HorizontalLeftEnd:  "horizontal_left_end",
	HorizontalRightEnd: "horizontal_right_end",
	Vertical:           "vertical",
	VerticalTopEnd:     "vertical_top_end",
	VerticalBottomEnd:  "vertical_bottom_end",
	Crossroads:         "crossroads",
	TopRightCorner:     "top_right_corner",
	TopLeftCorner:      "top_left_corner",
	BottomRightCorner:  "bottom_right_corner",
	BottomLeftCorner:   "bottom_left_corner",
	TUp:                "t_up",
	TDown:              "t_down",
	TLeft:              "t_left",
	TRight:             "t_right",
	Center:             "center",
}

func (a Archetype) String() string {
	if a >= 0 && int(a) < len(archetypeNames) {
		return archetypeNames[a]
	}
	return fmt.Sprintf("archetype(%d)", int(a))
}

// MarshalText implements encoding.TextMarshaler.
func (a Archetype) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Tile returns the tileset index for the archetype.
func (a Archetype) Tile() int {
	return int(a)
}

// Classify maps a connection pattern to its archetype. The order of the
// checks is significant: four-way, then the T junctions, then two-way
// pairs, then dead ends.
func Classify(c Connections) Archetype {
	switch {
	case c.Top && c.Right && c.Bottom && c.Left:
		return Crossroads
	case c.Top && c.Right && c.Bottom:
		return TRight
	case c.Top && c.Right && c.Left:
		return TUp
	case c.Top && c.Bottom && c.Left:
		return TLeft
	case c.Right && c.Bottom && c.Left:
		return TDown
	case c.Top && c.Right:
		return BottomLeftCorner
	case c.Top && c.Bottom:
		return Vertical
	case c.Top && c.Left:
		return BottomRightCorner
	case c.Right && c.Bottom:
		return TopLeftCorner
	case c.Right && c.Left:
		return Horizontal
	case c.Bottom && c.Left:
		return TopRightCorner
	case c.Top:
		return VerticalBottomEnd
	case c.Right:
		return HorizontalLeftEnd
	case c.Bottom:
		return VerticalTopEnd
	case c.Left:
		return HorizontalRightEnd
	default:
		return Center
	}
}
