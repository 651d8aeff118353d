package grid

import "fmt"

// Direction is one of the four cardinal sides of a cell.
type Direction int

const (
	Top Direction = iota
	Right
	Bottom
	Left
)

// Directions lists the sides in probe order.
var Directions = [4]Direction{Top, Right, Bottom, Left}

// Offset returns the unit step toward the side.
func (d Direction) Offset() Cell {
	switch d {
	case Top:
		return Cell{0, -1}
	case Right:
		return Cell{1, 0}
	case Bottom:
		return Cell{0, 1}
	case Left:
		return Cell{-1, 0}
	}
	return Cell{}
}

// Opposite returns the facing side.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

func (d Direction) String() string {
	switch d {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// ParseDirection converts a side name into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "top":
		return Top, nil
	case "right":
		return Right, nil
	case "bottom":
		return Bottom, nil
	case "left":
		return Left, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
