package grid

import "fmt"

// Cell is an integer grid coordinate. X grows to the right, Y grows downward.
type Cell struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// C is a shorthand constructor for Cell.
func C(x, y int) Cell {
	return Cell{X: x, Y: y}
}

// Add returns c + d.
func (c Cell) Add(d Cell) Cell {
	return Cell{c.X + d.X, c.Y + d.Y}
}

// Step returns the neighbor of c in direction d.
func (c Cell) Step(d Direction) Cell {
	return c.Add(d.Offset())
}

// Key packs the cell into a map key.
func (c Cell) Key() Key {
	return Key(uint64(uint32(int32(c.X)))<<32 | uint64(uint32(int32(c.Y))))
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Less orders cells by x ascending, then y ascending.
func (c Cell) Less(d Cell) bool {
	if c.X != d.X {
		return c.X < d.X
	}
	return c.Y < d.Y
}

// Key is a packed cell coordinate. Every (x, y) in the int32 range maps to a
// distinct key and Cell recovers it exactly.
type Key uint64

// Cell unpacks the key.
func (k Key) Cell() Cell {
	return Cell{X: int(int32(uint32(k >> 32))), Y: int(int32(uint32(k)))}
}

// Abs returns the absolute value of v.
func Abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
