package spawner

import (
	"github.com/google/uuid"

	"github.com/ChicagoDave/citycore/pkg/catalog"
	"github.com/ChicagoDave/citycore/pkg/grid"
)

// Building is a placed spawnable.
type Building struct {
	ID        uuid.UUID         `json:"id"`
	Spawnable catalog.Spawnable `json:"spawnable"`
	Origin    grid.Cell         `json:"origin"`
	Facing    grid.Direction    `json:"facing"`
	Footprint []grid.Cell       `json:"footprint"`
}

// NewBuilding anchors s at origin facing the given side.
func NewBuilding(id uuid.UUID, s catalog.Spawnable, origin grid.Cell, facing grid.Direction) Building {
	return Building{
		ID:        id,
		Spawnable: s,
		Origin:    origin,
		Facing:    facing,
		Footprint: Footprint(s.Size, origin, facing),
	}
}

// Footprint returns the cells covered by a w by h building anchored at
// origin. The footprint grows away from the road on the facing side:
//
//	top    (x+i, y+j)
//	bottom (x+i, y-j)
//	right  (x-j, y+i)
//	left   (x+j, y+i)
//
// for i in [0,w) and j in [0,h).
func Footprint(size grid.Size, origin grid.Cell, facing grid.Direction) []grid.Cell {
	cells := make([]grid.Cell, 0, size.Width*size.Height)
	x, y := origin.X, origin.Y
	for i := 0; i < size.Width; i++ {
		for j := 0; j < size.Height; j++ {
			var c grid.Cell
			switch facing {
			case grid.Top:
				c = grid.Cell{X: x + i, Y: y + j}
			case grid.Bottom:
				c = grid.Cell{X: x + i, Y: y - j}
			case grid.Right:
				c = grid.Cell{X: x - j, Y: y + i}
			case grid.Left:
				c = grid.Cell{X: x + j, Y: y + i}
			}
			cells = append(cells, c)
		}
	}
	return cells
}

// RenderOrigin returns the top-left cell of the footprint, where a sprite
// drawn from its top-left corner must be placed. Buildings facing right or
// bottom grow toward negative x or y, so their origin shifts back by the
// footprint extent on that axis. The shift uses the oriented extent, so a
// right-facing building moves back by its height minus one. Shifting by the
// unrotated width instead only agrees for square buildings; for non-square
// side-facing ones it lands off the footprint.
func (b Building) RenderOrigin() grid.Cell {
	ex, ey := b.Spawnable.Extent(b.Facing)
	o := b.Origin
	switch b.Facing {
	case grid.Right:
		o.X -= ex - 1
	case grid.Bottom:
		o.Y -= ey - 1
	}
	return o
}

// Bounds returns the footprint rectangle.
func (b Building) Bounds() grid.Rect {
	r, _ := grid.Bounds(b.Footprint)
	return r
}
