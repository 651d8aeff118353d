package scene2d

import (
	"time"

	"github.com/ChicagoDave/citycore/pkg/grid"
	"github.com/ChicagoDave/citycore/pkg/road"
	"github.com/ChicagoDave/citycore/pkg/spawner"
	"github.com/ChicagoDave/citycore/pkg/world"
	"github.com/ChicagoDave/citycore/pkg/zone"
)

// Assemble2D converts a world snapshot into a scene suitable for a tile
// renderer. Every list keeps the snapshot's order.
func Assemble2D(st world.State) *Scene2D {
	return &Scene2D{
		Metadata:  assembleMetadata(st),
		Roads:     assembleRoads(st.Roads),
		Zoneable:  cellsToCoords(st.Zoneable),
		Zones:     assembleZones(st.Zoned),
		Buildings: assembleBuildings(st.Buildings),
		Summary:   assembleBuildingSummary(st.Zoned, st.Buildings),
		Demand:    st.Demand,
		Preview:   assemblePreview(st.Preview),
	}
}

func assembleMetadata(st world.State) Metadata {
	return Metadata{
		Width:       st.Dims.Width,
		Height:      st.Dims.Height,
		CellSize:    st.CellSize,
		Tool:        string(st.Tool),
		Drawing:     st.Drawing,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

func assembleRoads(cells []road.Cell) []Road2D {
	result := make([]Road2D, 0, len(cells))
	for _, c := range cells {
		a := c.Archetype()
		sides := make([]string, 0, 4)
		for _, d := range grid.Directions {
			if c.Connections.Has(d) {
				sides = append(sides, d.String())
			}
		}
		result = append(result, Road2D{
			Cell:      cellToCoord(c.Cell),
			Archetype: a.String(),
			Tile:      a.Tile(),
			Sides:     sides,
		})
	}
	return result
}

func assembleZones(zoned []world.ZonedCell) []Zone2D {
	result := make([]Zone2D, 0, len(zoned))
	for _, z := range zoned {
		result = append(result, Zone2D{
			Cell: cellToCoord(z.Cell),
			Type: string(z.Zone),
			Tile: z.Zone.Tile(),
		})
	}
	return result
}

func assembleBuildings(buildings []spawner.Building) []Building2D {
	result := make([]Building2D, 0, len(buildings))
	for _, b := range buildings {
		ex, ey := b.Spawnable.Extent(b.Facing)
		result = append(result, Building2D{
			ID:           b.ID.String(),
			Name:         b.Spawnable.Name,
			Zone:         string(b.Spawnable.Zone),
			Tile:         b.Spawnable.Tile,
			Facing:       b.Facing.String(),
			Origin:       cellToCoord(b.Origin),
			RenderOrigin: cellToCoord(b.RenderOrigin()),
			Extent:       [2]int{ex, ey},
			Footprint:    cellsToCoords(b.Footprint),
		})
	}
	return result
}

func assembleBuildingSummary(zoned []world.ZonedCell, buildings []spawner.Building) BuildingSummary {
	bs := BuildingSummary{
		ByZone: make(map[string]ZoneSum),
	}
	for _, z := range zoned {
		zs := bs.ByZone[string(z.Zone)]
		zs.ZonedCells++
		bs.ByZone[string(z.Zone)] = zs
	}
	for _, b := range buildings {
		bs.TotalBuildings++
		bs.CellsCovered += len(b.Footprint)

		key := string(b.Spawnable.Zone)
		zs := bs.ByZone[key]
		zs.Buildings++
		zs.Covered += len(b.Footprint)
		found := false
		for _, n := range zs.Names {
			if n == b.Spawnable.Name {
				found = true
				break
			}
		}
		if !found {
			zs.Names = append(zs.Names, b.Spawnable.Name)
		}
		bs.ByZone[key] = zs
	}
	for _, t := range zone.Types {
		if _, ok := bs.ByZone[string(t)]; !ok {
			bs.ByZone[string(t)] = ZoneSum{}
		}
	}
	return bs
}

func assemblePreview(p *world.Preview) *Preview2D {
	if p == nil {
		return nil
	}
	return &Preview2D{
		Min:   cellToCoord(p.Rect.Min),
		Max:   cellToCoord(p.Rect.Max),
		Color: p.Hex,
	}
}

// cellToCoord converts a grid.Cell to an [x, y] pair.
func cellToCoord(c grid.Cell) [2]int {
	return [2]int{c.X, c.Y}
}

// cellsToCoords converts a []grid.Cell to an [x, y] list.
func cellsToCoords(cells []grid.Cell) [][2]int {
	coords := make([][2]int, len(cells))
	for i, c := range cells {
		coords[i] = cellToCoord(c)
	}
	return coords
}
