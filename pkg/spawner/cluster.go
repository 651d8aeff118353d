package spawner

import (
	"sort"

	"github.com/zyedidia/generic/mapset"

	"github.com/ChicagoDave/citycore/pkg/grid"
	"github.com/ChicagoDave/citycore/pkg/zone"
)

// Cluster is a 4-connected group of free cells sharing a zone type.
type Cluster struct {
	Zone  zone.Type
	Cells []grid.Cell
}

// Clusters flood-fills the free cells into same-type groups. A cell is free
// when it is zoned with a placeable type and not in blocked. Clusters are
// ordered by zone type, then by their first cell; cells within a cluster are
// ordered by x, then y.
func Clusters(zoned map[grid.Key]zone.Type, blocked func(grid.Key) bool) []Cluster {
	visited := mapset.New[grid.Key]()
	var out []Cluster

	for k, t := range zoned {
		if visited.Has(k) || !t.Placeable() || blocked(k) {
			continue
		}
		visited.Put(k)
		stack := []grid.Key{k}
		var cells []grid.Cell
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			c := cur.Cell()
			cells = append(cells, c)
			for _, d := range grid.Directions {
				nk := c.Step(d).Key()
				if visited.Has(nk) || zoned[nk] != t || blocked(nk) {
					continue
				}
				visited.Put(nk)
				stack = append(stack, nk)
			}
		}
		sortCells(cells)
		out = append(out, Cluster{Zone: t, Cells: cells})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Zone != out[j].Zone {
			return out[i].Zone < out[j].Zone
		}
		return out[i].Cells[0].Less(out[j].Cells[0])
	})
	return out
}

func sortCells(cells []grid.Cell) {
	sort.Slice(cells, func(i, j int) bool { return cells[i].Less(cells[j]) })
}
