package world

import (
	"fmt"

	"github.com/ChicagoDave/citycore/pkg/demand"
	"github.com/ChicagoDave/citycore/pkg/grid"
	"github.com/ChicagoDave/citycore/pkg/road"
	"github.com/ChicagoDave/citycore/pkg/spawner"
	"github.com/ChicagoDave/citycore/pkg/validation"
)

// State is a copy of everything a renderer needs.
type State struct {
	Dims      grid.Dims          `json:"dims"`
	CellSize  int                `json:"cell_size"`
	Tool      Tool               `json:"tool"`
	Roads     []road.Cell        `json:"roads"`
	RoadTiles []Tile             `json:"road_tiles"`
	ZoneTiles []Tile             `json:"zone_tiles"`
	Zoneable  []grid.Cell        `json:"zoneable"`
	Zoned     []ZonedCell        `json:"zoned"`
	Buildings []spawner.Building `json:"buildings"`
	Demand    demand.Demand      `json:"demand"`
	Preview   *Preview           `json:"preview,omitempty"`
	Drawing   bool               `json:"drawing"`
}

// Snapshot returns the current state.
func (w *World) Snapshot() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return State{
		Dims:      w.dims,
		CellSize:  w.cfg.Grid.CellSize,
		Tool:      w.tool,
		Roads:     w.roads.Cells(),
		RoadTiles: w.roadTiles.Tiles(),
		ZoneTiles: w.zoneTiles.Tiles(),
		Zoneable:  w.zones.Zoneable(),
		Zoned:     zonedCells(w.zones.Zoned()),
		Buildings: w.spawner.Buildings(),
		Demand:    w.demand,
		Preview:   w.overlay.get(),
		Drawing:   w.roads.Drawing(),
	}
}

// Buildings returns the placed buildings.
func (w *World) Buildings() []spawner.Building { return w.spawner.Buildings() }

// Demand returns the demand computed from the current zoning.
func (w *World) Demand() demand.Demand {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.demand
}

// Validate checks every component and the invariants between them.
func (w *World) Validate() *validation.Report {
	w.mu.Lock()
	defer w.mu.Unlock()

	r := validation.NewReport()
	r.Merge(w.roads.Verify())
	r.Merge(w.zones.Verify())
	r.Merge(w.spawner.Verify())

	for i, b := range w.spawner.Buildings() {
		for _, c := range b.Footprint {
			if w.roads.Has(c) {
				r.AddError(validation.Result{
					Level:        validation.LevelPlacement,
					Message:      fmt.Sprintf("%s stands on a road at %v", b.Spawnable.Name, c),
					Path:         fmt.Sprintf("buildings[%d]", i),
					Cells:        []grid.Cell{c},
					ConflictWith: "road",
				})
			}
		}
	}
	return r
}
