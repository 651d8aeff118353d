package scene2d

import "github.com/ChicagoDave/citycore/pkg/demand"

// Scene2D is the complete top-down scene of a world, in cell coordinates.
type Scene2D struct {
	Metadata  Metadata        `json:"metadata"`
	Roads     []Road2D        `json:"roads"`
	Zoneable  [][2]int        `json:"zoneable"`
	Zones     []Zone2D        `json:"zones"`
	Buildings []Building2D    `json:"buildings"`
	Summary   BuildingSummary `json:"summary"`
	Demand    demand.Demand   `json:"demand"`
	Preview   *Preview2D      `json:"preview,omitempty"`
}

// Metadata holds world-level summary data.
type Metadata struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	CellSize    int    `json:"cell_size"`
	Tool        string `json:"tool"`
	Drawing     bool   `json:"drawing"`
	GeneratedAt string `json:"generated_at"`
}

// Road2D is one road cell with its tile.
type Road2D struct {
	Cell      [2]int   `json:"cell"`
	Archetype string   `json:"archetype"`
	Tile      int      `json:"tile"`
	Sides     []string `json:"sides"`
}

// Zone2D is one zoned cell.
type Zone2D struct {
	Cell [2]int `json:"cell"`
	Type string `json:"type"`
	Tile int    `json:"tile"`
}

// Building2D is a placed building. RenderOrigin is the top-left cell of the
// footprint and Extent its oriented width and height.
type Building2D struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Zone         string   `json:"zone"`
	Tile         int      `json:"tile"`
	Facing       string   `json:"facing"`
	Origin       [2]int   `json:"origin"`
	RenderOrigin [2]int   `json:"render_origin"`
	Extent       [2]int   `json:"extent"`
	Footprint    [][2]int `json:"footprint"`
}

// BuildingSummary holds aggregate building data.
type BuildingSummary struct {
	TotalBuildings int                `json:"total_buildings"`
	CellsCovered   int                `json:"cells_covered"`
	ByZone         map[string]ZoneSum `json:"by_zone"`
}

// ZoneSum is the aggregate for one zone type.
type ZoneSum struct {
	ZonedCells int      `json:"zoned_cells"`
	Buildings  int      `json:"buildings"`
	Covered    int      `json:"covered_cells"`
	Names      []string `json:"names,omitempty"`
}

// Preview2D is the rectangle highlighted by the active tool.
type Preview2D struct {
	Min   [2]int `json:"min"`
	Max   [2]int `json:"max"`
	Color string `json:"color"`
}
