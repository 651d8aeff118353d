package scene2d

import (
	"context"
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/ChicagoDave/citycore/pkg/config"
	"github.com/ChicagoDave/citycore/pkg/grid"
	"github.com/ChicagoDave/citycore/pkg/input"
	"github.com/ChicagoDave/citycore/pkg/world"
)

func testWorld(t *testing.T) *world.World {
	t.Helper()
	cfg := config.Default()
	cfg.Grid.Width, cfg.Grid.Height, cfg.Grid.CellSize = 20, 16, 8
	cfg.Spawner.Delay = -1
	w, err := world.New(cfg, world.Options{Rand: rand.New(rand.NewSource(4))})
	if err != nil {
		t.Fatalf("world.New: %v", err)
	}

	w.SelectTool(world.ToolRoad)
	for _, ev := range []input.Event{
		input.Click(grid.C(2, 5)), input.Move(grid.C(14, 5)), input.Click(grid.C(14, 5)), input.RightClick(grid.C(14, 5)),
	} {
		if err := w.Handle(ev); err != nil {
			t.Fatal(err)
		}
	}
	w.SelectTool(world.ToolCommercial)
	for _, ev := range input.Drag(grid.C(3, 6), grid.C(13, 9)) {
		if err := w.Handle(ev); err != nil {
			t.Fatal(err)
		}
	}
	w.Settle(context.Background())
	return w
}

func assembleTestScene2D(t *testing.T) *Scene2D {
	t.Helper()
	return Assemble2D(testWorld(t).Snapshot())
}

func TestAssemble2DMetadata(t *testing.T) {
	sc := assembleTestScene2D(t)

	if sc.Metadata.Width != 20 || sc.Metadata.Height != 16 {
		t.Errorf("expected 20x16, got %dx%d", sc.Metadata.Width, sc.Metadata.Height)
	}
	if sc.Metadata.CellSize != 8 {
		t.Errorf("expected cell_size 8, got %d", sc.Metadata.CellSize)
	}
	if sc.Metadata.Tool != "commercial" {
		t.Errorf("expected tool commercial, got %q", sc.Metadata.Tool)
	}
	if sc.Metadata.GeneratedAt == "" {
		t.Error("generated_at is empty")
	}
}

func TestAssemble2DRoads(t *testing.T) {
	sc := assembleTestScene2D(t)

	if len(sc.Roads) != 13 {
		t.Fatalf("expected 13 road cells, got %d", len(sc.Roads))
	}
	first, last := sc.Roads[0], sc.Roads[len(sc.Roads)-1]
	if first.Archetype != "horizontal_left_end" {
		t.Errorf("expected horizontal_left_end at %v, got %s", first.Cell, first.Archetype)
	}
	if last.Archetype != "horizontal_right_end" {
		t.Errorf("expected horizontal_right_end at %v, got %s", last.Cell, last.Archetype)
	}
	for _, r := range sc.Roads[1 : len(sc.Roads)-1] {
		if r.Archetype != "horizontal" || r.Tile != 0 {
			t.Errorf("road %v: expected horizontal tile 0, got %s tile %d", r.Cell, r.Archetype, r.Tile)
		}
		if len(r.Sides) != 2 {
			t.Errorf("road %v: expected 2 sides, got %v", r.Cell, r.Sides)
		}
	}
}

func TestAssemble2DZonesAndBuildings(t *testing.T) {
	sc := assembleTestScene2D(t)

	if len(sc.Zones) != 44 {
		t.Errorf("expected 44 zoned cells, got %d", len(sc.Zones))
	}
	for _, z := range sc.Zones {
		if z.Type != "commercial" || z.Tile != 2 {
			t.Errorf("zone %v: expected commercial tile 2, got %s tile %d", z.Cell, z.Type, z.Tile)
		}
	}
	if len(sc.Buildings) == 0 {
		t.Fatal("no buildings")
	}

	zoned := make(map[[2]int]bool, len(sc.Zones))
	for _, z := range sc.Zones {
		zoned[z.Cell] = true
	}
	covered := 0
	for _, b := range sc.Buildings {
		if b.ID == "" {
			t.Error("building has empty ID")
		}
		if len(b.Footprint) != b.Extent[0]*b.Extent[1] {
			t.Errorf("building %s: footprint %d cells, extent %v", b.Name, len(b.Footprint), b.Extent)
		}
		for _, c := range b.Footprint {
			if !zoned[c] {
				t.Errorf("building %s covers unzoned cell %v", b.Name, c)
			}
			if c[0] < b.RenderOrigin[0] || c[1] < b.RenderOrigin[1] {
				t.Errorf("building %s: cell %v above or left of render origin %v", b.Name, c, b.RenderOrigin)
			}
		}
		covered += len(b.Footprint)
	}

	sum := sc.Summary
	if sum.TotalBuildings != len(sc.Buildings) {
		t.Errorf("expected total_buildings %d, got %d", len(sc.Buildings), sum.TotalBuildings)
	}
	if sum.CellsCovered != covered {
		t.Errorf("expected cells_covered %d, got %d", covered, sum.CellsCovered)
	}
	com := sum.ByZone["commercial"]
	if com.ZonedCells != 44 || com.Buildings != len(sc.Buildings) || len(com.Names) == 0 {
		t.Errorf("unexpected commercial summary %+v", com)
	}
	if _, ok := sum.ByZone["industrial"]; !ok {
		t.Error("summary misses industrial")
	}
	if sc.Demand.Residential <= 0 {
		t.Errorf("expected residential demand, got %+v", sc.Demand)
	}
}

func TestAssemble2DPreview(t *testing.T) {
	w := testWorld(t)
	if err := w.Handle(input.Move(grid.C(7, 7))); err != nil {
		t.Fatal(err)
	}
	sc := Assemble2D(w.Snapshot())
	if sc.Preview == nil {
		t.Fatal("expected a hover preview")
	}
	if sc.Preview.Min != [2]int{7, 7} || sc.Preview.Max != [2]int{7, 7} {
		t.Errorf("expected 1x1 preview at (7,7), got %v..%v", sc.Preview.Min, sc.Preview.Max)
	}
	if sc.Preview.Color != "#6495ed" {
		t.Errorf("expected cornflowerblue preview, got %s", sc.Preview.Color)
	}
}

func TestAssemble2DJSON(t *testing.T) {
	sc := assembleTestScene2D(t)
	data, err := json.Marshal(sc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"metadata", "roads", "zoneable", "zones", "buildings", "summary", "demand"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("scene JSON missing %q", key)
		}
	}
}
