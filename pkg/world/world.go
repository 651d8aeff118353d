// Package world wires the road network, zone manager, building spawner and
// demand model into one simulated city driven by input events.
package world

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ChicagoDave/citycore/pkg/catalog"
	"github.com/ChicagoDave/citycore/pkg/config"
	"github.com/ChicagoDave/citycore/pkg/demand"
	"github.com/ChicagoDave/citycore/pkg/grid"
	"github.com/ChicagoDave/citycore/pkg/input"
	"github.com/ChicagoDave/citycore/pkg/road"
	"github.com/ChicagoDave/citycore/pkg/spawner"
	"github.com/ChicagoDave/citycore/pkg/zone"
)

// Options configures a World beyond its config file.
type Options struct {
	// Catalog overrides the catalog named by the config.
	Catalog *catalog.Catalog
	// Rand overrides the seeded placement source.
	Rand   *rand.Rand
	Logger *slog.Logger
}

// World is a simulated city. Input is handled synchronously on the caller's
// goroutine; building placement runs on the goroutine calling Run.
type World struct {
	cfg     *config.World
	dims    grid.Dims
	catalog *catalog.Catalog
	logger  *slog.Logger

	mu        sync.Mutex
	tool      Tool
	roads     *road.Network
	zones     *zone.Manager
	spawner   *spawner.Spawner
	demand    demand.Demand
	roadTiles *Layer
	zoneTiles *Layer
	overlay   *previewOverlay

	handling atomic.Bool
	pendMu   sync.Mutex
	pending  []Change
	flushMu  sync.Mutex
	subMu    sync.Mutex
	subs     map[int]Subscriber
	nextSub  int
}

// New builds a world from cfg. Defaults are applied to a copy of cfg.
func New(cfg *config.World, opts Options) (*World, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	c := *cfg
	c.ApplyDefaults()

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	cat := opts.Catalog
	if cat == nil {
		if c.Spawner.Catalog != "" {
			loaded, err := catalog.Load(c.Spawner.Catalog)
			if err != nil {
				return nil, fmt.Errorf("creating world: %w", err)
			}
			cat = loaded
		} else {
			cat = catalog.Default()
		}
	}

	rng := opts.Rand
	if rng == nil {
		seed := c.Spawner.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	w := &World{
		cfg:       &c,
		dims:      c.Grid.Dims(),
		catalog:   cat,
		logger:    logger,
		tool:      ToolNone,
		roadTiles: NewLayer(),
		zoneTiles: NewLayer(),
		overlay:   &previewOverlay{},
		subs:      make(map[int]Subscriber),
	}
	w.demand = demand.Compute(nil)

	w.spawner = spawner.New(spawner.Options{
		Catalog:  cat,
		Rand:     rng,
		Delay:    c.Spawner.Delay,
		OnChange: w.buildingsChanged,
		Logger:   logger.With("component", "spawner"),
	})
	w.zones = zone.New(zone.Options{
		Dims:     w.dims,
		Radius:   c.Zoning.Radius,
		Overlay:  w.overlay,
		Tiles:    w.zoneTiles,
		OnSelect: w.areaSelected,
		OnChange: w.zonesChanged,
		Logger:   logger.With("component", "zone"),
	})
	w.roads = road.New(road.Options{
		Overlay:  w.overlay,
		OnChange: w.roadsChanged,
		Logger:   logger.With("component", "road"),
	})
	w.roads.Disable()

	logger.Info("world created", "width", w.dims.Width, "height", w.dims.Height, "catalog", cat.Len())
	return w, nil
}

// Config returns the effective configuration.
func (w *World) Config() config.World { return *w.cfg }

// Dims returns the grid extent.
func (w *World) Dims() grid.Dims { return w.dims }

// Catalog returns the spawnable catalog in use.
func (w *World) Catalog() *catalog.Catalog { return w.catalog }

// Tool returns the active tool.
func (w *World) Tool() Tool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.tool
}

// SelectTool activates t. Selecting the active tool again turns it off.
func (w *World) SelectTool(t Tool) {
	w.lock()
	if t == w.tool {
		t = ToolNone
	}
	w.clearTools()
	switch t {
	case ToolRoad:
		w.roads.Enable()
	case ToolBulldoze:
		w.roads.Enable()
		w.roads.SetDestroyMode(true)
	case ToolResidential, ToolCommercial, ToolIndustrial, ToolDezone:
		w.zones.SetType(t.Zone())
	}
	w.tool = t
	w.publish(Change{Type: ToolChanged, Tool: t})
	w.logger.Debug("tool selected", "tool", string(t))
	w.unlock()
}

func (w *World) clearTools() {
	w.roads.Disable()
	w.roads.SetDestroyMode(false)
	w.zones.SetType(zone.None)
	w.overlay.Clear()
}

// Handle routes one input event to the active tool. Invalid events and
// events on cells outside the grid are rejected; events the active tool does
// not use are ignored.
func (w *World) Handle(ev input.Event) error {
	if err := ev.Validate(); err != nil {
		return err
	}
	if !w.dims.InBounds(ev.Cell) {
		return fmt.Errorf("%s: cell outside the %dx%d grid", ev, w.dims.Width, w.dims.Height)
	}
	w.lock()
	defer w.unlock()

	sel := w.zones.Selector()
	switch ev.Kind {
	case input.PointerDown:
		if ev.Button == input.Secondary {
			w.roads.Cancel()
			return nil
		}
		w.roads.BeginOrContinue(ev.Cell)
	case input.PointerMove:
		w.roads.UpdateEndpoint(ev.Cell)
		sel.Hover(ev.Cell)
	case input.DragStart:
		sel.DragStart(ev.Cell)
	case input.DragMove:
		sel.DragMove(ev.Cell)
	case input.DragEnd:
		sel.DragEnd(ev.Cell)
	}
	return nil
}

// Request asks the spawner for a placement pass.
func (w *World) Request() { w.spawner.Request() }

// Run drives building placement until ctx is done.
func (w *World) Run(ctx context.Context) error {
	return w.spawner.Run(ctx)
}

// Settle runs placement passes on the caller's goroutine until nothing more
// fits and returns the number of buildings placed.
func (w *World) Settle(ctx context.Context) int {
	return w.spawner.Settle(ctx)
}

// Subscribe registers fn for change notifications. The returned func removes
// the subscription.
func (w *World) Subscribe(fn Subscriber) (unsubscribe func()) {
	w.subMu.Lock()
	id := w.nextSub
	w.nextSub++
	w.subs[id] = fn
	w.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			w.subMu.Lock()
			delete(w.subs, id)
			w.subMu.Unlock()
		})
	}
}

// lock and unlock bracket every input-driven mutation. Changes raised while
// the lock is held are delivered after it is released.
func (w *World) lock() {
	w.mu.Lock()
	w.handling.Store(true)
}

func (w *World) unlock() {
	w.handling.Store(false)
	w.mu.Unlock()
	w.flush()
}

func (w *World) publish(c Change) {
	w.pendMu.Lock()
	w.pending = append(w.pending, c)
	w.pendMu.Unlock()
}

func (w *World) flush() {
	w.flushMu.Lock()
	defer w.flushMu.Unlock()

	w.pendMu.Lock()
	batch := w.pending
	w.pending = nil
	w.pendMu.Unlock()
	if len(batch) == 0 {
		return
	}

	w.subMu.Lock()
	ids := make([]int, 0, len(w.subs))
	for id := range w.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	subs := make([]Subscriber, len(ids))
	for i, id := range ids {
		subs[i] = w.subs[id]
	}
	w.subMu.Unlock()

	for _, c := range batch {
		for _, fn := range subs {
			fn(c)
		}
	}
}

func (w *World) roadsChanged(cells []road.Cell) {
	tiles := make([]Tile, len(cells))
	for i, c := range cells {
		tiles[i] = Tile{Cell: c.Cell, Index: c.Archetype().Tile()}
	}
	w.roadTiles.Reset(tiles)
	w.zones.UpdateRoadCells(cells)
	w.spawner.SetRoadCells(cells)
	w.publish(Change{Type: RoadsChanged, Roads: cells})
}

func (w *World) zonesChanged(zoned map[grid.Key]zone.Type) {
	w.demand = demand.Compute(zone.Count(zoned))
	w.spawner.SetZonedCells(zoned)
	d := w.demand
	w.publish(Change{Type: ZonesChanged, Zoned: zonedCells(zoned), Demand: &d})
}

func (w *World) areaSelected(start, end grid.Cell) {
	w.publish(Change{Type: AreaSelected, Start: &start, End: &end})
}

// buildingsChanged runs inside input handling when a prune happens and on
// the worker goroutine after a placement.
func (w *World) buildingsChanged(buildings []spawner.Building) {
	w.publish(Change{Type: BuildingsChanged, Buildings: buildings})
	if !w.handling.Load() {
		w.flush()
	}
}

func zonedCells(zoned map[grid.Key]zone.Type) []ZonedCell {
	out := make([]ZonedCell, 0, len(zoned))
	for k, t := range zoned {
		out = append(out, ZonedCell{Cell: k.Cell(), Zone: t})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cell.Less(out[j].Cell) })
	return out
}
