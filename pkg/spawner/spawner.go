// Package spawner grows buildings on zoned land next to roads.
package spawner

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"

	"github.com/ChicagoDave/citycore/pkg/catalog"
	"github.com/ChicagoDave/citycore/pkg/grid"
	"github.com/ChicagoDave/citycore/pkg/road"
	"github.com/ChicagoDave/citycore/pkg/zone"
)

// DefaultDelay is the pause between two placements.
const DefaultDelay = 300 * time.Millisecond

// Options configures a Spawner.
type Options struct {
	Catalog *catalog.Catalog
	Rand    *rand.Rand
	// Delay between placements. Zero selects DefaultDelay; a negative value
	// disables the pause.
	Delay    time.Duration
	OnChange func(buildings []Building)
	Logger   *slog.Logger
}

// Spawner places buildings on zoned clusters. Snapshots may be pushed from
// any goroutine; placement passes are serialized.
type Spawner struct {
	catalog *catalog.Catalog
	delay   time.Duration

	mu        sync.Mutex
	rng       *rand.Rand
	zoned     map[grid.Key]zone.Type
	roads     map[grid.Key]struct{}
	buildings []*Building
	occupied  map[grid.Key]*Building

	pass     sync.Mutex
	trigger  chan struct{}
	onChange func([]Building)
	logger   *slog.Logger
}

// New creates a spawner with no zones, roads or buildings.
func New(opts Options) *Spawner {
	s := &Spawner{
		catalog:  opts.Catalog,
		delay:    opts.Delay,
		rng:      opts.Rand,
		zoned:    make(map[grid.Key]zone.Type),
		roads:    make(map[grid.Key]struct{}),
		occupied: make(map[grid.Key]*Building),
		trigger:  make(chan struct{}, 1),
		onChange: opts.OnChange,
		logger:   opts.Logger,
	}
	if s.catalog == nil {
		s.catalog = catalog.Default()
	}
	if s.delay == 0 {
		s.delay = DefaultDelay
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// SetZonedCells replaces the zone snapshot, prunes buildings that lost their
// land and requests a placement pass.
func (s *Spawner) SetZonedCells(zoned map[grid.Key]zone.Type) {
	s.mu.Lock()
	s.zoned = make(map[grid.Key]zone.Type, len(zoned))
	for k, t := range zoned {
		s.zoned[k] = t
	}
	pruned := s.prune()
	out := s.snapshot()
	s.mu.Unlock()

	if pruned > 0 {
		s.emit(out)
	}
	s.Request()
}

// SetRoadCells replaces the road snapshot, prunes buildings now covered by a
// road and requests a placement pass.
func (s *Spawner) SetRoadCells(cells []road.Cell) {
	s.mu.Lock()
	s.roads = make(map[grid.Key]struct{}, len(cells))
	for _, c := range cells {
		s.roads[c.Key()] = struct{}{}
	}
	pruned := s.prune()
	out := s.snapshot()
	s.mu.Unlock()

	if pruned > 0 {
		s.emit(out)
	}
	s.Request()
}

// Request schedules a placement pass. Requests made while one is pending
// coalesce.
func (s *Spawner) Request() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Run executes requested passes until ctx is cancelled.
func (s *Spawner) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.trigger:
			s.Pass(ctx)
		}
	}
}

// Settle runs passes until one places nothing or ctx ends, and returns the
// number of buildings placed.
func (s *Spawner) Settle(ctx context.Context) int {
	total := 0
	for ctx.Err() == nil {
		n := s.Pass(ctx)
		if n == 0 {
			break
		}
		total += n
	}
	return total
}

// Pass runs one placement pass over every cluster and returns the number of
// buildings placed. Each placement is followed by the configured pause, and
// the remaining cells of a cluster are re-checked against the current zones,
// roads and buildings before every placement.
func (s *Spawner) Pass(ctx context.Context) int {
	s.pass.Lock()
	defer s.pass.Unlock()

	s.mu.Lock()
	clusters := Clusters(s.zoned, s.blocked)
	s.mu.Unlock()

	placed := 0
	for _, cl := range clusters {
		remaining := mapset.New[grid.Key]()
		for _, c := range cl.Cells {
			remaining.Put(c.Key())
		}
		for remaining.Size() > 0 {
			s.mu.Lock()
			s.revalidate(cl.Zone, remaining)
			b, ok := s.placeOne(cl.Zone, remaining)
			out := s.snapshot()
			s.mu.Unlock()
			if !ok {
				break
			}
			placed++
			s.logger.Debug("building placed", "name", b.Spawnable.Name, "zone", cl.Zone, "origin", b.Origin, "facing", b.Facing)
			s.emit(out)

			if !s.pause(ctx) {
				return placed
			}
		}
	}
	if placed > 0 {
		s.logger.Info("placement pass finished", "placed", placed, "clusters", len(clusters))
	}
	return placed
}

func (s *Spawner) pause(ctx context.Context) bool {
	if s.delay < 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// placeOne performs one placement step on the remaining cells of a cluster.
// Callers hold s.mu.
func (s *Spawner) placeOne(t zone.Type, remaining mapset.Set[grid.Key]) (*Building, bool) {
	cells := keysOf(remaining)
	bounds, ok := grid.Bounds(cells)
	if !ok {
		return nil, false
	}

	anchor, sides, w, h, ok := s.anchor(t, cells, bounds)
	if !ok {
		return nil, false
	}

	facing := sides[s.rng.Intn(len(sides))]
	var fits []catalog.Spawnable
	for _, sp := range s.catalog.Fitting(t, facing, w, h) {
		if s.footprintFree(t, Footprint(sp.Size, anchor, facing)) {
			fits = append(fits, sp)
		}
	}
	if len(fits) == 0 {
		return nil, false
	}
	sp := fits[s.rng.Intn(len(fits))]

	id, err := uuid.NewRandomFromReader(s.rng)
	if err != nil {
		id = uuid.New()
	}
	b := NewBuilding(id, sp, anchor, facing)
	s.buildings = append(s.buildings, &b)
	for _, c := range b.Footprint {
		s.occupied[c.Key()] = &b
		remaining.Remove(c.Key())
	}
	return &b, true
}

// anchor picks the first road-adjacent cell, in x then y order, that has at
// least one road-facing side some catalog entry can use. It returns the
// usable sides and the free width and height around the cell.
func (s *Spawner) anchor(t zone.Type, cells []grid.Cell, bounds grid.Rect) (grid.Cell, []grid.Direction, int, int, bool) {
	reach := s.catalog.MaxExtent(t)
	for _, c := range cells {
		if _, taken := s.occupied[c.Key()]; taken {
			continue
		}
		roadSides := s.roadSides(c)
		if len(roadSides) == 0 {
			continue
		}
		w, h := s.localExtent(t, c, reach)
		w = min(w, bounds.Width())
		h = min(h, bounds.Height())

		var usable []grid.Direction
		for _, d := range roadSides {
			if len(s.catalog.Fitting(t, d, w, h)) > 0 {
				usable = append(usable, d)
			}
		}
		if len(usable) > 0 {
			return c, usable, w, h, true
		}
	}
	return grid.Cell{}, nil, 0, 0, false
}

// roadSides lists the sides of c that touch a road, in top, right, bottom,
// left order.
func (s *Spawner) roadSides(c grid.Cell) []grid.Direction {
	var sides []grid.Direction
	for _, d := range grid.Directions {
		if _, ok := s.roads[c.Step(d).Key()]; ok {
			sides = append(sides, d)
		}
	}
	return sides
}

// localExtent counts the free cells contiguous with c along each axis, up to
// reach-1 cells per side.
func (s *Spawner) localExtent(t zone.Type, c grid.Cell, reach int) (w, h int) {
	probe := func(d grid.Direction) int {
		n := 0
		cur := c
		for n < reach-1 {
			cur = cur.Step(d)
			if !s.free(t, cur) {
				break
			}
			n++
		}
		return n
	}
	w = 1 + probe(grid.Left) + probe(grid.Right)
	h = 1 + probe(grid.Top) + probe(grid.Bottom)
	return w, h
}

// free reports whether c is zoned with t and holds neither a road nor a
// building.
func (s *Spawner) free(t zone.Type, c grid.Cell) bool {
	k := c.Key()
	return s.zoned[k] == t && !s.blocked(k)
}

func (s *Spawner) blocked(k grid.Key) bool {
	if _, ok := s.occupied[k]; ok {
		return true
	}
	_, ok := s.roads[k]
	return ok
}

func (s *Spawner) footprintFree(t zone.Type, cells []grid.Cell) bool {
	for _, c := range cells {
		if !s.free(t, c) {
			return false
		}
	}
	return true
}

// revalidate drops cells that stopped being free since the last step.
func (s *Spawner) revalidate(t zone.Type, remaining mapset.Set[grid.Key]) {
	var stale []grid.Key
	remaining.Each(func(k grid.Key) {
		if !s.free(t, k.Cell()) {
			stale = append(stale, k)
		}
	})
	for _, k := range stale {
		remaining.Remove(k)
	}
}

// prune removes buildings whose footprint is no longer entirely zoned with
// their type or is crossed by a road. Callers hold s.mu.
func (s *Spawner) prune() int {
	kept := s.buildings[:0]
	removed := 0
	for _, b := range s.buildings {
		if s.standing(b) {
			kept = append(kept, b)
			continue
		}
		for _, c := range b.Footprint {
			delete(s.occupied, c.Key())
		}
		removed++
		s.logger.Debug("building removed", "name", b.Spawnable.Name, "origin", b.Origin)
	}
	for i := len(kept); i < len(s.buildings); i++ {
		s.buildings[i] = nil
	}
	s.buildings = kept
	return removed
}

func (s *Spawner) standing(b *Building) bool {
	for _, c := range b.Footprint {
		k := c.Key()
		if s.zoned[k] != b.Spawnable.Zone {
			return false
		}
		if _, ok := s.roads[k]; ok {
			return false
		}
	}
	return true
}

// Buildings returns the placed buildings in placement order.
func (s *Spawner) Buildings() []Building {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// BuildingAt returns the building covering c.
func (s *Spawner) BuildingAt(c grid.Cell) (Building, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.occupied[c.Key()]
	if !ok {
		return Building{}, false
	}
	return *b, true
}

func (s *Spawner) snapshot() []Building {
	out := make([]Building, len(s.buildings))
	for i, b := range s.buildings {
		out[i] = *b
	}
	return out
}

func (s *Spawner) emit(buildings []Building) {
	if s.onChange != nil {
		s.onChange(buildings)
	}
}

func keysOf(set mapset.Set[grid.Key]) []grid.Cell {
	cells := make([]grid.Cell, 0, set.Size())
	set.Each(func(k grid.Key) {
		cells = append(cells, k.Cell())
	})
	sort.Slice(cells, func(i, j int) bool { return cells[i].Less(cells[j]) })
	return cells
}
