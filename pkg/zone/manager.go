package zone

import (
	"io"
	"log/slog"
	"sort"

	"github.com/boljen/go-bitmap"

	"github.com/ChicagoDave/citycore/pkg/areaselect"
	"github.com/ChicagoDave/citycore/pkg/grid"
	"github.com/ChicagoDave/citycore/pkg/road"
)

// DefaultRadius is the number of cells probed from a road, counting the road
// cell itself.
const DefaultRadius = 5

// TileLayer receives zone marker updates.
type TileLayer interface {
	Put(c grid.Cell, tile int)
	Remove(c grid.Cell)
}

type nopLayer struct{}

func (nopLayer) Put(grid.Cell, int) {}
func (nopLayer) Remove(grid.Cell)   {}

// Options configures a Manager.
type Options struct {
	Dims     grid.Dims
	Radius   int
	Overlay  grid.Overlay
	Tiles    TileLayer
	OnSelect func(start, end grid.Cell)
	OnChange func(zoned map[grid.Key]Type)
	Logger   *slog.Logger
}

// Manager owns the zoneable and zoned cell sets. It is not safe for
// concurrent use.
type Manager struct {
	dims   grid.Dims
	radius int

	roads    bitmap.Bitmap
	zoneable map[grid.Key]struct{}
	zoned    map[grid.Key]Type

	mode     Mode
	active   Type
	selector *areaselect.Selector

	tiles    TileLayer
	onSelect func(start, end grid.Cell)
	onChange func(map[grid.Key]Type)
	logger   *slog.Logger
}

// New creates a manager with no roads and the zoning tool inactive.
func New(opts Options) *Manager {
	m := &Manager{
		dims:     opts.Dims,
		radius:   opts.Radius,
		roads:    bitmap.New(opts.Dims.Width * opts.Dims.Height),
		zoneable: make(map[grid.Key]struct{}),
		zoned:    make(map[grid.Key]Type),
		tiles:    opts.Tiles,
		onSelect: opts.OnSelect,
		onChange: opts.OnChange,
		logger:   opts.Logger,
	}
	if m.radius <= 0 {
		m.radius = DefaultRadius
	}
	if m.tiles == nil {
		m.tiles = nopLayer{}
	}
	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m.selector = areaselect.New(areaselect.Options{
		Overlay:      opts.Overlay,
		HoverPreview: true,
		OnSelect:     m.HandleAreaSelect,
	})
	return m
}

// Selector returns the area selector driven by the zoning tool.
func (m *Manager) Selector() *areaselect.Selector { return m.selector }

// SetType selects the zoning tool. None deactivates it, Dezone switches to
// erasing and any other type paints that type.
func (m *Manager) SetType(t Type) {
	switch {
	case t == None:
		m.mode = Inactive
		m.active = None
		m.selector.Disable()
		return
	case t == Dezone:
		m.mode = Dezoning
	default:
		m.mode = Zoning
	}
	m.active = t
	m.selector.SetColor(t.Color())
	m.selector.Enable()
}

// Type returns the active tool type, None when inactive.
func (m *Manager) Type() Type { return m.active }

// Mode returns the tool state.
func (m *Manager) Mode() Mode { return m.mode }

// UpdateRoadCells replaces the road snapshot and recomputes the zoneable set
// from scratch. Markers of cells that are no longer zoneable are removed.
// Road cells outside the grid are ignored.
func (m *Manager) UpdateRoadCells(cells []road.Cell) {
	m.roads = bitmap.New(m.dims.Width * m.dims.Height)
	for _, c := range cells {
		if m.dims.InBounds(c.Cell) {
			m.roads.Set(m.dims.Index(c.Cell), true)
		}
	}

	next := make(map[grid.Key]struct{})
	for _, origin := range cells {
		for i := 0; i < m.radius; i++ {
			for _, d := range grid.Directions {
				off := d.Offset()
				c := grid.Cell{X: origin.X + off.X*i, Y: origin.Y + off.Y*i}
				if m.isZoneable(origin, c) {
					next[c.Key()] = struct{}{}
				}
			}
		}
	}

	removed := 0
	for k := range m.zoneable {
		if _, ok := next[k]; !ok {
			m.tiles.Remove(k.Cell())
			removed++
		}
	}
	m.zoneable = next
	for k := range m.zoneable {
		m.tiles.Put(k.Cell(), TileZoneable)
	}
	m.logger.Debug("zoneable cells recomputed", "roads", len(cells), "zoneable", len(next), "removed", removed)
}

// isZoneable reports whether c may be zoned on behalf of the road at origin.
func (m *Manager) isZoneable(origin road.Cell, c grid.Cell) bool {
	if m.isRoad(c) {
		return false
	}
	if _, ok := m.zoned[c.Key()]; ok {
		return false
	}
	if !m.dims.InBounds(c) || m.dims.OnEdge(c) {
		return false
	}

	conn := origin.Connections
	open := conn.Open()
	if open == 4 {
		return false
	}
	// Never zone through a connected side.
	if conn.Top && c.Y < origin.Y ||
		conn.Bottom && c.Y > origin.Y ||
		conn.Left && c.X < origin.X ||
		conn.Right && c.X > origin.X {
		return false
	}
	// A dead end only zones across its axis, never in line with its mouth.
	if open >= 3 {
		vertical := conn.Top || conn.Bottom
		if vertical && c.X == origin.X {
			return false
		}
		if !vertical && c.Y == origin.Y {
			return false
		}
	}
	return true
}

func (m *Manager) isRoad(c grid.Cell) bool {
	return m.dims.InBounds(c) && m.roads.Get(m.dims.Index(c))
}

// HandleAreaSelect applies the active tool to the rectangle spanned by start
// and end, then emits the zoned set once. Dezoning returns zoned cells to the
// zoneable set unless a road now covers them; zoning paints only zoneable
// cells.
func (m *Manager) HandleAreaSelect(start, end grid.Cell) {
	if m.mode == Inactive {
		return
	}
	if m.onSelect != nil {
		m.onSelect(start, end)
	}
	changed := 0
	grid.RectOf(start, end).Each(func(c grid.Cell) {
		k := c.Key()
		if m.mode == Dezoning {
			if _, ok := m.zoned[k]; !ok {
				return
			}
			delete(m.zoned, k)
			m.tiles.Remove(c)
			changed++
			if m.isRoad(c) {
				return
			}
			m.zoneable[k] = struct{}{}
			m.tiles.Put(c, TileZoneable)
			return
		}
		if _, ok := m.zoneable[k]; !ok {
			return
		}
		delete(m.zoneable, k)
		m.zoned[k] = m.active
		m.tiles.Put(c, m.active.Tile())
		changed++
	})

	m.logger.Debug("area selected", "mode", m.mode.String(), "start", start, "end", end, "changed", changed)
	if m.onChange != nil {
		m.onChange(m.Zoned())
	}
}

// Zoned returns a copy of the zoned cells.
func (m *Manager) Zoned() map[grid.Key]Type {
	out := make(map[grid.Key]Type, len(m.zoned))
	for k, t := range m.zoned {
		out[k] = t
	}
	return out
}

// ZoneAt returns the zone painted on c.
func (m *Manager) ZoneAt(c grid.Cell) (Type, bool) {
	t, ok := m.zoned[c.Key()]
	return t, ok
}

// IsZoneable reports whether c is currently zoneable.
func (m *Manager) IsZoneable(c grid.Cell) bool {
	_, ok := m.zoneable[c.Key()]
	return ok
}

// Zoneable returns the zoneable cells ordered by x, then y.
func (m *Manager) Zoneable() []grid.Cell {
	return sortedCells(m.zoneable)
}

// Counts returns the number of zoned cells per type.
func (m *Manager) Counts() map[Type]int {
	return Count(m.zoned)
}

// Count tallies a zoned map per type.
func Count(zoned map[grid.Key]Type) map[Type]int {
	out := make(map[Type]int, len(Types))
	for _, t := range zoned {
		out[t]++
	}
	return out
}

func sortedCells(set map[grid.Key]struct{}) []grid.Cell {
	out := make([]grid.Cell, 0, len(set))
	for k := range set {
		out = append(out, k.Cell())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
