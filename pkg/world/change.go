package world

import (
	"github.com/ChicagoDave/citycore/pkg/demand"
	"github.com/ChicagoDave/citycore/pkg/grid"
	"github.com/ChicagoDave/citycore/pkg/road"
	"github.com/ChicagoDave/citycore/pkg/spawner"
	"github.com/ChicagoDave/citycore/pkg/zone"
)

// ChangeType names a world change notification.
type ChangeType string

const (
	RoadsChanged     ChangeType = "roads_changed"
	ZonesChanged     ChangeType = "zones_changed"
	AreaSelected     ChangeType = "area_selected"
	BuildingsChanged ChangeType = "buildings_changed"
	ToolChanged      ChangeType = "tool_changed"
)

// ZonedCell is one entry of the zone map.
type ZonedCell struct {
	grid.Cell `yaml:",inline"`
	Zone      zone.Type `json:"zone" yaml:"zone"`
}

// Change carries the full current value of whatever changed. Only the
// fields relevant to Type are set.
type Change struct {
	Type      ChangeType         `json:"type"`
	Roads     []road.Cell        `json:"roads,omitempty"`
	Zoned     []ZonedCell        `json:"zoned,omitempty"`
	Demand    *demand.Demand     `json:"demand,omitempty"`
	Start     *grid.Cell         `json:"start,omitempty"`
	End       *grid.Cell         `json:"end,omitempty"`
	Buildings []spawner.Building `json:"buildings,omitempty"`
	Tool      Tool               `json:"tool,omitempty"`
}

// Subscriber receives changes in the order they happened. It may call back
// into the World.
type Subscriber func(Change)
