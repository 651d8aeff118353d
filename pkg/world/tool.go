package world

import (
	"fmt"

	"github.com/ChicagoDave/citycore/pkg/zone"
)

// Tool is the active editing tool.
type Tool string

const (
	ToolNone        Tool = "none"
	ToolRoad        Tool = "road"
	ToolBulldoze    Tool = "bulldoze"
	ToolResidential Tool = "residential"
	ToolCommercial  Tool = "commercial"
	ToolIndustrial  Tool = "industrial"
	ToolDezone      Tool = "dezone"
)

// Tools lists the selectable tools in toolbar order.
var Tools = []Tool{ToolRoad, ToolResidential, ToolCommercial, ToolIndustrial, ToolDezone, ToolBulldoze}

// ParseTool converts a name into a Tool.
func ParseTool(s string) (Tool, error) {
	switch t := Tool(s); t {
	case ToolNone, ToolRoad, ToolBulldoze, ToolResidential, ToolCommercial, ToolIndustrial, ToolDezone:
		return t, nil
	case "":
		return ToolNone, nil
	}
	return ToolNone, fmt.Errorf("unknown tool %q", s)
}

// Zone returns the zone type painted by the tool, None for road tools.
func (t Tool) Zone() zone.Type {
	switch t {
	case ToolResidential:
		return zone.Residential
	case ToolCommercial:
		return zone.Commercial
	case ToolIndustrial:
		return zone.Industrial
	case ToolDezone:
		return zone.Dezone
	}
	return zone.None
}
