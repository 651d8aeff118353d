// Package zone derives the zoneable area around roads and keeps the zone
// designations painted onto it.
package zone

import (
	"fmt"
	"image/color"

	"golang.org/x/image/colornames"
)

// Type is a zone designation. Dezone is the erase pseudo-type and None means
// no zoning tool is active.
type Type string

const (
	None        Type = ""
	Residential Type = "residential"
	Commercial  Type = "commercial"
	Industrial  Type = "industrial"
	Dezone      Type = "dezone"
)

// Types lists the real zone types in display order.
var Types = []Type{Residential, Commercial, Industrial}

// ParseType converts a name into a Type. "none" and "" both yield None.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case Residential, Commercial, Industrial, Dezone:
		return Type(s), nil
	case None, "none":
		return None, nil
	}
	return None, fmt.Errorf("unknown zone type %q", s)
}

// Placeable reports whether buildings can be spawned on the type.
func (t Type) Placeable() bool {
	return t == Residential || t == Commercial || t == Industrial
}

// Marker tiles in the zone tileset.
const (
	TileZoneable    = 0
	TileResidential = 1
	TileCommercial  = 2
	TileIndustrial  = 3
)

// Tile returns the marker tile painted for a zoned cell.
func (t Type) Tile() int {
	switch t {
	case Residential:
		return TileResidential
	case Commercial:
		return TileCommercial
	case Industrial:
		return TileIndustrial
	}
	return TileZoneable
}

// Color returns the preview tint of the tool.
func (t Type) Color() color.Color {
	switch t {
	case Residential:
		return colornames.Seagreen
	case Commercial:
		return colornames.Cornflowerblue
	case Industrial:
		return colornames.Peru
	}
	return colornames.Black
}

// Mode is the state of the zoning tool.
type Mode int

const (
	Inactive Mode = iota
	Zoning
	Dezoning
)

func (m Mode) String() string {
	switch m {
	case Zoning:
		return "zoning"
	case Dezoning:
		return "dezoning"
	}
	return "inactive"
}
