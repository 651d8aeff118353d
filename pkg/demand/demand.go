// Package demand estimates how much more of each zone type the city wants.
package demand

import "github.com/ChicagoDave/citycore/pkg/zone"

// Each zoned cell of one type creates demand for the others.
const (
	CommercialToIndustrial  = 0.5
	CommercialToResidential = 1.5
	ResidentialToIndustrial = 0.3
	ResidentialToCommercial = 0.7
	IndustrialToResidential = 2.0
	IndustrialToCommercial  = 0.5
)

// Demand is the unmet demand per zone type, never negative.
type Demand struct {
	Residential float64 `json:"residential"`
	Commercial  float64 `json:"commercial"`
	Industrial  float64 `json:"industrial"`
}

// Compute derives demand from the number of zoned cells per type. Demand
// generated by the other types is reduced by the supply already zoned.
func Compute(counts map[zone.Type]int) Demand {
	r := float64(counts[zone.Residential])
	c := float64(counts[zone.Commercial])
	i := float64(counts[zone.Industrial])

	var d Demand
	d.Industrial += c * CommercialToIndustrial
	d.Residential += c * CommercialToResidential
	d.Industrial += r * ResidentialToIndustrial
	d.Commercial += r * ResidentialToCommercial
	d.Residential += i * IndustrialToResidential
	d.Commercial += i * IndustrialToCommercial

	d.Residential = max(0, d.Residential-r)
	d.Commercial = max(0, d.Commercial-c)
	d.Industrial = max(0, d.Industrial-i)
	return d
}

// Of returns the demand for t.
func (d Demand) Of(t zone.Type) float64 {
	switch t {
	case zone.Residential:
		return d.Residential
	case zone.Commercial:
		return d.Commercial
	case zone.Industrial:
		return d.Industrial
	}
	return 0
}

// Highest returns the type with the largest demand, None when nothing is
// wanted. Ties resolve in residential, commercial, industrial order.
func (d Demand) Highest() zone.Type {
	best, top := zone.None, 0.0
	for _, t := range zone.Types {
		if v := d.Of(t); v > top {
			best, top = t, v
		}
	}
	return best
}
