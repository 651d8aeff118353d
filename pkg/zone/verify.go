package zone

import (
	"fmt"

	"github.com/ChicagoDave/citycore/pkg/grid"
	"github.com/ChicagoDave/citycore/pkg/validation"
)

// Verify checks that no cell is both zoneable and zoned and that nothing
// zoneable sits on a road. Zoned cells later covered by a road are reported
// as warnings.
func (m *Manager) Verify() *validation.Report {
	r := validation.NewReport()
	for _, c := range m.Zoneable() {
		if t, ok := m.zoned[c.Key()]; ok {
			r.AddError(validation.Result{
				Level:        validation.LevelZoning,
				Message:      fmt.Sprintf("cell %v is both zoneable and zoned %s", c, t),
				Path:         fmt.Sprintf("zoneable.%d.%d", c.X, c.Y),
				Cells:        []grid.Cell{c},
				ConflictWith: fmt.Sprintf("zoned.%d.%d", c.X, c.Y),
			})
		}
		if m.isRoad(c) {
			r.AddError(validation.Result{
				Level:   validation.LevelZoning,
				Message: fmt.Sprintf("zoneable cell %v is a road", c),
				Path:    fmt.Sprintf("zoneable.%d.%d", c.X, c.Y),
				Cells:   []grid.Cell{c},
			})
		}
	}
	for k, t := range m.zoned {
		if !t.Placeable() {
			r.AddError(validation.Result{
				Level:       validation.LevelZoning,
				Message:     fmt.Sprintf("cell %v holds non-placeable zone %q", k.Cell(), t),
				Cells:       []grid.Cell{k.Cell()},
				ActualValue: t,
				Expected:    "residential, commercial or industrial",
			})
		}
		if m.isRoad(k.Cell()) {
			r.AddWarning(validation.Result{
				Level:   validation.LevelZoning,
				Message: fmt.Sprintf("zoned cell %v is covered by a road", k.Cell()),
				Cells:   []grid.Cell{k.Cell()},
			})
		}
	}
	return r
}
