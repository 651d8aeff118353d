package spawner

import (
	"fmt"

	"github.com/ChicagoDave/citycore/pkg/grid"
	"github.com/ChicagoDave/citycore/pkg/validation"
)

// Verify checks that footprints never overlap, that every footprint cell is
// zoned with the building's type and that the occupancy index matches the
// building list.
func (s *Spawner) Verify() *validation.Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := validation.NewReport()
	owner := make(map[grid.Key]*Building)
	for i, b := range s.buildings {
		path := fmt.Sprintf("buildings[%d]", i)
		for _, c := range b.Footprint {
			k := c.Key()
			if prev, dup := owner[k]; dup {
				r.AddError(validation.Result{
					Level:        validation.LevelPlacement,
					Message:      fmt.Sprintf("%s (%s) overlaps %s at %v", path, b.Spawnable.Name, prev.Spawnable.Name, c),
					Path:         path,
					Cells:        []grid.Cell{c},
					ConflictWith: prev.ID.String(),
				})
			}
			owner[k] = b

			if t := s.zoned[k]; t != b.Spawnable.Zone {
				r.AddError(validation.Result{
					Level:       validation.LevelPlacement,
					Message:     fmt.Sprintf("%s (%s) covers %v which is zoned %q", path, b.Spawnable.Name, c, t),
					Path:        path + ".footprint",
					Cells:       []grid.Cell{c},
					ActualValue: string(t),
					Expected:    string(b.Spawnable.Zone),
				})
			}
			if occ, ok := s.occupied[k]; !ok || occ != b {
				r.AddError(validation.Result{
					Level:   validation.LevelPlacement,
					Message: fmt.Sprintf("occupancy index does not map %v to %s", c, path),
					Path:    path + ".footprint",
					Cells:   []grid.Cell{c},
				})
			}
		}
	}
	for k := range s.occupied {
		if _, ok := owner[k]; !ok {
			r.AddError(validation.Result{
				Level:   validation.LevelPlacement,
				Message: fmt.Sprintf("occupancy index holds %v but no building covers it", k.Cell()),
				Cells:   []grid.Cell{k.Cell()},
			})
		}
	}
	if len(s.buildings) > 0 {
		r.AddInfo(validation.Result{
			Level:   validation.LevelPlacement,
			Message: fmt.Sprintf("%d buildings on %d cells", len(s.buildings), len(s.occupied)),
		})
	}
	return r
}
