package catalog

import (
	"fmt"

	"github.com/ChicagoDave/citycore/pkg/validation"
	"github.com/ChicagoDave/citycore/pkg/zone"
)

// Validate checks that every entry is placeable.
func (c *Catalog) Validate() *validation.Report {
	r := validation.NewReport()

	for _, t := range zone.Types {
		if len(c.entries[t]) == 0 {
			r.AddWarning(validation.Result{
				Level:       validation.LevelCatalog,
				Message:     fmt.Sprintf("no spawnables for %s zones", t),
				Path:        string(t),
				Suggestions: []string{fmt.Sprintf("Add at least one %s entry so zoned cells can grow", t)},
			})
		}
	}

	for _, t := range c.Types() {
		if !t.Placeable() {
			r.AddError(validation.Result{
				Level:       validation.LevelCatalog,
				Message:     fmt.Sprintf("catalog group %q is not a zone type", t),
				Path:        string(t),
				ActualValue: string(t),
				Expected:    "residential, commercial or industrial",
			})
			continue
		}
		validateEntries(t, c.entries[t], r)
	}

	r.AddInfo(validation.Result{
		Level:   validation.LevelCatalog,
		Message: fmt.Sprintf("%d spawnables across %d zone types", c.Len(), len(c.entries)),
	})
	return r
}

func validateEntries(t zone.Type, list []Spawnable, r *validation.Report) {
	seen := make(map[string]int, len(list))
	for i, s := range list {
		path := fmt.Sprintf("%s[%d]", t, i)
		if s.Name == "" {
			r.AddError(validation.Result{
				Level:    validation.LevelCatalog,
				Message:  fmt.Sprintf("%s: name is required", path),
				Path:     path + ".name",
				Expected: "non-empty string",
			})
		} else if prev, dup := seen[s.Name]; dup {
			r.AddError(validation.Result{
				Level:        validation.LevelCatalog,
				Message:      fmt.Sprintf("%s: duplicate name %q", path, s.Name),
				Path:         path + ".name",
				ConflictWith: fmt.Sprintf("%s[%d]", t, prev),
			})
		} else {
			seen[s.Name] = i
		}

		if s.Size.Width <= 0 || s.Size.Height <= 0 {
			r.AddError(validation.Result{
				Level:       validation.LevelCatalog,
				Message:     fmt.Sprintf("%s (%s): size must be positive", path, s.Name),
				Path:        path + ".size",
				ActualValue: fmt.Sprintf("%dx%d", s.Size.Width, s.Size.Height),
				Expected:    ">= 1x1",
			})
		}
		if len(s.Orientations) == 0 {
			r.AddError(validation.Result{
				Level:       validation.LevelCatalog,
				Message:     fmt.Sprintf("%s (%s): at least one orientation is required", path, s.Name),
				Path:        path + ".orientations",
				Suggestions: []string{"List the road-facing sides the building may use: top, right, bottom, left"},
			})
		}
	}
}
