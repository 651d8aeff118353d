package validation

import (
	"fmt"

	"github.com/ChicagoDave/citycore/pkg/config"
)

// MinGridSide is the smallest grid side that leaves an interior to zone.
const MinGridSide = 3

// ValidateSchema checks a world configuration for structural problems before
// a world is built from it.
func ValidateSchema(w *config.World) *Report {
	r := NewReport()

	validateGrid(w, r)
	validateZoning(w, r)
	validateSpawner(w, r)
	validateServer(w, r)
	validateLog(w, r)

	return r
}

func validateGrid(w *config.World, r *Report) {
	g := w.Grid
	if g.Width < MinGridSide || g.Height < MinGridSide {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     fmt.Sprintf("grid must be at least %dx%d (got %dx%d)", MinGridSide, MinGridSide, g.Width, g.Height),
			Path:        "grid",
			ActualValue: fmt.Sprintf("%dx%d", g.Width, g.Height),
			Expected:    fmt.Sprintf(">= %dx%d", MinGridSide, MinGridSide),
		})
	}
	if g.Width > 1<<15 || g.Height > 1<<15 {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     "grid side must not exceed 32768 cells",
			Path:        "grid",
			ActualValue: fmt.Sprintf("%dx%d", g.Width, g.Height),
		})
	}
	if g.CellSize <= 0 {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     "grid.cell_size must be greater than 0",
			Path:        "grid.cell_size",
			ActualValue: g.CellSize,
			Expected:    "> 0",
		})
	}
}

func validateZoning(w *config.World, r *Report) {
	if w.Zoning.Radius < 2 {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     "zoning.radius must reach at least one cell past the road",
			Path:        "zoning.radius",
			ActualValue: w.Zoning.Radius,
			Expected:    ">= 2",
		})
	}
	if side := min(w.Grid.Width, w.Grid.Height); w.Zoning.Radius > side {
		r.AddWarning(Result{
			Level:       LevelConfig,
			Message:     fmt.Sprintf("zoning.radius %d is larger than the grid", w.Zoning.Radius),
			Path:        "zoning.radius",
			ActualValue: w.Zoning.Radius,
		})
	}
}

func validateSpawner(w *config.World, r *Report) {
	if w.Spawner.Delay < 0 {
		r.AddInfo(Result{
			Level:   LevelConfig,
			Message: "spawner.delay is negative, buildings are placed without pausing",
			Path:    "spawner.delay",
		})
	}
	if w.Spawner.Seed == 0 {
		r.AddInfo(Result{
			Level:   LevelConfig,
			Message: "spawner.seed is 0, placement is seeded from the clock",
			Path:    "spawner.seed",
		})
	}
}

func validateServer(w *config.World, r *Report) {
	if w.Server.Port <= 0 || w.Server.Port > 65535 {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     "server.port must be between 1 and 65535",
			Path:        "server.port",
			ActualValue: w.Server.Port,
			Expected:    "1-65535",
		})
	}
}

func validateLog(w *config.World, r *Report) {
	switch w.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     fmt.Sprintf("log.level %q is not recognized", w.Log.Level),
			Path:        "log.level",
			ActualValue: w.Log.Level,
			Expected:    "debug, info, warn or error",
		})
	}
	switch w.Log.Format {
	case "text", "json":
	default:
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     fmt.Sprintf("log.format %q is not recognized", w.Log.Format),
			Path:        "log.format",
			ActualValue: w.Log.Format,
			Expected:    "text or json",
		})
	}
}
