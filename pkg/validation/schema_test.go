package validation

import (
	"testing"

	"github.com/ChicagoDave/citycore/pkg/config"
)

func validWorld() *config.World {
	w := config.Default()
	w.Spawner.Seed = 7
	return w
}

func TestValidateSchemaValid(t *testing.T) {
	r := ValidateSchema(validWorld())
	if !r.Valid {
		t.Errorf("expected valid report, got %d errors: %v", len(r.Errors), r.Errors)
	}
	if len(r.Info) != 0 {
		t.Errorf("expected no info, got %v", r.Info)
	}
}

func TestValidateSchemaErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(w *config.World)
		path   string
	}{
		{"tiny grid", func(w *config.World) { w.Grid.Width = 2 }, "grid"},
		{"huge grid", func(w *config.World) { w.Grid.Height = 1 << 16 }, "grid"},
		{"cell size", func(w *config.World) { w.Grid.CellSize = -1 }, "grid.cell_size"},
		{"radius", func(w *config.World) { w.Zoning.Radius = 1 }, "zoning.radius"},
		{"port", func(w *config.World) { w.Server.Port = 70000 }, "server.port"},
		{"log level", func(w *config.World) { w.Log.Level = "loud" }, "log.level"},
		{"log format", func(w *config.World) { w.Log.Format = "xml" }, "log.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := validWorld()
			tt.mutate(w)
			r := ValidateSchema(w)
			if r.Valid {
				t.Fatal("expected invalid report")
			}
			if r.Errors[0].Path != tt.path {
				t.Errorf("path = %q, want %q", r.Errors[0].Path, tt.path)
			}
			if r.Errors[0].Level != LevelConfig {
				t.Errorf("level = %q, want config", r.Errors[0].Level)
			}
		})
	}
}

func TestValidateSchemaNotes(t *testing.T) {
	w := validWorld()
	w.Spawner.Seed = 0
	w.Spawner.Delay = -1
	w.Zoning.Radius = 100
	r := ValidateSchema(w)
	if !r.Valid {
		t.Errorf("notes should not invalidate the report: %v", r.Errors)
	}
	if len(r.Info) != 2 {
		t.Errorf("expected 2 info, got %d", len(r.Info))
	}
	if len(r.Warnings) != 1 {
		t.Errorf("expected 1 warning, got %d", len(r.Warnings))
	}
}
