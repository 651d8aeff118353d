package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ChicagoDave/citycore/pkg/config"
	"github.com/ChicagoDave/citycore/pkg/road"
	"github.com/ChicagoDave/citycore/pkg/validation"
)

const (
	projectDir = "../../examples/default-world"
	mainStreet = "../../examples/default-world/scripts/main-street.yaml"
)

func TestSimulateCommand(t *testing.T) {
	png := filepath.Join(t.TempDir(), "scene.png")
	cmd := simulateCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--config", projectDir, "--seed", "5", "--png", png, mainStreet})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("simulate: %v", err)
	}

	var got struct {
		Script string `json:"script"`
		Result struct {
			Placed int `json:"placed"`
		} `json:"result"`
		Validation validation.Report `json:"validation"`
	}
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if got.Script != "main street" {
		t.Errorf("expected script name, got %q", got.Script)
	}
	if got.Result.Placed == 0 {
		t.Error("expected buildings to be placed")
	}
	if !got.Validation.Valid {
		t.Errorf("expected a valid world: %s", got.Validation.Summary)
	}
	if info, err := os.Stat(png); err != nil || info.Size() == 0 {
		t.Errorf("expected a PNG at %s: %v", png, err)
	}
}

func TestValidateCommand(t *testing.T) {
	cmd := validateCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)

	report, err := runValidate(cmd, worldFlags{config: projectDir}, mainStreet)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !report.Valid {
		t.Errorf("expected a valid world: %s", report.Summary)
	}
	if !strings.Contains(out.String(), "Result: VALID") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestCatalogCommand(t *testing.T) {
	var out bytes.Buffer
	report, err := runCatalog(&out, "")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if !report.Valid {
		t.Errorf("expected the embedded catalog to be valid: %s", report.Summary)
	}
	for _, want := range []string{"cottage", "warehouse", "max extent"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("catalog output missing %q", want)
		}
	}

	if _, err := runCatalog(io.Discard, "does-not-exist.yaml"); err == nil {
		t.Error("expected an error for a missing catalog")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	cmd := simulateCmd()
	if err := cmd.ParseFlags([]string{"--config", projectDir + "/world.yaml", "--seed", "9", "--delay", "10ms"}); err != nil {
		t.Fatal(err)
	}
	wf := worldFlags{config: projectDir + "/world.yaml", seed: 9}
	wf.delay, _ = cmd.Flags().GetDuration("delay")

	cfg, report, err := loadConfig(cmd, wf)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Spawner.Seed != 9 || cfg.Spawner.Delay.Milliseconds() != 10 {
		t.Errorf("overrides not applied: seed %d delay %v", cfg.Spawner.Seed, cfg.Spawner.Delay)
	}
	if !report.Valid {
		t.Errorf("expected a valid config: %s", report.Summary)
	}

	if _, _, err := loadConfig(simulateCmd(), worldFlags{config: "missing"}); err == nil {
		t.Error("expected an error for a missing config")
	}
}

func TestPrintValidationReport(t *testing.T) {
	r := validation.NewReport()
	r.AddError(validation.Result{
		Level:        validation.LevelPlacement,
		Message:      "cottage overlaps kiosk",
		Path:         "buildings[1]",
		ActualValue:  "3,4",
		ConflictWith: "kiosk",
	})
	r.AddWarning(validation.Result{Level: validation.LevelZoning, Message: "zoned cell under a road"})

	var out bytes.Buffer
	printValidationReport(&out, r)
	for _, want := range []string{"ERRORS (1)", "-> buildings[1] = 3,4", "conflicts with: kiosk", "WARNINGS (1)", "Result: INVALID"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("report output missing %q:\n%s", want, out.String())
		}
	}
}

func TestNewLogger(t *testing.T) {
	var out bytes.Buffer
	logger := newLogger(&out, config.LogDef{Level: "warn", Format: "json"})
	logger.Info("hidden")
	logger.Warn("shown", "cell", "1,2")
	if strings.Contains(out.String(), "hidden") {
		t.Error("info line logged at warn level")
	}
	var line map[string]any
	if err := json.Unmarshal(out.Bytes(), &line); err != nil {
		t.Fatalf("expected one JSON line, got %q: %v", out.String(), err)
	}
	if line["msg"] != "shown" {
		t.Errorf("unexpected log line %v", line)
	}
}

func TestRoadRune(t *testing.T) {
	tests := []struct {
		conn road.Connections
		want rune
	}{
		{road.Connections{Left: true, Right: true}, '─'},
		{road.Connections{Top: true, Right: true, Bottom: true, Left: true}, '┼'},
		{road.Connections{Right: true, Bottom: true}, '┌'},
		{road.Connections{Top: true}, '╵'},
		{road.Connections{}, '·'},
	}
	for _, tt := range tests {
		if r := roadRune(tt.conn); r != tt.want {
			t.Errorf("%+v: expected %q, got %q", tt.conn, tt.want, r)
		}
	}
}
