package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ChicagoDave/citycore/internal/server"
	"github.com/ChicagoDave/citycore/pkg/catalog"
	"github.com/ChicagoDave/citycore/pkg/config"
	"github.com/ChicagoDave/citycore/pkg/scene2d"
	"github.com/ChicagoDave/citycore/pkg/script"
	"github.com/ChicagoDave/citycore/pkg/validation"
	"github.com/ChicagoDave/citycore/pkg/world"
)

// loadConfig loads the configured world file, applies flag overrides and
// runs schema validation.
func loadConfig(cmd *cobra.Command, wf worldFlags) (*config.World, *validation.Report, error) {
	cfg := config.Default()
	if wf.config != "" {
		info, err := os.Stat(wf.config)
		if err != nil {
			return nil, nil, fmt.Errorf("loading config: %w", err)
		}
		if info.IsDir() {
			cfg, err = config.LoadProject(wf.config)
		} else {
			cfg, err = config.Load(wf.config)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("loading config: %w", err)
		}
	}
	if cmd.Flags().Changed("seed") {
		cfg.Spawner.Seed = wf.seed
	}
	if cmd.Flags().Changed("delay") {
		cfg.Spawner.Delay = wf.delay
	}
	return cfg, validation.ValidateSchema(cfg), nil
}

// loadValid is loadConfig that prints schema errors and refuses to go on.
func loadValid(cmd *cobra.Command, wf worldFlags) (*config.World, error) {
	cfg, schemaReport, err := loadConfig(cmd, wf)
	if err != nil {
		return nil, err
	}
	if !schemaReport.Valid {
		printValidationReport(cmd.ErrOrStderr(), schemaReport)
		return nil, fmt.Errorf("config has validation errors")
	}
	return cfg, nil
}

// replay builds a world, without placement pauses unless --delay is given,
// runs the script and lets placement settle.
func replay(cmd *cobra.Command, wf worldFlags, scriptPath string) (*world.World, *script.Script, script.Result, error) {
	s, err := script.Load(scriptPath)
	if err != nil {
		return nil, nil, script.Result{}, err
	}
	cfg, err := loadValid(cmd, wf)
	if err != nil {
		return nil, nil, script.Result{}, err
	}
	if !cmd.Flags().Changed("delay") {
		cfg.Spawner.Delay = -1
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.Log)
	w, err := world.New(cfg, world.Options{Logger: logger})
	if err != nil {
		return nil, nil, script.Result{}, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	res, err := s.Run(ctx, w)
	if err != nil {
		return nil, nil, res, fmt.Errorf("replaying %s: %w", scriptPath, err)
	}
	res.Placed += w.Settle(ctx)
	logger.Debug("script replayed", "script", s.Name, "steps", res.Steps, "placed", res.Placed)
	return w, s, res, nil
}

func runSimulate(cmd *cobra.Command, wf worldFlags, scriptPath, pngPath string) error {
	w, s, res, err := replay(cmd, wf, scriptPath)
	if err != nil {
		return err
	}

	sc := scene2d.Assemble2D(w.Snapshot())
	if pngPath != "" {
		if err := scene2d.SavePNG(pngPath, sc, nil); err != nil {
			return err
		}
	}

	output := map[string]any{
		"script":     s.Name,
		"result":     res,
		"validation": w.Validate(),
		"scene":      sc,
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func runValidate(cmd *cobra.Command, wf worldFlags, scriptPath string) (*validation.Report, error) {
	w, s, res, err := replay(cmd, wf, scriptPath)
	if err != nil {
		return nil, err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Script %q: %d steps, %d events, %d buildings placed\n\n", s.Name, res.Steps, res.Events, res.Placed)

	report := w.Validate()
	printValidationReport(out, report)
	return report, nil
}

func runCatalog(out io.Writer, path string) (*validation.Report, error) {
	cat := catalog.Default()
	if path != "" {
		loaded, err := catalog.Load(path)
		if err != nil {
			return nil, err
		}
		cat = loaded
	}
	printCatalog(out, cat)
	fmt.Fprintln(out)

	report := cat.Validate()
	printValidationReport(out, report)
	return report, nil
}

func runServe(cmd *cobra.Command, wf worldFlags, port int) error {
	cfg, err := loadValid(cmd, wf)
	if err != nil {
		return err
	}
	if port == 0 {
		port = cfg.Server.Port
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.Log)
	w, err := world.New(cfg, world.Options{Logger: logger})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go w.Run(ctx)

	return server.New(w, port, logger.With("component", "server")).Start(ctx)
}
