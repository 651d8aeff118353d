// Package script replays recorded tool selections and pointer events
// against a world.
package script

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ChicagoDave/citycore/pkg/grid"
	"github.com/ChicagoDave/citycore/pkg/input"
	"github.com/ChicagoDave/citycore/pkg/world"
)

// Script is an ordered list of steps.
type Script struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Steps       []Step `yaml:"steps"`
}

// Step does exactly one thing.
type Step struct {
	Tool       string       `yaml:"tool,omitempty"`
	Click      *grid.Cell   `yaml:"click,omitempty"`
	RightClick *grid.Cell   `yaml:"right_click,omitempty"`
	Move       *grid.Cell   `yaml:"move,omitempty"`
	Drag       *DragDef     `yaml:"drag,omitempty"`
	Road       *DragDef     `yaml:"road,omitempty"`
	Event      *input.Event `yaml:"event,omitempty"`
	Settle     bool         `yaml:"settle,omitempty"`
}

// DragDef spans two cells.
type DragDef struct {
	From grid.Cell `yaml:"from"`
	To   grid.Cell `yaml:"to"`
}

// Result summarizes a replay.
type Result struct {
	Steps  int `json:"steps"`
	Events int `json:"events"`
	Placed int `json:"placed"`
}

// Load reads a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and checks a script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that every step names exactly one action.
func (s *Script) Validate() error {
	for i, st := range s.Steps {
		n := 0
		if st.Tool != "" {
			if _, err := world.ParseTool(st.Tool); err != nil {
				return fmt.Errorf("steps[%d]: %w", i, err)
			}
			n++
		}
		for _, set := range []bool{st.Click != nil, st.RightClick != nil, st.Move != nil, st.Drag != nil, st.Road != nil, st.Event != nil, st.Settle} {
			if set {
				n++
			}
		}
		if n != 1 {
			return fmt.Errorf("steps[%d]: want exactly one action, got %d", i, n)
		}
		if st.Event != nil {
			if err := st.Event.Validate(); err != nil {
				return fmt.Errorf("steps[%d]: %w", i, err)
			}
		}
	}
	return nil
}

// Events expands a step into the input events it sends.
func (st Step) Events() []input.Event {
	switch {
	case st.Click != nil:
		return []input.Event{input.Click(*st.Click)}
	case st.RightClick != nil:
		return []input.Event{input.RightClick(*st.RightClick)}
	case st.Move != nil:
		return []input.Event{input.Move(*st.Move)}
	case st.Drag != nil:
		return input.Drag(st.Drag.From, st.Drag.To)
	case st.Road != nil:
		// A full segment: anchor, commit, then end the chain.
		return []input.Event{
			input.Click(st.Road.From),
			input.Move(st.Road.To),
			input.Click(st.Road.To),
			input.RightClick(st.Road.To),
		}
	case st.Event != nil:
		return []input.Event{*st.Event}
	}
	return nil
}

// Run replays the script. Settle steps run placement to completion on the
// caller's goroutine.
func (s *Script) Run(ctx context.Context, w *world.World) (Result, error) {
	var res Result
	for i, st := range s.Steps {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		switch {
		case st.Tool != "":
			t, err := world.ParseTool(st.Tool)
			if err != nil {
				return res, fmt.Errorf("steps[%d]: %w", i, err)
			}
			if w.Tool() != t {
				w.SelectTool(t)
			}
		case st.Settle:
			res.Placed += w.Settle(ctx)
		default:
			for _, ev := range st.Events() {
				if err := w.Handle(ev); err != nil {
					return res, fmt.Errorf("steps[%d]: %w", i, err)
				}
				res.Events++
			}
		}
		res.Steps++
	}
	return res, nil
}
