package main

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/image/colornames"

	"github.com/ChicagoDave/citycore/pkg/grid"
	"github.com/ChicagoDave/citycore/pkg/input"
	"github.com/ChicagoDave/citycore/pkg/road"
	"github.com/ChicagoDave/citycore/pkg/world"
	"github.com/ChicagoDave/citycore/pkg/zone"
)

// One terminal cell per grid cell; the status lines sit under the grid.
const frameInterval = 50 * time.Millisecond

// roadRunes is indexed by the connection mask top=1, right=2, bottom=4, left=8.
var roadRunes = [16]rune{
	'·', '╵', '╶', '└', '╷', '│', '┌', '├',
	'╴', '┘', '─', '┴', '┐', '┤', '┬', '┼',
}

var toolKeys = map[rune]world.Tool{
	'r': world.ToolRoad,
	'b': world.ToolBulldoze,
	'1': world.ToolResidential,
	'2': world.ToolCommercial,
	'3': world.ToolIndustrial,
	'd': world.ToolDezone,
	'n': world.ToolNone,
}

type game struct {
	screen  tcell.Screen
	world   *world.World
	surface *input.Surface
	buttons tcell.ButtonMask
	status  string
	logger  *slog.Logger
}

func runPlay(cmd *cobra.Command, wf worldFlags, logFile string) error {
	cfg, err := loadValid(cmd, wf)
	if err != nil {
		return err
	}

	var logOut io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := newLogger(logOut, cfg.Log)

	w, err := world.New(cfg, world.Options{Logger: logger})
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)

	g := &game{screen: screen, world: w, logger: logger}
	// Terminal cells are the pointer's pixels.
	g.surface = input.NewSurface(w.Dims(), 1, g.handle)
	g.status = "r road  b bulldoze  1 res  2 com  3 ind  d dezone  n none  q quit"

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	g.run()
	return nil
}

func (g *game) handle(ev input.Event) {
	if err := g.world.Handle(ev); err != nil {
		g.logger.Warn("input rejected", "event", ev.String(), "err", err)
	}
}

func (g *game) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	g.draw()
	for {
		select {
		case ev := <-eventChan:
			if !g.handleInput(ev) {
				return
			}
		case <-ticker.C:
			g.draw()
		}
	}
}

func (g *game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		if ev.Rune() == 'q' {
			return false
		}
		if t, ok := toolKeys[ev.Rune()]; ok {
			g.world.SelectTool(t)
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		btn := ev.Buttons() & (tcell.Button1 | tcell.Button2)
		switch {
		case btn&tcell.Button1 != 0 && g.buttons&tcell.Button1 == 0:
			g.surface.Press(x, y, input.Primary)
		case btn&tcell.Button2 != 0 && g.buttons&tcell.Button2 == 0:
			g.surface.Press(x, y, input.Secondary)
		case btn == tcell.ButtonNone && g.buttons != tcell.ButtonNone:
			g.surface.Release(x, y)
		default:
			g.surface.Motion(x, y)
		}
		g.buttons = btn

	case *tcell.EventResize:
		g.screen.Sync()
	}
	return true
}

func (g *game) draw() {
	st := g.world.Snapshot()
	g.screen.Clear()

	base := tcell.StyleDefault.Background(rgb(colornames.Black)).Foreground(rgb(colornames.Dimgray))
	for y := 0; y < st.Dims.Height; y++ {
		for x := 0; x < st.Dims.Width; x++ {
			g.screen.SetContent(x, y, '.', nil, base)
		}
	}

	for _, c := range st.Zoneable {
		g.screen.SetContent(c.X, c.Y, '.', nil, base.Background(rgb(colornames.Darkslategray)))
	}
	for _, z := range st.Zoned {
		g.screen.SetContent(z.X, z.Y, ' ', nil, base.Background(zoneColor(z.Zone)))
	}

	roadStyle := tcell.StyleDefault.Background(rgb(colornames.Black)).Foreground(rgb(colornames.Lightgray))
	for _, r := range st.Roads {
		g.screen.SetContent(r.X, r.Y, roadRune(r.Connections), nil, roadStyle)
	}

	for _, b := range st.Buildings {
		style := tcell.StyleDefault.Background(zoneColor(b.Spawnable.Zone)).Foreground(rgb(colornames.Black)).Bold(true)
		label := []rune(b.Spawnable.Name)
		for i, c := range b.Footprint {
			r := '#'
			if i == 0 && len(label) > 0 {
				r = label[0]
			}
			g.screen.SetContent(c.X, c.Y, r, nil, style)
		}
	}

	if p := st.Preview; p != nil {
		p.Rect.Each(func(c grid.Cell) {
			if !st.Dims.InBounds(c) {
				return
			}
			mainc, comb, style, _ := g.screen.GetContent(c.X, c.Y)
			g.screen.SetContent(c.X, c.Y, mainc, comb, style.Reverse(true))
		})
	}

	d := st.Demand
	lines := []string{
		fmt.Sprintf("tool: %-12s roads: %-5d zoned: %-5d buildings: %-4d", st.Tool, len(st.Roads), len(st.Zoned), len(st.Buildings)),
		fmt.Sprintf("demand  R %.1f  C %.1f  I %.1f", d.Residential, d.Commercial, d.Industrial),
		g.status,
	}
	text := tcell.StyleDefault.Foreground(rgb(colornames.White))
	for i, line := range lines {
		for x, r := range line {
			g.screen.SetContent(x, st.Dims.Height+i, r, nil, text)
		}
	}

	g.screen.Show()
}

func roadRune(c road.Connections) rune {
	mask := 0
	for i, d := range grid.Directions {
		if c.Has(d) {
			mask |= 1 << i
		}
	}
	return roadRunes[mask]
}

func zoneColor(t zone.Type) tcell.Color {
	switch t {
	case zone.Residential:
		return rgb(colornames.Seagreen)
	case zone.Commercial:
		return rgb(colornames.Cornflowerblue)
	case zone.Industrial:
		return rgb(colornames.Peru)
	}
	return rgb(colornames.Black)
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
