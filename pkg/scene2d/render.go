package scene2d

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"golang.org/x/image/colornames"

	"github.com/ChicagoDave/citycore/pkg/zone"
)

// ColourScheme defines how the features of a scene are coloured.
type ColourScheme struct {
	Background color.Color
	Grid       color.Color
	Zoneable   color.Color
	Roads      color.Color
	Outline    color.Color
	Zones      map[zone.Type]color.Color
	Buildings  map[zone.Type]color.Color
}

// DefaultScheme returns the debug palette.
func DefaultScheme() *ColourScheme {
	return &ColourScheme{
		Background: colornames.Whitesmoke,
		Grid:       colornames.Gainsboro,
		Zoneable:   colornames.Honeydew,
		Roads:      colornames.Dimgray,
		Outline:    colornames.Black,
		Zones: map[zone.Type]color.Color{
			zone.Residential: colornames.Palegreen,
			zone.Commercial:  colornames.Lightskyblue,
			zone.Industrial:  colornames.Burlywood,
		},
		Buildings: map[zone.Type]color.Color{
			zone.Residential: colornames.Seagreen,
			zone.Commercial:  colornames.Cornflowerblue,
			zone.Industrial:  colornames.Peru,
		},
	}
}

// Render draws the scene with one square of Metadata.CellSize pixels per
// cell.
func Render(sc *Scene2D, scheme *ColourScheme) image.Image {
	return draw(sc, scheme).Image()
}

// EncodePNG renders the scene and writes it to w as a PNG.
func EncodePNG(w io.Writer, sc *Scene2D, scheme *ColourScheme) error {
	if err := draw(sc, scheme).EncodePNG(w); err != nil {
		return fmt.Errorf("encoding scene: %w", err)
	}
	return nil
}

// SavePNG renders the scene to a PNG file.
func SavePNG(path string, sc *Scene2D, scheme *ColourScheme) error {
	if err := draw(sc, scheme).SavePNG(path); err != nil {
		return fmt.Errorf("saving scene to %s: %w", path, err)
	}
	return nil
}

func draw(sc *Scene2D, scheme *ColourScheme) *gg.Context {
	if scheme == nil {
		scheme = DefaultScheme()
	}
	cs := sc.Metadata.CellSize
	if cs <= 0 {
		cs = 1
	}
	size := float64(cs)
	ctx := gg.NewContext(sc.Metadata.Width*cs, sc.Metadata.Height*cs)

	ctx.SetColor(scheme.Background)
	ctx.Clear()

	if cs >= 4 {
		ctx.SetColor(scheme.Grid)
		ctx.SetLineWidth(1)
		for x := 0; x <= sc.Metadata.Width; x++ {
			ctx.DrawLine(float64(x*cs), 0, float64(x*cs), float64(sc.Metadata.Height*cs))
		}
		for y := 0; y <= sc.Metadata.Height; y++ {
			ctx.DrawLine(0, float64(y*cs), float64(sc.Metadata.Width*cs), float64(y*cs))
		}
		ctx.Stroke()
	}

	ctx.SetColor(scheme.Zoneable)
	for _, c := range sc.Zoneable {
		ctx.DrawRectangle(float64(c[0])*size, float64(c[1])*size, size, size)
	}
	ctx.Fill()

	for _, z := range sc.Zones {
		col, ok := scheme.Zones[zone.Type(z.Type)]
		if !ok {
			continue
		}
		ctx.SetColor(col)
		ctx.DrawRectangle(float64(z.Cell[0])*size, float64(z.Cell[1])*size, size, size)
		ctx.Fill()
	}

	// Roads are a centre square with an arm toward each connected side.
	ctx.SetColor(scheme.Roads)
	quarter := size / 4
	for _, r := range sc.Roads {
		x, y := float64(r.Cell[0])*size, float64(r.Cell[1])*size
		ctx.DrawRectangle(x+quarter, y+quarter, 2*quarter, 2*quarter)
		for _, side := range r.Sides {
			switch side {
			case "top":
				ctx.DrawRectangle(x+quarter, y, 2*quarter, quarter)
			case "bottom":
				ctx.DrawRectangle(x+quarter, y+3*quarter, 2*quarter, quarter)
			case "left":
				ctx.DrawRectangle(x, y+quarter, quarter, 2*quarter)
			case "right":
				ctx.DrawRectangle(x+3*quarter, y+quarter, quarter, 2*quarter)
			}
		}
	}
	ctx.Fill()

	inset := size / 8
	for _, b := range sc.Buildings {
		col, ok := scheme.Buildings[zone.Type(b.Zone)]
		if !ok {
			col = scheme.Outline
		}
		x := float64(b.RenderOrigin[0])*size + inset
		y := float64(b.RenderOrigin[1])*size + inset
		w := float64(b.Extent[0])*size - 2*inset
		h := float64(b.Extent[1])*size - 2*inset
		ctx.SetColor(col)
		ctx.DrawRectangle(x, y, w, h)
		ctx.FillPreserve()
		ctx.SetColor(scheme.Outline)
		ctx.SetLineWidth(1)
		ctx.Stroke()
	}

	if p := sc.Preview; p != nil && p.Color != "" {
		ctx.SetHexColor(p.Color)
		ctx.SetLineWidth(2)
		ctx.DrawRectangle(float64(p.Min[0])*size, float64(p.Min[1])*size,
			float64(p.Max[0]-p.Min[0]+1)*size, float64(p.Max[1]-p.Min[1]+1)*size)
		ctx.Stroke()
	}
	return ctx
}
