package main

import (
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const exportPadding = 20.0

// ExportToPNG draws every element at one pixel per logical unit, cropped to
// the element bounds plus padding.
func (c *Canvas) ExportToPNG(filename string) error {
	dc, err := c.renderImage()
	if err != nil {
		return err
	}
	return dc.SavePNG(filename)
}

func (c *Canvas) renderImage() (*gg.Context, error) {
	bounds, ok := c.Bounds()
	if !ok {
		return nil, ErrNothingToExport
	}
	minX := bounds.MinX - exportPadding
	minY := bounds.MinY - exportPadding
	imageWidth := int(bounds.MaxX-bounds.MinX+2*exportPadding) + 1
	imageHeight := int(bounds.MaxY-bounds.MinY+2*exportPadding) + 1

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(color.White)
	dc.Clear()

	ttfFont, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	faces := make(map[float64]font.Face)
	faceFor := func(size float64) font.Face {
		if size <= 0 {
			size = 16
		}
		if f, ok := faces[size]; ok {
			return f
		}
		f := truetype.NewFace(ttfFont, &truetype.Options{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		faces[size] = f
		return f
	}

	dc.Translate(-minX, -minY)
	for _, el := range c.Export() {
		drawElementPNG(dc, &el, faceFor)
	}
	return dc, nil
}

func drawElementPNG(dc *gg.Context, el *Element, faceFor func(float64) font.Face) {
	s := el.Style
	switch g := el.Geometry.(type) {
	case RectGeometry:
		dc.DrawRectangle(g.X, g.Y, g.Width, g.Height)
	case EllipseGeometry:
		dc.DrawEllipse(g.CX, g.CY, g.RX, g.RY)
	case CircleGeometry:
		dc.DrawCircle(g.CX, g.CY, g.R)
	case PolygonGeometry:
		if len(g.Points) == 0 {
			return
		}
		dc.MoveTo(g.Points[0].X, g.Points[0].Y)
		for _, p := range g.Points[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.ClosePath()
	case TextGeometry:
		if fill, ok := styleColor(s.FillColor, s.Opacity); ok {
			dc.SetFontFace(faceFor(s.FontSize))
			dc.SetColor(fill)
			// Text is positioned by its top-left corner.
			dc.DrawStringAnchored(g.Content, g.X, g.Y, 0, 1)
		}
		return
	default:
		return
	}

	if fill, ok := styleColor(s.FillColor, s.Opacity); ok {
		dc.SetColor(fill)
		dc.FillPreserve()
	}
	if stroke, ok := styleColor(s.StrokeColor, s.Opacity); ok && s.StrokeWidth > 0 {
		dc.SetColor(stroke)
		dc.SetLineWidth(s.StrokeWidth)
		dc.StrokePreserve()
	}
	dc.ClearPath()
}

// styleColor parses a hex style colour; "none" and unparsable values report
// ok=false.
func styleColor(hex string, opacity float64) (color.Color, bool) {
	if hex == "" || strings.EqualFold(hex, "none") {
		return nil, false
	}
	c, err := colorful.Hex(expandHex(hex))
	if err != nil {
		return nil, false
	}
	r, g, b := c.RGB255()
	if opacity < 0 || opacity > 1 {
		opacity = 1
	}
	return color.NRGBA{R: r, G: g, B: b, A: uint8(opacity * 255)}, true
}

// ExportVisualTXT writes the current view exactly as the terminal shows it,
// without colours.
func (c *Canvas) ExportVisualTXT(filename string, width, height int) error {
	if width < 1 {
		width = 80
	}
	if height < 1 {
		height = 24
	}
	if !c.viewport.Ready() {
		return fmt.Errorf("no canvas view available")
	}
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	for _, line := range c.rasterize(width, height).plain() {
		fmt.Fprintln(file, strings.TrimRight(line, " "))
	}
	return nil
}
