package docxaur

import (
	"context"
	"fmt"
	"strings"

	"github.com/nekoprog/DocXaur/pkg/docxaur/ooxml"
)

// Shape is a preset-geometry drawing element: rectangle, ellipse and the
// other DrawingML preset names, with optional fill, outline and embedded text.
type Shape struct {
	Preset  string // preset geometry name; defaults to "rect"
	Width   string
	Height  string
	Fill    string // RRGGBB or #RRGGBB
	Outline Outline
	Text    string
}

// Outline describes a shape's stroke.
type Outline struct {
	Color string // RRGGBB or #RRGGBB; empty means no outline
	Width string // stroke width as a dimension, e.g. "1pt"
}

// NewShape creates a shape element with the given preset geometry.
func NewShape(preset string) *Shape {
	return &Shape{Preset: preset}
}

// prepare implements Element. Shapes register no external resources.
func (s *Shape) prepare(ctx context.Context, d *Document) error {
	return nil
}

// render implements Element.
func (s *Shape) render(d *Document) ([]ooxml.BodyElement, error) {
	run, err := s.composeRun(d)
	if err != nil {
		return nil, err
	}
	return []ooxml.BodyElement{ooxml.Paragraph{Content: []ooxml.ParagraphContent{run}}}, nil
}

// composeRun builds the drawing run for this shape. Shared with table cells.
func (s *Shape) composeRun(d *Document) (ooxml.Run, error) {
	strict := d.cfg.StrictDimensions

	// Unset extents fall back to a 1-inch square.
	cx, cy := int64(emuPerInch), int64(emuPerInch)
	var err error
	if s.Width != "" {
		if cx, err = emu(s.Width, strict, int64(emuPerInch)); err != nil {
			return ooxml.Run{}, err
		}
	}
	if s.Height != "" {
		if cy, err = emu(s.Height, strict, int64(emuPerInch)); err != nil {
			return ooxml.Run{}, err
		}
	}

	preset := s.Preset
	if preset == "" {
		preset = "rect"
	}

	shape := &ooxml.Shape{
		Preset:    preset,
		FillColor: normalizeColor(s.Fill),
		LineColor: normalizeColor(s.Outline.Color),
	}
	if shape.LineColor != "" && s.Outline.Width != "" {
		w, err := emu(s.Outline.Width, strict, 9525)
		if err != nil {
			return ooxml.Run{}, err
		}
		shape.LineWidthEMU = w
	}
	if s.Text != "" {
		shape.Text = []ooxml.Paragraph{{
			Properties: &ooxml.ParagraphProperties{Alignment: "center"},
			Content:    []ooxml.ParagraphContent{ooxml.Run{Text: &ooxml.Text{Content: s.Text}}},
		}}
	}

	id := d.nextDrawingID()
	return ooxml.Run{
		Drawing: &ooxml.Drawing{
			ID:        id,
			Name:      fmt.Sprintf("Shape %d", id),
			WidthEMU:  cx,
			HeightEMU: cy,
			Shape:     shape,
		},
	}, nil
}

// normalizeColor strips a leading # and uppercases hex colors.
func normalizeColor(c string) string {
	return strings.ToUpper(strings.TrimPrefix(c, "#"))
}
