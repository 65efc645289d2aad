package docxaur

import (
	"context"

	"github.com/nekoprog/DocXaur/pkg/docxaur/ooxml"
)

// PageSetup declares a section's page geometry in dimension strings.
type PageSetup struct {
	Width        string
	Height       string
	Orientation  string // "portrait" (default) or "landscape"
	MarginTop    string
	MarginRight  string
	MarginBottom string
	MarginLeft   string
}

// A4Portrait returns the default page setup: A4 with 2cm margins.
func A4Portrait() PageSetup {
	return PageSetup{
		Width:        "21cm",
		Height:       "29.7cm",
		MarginTop:    "2cm",
		MarginRight:  "2cm",
		MarginBottom: "2cm",
		MarginLeft:   "2cm",
	}
}

// Section holds an ordered sequence of elements plus page configuration.
// Sections are owned exclusively by their Document and are append-only.
type Section struct {
	page     PageSetup
	elements []Element
}

// AddParagraph appends a paragraph element.
func (s *Section) AddParagraph(p *Paragraph) *Section {
	s.elements = append(s.elements, p)
	return s
}

// AddImage appends an image element.
func (s *Section) AddImage(img *Image) *Section {
	s.elements = append(s.elements, img)
	return s
}

// AddTable appends a table element.
func (s *Section) AddTable(t *Table) *Section {
	s.elements = append(s.elements, t)
	return s
}

// AddShape appends a shape element wrapped in its own paragraph.
func (s *Section) AddShape(sh *Shape) *Section {
	s.elements = append(s.elements, sh)
	return s
}

// prepare forces phase-1 preparation of every element in insertion order.
// Tables fan out their own cell initialization internally.
func (s *Section) prepare(ctx context.Context, d *Document) error {
	for _, el := range s.elements {
		if err := el.prepare(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

// properties resolves the page setup to section properties. Dimension
// defaults fall back to A4 geometry when lenient parsing rejects the input.
func (s *Section) properties(d *Document) (*ooxml.SectionProperties, error) {
	strict := d.cfg.StrictDimensions
	a4 := A4Portrait()

	resolve := func(val, fallback string) (int, error) {
		def, _ := twips(fallback, false, 0)
		if val == "" {
			return def, nil
		}
		return twips(val, strict, def)
	}

	width, err := resolve(s.page.Width, a4.Width)
	if err != nil {
		return nil, err
	}
	height, err := resolve(s.page.Height, a4.Height)
	if err != nil {
		return nil, err
	}
	top, err := resolve(s.page.MarginTop, a4.MarginTop)
	if err != nil {
		return nil, err
	}
	right, err := resolve(s.page.MarginRight, a4.MarginRight)
	if err != nil {
		return nil, err
	}
	bottom, err := resolve(s.page.MarginBottom, a4.MarginBottom)
	if err != nil {
		return nil, err
	}
	left, err := resolve(s.page.MarginLeft, a4.MarginLeft)
	if err != nil {
		return nil, err
	}

	if s.page.Orientation == "landscape" && height > width {
		width, height = height, width
	}

	return &ooxml.SectionProperties{
		PageSize: ooxml.PageSize{
			Width:       width,
			Height:      height,
			Orientation: s.page.Orientation,
		},
		PageMargins: ooxml.PageMargins{
			Top:    top,
			Right:  right,
			Bottom: bottom,
			Left:   left,
			Header: 708,
			Footer: 708,
		},
	}, nil
}

// render emits the section's elements followed by its page properties.
// The final section's sectPr closes the body directly; earlier sections
// wrap theirs in a separator paragraph, per the structural convention of
// the format.
func (s *Section) render(d *Document, last bool, body *ooxml.Body) error {
	for _, el := range s.elements {
		rendered, err := el.render(d)
		if err != nil {
			return err
		}
		body.Elements = append(body.Elements, rendered...)
	}

	props, err := s.properties(d)
	if err != nil {
		return err
	}
	if last {
		body.SectionProperties = props
	} else {
		body.Elements = append(body.Elements, ooxml.Paragraph{
			Properties: &ooxml.ParagraphProperties{SectionProperties: props},
		})
	}
	return nil
}
