package docxaur

import (
	"context"

	"github.com/nekoprog/DocXaur/pkg/docxaur/ooxml"
)

// Run is one styled span of inline content. Zero-value flags mean plain text.
type Run struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
	Strike    bool
	Color     string // RRGGBB
	Size      string // font size as a dimension, e.g. "12pt"
	Font      string
	Tab       bool // emit a tab before the text
	Break     bool // emit a line break before the text
	PageBreak bool // emit a page break before the text
}

// Paragraph composes styled runs, tabs and breaks into one block.
type Paragraph struct {
	style string
	align string
	runs  []Run
}

// NewParagraph creates an empty paragraph.
func NewParagraph() *Paragraph {
	return &Paragraph{}
}

// Style sets the paragraph style id (e.g. "Heading1").
func (p *Paragraph) Style(style string) *Paragraph {
	p.style = style
	return p
}

// Align sets paragraph justification: "left", "center", "right" or "both".
func (p *Paragraph) Align(align string) *Paragraph {
	p.align = align
	return p
}

// Text appends a plain text run.
func (p *Paragraph) Text(text string) *Paragraph {
	p.runs = append(p.runs, Run{Text: text})
	return p
}

// Add appends a styled run.
func (p *Paragraph) Add(r Run) *Paragraph {
	p.runs = append(p.runs, r)
	return p
}

// prepare implements Element. Paragraphs hold no registered resources.
func (p *Paragraph) prepare(ctx context.Context, d *Document) error {
	return nil
}

// render implements Element.
func (p *Paragraph) render(d *Document) ([]ooxml.BodyElement, error) {
	out, err := p.compose(d)
	if err != nil {
		return nil, err
	}
	return []ooxml.BodyElement{out}, nil
}

// compose builds the markup paragraph. Shared with table cells, which embed
// paragraphs outside the body element stream.
func (p *Paragraph) compose(d *Document) (ooxml.Paragraph, error) {
	var props *ooxml.ParagraphProperties
	if p.style != "" || p.align != "" {
		props = &ooxml.ParagraphProperties{Style: p.style, Alignment: p.align}
	}

	out := ooxml.Paragraph{Properties: props}
	for _, r := range p.runs {
		runs, err := composeRun(d, r)
		if err != nil {
			return ooxml.Paragraph{}, err
		}
		out.Content = append(out.Content, runs...)
	}
	return out, nil
}

// composeRun lowers one Run to markup runs. Break and tab markers are
// emitted as leading sibling runs so the text keeps its own formatting.
func composeRun(d *Document, r Run) ([]ooxml.ParagraphContent, error) {
	var out []ooxml.ParagraphContent

	if r.PageBreak {
		out = append(out, ooxml.Run{Break: &ooxml.Break{Type: "page"}})
	}
	if r.Break {
		out = append(out, ooxml.Run{Break: &ooxml.Break{}})
	}
	if r.Tab {
		out = append(out, ooxml.Run{Tab: true})
	}
	if r.Text == "" {
		return out, nil
	}

	props := ooxml.RunProperties{
		Bold:   r.Bold,
		Italic: r.Italic,
		Strike: r.Strike,
		Color:  r.Color,
		Font:   r.Font,
	}
	if r.Underline {
		props.Underline = "single"
	}
	if r.Size != "" {
		// w:sz counts half-points: one point is two units.
		tw, err := twips(r.Size, d.cfg.StrictDimensions, 0)
		if err != nil {
			return nil, err
		}
		props.Size = tw / 10
	}

	run := ooxml.Run{Text: &ooxml.Text{Content: r.Text}}
	if !props.IsZero() {
		run.Properties = &props
	}
	return append(out, run), nil
}
