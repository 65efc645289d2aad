package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/nekoprog/DocXaur/pkg/docxaur"
)

// DocumentSpec is the TOML document description the build command consumes.
//
//	title = "Quarterly report"
//	creator = "reporting pipeline"
//
//	[[section]]
//	width = "21cm"
//	height = "29.7cm"
//
//	[[section.element]]
//	kind = "paragraph"
//	text = "Results"
//	style = "Heading1"
//
//	[[section.element]]
//	kind = "table"
//	width = "100%"
//	columns = ["40%", "60%"]
//	[[section.element.row]]
//	cells = ["Region", "Revenue"]
//	header = true
type DocumentSpec struct {
	Title       string        `toml:"title"`
	Creator     string        `toml:"creator"`
	Description string        `toml:"description"`
	Sections    []SectionSpec `toml:"section"`
}

// SectionSpec declares one section: page geometry plus ordered elements.
type SectionSpec struct {
	Width        string        `toml:"width"`
	Height       string        `toml:"height"`
	Orientation  string        `toml:"orientation"`
	MarginTop    string        `toml:"margin_top"`
	MarginRight  string        `toml:"margin_right"`
	MarginBottom string        `toml:"margin_bottom"`
	MarginLeft   string        `toml:"margin_left"`
	Elements     []ElementSpec `toml:"element"`
}

// ElementSpec is a kind-discriminated element declaration. Exactly the
// fields relevant to its kind are read; the kinds are "paragraph",
// "image", "shape" and "table".
type ElementSpec struct {
	Kind string `toml:"kind"`

	// paragraph and shape text
	Text  string `toml:"text"`
	Style string `toml:"style"`
	Align string `toml:"align"`

	// image
	Locator string `toml:"locator"`

	// shared extent
	Width  string `toml:"width"`
	Height string `toml:"height"`

	// shape
	Preset       string `toml:"preset"`
	Fill         string `toml:"fill"`
	OutlineColor string `toml:"outline_color"`
	OutlineWidth string `toml:"outline_width"`

	// table
	Columns []string  `toml:"columns"`
	Rows    []RowSpec `toml:"row"`
}

// RowSpec declares one table row of plain-text cells.
type RowSpec struct {
	Cells  []string `toml:"cells"`
	Header bool     `toml:"header"`
	Height string   `toml:"height"`
}

// LoadSpec reads and decodes a TOML document description.
func LoadSpec(path string) (*DocumentSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spec: %w", err)
	}
	var spec DocumentSpec
	if err := toml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("decoding spec: %w", err)
	}
	return &spec, nil
}

// BuildDocument lowers a document description to the builder model.
func BuildDocument(spec *DocumentSpec, opts ...docxaur.Option) (*docxaur.Document, error) {
	opts = append(opts, docxaur.WithMetadata(docxaur.Metadata{
		Title:       spec.Title,
		Creator:     spec.Creator,
		Description: spec.Description,
	}))
	doc := docxaur.New(opts...)

	sections := spec.Sections
	if len(sections) == 0 {
		sections = []SectionSpec{{}}
	}

	for si, ss := range sections {
		page := docxaur.A4Portrait()
		if ss.Width != "" {
			page.Width = ss.Width
		}
		if ss.Height != "" {
			page.Height = ss.Height
		}
		if ss.Orientation != "" {
			page.Orientation = ss.Orientation
		}
		if ss.MarginTop != "" {
			page.MarginTop = ss.MarginTop
		}
		if ss.MarginRight != "" {
			page.MarginRight = ss.MarginRight
		}
		if ss.MarginBottom != "" {
			page.MarginBottom = ss.MarginBottom
		}
		if ss.MarginLeft != "" {
			page.MarginLeft = ss.MarginLeft
		}

		sec := doc.AddSection(page)
		for ei, es := range ss.Elements {
			if err := addElement(sec, es); err != nil {
				return nil, fmt.Errorf("section %d element %d: %w", si, ei, err)
			}
		}
	}
	return doc, nil
}

func addElement(sec *docxaur.Section, es ElementSpec) error {
	switch es.Kind {
	case "paragraph":
		p := docxaur.NewParagraph().Style(es.Style).Align(es.Align)
		if es.Text != "" {
			p.Text(es.Text)
		}
		sec.AddParagraph(p)

	case "image":
		if es.Locator == "" {
			return fmt.Errorf("image element needs a locator")
		}
		sec.AddImage(docxaur.NewImage(es.Locator).Sized(es.Width, es.Height))

	case "shape":
		sh := docxaur.NewShape(es.Preset)
		sh.Width = es.Width
		sh.Height = es.Height
		sh.Fill = es.Fill
		sh.Outline = docxaur.Outline{Color: es.OutlineColor, Width: es.OutlineWidth}
		sh.Text = es.Text
		sec.AddShape(sh)

	case "table":
		if len(es.Columns) == 0 {
			return fmt.Errorf("table element needs columns")
		}
		cols := make([]docxaur.TableColumn, len(es.Columns))
		for i, w := range es.Columns {
			cols[i] = docxaur.TableColumn{Width: w}
		}
		tbl := docxaur.NewTable(es.Width, cols)
		for _, row := range es.Rows {
			cells := make([]docxaur.Cell, len(row.Cells))
			for i, text := range row.Cells {
				cells[i] = docxaur.Cell{Text: text}
			}
			tbl.Row(cells, &docxaur.RowOptions{Header: row.Header, Height: row.Height})
		}
		sec.AddTable(tbl)

	default:
		return fmt.Errorf("unknown element kind %q", es.Kind)
	}
	return nil
}
