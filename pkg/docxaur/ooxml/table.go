package ooxml

import (
	"encoding/xml"
	"strconv"
)

// Table represents a table in the document
type Table struct {
	Properties TableProperties
	Grid       TableGrid
	Rows       []TableRow
}

// isBodyElement implements the BodyElement interface
func (t Table) isBodyElement() {}

// MarshalXML implements custom XML marshaling for Table to ensure proper namespacing
func (t Table) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tbl"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if err := e.Encode(t.Properties); err != nil {
		return err
	}
	if err := e.Encode(t.Grid); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := e.Encode(row); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Width represents a resolved width with its unit kind ("dxa" or "pct").
type Width struct {
	Type string
	Val  int
}

func (w Width) marshalAs(e *xml.Encoder, local string) error {
	el := xml.StartElement{
		Name: xml.Name{Local: local},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "w:w"}, Value: strconv.Itoa(w.Val)},
			{Name: xml.Name{Local: "w:type"}, Value: w.Type},
		},
	}
	return e.EncodeElement(struct{}{}, el)
}

// TableProperties represents table formatting properties
type TableProperties struct {
	Width   *Width
	Borders bool // single-line borders on all edges when set
	Layout  string
}

// MarshalXML implements custom XML marshaling for TableProperties
func (p TableProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tblPr"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if p.Width != nil {
		if err := p.Width.marshalAs(e, "w:tblW"); err != nil {
			return err
		}
	}
	if p.Borders {
		if err := e.EncodeToken(xml.StartElement{Name: xml.Name{Local: "w:tblBorders"}}); err != nil {
			return err
		}
		for _, edge := range []string{"w:top", "w:left", "w:bottom", "w:right", "w:insideH", "w:insideV"} {
			el := xml.StartElement{
				Name: xml.Name{Local: edge},
				Attr: []xml.Attr{
					{Name: xml.Name{Local: "w:val"}, Value: "single"},
					{Name: xml.Name{Local: "w:sz"}, Value: "4"},
					{Name: xml.Name{Local: "w:space"}, Value: "0"},
					{Name: xml.Name{Local: "w:color"}, Value: "auto"},
				},
			}
			if err := e.EncodeElement(struct{}{}, el); err != nil {
				return err
			}
		}
		if err := e.EncodeToken(xml.EndElement{Name: xml.Name{Local: "w:tblBorders"}}); err != nil {
			return err
		}
	}
	if p.Layout != "" {
		el := xml.StartElement{
			Name: xml.Name{Local: "w:tblLayout"},
			Attr: []xml.Attr{{Name: xml.Name{Local: "w:type"}, Value: p.Layout}},
		}
		if err := e.EncodeElement(struct{}{}, el); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// TableGrid represents table column definitions
type TableGrid struct {
	Columns []GridColumn
}

// MarshalXML implements custom XML marshaling for TableGrid
func (g TableGrid) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tblGrid"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, col := range g.Columns {
		if err := e.Encode(col); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// GridColumn represents a table column
type GridColumn struct {
	Width int
}

// MarshalXML implements custom XML marshaling for GridColumn
func (g GridColumn) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:gridCol"}
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "w:w"}, Value: strconv.Itoa(g.Width)},
	}
	return e.EncodeElement(struct{}{}, start)
}

// TableRow represents a row in a table
type TableRow struct {
	Properties *TableRowProperties
	Cells      []TableCell
}

// MarshalXML implements custom XML marshaling for TableRow to ensure proper namespacing
func (r TableRow) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tr"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if r.Properties != nil {
		if err := e.Encode(r.Properties); err != nil {
			return err
		}
	}
	for _, cell := range r.Cells {
		if err := e.Encode(cell); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// TableRowProperties represents row properties
type TableRowProperties struct {
	Height    int  // twips; 0 omits trHeight
	Header    bool // repeat as header row on each page
	CantSplit bool // prevent row from splitting across pages
}

// MarshalXML implements custom XML marshaling for TableRowProperties
func (p TableRowProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:trPr"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if p.CantSplit {
		if err := e.EncodeElement(struct{}{}, xml.StartElement{Name: xml.Name{Local: "w:cantSplit"}}); err != nil {
			return err
		}
	}
	if p.Height > 0 {
		el := xml.StartElement{
			Name: xml.Name{Local: "w:trHeight"},
			Attr: []xml.Attr{
				{Name: xml.Name{Local: "w:val"}, Value: strconv.Itoa(p.Height)},
				{Name: xml.Name{Local: "w:hRule"}, Value: "atLeast"},
			},
		}
		if err := e.EncodeElement(struct{}{}, el); err != nil {
			return err
		}
	}
	if p.Header {
		if err := e.EncodeElement(struct{}{}, xml.StartElement{Name: xml.Name{Local: "w:tblHeader"}}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// TableCell represents a cell in a table
type TableCell struct {
	Properties *TableCellProperties
	Paragraphs []Paragraph
}

// MarshalXML implements custom XML marshaling for TableCell to ensure proper namespacing
func (c TableCell) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tc"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if c.Properties != nil {
		if err := e.Encode(c.Properties); err != nil {
			return err
		}
	}
	// A cell must contain at least one paragraph to be schema-valid.
	paras := c.Paragraphs
	if len(paras) == 0 {
		paras = []Paragraph{{}}
	}
	for _, para := range paras {
		if err := e.Encode(para); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// VMergeRestart and VMergeContinue are the two vertical-merge roles a cell
// can take. A continuation cell carries no size information: it aligns with
// the restart cell in the same grid column.
const (
	VMergeRestart  = "restart"
	VMergeContinue = "continue"
)

// TableCellProperties represents cell properties
type TableCellProperties struct {
	Width    *Width
	GridSpan int    // horizontal span; <= 1 omits gridSpan
	VMerge   string // "", VMergeRestart or VMergeContinue
	VAlign   string // "top", "center", "bottom"
	Shading  string // RRGGBB fill, no leading #
	Margins  *CellMargins
}

// CellMargins represents per-cell margins in twips.
type CellMargins struct {
	Top    int
	Left   int
	Bottom int
	Right  int
}

// MarshalXML implements custom XML marshaling for TableCellProperties
func (p TableCellProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tcPr"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if p.Width != nil {
		if err := p.Width.marshalAs(e, "w:tcW"); err != nil {
			return err
		}
	}
	if p.GridSpan > 1 {
		el := xml.StartElement{
			Name: xml.Name{Local: "w:gridSpan"},
			Attr: []xml.Attr{{Name: xml.Name{Local: "w:val"}, Value: strconv.Itoa(p.GridSpan)}},
		}
		if err := e.EncodeElement(struct{}{}, el); err != nil {
			return err
		}
	}
	switch p.VMerge {
	case VMergeRestart:
		el := xml.StartElement{
			Name: xml.Name{Local: "w:vMerge"},
			Attr: []xml.Attr{{Name: xml.Name{Local: "w:val"}, Value: "restart"}},
		}
		if err := e.EncodeElement(struct{}{}, el); err != nil {
			return err
		}
	case VMergeContinue:
		// Continuation emits a bare vMerge with no value.
		if err := e.EncodeElement(struct{}{}, xml.StartElement{Name: xml.Name{Local: "w:vMerge"}}); err != nil {
			return err
		}
	}
	if p.Shading != "" {
		el := xml.StartElement{
			Name: xml.Name{Local: "w:shd"},
			Attr: []xml.Attr{
				{Name: xml.Name{Local: "w:val"}, Value: "clear"},
				{Name: xml.Name{Local: "w:color"}, Value: "auto"},
				{Name: xml.Name{Local: "w:fill"}, Value: p.Shading},
			},
		}
		if err := e.EncodeElement(struct{}{}, el); err != nil {
			return err
		}
	}
	if p.Margins != nil {
		if err := e.EncodeToken(xml.StartElement{Name: xml.Name{Local: "w:tcMar"}}); err != nil {
			return err
		}
		edges := []struct {
			name string
			val  int
		}{
			{"w:top", p.Margins.Top},
			{"w:left", p.Margins.Left},
			{"w:bottom", p.Margins.Bottom},
			{"w:right", p.Margins.Right},
		}
		for _, edge := range edges {
			el := xml.StartElement{
				Name: xml.Name{Local: edge.name},
				Attr: []xml.Attr{
					{Name: xml.Name{Local: "w:w"}, Value: strconv.Itoa(edge.val)},
					{Name: xml.Name{Local: "w:type"}, Value: "dxa"},
				},
			}
			if err := e.EncodeElement(struct{}{}, el); err != nil {
				return err
			}
		}
		if err := e.EncodeToken(xml.EndElement{Name: xml.Name{Local: "w:tcMar"}}); err != nil {
			return err
		}
	}
	if p.VAlign != "" {
		el := xml.StartElement{
			Name: xml.Name{Local: "w:vAlign"},
			Attr: []xml.Attr{{Name: xml.Name{Local: "w:val"}, Value: p.VAlign}},
		}
		if err := e.EncodeElement(struct{}{}, el); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}
