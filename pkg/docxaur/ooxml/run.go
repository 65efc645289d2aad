package ooxml

import (
	"encoding/xml"
	"strconv"
)

// Run represents a run of text with common formatting properties.
// Exactly one of Text, Break, Tab or Drawing is normally set; when several
// are set they are emitted in that order.
type Run struct {
	Properties *RunProperties
	Text       *Text
	Break      *Break
	Tab        bool
	Drawing    *Drawing
}

// isParagraphContent implements the ParagraphContent interface
func (r Run) isParagraphContent() {}

// MarshalXML implements custom XML marshaling for Run to ensure proper namespacing
func (r Run) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:r"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if r.Properties != nil {
		if err := e.EncodeElement(r.Properties, xml.StartElement{Name: xml.Name{Local: "w:rPr"}}); err != nil {
			return err
		}
	}

	if r.Text != nil {
		if err := e.EncodeElement(r.Text, xml.StartElement{Name: xml.Name{Local: "w:t"}}); err != nil {
			return err
		}
	}

	if r.Break != nil {
		if err := e.Encode(r.Break); err != nil {
			return err
		}
	}

	if r.Tab {
		if err := e.EncodeElement(struct{}{}, xml.StartElement{Name: xml.Name{Local: "w:tab"}}); err != nil {
			return err
		}
	}

	if r.Drawing != nil {
		if err := e.Encode(r.Drawing); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// RunProperties represents run formatting properties
type RunProperties struct {
	Bold      bool
	Italic    bool
	Underline string // underline style, e.g. "single"
	Strike    bool
	Color     string // RRGGBB, no leading #
	Size      int    // half-points; 0 means inherit
	Font      string // ascii font name
}

// MarshalXML implements custom XML marshaling for RunProperties
func (p RunProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:rPr"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	// Property order follows the WordprocessingML schema sequence.
	if p.Font != "" {
		el := xml.StartElement{
			Name: xml.Name{Local: "w:rFonts"},
			Attr: []xml.Attr{
				{Name: xml.Name{Local: "w:ascii"}, Value: p.Font},
				{Name: xml.Name{Local: "w:hAnsi"}, Value: p.Font},
			},
		}
		if err := e.EncodeElement(struct{}{}, el); err != nil {
			return err
		}
	}
	if p.Bold {
		if err := e.EncodeElement(struct{}{}, xml.StartElement{Name: xml.Name{Local: "w:b"}}); err != nil {
			return err
		}
	}
	if p.Italic {
		if err := e.EncodeElement(struct{}{}, xml.StartElement{Name: xml.Name{Local: "w:i"}}); err != nil {
			return err
		}
	}
	if p.Strike {
		if err := e.EncodeElement(struct{}{}, xml.StartElement{Name: xml.Name{Local: "w:strike"}}); err != nil {
			return err
		}
	}
	if p.Color != "" {
		el := xml.StartElement{
			Name: xml.Name{Local: "w:color"},
			Attr: []xml.Attr{{Name: xml.Name{Local: "w:val"}, Value: p.Color}},
		}
		if err := e.EncodeElement(struct{}{}, el); err != nil {
			return err
		}
	}
	if p.Size > 0 {
		for _, name := range []string{"w:sz", "w:szCs"} {
			el := xml.StartElement{
				Name: xml.Name{Local: name},
				Attr: []xml.Attr{{Name: xml.Name{Local: "w:val"}, Value: strconv.Itoa(p.Size)}},
			}
			if err := e.EncodeElement(struct{}{}, el); err != nil {
				return err
			}
		}
	}
	if p.Underline != "" {
		el := xml.StartElement{
			Name: xml.Name{Local: "w:u"},
			Attr: []xml.Attr{{Name: xml.Name{Local: "w:val"}, Value: p.Underline}},
		}
		if err := e.EncodeElement(struct{}{}, el); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// IsZero reports whether no formatting property is set, so w:rPr can be omitted.
func (p RunProperties) IsZero() bool {
	return p == RunProperties{}
}

// Text represents text content
type Text struct {
	Content string
}

// MarshalXML implements custom XML marshaling for Text to ensure proper namespacing.
// xml:space="preserve" is always emitted so leading and trailing spaces survive.
func (t Text) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:t"}
	start.Attr = []xml.Attr{{Name: xml.Name{Local: "xml:space"}, Value: "preserve"}}
	return e.EncodeElement(t.Content, start)
}

// Break represents a line or page break
type Break struct {
	Type string // "", "page" or "column"
}

// MarshalXML implements xml.Marshaler to ensure Break is self-closing
func (b *Break) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:br"}
	start.Attr = nil
	if b.Type != "" {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Local: "w:type"},
			Value: b.Type,
		})
	}
	return e.EncodeElement(struct{}{}, start)
}
