package ooxml

import (
	"encoding/xml"
)

// ParagraphContent is implemented by everything that may appear inside w:p.
type ParagraphContent interface {
	isParagraphContent()
}

// Paragraph represents a paragraph in the document body or inside a table cell.
type Paragraph struct {
	Properties *ParagraphProperties
	Content    []ParagraphContent
}

// isBodyElement implements the BodyElement interface
func (p Paragraph) isBodyElement() {}

// MarshalXML implements custom XML marshaling for Paragraph to ensure proper namespacing
func (p Paragraph) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:p"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if p.Properties != nil {
		if err := e.EncodeElement(p.Properties, xml.StartElement{Name: xml.Name{Local: "w:pPr"}}); err != nil {
			return err
		}
	}

	for _, c := range p.Content {
		if err := e.Encode(c); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// ParagraphProperties represents paragraph formatting properties
type ParagraphProperties struct {
	Style     string // paragraph style id, e.g. "Heading1"
	Alignment string // "left", "center", "right", "both"
	// SectionProperties, when set, marks this paragraph as a section
	// separator: the sectPr of the section that ends here.
	SectionProperties *SectionProperties
}

// MarshalXML implements custom XML marshaling for ParagraphProperties
func (p ParagraphProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:pPr"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if p.Style != "" {
		el := xml.StartElement{
			Name: xml.Name{Local: "w:pStyle"},
			Attr: []xml.Attr{{Name: xml.Name{Local: "w:val"}, Value: p.Style}},
		}
		if err := e.EncodeElement(struct{}{}, el); err != nil {
			return err
		}
	}
	if p.Alignment != "" {
		el := xml.StartElement{
			Name: xml.Name{Local: "w:jc"},
			Attr: []xml.Attr{{Name: xml.Name{Local: "w:val"}, Value: p.Alignment}},
		}
		if err := e.EncodeElement(struct{}{}, el); err != nil {
			return err
		}
	}
	if p.SectionProperties != nil {
		if err := e.Encode(p.SectionProperties); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}
