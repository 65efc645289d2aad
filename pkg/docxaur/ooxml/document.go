package ooxml

import (
	"bytes"
	"encoding/xml"
)

// BodyElement is implemented by everything that may appear directly in w:body.
type BodyElement interface {
	isBodyElement()
}

// Document is the root of word/document.xml.
type Document struct {
	Body Body
}

// Body holds the ordered body elements. The final section's properties close
// the body as a direct child; earlier sections embed theirs in a separator
// paragraph (see ParagraphProperties.SectionProperties).
type Body struct {
	Elements          []BodyElement
	SectionProperties *SectionProperties
}

// MarshalXML emits w:document with its namespace declarations.
func (d Document) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:document"}
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "xmlns:w"}, Value: "http://schemas.openxmlformats.org/wordprocessingml/2006/main"},
		{Name: xml.Name{Local: "xmlns:r"}, Value: "http://schemas.openxmlformats.org/officeDocument/2006/relationships"},
		{Name: xml.Name{Local: "xmlns:wp"}, Value: "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"},
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if err := e.EncodeToken(xml.StartElement{Name: xml.Name{Local: "w:body"}}); err != nil {
		return err
	}
	for _, el := range d.Body.Elements {
		if err := e.Encode(el); err != nil {
			return err
		}
	}
	if d.Body.SectionProperties != nil {
		if err := e.Encode(d.Body.SectionProperties); err != nil {
			return err
		}
	}
	if err := e.EncodeToken(xml.EndElement{Name: xml.Name{Local: "w:body"}}); err != nil {
		return err
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Bytes serializes the document with the standard XML declaration.
func (d Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
