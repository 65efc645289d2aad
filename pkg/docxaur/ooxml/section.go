package ooxml

import (
	"encoding/xml"
	"strconv"
)

// SectionProperties represents section-level page layout (w:sectPr).
type SectionProperties struct {
	PageSize    PageSize
	PageMargins PageMargins
}

// PageSize represents page dimensions in twips.
type PageSize struct {
	Width       int
	Height      int
	Orientation string // "portrait" (default, omitted) or "landscape"
}

// PageMargins represents page margins in twips.
type PageMargins struct {
	Top    int
	Right  int
	Bottom int
	Left   int
	Header int
	Footer int
	Gutter int
}

// MarshalXML implements custom XML marshaling for SectionProperties
func (s SectionProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:sectPr"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	pgSz := xml.StartElement{
		Name: xml.Name{Local: "w:pgSz"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "w:w"}, Value: strconv.Itoa(s.PageSize.Width)},
			{Name: xml.Name{Local: "w:h"}, Value: strconv.Itoa(s.PageSize.Height)},
		},
	}
	if s.PageSize.Orientation == "landscape" {
		pgSz.Attr = append(pgSz.Attr, xml.Attr{Name: xml.Name{Local: "w:orient"}, Value: "landscape"})
	}
	if err := e.EncodeElement(struct{}{}, pgSz); err != nil {
		return err
	}

	pgMar := xml.StartElement{
		Name: xml.Name{Local: "w:pgMar"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "w:top"}, Value: strconv.Itoa(s.PageMargins.Top)},
			{Name: xml.Name{Local: "w:right"}, Value: strconv.Itoa(s.PageMargins.Right)},
			{Name: xml.Name{Local: "w:bottom"}, Value: strconv.Itoa(s.PageMargins.Bottom)},
			{Name: xml.Name{Local: "w:left"}, Value: strconv.Itoa(s.PageMargins.Left)},
			{Name: xml.Name{Local: "w:header"}, Value: strconv.Itoa(s.PageMargins.Header)},
			{Name: xml.Name{Local: "w:footer"}, Value: strconv.Itoa(s.PageMargins.Footer)},
			{Name: xml.Name{Local: "w:gutter"}, Value: strconv.Itoa(s.PageMargins.Gutter)},
		},
	}
	if err := e.EncodeElement(struct{}{}, pgMar); err != nil {
		return err
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}
