package ooxml

import (
	"encoding/xml"
	"fmt"
	"strconv"
)

// Namespace URIs declared inline on the drawing subtree. The document root
// declares w, r and wp; DrawingML proper is scoped to each a:graphic.
const (
	nsDrawing = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPicture = "http://schemas.openxmlformats.org/drawingml/2006/picture"
	nsShape   = "http://schemas.microsoft.com/office/word/2010/wordprocessingShape"
)

// Drawing represents an inline drawing object (w:drawing > wp:inline).
// Exactly one of Picture or Shape must be set.
type Drawing struct {
	ID        int // document-scoped drawing object id (wp:docPr)
	Name      string
	WidthEMU  int64
	HeightEMU int64
	Picture   *Picture
	Shape     *Shape
}

// Picture is an embedded image referenced by its relationship id.
type Picture struct {
	RelID string
}

// Shape is a preset-geometry drawing shape with optional fill, outline and text.
type Shape struct {
	Preset       string // preset geometry name, e.g. "rect", "ellipse", "roundRect"
	FillColor    string // RRGGBB; empty means no fill
	LineColor    string // RRGGBB; empty means no outline
	LineWidthEMU int64
	Text         []Paragraph
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

func open(e *xml.Encoder, name string, attrs ...xml.Attr) error {
	return e.EncodeToken(xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs})
}

func closeEl(e *xml.Encoder, name string) error {
	return e.EncodeToken(xml.EndElement{Name: xml.Name{Local: name}})
}

func empty(e *xml.Encoder, name string, attrs ...xml.Attr) error {
	return e.EncodeElement(struct{}{}, xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs})
}

// MarshalXML emits the full inline-drawing subtree.
func (d Drawing) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if err := open(e, "w:drawing"); err != nil {
		return err
	}
	if err := open(e, "wp:inline",
		attr("distT", "0"), attr("distB", "0"), attr("distL", "0"), attr("distR", "0")); err != nil {
		return err
	}
	cx := strconv.FormatInt(d.WidthEMU, 10)
	cy := strconv.FormatInt(d.HeightEMU, 10)
	if err := empty(e, "wp:extent", attr("cx", cx), attr("cy", cy)); err != nil {
		return err
	}
	if err := empty(e, "wp:docPr", attr("id", strconv.Itoa(d.ID)), attr("name", d.Name)); err != nil {
		return err
	}

	var uri string
	if d.Picture != nil {
		uri = nsPicture
	} else {
		uri = nsShape
	}
	if err := open(e, "a:graphic", attr("xmlns:a", nsDrawing)); err != nil {
		return err
	}
	if err := open(e, "a:graphicData", attr("uri", uri)); err != nil {
		return err
	}

	switch {
	case d.Picture != nil:
		if err := d.marshalPicture(e); err != nil {
			return err
		}
	case d.Shape != nil:
		if err := d.marshalShape(e); err != nil {
			return err
		}
	default:
		return fmt.Errorf("drawing %d has neither picture nor shape", d.ID)
	}

	if err := closeEl(e, "a:graphicData"); err != nil {
		return err
	}
	if err := closeEl(e, "a:graphic"); err != nil {
		return err
	}
	if err := closeEl(e, "wp:inline"); err != nil {
		return err
	}
	return closeEl(e, "w:drawing")
}

func (d Drawing) marshalPicture(e *xml.Encoder) error {
	cx := strconv.FormatInt(d.WidthEMU, 10)
	cy := strconv.FormatInt(d.HeightEMU, 10)

	if err := open(e, "pic:pic", attr("xmlns:pic", nsPicture)); err != nil {
		return err
	}

	if err := open(e, "pic:nvPicPr"); err != nil {
		return err
	}
	if err := empty(e, "pic:cNvPr", attr("id", strconv.Itoa(d.ID)), attr("name", d.Name)); err != nil {
		return err
	}
	if err := empty(e, "pic:cNvPicPr"); err != nil {
		return err
	}
	if err := closeEl(e, "pic:nvPicPr"); err != nil {
		return err
	}

	if err := open(e, "pic:blipFill"); err != nil {
		return err
	}
	if err := empty(e, "a:blip", attr("r:embed", d.Picture.RelID)); err != nil {
		return err
	}
	if err := open(e, "a:stretch"); err != nil {
		return err
	}
	if err := empty(e, "a:fillRect"); err != nil {
		return err
	}
	if err := closeEl(e, "a:stretch"); err != nil {
		return err
	}
	if err := closeEl(e, "pic:blipFill"); err != nil {
		return err
	}

	if err := open(e, "pic:spPr"); err != nil {
		return err
	}
	if err := marshalXfrm(e, cx, cy); err != nil {
		return err
	}
	if err := marshalPrstGeom(e, "rect"); err != nil {
		return err
	}
	if err := closeEl(e, "pic:spPr"); err != nil {
		return err
	}

	return closeEl(e, "pic:pic")
}

func (d Drawing) marshalShape(e *xml.Encoder) error {
	cx := strconv.FormatInt(d.WidthEMU, 10)
	cy := strconv.FormatInt(d.HeightEMU, 10)
	s := d.Shape

	if err := open(e, "wps:wsp", attr("xmlns:wps", nsShape)); err != nil {
		return err
	}
	if err := empty(e, "wps:cNvSpPr"); err != nil {
		return err
	}

	if err := open(e, "wps:spPr"); err != nil {
		return err
	}
	if err := marshalXfrm(e, cx, cy); err != nil {
		return err
	}
	if err := marshalPrstGeom(e, s.Preset); err != nil {
		return err
	}
	if s.FillColor != "" {
		if err := marshalSolidFill(e, s.FillColor); err != nil {
			return err
		}
	} else {
		if err := empty(e, "a:noFill"); err != nil {
			return err
		}
	}
	if s.LineColor != "" {
		w := s.LineWidthEMU
		if w <= 0 {
			w = 9525 // hairline, 1px
		}
		if err := open(e, "a:ln", attr("w", strconv.FormatInt(w, 10))); err != nil {
			return err
		}
		if err := marshalSolidFill(e, s.LineColor); err != nil {
			return err
		}
		if err := closeEl(e, "a:ln"); err != nil {
			return err
		}
	}
	if err := closeEl(e, "wps:spPr"); err != nil {
		return err
	}

	if len(s.Text) > 0 {
		if err := open(e, "wps:txbx"); err != nil {
			return err
		}
		if err := open(e, "w:txbxContent"); err != nil {
			return err
		}
		for _, p := range s.Text {
			if err := e.Encode(p); err != nil {
				return err
			}
		}
		if err := closeEl(e, "w:txbxContent"); err != nil {
			return err
		}
		if err := closeEl(e, "wps:txbx"); err != nil {
			return err
		}
	}

	if err := empty(e, "wps:bodyPr"); err != nil {
		return err
	}
	return closeEl(e, "wps:wsp")
}

func marshalXfrm(e *xml.Encoder, cx, cy string) error {
	if err := open(e, "a:xfrm"); err != nil {
		return err
	}
	if err := empty(e, "a:off", attr("x", "0"), attr("y", "0")); err != nil {
		return err
	}
	if err := empty(e, "a:ext", attr("cx", cx), attr("cy", cy)); err != nil {
		return err
	}
	return closeEl(e, "a:xfrm")
}

func marshalPrstGeom(e *xml.Encoder, preset string) error {
	if err := open(e, "a:prstGeom", attr("prst", preset)); err != nil {
		return err
	}
	if err := empty(e, "a:avLst"); err != nil {
		return err
	}
	return closeEl(e, "a:prstGeom")
}

func marshalSolidFill(e *xml.Encoder, color string) error {
	if err := open(e, "a:solidFill"); err != nil {
		return err
	}
	if err := empty(e, "a:srgbClr", attr("val", color)); err != nil {
		return err
	}
	if err := closeEl(e, "a:solidFill"); err != nil {
		return err
	}
	return nil
}
