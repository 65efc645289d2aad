package ooxml

import (
	"bytes"
	"encoding/xml"
)

// Relationship kinds used by DocXaur packages.
const (
	RelTypeStyles    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	RelTypeFontTable = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/fontTable"
	RelTypeSettings  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/settings"
	RelTypeImage     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	RelTypeDocument  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	RelTypeCoreProps = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	RelTypeExtProps  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"

	relsNamespace = "http://schemas.openxmlformats.org/package/2006/relationships"
)

// Relationship represents one entry of a relationship manifest.
type Relationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// Relationships represents a relationship manifest part.
type Relationships struct {
	XMLName      xml.Name       `xml:"Relationships"`
	Namespace    string         `xml:"xmlns,attr"`
	Relationship []Relationship `xml:"Relationship"`
}

// NewRelationships returns an empty manifest with the package namespace set.
func NewRelationships() *Relationships {
	return &Relationships{Namespace: relsNamespace}
}

// ParseRelationships decodes an existing manifest part. Entry order is preserved.
func ParseRelationships(data []byte) (*Relationships, error) {
	var rels Relationships
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, err
	}
	if rels.Namespace == "" {
		rels.Namespace = relsNamespace
	}
	return &rels, nil
}

// Has reports whether the manifest contains an entry with the given id.
func (r *Relationships) Has(id string) bool {
	for _, rel := range r.Relationship {
		if rel.ID == id {
			return true
		}
	}
	return false
}

// MarshalXML emits the manifest with attributes in a fixed order so that
// serializing the same manifest twice yields byte-identical output.
func (r Relationships) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "Relationships"}
	start.Attr = []xml.Attr{{Name: xml.Name{Local: "xmlns"}, Value: r.Namespace}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, rel := range r.Relationship {
		el := xml.StartElement{
			Name: xml.Name{Local: "Relationship"},
			Attr: []xml.Attr{
				{Name: xml.Name{Local: "Id"}, Value: rel.ID},
				{Name: xml.Name{Local: "Type"}, Value: rel.Type},
				{Name: xml.Name{Local: "Target"}, Value: rel.Target},
			},
		}
		if err := e.EncodeElement(struct{}{}, el); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Bytes serializes the manifest with the standard XML declaration.
func (r Relationships) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
