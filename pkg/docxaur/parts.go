package docxaur

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"sort"
	"time"

	"github.com/nekoprog/DocXaur/pkg/docxaur/ooxml"
)

// Package entry names. The assembler writes exactly these fixed parts plus
// one media entry per registered image.
const (
	partContentTypes = "[Content_Types].xml"
	partRootRels     = "_rels/.rels"
	partDocument     = "word/document.xml"
	partDocumentRels = "word/_rels/document.xml.rels"
	partStyles       = "word/styles.xml"
	partFontTable    = "word/fontTable.xml"
	partSettings     = "word/settings.xml"
	partCoreProps    = "docProps/core.xml"
	partAppProps     = "docProps/app.xml"
)

// fixedRelationships are the reserved low relationship ids of the
// non-resource parts. Image N occupies id N+3 (see ImageRegistry).
func fixedRelationships() []ooxml.Relationship {
	return []ooxml.Relationship{
		{ID: "rId1", Type: ooxml.RelTypeStyles, Target: "styles.xml"},
		{ID: "rId2", Type: ooxml.RelTypeFontTable, Target: "fontTable.xml"},
		{ID: "rId3", Type: ooxml.RelTypeSettings, Target: "settings.xml"},
	}
}

// contentTypesXML declares the package content types, including one Default
// per distinct media extension in use.
func contentTypesXML(extensions map[string]bool) []byte {
	types := map[string]string{
		"png":  "image/png",
		"jpg":  "image/jpeg",
		"jpeg": "image/jpeg",
		"gif":  "image/gif",
		"bmp":  "image/bmp",
		"webp": "image/webp",
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	buf.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	buf.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)

	exts := make([]string, 0, len(extensions))
	for ext := range extensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	for _, ext := range exts {
		ct, ok := types[ext]
		if !ok {
			ct = "image/" + ext
		}
		fmt.Fprintf(&buf, `<Default Extension="%s" ContentType="%s"/>`, ext, ct)
	}

	overrides := []struct{ part, ct string }{
		{partDocument, "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"},
		{partStyles, "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"},
		{partFontTable, "application/vnd.openxmlformats-officedocument.wordprocessingml.fontTable+xml"},
		{partSettings, "application/vnd.openxmlformats-officedocument.wordprocessingml.settings+xml"},
		{partCoreProps, "application/vnd.openxmlformats-package.core-properties+xml"},
		{partAppProps, "application/vnd.openxmlformats-officedocument.extended-properties+xml"},
	}
	for _, o := range overrides {
		fmt.Fprintf(&buf, `<Override PartName="/%s" ContentType="%s"/>`, o.part, o.ct)
	}

	buf.WriteString(`</Types>`)
	return buf.Bytes()
}

// rootRelsXML links the package root to the document part and the metadata parts.
func rootRelsXML() ([]byte, error) {
	rels := ooxml.NewRelationships()
	rels.Relationship = []ooxml.Relationship{
		{ID: "rId1", Type: ooxml.RelTypeDocument, Target: "word/document.xml"},
		{ID: "rId2", Type: ooxml.RelTypeCoreProps, Target: "docProps/core.xml"},
		{ID: "rId3", Type: ooxml.RelTypeExtProps, Target: "docProps/app.xml"},
	}
	return rels.Bytes()
}

// stylesXML is the static style part: body defaults plus three heading levels.
// It carries no cross-references.
const stylesXML = xml.Header + `<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:docDefaults><w:rPrDefault><w:rPr><w:rFonts w:ascii="Calibri" w:hAnsi="Calibri"/><w:sz w:val="22"/></w:rPr></w:rPrDefault></w:docDefaults>` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/>` +
	`<w:pPr><w:spacing w:before="240" w:after="120"/></w:pPr><w:rPr><w:b/><w:sz w:val="32"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/><w:basedOn w:val="Normal"/>` +
	`<w:pPr><w:spacing w:before="200" w:after="100"/></w:pPr><w:rPr><w:b/><w:sz w:val="28"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading3"><w:name w:val="heading 3"/><w:basedOn w:val="Normal"/>` +
	`<w:pPr><w:spacing w:before="160" w:after="80"/></w:pPr><w:rPr><w:b/><w:sz w:val="24"/></w:rPr></w:style>` +
	`</w:styles>`

// fontTableXML is the static font part.
const fontTableXML = xml.Header + `<w:fonts xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:font w:name="Calibri"><w:pitch w:val="variable"/></w:font>` +
	`</w:fonts>`

// settingsXML is the static settings part.
const settingsXML = xml.Header + `<w:settings xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:zoom w:percent="100"/>` +
	`<w:defaultTabStop w:val="708"/>` +
	`</w:settings>`

// corePropsXML renders docProps/core.xml from the document metadata.
func corePropsXML(meta Metadata, now time.Time) []byte {
	stamp := now.UTC().Format(time.RFC3339)
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString(`<cp:coreProperties` +
		` xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"` +
		` xmlns:dc="http://purl.org/dc/elements/1.1/"` +
		` xmlns:dcterms="http://purl.org/dc/terms/"` +
		` xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`)
	fmt.Fprintf(&buf, `<dc:title>%s</dc:title>`, escapeXML(meta.Title))
	fmt.Fprintf(&buf, `<dc:creator>%s</dc:creator>`, escapeXML(meta.Creator))
	fmt.Fprintf(&buf, `<dc:description>%s</dc:description>`, escapeXML(meta.Description))
	fmt.Fprintf(&buf, `<dcterms:created xsi:type="dcterms:W3CDTF">%s</dcterms:created>`, stamp)
	fmt.Fprintf(&buf, `<dcterms:modified xsi:type="dcterms:W3CDTF">%s</dcterms:modified>`, stamp)
	buf.WriteString(`</cp:coreProperties>`)
	return buf.Bytes()
}

// appPropsXML renders docProps/app.xml.
func appPropsXML() []byte {
	return []byte(xml.Header +
		`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">` +
		`<Application>DocXaur</Application>` +
		`</Properties>`)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
