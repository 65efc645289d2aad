// Package ooxml contains the WordprocessingML and DrawingML types that
// DocXaur serializes into word/document.xml and the relationship parts.
//
// Every type implements xml.Marshaler by hand so that elements carry their
// conventional prefixes (w:, wp:, a:, pic:, wps:) without relying on the
// encoding/xml namespace machinery, which cannot emit prefixed output on
// its own. The body types are write-only: DocXaur builds packages, it does
// not round-trip body markup. Relationship manifests are the one exception,
// since reconciliation parses an existing manifest before extending it.
package ooxml
