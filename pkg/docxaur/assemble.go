package docxaur

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"time"

	"github.com/nekoprog/DocXaur/pkg/docxaur/ooxml"
)

// Assemble writes the document as a complete package to w.
//
// Assembly is a two-phase protocol and the ordering is load-bearing:
//
// Phase 1 composes the body. Every element is prepared in order (tables
// build here, fanning out their cell initializations) and then rendered;
// this is the only point at which image registrations occur, so the
// registry is complete when the phase ends.
//
// Phase 2 reconciles the relationship manifest against the now-complete
// registry and writes all parts and media payloads in one archive pass.
// Reconciling before phase 1 finished would drop images registered by
// concurrently building tables.
//
// Any failure aborts the whole assembly; no partial package is produced.
func (d *Document) Assemble(ctx context.Context, w io.Writer) error {
	start := time.Now()

	// Phase 1: compose body, forcing all resource registration.
	body := ooxml.Body{}
	for idx, sec := range d.sections {
		if err := sec.prepare(ctx, d); err != nil {
			return err
		}
		if err := sec.render(d, idx == len(d.sections)-1, &body); err != nil {
			return err
		}
	}
	if body.SectionProperties == nil {
		// A body must end with section properties even when the caller
		// added no sections.
		empty := &Section{page: A4Portrait()}
		props, err := empty.properties(d)
		if err != nil {
			return err
		}
		body.SectionProperties = props
	}

	docXML, err := ooxml.Document{Body: body}.Bytes()
	if err != nil {
		return NewPartWriteError(partDocument, err)
	}

	// Phase 2: reconcile relationships against the completed registry,
	// then emit every part.
	records := d.registry.Records()
	base, err := Reconcile(nil, fixedRelationships())
	if err != nil {
		return NewPartWriteError(partDocumentRels, err)
	}
	manifest, err := Reconcile(base, requiredImageRelationships(records))
	if err != nil {
		return NewPartWriteError(partDocumentRels, err)
	}

	extensions := make(map[string]bool)
	for _, rec := range records {
		extensions[rec.Extension] = true
	}

	zw := zip.NewWriter(w)
	parts := []struct {
		name string
		data []byte
	}{
		{partContentTypes, contentTypesXML(extensions)},
		{partRootRels, nil}, // filled below
		{partDocument, docXML},
		{partDocumentRels, manifest},
		{partStyles, []byte(stylesXML)},
		{partFontTable, []byte(fontTableXML)},
		{partSettings, []byte(settingsXML)},
		{partCoreProps, corePropsXML(d.meta, time.Now())},
		{partAppProps, appPropsXML()},
	}
	rootRels, err := rootRelsXML()
	if err != nil {
		return NewPartWriteError(partRootRels, err)
	}
	parts[1].data = rootRels

	for _, part := range parts {
		if err := writePart(zw, part.name, part.data); err != nil {
			return err
		}
	}
	for _, rec := range records {
		if err := writePart(zw, rec.MediaPath(), rec.Data); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return NewPartWriteError("package", err)
	}

	d.logger.Debug("assembled package",
		"sections", len(d.sections),
		"images", len(records),
		"elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

func writePart(zw *zip.Writer, name string, data []byte) error {
	f, err := zw.Create(name)
	if err != nil {
		return NewPartWriteError(name, err)
	}
	if _, err := f.Write(data); err != nil {
		return NewPartWriteError(name, err)
	}
	return nil
}

// Save assembles the package with a background context.
func (d *Document) Save(w io.Writer) error {
	return d.Assemble(context.Background(), w)
}

// SaveFile assembles the package into a file. The file is removed again
// when assembly fails, so a broken build never leaves a partial package
// behind.
func (d *Document) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return NewPartWriteError(path, err)
	}
	if err := d.Save(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return NewPartWriteError(path, err)
	}
	return nil
}
