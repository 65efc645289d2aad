package docxaur

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/nekoprog/DocXaur/pkg/docxaur/ooxml"
)

// PackageReader opens an assembled package for inspection: listing parts
// and reading the document relationship manifest. It does not round-trip
// body markup.
type PackageReader struct {
	reader *zip.Reader
	Parts  map[string]*zip.File
}

// NewPackageReader creates a reader over an in-memory or on-disk package.
func NewPackageReader(r io.ReaderAt, size int64) (*PackageReader, error) {
	zipReader, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to read zip file: %w", err)
	}

	pr := &PackageReader{
		reader: zipReader,
		Parts:  make(map[string]*zip.File),
	}
	for _, file := range zipReader.File {
		pr.Parts[file.Name] = file
	}

	if _, ok := pr.Parts[partDocument]; !ok {
		return nil, fmt.Errorf("not a valid package: missing %s", partDocument)
	}
	return pr, nil
}

// PackageReaderFromFile creates a PackageReader from a file path.
func PackageReaderFromFile(path string) (*PackageReader, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return NewPackageReader(bytes.NewReader(content), int64(len(content)))
}

// GetPart retrieves the content of a specific part.
func (pr *PackageReader) GetPart(name string) ([]byte, error) {
	file, ok := pr.Parts[name]
	if !ok {
		return nil, fmt.Errorf("part %s not found", name)
	}

	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open part %s: %w", name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read part %s: %w", name, err)
	}
	return content, nil
}

// ListParts returns all part names in deterministic order.
func (pr *PackageReader) ListParts() []string {
	parts := make([]string, 0, len(pr.Parts))
	for name := range pr.Parts {
		parts = append(parts, name)
	}
	sort.Strings(parts)
	return parts
}

// DocumentRelationships parses the document relationship manifest.
func (pr *PackageReader) DocumentRelationships() ([]ooxml.Relationship, error) {
	content, err := pr.GetPart(partDocumentRels)
	if err != nil {
		return nil, err
	}
	rels, err := ooxml.ParseRelationships(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse relationships: %w", err)
	}
	return rels.Relationship, nil
}
