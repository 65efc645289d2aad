// Package docxaur builds WordprocessingML (DOCX) packages programmatically.
//
// A Document is assembled from Sections holding Paragraphs, Images, Tables
// and Shapes, then written as a single zip package whose body markup and
// relationship manifest are guaranteed to agree:
//
//	doc := docxaur.New()
//	sec := doc.AddSection(docxaur.A4Portrait())
//	sec.AddParagraph(docxaur.NewParagraph().Text("Hello"))
//	tbl := docxaur.NewTable("100%", []docxaur.TableColumn{{Width: "50%"}, {Width: "50%"}})
//	tbl.Row([]docxaur.Cell{{Text: "a"}, {Text: "b"}}, nil)
//	sec.AddTable(tbl)
//	err := doc.SaveFile("out.docx")
//
// Image resources are fetched and deduplicated during assembly; every
// relationship id referenced from the body is reconciled into the document
// manifest before the archive is finalized.
package docxaur

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/nekoprog/DocXaur/pkg/docxaur/ooxml"
)

// Metadata is surfaced in the docProps parts of the package.
type Metadata struct {
	Title       string
	Creator     string
	Description string
}

// Document is the root of the builder model. It owns its sections, the
// image registry and the drawing id counter, so concurrent builds of
// separate documents never interfere.
type Document struct {
	cfg      *Config
	logger   *log.Logger
	meta     Metadata
	sections []*Section
	registry *ImageRegistry
	drawings counter
}

// Option configures a Document at construction time.
type Option func(*Document)

// WithConfig overrides the default configuration.
func WithConfig(cfg *Config) Option {
	return func(d *Document) { d.cfg = cfg }
}

// WithLogger attaches a logger used during assembly.
func WithLogger(l *log.Logger) Option {
	return func(d *Document) { d.logger = l }
}

// WithFetcher replaces the resource-fetch capability backing the image registry.
func WithFetcher(f Fetcher) Option {
	return func(d *Document) { d.registry = NewImageRegistry(f) }
}

// WithMetadata sets the document metadata.
func WithMetadata(meta Metadata) Option {
	return func(d *Document) { d.meta = meta }
}

// New creates an empty document.
func New(opts ...Option) *Document {
	d := &Document{
		cfg:    DefaultConfig(),
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.registry == nil {
		d.registry = NewImageRegistry(NewNetFetcher(d.cfg.FetchTimeout, d.cfg.BaseDir))
	}
	return d
}

// Registry exposes the document's image registry.
func (d *Document) Registry() *ImageRegistry {
	return d.registry
}

// AddSection appends a section and returns it for element population.
func (d *Document) AddSection(page PageSetup) *Section {
	s := &Section{page: page}
	d.sections = append(d.sections, s)
	return s
}

// nextDrawingID allocates the next drawing object id, scoped to this document.
func (d *Document) nextDrawingID() int {
	return d.drawings.next()
}

// counter is a document-scoped monotonic id source.
type counter struct {
	mu sync.Mutex
	n  int
}

func (c *counter) next() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	return c.n
}

// Element is a closed variant of the things a section can hold. prepare
// performs resource registration (phase 1 of assembly); render emits markup
// and may rely on every prepare having completed.
type Element interface {
	prepare(ctx context.Context, d *Document) error
	render(d *Document) ([]ooxml.BodyElement, error)
}
