package docxaur

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/nekoprog/DocXaur/pkg/docxaur/ooxml"
)

func assemble(t *testing.T, d *Document) *zip.Reader {
	t.Helper()
	var buf bytes.Buffer
	if err := d.Assemble(context.Background(), &buf); err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("output is not a valid archive: %v", err)
	}
	return zr
}

func readPart(t *testing.T, zr *zip.Reader, name string) []byte {
	t.Helper()
	f, err := zr.Open(name)
	if err != nil {
		t.Fatalf("part %s missing: %v", name, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("reading part %s: %v", name, err)
	}
	return data
}

func TestAssembleTextOnlyPackage(t *testing.T) {
	d := testDocument()
	d.AddSection(A4Portrait()).AddParagraph(
		NewParagraph().Add(Run{Text: "hello", Bold: true}),
	)

	zr := assemble(t, d)

	for _, name := range []string{
		partContentTypes, partRootRels, partDocument, partDocumentRels,
		partStyles, partFontTable, partSettings, partCoreProps, partAppProps,
	} {
		readPart(t, zr, name)
	}
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "word/media/") {
			t.Errorf("imageless document contains media entry %s", f.Name)
		}
	}

	rels, err := ooxml.ParseRelationships(readPart(t, zr, partDocumentRels))
	if err != nil {
		t.Fatalf("manifest did not parse: %v", err)
	}
	if len(rels.Relationship) != 3 {
		t.Fatalf("imageless manifest has %d entries, want 3", len(rels.Relationship))
	}
	wantTypes := map[string]string{
		"rId1": ooxml.RelTypeStyles,
		"rId2": ooxml.RelTypeFontTable,
		"rId3": ooxml.RelTypeSettings,
	}
	for _, rel := range rels.Relationship {
		if rel.Type != wantTypes[rel.ID] {
			t.Errorf("%s has type %s, want %s", rel.ID, rel.Type, wantTypes[rel.ID])
		}
	}

	doc := string(readPart(t, zr, partDocument))
	if !strings.Contains(doc, `<w:t xml:space="preserve">hello</w:t>`) {
		t.Errorf("body missing run text:\n%s", doc)
	}
	if !strings.Contains(doc, "<w:sectPr>") {
		t.Errorf("body not closed by section properties:\n%s", doc)
	}
}

func TestAssembleTableWithImages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("png:" + r.URL.Path))
	}))
	defer srv.Close()

	d := New()
	tbl := NewTable("100%", []TableColumn{{Width: "50%"}, {Width: "50%"}})
	tbl.Row([]Cell{
		{Image: NewImage(srv.URL + "/a.png")},
		{Image: NewImage(srv.URL + "/b.png")},
	}, nil)
	d.AddSection(A4Portrait()).AddTable(tbl)

	zr := assemble(t, d)

	rels, err := ooxml.ParseRelationships(readPart(t, zr, partDocumentRels))
	if err != nil {
		t.Fatalf("manifest did not parse: %v", err)
	}
	if len(rels.Relationship) != 5 {
		t.Fatalf("manifest has %d entries, want 5", len(rels.Relationship))
	}

	imageRels := map[string]string{}
	for _, rel := range rels.Relationship {
		if rel.Type == ooxml.RelTypeImage {
			imageRels[rel.ID] = rel.Target
		}
	}
	if len(imageRels) != 2 {
		t.Fatalf("manifest has %d image entries, want 2: %v", len(imageRels), imageRels)
	}

	doc := string(readPart(t, zr, partDocument))
	for id, target := range imageRels {
		if id != "rId4" && id != "rId5" {
			t.Errorf("unexpected image relationship id %s", id)
		}
		// Every embed in the body must resolve through the manifest, and
		// the media payload it points at must exist in the archive.
		if !strings.Contains(doc, `r:embed="`+id+`"`) {
			t.Errorf("body has no embed for %s", id)
		}
		readPart(t, zr, "word/"+target)
	}

	types := string(readPart(t, zr, partContentTypes))
	if !strings.Contains(types, `Extension="png"`) {
		t.Errorf("content types missing png default:\n%s", types)
	}
}

func TestAssembleSharedLocatorRegisteredOnce(t *testing.T) {
	fetcher := &stubFetcher{}
	d := New(WithFetcher(fetcher))

	sec := d.AddSection(A4Portrait())
	sec.AddImage(NewImage("https://example.com/logo.png"))
	sec.AddImage(NewImage("https://example.com/logo.png"))

	zr := assemble(t, d)

	if got := atomic.LoadInt64(&fetcher.calls); got != 1 {
		t.Errorf("shared locator fetched %d times, want 1", got)
	}
	media := 0
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "word/media/") {
			media++
		}
	}
	if media != 1 {
		t.Errorf("archive has %d media entries, want 1", media)
	}

	// Both placements point at the same relationship.
	doc := string(readPart(t, zr, partDocument))
	if got := strings.Count(doc, `r:embed="rId4"`); got != 2 {
		t.Errorf("body has %d embeds of rId4, want 2", got)
	}
}

func TestAssembleMultipleSections(t *testing.T) {
	d := testDocument()
	d.AddSection(A4Portrait()).AddParagraph(NewParagraph().Text("first"))
	landscape := A4Portrait()
	landscape.Orientation = "landscape"
	d.AddSection(landscape).AddParagraph(NewParagraph().Text("second"))

	zr := assemble(t, d)
	doc := string(readPart(t, zr, partDocument))

	// Earlier sections close inside a separator paragraph, the last one
	// closes the body itself.
	if got := strings.Count(doc, "<w:sectPr>"); got != 2 {
		t.Errorf("body has %d sectPr blocks, want 2", got)
	}
	if !strings.Contains(doc, `<w:pgSz w:w="16838" w:h="11906" w:orient="landscape">`) {
		t.Errorf("landscape section geometry not swapped:\n%s", doc)
	}
	first := strings.Index(doc, "first")
	sep := strings.Index(doc, "<w:sectPr>")
	second := strings.Index(doc, "second")
	if !(first < sep && sep < second) {
		t.Errorf("section separator not between section contents")
	}
}

func TestAssembleEmptyDocument(t *testing.T) {
	d := testDocument()
	zr := assemble(t, d)

	doc := string(readPart(t, zr, partDocument))
	if !strings.Contains(doc, `<w:pgSz w:w="11906" w:h="16838">`) {
		t.Errorf("empty document missing default page geometry:\n%s", doc)
	}
}

func TestAssembleFetchFailureAborts(t *testing.T) {
	d := New(WithFetcher(&stubFetcher{fail: true}))
	d.AddSection(A4Portrait()).AddImage(NewImage("https://example.com/broken.png"))

	var buf bytes.Buffer
	err := d.Assemble(context.Background(), &buf)
	if err == nil {
		t.Fatal("expected assembly to fail")
	}
	if !IsResourceFetchError(err) {
		t.Errorf("got %v, want ResourceFetchError", err)
	}
}

func TestAssembleMetadata(t *testing.T) {
	d := New(
		WithFetcher(&stubFetcher{}),
		WithMetadata(Metadata{Title: "Quarterly Report", Creator: "Jo <Ops>"}),
	)
	d.AddSection(A4Portrait()).AddParagraph(NewParagraph().Text("x"))

	zr := assemble(t, d)
	core := string(readPart(t, zr, partCoreProps))

	if !strings.Contains(core, "<dc:title>Quarterly Report</dc:title>") {
		t.Errorf("core properties missing title:\n%s", core)
	}
	if !strings.Contains(core, "Jo &lt;Ops&gt;") {
		t.Errorf("creator not escaped:\n%s", core)
	}
}

func TestPackageReaderRoundTrip(t *testing.T) {
	d := testDocument()
	d.AddSection(A4Portrait()).AddParagraph(NewParagraph().Text("roundtrip"))

	var buf bytes.Buffer
	if err := d.Save(&buf); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	pr, err := NewPackageReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("NewPackageReader failed: %v", err)
	}

	data, err := pr.GetPart(partDocument)
	if err != nil {
		t.Fatalf("GetPart failed: %v", err)
	}
	if !strings.Contains(string(data), "roundtrip") {
		t.Error("document part does not contain the written text")
	}

	rels, err := pr.DocumentRelationships()
	if err != nil {
		t.Fatalf("DocumentRelationships failed: %v", err)
	}
	ids := map[string]bool{}
	for _, rel := range rels {
		ids[rel.ID] = true
	}
	for _, id := range []string{"rId1", "rId2", "rId3"} {
		if !ids[id] {
			t.Errorf("fixed relationship %s missing from manifest: %+v", id, rels)
		}
	}
}
