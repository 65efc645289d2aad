package docxaur

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nekoprog/DocXaur/pkg/docxaur/ooxml"
)

func TestReconcileFromAbsent(t *testing.T) {
	required := []ooxml.Relationship{
		{ID: "rId1", Type: ooxml.RelTypeStyles, Target: "styles.xml"},
		{ID: "rId2", Type: ooxml.RelTypeFontTable, Target: "fontTable.xml"},
	}

	out, err := Reconcile(nil, required)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	rels, err := ooxml.ParseRelationships(out)
	if err != nil {
		t.Fatalf("output did not parse: %v", err)
	}
	if len(rels.Relationship) != 2 {
		t.Fatalf("got %d entries, want 2", len(rels.Relationship))
	}
	if rels.Relationship[0].ID != "rId1" || rels.Relationship[1].ID != "rId2" {
		t.Errorf("entry order not preserved: %+v", rels.Relationship)
	}
}

func TestReconcileSkipsExistingIDs(t *testing.T) {
	base, err := Reconcile(nil, fixedRelationships())
	if err != nil {
		t.Fatalf("base Reconcile failed: %v", err)
	}

	required := []ooxml.Relationship{
		{ID: "rId1", Type: ooxml.RelTypeImage, Target: "media/clobber.png"}, // already present
		{ID: "rId4", Type: ooxml.RelTypeImage, Target: "media/image1.png"},
	}
	out, err := Reconcile(base, required)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	rels, err := ooxml.ParseRelationships(out)
	if err != nil {
		t.Fatalf("output did not parse: %v", err)
	}
	if len(rels.Relationship) != 4 {
		t.Fatalf("got %d entries, want 4", len(rels.Relationship))
	}
	// rId1 must keep its original target, not the clobbering one.
	if rels.Relationship[0].Target != "styles.xml" {
		t.Errorf("existing rId1 entry was not preserved verbatim: %+v", rels.Relationship[0])
	}
	if strings.Contains(string(out), "clobber.png") {
		t.Error("duplicate id entry leaked into output")
	}
}

func TestReconcileIdempotent(t *testing.T) {
	required := requiredImageRelationships([]*ImageRecord{
		{ID: 1, Extension: "png", RelID: "rId4"},
		{ID: 2, Extension: "jpg", RelID: "rId5"},
	})

	once, err := Reconcile(nil, required)
	if err != nil {
		t.Fatalf("first Reconcile failed: %v", err)
	}
	twice, err := Reconcile(once, required)
	if err != nil {
		t.Fatalf("second Reconcile failed: %v", err)
	}

	if !bytes.Equal(once, twice) {
		t.Errorf("Reconcile is not idempotent:\nfirst:  %s\nsecond: %s", once, twice)
	}
}

func TestRequiredImageRelationships(t *testing.T) {
	records := []*ImageRecord{
		{ID: 1, Extension: "png", RelID: "rId4"},
		{ID: 2, Extension: "gif", RelID: "rId5"},
	}

	rels := requiredImageRelationships(records)
	if len(rels) != 2 {
		t.Fatalf("got %d entries, want 2", len(rels))
	}
	if rels[0].Target != "media/image1.png" {
		t.Errorf("first target = %q, want media/image1.png", rels[0].Target)
	}
	if rels[1].ID != "rId5" || rels[1].Type != ooxml.RelTypeImage {
		t.Errorf("second entry wrong: %+v", rels[1])
	}
}
