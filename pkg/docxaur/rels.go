package docxaur

import (
	"fmt"

	"github.com/nekoprog/DocXaur/pkg/docxaur/ooxml"
)

// Reconcile merges required entries into an existing relationship manifest
// without duplication. Existing entries are preserved verbatim and in
// order; required entries whose id is already present are skipped. The
// function is pure and idempotent: reconciling its own output with the
// same required set yields byte-identical bytes.
//
// existing may be nil or empty, in which case reconciliation starts from
// an empty manifest.
func Reconcile(existing []byte, required []ooxml.Relationship) ([]byte, error) {
	var rels *ooxml.Relationships
	if len(existing) == 0 {
		rels = ooxml.NewRelationships()
	} else {
		parsed, err := ooxml.ParseRelationships(existing)
		if err != nil {
			return nil, err
		}
		rels = parsed
	}

	seen := make(map[string]bool, len(rels.Relationship))
	for _, rel := range rels.Relationship {
		seen[rel.ID] = true
	}
	for _, rel := range required {
		if seen[rel.ID] {
			continue
		}
		rels.Relationship = append(rels.Relationship, rel)
		seen[rel.ID] = true
	}

	return rels.Bytes()
}

// requiredImageRelationships builds the per-image entries the document
// manifest must contain after assembly.
func requiredImageRelationships(records []*ImageRecord) []ooxml.Relationship {
	out := make([]ooxml.Relationship, 0, len(records))
	for _, rec := range records {
		out = append(out, ooxml.Relationship{
			ID:     rec.RelID,
			Type:   ooxml.RelTypeImage,
			Target: fmt.Sprintf("media/image%d.%s", rec.ID, rec.Extension),
		})
	}
	return out
}
