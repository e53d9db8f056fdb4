package store

import (
	"path/filepath"
	"testing"
)

// createTestStore opens a journal in a temporary directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestExport builds an export with one block per markup string.
func createTestExport(id string, markups ...string) (Export, []ExportBlock) {
	exp := Export{
		ID:               id,
		Source:           "content.json",
		DecoratorsDigest: "decorators-digest",
		MarkupDigest:     "markup-digest",
		BlockCount:       len(markups),
	}
	blocks := make([]ExportBlock, len(markups))
	for i, m := range markups {
		exp.MarkupBytes += len(m)
		blocks[i] = ExportBlock{
			ExportID:   id,
			Index:      i,
			Key:        string(rune('a' + i)),
			Type:       "unstyled",
			TextDigest: "text-digest",
			Decorated:  m != "<p></p>",
			Markup:     m,
		}
	}
	return exp, blocks
}
