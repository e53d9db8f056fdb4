package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/decor/internal/digest"
	"github.com/roach88/decor/internal/exporter"
)

func TestWriteExport_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	exp, blocks := createTestExport("export-1", `<p><a href="http://x.com">x.com</a></p>`, "<p></p>")
	stored, inserted, err := s.WriteExport(ctx, exp, blocks)
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.Equal(t, int64(1), stored.Seq)

	got, err := s.ReadExport(ctx, "export-1")
	require.NoError(t, err)
	assert.Equal(t, stored, got)

	gotBlocks, err := s.ReadExportBlocks(ctx, "export-1")
	require.NoError(t, err)
	assert.Equal(t, blocks, gotBlocks)
}

func TestWriteExport_AssignsIncreasingSeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for i, id := range []string{"c", "a", "b"} {
		exp, blocks := createTestExport(id, "<p>x</p>")
		stored, _, err := s.WriteExport(ctx, exp, blocks)
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), stored.Seq)
	}

	exports, err := s.ReadExports(ctx)
	require.NoError(t, err)
	require.Len(t, exports, 3)

	ids := []string{exports[0].ID, exports[1].ID, exports[2].ID}
	assert.Equal(t, []string{"c", "a", "b"}, ids, "journal order follows seq, not ID")
}

func TestWriteExport_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	exp, blocks := createTestExport("export-1", "<p>one</p>")
	first, inserted, err := s.WriteExport(ctx, exp, blocks)
	require.NoError(t, err)
	require.True(t, inserted)

	exp.Source = "other.json"
	second, inserted, err := s.WriteExport(ctx, exp, blocks)
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, first, second, "existing entry is returned unchanged")

	exports, err := s.ReadExports(ctx)
	require.NoError(t, err)
	assert.Len(t, exports, 1)
}

func TestWriteExport_RejectsForeignBlock(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	exp, blocks := createTestExport("export-1", "<p>one</p>")
	blocks[0].ExportID = "export-2"

	_, _, err := s.WriteExport(ctx, exp, blocks)
	require.Error(t, err)

	exports, err := s.ReadExports(ctx)
	require.NoError(t, err)
	assert.Empty(t, exports, "failed write leaves no partial export")
}

func TestReadExport_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadExport(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = s.ReadExportBlocks(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestReadExports_Empty(t *testing.T) {
	s := createTestStore(t)

	exports, err := s.ReadExports(context.Background())
	require.NoError(t, err)
	assert.Empty(t, exports)
}

func TestNewRecord(t *testing.T) {
	out := &exporter.Output{
		Markup: "<p>#go</p><p>plain</p>",
		Blocks: []exporter.BlockResult{
			{Index: 0, Key: "a", Type: "unstyled", Decorated: true, Markup: "<p>#go</p>"},
			{Index: 1, Key: "b", Type: "unstyled", Decorated: false, Markup: "<p>plain</p>"},
		},
	}

	exp, blocks := NewRecord("export-1", "doc.json", "fp", out, []string{"#go", "plain"})

	assert.Equal(t, "export-1", exp.ID)
	assert.Equal(t, "doc.json", exp.Source)
	assert.Equal(t, "fp", exp.DecoratorsDigest)
	assert.Equal(t, digest.Text(digest.DomainMarkup, out.Markup), exp.MarkupDigest)
	assert.Equal(t, 2, exp.BlockCount)
	assert.Equal(t, len(out.Markup), exp.MarkupBytes)
	assert.Zero(t, exp.Seq)

	require.Len(t, blocks, 2)
	assert.Equal(t, "export-1", blocks[0].ExportID)
	assert.Equal(t, digest.Text(digest.DomainText, "#go"), blocks[0].TextDigest)
	assert.True(t, blocks[0].Decorated)
	assert.Equal(t, "<p>plain</p>", blocks[1].Markup)
	assert.NotEqual(t, blocks[0].TextDigest, blocks[1].TextDigest)
}

func TestNewRecord_WritesThroughJournal(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	out := &exporter.Output{
		Markup: "<p>a</p>",
		Blocks: []exporter.BlockResult{{Index: 0, Key: "k", Type: "unstyled", Markup: "<p>a</p>"}},
	}
	gen := NewFixedGenerator("0190a000-0000-7000-8000-000000000001")
	exp, blocks := NewRecord(gen.Generate(), "doc.json", "fp", out, []string{"a"})

	_, inserted, err := s.WriteExport(ctx, exp, blocks)
	require.NoError(t, err)
	assert.True(t, inserted)

	got, err := s.ReadExportBlocks(ctx, "0190a000-0000-7000-8000-000000000001")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "k", got[0].Key)
}
