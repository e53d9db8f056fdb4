package store

import (
	"github.com/roach88/decor/internal/digest"
	"github.com/roach88/decor/internal/exporter"
)

// Export is one journal entry.
type Export struct {
	ID               string `json:"id"`
	Seq              int64  `json:"seq"`
	Source           string `json:"source"`
	DecoratorsDigest string `json:"decorators_digest"`
	MarkupDigest     string `json:"markup_digest"`
	BlockCount       int    `json:"block_count"`
	MarkupBytes      int    `json:"markup_bytes"`
}

// ExportBlock is the journal record for one rendered block.
type ExportBlock struct {
	ExportID   string `json:"export_id"`
	Index      int    `json:"index"`
	Key        string `json:"key"`
	Type       string `json:"type"`
	TextDigest string `json:"text_digest"`
	Decorated  bool   `json:"decorated"`
	Markup     string `json:"markup"`
}

// NewRecord builds journal records for an exporter result. texts holds the
// source text of each block, in block order. Seq is assigned on write.
func NewRecord(id, source, decoratorsDigest string, out *exporter.Output, texts []string) (Export, []ExportBlock) {
	exp := Export{
		ID:               id,
		Source:           source,
		DecoratorsDigest: decoratorsDigest,
		MarkupDigest:     digest.Text(digest.DomainMarkup, out.Markup),
		BlockCount:       len(out.Blocks),
		MarkupBytes:      len(out.Markup),
	}

	blocks := make([]ExportBlock, len(out.Blocks))
	for i, b := range out.Blocks {
		text := ""
		if i < len(texts) {
			text = texts[i]
		}
		blocks[i] = ExportBlock{
			ExportID:   id,
			Index:      b.Index,
			Key:        b.Key,
			Type:       b.Type,
			TextDigest: digest.Text(digest.DomainText, text),
			Decorated:  b.Decorated,
			Markup:     b.Markup,
		}
	}
	return exp, blocks
}
