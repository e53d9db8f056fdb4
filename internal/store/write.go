package store

import (
	"context"
	"fmt"
)

// WriteExport appends an export and its blocks in one transaction and
// returns the stored export with its assigned seq.
//
// Uses ON CONFLICT(id) DO NOTHING for idempotency: writing an ID that is
// already journaled returns the existing entry and inserted=false.
func (s *Store) WriteExport(ctx context.Context, exp Export, blocks []ExportBlock) (stored Export, inserted bool, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Export{}, false, fmt.Errorf("write export: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM exports`).Scan(&seq); err != nil {
		return Export{}, false, fmt.Errorf("write export: next seq: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO exports
		(id, seq, source, decorators_digest, markup_digest, block_count, markup_bytes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		exp.ID,
		seq,
		exp.Source,
		exp.DecoratorsDigest,
		exp.MarkupDigest,
		exp.BlockCount,
		exp.MarkupBytes,
	)
	if err != nil {
		return Export{}, false, fmt.Errorf("write export: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return Export{}, false, fmt.Errorf("write export: rows affected: %w", err)
	}
	if affected == 0 {
		existing, err := readExport(ctx, tx, exp.ID)
		if err != nil {
			return Export{}, false, fmt.Errorf("write export: read existing: %w", err)
		}
		return existing, false, nil
	}

	for _, b := range blocks {
		if b.ExportID != exp.ID {
			return Export{}, false, fmt.Errorf("write export: block %d belongs to export %q, not %q", b.Index, b.ExportID, exp.ID)
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO export_blocks
			(export_id, block_index, block_key, block_type, text_digest, decorated, markup)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`,
			b.ExportID,
			b.Index,
			b.Key,
			b.Type,
			b.TextDigest,
			b.Decorated,
			b.Markup,
		)
		if err != nil {
			return Export{}, false, fmt.Errorf("write export block %d: %w", b.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Export{}, false, fmt.Errorf("write export: commit: %w", err)
	}

	exp.Seq = seq
	return exp, true, nil
}
