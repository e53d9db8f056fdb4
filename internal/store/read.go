package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when an export ID is not in the journal.
var ErrNotFound = errors.New("export not found")

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const exportColumns = `id, seq, source, decorators_digest, markup_digest, block_count, markup_bytes`

// ReadExport returns one export by ID.
func (s *Store) ReadExport(ctx context.Context, id string) (Export, error) {
	return readExport(ctx, s.db, id)
}

func readExport(ctx context.Context, q rowQuerier, id string) (Export, error) {
	var exp Export
	err := q.QueryRowContext(ctx, `SELECT `+exportColumns+` FROM exports WHERE id = ?`, id).Scan(
		&exp.ID, &exp.Seq, &exp.Source, &exp.DecoratorsDigest, &exp.MarkupDigest, &exp.BlockCount, &exp.MarkupBytes,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Export{}, fmt.Errorf("read export %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Export{}, fmt.Errorf("read export %s: %w", id, err)
	}
	return exp, nil
}

// ReadExports returns all exports in journal order.
func (s *Store) ReadExports(ctx context.Context) ([]Export, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+exportColumns+`
		FROM exports
		ORDER BY seq ASC, id ASC COLLATE BINARY
	`)
	if err != nil {
		return nil, fmt.Errorf("read exports: %w", err)
	}
	defer rows.Close()

	var exports []Export
	for rows.Next() {
		var exp Export
		if err := rows.Scan(&exp.ID, &exp.Seq, &exp.Source, &exp.DecoratorsDigest, &exp.MarkupDigest, &exp.BlockCount, &exp.MarkupBytes); err != nil {
			return nil, fmt.Errorf("read exports: scan: %w", err)
		}
		exports = append(exports, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read exports: %w", err)
	}
	return exports, nil
}

// ReadExportBlocks returns the blocks of one export in block order.
func (s *Store) ReadExportBlocks(ctx context.Context, exportID string) ([]ExportBlock, error) {
	if _, err := s.ReadExport(ctx, exportID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT export_id, block_index, block_key, block_type, text_digest, decorated, markup
		FROM export_blocks
		WHERE export_id = ?
		ORDER BY block_index ASC
	`, exportID)
	if err != nil {
		return nil, fmt.Errorf("read export blocks: %w", err)
	}
	defer rows.Close()

	var blocks []ExportBlock
	for rows.Next() {
		var b ExportBlock
		if err := rows.Scan(&b.ExportID, &b.Index, &b.Key, &b.Type, &b.TextDigest, &b.Decorated, &b.Markup); err != nil {
			return nil, fmt.Errorf("read export blocks: scan: %w", err)
		}
		blocks = append(blocks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read export blocks: %w", err)
	}
	return blocks, nil
}
