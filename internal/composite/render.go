package composite

import (
	"log/slog"

	"github.com/roach88/decor/internal/block"
	"github.com/roach88/decor/internal/decorator"
	"github.com/roach88/decor/internal/dom"
)

// piece is one entry of the working fragment. start is the byte offset of
// text in the input. Open pieces (node == nil) can still be decorated.
type piece struct {
	start int
	text  string
	node  dom.Node
}

func (p piece) open() bool {
	return p.node == nil
}

func (p piece) end() int {
	return p.start + len(p.text)
}

// RenderDecorators decorates text with decorators in priority order.
//
// It returns dom.Text(text) when nothing was decorated, and a fragment of
// the decorated pieces otherwise. blk and blocks are passed to every
// renderer as-is. A malformed decorator, a pattern that matches the empty
// string, or a renderer error stops decoration and is returned.
func RenderDecorators(decorators []decorator.Decorator, text string, blk block.Block, blocks block.BlockList) (dom.Node, error) {
	if len(decorators) == 0 {
		return dom.Text(text), nil
	}

	for i, d := range decorators {
		if err := d.Validate(i); err != nil {
			return nil, err
		}
	}

	pieces := []piece{{start: 0, text: text}}
	for i, d := range decorators {
		next, accepted, err := applyDecorator(pieces, d, i, text, blk, blocks)
		if err != nil {
			return nil, err
		}

		slog.Debug("decorator applied",
			"decorator", d.Name,
			"index", i,
			"block_key", blk.Key,
			"matches", accepted,
		)
		pieces = next
	}

	if len(pieces) == 1 && pieces[0].open() && pieces[0].text == text {
		return dom.Text(text), nil
	}

	children := make([]dom.Node, 0, len(pieces))
	for _, p := range pieces {
		if p.open() {
			children = append(children, dom.Text(p.text))
			continue
		}
		children = append(children, p.node)
	}
	return dom.Fragment(children...), nil
}

// applyDecorator scans text with d, the decorator at index, and returns the
// next fragment along with the number of matches accepted.
func applyDecorator(pieces []piece, d decorator.Decorator, index int, text string, blk block.Block, blocks block.BlockList) ([]piece, int, error) {
	matches, err := decorator.Scan(d.Strategy, text)
	if err != nil {
		return nil, 0, decorator.WithDecorator(err, d, index)
	}
	if len(matches) == 0 {
		return pieces, 0, nil
	}

	next := make([]piece, 0, len(pieces)+2*len(matches))
	accepted := 0
	mi := 0

	for _, p := range pieces {
		if !p.open() {
			next = append(next, p)
			continue
		}

		cursor := p.start
		for mi < len(matches) && matches[mi].Start < p.end() {
			m := matches[mi]
			mi++
			// Crosses into a span an earlier decorator claimed.
			if m.Start < p.start || m.End > p.end() {
				continue
			}

			if m.Start > cursor {
				next = append(next, piece{start: cursor, text: text[cursor:m.Start]})
			}

			res, err := d.Component(decorator.Props{
				Block:    blk,
				Blocks:   blocks,
				Match:    m,
				Children: dom.Text(m.Text),
			})
			if err != nil {
				return nil, 0, decorator.RendererFailure(err, d, index)
			}
			if !res.IsSuppressed() {
				next = append(next, piece{start: m.Start, text: m.Text, node: res.Value()})
			}
			cursor = m.End
			accepted++
		}

		if cursor < p.end() {
			next = append(next, piece{start: cursor, text: text[cursor:p.end()]})
		}
	}

	return next, accepted, nil
}
