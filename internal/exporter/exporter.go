package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/decor/internal/block"
	"github.com/roach88/decor/internal/composite"
	"github.com/roach88/decor/internal/decorator"
	"github.com/roach88/decor/internal/digest"
	"github.com/roach88/decor/internal/dom"
)

// DefaultBlockElements maps block types to wrapping tags.
var DefaultBlockElements = map[string]string{
	block.TypeUnstyled:          "p",
	block.TypeHeaderOne:         "h1",
	block.TypeHeaderTwo:         "h2",
	block.TypeHeaderThree:       "h3",
	block.TypeHeaderFour:        "h4",
	block.TypeHeaderFive:        "h5",
	block.TypeHeaderSix:         "h6",
	block.TypeUnorderedListItem: "li",
	block.TypeOrderedListItem:   "li",
	block.TypeBlockquote:        "blockquote",
	block.TypeCode:              "pre",
	block.TypeAtomic:            "figure",
}

// fallbackElement wraps block types missing from the element map.
const fallbackElement = "div"

// Options configures an Exporter.
type Options struct {
	// Decorators are applied to every block in this order.
	Decorators []decorator.Decorator

	// BlockElements overrides entries of DefaultBlockElements. An empty tag
	// renders the block without a wrapper.
	BlockElements map[string]string

	// Normalize converts block text to NFC before decoration.
	Normalize bool
}

// Exporter renders content states. It is safe for concurrent use.
type Exporter struct {
	decorators []decorator.Decorator
	elements   map[string]string
	normalize  bool
}

// BlockResult describes the output for one block.
type BlockResult struct {
	Index     int    `json:"index"`
	Key       string `json:"key"`
	Type      string `json:"type"`
	Decorated bool   `json:"decorated"`
	Markup    string `json:"markup"`
}

// Output is the result of an export.
type Output struct {
	Markup string        `json:"markup"`
	Blocks []BlockResult `json:"blocks"`
}

// New creates an Exporter.
func New(opts Options) *Exporter {
	elements := make(map[string]string, len(DefaultBlockElements)+len(opts.BlockElements))
	for k, v := range DefaultBlockElements {
		elements[k] = v
	}
	for k, v := range opts.BlockElements {
		elements[k] = v
	}

	decorators := make([]decorator.Decorator, len(opts.Decorators))
	copy(decorators, opts.Decorators)

	return &Exporter{
		decorators: decorators,
		elements:   elements,
		normalize:  opts.Normalize,
	}
}

// Decorators returns a copy of the configured decorator list.
func (e *Exporter) Decorators() []decorator.Decorator {
	out := make([]decorator.Decorator, len(e.decorators))
	copy(out, e.decorators)
	return out
}

// Export renders every block of cs. It stops at the first failing block or
// when ctx is cancelled.
func (e *Exporter) Export(ctx context.Context, cs *block.ContentState) (*Output, error) {
	out := &Output{Blocks: make([]BlockResult, 0, len(cs.Blocks))}

	var b strings.Builder
	for i, blk := range cs.Blocks {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("export cancelled at block %d: %w", i, err)
		}

		node, decorated, err := e.RenderBlock(blk, cs.Blocks)
		if err != nil {
			return nil, fmt.Errorf("block %d (%s): %w", i, blk.Key, err)
		}

		markup, err := dom.Render(node)
		if err != nil {
			return nil, fmt.Errorf("render block %d (%s): %w", i, blk.Key, err)
		}

		slog.Debug("block rendered",
			"index", i,
			"key", blk.Key,
			"type", blk.Type,
			"decorated", decorated,
		)

		b.WriteString(markup)
		out.Blocks = append(out.Blocks, BlockResult{
			Index:     i,
			Key:       blk.Key,
			Type:      blk.Type,
			Decorated: decorated,
			Markup:    markup,
		})
	}
	out.Markup = b.String()

	slog.Info("export complete", "blocks", len(out.Blocks), "bytes", len(out.Markup))
	return out, nil
}

// RenderBlock decorates one block and wraps it in its block element.
// decorated reports whether the engine changed the text.
func (e *Exporter) RenderBlock(blk block.Block, blocks block.BlockList) (node dom.Node, decorated bool, err error) {
	text := blk.Text
	if e.normalize {
		text = norm.NFC.String(text)
	}

	var content dom.Node = dom.Text(text)
	if composite.ShouldRenderDecorators(e.decorators, text) {
		content, err = composite.RenderDecorators(e.decorators, text, blk, blocks)
		if err != nil {
			return nil, false, err
		}
	}
	_, plain := content.(dom.Text)

	return dom.CreateElement(e.elementFor(blk.Type), nil, content), !plain, nil
}

func (e *Exporter) elementFor(blockType string) string {
	if tag, ok := e.elements[blockType]; ok {
		return tag
	}
	return fallbackElement
}

// Fingerprint digests the decorator list (names, patterns, kinds, template
// parameters, order), the resolved block elements and the normalize flag so
// journal entries can tell which configuration produced them.
func (e *Exporter) Fingerprint() (string, error) {
	list := make([]any, len(e.decorators))
	for i, d := range e.decorators {
		pattern := ""
		if d.Strategy != nil {
			pattern = d.Strategy.String()
		}
		entry := map[string]any{
			"name":    d.Name,
			"pattern": pattern,
			"kind":    d.Kind.String(),
		}
		if d.Params != nil {
			entry["params"] = d.Params
		}
		list[i] = entry
	}
	return digest.Sum(digest.DomainDecorators, map[string]any{
		"decorators":     list,
		"block_elements": e.elements,
		"normalize":      e.normalize,
	})
}
