package decorator

import (
	"regexp"

	"github.com/roach88/decor/internal/block"
	"github.com/roach88/decor/internal/dom"
)

// Kind marks decorators that get special treatment from the render gate.
type Kind int

const (
	// KindGeneric is any decorator without special handling.
	KindGeneric Kind = iota

	// KindLineBreak marks the line-break decorator. The gate skips the
	// engine for it unless the text contains a newline.
	KindLineBreak
)

func (k Kind) String() string {
	switch k {
	case KindLineBreak:
		return "line_break"
	default:
		return "generic"
	}
}

// Decorator is one decoration rule. Order in a list encodes priority.
type Decorator struct {
	// Name identifies the decorator in logs and errors.
	Name string

	// Strategy finds the spans to decorate. It is compiled once and shared.
	Strategy *regexp.Regexp

	// Component renders each match.
	Component Renderer

	Kind Kind

	// Params describes what Component renders, for configuration
	// fingerprints. Nil for built-ins and hand-written renderers.
	Params map[string]any
}

// Props is what a Renderer receives for one match.
type Props struct {
	Block    block.Block
	Blocks   block.BlockList
	Match    Match
	Children dom.Node
}

// Renderer turns one match into its replacement.
type Renderer func(Props) (Result, error)

// Validate reports a missing strategy or component. index is the
// decorator's position in its list, or -1.
func (d Decorator) Validate(index int) error {
	if d.Strategy == nil {
		return newMalformedError(d.Name, index, "strategy is required")
	}
	if d.Component == nil {
		return newMalformedError(d.Name, index, "component is required")
	}
	return nil
}

func (d Decorator) label() string {
	if d.Name != "" {
		return d.Name
	}
	if d.Strategy != nil {
		return d.Strategy.String()
	}
	return "<unnamed>"
}
