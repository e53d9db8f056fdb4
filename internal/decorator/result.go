package decorator

import "github.com/roach88/decor/internal/dom"

type resultKind int

const (
	resultSuppressed resultKind = iota
	resultNode
	resultText
)

// Result is a renderer's answer for one match. The zero value is Suppressed.
type Result struct {
	kind resultKind
	node dom.Node
}

// Node replaces the match with n. A nil node suppresses the match.
func Node(n dom.Node) Result {
	if n == nil {
		return Suppressed()
	}
	if el, ok := n.(*dom.Element); ok && el == nil {
		return Suppressed()
	}
	return Result{kind: resultNode, node: n}
}

// PlainText replaces the match with literal text. An empty string
// suppresses the match.
func PlainText(s string) Result {
	if s == "" {
		return Suppressed()
	}
	return Result{kind: resultText, node: dom.Text(s)}
}

// Suppressed drops the match from the output.
func Suppressed() Result {
	return Result{}
}

// IsSuppressed reports whether the match produces no output.
func (r Result) IsSuppressed() bool {
	return r.kind == resultSuppressed
}

// Value returns the replacement node, or nil when suppressed.
func (r Result) Value() dom.Node {
	return r.node
}

func (r Result) String() string {
	switch r.kind {
	case resultNode:
		return "node"
	case resultText:
		return "text"
	default:
		return "suppressed"
	}
}
