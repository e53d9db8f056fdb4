// Package dom is the node tree used by the decorator engine and the exporter.
//
// A tree is made of two kinds of node:
//   - Text: an immutable string leaf, escaped when rendered
//   - *Element: a tag, a property bag and ordered children
//
// An element with an empty tag is a fragment. It groups siblings without
// producing a wrapper when rendered, so a list of nodes is itself a valid
// tree.
//
// Serialization goes through golang.org/x/net/html, which escapes text and
// attribute values and self-closes void elements (<br/>). Attributes are
// emitted sorted by name so output is deterministic.
package dom
