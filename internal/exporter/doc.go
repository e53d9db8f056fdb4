// Package exporter renders a whole content state to markup.
//
// For every block, in document order, the exporter consults the render gate,
// runs the composite decorator engine when the gate allows it, and wraps the
// result in the element configured for the block type. Blocks are rendered
// independently; the full block list is handed to renderers for context only.
package exporter
