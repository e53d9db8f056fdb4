// Package composite applies an ordered list of decorators to block text.
//
// # Priority
//
// Decorators run strictly in list order. Each decorator scans the whole
// input, but a match is kept only if it lies entirely inside text that no
// earlier decorator has claimed. The first decorator therefore wins every
// span it matches, and a later match that crosses a claimed span is dropped
// rather than shortened. Swapping two decorators whose patterns can contest
// a span changes the output.
//
// # Passes
//
// The working fragment starts as one open text piece covering the input.
// Each decorator pass builds a new piece list from the previous one: open
// pieces holding accepted matches are split into [before] [rendered match]
// [between] ... [after], empty text is never emitted, and rendered pieces
// are copied through untouched. Renderer output is never scanned again.
//
// Every piece remembers the source span it came from, so apart from
// suppressed matches the pieces always cover the input exactly once.
//
// # Gate
//
// ShouldRenderDecorators is a cheap pre-check. Skipping the engine when it
// returns false never changes the output.
package composite
