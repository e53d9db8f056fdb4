// Package decorator defines decoration rules and the pieces they are made of.
//
// A Decorator pairs a compiled pattern (the strategy) with a Renderer (the
// component). The composite engine scans block text with each strategy in
// list order and hands every match to the renderer, which returns a tagged
// Result:
//   - Node(n): replace the match with n
//   - PlainText(s): replace the match with literal text
//   - Suppressed(): drop the match from the output
//
// Renderers receive the block being decorated and the full block list. They
// must treat both as read-only.
//
// The package also ships the reference renderers (line break, hashtag,
// linkify), a configurable element template, and a name registry used by the
// configuration compiler.
package decorator
