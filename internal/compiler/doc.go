// Package compiler turns CUE decorator configuration into decorators and
// exporter options.
//
// A configuration file looks like:
//
//	normalize: true
//
//	block_elements: {
//		"callout": "aside"
//	}
//
//	decorators: [
//		{builtin: "linkify"},
//		{builtin: "hashtag"},
//		{
//			name:    "mention"
//			pattern: "@(\\w+)"
//			element: {tag: "a", class: "mention", attrs: {href: "/users/$1"}}
//		},
//		{name: "zero-width", pattern: "\u200b", strip: true},
//		{builtin: "br"},
//	]
//
// Entries are kept in file order, which is their priority order. An entry
// is either a built-in (by registry name), a template (pattern + element),
// or a strip rule (pattern + strip: true). Unknown fields are rejected.
//
// The CUE SDK is used directly through its Go API; no cue binary is needed.
package compiler
