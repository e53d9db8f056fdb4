// Package harness runs decorator scenarios and checks their output.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: conflicting_order_one
//	description: "linkify claims the URL before hashtag sees #hash"
//	decorators: [linkify, hashtag]
//	blocks:
//	  - key: a
//	    type: unstyled
//	    text: "test https://www.example.com#hash #hashtagtest"
//	assertions:
//	  - type: element_count
//	    selector: a
//	    count: 1
//	  - type: attr_equals
//	    selector: a
//	    attr: href
//	    value: "https://www.example.com#hash"
//
// decorators lists built-in names in priority order. A scenario may name a
// CUE configuration file instead (config: path/to/file.cue, relative to the
// scenario file); the two are mutually exclusive.
//
// # Assertion Types
//
//   - markup_equals: block (or document) markup equals value
//   - markup_contains: block (or document) markup contains value
//   - element_count: selector matches exactly count elements
//   - attr_equals: first selector match has attr equal to value
//   - decorated: the engine changed the block's text
//   - gate: the render gate's decision for the block
//
// Assertions without a block apply to the whole document.
//
// # Determinism
//
// Each run exports into a fresh in-memory journal under a fixed export ID,
// so snapshots are byte-identical across runs. Logs are discarded.
package harness
