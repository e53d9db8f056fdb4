// Package digest computes stable content digests for the export journal.
//
// Values are first serialized to canonical JSON: object keys sorted by
// UTF-16 code units, strings NFC-normalized, no HTML escaping, and no floats
// or nulls. The canonical bytes are hashed with BLAKE3 under a domain prefix
// so digests of different kinds of value can never collide.
package digest
