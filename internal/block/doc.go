// Package block is the document model consumed by the exporter.
//
// A ContentState is the raw JSON form of a rich-text editor document: an
// ordered list of blocks plus an entity map. The decorator engine only reads
// a block's Type; everything else passes through so renderers can resolve
// cross-block context (numbering, siblings) from the BlockList.
//
// Nothing in this package mutates a block after decoding.
package block
