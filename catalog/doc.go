// Package catalog declares, per document type, which properties each node
// kind carries and how they hold their values.
//
// The catalog is pure data. The reader in package parser consults it to
// decide whether an input property becomes a raw value, a child node, a
// list of children or a keyed collection; anything the catalog does not
// declare is kept verbatim in the node's extension bag.
package catalog
