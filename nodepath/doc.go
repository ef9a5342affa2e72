// Package nodepath encodes the location of a node within a document as a
// portable string.
//
// A path is a sequence of segments, and each segment is exactly one of:
//
//   - a property, written as a bare name after a slash: /info
//   - an index into an ordered sequence, in brackets: [0]
//   - a key into a keyed collection, quoted in brackets: ["NotFoundError"]
//
// The root of a document is "/". Some examples:
//
//	/info/contact
//	/components/responses["NotFoundError"]
//	/paths["/pets/{id}"]/get/parameters[0]
//
// Keys use Go string quoting, which is JSON compatible for printable input,
// so a key may contain any character including '/', '[' and '"'.
//
// Index segments address a position, not an identity: reordering a sequence
// changes which node an index path resolves to. Key and property segments are
// stable across clone and re-attach of the same logical position.
//
// # Builder Usage
//
// Use [Get] to obtain a pooled Builder, and [Put] to return it:
//
//	b := nodepath.Get()
//	defer nodepath.Put(b)
//
//	b.PushProperty("components")
//	b.PushProperty("responses")
//	b.PushKey("NotFoundError")
//	// ... recurse ...
//	b.Pop()
package nodepath
