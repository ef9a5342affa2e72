package nodepath

// Builder provides efficient incremental path construction.
// Uses push/pop semantics to avoid allocations during traversal.
// The Path value is only materialized when Path() or String() is called.
type Builder struct {
	segments []Segment
}

// PushProperty adds a property segment.
func (b *Builder) PushProperty(name string) {
	b.segments = append(b.segments, Prop(name))
}

// PushIndex adds a sequence index segment.
func (b *Builder) PushIndex(i int) {
	b.segments = append(b.segments, At(i))
}

// PushKey adds a keyed-collection segment.
func (b *Builder) PushKey(key string) {
	b.segments = append(b.segments, KeyOf(key))
}

// Push adds an arbitrary segment.
func (b *Builder) Push(s Segment) {
	b.segments = append(b.segments, s)
}

// Pop removes the last segment.
func (b *Builder) Pop() {
	if len(b.segments) == 0 {
		return
	}
	b.segments = b.segments[:len(b.segments)-1]
}

// Len returns the current number of segments.
func (b *Builder) Len() int {
	return len(b.segments)
}

// Reset clears the builder for reuse.
func (b *Builder) Reset() {
	b.segments = b.segments[:0]
}

// Path materializes the current path. Only call when the path is needed.
func (b *Builder) Path() Path {
	return New(b.segments...)
}

// String renders the current path.
func (b *Builder) String() string {
	return Path{segs: b.segments}.String()
}
