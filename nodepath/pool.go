package nodepath

import "sync"

const (
	defaultPathCap = 8  // Most node paths are <8 segments deep
	maxPathCap     = 64 // Don't pool excessively deep paths
)

var builderPool = sync.Pool{
	New: func() any {
		return &Builder{
			segments: make([]Segment, 0, defaultPathCap),
		}
	},
}

// Get retrieves a Builder from the pool, reset and ready to use.
func Get() *Builder {
	b := builderPool.Get().(*Builder)
	b.Reset()
	return b
}

// Put returns a Builder to the pool if not oversized.
func Put(b *Builder) {
	if b == nil || cap(b.segments) > maxPathCap {
		return // Let GC collect oversized builders
	}
	builderPool.Put(b)
}
