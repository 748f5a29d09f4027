package pixbuf

import "sync"

// Pool tiers sized for decoded tile buffers. A 256x256 greyscale 8-bit tile
// is 64KB, the same tile as 8-bit RGB is 192KB, and as 32-bit float RGB it
// is 768KB. The 4MB ceiling covers 512x512 float RGBA tiles.
const (
	size4K   = 1 << 12
	size64K  = 1 << 16
	size256K = 1 << 18
	size1M   = 1 << 20
	size4M   = 1 << 22
)

// Buffer pools for each size tier. Pooling keeps reshape-heavy workloads
// (crop, channel expansion) from churning the heap, since every reshape
// allocates a replacement buffer and retires the old one.
var (
	pool4K   = sync.Pool{New: func() any { return make([]byte, size4K) }}
	pool64K  = sync.Pool{New: func() any { return make([]byte, size64K) }}
	pool256K = sync.Pool{New: func() any { return make([]byte, size256K) }}
	pool1M   = sync.Pool{New: func() any { return make([]byte, size1M) }}
	pool4M   = sync.Pool{New: func() any { return make([]byte, size4M) }}
)

// alloc returns a buffer of the given size from the smallest fitting pool
// tier. Sizes above the largest tier are allocated directly.
// The returned bytes are not zeroed.
func alloc(size int) []byte {
	switch {
	case size <= size4K:
		return pool4K.Get().([]byte)[:size]
	case size <= size64K:
		return pool64K.Get().([]byte)[:size]
	case size <= size256K:
		return pool256K.Get().([]byte)[:size]
	case size <= size1M:
		return pool1M.Get().([]byte)[:size]
	case size <= size4M:
		return pool4M.Get().([]byte)[:size]
	default:
		return make([]byte, size)
	}
}

// free returns a buffer to the pool matching its capacity.
// Buffers that did not come from a pool are left to the GC.
func free(buf []byte) {
	switch cap(buf) {
	case size4K:
		pool4K.Put(buf[:cap(buf)])
	case size64K:
		pool64K.Put(buf[:cap(buf)])
	case size256K:
		pool256K.Put(buf[:cap(buf)])
	case size1M:
		pool1M.Put(buf[:cap(buf)])
	case size4M:
		pool4M.Put(buf[:cap(buf)])
	}
}
