// Package pixbuf provides typed, ownership-aware pixel sample buffers.
//
// A Buffer carries the element kind it was allocated for and, when owned,
// the release path captured at allocation time. Access, reshape and release
// therefore always agree with the allocation, and a borrowed buffer has no
// release path at all.
package pixbuf

import (
	"errors"
	"fmt"
)

// Kind identifies the element type stored in a Buffer.
type Kind uint8

const (
	U8 Kind = iota
	U16
	U32
	F32
)

// Size returns the number of bytes per sample.
func (k Kind) Size() int {
	switch k {
	case U16:
		return 2
	case U32, F32:
		return 4
	default:
		return 1
	}
}

func (k Kind) String() string {
	switch k {
	case U8:
		return "uint8"
	case U16:
		return "uint16"
	case U32:
		return "uint32"
	case F32:
		return "float32"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

var (
	ErrUnsupportedDepth = errors.New("pixbuf: unsupported bit depth")
	ErrAllocation       = errors.New("pixbuf: invalid allocation request")
	ErrLength           = errors.New("pixbuf: length exceeds capacity")
)

// MaxAlloc is the largest single buffer allocation, in bytes.
const MaxAlloc = 1 << 30

// KindOf maps bits-per-channel and sample format to the element kind:
// 32-bit samples are float32 or uint32 depending on the format,
// 16-bit samples are uint16, 8-bit samples are uint8.
func KindOf(bpc int, floating bool) (Kind, error) {
	switch bpc {
	case 32:
		if floating {
			return F32, nil
		}
		return U32, nil
	case 16:
		return U16, nil
	case 8:
		return U8, nil
	}
	return U8, fmt.Errorf("%w: %d bpc", ErrUnsupportedDepth, bpc)
}

// Buffer is a contiguous block of pixel samples of a single element kind.
//
// A Buffer is either owned (allocated here, returned to its pool by Release)
// or borrowed (wrapping external memory that is never released here). The
// zero value is an empty, non-owning uint8 buffer.
type Buffer struct {
	kind    Kind
	data    []byte // full allocated capacity
	length  int    // populated bytes
	owned   bool
	release func([]byte)
}

// Alloc allocates an owned buffer of the given byte size.
// The buffer starts empty (zero length) and its bytes are not zeroed.
func Alloc(kind Kind, size int) (Buffer, error) {
	if size <= 0 || size > MaxAlloc {
		return Buffer{}, fmt.Errorf("%w: %d bytes", ErrAllocation, size)
	}
	return Buffer{
		kind:    kind,
		data:    alloc(size),
		owned:   true,
		release: free,
	}, nil
}

// Borrow wraps externally owned sample memory. The whole slice counts as
// populated. The external owner keeps the memory alive for as long as the
// buffer is in use; Release only detaches it.
func Borrow(kind Kind, data []byte) Buffer {
	return Buffer{kind: kind, data: data, length: len(data)}
}

// Kind returns the element kind fixed at allocation.
func (b *Buffer) Kind() Kind { return b.kind }

// Owned reports whether the buffer owns its memory.
func (b *Buffer) Owned() bool { return b.owned }

// Len returns the number of populated bytes.
func (b *Buffer) Len() int { return b.length }

// Cap returns the allocated size in bytes.
func (b *Buffer) Cap() int { return len(b.data) }

// Bytes returns the populated portion of the buffer.
func (b *Buffer) Bytes() []byte { return b.data[:b.length] }

// Raw returns the full allocated buffer, for producers that fill it before
// recording the populated size with SetLen.
func (b *Buffer) Raw() []byte { return b.data }

// SetLen records how many bytes of the buffer are populated.
func (b *Buffer) SetLen(n int) error {
	if n < 0 || n > len(b.data) {
		return fmt.Errorf("%w: %d of %d", ErrLength, n, len(b.data))
	}
	b.length = n
	return nil
}

// Release returns an owned buffer to its pool and detaches a borrowed one.
// Either way the buffer is empty afterwards: zero length, zero capacity.
func (b *Buffer) Release() {
	if b.owned && b.release != nil {
		b.release(b.data)
	}
	*b = Buffer{kind: b.kind}
}

// Clone returns an owned deep copy of the populated bytes.
// Cloning an empty buffer yields an empty buffer without allocating.
func (b *Buffer) Clone() (Buffer, error) {
	if b.length == 0 {
		return Buffer{kind: b.kind}, nil
	}
	clone, err := Alloc(b.kind, b.length)
	if err != nil {
		return Buffer{}, err
	}
	copy(clone.data, b.Bytes())
	clone.length = b.length
	return clone, nil
}

// Move transfers the buffer out of b. An owned buffer changes hands without
// copying and b is left detached and empty. A borrowed buffer is deep-copied
// instead, because its lifetime belongs to an external owner, and b keeps
// its borrowed reference.
func (b *Buffer) Move() (Buffer, error) {
	if !b.owned {
		return b.Clone()
	}
	moved := *b
	*b = Buffer{kind: b.kind}
	return moved, nil
}
