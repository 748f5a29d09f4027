package rawtile

import (
	"fmt"

	"github.com/filak/iipsrv/pixbuf"
)

// Crop cuts the tile down to its top-left w x h sub-rectangle.
//
// The buffer must already hold Height full scanlines. Crop copies the
// leading w pixels of the first h scanlines into a replacement buffer,
// releases the old buffer if the tile owned it, and updates the dimensions.
// On error the tile is left untouched.
func (t *Tile) Crop(w, h uint32) error {
	if w == 0 || h == 0 || w > t.Width || h > t.Height {
		return fmt.Errorf("%w: crop %dx%d of %dx%d", ErrInvalidDimensions, w, h, t.Width, t.Height)
	}
	if t.Channels <= 0 {
		return fmt.Errorf("%w: %d channels", ErrInvalidDimensions, t.Channels)
	}

	elem := t.buf.Kind().Size()
	srcLine := int(t.Width) * t.Channels * elem
	dstLine := int(w) * t.Channels * elem
	if t.buf.Len() < int(t.Height)*srcLine {
		return fmt.Errorf("%w: %d bytes populated, %d scanlines of %d expected",
			ErrInvalidDimensions, t.buf.Len(), t.Height, srcLine)
	}

	size := int(h) * dstLine
	dst, err := pixbuf.Alloc(t.buf.Kind(), size)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAllocation, err)
	}

	src := t.buf.Bytes()
	out := dst.Raw()
	for i := 0; i < int(h); i++ {
		copy(out[i*dstLine:(i+1)*dstLine], src[i*srcLine:i*srcLine+dstLine])
	}
	_ = dst.SetLen(size)

	t.buf.Release()
	t.buf = dst
	t.Width = w
	t.Height = h
	return nil
}

// Triplicate expands a single-channel tile to three channels by writing each
// source sample into all three destination slots, preserving pixel order and
// element type. Tiles with any other channel count are returned unchanged.
func (t *Tile) Triplicate() error {
	if t.Channels != 1 {
		return nil
	}

	src := t.buf.Bytes()
	if len(src) == 0 {
		t.Channels = 3
		return nil
	}

	elem := t.buf.Kind().Size()
	if len(src)%elem != 0 {
		return fmt.Errorf("%w: %d bytes is not a whole number of %d-byte samples",
			ErrInvalidDimensions, len(src), elem)
	}
	size := 3 * len(src)
	dst, err := pixbuf.Alloc(t.buf.Kind(), size)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAllocation, err)
	}

	out := dst.Raw()
	for i := 0; i < len(src); i += elem {
		sample := src[i : i+elem]
		o := 3 * i
		copy(out[o:o+elem], sample)
		copy(out[o+elem:o+2*elem], sample)
		copy(out[o+2*elem:o+3*elem], sample)
	}
	_ = dst.SetLen(size)

	t.buf.Release()
	t.buf = dst
	t.Channels = 3
	return nil
}
