package rawtile

import (
	"errors"
	"fmt"

	"github.com/filak/iipsrv/pixbuf"
)

var (
	ErrAllocation        = errors.New("iipsrv: invalid tile allocation")
	ErrInvalidDimensions = errors.New("iipsrv: invalid tile dimensions")
)

func (t *Tile) kind() (pixbuf.Kind, error) {
	return pixbuf.KindOf(t.BPC, t.SampleType == FloatingPoint)
}

// impliedSize is the byte size of a fully populated tile:
// width * height * channels * bytes per sample.
func (t *Tile) impliedSize() (uint32, error) {
	if t.Channels <= 0 {
		return 0, fmt.Errorf("%w: %d channels", ErrAllocation, t.Channels)
	}
	size := uint64(t.Width) * uint64(t.Height) * uint64(t.Channels) * uint64(t.BPC/8)
	if size == 0 || size > pixbuf.MaxAlloc {
		return 0, fmt.Errorf("%w: %d bytes", ErrAllocation, size)
	}
	return uint32(size), nil
}

// Reallocate replaces the tile's buffer with a freshly allocated one of the
// given byte size, releasing any previously owned buffer first. A size of
// zero allocates the implied size width*height*channels*(bpc/8).
//
// The new buffer is owned by the tile, starts with zero data length, and
// its element kind is fixed from the tile's BPC and SampleType. On error
// the tile keeps its previous buffer.
func (t *Tile) Reallocate(size uint32) error {
	kind, err := t.kind()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAllocation, err)
	}
	if size == 0 {
		if size, err = t.impliedSize(); err != nil {
			return err
		}
	}
	buf, err := pixbuf.Alloc(kind, int(size))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAllocation, err)
	}
	t.buf.Release()
	t.buf = buf
	return nil
}

// Release returns an owned buffer to its pool and detaches a borrowed one.
// Capacity and data length become zero either way.
func (t *Tile) Release() { t.buf.Release() }

// Borrow wraps externally owned sample memory, replacing any current buffer.
// The tile will never release the borrowed memory; the caller keeps it alive
// for as long as the tile is in use.
func (t *Tile) Borrow(data []byte) error {
	kind, err := t.kind()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAllocation, err)
	}
	t.buf.Release()
	t.buf = pixbuf.Borrow(kind, data)
	return nil
}
