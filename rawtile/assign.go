package rawtile

import "fmt"

// Key identifies a tile for caching purposes. Two tiles with the same key
// are interchangeable cache entries regardless of their pixel payload, so
// Key is comparable and usable directly as a map key.
type Key struct {
	TileNum    int
	Resolution int
	HSequence  int
	VSequence  int
	Encoding   Encoding
	Quality    int
	Filename   string
}

// Key returns the tile's placement and provenance identity.
func (t *Tile) Key() Key {
	return Key{
		TileNum:    t.TileNum,
		Resolution: t.Resolution,
		HSequence:  t.HSequence,
		VSequence:  t.VSequence,
		Encoding:   t.Encoding,
		Quality:    t.Quality,
		Filename:   t.Filename,
	}
}

// Equal reports whether two tiles carry the same placement and provenance
// identity. Pixel data and geometry are not part of the contract.
func (t *Tile) Equal(o *Tile) bool {
	return t.Key() == o.Key()
}

// Clone returns a deep copy of the tile. The clone owns its buffer even
// when the source merely borrows one, so mutating either side never affects
// the other.
func (t *Tile) Clone() (*Tile, error) {
	buf, err := t.buf.Clone()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAllocation, err)
	}
	clone := *t
	clone.buf = buf
	return &clone, nil
}

// Take moves the contents of src into t. Metadata is copied; the sample
// buffer changes hands without copying when src owns it, leaving src with
// no buffer. A borrowed buffer is deep-copied instead and src keeps its
// borrowed reference. Any buffer t owned beforehand is released.
func (t *Tile) Take(src *Tile) error {
	if t == src {
		return nil
	}
	moved, err := src.buf.Move()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAllocation, err)
	}
	t.buf.Release()
	*t = *src
	t.buf = moved
	return nil
}
