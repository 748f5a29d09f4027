// Package rawtile provides the tile buffer entity exchanged between image
// decoders, tile caches and transport layers: one rectangular block of
// decoded samples together with the metadata needed to place it inside a
// tiled, multi-resolution image and to interpret its bytes.
package rawtile

import (
	"time"

	"github.com/filak/iipsrv/pixbuf"
)

// SampleType describes how channel values are encoded.
type SampleType uint8

const (
	FixedPoint SampleType = iota
	FloatingPoint
)

// ColorSpace identifies the color space of the tile's samples.
type ColorSpace uint8

const (
	ColorSpaceNone ColorSpace = iota
	Greyscale
	SRGB
	CIELAB
	Binary
)

// Encoding identifies the codec (if any) that produced the tile's bytes
// before they were decoded into this buffer.
type Encoding uint8

const (
	EncodingUnsupported Encoding = iota
	EncodingRaw
	TIFF
	JPEG2000
	JPEG
	Deflate
	PNG
	WebP
	AVIF
)

// Tile represents a single image tile.
//
// A Tile is a plain in-memory value: it must not be mutated from more than
// one goroutine at a time, and it crosses goroutine boundaries either by
// Clone or by Take, never as a shared mutable reference.
type Tile struct {
	// Name of the file from which this tile comes.
	Filename string

	// Tile dimensions in pixels.
	Width  uint32
	Height uint32

	// Number of channels per pixel.
	Channels int

	// Bits per channel per sample (8, 16 or 32).
	BPC int

	SampleType SampleType
	ColorSpace ColorSpace

	// Codec that produced the tile's bytes, and its quality or rate setting.
	Encoding Encoding
	Quality  int

	// Source data freshness.
	Timestamp time.Time

	// Position within the multi-resolution, multi-angle image.
	TileNum    int
	Resolution int
	HSequence  int
	VSequence  int

	buf pixbuf.Buffer
}

// New creates a tile with placement metadata and no sample buffer.
// Allocation is a separate step, see Reallocate.
func New(tileNum, resolution, hSequence, vSequence int, width, height uint32, channels, bpc int) *Tile {
	return &Tile{
		Width:      width,
		Height:     height,
		Channels:   channels,
		BPC:        bpc,
		SampleType: FixedPoint,
		Encoding:   EncodingRaw,
		TileNum:    tileNum,
		Resolution: resolution,
		HSequence:  hSequence,
		VSequence:  vSequence,
	}
}

// DataLength returns the number of populated sample bytes.
func (t *Tile) DataLength() uint32 { return uint32(t.buf.Len()) }

// Capacity returns the allocated buffer size in bytes.
func (t *Tile) Capacity() uint32 { return uint32(t.buf.Cap()) }

// Owned reports whether the tile owns its sample buffer.
func (t *Tile) Owned() bool { return t.buf.Owned() }

// Bytes returns the populated portion of the sample buffer.
func (t *Tile) Bytes() []byte { return t.buf.Bytes() }

// Raw returns the full allocated buffer for a producer to fill.
// SetDataLength records how much of it was populated.
func (t *Tile) Raw() []byte { return t.buf.Raw() }

// SetDataLength records how many bytes of the buffer are populated.
func (t *Tile) SetDataLength(n uint32) error { return t.buf.SetLen(int(n)) }
