package rawtile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

var ErrImageFormat = errors.New("iipsrv: tile not representable as image")

// Image views the tile as a stdlib image for downstream encoders.
//
// Supported layouts are fixed-point 8 and 16 bit samples with 1 channel
// (Gray, Gray16) or 3 channels (NRGBA, NRGBA64 with opaque alpha). Tile
// samples are native-endian while Gray16 and NRGBA64 store big-endian, so
// 16-bit tiles are converted sample by sample.
func (t *Tile) Image() (image.Image, error) {
	if t.SampleType != FixedPoint {
		return nil, fmt.Errorf("%w: floating point samples", ErrImageFormat)
	}
	w, h := int(t.Width), int(t.Height)
	need := w * h * t.Channels * (t.BPC / 8)
	if need == 0 || t.buf.Len() < need {
		return nil, fmt.Errorf("%w: %d of %d bytes populated", ErrImageFormat, t.buf.Len(), need)
	}
	src := t.Bytes()

	switch {
	case t.BPC == 8 && t.Channels == 1:
		img := image.NewGray(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			copy(img.Pix[y*img.Stride:y*img.Stride+w], src[y*w:(y+1)*w])
		}
		return img, nil

	case t.BPC == 8 && t.Channels == 3:
		img := image.NewNRGBA(image.Rect(0, 0, w, h))
		si := 0
		for y := 0; y < h; y++ {
			row := img.Pix[y*img.Stride : y*img.Stride+w*4]
			for x := 0; x < w*4; x += 4 {
				row[x] = src[si]
				row[x+1] = src[si+1]
				row[x+2] = src[si+2]
				row[x+3] = 0xff
				si += 3
			}
		}
		return img, nil

	case t.BPC == 16 && t.Channels == 1:
		img := image.NewGray16(image.Rect(0, 0, w, h))
		for i := 0; i < w*h; i++ {
			v := binary.NativeEndian.Uint16(src[2*i:])
			y, x := i/w, i%w
			binary.BigEndian.PutUint16(img.Pix[y*img.Stride+2*x:], v)
		}
		return img, nil

	case t.BPC == 16 && t.Channels == 3:
		img := image.NewNRGBA64(image.Rect(0, 0, w, h))
		for i := 0; i < w*h; i++ {
			y, x := i/w, i%w
			p := img.Pix[y*img.Stride+8*x:]
			for c := 0; c < 3; c++ {
				v := binary.NativeEndian.Uint16(src[2*(3*i+c):])
				binary.BigEndian.PutUint16(p[2*c:], v)
			}
			binary.BigEndian.PutUint16(p[6:], 0xffff)
		}
		return img, nil
	}

	return nil, fmt.Errorf("%w: %d channels at %d bpc", ErrImageFormat, t.Channels, t.BPC)
}

// FromImage builds an 8-bit sRGB tile from any stdlib image. The image is
// normalized to NRGBA first and the alpha channel is dropped.
func FromImage(tileNum, resolution, hSequence, vSequence int, img image.Image) (*Tile, error) {
	nrgba := imaging.Clone(img)
	w, h := nrgba.Rect.Dx(), nrgba.Rect.Dy()

	t := New(tileNum, resolution, hSequence, vSequence, uint32(w), uint32(h), 3, 8)
	t.ColorSpace = SRGB
	if err := t.Reallocate(0); err != nil {
		return nil, err
	}

	dst := t.Raw()
	di := 0
	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		for x := 0; x < w*4; x += 4 {
			dst[di] = row[x]
			dst[di+1] = row[x+1]
			dst[di+2] = row[x+2]
			di += 3
		}
	}
	_ = t.SetDataLength(t.Capacity())
	return t, nil
}
