package rawtile

import (
	"errors"
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var ErrColorSpace = errors.New("iipsrv: unsupported color space conversion")

// ToSRGB converts CIELAB samples to sRGB in place.
//
// The 8-bit CIELAB layout follows the TIFF convention: L* scaled to 0-255,
// a* and b* stored with a +128 offset. Only 3-channel fixed-point 8-bit
// tiles can be converted. Tiles that are already sRGB, greyscale, binary or
// untagged are returned unchanged.
func (t *Tile) ToSRGB() error {
	switch t.ColorSpace {
	case CIELAB:
	default:
		return nil
	}
	if t.BPC != 8 || t.Channels != 3 || t.SampleType != FixedPoint {
		return fmt.Errorf("%w: CIELAB needs 3 fixed-point channels at 8 bpc, got %d at %d",
			ErrColorSpace, t.Channels, t.BPC)
	}

	buf := t.Bytes()
	for i := 0; i+2 < len(buf); i += 3 {
		// go-colorful scales CIE L*a*b* by 1/100.
		l := float64(buf[i]) / 255.0
		a := (float64(buf[i+1]) - 128.0) / 100.0
		b := (float64(buf[i+2]) - 128.0) / 100.0
		buf[i], buf[i+1], buf[i+2] = colorful.Lab(l, a, b).Clamped().RGB255()
	}
	t.ColorSpace = SRGB
	return nil
}
