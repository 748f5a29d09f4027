package rawtile_test

import (
	"errors"
	"testing"

	"github.com/filak/iipsrv/rawtile"
	"github.com/google/go-cmp/cmp"
)

func labTile(t *testing.T, samples []byte) *rawtile.Tile {
	t.Helper()

	tile := rawtile.New(0, 0, 0, 0, uint32(len(samples)/3), 1, 3, 8)
	tile.ColorSpace = rawtile.CIELAB
	if err := tile.Reallocate(0); err != nil {
		t.Fatalf("Reallocate failed: %v", err)
	}
	if err := tile.SetDataLength(tile.Capacity()); err != nil {
		t.Fatalf("SetDataLength failed: %v", err)
	}
	copy(tile.Bytes(), samples)
	return tile
}

func TestToSRGBNeutrals(t *testing.T) {
	// L*=max a*=b*=0 is white, L*=0 is black.
	tile := labTile(t, []byte{
		255, 128, 128,
		0, 128, 128,
	})
	defer tile.Release()

	if err := tile.ToSRGB(); err != nil {
		t.Fatalf("ToSRGB failed: %v", err)
	}

	if got, want := tile.ColorSpace, rawtile.SRGB; got != want {
		t.Errorf("colorSpace = %v, want = %v", got, want)
	}
	if diff := cmp.Diff([]byte{255, 255, 255, 0, 0, 0}, tile.Bytes()); diff != "" {
		t.Errorf("neutral conversion mismatch (-want+got):\n%v", diff)
	}
}

func TestToSRGBChromatic(t *testing.T) {
	// Mid lightness with a strong positive a* shifts towards red.
	tile := labTile(t, []byte{128, 208, 128})
	defer tile.Release()

	if err := tile.ToSRGB(); err != nil {
		t.Fatalf("ToSRGB failed: %v", err)
	}

	buf := tile.Bytes()
	if buf[0] <= buf[1] {
		t.Errorf("positive a* did not shift red over green: rgb = %v", buf)
	}
}

func TestToSRGBPassthrough(t *testing.T) {
	tile := rawtile.New(0, 0, 0, 0, 1, 1, 3, 8)
	tile.ColorSpace = rawtile.SRGB
	if err := tile.Reallocate(0); err != nil {
		t.Fatalf("Reallocate failed: %v", err)
	}
	defer tile.Release()
	if err := tile.SetDataLength(tile.Capacity()); err != nil {
		t.Fatalf("SetDataLength failed: %v", err)
	}
	copy(tile.Bytes(), []byte{9, 8, 7})

	if err := tile.ToSRGB(); err != nil {
		t.Fatalf("ToSRGB failed: %v", err)
	}
	if diff := cmp.Diff([]byte{9, 8, 7}, tile.Bytes()); diff != "" {
		t.Errorf("passthrough changed samples (-want+got):\n%v", diff)
	}
}

func TestToSRGBUnsupportedLayout(t *testing.T) {
	tile := rawtile.New(0, 0, 0, 0, 2, 2, 3, 16)
	tile.ColorSpace = rawtile.CIELAB

	if err := tile.ToSRGB(); !errors.Is(err, rawtile.ErrColorSpace) {
		t.Errorf("16-bit CIELAB error = %v, want ErrColorSpace", err)
	}
}
