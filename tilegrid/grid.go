// Package tilegrid maps tile numbers to grid positions within one
// resolution level of a tiled image, and provides a Hilbert-curve ordering
// for locality-preserving cache layouts.
package tilegrid

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/google/hilbert"
)

var ErrTileRange = errors.New("iipsrv: tile number out of range")

// Grid describes the tile layout of a single resolution level.
type Grid struct {
	TilesX uint32
	TilesY uint32
}

// New computes the grid for an image of the given pixel dimensions split
// into tileSize x tileSize tiles. Partial edge tiles count as full grid
// cells. A zero tileSize yields an empty grid, for which Position rejects
// every tile number.
func New(imageWidth, imageHeight, tileSize uint32) Grid {
	if tileSize == 0 {
		return Grid{}
	}
	return Grid{
		TilesX: (imageWidth + tileSize - 1) / tileSize,
		TilesY: (imageHeight + tileSize - 1) / tileSize,
	}
}

// Size returns the number of tiles in the grid.
func (g Grid) Size() int {
	return int(g.TilesX) * int(g.TilesY)
}

// TileNum returns the row-major tile number of position (x, y).
func (g Grid) TileNum(x, y uint32) int {
	return int(y)*int(g.TilesX) + int(x)
}

// Position returns the grid position of the given tile number.
func (g Grid) Position(tileNum int) (x, y uint32, err error) {
	if g.TilesX == 0 || tileNum < 0 || tileNum >= g.Size() {
		return 0, 0, fmt.Errorf("%w: %d of %d", ErrTileRange, tileNum, g.Size())
	}
	return uint32(tileNum) % g.TilesX, uint32(tileNum) / g.TilesX, nil
}

// side returns the smallest power-of-two square covering the grid.
func (g Grid) side() int {
	n := max(g.TilesX, g.TilesY, 1)
	return 1 << bits.Len32(n-1)
}

// Code returns the Hilbert-curve index of position (x, y), so that spatial
// neighbours stay close when tiles are laid out in code order.
func (g Grid) Code(x, y uint32) uint64 {
	h, _ := hilbert.NewHilbert(g.side())
	code, _ := h.MapInverse(int(x), int(y))
	return uint64(code)
}

// Locate is the inverse of Code.
func (g Grid) Locate(code uint64) (x, y uint32) {
	h, _ := hilbert.NewHilbert(g.side())
	xi, yi, _ := h.Map(int(code))
	return uint32(xi), uint32(yi)
}
