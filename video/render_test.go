package video

import (
	"testing"

	"github.com/mbuck85/gbcore/addr"
	"github.com/stretchr/testify/require"
)

func spriteEnabledPPU() *PPU {
	p := New()
	p.WriteRegister(addr.LCDC, 0x93) // LCD on, BG on, sprites on, unsigned tile data
	p.WriteRegister(addr.BGP, 0xE4)
	p.WriteRegister(addr.OBP0, 0xE4)
	return p
}

func setSprite(p *PPU, oamIndex, x, y int, tile, attr byte) {
	base := oamIndex * 4
	p.OAM[base] = byte(y + 16)
	p.OAM[base+1] = byte(x + 8)
	p.OAM[base+2] = tile
	p.OAM[base+3] = attr
}

func TestSpritesOnLineCapsAtTen(t *testing.T) {
	p := spriteEnabledPPU()
	for i := 0; i < 11; i++ {
		setSprite(p, i, i*4, 10, 0, 0)
	}

	found := p.spritesOnLine(10, 8)
	require.Len(t, found, 10)
	for _, s := range found {
		require.Less(t, s.index, 10)
	}
}

func TestOverlappingSpritesLowerOAMIndexWins(t *testing.T) {
	p := spriteEnabledPPU()

	// tile 0: solid color index 3 (0xFF/0xFF rows)
	for i := uint16(0); i < 16; i += 2 {
		p.WriteVRAM(addr.TileData0+i, 0xFF)
		p.WriteVRAM(addr.TileData0+i+1, 0xFF)
	}
	// tile 1: solid color index 1 (lo=0xFF, hi=0x00)
	for i := uint16(0); i < 16; i += 2 {
		p.WriteVRAM(addr.TileData0+16+i, 0xFF)
		p.WriteVRAM(addr.TileData0+16+i+1, 0x00)
	}

	// higher OAM index drawn first in discovery order, lower index should
	// still win the overlapping pixels once rendering reverses that order.
	setSprite(p, 5, 20, 10, 1, 0)
	setSprite(p, 1, 20, 10, 0, 0)

	p.renderSprites(10)

	pixels := p.fb.Pixels()
	x := 20
	i := (10*FramebufferWidth + x) * 3
	want := DefaultPalette[3]
	require.EqualValues(t, want[0], pixels[i])
	require.EqualValues(t, want[1], pixels[i+1])
	require.EqualValues(t, want[2], pixels[i+2])
}

func TestTransparentSpritePixelsDoNotOverwriteBackground(t *testing.T) {
	p := spriteEnabledPPU()
	// tile 0: fully transparent (color index 0 everywhere)
	for i := uint16(0); i < 16; i++ {
		p.WriteVRAM(addr.TileData0+i, 0x00)
	}
	setSprite(p, 0, 5, 10, 0, 0)

	bg := [3]byte{1, 2, 3}
	p.fb.SetPixel(5, 10, bg)
	p.renderSprites(10)

	pixels := p.fb.Pixels()
	i := (10*FramebufferWidth + 5) * 3
	require.EqualValues(t, bg[0], pixels[i])
	require.EqualValues(t, bg[1], pixels[i+1])
	require.EqualValues(t, bg[2], pixels[i+2])
}
