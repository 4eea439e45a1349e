package video

import (
	"testing"

	"github.com/mbuck85/gbcore/addr"
	"github.com/stretchr/testify/require"
)

func newEnabledPPU() *PPU {
	p := New()
	p.WriteRegister(addr.LCDC, 0x91) // LCD on, BG on, sprites off, unsigned tile data
	p.WriteRegister(addr.BGP, 0xE4)
	return p
}

func TestModeMachineAdvancesOAMDrawHBlank(t *testing.T) {
	p := newEnabledPPU()
	require.EqualValues(t, ModeOAMScan, p.mode)

	p.Step(80)
	require.EqualValues(t, ModeDrawing, p.mode)

	p.Step(172)
	require.EqualValues(t, ModeHBlank, p.mode)

	p.Step(204)
	require.EqualValues(t, ModeOAMScan, p.mode)
	require.EqualValues(t, 1, p.ly)
}

func TestModeMachineEntersVBlankAtLine144(t *testing.T) {
	p := newEnabledPPU()
	for i := 0; i < 144; i++ {
		p.Step(80)
		p.Step(172)
		p.Step(204)
	}
	require.EqualValues(t, ModeVBlank, p.mode)
	require.EqualValues(t, 144, p.ly)
	require.True(t, p.FrameReady())
}

func TestVBlankWrapsLYAndReturnsToOAMScan(t *testing.T) {
	p := newEnabledPPU()
	for i := 0; i < 144; i++ {
		p.Step(80)
		p.Step(172)
		p.Step(204)
	}
	for i := 0; i < 10; i++ {
		p.Step(456)
	}
	require.EqualValues(t, 0, p.ly)
	require.EqualValues(t, ModeOAMScan, p.mode)
}

func TestLCDDisableBlanksFramebufferAndLatchesFrameReady(t *testing.T) {
	p := newEnabledPPU()
	p.Step(80)
	p.Step(172) // render a scanline with some nonzero content possible

	p.WriteRegister(addr.LCDC, 0x11) // clear bit 7: LCD off
	require.EqualValues(t, 0, p.ly)
	require.True(t, p.FrameReady())
	for _, b := range p.fb.Pixels() {
		require.EqualValues(t, 0, b)
	}
}

func TestBootPatternFillsFramebufferWithShade3(t *testing.T) {
	p := newEnabledPPU()
	// tile 1 set to all-1 bits -> color index 3 for every pixel
	tileBase := addr.TileData0 + 1*16
	for i := uint16(0); i < 16; i++ {
		p.WriteVRAM(tileBase+i, 0xFF)
	}
	// map every BG tile to tile index 1
	for ty := 0; ty < 32; ty++ {
		for tx := 0; tx < 32; tx++ {
			p.WriteVRAM(addr.TileMap0+uint16(ty*32+tx), 1)
		}
	}

	for i := 0; i < 144; i++ {
		p.Step(80)
		p.Step(172)
		p.Step(204)
	}

	pixels := p.fb.Pixels()
	want := DefaultPalette[3]
	for i := 0; i < len(pixels); i += 3 {
		require.EqualValues(t, want[0], pixels[i])
		require.EqualValues(t, want[1], pixels[i+1])
		require.EqualValues(t, want[2], pixels[i+2])
	}
}

func TestSTATInterruptFiresOnMode0Entry(t *testing.T) {
	p := newEnabledPPU()
	p.WriteRegister(addr.STAT, statMode0Interrupt)

	var got addr.Interrupt
	p.RequestInterrupt = func(i addr.Interrupt) { got = i }

	p.Step(80)
	p.Step(172)

	require.Equal(t, addr.LCDSTATInterrupt, got)
}

func TestLYCCoincidenceInterrupt(t *testing.T) {
	p := newEnabledPPU()
	p.WriteRegister(addr.LYC, 1)
	p.WriteRegister(addr.STAT, statLYCInterrupt)

	var fired int
	p.RequestInterrupt = func(addr.Interrupt) { fired++ }

	p.Step(80)
	p.Step(172)
	p.Step(204) // LY becomes 1, should fire LYC

	require.Equal(t, 1, fired)
}
