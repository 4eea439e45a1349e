// Package video implements the PPU: VRAM, OAM, the LCD registers, the
// mode state machine, and the scanline renderer that produces an RGB
// framebuffer.
package video

import (
	"github.com/mbuck85/gbcore/addr"
)

// Mode values mirror STAT's low two bits.
const (
	ModeHBlank  byte = 0
	ModeVBlank  byte = 1
	ModeOAMScan byte = 2
	ModeDrawing byte = 3
)

const (
	statLYCInterrupt   byte = 0x40
	statMode2Interrupt byte = 0x20
	statMode1Interrupt byte = 0x10
	statMode0Interrupt byte = 0x08
	statCoincidence    byte = 0x04
)

const (
	durationOAMScan = 80
	durationDrawing = 172
	durationHBlank  = 204
	durationPerLine = 456
)

// PPU owns VRAM, OAM, the LCD registers and the mode machine, and renders
// completed scanlines into an owned RGB framebuffer.
type PPU struct {
	VRAM [0x2000]byte
	OAM  [0xA0]byte

	lcdc, stat         byte
	scy, scx           byte
	ly, lyc            byte
	bgp, obp0, obp1    byte
	wy, wx             byte

	mode   byte
	cycles int

	windowLine int

	bgColorIndex [FramebufferWidth]byte // this line's background color index, for OBJ priority

	frameReady bool
	palette    Palette
	fb         *FrameBuffer

	RequestInterrupt func(addr.Interrupt)
}

// New returns a PPU with LCD disabled and the default DMG palette, matching
// the post-boot-ROM register state from spec.md's DATA MODEL table.
func New() *PPU {
	p := &PPU{
		palette: DefaultPalette,
		fb:      NewFrameBuffer(),
	}
	return p
}

// SetPalette replaces the active 4-entry RGB palette. Owned by the PPU so
// a shell can reskin colors without touching any shared global state.
func (p *PPU) SetPalette(pal Palette) {
	p.palette = pal
}

// Framebuffer returns the current 160x144 RGB pixel buffer.
func (p *PPU) Framebuffer() *FrameBuffer {
	return p.fb
}

// FrameReady reports whether a frame completed since the last call, and
// clears the latch.
func (p *PPU) FrameReady() bool {
	r := p.frameReady
	p.frameReady = false
	return r
}

func (p *PPU) enabled() bool {
	return p.lcdc&0x80 != 0
}

// Step advances the PPU by cycles T-cycles, driving the mode machine and
// rendering completed scanlines.
func (p *PPU) Step(cycles int) {
	if !p.enabled() {
		return
	}

	p.cycles += cycles
	for p.cycles >= p.modeDuration() {
		p.cycles -= p.modeDuration()
		p.advanceMode()
	}
}

func (p *PPU) modeDuration() int {
	switch p.mode {
	case ModeOAMScan:
		return durationOAMScan
	case ModeDrawing:
		return durationDrawing
	case ModeHBlank:
		return durationHBlank
	default:
		return durationPerLine
	}
}

func (p *PPU) advanceMode() {
	switch p.mode {
	case ModeOAMScan:
		p.mode = ModeDrawing

	case ModeDrawing:
		p.renderScanline()
		p.mode = ModeHBlank
		p.requestStat(statMode0Interrupt)

	case ModeHBlank:
		p.ly++
		if p.ly == 144 {
			p.mode = ModeVBlank
			p.windowLine = 0
			p.frameReady = true
			p.requestInterrupt(addr.VBlankInterrupt)
			p.requestStat(statMode1Interrupt)
		} else {
			p.mode = ModeOAMScan
			p.requestStat(statMode2Interrupt)
		}
		p.checkLYC()

	case ModeVBlank:
		p.ly++
		if p.ly == 154 {
			p.ly = 0
			p.mode = ModeOAMScan
			p.requestStat(statMode2Interrupt)
		}
		p.checkLYC()
	}
}

func (p *PPU) requestStat(source byte) {
	if p.stat&source != 0 {
		p.requestInterrupt(addr.LCDSTATInterrupt)
	}
}

func (p *PPU) checkLYC() {
	if p.ly == p.lyc {
		p.requestStat(statLYCInterrupt)
	}
}

func (p *PPU) requestInterrupt(i addr.Interrupt) {
	if p.RequestInterrupt != nil {
		p.RequestInterrupt(i)
	}
}

// disable implements the LCDC-bit-7-cleared behavior from spec.md §4.4:
// LY and the intra-line cycle counter reset, mode returns to HBlank, the
// framebuffer blanks, and frame_ready latches true.
func (p *PPU) disable() {
	p.ly = 0
	p.cycles = 0
	p.mode = ModeHBlank
	p.fb.Clear()
	p.frameReady = true
}

// ReadRegister implements the $FF40-$FF4B PPU register reads.
func (p *PPU) ReadRegister(address uint16) byte {
	switch address {
	case addr.LCDC:
		return p.lcdc
	case addr.STAT:
		stat := p.stat | 0x80 | p.mode
		if p.ly == p.lyc {
			stat |= statCoincidence
		}
		return stat
	case addr.SCY:
		return p.scy
	case addr.SCX:
		return p.scx
	case addr.LY:
		return p.ly
	case addr.LYC:
		return p.lyc
	case addr.BGP:
		return p.bgp
	case addr.OBP0:
		return p.obp0
	case addr.OBP1:
		return p.obp1
	case addr.WY:
		return p.wy
	case addr.WX:
		return p.wx
	default:
		return 0xFF
	}
}

// WriteRegister implements the $FF40-$FF4B PPU register writes.
func (p *PPU) WriteRegister(address uint16, value byte) {
	switch address {
	case addr.LCDC:
		wasEnabled := p.enabled()
		p.lcdc = value
		if wasEnabled && !p.enabled() {
			p.disable()
		} else if !wasEnabled && p.enabled() {
			p.mode = ModeOAMScan
			p.cycles = 0
			p.ly = 0
		}
	case addr.STAT:
		p.stat = value & 0x78
	case addr.SCY:
		p.scy = value
	case addr.SCX:
		p.scx = value
	case addr.LY:
		// read-only on real hardware
	case addr.LYC:
		p.lyc = value
	case addr.BGP:
		p.bgp = value
	case addr.OBP0:
		p.obp0 = value
	case addr.OBP1:
		p.obp1 = value
	case addr.WY:
		p.wy = value
	case addr.WX:
		p.wx = value
	}
}

// ReadVRAM and WriteVRAM implement $8000-$9FFF.
func (p *PPU) ReadVRAM(address uint16) byte {
	return p.VRAM[address-0x8000]
}

func (p *PPU) WriteVRAM(address uint16, value byte) {
	p.VRAM[address-0x8000] = value
}

// ReadOAM and WriteOAM implement $FE00-$FE9F.
func (p *PPU) ReadOAM(address uint16) byte {
	return p.OAM[address-0xFE00]
}

func (p *PPU) WriteOAM(address uint16, value byte) {
	p.OAM[address-0xFE00] = value
}
