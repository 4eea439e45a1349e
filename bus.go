package gbcore

import (
	"github.com/mbuck85/gbcore/addr"
	"github.com/mbuck85/gbcore/cartridge"
	"github.com/mbuck85/gbcore/joypad"
	"github.com/mbuck85/gbcore/serial"
	"github.com/mbuck85/gbcore/timer"
	"github.com/mbuck85/gbcore/video"
)

const (
	wramSize = 0x2000
	hramSize = 0x7F
)

// Bus is the central address decoder from spec.md §4.5: it owns work RAM,
// high RAM, IE/IF, and holds non-owning references to every other device.
// The CPU only ever talks to the Bus.
type Bus struct {
	cart   *cartridge.Cartridge
	ppu    *video.PPU
	timer  *timer.Timer
	joypad *joypad.Joypad
	serial *serial.Sink

	wram [wramSize]byte
	hram [hramSize]byte

	ie    byte
	ifReg byte
}

// NewBus wires a Bus to its devices. The System owns all of them and
// calls this once per ROM load.
func NewBus(cart *cartridge.Cartridge, ppu *video.PPU, tm *timer.Timer, jp *joypad.Joypad, sr *serial.Sink) *Bus {
	b := &Bus{cart: cart, ppu: ppu, timer: tm, joypad: jp, serial: sr}

	ppu.RequestInterrupt = b.RequestInterrupt
	jp.RequestInterrupt = func() { b.RequestInterrupt(addr.JoypadInterrupt) }

	return b
}

// RequestInterrupt sets i's bit in IF, the shared mechanism every device
// uses to signal an interrupt without holding a reference to the CPU.
func (b *Bus) RequestInterrupt(i addr.Interrupt) {
	b.ifReg |= byte(i)
}

// Read implements the full $0000-$FFFF address decode.
func (b *Bus) Read(address uint16) byte {
	switch {
	case address <= 0x7FFF:
		return b.cart.Read(address)
	case address <= 0x9FFF:
		return b.ppu.ReadVRAM(address)
	case address <= 0xBFFF:
		return b.cart.Read(address)
	case address <= 0xDFFF:
		return b.wram[address-0xC000]
	case address <= 0xFDFF:
		return b.wram[address-0xE000]
	case address <= 0xFE9F:
		return b.ppu.ReadOAM(address)
	case address <= 0xFEFF:
		return 0xFF
	case address == addr.P1:
		return b.joypad.Read()
	case address == addr.SB || address == addr.SC:
		return b.serial.Read(address)
	case address >= addr.DIV && address <= addr.TAC:
		return b.timer.Read(address)
	case address == addr.IF:
		return b.ifReg | 0xE0
	case address >= addr.AudioStart && address <= addr.AudioEnd:
		return 0xFF
	case address >= addr.LCDC && address <= 0xFF4B:
		return b.ppu.ReadRegister(address)
	case address >= 0xFF80 && address <= 0xFFFE:
		return b.hram[address-0xFF80]
	case address == addr.IE:
		return b.ie
	default:
		return 0xFF
	}
}

// Write implements the full $0000-$FFFF address decode, including OAM DMA.
func (b *Bus) Write(address uint16, value byte) {
	switch {
	case address <= 0x7FFF:
		b.cart.Write(address, value)
	case address <= 0x9FFF:
		b.ppu.WriteVRAM(address, value)
	case address <= 0xBFFF:
		b.cart.Write(address, value)
	case address <= 0xDFFF:
		b.wram[address-0xC000] = value
	case address <= 0xFDFF:
		b.wram[address-0xE000] = value
	case address <= 0xFE9F:
		b.ppu.WriteOAM(address, value)
	case address <= 0xFEFF:
		// unmapped, ignore
	case address == addr.P1:
		b.joypad.Write(value)
	case address == addr.SB || address == addr.SC:
		b.serial.Write(address, value)
	case address >= addr.DIV && address <= addr.TAC:
		b.timer.Write(address, value)
	case address == addr.IF:
		b.ifReg = value & 0x1F
	case address >= addr.AudioStart && address <= addr.AudioEnd:
		// APU stub, ignore
	case address == addr.DMA:
		b.oamDMA(value)
	case address >= addr.LCDC && address <= 0xFF4B:
		b.ppu.WriteRegister(address, value)
	case address >= 0xFF80 && address <= 0xFFFE:
		b.hram[address-0xFF80] = value
	case address == addr.IE:
		b.ie = value
	}
}

// oamDMA implements $FF46: writing v copies 160 bytes from v<<8 into OAM.
func (b *Bus) oamDMA(v byte) {
	src := uint16(v) << 8
	for i := uint16(0); i < 0xA0; i++ {
		b.ppu.WriteOAM(0xFE00+i, b.Read(src+i))
	}
}
