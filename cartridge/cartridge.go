// Package cartridge models the ROM image, header metadata and memory bank
// controller of a Game Boy cartridge.
package cartridge

import (
	"strings"
	"unicode"
)

const (
	titleAddress         = 0x134
	titleLength          = 16
	cartridgeTypeAddress = 0x147
	romSizeAddress       = 0x148
	ramSizeAddress       = 0x149
)

// Type is the MBC family a cartridge uses, derived from the $0147 header
// byte.
type Type uint8

const (
	TypeNone Type = iota
	TypeMBC1
	TypeMBC3
)

// ramSizeTable maps the $0149 header code to external RAM size in bytes.
var ramSizeTable = [6]uint32{0, 2 * 1024, 8 * 1024, 32 * 1024, 128 * 1024, 64 * 1024}

// Cartridge owns the raw ROM bytes and battery RAM, and routes accesses in
// $0000-$7FFF and $A000-$BFFF through its MBC.
type Cartridge struct {
	data []byte
	mbc  MBC

	title    string
	cartType uint8
	numBanks int
	ramSize  uint32
}

// New parses a raw ROM image into a Cartridge with its banking controller
// wired up. A truncated header (shorter than the fields it needs) is
// treated as defaulting those fields to zero, per spec: unreadable header
// bytes become MBC0/32KiB/no-RAM rather than failing to load.
func New(data []byte) *Cartridge {
	c := &Cartridge{data: data}

	c.title = readTitle(data)
	c.cartType = headerByte(data, cartridgeTypeAddress)
	romCode := headerByte(data, romSizeAddress)
	ramCode := headerByte(data, ramSizeAddress)

	c.numBanks = numROMBanks(romCode)
	if int(ramCode) < len(ramSizeTable) {
		c.ramSize = ramSizeTable[ramCode]
	}

	c.mbc = newMBC(mbcTypeFor(c.cartType), data, c.numBanks, c.ramSize)

	return c
}

func headerByte(data []byte, address int) uint8 {
	if address >= len(data) {
		return 0
	}
	return data[address]
}

func readTitle(data []byte) string {
	end := titleAddress + titleLength
	if end > len(data) {
		end = len(data)
	}
	if titleAddress >= end {
		return ""
	}

	raw := data[titleAddress:end]
	runes := make([]rune, 0, len(raw))
	for _, b := range raw {
		if b == 0 {
			break
		}
		r := rune(b)
		if unicode.IsPrint(r) {
			runes = append(runes, r)
		}
	}

	return strings.TrimSpace(string(runes))
}

// numROMBanks implements spec.md's formula: num_rom_banks = max(2, 2<<code).
func numROMBanks(code uint8) int {
	banks := 2 << code
	if banks < 2 {
		banks = 2
	}
	return banks
}

// mbcTypeFor maps the raw $0147 cartridge-type byte to the MBC family we
// support. Anything we don't recognize falls back to TypeNone (read-only
// MBC0 semantics), preserving liveness for unknown cartridges per spec §7.
func mbcTypeFor(cartType uint8) Type {
	switch cartType {
	case 0x00:
		return TypeNone
	case 0x01, 0x02, 0x03:
		return TypeMBC1
	case 0x0F, 0x10, 0x11, 0x12, 0x13:
		return TypeMBC3
	default:
		return TypeNone
	}
}

// Title is the ASCII game title from the header.
func (c *Cartridge) Title() string { return c.title }

// CartridgeType is the raw $0147 header byte.
func (c *Cartridge) CartridgeType() uint8 { return c.cartType }

// NumROMBanks is the number of 16KiB ROM banks the header declares.
func (c *Cartridge) NumROMBanks() int { return c.numBanks }

// RAMSize is the external RAM size in bytes the header declares.
func (c *Cartridge) RAMSize() uint32 { return c.ramSize }

// Read routes a ROM or external-RAM read through the MBC.
func (c *Cartridge) Read(address uint16) uint8 {
	return c.mbc.Read(address)
}

// Write routes a ROM-control or external-RAM write through the MBC.
func (c *Cartridge) Write(address uint16, value uint8) {
	c.mbc.Write(address, value)
}

// BatteryRAM exposes the external RAM backing store, for shells that want
// to persist it as a save file. Returns nil for controllers with no RAM.
func (c *Cartridge) BatteryRAM() []byte {
	return c.mbc.RAM()
}
