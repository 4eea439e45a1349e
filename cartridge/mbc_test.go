package cartridge

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func makeROM(banks int, cartType uint8, ramCode uint8) []byte {
	data := make([]byte, banks*0x4000)
	data[cartridgeTypeAddress] = cartType
	// romSizeAddress byte must encode banks via 2<<code == banks
	code := uint8(0)
	for (2 << code) < banks {
		code++
	}
	data[romSizeAddress] = code
	data[ramSizeAddress] = ramCode

	// stamp each bank with its index at offset 0 so bank switches are
	// observable in tests.
	for b := 0; b < banks; b++ {
		data[b*0x4000] = byte(b)
	}

	return data
}

func TestMBC1BankSwitchAndBankZeroRewrite(t *testing.T) {
	rom := makeROM(16, 0x01, 0x00) // 16 banks = 128KiB, MBC1, no RAM
	cart := New(rom)

	cart.Write(0x2000, 0x02)
	require.Equal(t, rom[0x02*0x4000], cart.Read(0x4000))

	// writing 0 to the bank-select register rewrites to bank 1, not 0 —
	// the MBC1 bank-0 rewrite rule from spec.md §4.1.
	cart.Write(0x2000, 0x00)
	require.Equal(t, rom[0x01*0x4000], cart.Read(0x4000))
}

func TestMBC1HighBitsAndMode(t *testing.T) {
	rom := makeROM(128, 0x01, 0x00)
	cart := New(rom)

	cart.Write(0x2000, 0x01) // low 5 bits = 1
	cart.Write(0x4000, 0x03) // high 2 bits = 3 -> bank 0x61 in mode 0
	require.Equal(t, rom[0x61*0x4000], cart.Read(0x4000))

	cart.Write(0x6000, 0x01) // switch to RAM banking mode
	// in mode 1, the upper bits now select RAM bank, not ROM bank.
	require.Equal(t, rom[0x01*0x4000], cart.Read(0x4000))
}

func TestMBC1RAMEnableAndPersist(t *testing.T) {
	rom := makeROM(4, 0x02, 0x02) // MBC1+RAM, 8KiB RAM
	cart := New(rom)

	require.EqualValues(t, 0xFF, cart.Read(0xA000), "disabled RAM reads 0xFF")

	cart.Write(0x0000, 0x0A) // enable RAM
	cart.Write(0xA000, 0x42)
	require.EqualValues(t, 0x42, cart.Read(0xA000))

	cart.Write(0x0000, 0x00) // disable RAM
	require.EqualValues(t, 0xFF, cart.Read(0xA000))
}

func TestNoMBCIgnoresWrites(t *testing.T) {
	rom := makeROM(2, 0x00, 0x00)
	cart := New(rom)

	cart.Write(0x2000, 0xFF) // no banking support, must be a no-op
	require.Equal(t, rom[0], cart.Read(0x0000))
	require.Nil(t, cart.BatteryRAM())
}

func TestOutOfRangeBankReadsSaturate(t *testing.T) {
	rom := makeROM(2, 0x00, 0x00)
	cart := New(rom)

	require.EqualValues(t, 0xFF, cart.Read(0xFFFF)) // far outside MBC-owned ranges
}

func TestCartridgeHeaderParsing(t *testing.T) {
	rom := makeROM(8, 0x01, 0x03)
	copy(rom[0x134:], []byte("TESTGAME"))
	cart := New(rom)

	require.Equal(t, "TESTGAME", cart.Title())
	require.Equal(t, 8, cart.NumROMBanks())
	require.EqualValues(t, 32*1024, cart.RAMSize())
}

func TestTruncatedHeaderDefaultsToMBC0(t *testing.T) {
	cart := New(make([]byte, 0x10)) // far too short to hold any header field
	require.Equal(t, "", cart.Title())
	require.Equal(t, 2, cart.NumROMBanks())
	require.EqualValues(t, 0, cart.RAMSize())
}
