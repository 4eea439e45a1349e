package gbcore

import (
	"testing"

	"github.com/mbuck85/gbcore/addr"
	"github.com/mbuck85/gbcore/cartridge"
	"github.com/mbuck85/gbcore/joypad"
	"github.com/mbuck85/gbcore/serial"
	"github.com/mbuck85/gbcore/timer"
	"github.com/mbuck85/gbcore/video"
	"github.com/stretchr/testify/require"
)

func newTestBus() *Bus {
	rom := make([]byte, 0x8000)
	return NewBus(cartridge.New(rom), video.New(), timer.New(), joypad.New(), serial.New())
}

func TestEchoRAMMirrorsWRAM(t *testing.T) {
	b := newTestBus()
	for k := uint16(0); k < 0x1E00; k += 257 {
		b.Write(0xC000+k, byte(k))
		require.Equal(t, b.Read(0xC000+k), b.Read(0xE000+k))
	}
}

func TestOAMDMACopiesFromSourcePage(t *testing.T) {
	b := newTestBus()
	for i := uint16(0); i < 0xA0; i++ {
		b.Write(0xC100+i, byte(i+1))
	}

	b.Write(addr.DMA, 0xC1)

	for k := uint16(0); k < 0xA0; k++ {
		require.EqualValues(t, byte(k+1), b.Read(0xFE00+k))
	}
}

func TestUnmappedRegionReadsAllOnes(t *testing.T) {
	b := newTestBus()
	require.EqualValues(t, 0xFF, b.Read(0xFEA0))
	require.EqualValues(t, 0xFF, b.Read(0xFEFF))
}

func TestIFReadsUpperBitsAsOne(t *testing.T) {
	b := newTestBus()
	b.Write(addr.IF, 0x03)
	require.EqualValues(t, 0xE3, b.Read(addr.IF))
}

func TestAPUStubIgnoresWritesAndReadsAllOnes(t *testing.T) {
	b := newTestBus()
	b.Write(addr.AudioStart, 0x42)
	require.EqualValues(t, 0xFF, b.Read(addr.AudioStart))
}
