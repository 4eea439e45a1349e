// Package gbcore composes the Cartridge, PPU, Timer, Joypad, Bus and CPU
// into a runnable DMG core, and drives one frame at a time.
package gbcore

import (
	"fmt"

	"github.com/mbuck85/gbcore/addr"
	"github.com/mbuck85/gbcore/cartridge"
	"github.com/mbuck85/gbcore/cpu"
	"github.com/mbuck85/gbcore/joypad"
	"github.com/mbuck85/gbcore/serial"
	"github.com/mbuck85/gbcore/timer"
	"github.com/mbuck85/gbcore/video"
)

// CyclesPerFrame is the number of T-cycles in one 59.7Hz DMG frame
// (154 scanlines x 456 T-cycles), per spec.md §2.
const CyclesPerFrame = 70224

// System owns one of each device and is the only type a shell needs to
// drive the emulator.
type System struct {
	Cartridge *cartridge.Cartridge
	PPU       *video.PPU
	Timer     *timer.Timer
	Joypad    *joypad.Joypad
	Serial    *serial.Sink
	Bus       *Bus
	CPU       *cpu.CPU
}

// Load parses romBytes into a fresh Cartridge and wires up a new System
// around it, replacing any ROM previously loaded.
func Load(romBytes []byte) (*System, error) {
	if len(romBytes) == 0 {
		return nil, fmt.Errorf("gbcore: empty ROM image")
	}

	cart := cartridge.New(romBytes)
	ppu := video.New()
	tm := timer.New()
	jp := joypad.New()
	sr := serial.New()
	bus := NewBus(cart, ppu, tm, jp, sr)
	c := cpu.New(bus)

	return &System{
		Cartridge: cart,
		PPU:       ppu,
		Timer:     tm,
		Joypad:    jp,
		Serial:    sr,
		Bus:       bus,
		CPU:       c,
	}, nil
}

// RunFrame advances the CPU, PPU, and Timer until at least one full
// frame's worth of T-cycles has elapsed, per spec.md §2's control-flow
// description. It returns the number of T-cycles actually consumed,
// which may slightly exceed CyclesPerFrame since instructions aren't
// preempted mid-execution.
func (s *System) RunFrame() int {
	consumed := 0
	for consumed < CyclesPerFrame {
		cycles := s.CPU.Step()
		s.PPU.Step(cycles)
		if s.Timer.Step(cycles) {
			s.Bus.RequestInterrupt(addr.TimerInterrupt)
		}
		consumed += cycles
	}
	return consumed
}

// SetButton forwards a button state change to the Joypad. Safe to call
// from a different thread than RunFrame, per spec.md §5's concurrency
// model, as long as it isn't called concurrently with RunFrame itself.
func (s *System) SetButton(b joypad.Button, held bool) {
	s.Joypad.SetButton(b, held)
}

// Framebuffer returns the PPU's current 160x144 RGB pixel buffer.
func (s *System) Framebuffer() *video.FrameBuffer {
	return s.PPU.Framebuffer()
}

// SetPalette replaces the PPU's active 4-entry RGB palette.
func (s *System) SetPalette(pal video.Palette) {
	s.PPU.SetPalette(pal)
}
