// Package cpu implements the SM83 CPU core: fetch/decode/execute for the
// full opcode map and the $CB-prefixed table, flag semantics, interrupt
// dispatch, and HALT/EI-delay behavior.
package cpu

import "github.com/mbuck85/gbcore/addr"

// Bus is the subset of the system bus the CPU needs. Defined here rather
// than imported from the root package to keep cpu a leaf with no cycle
// back to its owner.
type Bus interface {
	Read(address uint16) byte
	Write(address uint16, value byte)
}

// CPU holds the SM83 register file and interrupt/halt state. It has a
// non-owning reference to the Bus; the System wires them together.
type CPU struct {
	A, F byte
	B, C byte
	D, E byte
	H, L byte
	SP   uint16
	PC   uint16

	ime          bool
	imeScheduled bool
	halted       bool

	bus Bus
}

// New returns a CPU wired to bus, with the post-boot-ROM DMG register
// values from spec.md's DATA MODEL table.
func New(bus Bus) *CPU {
	return &CPU{
		A:  0x01,
		F:  0xB0,
		B:  0x00,
		C:  0x13,
		D:  0x00,
		E:  0xD8,
		H:  0x01,
		L:  0x4D,
		SP: 0xFFFE,
		PC: 0x0100,
		bus: bus,
	}
}

// IME reports the master interrupt enable flag, for tests and debuggers.
func (c *CPU) IME() bool { return c.ime }

// Halted reports whether the CPU is currently suspended in HALT.
func (c *CPU) Halted() bool { return c.halted }

// Step executes one instruction (or, if halted, advances 4 cycles waiting
// for a wake condition) and returns the T-cycle cost, servicing a pending
// interrupt first if IME permits it.
func (c *CPU) Step() int {
	if c.halted {
		return c.stepHalted()
	}

	if c.ime {
		if cycles, serviced := c.tryServiceInterrupt(); serviced {
			return cycles
		}
	}

	opcode := c.fetch8()
	cycles := c.execute(opcode)

	if c.imeScheduled {
		c.imeScheduled = false
		c.ime = true
	}
	if opcode == 0xFB { // EI
		c.imeScheduled = true
	}

	return cycles
}

func (c *CPU) stepHalted() int {
	ie := c.bus.Read(addr.IE)
	iflags := c.bus.Read(addr.IF)
	if ie&iflags&0x1F == 0 {
		return 4
	}

	c.halted = false
	if c.ime {
		if cycles, serviced := c.tryServiceInterrupt(); serviced {
			return cycles
		}
	}
	return 4
}

// tryServiceInterrupt dispatches the lowest-numbered pending, enabled
// interrupt: pushes PC, clears its IF bit, disables IME, and jumps to its
// vector. Returns (20, true) if one was serviced.
func (c *CPU) tryServiceInterrupt() (int, bool) {
	ie := c.bus.Read(addr.IE)
	iflags := c.bus.Read(addr.IF)
	pending := ie & iflags & 0x1F
	if pending == 0 {
		return 0, false
	}

	for bit := 0; bit < 5; bit++ {
		mask := byte(1) << bit
		if pending&mask == 0 {
			continue
		}

		c.push16(c.PC)
		c.ime = false
		c.bus.Write(addr.IF, iflags&^mask)
		c.PC = addr.Interrupt(mask).Vector()
		return 20, true
	}

	return 0, false
}

func (c *CPU) fetch8() byte {
	v := c.bus.Read(c.PC)
	c.PC++
	return v
}

func (c *CPU) fetch16() uint16 {
	lo := c.fetch8()
	hi := c.fetch8()
	return uint16(hi)<<8 | uint16(lo)
}
