// Package joypad models the DMG's $FF00 P1 register: eight button
// booleans multiplexed onto four bits by two active-low selector lines.
package joypad

// Button identifies one of the eight physical buttons.
type Button uint8

const (
	Right Button = iota
	Left
	Up
	Down
	A
	B
	Select
	Start
)

// Joypad holds button state and the P1 selector lines. The shell mutates
// button state from any thread (spec §5 accepts tearing on these
// booleans); the core only ever reads them on a P1 register access.
type Joypad struct {
	buttons [8]bool

	selectButtons bool // bit 5 of P1, active-low on the wire
	selectDpad    bool // bit 4 of P1, active-low on the wire

	// RequestInterrupt is called on a released-to-held transition of any
	// button in the currently selected group, matching spec's joypad
	// interrupt semantics. May be nil.
	RequestInterrupt func()
}

// New returns a Joypad with no buttons held and no group selected.
func New() *Joypad {
	return &Joypad{}
}

// SetButton updates a button's held state from the shell.
func (j *Joypad) SetButton(b Button, held bool) {
	wasHeld := j.buttons[b]
	j.buttons[b] = held

	if held && !wasHeld && j.buttonSelected(b) && j.RequestInterrupt != nil {
		j.RequestInterrupt()
	}
}

func (j *Joypad) buttonSelected(b Button) bool {
	if b >= A {
		return j.selectButtons
	}
	return j.selectDpad
}

// Read returns the P1 register value: bits 6-7 always 1, bits 4-5 mirror
// the selector lines, bits 0-3 are 0 for any held button in a selected
// group (active-low), or all 1s when neither group is selected.
func (j *Joypad) Read() uint8 {
	result := uint8(0xC0)

	if !j.selectDpad {
		result |= 1 << 4
	}
	if !j.selectButtons {
		result |= 1 << 5
	}

	low := uint8(0x0F)
	if j.selectDpad {
		low &= j.groupBits(Right, Left, Up, Down)
	}
	if j.selectButtons {
		low &= j.groupBits(A, B, Select, Start)
	}

	return result | low
}

// groupBits packs four buttons into the low nibble, active-low (0 = held).
func (j *Joypad) groupBits(bit0, bit1, bit2, bit3 Button) uint8 {
	bits := uint8(0x0F)
	if j.buttons[bit0] {
		bits &^= 1 << 0
	}
	if j.buttons[bit1] {
		bits &^= 1 << 1
	}
	if j.buttons[bit2] {
		bits &^= 1 << 2
	}
	if j.buttons[bit3] {
		bits &^= 1 << 3
	}
	return bits
}

// Write sets the two selector lines from bits 4 and 5 of value. Bits 4/5
// are active-low on the wire: a 0 bit selects that group.
func (j *Joypad) Write(value uint8) {
	j.selectDpad = value&(1<<4) == 0
	j.selectButtons = value&(1<<5) == 0
}
