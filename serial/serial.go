// Package serial provides a stub for the $FF01/$FF02 serial port. Spec.md
// treats the serial link protocol as a non-goal; this sink exists purely
// so shells and tests can observe bytes a ROM writes to SB, the mechanism
// the classic Blargg-style test ROMs use to report pass/fail (spec §8,
// scenario 1).
package serial

import "github.com/mbuck85/gbcore/addr"

// Sink records every byte written to SB in order, without modeling the
// transfer clock or shifting protocol.
type Sink struct {
	sb   byte
	sc   byte
	sent []byte
}

// New returns an empty Sink.
func New() *Sink {
	return &Sink{}
}

// Read implements the SB/SC register reads.
func (s *Sink) Read(address uint16) byte {
	switch address {
	case addr.SB:
		return s.sb
	case addr.SC:
		return s.sc | 0x7E
	default:
		return 0xFF
	}
}

// Write implements the SB/SC register writes, recording SB writes in
// order for later observation.
func (s *Sink) Write(address uint16, value byte) {
	switch address {
	case addr.SB:
		s.sb = value
		s.sent = append(s.sent, value)
	case addr.SC:
		s.sc = value & 0x81
	}
}

// Bytes returns every byte written to SB, in write order.
func (s *Sink) Bytes() []byte {
	return s.sent
}

// String returns the recorded bytes as text, for asserting against
// Blargg-style "Passed"/"Failed" serial output.
func (s *Sink) String() string {
	return string(s.sent)
}
