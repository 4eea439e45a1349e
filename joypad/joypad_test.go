package joypad

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoSelectionReadsAllOnes(t *testing.T) {
	j := New()
	j.SetButton(A, true)
	require.EqualValues(t, 0xFF, j.Read())
}

func TestDirectionSelectedRightHeld(t *testing.T) {
	j := New()
	j.Write(0b00100000) // clear bit 4 -> select d-pad
	j.SetButton(Right, true)

	require.EqualValues(t, 0xEE, j.Read())
}

func TestButtonGroupSelectedIndependentlyFromDpad(t *testing.T) {
	j := New()
	j.Write(0b00010000) // clear bit 5 -> select buttons
	j.SetButton(Start, true)

	// bit5 low (selected), bit4 high (not selected), bit3 low (Start held)
	require.EqualValues(t, 0xD7, j.Read())
}

func TestInterruptFiresOnlyForSelectedGroupTransition(t *testing.T) {
	j := New()
	fired := 0
	j.RequestInterrupt = func() { fired++ }

	j.Write(0b00100000) // select d-pad only
	j.SetButton(A, true) // A is in the button group, not selected: no interrupt
	require.Equal(t, 0, fired)

	j.SetButton(Up, true) // Up is in the selected d-pad group
	require.Equal(t, 1, fired)

	j.SetButton(Up, true) // already held, no new edge
	require.Equal(t, 1, fired)
}
