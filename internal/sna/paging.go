package sna

import "fmt"

const (
	bankSelectMask = 0x07
	screenBit      = 1 << 3
	romBit         = 1 << 4
	lockBit        = 1 << 5
)

// Paging holds the value of the 0x7FFD paging port which selects the bank
// visible in the high window 0xC000-0xFFFF.
// Only the bank select bits affect the mapping, the remaining bits are kept
// verbatim for reporting.
type Paging struct {
	value    uint8
	writable bool
}

// newPaging returns the paging state of a 128K machine.
func newPaging(value uint8) Paging {
	return Paging{value: value, writable: true}
}

// fixedPaging returns the paging state of a 48K machine. Its high window
// is permanently mapped to bank 0.
func fixedPaging() Paging {
	return Paging{}
}

// HighBank returns the index of the bank mapped to 0xC000-0xFFFF.
func (p Paging) HighBank() int {
	return int(p.value & bankSelectMask)
}

// Value returns the full last written port value.
func (p Paging) Value() uint8 {
	return p.value
}

// ShadowScreen returns whether the port selects the shadow screen in bank 7.
func (p Paging) ShadowScreen() bool {
	return p.value&screenBit != 0
}

// ROM returns the selected ROM, 0 for the 128K editor ROM and 1 for the 48K BASIC ROM.
func (p Paging) ROM() int {
	if p.value&romBit != 0 {
		return 1
	}
	return 0
}

// Locked returns whether paging was disabled until the next reset.
func (p Paging) Locked() bool {
	return p.value&lockBit != 0
}

// Write stores a new port value.
func (p *Paging) Write(value uint8) error {
	if !p.writable {
		return fmt.Errorf("writing 0x%02X to paging port of a 48K machine: %w", value, ErrInvalidMachineState)
	}
	p.value = value
	return nil
}
