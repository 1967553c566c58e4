package sna

import (
	"encoding/binary"
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/z80"
)

const (
	// HeaderSize is the size of the register block at the start of every snapshot.
	HeaderSize = 27
	// ExtensionSize is the size of the 128K trailer following the 48K image.
	ExtensionSize = 4

	iff2Bit = 1 << 2
)

// Header contains the CPU state stored at the start of a snapshot.
// Values are copied verbatim, register semantics are not validated.
type Header struct {
	I                  uint8
	HL2, DE2, BC2, AF2 uint16
	HL, DE, BC         uint16
	IY, IX             uint16
	Interrupt          uint8 // bit 2 contains IFF2
	R                  uint8
	AF                 uint16
	SP                 uint16
	IntMode            z80.InterruptMode
	BorderColor        uint8 // 0 to 7.
}

// Extension contains the 128K specific state that follows the 48K memory image.
type Extension struct {
	PC       uint16
	Port7FFD uint8 // last value written to the paging port
	TRDOS    bool  // TR-DOS ROM was paged in
}

// InterruptsEnabled returns whether the interrupt flip-flop IFF2 was set.
func (h Header) InterruptsEnabled() bool {
	return h.Interrupt&iff2Bit != 0
}

// DecodeHeader decodes the register block from the beginning of data.
func DecodeHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("decoding header, %d of %d bytes available: %w",
			len(data), HeaderSize, ErrTruncatedInput)
	}

	le := binary.LittleEndian
	return Header{
		I:           data[0],
		HL2:         le.Uint16(data[1:]),
		DE2:         le.Uint16(data[3:]),
		BC2:         le.Uint16(data[5:]),
		AF2:         le.Uint16(data[7:]),
		HL:          le.Uint16(data[9:]),
		DE:          le.Uint16(data[11:]),
		BC:          le.Uint16(data[13:]),
		IY:          le.Uint16(data[15:]),
		IX:          le.Uint16(data[17:]),
		Interrupt:   data[19],
		R:           data[20],
		AF:          le.Uint16(data[21:]),
		SP:          le.Uint16(data[23:]),
		IntMode:     z80.InterruptMode(data[25]),
		BorderColor: data[26],
	}, nil
}

// DecodeExtension decodes the 128K trailer from the beginning of data.
func DecodeExtension(data []byte) (Extension, error) {
	if len(data) < ExtensionSize {
		return Extension{}, fmt.Errorf("decoding extension, %d of %d bytes available: %w",
			len(data), ExtensionSize, ErrTruncatedInput)
	}

	return Extension{
		PC:       binary.LittleEndian.Uint16(data),
		Port7FFD: data[2],
		TRDOS:    data[3] != 0,
	}, nil
}
