package sna

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/arch/cpu/z80"
)

// romValue is returned for reads of the unmapped ROM area and of banks that
// the snapshot does not contain.
const romValue = 0xFF

// memory exposes the mapped address space of a snapshot as Z80 memory.
type memory struct {
	snapshot *Snapshot
}

// Memory returns the snapshot memory as a Z80 memory controller. Reads
// from ROM or unpopulated banks return 0xFF, writes to them are ignored.
// Word access wraps around at 0xFFFF like the CPU does.
func (s *Snapshot) Memory() z80.Memory {
	return memory{snapshot: s}
}

func (m memory) Read(address uint16) uint8 {
	value, err := m.snapshot.Peek(address)
	if err != nil {
		return romValue
	}
	return value
}

func (m memory) Write(address uint16, value uint8) {
	_ = m.snapshot.Poke(address, value)
}

func (m memory) ReadWord(address uint16) uint16 {
	return uint16(m.Read(address+1))<<8 | uint16(m.Read(address))
}

func (m memory) WriteWord(address, value uint16) {
	m.Write(address, uint8(value))
	m.Write(address+1, uint8(value>>8))
}

// State returns the register block as Z80 CPU state. The program counter
// is not part of the header and is left at 0.
func (h Header) State() z80.State {
	iff := h.InterruptsEnabled()
	return z80.State{
		A:        uint8(h.AF >> 8),
		B:        uint8(h.BC >> 8),
		C:        uint8(h.BC),
		D:        uint8(h.DE >> 8),
		E:        uint8(h.DE),
		H:        uint8(h.HL >> 8),
		L:        uint8(h.HL),
		AltA:     uint8(h.AF2 >> 8),
		AltB:     uint8(h.BC2 >> 8),
		AltC:     uint8(h.BC2),
		AltD:     uint8(h.DE2 >> 8),
		AltE:     uint8(h.DE2),
		AltH:     uint8(h.HL2 >> 8),
		AltL:     uint8(h.HL2),
		IX:       h.IX,
		IY:       h.IY,
		SP:       h.SP,
		I:        h.I,
		R:        h.R,
		Flags:    flagsFromByte(uint8(h.AF)),
		AltFlags: flagsFromByte(uint8(h.AF2)),
		Interrupts: z80.Interrupts{
			IFF1: iff,
			IFF2: iff,
			IM:   uint8(h.IntMode),
		},
	}
}

// State returns the CPU state to resume the snapshot with. For 48K
// snapshots the program counter is popped from the stack, SP points past it.
func (s *Snapshot) State() (z80.State, error) {
	state := s.header.State()
	pc, err := s.PC()
	if err != nil {
		return z80.State{}, err
	}
	state.PC = pc
	if s.extension == nil {
		state.SP += 2
	}
	return state, nil
}

// NewCPU creates a ZX Spectrum Z80 CPU that runs on the snapshot memory
// with the registers of the snapshot loaded.
func (s *Snapshot) NewCPU() (*z80.CPU, error) {
	state, err := s.State()
	if err != nil {
		return nil, err
	}

	cpu, err := z80.New(s.Memory(),
		z80.WithSystemType(arch.ZXSpectrum),
		z80.WithInitialPC(state.PC),
		z80.WithInitialSP(state.SP),
	)
	if err != nil {
		return nil, fmt.Errorf("creating cpu: %w", err)
	}

	cpu.A, cpu.B, cpu.C, cpu.D, cpu.E, cpu.H, cpu.L =
		state.A, state.B, state.C, state.D, state.E, state.H, state.L
	cpu.AltA, cpu.AltB, cpu.AltC, cpu.AltD, cpu.AltE, cpu.AltH, cpu.AltL =
		state.AltA, state.AltB, state.AltC, state.AltD, state.AltE, state.AltH, state.AltL
	cpu.IX, cpu.IY = state.IX, state.IY
	cpu.I, cpu.R = state.I, state.R
	cpu.Flags, cpu.AltFlags = state.Flags, state.AltFlags

	if err := cpu.SetInterruptMode(s.header.IntMode); err != nil {
		return nil, fmt.Errorf("setting interrupt mode %d: %w", s.header.IntMode, ErrInvalidMachineState)
	}
	if state.Interrupts.IFF1 {
		cpu.EnableInterrupts()
	}
	return cpu, nil
}

// flagsFromByte splits the F register into the single flag bits.
func flagsFromByte(f uint8) z80.Flags {
	return z80.Flags{
		C: f & 1,
		N: f >> 1 & 1,
		P: f >> 2 & 1,
		X: f >> 3 & 1,
		H: f >> 4 & 1,
		Y: f >> 5 & 1,
		Z: f >> 6 & 1,
		S: f >> 7 & 1,
	}
}
