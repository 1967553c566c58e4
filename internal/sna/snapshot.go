// Package sna implements loading of ZX Spectrum .sna memory snapshots of
// 48K and 128K machines and address translated access to their memory.
//
// A Snapshot is not safe for concurrent use. Callers that share one between
// goroutines need to protect it with their own lock.
package sna

import "fmt"

// MachineType is the machine a snapshot was taken from.
type MachineType int

// Supported machine types.
const (
	Snapshot48 MachineType = iota
	Snapshot128
)

const (
	// Size48K is the exact file size of a 48K snapshot.
	Size48K = HeaderSize + 3*BankSize
	// MinSize128K is the file size of a 128K snapshot without trailing banks.
	MinSize128K = Size48K + ExtensionSize

	// minTrailingBanks128K is the smallest number of trailing banks accepted
	// for a 128K snapshot.
	minTrailingBanks128K = 3

	screenBank = 5
	middleBank = 2

	// lowest address that is backed by RAM, everything below is ROM.
	ramStart   = 0x4000
	middleBase = 0x8000
	highBase   = 0xC000
)

func (m MachineType) String() string {
	switch m {
	case Snapshot48:
		return "48K"
	case Snapshot128:
		return "128K"
	default:
		return fmt.Sprintf("MachineType(%d)", int(m))
	}
}

// Snapshot is a parsed .sna snapshot.
type Snapshot struct {
	machine   MachineType
	header    Header
	extension *Extension
	banks     BankStore
	paging    Paging
}

// Parse parses a complete snapshot file held in memory.
//
// A 48K snapshot maps its three RAM regions to banks 5, 2 and 0, the
// layout a 128K machine uses after reset. A 128K snapshot contains banks 5,
// 2 and the bank paged in at 0xC000, followed by the remaining banks in
// ascending order.
func Parse(data []byte) (*Snapshot, error) {
	machine, err := machineFromSize(len(data))
	if err != nil {
		return nil, err
	}

	header, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}

	s := &Snapshot{
		machine: machine,
		header:  header,
		paging:  fixedPaging(),
	}

	if machine == Snapshot128 {
		ext, err := DecodeExtension(data[Size48K:])
		if err != nil {
			return nil, err
		}
		s.extension = &ext
		s.paging = newPaging(ext.Port7FFD)
	}

	image := data[HeaderSize:Size48K]
	regions := [3]int{screenBank, middleBank, s.paging.HighBank()}
	for i, bank := range regions {
		region := image[i*BankSize : (i+1)*BankSize]
		if err := s.banks.SetBank(bank, region); err != nil {
			return nil, err
		}
	}

	if machine == Snapshot48 {
		return s, nil
	}

	if err := s.readTrailingBanks(data[MinSize128K:]); err != nil {
		return nil, err
	}
	return s, nil
}

// machineFromSize returns the machine type for the given file size.
// 128K sizes are only checked for whole banks here, the bank count is
// validated against the paging state by readTrailingBanks.
func machineFromSize(size int) (MachineType, error) {
	switch {
	case size == Size48K:
		return Snapshot48, nil

	case size >= MinSize128K+minTrailingBanks128K*BankSize && (size-MinSize128K)%BankSize == 0:
		return Snapshot128, nil

	default:
		return 0, fmt.Errorf("snapshot of %d bytes: %w", size, ErrInvalidFileSize)
	}
}

// readTrailingBanks fills all banks that are not yet populated in ascending
// order from the trailing bank list.
func (s *Snapshot) readTrailingBanks(trailer []byte) error {
	var missing []int
	for i := range BankCount {
		if !s.banks.Populated(i) {
			missing = append(missing, i)
		}
	}

	count := len(trailer) / BankSize
	if count > len(missing) {
		return fmt.Errorf("snapshot contains %d trailing banks but only %d are not paged in: %w",
			count, len(missing), ErrInvalidFileSize)
	}

	for i, bank := range missing[:count] {
		if err := s.banks.SetBank(bank, trailer[i*BankSize:(i+1)*BankSize]); err != nil {
			return err
		}
	}
	return nil
}

// Type returns the machine type of the snapshot.
func (s *Snapshot) Type() MachineType {
	return s.machine
}

// Header returns the register block of the snapshot.
func (s *Snapshot) Header() Header {
	return s.header
}

// Extension returns the 128K trailer. The paging port value reflects
// writes done after loading.
func (s *Snapshot) Extension() (Extension, bool) {
	if s.extension == nil {
		return Extension{}, false
	}
	ext := *s.extension
	ext.Port7FFD = s.paging.Value()
	return ext, true
}

// Paging returns the current paging state.
func (s *Snapshot) Paging() Paging {
	return s.paging
}

// HighBank returns the bank currently mapped to 0xC000-0xFFFF.
func (s *Snapshot) HighBank() int {
	return s.paging.HighBank()
}

// Banks returns the bank storage of the snapshot.
func (s *Snapshot) Banks() *BankStore {
	return &s.banks
}

// Write7FFD writes a value to the paging port, changing the bank mapped to
// 0xC000-0xFFFF. It fails with ErrInvalidMachineState for 48K snapshots.
func (s *Snapshot) Write7FFD(value uint8) error {
	return s.paging.Write(value)
}

// PC returns the program counter. 48K snapshots store it on the stack, it
// is read from the address SP points to.
func (s *Snapshot) PC() (uint16, error) {
	if s.extension != nil {
		return s.extension.PC, nil
	}
	pc, err := s.PeekWord(s.header.SP)
	if err != nil {
		return 0, fmt.Errorf("reading program counter from stack: %w", err)
	}
	return pc, nil
}

// Checksum returns the 16 bit wrapping sum of all bytes of a bank.
func (s *Snapshot) Checksum(bank int) (uint16, error) {
	return s.banks.Checksum(bank)
}

// mapAddress translates a memory address to a bank index and bank offset.
// Addresses below 0x4000 belong to the ROM which is not part of a snapshot
// and return ErrAddressOutOfRange.
func (s *Snapshot) mapAddress(address uint16) (int, uint16, error) {
	offset := address & (BankSize - 1)

	switch {
	case address < ramStart:
		return 0, 0, fmt.Errorf("address 0x%04X is in ROM: %w", address, ErrAddressOutOfRange)
	case address < middleBase:
		return screenBank, offset, nil
	case address < highBase:
		return middleBank, offset, nil
	default:
		return s.paging.HighBank(), offset, nil
	}
}

// Peek returns the byte mapped to the given address.
func (s *Snapshot) Peek(address uint16) (byte, error) {
	bank, offset, err := s.mapAddress(address)
	if err != nil {
		return 0, err
	}
	return s.banks.Byte(bank, offset)
}

// Poke sets the byte mapped to the given address.
func (s *Snapshot) Poke(address uint16, value byte) error {
	bank, offset, err := s.mapAddress(address)
	if err != nil {
		return err
	}
	return s.banks.SetByte(bank, offset, value)
}

// PeekWord returns the little-endian word at the given address.
// Reading at 0xFFFF fails instead of wrapping around.
func (s *Snapshot) PeekWord(address uint16) (uint16, error) {
	if address == 0xFFFF {
		return 0, fmt.Errorf("reading word at 0x%04X: %w", address, ErrAddressOutOfRange)
	}

	low, err := s.Peek(address)
	if err != nil {
		return 0, err
	}
	high, err := s.Peek(address + 1)
	if err != nil {
		return 0, err
	}
	return uint16(high)<<8 | uint16(low), nil
}

// PokeWord sets the little-endian word at the given address.
// Writing at 0xFFFF fails instead of wrapping around.
func (s *Snapshot) PokeWord(address, value uint16) error {
	if address == 0xFFFF {
		return fmt.Errorf("writing word at 0x%04X: %w", address, ErrAddressOutOfRange)
	}
	// both bytes need to be accessible, a failing high byte must not leave
	// a partial write behind
	if _, err := s.PeekWord(address); err != nil {
		return err
	}

	if err := s.Poke(address, byte(value)); err != nil {
		return err
	}
	return s.Poke(address+1, byte(value>>8))
}

// BankPeek returns the byte at the offset of a bank, independent of the
// current paging state.
func (s *Snapshot) BankPeek(bank int, offset uint16) (byte, error) {
	return s.banks.Byte(bank, offset)
}

// BankPoke sets the byte at the offset of a bank, independent of the
// current paging state.
func (s *Snapshot) BankPoke(bank int, offset uint16, value byte) error {
	return s.banks.SetByte(bank, offset, value)
}

// BankPeekWord returns the little-endian word at the offset of a bank.
// Words can not cross a bank boundary.
func (s *Snapshot) BankPeekWord(bank int, offset uint16) (uint16, error) {
	if offset >= BankSize-1 {
		return 0, fmt.Errorf("reading word at bank %d offset 0x%04X: %w", bank, offset, ErrAddressOutOfRange)
	}

	low, err := s.banks.Byte(bank, offset)
	if err != nil {
		return 0, err
	}
	high, err := s.banks.Byte(bank, offset+1)
	if err != nil {
		return 0, err
	}
	return uint16(high)<<8 | uint16(low), nil
}

// BankPokeWord sets the little-endian word at the offset of a bank.
// Words can not cross a bank boundary.
func (s *Snapshot) BankPokeWord(bank int, offset, value uint16) error {
	if offset >= BankSize-1 {
		return fmt.Errorf("writing word at bank %d offset 0x%04X: %w", bank, offset, ErrAddressOutOfRange)
	}

	if err := s.banks.SetByte(bank, offset, byte(value)); err != nil {
		return err
	}
	return s.banks.SetByte(bank, offset+1, byte(value>>8))
}
