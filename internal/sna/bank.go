package sna

import "fmt"

const (
	// BankSize is the size of a single memory bank.
	BankSize = 0x4000
	// BankCount is the number of banks of a 128K machine.
	BankCount = 8
)

// BankStore holds up to 8 independently owned 16KB memory banks.
// The zero value is an empty store.
type BankStore struct {
	banks [BankCount][]byte
}

// SetBank copies data into the bank slot with the given index.
func (s *BankStore) SetBank(index int, data []byte) error {
	if index < 0 || index >= BankCount {
		return fmt.Errorf("setting bank %d: %w", index, ErrInvalidBankIndex)
	}
	if len(data) != BankSize {
		return fmt.Errorf("setting bank %d with %d bytes: %w", index, len(data), ErrInvalidBankSize)
	}

	bank := make([]byte, BankSize)
	copy(bank, data)
	s.banks[index] = bank
	return nil
}

// Byte returns the byte at the offset within the given bank.
func (s *BankStore) Byte(index int, offset uint16) (byte, error) {
	bank, err := s.bank(index, offset)
	if err != nil {
		return 0, err
	}
	return bank[offset], nil
}

// SetByte sets the byte at the offset within the given bank.
func (s *BankStore) SetByte(index int, offset uint16, value byte) error {
	bank, err := s.bank(index, offset)
	if err != nil {
		return err
	}
	bank[offset] = value
	return nil
}

// Populated returns whether the bank slot holds data.
func (s *BankStore) Populated(index int) bool {
	if index < 0 || index >= BankCount {
		return false
	}
	return s.banks[index] != nil
}

// Count returns the number of populated banks.
func (s *BankStore) Count() int {
	var n int
	for _, bank := range s.banks {
		if bank != nil {
			n++
		}
	}
	return n
}

// Indexes returns the indexes of all populated banks in ascending order.
func (s *BankStore) Indexes() []int {
	indexes := make([]int, 0, BankCount)
	for i, bank := range s.banks {
		if bank != nil {
			indexes = append(indexes, i)
		}
	}
	return indexes
}

// Checksum returns the 16 bit wrapping sum of all bytes of a bank.
func (s *BankStore) Checksum(index int) (uint16, error) {
	bank, err := s.bank(index, 0)
	if err != nil {
		return 0, err
	}

	var sum uint16
	for _, b := range bank {
		sum += uint16(b)
	}
	return sum, nil
}

func (s *BankStore) bank(index int, offset uint16) ([]byte, error) {
	if index < 0 || index >= BankCount {
		return nil, fmt.Errorf("accessing bank %d: %w", index, ErrInvalidBankIndex)
	}
	bank := s.banks[index]
	if bank == nil {
		return nil, fmt.Errorf("accessing bank %d: %w", index, ErrUnmappedBank)
	}
	if offset >= BankSize {
		return nil, fmt.Errorf("accessing bank %d offset 0x%04X: %w", index, offset, ErrAddressOutOfRange)
	}
	return bank, nil
}
