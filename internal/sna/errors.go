package sna

import "errors"

var (
	// ErrInvalidFileSize is returned when the input length matches neither
	// the 48K nor any 128K snapshot layout.
	ErrInvalidFileSize = errors.New("invalid snapshot file size")
	// ErrTruncatedInput is returned when the input ends inside a field or bank.
	ErrTruncatedInput = errors.New("truncated input")
	// ErrInvalidBankIndex is returned for bank indexes outside 0-7.
	ErrInvalidBankIndex = errors.New("invalid bank index")
	// ErrInvalidBankSize is returned when bank data is not exactly 16KB.
	ErrInvalidBankSize = errors.New("invalid bank size")
	// ErrUnmappedBank is returned when accessing a bank that was never populated.
	ErrUnmappedBank = errors.New("unmapped bank")
	// ErrAddressOutOfRange is returned for addresses or offsets outside of
	// an addressable window.
	ErrAddressOutOfRange = errors.New("address out of range")
	// ErrInvalidMachineState is returned for paging operations on a 48K snapshot.
	ErrInvalidMachineState = errors.New("invalid machine state")
)
