// Package report builds inspection reports of snapshots and formats them.
package report

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/zxsna/internal/sna"
)

// Report describes the state stored in a snapshot.
type Report struct {
	File      string    `json:"file" yaml:"file"`
	System    string    `json:"system" yaml:"system"`
	Machine   string    `json:"machine" yaml:"machine"`
	PC        *uint16   `json:"pc,omitempty" yaml:"pc,omitempty"`
	Registers Registers `json:"registers" yaml:"registers"`
	Paging    *Paging   `json:"paging,omitempty" yaml:"paging,omitempty"`
	Banks     []Bank    `json:"banks" yaml:"banks"`
}

// Registers contains the CPU registers of the snapshot header.
type Registers struct {
	AF  uint16 `json:"af" yaml:"af"`
	BC  uint16 `json:"bc" yaml:"bc"`
	DE  uint16 `json:"de" yaml:"de"`
	HL  uint16 `json:"hl" yaml:"hl"`
	AF2 uint16 `json:"af_prime" yaml:"af_prime"`
	BC2 uint16 `json:"bc_prime" yaml:"bc_prime"`
	DE2 uint16 `json:"de_prime" yaml:"de_prime"`
	HL2 uint16 `json:"hl_prime" yaml:"hl_prime"`
	IX  uint16 `json:"ix" yaml:"ix"`
	IY  uint16 `json:"iy" yaml:"iy"`
	SP  uint16 `json:"sp" yaml:"sp"`
	I   uint8  `json:"i" yaml:"i"`
	R   uint8  `json:"r" yaml:"r"`

	InterruptsEnabled bool  `json:"interrupts_enabled" yaml:"interrupts_enabled"`
	IntMode           uint8 `json:"int_mode" yaml:"int_mode"`
	BorderColor       uint8 `json:"border_color" yaml:"border_color"`
}

// Paging contains the 128K paging state.
type Paging struct {
	Port7FFD     uint8 `json:"port_7ffd" yaml:"port_7ffd"`
	HighBank     int   `json:"high_bank" yaml:"high_bank"`
	ShadowScreen bool  `json:"shadow_screen" yaml:"shadow_screen"`
	ROM          int   `json:"rom" yaml:"rom"`
	Locked       bool  `json:"locked" yaml:"locked"`
	TRDOS        bool  `json:"trdos" yaml:"trdos"`
}

// Bank describes a populated memory bank.
type Bank struct {
	Index    int    `json:"index" yaml:"index"`
	Checksum uint16 `json:"checksum" yaml:"checksum"`
	// Addresses are the start addresses the bank is visible at, empty if
	// the bank is not paged in.
	Addresses []string `json:"addresses,omitempty" yaml:"addresses,omitempty"`
}

// New builds the report of a snapshot. The program counter is omitted if
// it can not be recovered from the stack of a 48K snapshot.
func New(file string, snapshot *sna.Snapshot) (*Report, error) {
	h := snapshot.Header()
	r := &Report{
		File:    file,
		System:  arch.ZXSpectrum.String(),
		Machine: snapshot.Type().String(),
		Registers: Registers{
			AF:                h.AF,
			BC:                h.BC,
			DE:                h.DE,
			HL:                h.HL,
			AF2:               h.AF2,
			BC2:               h.BC2,
			DE2:               h.DE2,
			HL2:               h.HL2,
			IX:                h.IX,
			IY:                h.IY,
			SP:                h.SP,
			I:                 h.I,
			R:                 h.R,
			InterruptsEnabled: h.InterruptsEnabled(),
			IntMode:           uint8(h.IntMode),
			BorderColor:       h.BorderColor,
		},
	}

	if pc, err := snapshot.PC(); err == nil {
		r.PC = &pc
	}

	if ext, ok := snapshot.Extension(); ok {
		paging := snapshot.Paging()
		r.Paging = &Paging{
			Port7FFD:     paging.Value(),
			HighBank:     paging.HighBank(),
			ShadowScreen: paging.ShadowScreen(),
			ROM:          paging.ROM(),
			Locked:       paging.Locked(),
			TRDOS:        ext.TRDOS,
		}
	}

	windows := [...]struct {
		bank    int
		address string
	}{
		{5, "0x4000"},
		{2, "0x8000"},
		{snapshot.HighBank(), "0xC000"},
	}
	for _, index := range snapshot.Banks().Indexes() {
		sum, err := snapshot.Checksum(index)
		if err != nil {
			return nil, fmt.Errorf("calculating checksum of bank %d: %w", index, err)
		}
		bank := Bank{
			Index:    index,
			Checksum: sum,
		}
		for _, window := range windows {
			if window.bank == index {
				bank.Addresses = append(bank.Addresses, window.address)
			}
		}
		r.Banks = append(r.Banks, bank)
	}

	return r, nil
}
