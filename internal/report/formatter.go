package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Supported report formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists all supported report formats.
var Formats = []string{FormatText, FormatJSON, FormatYAML}

// Formatter writes a report in a specific format.
type Formatter interface {
	Format(w io.Writer, r *Report) error
}

// NewFormatter returns the formatter for the given format name.
func NewFormatter(format string) (Formatter, error) {
	switch strings.ToLower(format) {
	case FormatText, "":
		return TextFormatter{}, nil
	case FormatJSON:
		return JSONFormatter{}, nil
	case FormatYAML, "yml":
		return YAMLFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported report format '%s'", format)
	}
}

// JSONFormatter formats a report as indented JSON.
type JSONFormatter struct{}

// Format formats a report as indented JSON.
func (JSONFormatter) Format(w io.Writer, r *Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// YAMLFormatter formats a report as a YAML document.
type YAMLFormatter struct{}

// Format formats a report as a YAML document.
func (YAMLFormatter) Format(w io.Writer, r *Report) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(r); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return encoder.Close()
}

// TextFormatter formats a report as human readable text.
type TextFormatter struct{}

// Format formats a report as human readable text.
func (TextFormatter) Format(w io.Writer, r *Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "file:     %s\n", r.File)
	fmt.Fprintf(&b, "system:   %s\n", r.System)
	fmt.Fprintf(&b, "machine:  %s\n", r.Machine)
	if r.PC != nil {
		fmt.Fprintf(&b, "pc:       0x%04X\n", *r.PC)
	}

	reg := r.Registers
	fmt.Fprintf(&b, "\nAF  0x%04X  BC  0x%04X  DE  0x%04X  HL  0x%04X\n", reg.AF, reg.BC, reg.DE, reg.HL)
	fmt.Fprintf(&b, "AF' 0x%04X  BC' 0x%04X  DE' 0x%04X  HL' 0x%04X\n", reg.AF2, reg.BC2, reg.DE2, reg.HL2)
	fmt.Fprintf(&b, "IX  0x%04X  IY  0x%04X  SP  0x%04X\n", reg.IX, reg.IY, reg.SP)
	fmt.Fprintf(&b, "I   0x%02X    R   0x%02X    IM  %d       IFF2 %t\n", reg.I, reg.R, reg.IntMode, reg.InterruptsEnabled)
	fmt.Fprintf(&b, "border: %d\n", reg.BorderColor)

	if p := r.Paging; p != nil {
		fmt.Fprintf(&b, "\nport 0x7FFD: 0x%02X  high bank: %d  rom: %d  shadow screen: %t  locked: %t  tr-dos: %t\n",
			p.Port7FFD, p.HighBank, p.ROM, p.ShadowScreen, p.Locked, p.TRDOS)
	}

	b.WriteString("\nbank  checksum  mapped\n")
	for _, bank := range r.Banks {
		fmt.Fprintf(&b, "%4d    0x%04X  %s\n", bank.Index, bank.Checksum, strings.Join(bank.Addresses, ","))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
