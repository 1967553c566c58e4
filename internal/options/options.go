// Package options contains the program options.
package options

// NoPageWrite is the Page value that leaves the paging port untouched.
const NoPageWrite = -1

// Parameters contains file path options.
type Parameters struct {
	Input  string `flag:"i" usage:"name of the input .sna snapshot file"`
	Output string `flag:"o" usage:"output report file, in batch mode any value writes one report next to every snapshot (default: stdout)"`
	Batch  string `flag:"batch" usage:"process a batch of given path and file mask, for example *.sna"`
}

// Flags contains behavior options. The defaults are applied by the flag
// parser from the default tags.
type Flags struct {
	Format string `flag:"format" usage:"report format: text, json, yaml" default:"text"`
	Page   int    `flag:"page" usage:"value to write to the 0x7FFD paging port of 128K snapshots before reporting, -1 for none" default:"-1"`
	Debug  bool   `flag:"debug" usage:"enable debugging options for extended logging"`
	Quiet  bool   `flag:"q" usage:"perform operations quietly"`
}

// Program options of the snapshot inspector.
type Program struct {
	Parameters
	Flags
}

// PageWrite returns the paging port value to write and whether a write
// was requested.
func (p Program) PageWrite() (uint8, bool) {
	if p.Page < 0 || p.Page > 0xFF {
		return 0, false
	}
	return uint8(p.Page), true
}
