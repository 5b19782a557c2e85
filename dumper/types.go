package dumper

import (
	"sort"

	"github.com/uyuni-project/dump-extract/schemareader"
)

// Options drives an extraction run
type Options struct {
	// MaxRows caps the data rows kept per table, 0 keeps all of them
	MaxRows int
	// StripColumn names the column whose values are replaced by NULL, empty keeps values
	StripColumn string
	// TargetSize is the output budget in bytes, 0 disables it
	TargetSize int64
}

// TableStats maps each table to the number of data rows written for it
type TableStats map[string]int

// SortedNames returns the table names in alphabetical order
func (s TableStats) SortedNames() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Result describes a finished extraction
type Result struct {
	Stats         TableStats `json:"tables"`
	BytesWritten  int64      `json:"bytesWritten"`
	LimitReached  bool       `json:"limitReached"`
	LimitedTables []string   `json:"limitedTables,omitempty"`
	DroppedRows   int        `json:"droppedRows"`
}

// copyBlock is the state of the COPY block being read
type copyBlock struct {
	table      schemareader.Table
	rows       int
	stripIndex int
	limited    bool
}
