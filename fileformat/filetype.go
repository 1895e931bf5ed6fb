// Package fileformat describes the delimited record formats prepbuddy reads
// and writes.
package fileformat

import (
	"fmt"
	"strings"
)

// FileType is a delimited record format.
type FileType int

const (
	_ FileType = iota // zero value is invalid

	CSV
	TSV
)

var delimiters = map[FileType]string{
	CSV: ",",
	TSV: "\t",
}

var names = map[FileType]string{
	CSV: "csv",
	TSV: "tsv",
}

// ParseFileType parses a file type name ("csv" or "tsv", any case).
func ParseFileType(s string) (FileType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return CSV, nil
	case "tsv":
		return TSV, nil
	}
	return 0, fmt.Errorf("unknown file type %q", s)
}

// IsValid reports whether t is a known file type.
func (t FileType) IsValid() bool {
	_, ok := delimiters[t]
	return ok
}

func (t FileType) String() string {
	if n, ok := names[t]; ok {
		return n
	}
	return fmt.Sprintf("FileType(%d)", int(t))
}

// Delimiter returns the field separator.
func (t FileType) Delimiter() string {
	return delimiters[t]
}

// ParseRecord splits a record into its fields. Quoting is not interpreted.
// Trailing empty fields are dropped, so "a,b,," yields [a b] and ",," yields
// no fields. A record without any delimiter is returned as its only field.
func (t FileType) ParseRecord(record string) []string {
	fields := strings.Split(record, t.Delimiter())
	if len(fields) == 1 {
		return fields
	}
	end := len(fields)
	for end > 0 && fields[end-1] == "" {
		end--
	}
	return fields[:end]
}

// Join joins fields into a record.
func (t FileType) Join(fields []string) string {
	return strings.Join(fields, t.Delimiter())
}

// AppendDelimiter appends a trailing separator, opening an empty last field.
func (t FileType) AppendDelimiter(record string) string {
	return record + t.Delimiter()
}
