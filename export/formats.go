// Package export renders the namespace vocabulary in the formats consumed by
// build scripts, language bindings and operators.
package export

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnsupportedFormat is returned for a format with no writer.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format identifies an export format.
type Format string

const (
	// FormatText is an aligned two-column table for terminals.
	FormatText Format = "text"

	// FormatJSON is an array of {"symbol","value"} objects.
	FormatJSON Format = "json"

	// FormatYAML is an ordered symbol → value mapping.
	FormatYAML Format = "yaml"

	// FormatCSV is comma-separated with a header row.
	FormatCSV Format = "csv"

	// FormatTSV is tab-separated with a header row.
	FormatTSV Format = "tsv"

	// FormatEnv is one PREPBUDDY_<SYMBOL>=value assignment per line.
	FormatEnv Format = "env"

	// FormatPython is a Python binding module declaring a Package class.
	FormatPython Format = "python"
)

// FormatInfo provides metadata about an export format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatText: {
		Name:        FormatText,
		MIMEType:    "text/plain; charset=utf-8",
		Extension:   ".txt",
		Description: "Aligned symbol/value table",
	},
	FormatJSON: {
		Name:        FormatJSON,
		MIMEType:    "application/json",
		Extension:   ".json",
		Description: "JSON array of symbol/value objects",
	},
	FormatYAML: {
		Name:        FormatYAML,
		MIMEType:    "application/yaml",
		Extension:   ".yaml",
		Description: "YAML mapping of symbol to value",
	},
	FormatCSV: {
		Name:        FormatCSV,
		MIMEType:    "text/csv",
		Extension:   ".csv",
		Description: "Comma-separated values with header",
	},
	FormatTSV: {
		Name:        FormatTSV,
		MIMEType:    "text/tab-separated-values",
		Extension:   ".tsv",
		Description: "Tab-separated values with header",
	},
	FormatEnv: {
		Name:        FormatEnv,
		MIMEType:    "text/plain; charset=utf-8",
		Extension:   ".env",
		Description: "Shell-style environment assignments",
	},
	FormatPython: {
		Name:        FormatPython,
		MIMEType:    "text/x-python",
		Extension:   ".py",
		Description: "Python module declaring the Package class",
	},
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// ParseFormat parses a format name, ignoring case.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := FormatRegistry[f]; !ok {
		return "", fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, name, strings.Join(formatNames(), ", "))
	}
	return f, nil
}

// Formats returns all supported formats sorted by name.
func Formats() []Format {
	out := make([]Format, 0, len(FormatRegistry))
	for f := range FormatRegistry {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func formatNames() []string {
	formats := Formats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return names
}
