package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/prepbuddy/fileformat"
	"github.com/c360studio/prepbuddy/vocabulary/prepbuddy"
)

// EnvPrefix prefixes variable names in the env format.
const EnvPrefix = "PREPBUDDY_"

// Write renders entries to w in the given format. Entries are written in the
// order given.
func Write(w io.Writer, format Format, entries []prepbuddy.Entry) error {
	switch format {
	case FormatText:
		return writeText(w, entries)
	case FormatJSON:
		return writeJSON(w, entries)
	case FormatYAML:
		return writeYAML(w, entries)
	case FormatCSV:
		return writeDelimited(w, fileformat.CSV, entries)
	case FormatTSV:
		return writeDelimited(w, fileformat.TSV, entries)
	case FormatEnv:
		return writeEnv(w, entries)
	case FormatPython:
		return writePython(w, entries)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func writeText(w io.Writer, entries []prepbuddy.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SYMBOL\tVALUE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\n", e.Symbol, e.Value)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write text: %w", err)
	}
	return nil
}

func writeJSON(w io.Writer, entries []prepbuddy.Entry) error {
	if entries == nil {
		entries = []prepbuddy.Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// writeYAML emits a mapping node so keys keep table order.
func writeYAML(w io.Writer, entries []prepbuddy.Entry) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range entries {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(e.Symbol)},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Value},
		)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("write yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("write yaml: %w", err)
	}
	return nil
}

func writeDelimited(w io.Writer, ft fileformat.FileType, entries []prepbuddy.Entry) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(ft.Join([]string{"symbol", "value"}) + "\n")
	for _, e := range entries {
		bw.WriteString(ft.Join([]string{string(e.Symbol), e.Value}) + "\n")
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", ft, err)
	}
	return nil
}

func writeEnv(w io.Writer, entries []prepbuddy.Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		fmt.Fprintf(bw, "%s%s=%s\n", EnvPrefix, e.Symbol, e.Value)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write env: %w", err)
	}
	return nil
}

// writePython emits the binding module. Values under the library root are
// written as concatenations of PREP_BUDDY once the root has been declared,
// matching how the binding declares them.
func writePython(w io.Writer, entries []prepbuddy.Entry) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("class Package(object):\n")
	if len(entries) == 0 {
		bw.WriteString("    pass\n")
	}

	rootPrefix := prepbuddy.PrepBuddy + prepbuddy.Separator
	rootDeclared := false
	for _, e := range entries {
		expr := strconv.Quote(e.Value)
		if rootDeclared && strings.HasPrefix(e.Value, rootPrefix) {
			suffix := strings.TrimPrefix(e.Value, prepbuddy.PrepBuddy)
			expr = string(prepbuddy.SymbolPrepBuddy) + " + " + strconv.Quote(suffix)
		}
		if e.Symbol == prepbuddy.SymbolPrepBuddy && e.Value == prepbuddy.PrepBuddy {
			rootDeclared = true
		}
		fmt.Fprintf(bw, "    %s = %s\n", e.Symbol, expr)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write python: %w", err)
	}
	return nil
}
