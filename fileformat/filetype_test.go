package fileformat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFileType(t *testing.T) {
	tests := []struct {
		in      string
		want    FileType
		wantErr bool
	}{
		{"csv", CSV, false},
		{"TSV", TSV, false},
		{" Csv ", CSV, false},
		{"json", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFileType(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileTypeDelimiters(t *testing.T) {
	assert.Equal(t, ",", CSV.Delimiter())
	assert.Equal(t, "\t", TSV.Delimiter())
	assert.Equal(t, "csv", CSV.String())
	assert.Equal(t, "tsv", TSV.String())
	assert.Equal(t, "FileType(0)", FileType(0).String())
	assert.False(t, FileType(0).IsValid())
	assert.True(t, TSV.IsValid())
}

func TestParseRecordAndJoin(t *testing.T) {
	fields := CSV.ParseRecord("FirstName LastName MiddleName,850")
	assert.Equal(t, []string{"FirstName LastName MiddleName", "850"}, fields)
	assert.Equal(t, "FirstName LastName MiddleName,850", CSV.Join(fields))

	fields = TSV.ParseRecord("a\tb\t\tc")
	assert.Equal(t, []string{"a", "b", "", "c"}, fields)
	assert.Equal(t, "a\tb\t\tc", TSV.Join(fields))
}

func TestParseRecordTrailingFields(t *testing.T) {
	tests := []struct {
		name   string
		ft     FileType
		record string
		want   []string
	}{
		{"trailing empties dropped", CSV, "a,b,,", []string{"a", "b"}},
		{"leading empty kept", CSV, ",a,b", []string{"", "a", "b"}},
		{"only delimiters", CSV, ",,", []string{}},
		{"empty record", CSV, "", []string{""}},
		{"no delimiter", TSV, "single", []string{"single"}},
		{"tsv trailing tab", TSV, "a\tb\t", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ft.ParseRecord(tt.record))
		})
	}
}

func TestAppendDelimiter(t *testing.T) {
	assert.Equal(t, "x,y,", CSV.AppendDelimiter("x,y"))
	assert.Equal(t, "x\t", TSV.AppendDelimiter("x"))
}
