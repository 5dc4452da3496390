package timebill

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCats = MustCategories("work", "rest")

func TestParseEntries(t *testing.T) {
	in := "DATE\tTYPE\tMINS\tNOTE\n" +
		"2023-01-01\twork\t60\tplanning\n" +
		"2023-1-3\trest\t30\t\n"

	entries, err := ParseEntries(strings.NewReader(in), testCats)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, day(t, "2023-01-01"), entries[0].Date)
	assert.Equal(t, "work", entries[0].Category)
	assert.Equal(t, int64(60), entries[0].Minutes)
	assert.Equal(t, 2, entries[0].Line)

	assert.Equal(t, day(t, "2023-01-03"), entries[1].Date)
	assert.Equal(t, 3, entries[1].Line)
}

func TestParseEntries_ColumnOrder(t *testing.T) {
	in := "MINS\tDATE\tTYPE\n15\t2023-02-10\trest\n"

	entries, err := ParseEntries(strings.NewReader(in), testCats)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(15), entries[0].Minutes)
	assert.Equal(t, "rest", entries[0].Category)
}

func TestParseEntries_Empty(t *testing.T) {
	entries, err := ParseEntries(strings.NewReader(""), testCats)
	require.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = ParseEntries(strings.NewReader("DATE\tTYPE\tMINS\n"), testCats)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestParseEntries_Errors(t *testing.T) {
	tests := []struct {
		name   string
		row    string
		kind   error
		column string
	}{
		{"bad date", "2023/01/01\twork\t10", ErrMalformedRecord, ColumnDate},
		{"impossible date", "2023-02-30\twork\t10", ErrMalformedRecord, ColumnDate},
		{"non integer", "2023-01-01\twork\tten", ErrMalformedRecord, ColumnMinutes},
		{"fractional", "2023-01-01\twork\t1.5", ErrMalformedRecord, ColumnMinutes},
		{"negative", "2023-01-01\twork\t-5", ErrMalformedRecord, ColumnMinutes},
		{"unknown category", "2023-01-01\tsleep\t10", ErrMissingCategory, ColumnCategory},
		{"short row", "2023-01-01\twork", ErrMalformedRecord, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := "DATE\tTYPE\tMINS\n2023-01-01\twork\t5\n" + tt.row + "\n"
			entries, err := ParseEntries(strings.NewReader(in), testCats)
			require.Error(t, err)
			assert.Nil(t, entries)
			assert.ErrorIs(t, err, tt.kind)

			var recErr *RecordError
			require.True(t, errors.As(err, &recErr))
			assert.Equal(t, 3, recErr.Line)
			assert.Equal(t, tt.column, recErr.Column)
			assert.Contains(t, err.Error(), "line 3")
		})
	}
}

func TestParseEntries_MissingHeaderColumn(t *testing.T) {
	_, err := ParseEntries(strings.NewReader("DATE\tMINS\n2023-01-01\t5\n"), testCats)
	require.ErrorIs(t, err, ErrMalformedRecord)
	assert.Contains(t, err.Error(), "TYPE")
}

func TestReadEntriesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alldata.txt")
	require.NoError(t, os.WriteFile(path, []byte("DATE\tTYPE\tMINS\n2023-01-01\twork\t60\n"), 0o644))

	entries, err := ReadEntriesFile(path, testCats)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	_, err = ReadEntriesFile(filepath.Join(t.TempDir(), "missing.txt"), testCats)
	require.Error(t, err)
}
