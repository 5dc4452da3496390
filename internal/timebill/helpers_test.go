package timebill

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDay(s)
	require.NoError(t, err)
	return d
}

func entry(t *testing.T, date, category string, mins int64) Entry {
	t.Helper()
	return Entry{Date: day(t, date), Category: category, Minutes: mins}
}

// assertBalanced checks that every aggregate's categories sum to its total.
func assertBalanced(t *testing.T, s Series) {
	t.Helper()
	for _, a := range s.Rows {
		var sum int64
		a.Each(func(_ string, m int64) { sum += m })
		require.Equal(t, a.Total, sum, "aggregate %s", a.Key())
		require.Len(t, a.ByCategory(), s.Categories.Len(), "aggregate %s", a.Key())
	}
}
