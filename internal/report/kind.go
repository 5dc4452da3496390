// Package report runs the counting pipeline over a log file and plans the
// charts drawn from its tables.
package report

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Kind names one derived table.
type Kind string

const (
	KindDay    Kind = "DAY"
	KindWeek   Kind = "WEEK"
	KindWeek4  Kind = "WEEK4"
	KindDayH   Kind = "DayH"
	KindWeekH  Kind = "WeekH"
	KindWeek4H Kind = "Week4H"
)

// Kinds lists every table in output order.
var Kinds = []Kind{KindDay, KindDayH, KindWeek, KindWeekH, KindWeek4, KindWeek4H}

var ErrUnknownKind = errors.New("unknown table kind")

var suffixes = map[Kind]string{
	KindDay:    "_count_day",
	KindWeek:   "_count_week",
	KindWeek4:  "_count_4weeks",
	KindDayH:   "_count_day_hour",
	KindWeekH:  "_count_week_hour",
	KindWeek4H: "_count_4weeks_hour",
}

// ParseKind accepts a kind name in any letter case.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if strings.EqualFold(string(k), s) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Weeks is the period length in weeks, 0 for daily tables.
func (k Kind) Weeks() int {
	switch k {
	case KindWeek, KindWeekH:
		return 1
	case KindWeek4, KindWeek4H:
		return 4
	}
	return 0
}

// Converted reports whether the table is in units rather than minutes.
func (k Kind) Converted() bool {
	return k == KindDayH || k == KindWeekH || k == KindWeek4H
}

// TablePath derives the output file of kind k from the input log path by
// inserting the kind suffix before the extension.
func TablePath(input string, k Kind) string {
	ext := filepath.Ext(input)
	if ext == "" {
		ext = ".txt"
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffixes[k] + ext
}

// JSONPath is the JSON twin of the TSV table.
func JSONPath(input string, k Kind) string {
	p := TablePath(input, k)
	return strings.TrimSuffix(p, filepath.Ext(p)) + ".json"
}
