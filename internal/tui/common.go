package tui

import (
	"github.com/sadopc/timebill/internal/report"
	"github.com/shopspring/decimal"
)

// viewState represents the currently active tab.
type viewState int

const (
	viewDays viewState = iota
	viewWeeks
	viewWeeks4
)

var viewNames = []string{"Days", "Weeks", "4 Weeks"}

// viewKinds is the table shown by each tab.
var viewKinds = []report.Kind{report.KindDayH, report.KindWeekH, report.KindWeek4H}

// pageSizes is the number of rows per page in each tab.
var pageSizes = []int{14, 12, 13}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatHours(d decimal.Decimal) string {
	return d.StringFixed(1) + "h"
}
