// Package format renders numbers, dates and labels for display.
package format

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printer = message.NewPrinter(language.English)
	title   = cases.Title(language.English)
)

// Dollars formats whole dollars with thousands separators: $4,500,000.
func Dollars(amount int64) string {
	return printer.Sprintf("$%d", amount)
}

// Number formats an integer with thousands separators.
func Number(n int64) string {
	return printer.Sprintf("%d", n)
}

// Date formats a calendar day the way the en-US locale does: 8/15/2023.
func Date(t time.Time) string {
	return t.Format("1/2/2006")
}

// DateTime formats a timestamp as 11/28/2023, 9:30 AM.
func DateTime(t time.Time) string {
	return t.Format("1/2/2006, 3:04 PM")
}

// LongDate formats a day as November 28th, 2023.
func LongDate(t time.Time) string {
	return t.Format("January ") + ordinal(t.Day()) + t.Format(", 2006")
}

// Label turns an enumeration value like "login" or "in_progress" into "Login" or "In Progress".
func Label(v string) string {
	return title.String(strings.ReplaceAll(v, "_", " "))
}

func ordinal(d int) string {
	suffix := "th"
	switch {
	case d%100 >= 11 && d%100 <= 13:
	case d%10 == 1:
		suffix = "st"
	case d%10 == 2:
		suffix = "nd"
	case d%10 == 3:
		suffix = "rd"
	}
	return printer.Sprintf("%d%s", d, suffix)
}
