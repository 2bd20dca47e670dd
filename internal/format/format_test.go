package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDollars(t *testing.T) {
	assert.Equal(t, "$4,500,000", Dollars(4500000))
	assert.Equal(t, "$0", Dollars(0))
	assert.Equal(t, "$12,000,000", Dollars(12000000))
	assert.Equal(t, "1,234", Number(1234))
}

func TestDates(t *testing.T) {
	d := time.Date(2023, 11, 28, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "11/28/2023", Date(d))
	assert.Equal(t, "11/28/2023, 9:30 AM", DateTime(d))
	assert.Equal(t, "November 28th, 2023", LongDate(d))
	assert.Equal(t, "November 1st, 2023", LongDate(time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "November 12th, 2023", LongDate(time.Date(2023, 11, 12, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "November 22nd, 2023", LongDate(time.Date(2023, 11, 22, 0, 0, 0, 0, time.UTC)))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Login", Label("login"))
	assert.Equal(t, "In Progress", Label("in_progress"))
	assert.Equal(t, "Resolved", Label("resolved"))
}
