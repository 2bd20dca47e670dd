package badge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaletteStyle(t *testing.T) {
	tests := []struct {
		palette Palette
		status  string
		want    string
	}{
		{ProjectStatus, "On Track", Green},
		{ProjectStatus, "Delayed", Yellow},
		{ProjectStatus, "Completed", Blue},
		{ProjectStatus, "On Hold", Red},
		{ProjectStatus, "Cancelled", Neutral},
		{ExpenditureStatus, "In Progress", Blue},
		{ExpenditureStatus, "", Neutral},
		{DecisionStatus, "Implemented", Purple},
		{DecisionStatus, "Rejected", Red},
		{ActivityType, "download", Orange},
		{ActivityType, "Download", Neutral},
		{ActivityStatus, "resolved", Green},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.palette.Style(tt.status), tt.status)
	}
}

func TestPaletteKnown(t *testing.T) {
	assert.True(t, DecisionStatus.Known("Under Review"))
	assert.False(t, DecisionStatus.Known("under review"))

	var empty Palette
	assert.Equal(t, Neutral, empty.Style("anything"))
}
