package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCanAdvanceTo(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{"pending to in_progress", PendingStatus, InProgressStatus, true},
		{"pending to cancelled", PendingStatus, CancelledStatus, true},
		{"pending skips to completed", PendingStatus, CompletedStatus, false},
		{"in_progress to completed", InProgressStatus, CompletedStatus, true},
		{"in_progress to cancelled", InProgressStatus, CancelledStatus, true},
		{"in_progress back to pending", InProgressStatus, PendingStatus, false},
		{"completed is terminal", CompletedStatus, InProgressStatus, false},
		{"cancelled is terminal", CancelledStatus, PendingStatus, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanAdvanceTo(tt.to))
		})
	}
}

func TestContactEmpty(t *testing.T) {
	assert.True(t, Contact{}.Empty())
	assert.False(t, Contact{Phone: "11999999999"}.Empty())
	assert.False(t, Contact{Instagram: "@maria"}.Empty())
}

func TestValidTimeline(t *testing.T) {
	assert.True(t, ValidTimeline(UrgentTimeline))
	assert.True(t, ValidTimeline(""))
	assert.False(t, ValidTimeline("someday"))
}
