package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    ApplicationStatus
		to      ApplicationStatus
		allowed bool
	}{
		{"applied to shortlisted", StatusApplied, StatusShortlisted, true},
		{"shortlisted to interview", StatusShortlisted, StatusInterviewScheduled, true},
		{"shortlisted to rejected directly", StatusShortlisted, StatusRejected, true},
		{"interview to selected", StatusInterviewScheduled, StatusSelected, true},
		{"interview to rejected", StatusInterviewScheduled, StatusRejected, true},

		{"applied to selected skips shortlist", StatusApplied, StatusSelected, false},
		{"applied to rejected skips shortlist", StatusApplied, StatusRejected, false},
		{"applied to interview skips shortlist", StatusApplied, StatusInterviewScheduled, false},
		{"shortlisted to selected skips interview", StatusShortlisted, StatusSelected, false},
		{"no reverse from shortlisted", StatusShortlisted, StatusApplied, false},
		{"no reverse from interview", StatusInterviewScheduled, StatusShortlisted, false},
		{"selected is terminal", StatusSelected, StatusRejected, false},
		{"rejected is terminal", StatusRejected, StatusShortlisted, false},
		{"repeat is rejected, not a no-op", StatusShortlisted, StatusShortlisted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusSelected.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.False(t, StatusApplied.IsTerminal())
	assert.False(t, StatusShortlisted.IsTerminal())
	assert.False(t, StatusInterviewScheduled.IsTerminal())
}

func TestFinalResultDerivedFromStatus(t *testing.T) {
	app := &Application{Status: StatusApplied}
	assert.Nil(t, app.FinalResult())

	app.Status = StatusShortlisted
	assert.Nil(t, app.FinalResult())

	app.Status = StatusInterviewScheduled
	assert.Nil(t, app.FinalResult())

	app.Status = StatusSelected
	if assert.NotNil(t, app.FinalResult()) {
		assert.Equal(t, StatusSelected, *app.FinalResult())
	}

	app.Status = StatusRejected
	if assert.NotNil(t, app.FinalResult()) {
		assert.Equal(t, StatusRejected, *app.FinalResult())
	}
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusApplied))
	assert.False(t, ValidStatus(ApplicationStatus("WAITLISTED")))
}
