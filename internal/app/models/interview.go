package models

import "time"

// InterviewStatus tracks the state of a single interview round. Completing or
// cancelling a round never moves the owning application by itself.
type InterviewStatus string

const (
	InterviewScheduled InterviewStatus = "SCHEDULED"
	InterviewCompleted InterviewStatus = "COMPLETED"
	InterviewCancelled InterviewStatus = "CANCELLED"
)

// InterviewMode is how the interview is conducted
type InterviewMode string

const (
	ModeOnline  InterviewMode = "ONLINE"
	ModeOffline InterviewMode = "OFFLINE"
	ModePhone   InterviewMode = "PHONE"
)

// ValidInterviewMode reports whether the value is a known interview mode
func ValidInterviewMode(m InterviewMode) bool {
	switch m {
	case ModeOnline, ModeOffline, ModePhone:
		return true
	}
	return false
}

// InterviewSchedule defines an interview round for an application, based on
// the 'interview_schedules' table. An application may have several rounds.
type InterviewSchedule struct {
	ID            int64           `json:"id" db:"id"`
	ApplicationID int64           `json:"applicationId" db:"application_id"`
	ScheduledAt   time.Time       `json:"scheduledAt" db:"scheduled_at"`
	Mode          InterviewMode   `json:"mode" db:"mode"`
	Status        InterviewStatus `json:"status" db:"status"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
}
