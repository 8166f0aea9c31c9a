package dto

import "time"

// ApplyRequest represents a student's application to a job posting
type ApplyRequest struct {
	JobID int64 `json:"job_id" binding:"required,min=1"`
}

// ScheduleInterviewRequest represents a request to schedule an interview round
type ScheduleInterviewRequest struct {
	ApplicationID int64  `json:"application_id" binding:"required,min=1"`
	ScheduledAt   string `json:"when" binding:"required"` // RFC 3339
	Mode          string `json:"mode" binding:"required,oneof=ONLINE OFFLINE PHONE"`
}

// RecordResultRequest represents a request to record an application's final outcome
type RecordResultRequest struct {
	ApplicationID int64  `json:"application_id" binding:"required,min=1"`
	Result        string `json:"result" binding:"required,oneof=SELECTED REJECTED"`
}

// ApplicationData represents an application row with its derived final result
type ApplicationData struct {
	ID          int64     `json:"id"`
	StudentID   int64     `json:"studentId"`
	JobID       int64     `json:"jobId"`
	Status      string    `json:"status"`
	FinalResult *string   `json:"finalResult,omitempty"`
	AppliedAt   time.Time `json:"appliedAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// InterviewData represents an interview round for listings
type InterviewData struct {
	ID            int64     `json:"id"`
	ApplicationID int64     `json:"applicationId"`
	ScheduledAt   time.Time `json:"scheduledAt"`
	Mode          string    `json:"mode"`
	Status        string    `json:"status"`
}
