package models

import "time"

// ApplicationStatus is the single source of truth for an application's
// position in the placement lifecycle. The final result is derived from it,
// never stored alongside it.
type ApplicationStatus string

const (
	StatusApplied            ApplicationStatus = "APPLIED"
	StatusShortlisted        ApplicationStatus = "SHORTLISTED"
	StatusInterviewScheduled ApplicationStatus = "INTERVIEW_SCHEDULED"
	StatusSelected           ApplicationStatus = "SELECTED"
	StatusRejected           ApplicationStatus = "REJECTED"
)

// transitions lists the permitted next states for each status. Reaching
// Selected or Rejected directly from Applied is not permitted: every
// application passes through Shortlisted first.
var transitions = map[ApplicationStatus][]ApplicationStatus{
	StatusApplied:            {StatusShortlisted},
	StatusShortlisted:        {StatusInterviewScheduled, StatusRejected},
	StatusInterviewScheduled: {StatusSelected, StatusRejected},
	StatusSelected:           {},
	StatusRejected:           {},
}

// ValidStatus reports whether the value is a known application status
func ValidStatus(s ApplicationStatus) bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether moving from one status to another is a
// permitted lifecycle step. Re-entering the current status is not permitted:
// duplicate staff actions must surface as errors, not silent no-ops.
func CanTransition(from, to ApplicationStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are permitted
func (s ApplicationStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// Application defines the application model based on the 'applications' table.
// At most one application exists per (student, job) pair.
type Application struct {
	ID        int64             `json:"id" db:"id"`
	StudentID int64             `json:"studentId" db:"student_id"`
	JobID     int64             `json:"jobId" db:"job_id"`
	Status    ApplicationStatus `json:"status" db:"status"`
	AppliedAt time.Time         `json:"appliedAt" db:"applied_at"`
	UpdatedAt time.Time         `json:"updatedAt" db:"updated_at"`
}

// FinalResult derives the recorded outcome from the status. It is nil until
// the application reaches a terminal state, and by construction can never
// disagree with Status.
func (a *Application) FinalResult() *ApplicationStatus {
	if a.Status == StatusSelected || a.Status == StatusRejected {
		s := a.Status
		return &s
	}
	return nil
}

// ApplicationWithJob is an application joined with its job posting,
// as returned to students and staff in listings.
type ApplicationWithJob struct {
	Application
	JobTitle    string    `json:"jobTitle" db:"title"`
	JobType     string    `json:"jobType" db:"type"`
	JobLocation string    `json:"jobLocation" db:"location"`
	JobDeadline time.Time `json:"jobDeadline" db:"application_deadline"`
}

// ApplicationWithStudent is an application joined with the applicant's
// details, as returned when staff review a posting's applicants.
type ApplicationWithStudent struct {
	Application
	StudentName  string  `json:"studentName" db:"full_name"`
	StudentEmail string  `json:"studentEmail" db:"email"`
	RollNo       string  `json:"rollNo" db:"roll_no"`
	Department   string  `json:"department" db:"department"`
	CGPA         float64 `json:"cgpa" db:"cgpa"`
}
