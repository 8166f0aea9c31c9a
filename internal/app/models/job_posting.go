package models

import "time"

// JobPosting defines the job posting model based on the 'job_postings' table.
// A posting is visible to a student only when it belongs to the student's
// college, is active, and the deadline has not passed.
type JobPosting struct {
	ID                  int64     `json:"id" db:"id"`
	CollegeID           int64     `json:"collegeId" db:"college_id"`
	Title               string    `json:"title" db:"title"`
	Description         string    `json:"description" db:"description"`
	Type                string    `json:"type" db:"type"`
	Location            string    `json:"location" db:"location"`
	SalaryMin           *int64    `json:"salaryMin,omitempty" db:"salary_min"`
	SalaryMax           *int64    `json:"salaryMax,omitempty" db:"salary_max"`
	ExperienceRequired  *string   `json:"experienceRequired,omitempty" db:"experience_required"`
	IsActive            bool      `json:"isActive" db:"is_active"`
	ApplicationDeadline time.Time `json:"applicationDeadline" db:"application_deadline"`
	CreatedAt           time.Time `json:"createdAt" db:"created_at"`
}

// IsOpen reports whether the posting accepts applications at the given instant
func (j *JobPosting) IsOpen(now time.Time) bool {
	if !j.IsActive {
		return false
	}
	// Deadline is inclusive: applications close at the end of the deadline day.
	deadline := j.ApplicationDeadline
	endOfDay := time.Date(deadline.Year(), deadline.Month(), deadline.Day(), 23, 59, 59, 0, deadline.Location())
	return !now.After(endOfDay)
}
