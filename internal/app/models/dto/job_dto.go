package dto

import "time"

// CreateJobPostingRequest represents a request to publish a job posting
type CreateJobPostingRequest struct {
	Title               string `json:"title" binding:"required,min=2,max=200"`
	Description         string `json:"description" binding:"required"`
	Type                string `json:"type" binding:"required"`
	Location            string `json:"location" binding:"required"`
	SalaryMin           *int64 `json:"salaryMin"`
	SalaryMax           *int64 `json:"salaryMax"`
	ExperienceRequired  string `json:"experienceRequired"`
	ApplicationDeadline string `json:"applicationDeadline" binding:"required"` // YYYY-MM-DD
}

// JobPostingData represents a job posting row for listings
type JobPostingData struct {
	ID                  int64     `json:"id"`
	CollegeID           int64     `json:"collegeId"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	Type                string    `json:"type"`
	Location            string    `json:"location"`
	SalaryMin           *int64    `json:"salaryMin,omitempty"`
	SalaryMax           *int64    `json:"salaryMax,omitempty"`
	ExperienceRequired  *string   `json:"experienceRequired,omitempty"`
	IsActive            bool      `json:"isActive"`
	ApplicationDeadline time.Time `json:"applicationDeadline"`
	CreatedAt           time.Time `json:"createdAt"`
}
