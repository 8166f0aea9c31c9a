package dto

import "time"

// AddCollegeRequest represents a request to register a new college
type AddCollegeRequest struct {
	CollegeName  string `json:"college_name" binding:"required,min=2,max=200"`
	Address      string `json:"address" binding:"required"`
	ContactEmail string `json:"contact_email" binding:"required,email"`
	ContactPhone string `json:"contact_phone" binding:"required"`
	Website      string `json:"website"`
}

// AddCollegeResponse carries the identifier of the created college
type AddCollegeResponse struct {
	CollegeID int64 `json:"college_id"`
}

// AddSuperAdminRequest represents a request to create a SuperAdmin for a college
type AddSuperAdminRequest struct {
	FullName  string `json:"full_name" binding:"required,min=2,max=100"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
	Password  string `json:"password" binding:"required,min=6"`
	CollegeID int64  `json:"college_id" binding:"required,min=1"`
}

// AddSuperAdminResponse carries the identifier of the created user
type AddSuperAdminResponse struct {
	UserID int64 `json:"user_id"`
}

// CollegeData represents a college row for listings
type CollegeData struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	ContactEmail   string    `json:"contactEmail"`
	ContactPhone   string    `json:"contactPhone"`
	Website        *string   `json:"website,omitempty"`
	SuperAdminID   *int64    `json:"superAdminId,omitempty"`
	SuperAdminName *string   `json:"superAdminName,omitempty"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
}
