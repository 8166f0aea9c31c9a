package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`                                                  // Unique identifier for the user
	Email       string     `json:"email" db:"email" example:"admin@techu.edu"`                              // User's email address (unique)
	Password    string     `json:"-" db:"password"`                                                         // User's hashed password (excluded from JSON)
	FullName    string     `json:"fullName" db:"full_name" example:"Priya Sharma"`                          // User's full name
	Phone       string     `json:"phone" db:"phone" example:"+919876543210"`                                // Contact phone number
	RoleType    RoleType   `json:"roleType" db:"role_type" example:"ADMIN"`                                 // User's role
	CollegeID   *int64     `json:"collegeId,omitempty" db:"college_id"`                                     // College the user is scoped to (Admin/Company); nil for Developer
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`                                  // Accounts are deactivated, never hard-deleted
	CreatedAt   time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`                // Timestamp when the user was created
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"`                // Timestamp when the user was last updated
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at" example:"2024-04-20T18:00:00Z"` // Timestamp of the last login (nullable)
}
