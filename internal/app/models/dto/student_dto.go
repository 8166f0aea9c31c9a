package dto

// UpdateStudentProfileRequest represents a student's profile update.
// Scope fields (college, roll number) are staff-managed and not included.
type UpdateStudentProfileRequest struct {
	Department  string  `json:"department" binding:"required"`
	Course      string  `json:"course" binding:"required"`
	PassingYear int     `json:"passingYear" binding:"required,min=2000,max=2100"`
	CGPA        float64 `json:"cgpa" binding:"required,min=0,max=10"`
	Links       *string `json:"links"`
	Skills      *string `json:"skills"`
}

// StudentData represents a student row for staff listings and profile reads
type StudentData struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"userId"`
	CollegeID   int64   `json:"collegeId"`
	FullName    string  `json:"fullName"`
	Email       string  `json:"email"`
	RollNo      string  `json:"rollNo"`
	Department  string  `json:"department"`
	Course      string  `json:"course"`
	PassingYear int     `json:"passingYear"`
	CGPA        float64 `json:"cgpa"`
	Links       *string `json:"links,omitempty"`
	Skills      *string `json:"skills,omitempty"`
	ResumePath  *string `json:"resumePath,omitempty"`
}
