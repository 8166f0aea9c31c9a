package models

// Student defines the student model based on the 'students' table
type Student struct {
	ID          int64   `json:"id" db:"id" example:"1"`
	UserID      int64   `json:"userId" db:"user_id" example:"5"`
	CollegeID   int64   `json:"collegeId" db:"college_id" example:"2"`
	RollNo      string  `json:"rollNo" db:"roll_no" example:"CS2021042"`
	Department  string  `json:"department" db:"department" example:"Computer Science"`
	Course      string  `json:"course" db:"course" example:"B.Tech"`
	PassingYear int     `json:"passingYear" db:"passing_year" example:"2025"`
	CGPA        float64 `json:"cgpa" db:"cgpa" example:"8.4"`
	Links       *string `json:"links,omitempty" db:"links"`
	Skills      *string `json:"skills,omitempty" db:"skills"`
	ResumePath  *string `json:"resumePath,omitempty" db:"resume_path"`

	// Relations (populated when needed)
	User *User `json:"user,omitempty"`
}
