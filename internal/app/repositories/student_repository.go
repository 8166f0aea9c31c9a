package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emrekoc/campushire/internal/app/models"
	"github.com/emrekoc/campushire/internal/pkg/apperrors"
)

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentColumns = `id, user_id, college_id, roll_no, department, course, passing_year, cgpa, links, skills, resume_path`

func scanStudent(row pgx.Row) (*models.Student, error) {
	student := &models.Student{}
	err := row.Scan(
		&student.ID, &student.UserID, &student.CollegeID, &student.RollNo,
		&student.Department, &student.Course, &student.PassingYear, &student.CGPA,
		&student.Links, &student.Skills, &student.ResumePath)
	if err != nil {
		return nil, err
	}
	return student, nil
}

// GetByUserID retrieves a student by the owning user account
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	row := r.db.QueryRow(ctx, `SELECT `+studentColumns+` FROM students WHERE user_id = $1`, userID)
	student, err := scanStudent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, wrapInfraError("retrieving student", err)
	}
	return student, nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	row := r.db.QueryRow(ctx, `SELECT `+studentColumns+` FROM students WHERE id = $1`, id)
	student, err := scanStudent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, wrapInfraError("retrieving student", err)
	}
	return student, nil
}

// UpdateProfile updates the student-editable profile fields
func (r *StudentRepository) UpdateProfile(ctx context.Context, student *models.Student) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE students
		SET department = $1, course = $2, passing_year = $3, cgpa = $4, links = $5, skills = $6
		WHERE id = $7`,
		student.Department, student.Course, student.PassingYear, student.CGPA,
		student.Links, student.Skills, student.ID)
	if err != nil {
		return wrapInfraError("updating student profile", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// ListByCollege retrieves all students of a college with their account details
func (r *StudentRepository) ListByCollege(ctx context.Context, collegeID int64) ([]*models.Student, error) {
	query := `
		SELECT s.id, s.user_id, s.college_id, s.roll_no, s.department, s.course,
		       s.passing_year, s.cgpa, s.links, s.skills, s.resume_path,
		       u.full_name, u.email
		FROM students s
		JOIN users u ON s.user_id = u.id
		WHERE s.college_id = $1 AND u.is_active
		ORDER BY s.roll_no
	`

	rows, err := r.db.Query(ctx, query, collegeID)
	if err != nil {
		return nil, wrapInfraError("listing students", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student := &models.Student{User: &models.User{}}
		if err := rows.Scan(
			&student.ID, &student.UserID, &student.CollegeID, &student.RollNo,
			&student.Department, &student.Course, &student.PassingYear, &student.CGPA,
			&student.Links, &student.Skills, &student.ResumePath,
			&student.User.FullName, &student.User.Email,
		); err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}
