package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emrekoc/campushire/internal/app/models"
	"github.com/emrekoc/campushire/internal/pkg/apperrors"
	"github.com/emrekoc/campushire/internal/pkg/dberrors"
)

// CollegeRepository handles database operations for colleges
type CollegeRepository struct {
	db *pgxpool.Pool
}

// NewCollegeRepository creates a new college repository
func NewCollegeRepository(db *pgxpool.Pool) *CollegeRepository {
	return &CollegeRepository{db: db}
}

// Create creates a new college
func (r *CollegeRepository) Create(ctx context.Context, college *models.College) error {
	query := `
		INSERT INTO colleges (name, address, contact_email, contact_phone, website)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_active, created_at
	`

	err := r.db.QueryRow(ctx, query,
		college.Name, college.Address, college.ContactEmail, college.ContactPhone, college.Website).
		Scan(&college.ID, &college.IsActive, &college.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCollegeAlreadyExists
		}
		return wrapInfraError("creating college", err)
	}

	return nil
}

// GetByID retrieves a college by ID
func (r *CollegeRepository) GetByID(ctx context.Context, id int64) (*models.College, error) {
	query := `
		SELECT id, name, address, contact_email, contact_phone, website, superadmin_id, is_active, created_at
		FROM colleges
		WHERE id = $1
	`

	var college models.College
	err := r.db.QueryRow(ctx, query, id).Scan(
		&college.ID, &college.Name, &college.Address, &college.ContactEmail,
		&college.ContactPhone, &college.Website, &college.SuperAdminID,
		&college.IsActive, &college.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCollegeNotFound
		}
		return nil, wrapInfraError("retrieving college", err)
	}

	return &college, nil
}

// ExistsByNameOrEmail checks whether a college already uses the name or contact email
func (r *CollegeRepository) ExistsByNameOrEmail(ctx context.Context, name, contactEmail string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM colleges WHERE name = $1 OR contact_email = $2)`,
		name, contactEmail).Scan(&exists)
	if err != nil {
		return false, wrapInfraError("checking college", err)
	}
	return exists, nil
}

// ListWithSuperAdmin retrieves all colleges joined with their SuperAdmin's
// name, newest first.
func (r *CollegeRepository) ListWithSuperAdmin(ctx context.Context) ([]*models.College, error) {
	query := `
		SELECT c.id, c.name, c.address, c.contact_email, c.contact_phone, c.website,
		       c.superadmin_id, c.is_active, c.created_at, u.full_name
		FROM colleges c
		LEFT JOIN users u ON c.superadmin_id = u.id
		ORDER BY c.created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, wrapInfraError("listing colleges", err)
	}
	defer rows.Close()

	var colleges []*models.College
	for rows.Next() {
		var college models.College
		if err := rows.Scan(
			&college.ID, &college.Name, &college.Address, &college.ContactEmail,
			&college.ContactPhone, &college.Website, &college.SuperAdminID,
			&college.IsActive, &college.CreatedAt, &college.SuperAdminName,
		); err != nil {
			return nil, err
		}
		colleges = append(colleges, &college)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return colleges, nil
}

// AssignSuperAdminTx links a SuperAdmin user to a college inside an existing
// transaction. Part of the atomic SuperAdmin creation: the user insert and
// the college update commit together or not at all.
func (r *CollegeRepository) AssignSuperAdminTx(ctx context.Context, tx pgx.Tx, collegeID, userID int64) error {
	cmdTag, err := tx.Exec(ctx, `UPDATE colleges SET superadmin_id = $1 WHERE id = $2`, userID, collegeID)
	if err != nil {
		return wrapInfraError("assigning superadmin", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCollegeNotFound
	}
	return nil
}
