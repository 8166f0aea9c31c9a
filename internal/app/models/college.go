package models

import "time"

// College defines the college model based on the 'colleges' table.
// At most one SuperAdmin owns a college at a time; a college may exist
// with no SuperAdmin assigned yet.
type College struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Address      string    `json:"address" db:"address"`
	ContactEmail string    `json:"contactEmail" db:"contact_email"`
	ContactPhone string    `json:"contactPhone" db:"contact_phone"`
	Website      *string   `json:"website,omitempty" db:"website"`
	SuperAdminID *int64    `json:"superAdminId,omitempty" db:"superadmin_id"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`

	// Relation, populated on listing
	SuperAdminName *string `json:"superAdminName,omitempty"`
}
