// Package seed creates the data the platform cannot run without.
package seed

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/emrekoc/campushire/internal/app/models"
	pkgauth "github.com/emrekoc/campushire/internal/pkg/auth"
)

const defaultDeveloperEmail = "developer@campushire.app"

// CreateDefaultData seeds the bootstrap Developer account. Colleges and
// their SuperAdmins are created through the API by this account; nothing
// else is seeded.
func CreateDefaultData(db *pgxpool.Pool, lgr zerolog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var exists bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE role_type = $1)`, models.RoleDeveloper).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check for developer account: %w", err)
	}
	if exists {
		return nil
	}

	password := os.Getenv("DEVELOPER_PASSWORD")
	if password == "" {
		// First boot on a fresh database needs a way in.
		password = "changeme"
		lgr.Warn().Msg("DEVELOPER_PASSWORD not set, seeding developer account with default password")
	}

	hashed, err := pkgauth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash developer password: %w", err)
	}

	_, err = db.Exec(ctx, `
		INSERT INTO users (email, password, full_name, role_type, is_active)
		VALUES ($1, $2, $3, $4, TRUE)`,
		defaultDeveloperEmail, hashed, "Platform Developer", models.RoleDeveloper)
	if err != nil {
		return fmt.Errorf("failed to seed developer account: %w", err)
	}

	lgr.Info().Str("email", defaultDeveloperEmail).Msg("Developer account seeded")
	return nil
}
