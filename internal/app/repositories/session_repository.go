package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emrekoc/campushire/internal/app/models"
	"github.com/emrekoc/campushire/internal/pkg/apperrors"
	"github.com/emrekoc/campushire/internal/pkg/logger"
)

// SessionRepository handles session database operations
type SessionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new session row for a login
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	sql, args, err := r.sb.Insert("sessions").
		Columns("id", "user_id", "is_revoked", "expires_at", "last_seen_at", "created_at").
		Values(session.ID, session.UserID, false, session.ExpiresAt, session.LastSeenAt, session.CreatedAt).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create session SQL")
		return fmt.Errorf("failed to build create session query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", session.UserID).Msg("Error executing create session query")
		return wrapInfraError("creating session", err)
	}

	return nil
}

// Get retrieves a session by ID
func (r *SessionRepository) Get(ctx context.Context, id string) (*models.Session, error) {
	sql, args, err := r.sb.Select("id", "user_id", "is_revoked", "expires_at", "last_seen_at", "created_at").
		From("sessions").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get session SQL")
		return nil, fmt.Errorf("failed to build get session query: %w", err)
	}

	session := &models.Session{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&session.ID, &session.UserID, &session.IsRevoked,
		&session.ExpiresAt, &session.LastSeenAt, &session.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSessionNotFound
		}
		logger.Error().Err(err).Str("sessionID", id).Msg("Error scanning session row")
		return nil, wrapInfraError("retrieving session", err)
	}

	return session, nil
}

// Touch records activity on a session, resetting the idle window
func (r *SessionRepository) Touch(ctx context.Context, id string, seenAt time.Time) error {
	sql, args, err := r.sb.Update("sessions").
		Set("last_seen_at", seenAt).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building touch session SQL")
		return fmt.Errorf("failed to build touch session query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("sessionID", id).Msg("Error touching session")
		return wrapInfraError("touching session", err)
	}

	return nil
}

// Revoke marks a single session revoked. Revoking an already revoked or
// missing session is not an error.
func (r *SessionRepository) Revoke(ctx context.Context, id string) error {
	sql, args, err := r.sb.Update("sessions").
		Set("is_revoked", true).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building revoke session SQL")
		return fmt.Errorf("failed to build revoke session query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("sessionID", id).Msg("Error revoking session")
		return wrapInfraError("revoking session", err)
	}

	return nil
}

// RevokeAllUserSessions revokes every live session of a user, used when an
// account is deactivated
func (r *SessionRepository) RevokeAllUserSessions(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Update("sessions").
		Set("is_revoked", true).
		Where(squirrel.Eq{"user_id": userID, "is_revoked": false}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building revoke user sessions SQL")
		return fmt.Errorf("failed to build revoke user sessions query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error revoking user sessions")
		return wrapInfraError("revoking user sessions", err)
	}

	return nil
}

// CleanupExpired deletes sessions past their absolute expiry. Meant for a
// periodic maintenance call, not the request path.
func (r *SessionRepository) CleanupExpired(ctx context.Context, now time.Time) (int64, error) {
	sql, args, err := r.sb.Delete("sessions").
		Where(squirrel.Lt{"expires_at": now}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building cleanup sessions SQL")
		return 0, fmt.Errorf("failed to build cleanup sessions query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error cleaning up expired sessions")
		return 0, wrapInfraError("cleaning up expired sessions", err)
	}

	return cmdTag.RowsAffected(), nil
}
