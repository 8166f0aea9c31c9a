package repositories

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emrekoc/campushire/internal/pkg/apperrors"
	"github.com/emrekoc/campushire/internal/pkg/dberrors"
)

// wrapInfraError classifies an unexpected database failure. Retryable
// problems (timeouts, deadlocks, lost connections) are tagged ErrTransient so
// the API layer can answer 503 with Retry-After; everything else keeps its
// chain for the generic 500 path. Reads and writes go through the same
// classification.
func wrapInfraError(op string, err error) error {
	if dberrors.IsTransientError(err) {
		return fmt.Errorf("%w: %s: %v", apperrors.ErrTransient, op, err)
	}
	return fmt.Errorf("error %s: %w", op, err)
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository        *UserRepository
	CollegeRepository     *CollegeRepository
	StudentRepository     *StudentRepository
	JobRepository         *JobRepository
	ApplicationRepository *ApplicationRepository
	InterviewRepository   *InterviewRepository
	SessionRepository     *SessionRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db),
		CollegeRepository:     NewCollegeRepository(db),
		StudentRepository:     NewStudentRepository(db),
		JobRepository:         NewJobRepository(db),
		ApplicationRepository: NewApplicationRepository(db),
		InterviewRepository:   NewInterviewRepository(db),
		SessionRepository:     NewSessionRepository(db),
	}
}
