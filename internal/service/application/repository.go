package application

import (
	"context"
	"time"

	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/domain"
)

// Repository defines the data access contract for loan applications.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Create inserts a new application. Returns ErrDuplicateID when the
	// application identifier collides with an existing row.
	Create(ctx context.Context, a *domain.LoanApplication) error

	// GetByApplicationID returns a single application by its business
	// identifier (already uppercase-normalized). Returns ErrNotFound if it
	// doesn't exist.
	GetByApplicationID(ctx context.Context, applicationID string) (*domain.LoanApplication, error)

	// ExistsByEmailSince reports whether the email has an application
	// submitted at or after since.
	ExistsByEmailSince(ctx context.Context, email string, since time.Time) (bool, error)

	// List returns applications matching the filter, ordered by submitted_at
	// DESC, plus the total match count for pagination.
	List(ctx context.Context, f ListFilter) ([]domain.LoanApplication, int, error)

	// UpdateStatus overwrites status (and notes, when non-nil) and bumps the
	// update timestamp. Returns ErrNotFound if the identifier is absent.
	UpdateStatus(ctx context.Context, applicationID string, status domain.ApplicationStatus, notes *string, updatedAt time.Time) error

	// Counts returns the aggregate counters backing Statistics. recentSince
	// bounds the "recent" counter.
	Counts(ctx context.Context, recentSince time.Time) (*Counts, error)
}

// ListFilter controls pagination and filtering for application lists.
// Page is 1-based; PageSize is clamped by the service.
type ListFilter struct {
	Status   domain.ApplicationStatus
	LoanType domain.LoanType
	Page     int
	PageSize int
}

// Offset returns the SQL offset for the filter.
func (f ListFilter) Offset() int {
	if f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Counts holds raw aggregate counters from the store.
type Counts struct {
	Total    int
	Pending  int
	Approved int
	Recent   int
	ByType   map[string]int
}

// DuplicateWindow is the fast-path duplicate-submission check backed by
// Redis. A nil window degrades the service to database-only checking.
type DuplicateWindow interface {
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}
