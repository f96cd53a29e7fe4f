package contact

import (
	"context"
	"time"

	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/domain"
)

// Repository defines the data access contract for contact messages.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Create inserts a new message. Returns ErrDuplicateID when the message
	// identifier collides with an existing row.
	Create(ctx context.Context, m *domain.ContactMessage) error

	// GetByMessageID returns a single message by its business identifier
	// (already uppercase-normalized). Returns ErrNotFound if it doesn't
	// exist.
	GetByMessageID(ctx context.Context, messageID string) (*domain.ContactMessage, error)

	// ExistsByEmailMessageSince reports whether the same email submitted the
	// same message body at or after since.
	ExistsByEmailMessageSince(ctx context.Context, email, message string, since time.Time) (bool, error)

	// List returns messages matching the filter, ordered by submitted_at
	// DESC, plus the total match count for pagination.
	List(ctx context.Context, f ListFilter) ([]domain.ContactMessage, int, error)

	// UpdateStatus overwrites status (and admin notes, when non-nil), bumps
	// the update timestamp, and stamps repliedAt on the first transition to
	// replied. Returns ErrNotFound if the identifier is absent.
	UpdateStatus(ctx context.Context, messageID string, status domain.MessageStatus, adminNotes *string, repliedAt *time.Time, updatedAt time.Time) error

	// Counts returns the aggregate counters backing Statistics. recentSince
	// bounds the "recent" counter.
	Counts(ctx context.Context, recentSince time.Time) (*Counts, error)
}

// ListFilter controls pagination and filtering for message lists. Page is
// 1-based; PageSize is clamped by the service.
type ListFilter struct {
	Status   domain.MessageStatus
	Subject  domain.MessageSubject
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
	Total     int
	New       int
	Recent    int
	BySubject map[string]int
}

// DuplicateWindow is the fast-path duplicate-submission check backed by
// Redis. A nil window degrades the service to database-only checking.
type DuplicateWindow interface {
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}
