package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/domain"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/service/contact"
)

// ContactRepo implements contact.Repository against PostgreSQL.
type ContactRepo struct{ db *sql.DB }

// NewContactRepo creates a Postgres-backed contact-message repository.
func NewContactRepo(db *sql.DB) *ContactRepo { return &ContactRepo{db: db} }

const messageColumns = `id, message_id, name, email, COALESCE(phone,''), subject,
	       message, contact_method, status, COALESCE(ip_address,''),
	       COALESCE(admin_notes,''), submitted_at, updated_at, replied_at`

func scanMessage(row interface{ Scan(...interface{}) error }, m *domain.ContactMessage) error {
	var repliedAt sql.NullTime
	err := row.Scan(
		&m.ID, &m.MessageID, &m.Name, &m.Email, &m.Phone, &m.Subject,
		&m.Message, &m.ContactMethod, &m.Status, &m.IPAddress,
		&m.AdminNotes, &m.SubmittedAt, &m.UpdatedAt, &repliedAt,
	)
	if repliedAt.Valid {
		t := repliedAt.Time
		m.RepliedAt = &t
	}
	return err
}

func (r *ContactRepo) Create(ctx context.Context, m *domain.ContactMessage) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO contact_messages
			(id, message_id, name, email, phone, subject, message,
			 contact_method, status, ip_address, submitted_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, m.ID, m.MessageID, m.Name, m.Email, m.Phone, m.Subject, m.Message,
		m.ContactMethod, m.Status, m.IPAddress, m.SubmittedAt, m.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return contact.ErrDuplicateID
		}
		return fmt.Errorf("create contact message: %w", err)
	}
	return nil
}

func (r *ContactRepo) GetByMessageID(ctx context.Context, messageID string) (*domain.ContactMessage, error) {
	m := &domain.ContactMessage{}
	row := r.db.QueryRowContext(ctx, `
		SELECT `+messageColumns+`
		FROM contact_messages
		WHERE message_id = $1
	`, messageID)
	err := scanMessage(row, m)
	if err == sql.ErrNoRows {
		return nil, contact.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get contact message: %w", err)
	}
	return m, nil
}

func (r *ContactRepo) ExistsByEmailMessageSince(ctx context.Context, email, message string, since time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM contact_messages
			WHERE email = $1 AND message = $2 AND submitted_at >= $3
		)
	`, email, message, since).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check recent message: %w", err)
	}
	return exists, nil
}

func (r *ContactRepo) List(ctx context.Context, f contact.ListFilter) ([]domain.ContactMessage, int, error) {
	where := ""
	args := []interface{}{}
	idx := 1
	and := func(cond string, val interface{}) {
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		where += fmt.Sprintf(cond, idx)
		args = append(args, val)
		idx++
	}

	if f.Status != "" {
		and("status = $%d", f.Status)
	}
	if f.Subject != "" {
		and("subject = $%d", f.Subject)
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM contact_messages"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count contact messages: %w", err)
	}

	q := "SELECT " + messageColumns + " FROM contact_messages" + where +
		fmt.Sprintf(" ORDER BY submitted_at DESC LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, f.PageSize, f.Offset())

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	var out []domain.ContactMessage
	for rows.Next() {
		var m domain.ContactMessage
		if err := scanMessage(rows, &m); err != nil {
			return nil, 0, fmt.Errorf("scan contact message: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list contact messages: %w", err)
	}
	return out, total, nil
}

func (r *ContactRepo) UpdateStatus(ctx context.Context, messageID string, status domain.MessageStatus, adminNotes *string, repliedAt *time.Time, updatedAt time.Time) error {
	q := `UPDATE contact_messages SET status = $1, updated_at = $2`
	args := []interface{}{status, updatedAt}
	idx := 3
	if adminNotes != nil {
		q += fmt.Sprintf(", admin_notes = $%d", idx)
		args = append(args, *adminNotes)
		idx++
	}
	if repliedAt != nil {
		q += fmt.Sprintf(", replied_at = $%d", idx)
		args = append(args, *repliedAt)
		idx++
	}
	q += fmt.Sprintf(" WHERE message_id = $%d", idx)
	args = append(args, messageID)

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("update message status: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return contact.ErrNotFound
	}
	return nil
}

func (r *ContactRepo) Counts(ctx context.Context, recentSince time.Time) (*contact.Counts, error) {
	c := &contact.Counts{BySubject: map[string]int{}}

	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'new'),
		       COUNT(*) FILTER (WHERE submitted_at >= $1)
		FROM contact_messages
	`, recentSince).Scan(&c.Total, &c.New, &c.Recent)
	if err != nil {
		return nil, fmt.Errorf("count contact messages: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT subject, COUNT(*) FROM contact_messages GROUP BY subject
	`)
	if err != nil {
		return nil, fmt.Errorf("count messages by subject: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s string
		var n int
		if err := rows.Scan(&s, &n); err != nil {
			return nil, fmt.Errorf("scan subject count: %w", err)
		}
		c.BySubject[s] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count messages by subject: %w", err)
	}
	return c, nil
}
