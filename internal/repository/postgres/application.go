package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/domain"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/service/application"
)

const uniqueViolation = "23505"

// ApplicationRepo implements application.Repository against PostgreSQL.
type ApplicationRepo struct{ db *sql.DB }

// NewApplicationRepo creates a Postgres-backed loan-application repository.
func NewApplicationRepo(db *sql.DB) *ApplicationRepo { return &ApplicationRepo{db: db} }

const applicationColumns = `id, application_id, first_name, last_name, email, phone,
	       address, city, state, zip_code, date_of_birth, COALESCE(ssn,''),
	       loan_type, loan_amount, loan_purpose, employment_status,
	       COALESCE(employer_name,''), COALESCE(job_title,''), annual_income,
	       additional_income, COALESCE(credit_score,''), total_assets,
	       total_liabilities, housing_payment, contact_method, best_time,
	       status, COALESCE(ip_address,''), COALESCE(notes,''),
	       submitted_at, updated_at`

func scanApplication(row interface{ Scan(...interface{}) error }, a *domain.LoanApplication) error {
	return row.Scan(
		&a.ID, &a.ApplicationID, &a.FirstName, &a.LastName, &a.Email, &a.Phone,
		&a.Address, &a.City, &a.State, &a.ZipCode, &a.DateOfBirth, &a.SSN,
		&a.LoanType, &a.LoanAmount, &a.LoanPurpose, &a.EmploymentStatus,
		&a.EmployerName, &a.JobTitle, &a.AnnualIncome,
		&a.AdditionalIncome, &a.CreditScore, &a.TotalAssets,
		&a.TotalLiabilities, &a.HousingPayment, &a.ContactMethod, &a.BestTime,
		&a.Status, &a.IPAddress, &a.Notes,
		&a.SubmittedAt, &a.UpdatedAt,
	)
}

func (r *ApplicationRepo) Create(ctx context.Context, a *domain.LoanApplication) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO loan_applications
			(id, application_id, first_name, last_name, email, phone,
			 address, city, state, zip_code, date_of_birth, ssn,
			 loan_type, loan_amount, loan_purpose, employment_status,
			 employer_name, job_title, annual_income, additional_income,
			 credit_score, total_assets, total_liabilities, housing_payment,
			 contact_method, best_time, status, ip_address,
			 submitted_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24,
			$25, $26, $27, $28, $29, $30)
	`, a.ID, a.ApplicationID, a.FirstName, a.LastName, a.Email, a.Phone,
		a.Address, a.City, a.State, a.ZipCode, a.DateOfBirth, a.SSN,
		a.LoanType, a.LoanAmount, a.LoanPurpose, a.EmploymentStatus,
		a.EmployerName, a.JobTitle, a.AnnualIncome, a.AdditionalIncome,
		a.CreditScore, a.TotalAssets, a.TotalLiabilities, a.HousingPayment,
		a.ContactMethod, a.BestTime, a.Status, a.IPAddress,
		a.SubmittedAt, a.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return application.ErrDuplicateID
		}
		return fmt.Errorf("create application: %w", err)
	}
	return nil
}

func (r *ApplicationRepo) GetByApplicationID(ctx context.Context, applicationID string) (*domain.LoanApplication, error) {
	a := &domain.LoanApplication{}
	row := r.db.QueryRowContext(ctx, `
		SELECT `+applicationColumns+`
		FROM loan_applications
		WHERE application_id = $1
	`, applicationID)
	err := scanApplication(row, a)
	if err == sql.ErrNoRows {
		return nil, application.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get application: %w", err)
	}
	return a, nil
}

func (r *ApplicationRepo) ExistsByEmailSince(ctx context.Context, email string, since time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM loan_applications
			WHERE email = $1 AND submitted_at >= $2
		)
	`, email, since).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check recent application: %w", err)
	}
	return exists, nil
}

func (r *ApplicationRepo) List(ctx context.Context, f application.ListFilter) ([]domain.LoanApplication, int, error) {
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
	if f.LoanType != "" {
		and("loan_type = $%d", f.LoanType)
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM loan_applications"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count applications: %w", err)
	}

	q := "SELECT " + applicationColumns + " FROM loan_applications" + where +
		fmt.Sprintf(" ORDER BY submitted_at DESC LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, f.PageSize, f.Offset())

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var out []domain.LoanApplication
	for rows.Next() {
		var a domain.LoanApplication
		if err := scanApplication(rows, &a); err != nil {
			return nil, 0, fmt.Errorf("scan application: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list applications: %w", err)
	}
	return out, total, nil
}

func (r *ApplicationRepo) UpdateStatus(ctx context.Context, applicationID string, status domain.ApplicationStatus, notes *string, updatedAt time.Time) error {
	q := `UPDATE loan_applications SET status = $1, updated_at = $2`
	args := []interface{}{status, updatedAt}
	idx := 3
	if notes != nil {
		q += fmt.Sprintf(", notes = $%d", idx)
		args = append(args, *notes)
		idx++
	}
	q += fmt.Sprintf(" WHERE application_id = $%d", idx)
	args = append(args, applicationID)

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return application.ErrNotFound
	}
	return nil
}

func (r *ApplicationRepo) Counts(ctx context.Context, recentSince time.Time) (*application.Counts, error) {
	c := &application.Counts{ByType: map[string]int{}}

	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'submitted'),
		       COUNT(*) FILTER (WHERE status = 'approved'),
		       COUNT(*) FILTER (WHERE submitted_at >= $1)
		FROM loan_applications
	`, recentSince).Scan(&c.Total, &c.Pending, &c.Approved, &c.Recent)
	if err != nil {
		return nil, fmt.Errorf("count applications: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT loan_type, COUNT(*) FROM loan_applications GROUP BY loan_type
	`)
	if err != nil {
		return nil, fmt.Errorf("count applications by type: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t string
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			return nil, fmt.Errorf("scan type count: %w", err)
		}
		c.ByType[t] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count applications by type: %w", err)
	}
	return c, nil
}
