package application

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/apperr"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/dedupe"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/domain"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/eligibility"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/idgen"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/pkg/logger"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/validate"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Service implements the loan-application business logic. All public methods
// are safe for concurrent use if the underlying repository is
// concurrency-safe.
type Service struct {
	repo   Repository
	window DuplicateWindow // nil → database-only duplicate checks
	log    *zap.Logger
}

// NewService creates an application service backed by the given repository.
// window may be nil.
func NewService(repo Repository, window DuplicateWindow, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, window: window, log: log}
}

// SubmitInput carries the raw application payload. Enum-typed fields arrive
// as strings and are validated before conversion.
type SubmitInput struct {
	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone"`
	Address          string  `json:"address"`
	City             string  `json:"city"`
	State            string  `json:"state"`
	ZipCode          string  `json:"zipCode"`
	DateOfBirth      string  `json:"dateOfBirth"`
	SSN              string  `json:"ssn"`
	LoanType         string  `json:"loanType"`
	LoanAmount       float64 `json:"loanAmount"`
	LoanPurpose      string  `json:"loanPurpose"`
	EmploymentStatus string  `json:"employmentStatus"`
	EmployerName     string  `json:"employerName"`
	JobTitle         string  `json:"jobTitle"`
	AnnualIncome     float64 `json:"annualIncome"`
	AdditionalIncome float64 `json:"additionalIncome"`
	CreditScore      string  `json:"creditScore"`
	TotalAssets      float64 `json:"totalAssets"`
	TotalLiabilities float64 `json:"totalLiabilities"`
	HousingPayment   float64 `json:"housingPayment"`
	ContactMethod    string  `json:"contactMethod"`
	BestTime         string  `json:"bestTime"`
	AgreeTerms       bool    `json:"agreeTerms"`

	IPAddress string `json:"-"`
}

// SubmitResult is returned on successful intake. Eligibility is advisory and
// is never persisted with the application.
type SubmitResult struct {
	Application *domain.LoanApplication
	Eligibility eligibility.Result
	NextSteps   []string
}

// Submit validates the payload, applies the 24-hour duplicate window, and
// persists a new application with generated identifiers and submitted
// status. The eligibility heuristic runs after the insert and never blocks
// it.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	now := time.Now().UTC()

	if fields := validateSubmit(in, now); len(fields) > 0 {
		return nil, apperr.Validation(fields)
	}

	email := validate.NormalizeEmail(in.Email)
	windowKey := dedupe.ApplicationKey(email)
	claimed := false

	if s.window != nil {
		dup, err := s.window.Claim(ctx, windowKey, dedupe.ApplicationWindow)
		if err != nil {
			// Redis being down never blocks intake; the store query below
			// remains the authoritative window check.
			s.log.Warn("duplicate window unavailable, falling back to store check", zap.Error(err))
		} else if dup {
			return nil, apperr.Conflict("You have already submitted an application in the last 24 hours. Please wait before submitting another.")
		} else {
			claimed = true
		}
	}

	exists, err := s.repo.ExistsByEmailSince(ctx, email, now.Add(-dedupe.ApplicationWindow))
	if err != nil {
		s.releaseClaim(ctx, claimed, windowKey)
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("You have already submitted an application in the last 24 hours. Please wait before submitting another.")
	}

	dob, _ := parseDate(in.DateOfBirth) // validated above

	app := &domain.LoanApplication{
		ID:               uuid.New().String(),
		ApplicationID:    idgen.NewApplicationID(),
		FirstName:        strings.TrimSpace(in.FirstName),
		LastName:         strings.TrimSpace(in.LastName),
		Email:            email,
		Phone:            strings.TrimSpace(in.Phone),
		Address:          strings.TrimSpace(in.Address),
		City:             strings.TrimSpace(in.City),
		State:            strings.ToUpper(strings.TrimSpace(in.State)),
		ZipCode:          strings.TrimSpace(in.ZipCode),
		DateOfBirth:      dob,
		SSN:              strings.TrimSpace(in.SSN),
		LoanType:         domain.LoanType(in.LoanType),
		LoanAmount:       in.LoanAmount,
		LoanPurpose:      strings.TrimSpace(in.LoanPurpose),
		EmploymentStatus: domain.EmploymentStatus(in.EmploymentStatus),
		EmployerName:     strings.TrimSpace(in.EmployerName),
		JobTitle:         strings.TrimSpace(in.JobTitle),
		AnnualIncome:     in.AnnualIncome,
		AdditionalIncome: in.AdditionalIncome,
		CreditScore:      domain.CreditScore(in.CreditScore),
		TotalAssets:      in.TotalAssets,
		TotalLiabilities: in.TotalLiabilities,
		HousingPayment:   in.HousingPayment,
		ContactMethod:    domain.ContactMethod(in.ContactMethod),
		BestTime:         domain.ContactTime(in.BestTime),
		Status:           domain.ApplicationSubmitted,
		IPAddress:        in.IPAddress,
		SubmittedAt:      now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, app); err != nil {
		s.releaseClaim(ctx, claimed, windowKey)
		if errors.Is(err, ErrDuplicateID) {
			return nil, apperr.Conflict("Application could not be assigned a unique identifier. Please try again.")
		}
		return nil, err
	}

	verdict := eligibility.Check(eligibility.Input{
		AnnualIncome: app.AnnualIncome,
		LoanAmount:   app.LoanAmount,
		CreditScore:  app.CreditScore,
		LoanType:     app.LoanType,
	})

	s.log.Info("loan application submitted",
		zap.String("application_id", app.ApplicationID),
		logger.Email("email", app.Email),
		logger.Phone("phone", app.Phone),
		zap.String("loan_type", string(app.LoanType)),
		zap.Float64("loan_amount", app.LoanAmount),
	)

	return &SubmitResult{
		Application: app,
		Eligibility: verdict,
		NextSteps: []string{
			"Application received and under review",
			"Loan specialist will contact you within 24 hours",
			"Have your financial documents ready for verification",
		},
	}, nil
}

func (s *Service) releaseClaim(ctx context.Context, claimed bool, key string) {
	if !claimed || s.window == nil {
		return
	}
	if err := s.window.Release(ctx, key); err != nil {
		s.log.Warn("failed to release duplicate-window claim", zap.String("key", key), zap.Error(err))
	}
}

// StatusView is the public application-status projection. Sensitive fields
// are already stripped.
type StatusView struct {
	ApplicationID string                   `json:"applicationId"`
	FullName      string                   `json:"fullName"`
	LoanType      domain.LoanType          `json:"loanType"`
	LoanAmount    float64                  `json:"loanAmount"`
	Status        domain.ApplicationStatus `json:"status"`
	SubmittedAt   time.Time                `json:"submittedAt"`
	UpdatedAt     time.Time                `json:"updatedAt"`
	Message       string                   `json:"message"`
	NextAction    string                   `json:"nextAction"`
}

var statusMessages = map[domain.ApplicationStatus]string{
	domain.ApplicationSubmitted:     "Your application has been received and is awaiting review.",
	domain.ApplicationUnderReview:   "Your application is currently being reviewed by our loan specialists.",
	domain.ApplicationApproved:      "Congratulations! Your loan application has been approved.",
	domain.ApplicationRejected:      "We regret to inform you that your loan application was not approved.",
	domain.ApplicationNeedsMoreInfo: "We need some additional information to process your application.",
}

var nextActions = map[domain.ApplicationStatus]string{
	domain.ApplicationSubmitted:     "Wait for initial contact from our loan specialist",
	domain.ApplicationUnderReview:   "Prepare necessary documents for verification",
	domain.ApplicationApproved:      "Review and sign loan agreement documents",
	domain.ApplicationRejected:      "Contact us to discuss other financing options",
	domain.ApplicationNeedsMoreInfo: "Provide the requested additional information",
}

// Status looks up an application by identifier. Lookup is case-insensitive:
// identifiers are normalized to uppercase first.
func (s *Service) Status(ctx context.Context, applicationID string) (*StatusView, error) {
	id := strings.ToUpper(strings.TrimSpace(applicationID))
	app, err := s.repo.GetByApplicationID(ctx, id)
	if err != nil {
		return nil, err
	}

	msg, ok := statusMessages[app.Status]
	if !ok {
		msg = "Application status updated."
	}
	action, ok := nextActions[app.Status]
	if !ok {
		action = "Wait for further instructions"
	}

	return &StatusView{
		ApplicationID: app.ApplicationID,
		FullName:      app.FullName(),
		LoanType:      app.LoanType,
		LoanAmount:    app.LoanAmount,
		Status:        app.Status,
		SubmittedAt:   app.SubmittedAt,
		UpdatedAt:     app.UpdatedAt,
		Message:       msg,
		NextAction:    action,
	}, nil
}

// List returns sanitized applications matching the filter, newest first,
// with pagination metadata.
func (s *Service) List(ctx context.Context, f ListFilter) ([]domain.LoanApplication, domain.Pagination, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = defaultPageSize
	}
	if f.PageSize > maxPageSize {
		f.PageSize = maxPageSize
	}

	apps, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	out := make([]domain.LoanApplication, len(apps))
	for i := range apps {
		out[i] = apps[i].Sanitized()
	}
	return out, domain.NewPagination(f.Page, f.PageSize, total), nil
}

// UpdateStatus transitions an application's status and optionally replaces
// its notes. The update timestamp is bumped on success.
func (s *Service) UpdateStatus(ctx context.Context, applicationID string, status domain.ApplicationStatus, notes *string) error {
	if !status.IsValid() {
		return apperr.Validation([]apperr.FieldError{{Field: "status", Message: "Invalid application status"}})
	}
	id := strings.ToUpper(strings.TrimSpace(applicationID))
	return s.repo.UpdateStatus(ctx, id, status, notes, time.Now().UTC())
}

// Stats is the statistics projection for the admin dashboard.
type Stats struct {
	Total        int            `json:"total"`
	Pending      int            `json:"pending"`
	Approved     int            `json:"approved"`
	Recent       int            `json:"recent"`
	ByType       map[string]int `json:"byType"`
	ApprovalRate float64        `json:"approvalRate"`
}

// Statistics aggregates counts over the whole store: totals, by-status
// subsets, a by-type breakdown, submissions in the last 7 days, and the
// approval rate as a percentage rounded to one decimal (zero when the store
// is empty).
func (s *Service) Statistics(ctx context.Context) (*Stats, error) {
	counts, err := s.repo.Counts(ctx, time.Now().UTC().Add(-7*24*time.Hour))
	if err != nil {
		return nil, err
	}

	rate := 0.0
	if counts.Total > 0 {
		rate = math.Round(float64(counts.Approved)/float64(counts.Total)*1000) / 10
	}
	byType := counts.ByType
	if byType == nil {
		byType = map[string]int{}
	}

	return &Stats{
		Total:        counts.Total,
		Pending:      counts.Pending,
		Approved:     counts.Approved,
		Recent:       counts.Recent,
		ByType:       byType,
		ApprovalRate: rate,
	}, nil
}

// parseDate accepts the ISO date forms the form submits.
func parseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, v)
}

// validateSubmit runs every field rule and collects failures. Order follows
// the form: personal, loan, financial, contact preference, terms.
func validateSubmit(in SubmitInput, now time.Time) []apperr.FieldError {
	var fields []apperr.FieldError
	add := func(field string, r validate.Result) {
		if !r.Valid {
			fields = append(fields, apperr.FieldError{Field: field, Message: r.Message})
		}
	}

	add("firstName", validate.PersonName("First name", in.FirstName))
	add("lastName", validate.PersonName("Last name", in.LastName))
	add("email", validate.Email(in.Email))
	add("phone", validate.Phone(in.Phone))
	add("zipCode", validate.ZipCode(in.ZipCode))

	if dob, err := parseDate(in.DateOfBirth); err != nil {
		fields = append(fields, apperr.FieldError{Field: "dateOfBirth", Message: "Please enter a valid date"})
	} else {
		add("dateOfBirth", validate.DateOfBirth(dob, now))
	}

	add("ssn", validate.SSN(in.SSN))

	if !domain.LoanType(in.LoanType).IsValid() {
		fields = append(fields, apperr.FieldError{Field: "loanType", Message: "Invalid loan type"})
	} else {
		add("loanAmount", validate.LoanAmount(domain.LoanType(in.LoanType), in.LoanAmount))
	}

	add("annualIncome", validate.NonNegative("Annual income", in.AnnualIncome))
	add("additionalIncome", validate.NonNegative("Additional income", in.AdditionalIncome))

	if !domain.EmploymentStatus(in.EmploymentStatus).IsValid() {
		fields = append(fields, apperr.FieldError{Field: "employmentStatus", Message: "Invalid employment status"})
	}
	if !domain.CreditScore(in.CreditScore).IsValid() {
		fields = append(fields, apperr.FieldError{Field: "creditScore", Message: "Invalid credit score range"})
	}

	add("totalAssets", validate.NonNegative("Total assets", in.TotalAssets))
	add("totalLiabilities", validate.NonNegative("Total liabilities", in.TotalLiabilities))
	add("housingPayment", validate.NonNegative("Housing payment", in.HousingPayment))

	if !domain.ContactMethod(in.ContactMethod).IsValid() {
		fields = append(fields, apperr.FieldError{Field: "contactMethod", Message: "Invalid contact method"})
	}
	if !domain.ContactTime(in.BestTime).IsValid() {
		fields = append(fields, apperr.FieldError{Field: "bestTime", Message: "Invalid contact time"})
	}
	if !in.AgreeTerms {
		fields = append(fields, apperr.FieldError{Field: "agreeTerms", Message: "You must agree to the terms and conditions"})
	}

	return fields
}
