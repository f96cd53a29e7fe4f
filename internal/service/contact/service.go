package contact

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/apperr"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/dedupe"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/domain"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/idgen"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/pkg/logger"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/validate"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Service implements the contact-message business logic.
type Service struct {
	repo   Repository
	window DuplicateWindow // nil → database-only duplicate checks
	log    *zap.Logger
}

// NewService creates a contact service backed by the given repository.
// window may be nil.
func NewService(repo Repository, window DuplicateWindow, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, window: window, log: log}
}

// SubmitInput carries the raw contact-form payload.
type SubmitInput struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Subject       string `json:"subject"`
	Message       string `json:"message"`
	ContactMethod string `json:"contactMethod"`

	IPAddress string `json:"-"`
}

// SubmitResult is returned on successful intake.
type SubmitResult struct {
	Message          *domain.ContactMessage
	ExpectedResponse string
}

// Submit validates the payload, applies the one-hour duplicate window on
// the email plus message body, and persists a new message with status new.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	now := time.Now().UTC()

	if fields := validateSubmit(in); len(fields) > 0 {
		return nil, apperr.Validation(fields)
	}

	email := validate.NormalizeEmail(in.Email)
	body := strings.TrimSpace(in.Message)
	windowKey := dedupe.MessageKey(email, body)
	claimed := false

	if s.window != nil {
		dup, err := s.window.Claim(ctx, windowKey, dedupe.MessageWindow)
		if err != nil {
			s.log.Warn("duplicate window unavailable, falling back to store check", zap.Error(err))
		} else if dup {
			return nil, apperr.Conflict("Duplicate message detected. Please wait before submitting another message.")
		} else {
			claimed = true
		}
	}

	exists, err := s.repo.ExistsByEmailMessageSince(ctx, email, body, now.Add(-dedupe.MessageWindow))
	if err != nil {
		s.releaseClaim(ctx, claimed, windowKey)
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("Duplicate message detected. Please wait before submitting another message.")
	}

	method := domain.ContactMethod(in.ContactMethod)
	if in.ContactMethod == "" {
		method = domain.ContactByEmail
	}

	msg := &domain.ContactMessage{
		ID:            uuid.New().String(),
		MessageID:     idgen.NewMessageID(),
		Name:          strings.TrimSpace(in.Name),
		Email:         email,
		Phone:         strings.TrimSpace(in.Phone),
		Subject:       domain.MessageSubject(in.Subject),
		Message:       body,
		ContactMethod: method,
		Status:        domain.MessageNew,
		IPAddress:     in.IPAddress,
		SubmittedAt:   now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		s.releaseClaim(ctx, claimed, windowKey)
		if errors.Is(err, ErrDuplicateID) {
			return nil, apperr.Conflict("Message could not be assigned a unique identifier. Please try again.")
		}
		return nil, err
	}

	s.log.Info("contact message received",
		zap.String("message_id", msg.MessageID),
		logger.Email("email", msg.Email),
		zap.String("subject", string(msg.Subject)),
	)

	return &SubmitResult{
		Message:          msg,
		ExpectedResponse: "within 24 hours",
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

// List returns sanitized messages matching the filter, newest first, with
// pagination metadata.
func (s *Service) List(ctx context.Context, f ListFilter) ([]domain.ContactMessage, domain.Pagination, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = defaultPageSize
	}
	if f.PageSize > maxPageSize {
		f.PageSize = maxPageSize
	}

	msgs, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	out := make([]domain.ContactMessage, len(msgs))
	for i := range msgs {
		out[i] = msgs[i].Sanitized()
	}
	return out, domain.NewPagination(f.Page, f.PageSize, total), nil
}

// UpdateStatus transitions a message's status and optionally replaces its
// admin notes. The first transition to replied stamps repliedAt; later
// transitions leave it untouched.
func (s *Service) UpdateStatus(ctx context.Context, messageID string, status domain.MessageStatus, adminNotes *string) error {
	if !status.IsValid() {
		return apperr.Validation([]apperr.FieldError{{Field: "status", Message: "Invalid message status"}})
	}

	id := strings.ToUpper(strings.TrimSpace(messageID))
	msg, err := s.repo.GetByMessageID(ctx, id)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	var repliedAt *time.Time
	if status == domain.MessageReplied && msg.RepliedAt == nil {
		repliedAt = &now
	}

	return s.repo.UpdateStatus(ctx, id, status, adminNotes, repliedAt, now)
}

// Stats is the statistics projection for the admin dashboard.
type Stats struct {
	Total     int            `json:"total"`
	New       int            `json:"new"`
	Recent    int            `json:"recent"`
	BySubject map[string]int `json:"bySubject"`
}

// Statistics aggregates counts over the whole store: total, unread, a
// by-subject breakdown, and submissions in the last 7 days.
func (s *Service) Statistics(ctx context.Context) (*Stats, error) {
	counts, err := s.repo.Counts(ctx, time.Now().UTC().Add(-7*24*time.Hour))
	if err != nil {
		return nil, err
	}

	bySubject := counts.BySubject
	if bySubject == nil {
		bySubject = map[string]int{}
	}

	return &Stats{
		Total:     counts.Total,
		New:       counts.New,
		Recent:    counts.Recent,
		BySubject: bySubject,
	}, nil
}

// validateSubmit runs every field rule and collects failures in form order.
func validateSubmit(in SubmitInput) []apperr.FieldError {
	var fields []apperr.FieldError
	add := func(field string, r validate.Result) {
		if !r.Valid {
			fields = append(fields, apperr.FieldError{Field: field, Message: r.Message})
		}
	}

	add("name", validate.PersonName("Name", in.Name))
	add("email", validate.Email(in.Email))
	if strings.TrimSpace(in.Phone) != "" {
		add("phone", validate.Phone(in.Phone))
	}
	if !domain.MessageSubject(in.Subject).IsValid() {
		fields = append(fields, apperr.FieldError{Field: "subject", Message: "Invalid subject"})
	}
	add("message", validate.MessageBody(in.Message))
	if in.ContactMethod != "" && !domain.ContactMethod(in.ContactMethod).IsValid() {
		fields = append(fields, apperr.FieldError{Field: "contactMethod", Message: "Invalid contact method"})
	}

	return fields
}
